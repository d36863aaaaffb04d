package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/samber/lo"
	"github.com/vytor/pricepulse/internal/logger"
	"github.com/vytor/pricepulse/internal/models"
	"github.com/vytor/pricepulse/internal/repository"
)

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository implementation
func NewCatalogRepository(db *sql.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) TrendItems(ctx context.Context, difficulty models.Difficulty) ([]models.TrendItem, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("listing trend items: difficulty=%d", difficulty)

	query := byDifficulty(sqlBuilder.Select(
		"id", "name", "category", "unit", "difficulty", "trend", "next_price", "source",
	).From("trend_items"), difficulty)

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list trend items: %v", err)
		return nil, err
	}
	defer rows.Close()

	items := []models.TrendItem{}
	for rows.Next() {
		var t models.TrendItem
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Unit, &t.Difficulty, &t.Trend, &t.NextPrice, &t.Source); err != nil {
			log.Error("failed to scan trend item row: %v", err)
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	history, err := r.priceHistory(ctx, lo.Map(items, func(t models.TrendItem, _ int) string { return t.ID }))
	if err != nil {
		log.Error("failed to load price history: %v", err)
		return nil, err
	}
	for i := range items {
		items[i].PriceHistory = history[items[i].ID]
	}

	log.Debug("found %d trend items", len(items))
	return items, nil
}

func (r *catalogRepository) priceHistory(ctx context.Context, ids []string) (map[string][]models.PricePoint, error) {
	stmt, args, err := sqlBuilder.Select("item_id", "month", "price", "quality").
		From("trend_prices").
		Where(squirrel.Eq{"item_id": ids}).
		OrderBy("item_id", "seq").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]models.PricePoint, len(ids))
	for rows.Next() {
		var id string
		var p models.PricePoint
		if err := rows.Scan(&id, &p.Month, &p.Price, &p.DataQuality); err != nil {
			return nil, err
		}
		out[id] = append(out[id], p)
	}
	return out, rows.Err()
}

func (r *catalogRepository) BudgetScenarios(ctx context.Context, difficulty models.Difficulty) ([]models.BudgetScenario, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("listing budget scenarios: difficulty=%d", difficulty)

	query := byDifficulty(sqlBuilder.Select(
		"id", "title", "description", "income", "family_size", "location", "difficulty",
	).From("budget_scenarios"), difficulty)

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list budget scenarios: %v", err)
		return nil, err
	}
	defer rows.Close()

	scenarios := []models.BudgetScenario{}
	for rows.Next() {
		var s models.BudgetScenario
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.MonthlyIncome, &s.FamilySize, &s.Location, &s.Difficulty); err != nil {
			log.Error("failed to scan budget scenario row: %v", err)
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(scenarios) == 0 {
		return scenarios, nil
	}

	categories, err := r.budgetCategories(ctx, lo.Map(scenarios, func(s models.BudgetScenario, _ int) string { return s.ID }))
	if err != nil {
		log.Error("failed to load budget categories: %v", err)
		return nil, err
	}
	for i := range scenarios {
		scenarios[i].Categories = categories[scenarios[i].ID]
	}

	log.Debug("found %d budget scenarios", len(scenarios))
	return scenarios, nil
}

func (r *catalogRepository) budgetCategories(ctx context.Context, ids []string) (map[string][]models.BudgetCategory, error) {
	stmt, args, err := sqlBuilder.Select(
		"scenario_id", "id", "name", "icon", "description", "recommended", "min_pct", "max_pct",
	).From("budget_categories").
		Where(squirrel.Eq{"scenario_id": ids}).
		OrderBy("scenario_id", "seq").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]models.BudgetCategory, len(ids))
	for rows.Next() {
		var scenarioID string
		var c models.BudgetCategory
		if err := rows.Scan(&scenarioID, &c.ID, &c.Name, &c.Icon, &c.Description, &c.RecommendedPct, &c.MinPct, &c.MaxPct); err != nil {
			return nil, err
		}
		out[scenarioID] = append(out[scenarioID], c)
	}
	return out, rows.Err()
}

func (r *catalogRepository) ShoppingChallenges(ctx context.Context, difficulty models.Difficulty) ([]models.ShoppingChallenge, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("listing shopping challenges: difficulty=%d", difficulty)

	query := byDifficulty(sqlBuilder.Select(
		"id", "title", "description", "budget", "difficulty", "location", "family_size",
	).From("shopping_challenges"), difficulty)

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list shopping challenges: %v", err)
		return nil, err
	}
	defer rows.Close()

	challenges := []models.ShoppingChallenge{}
	for rows.Next() {
		var c models.ShoppingChallenge
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Budget, &c.Difficulty, &c.Location, &c.FamilySize); err != nil {
			log.Error("failed to scan shopping challenge row: %v", err)
			return nil, err
		}
		challenges = append(challenges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(challenges) == 0 {
		return challenges, nil
	}

	items, err := r.shoppingItems(ctx, lo.Map(challenges, func(c models.ShoppingChallenge, _ int) string { return c.ID }))
	if err != nil {
		log.Error("failed to load shopping items: %v", err)
		return nil, err
	}
	for i := range challenges {
		challenges[i].Items = items[challenges[i].ID]
	}

	log.Debug("found %d shopping challenges", len(challenges))
	return challenges, nil
}

func (r *catalogRepository) shoppingItems(ctx context.Context, ids []string) (map[string][]models.ShoppingItem, error) {
	stmt, args, err := sqlBuilder.Select(
		"challenge_id", "id", "name", "category", "price", "priority", "unit", "description", "max_quantity", "min_quantity",
	).From("shopping_items").
		Where(squirrel.Eq{"challenge_id": ids}).
		OrderBy("challenge_id", "seq").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]models.ShoppingItem, len(ids))
	for rows.Next() {
		var challengeID string
		var it models.ShoppingItem
		if err := rows.Scan(&challengeID, &it.ID, &it.Name, &it.Category, &it.Price, &it.Priority, &it.Unit, &it.Description, &it.MaxQuantity, &it.MinQuantity); err != nil {
			return nil, err
		}
		out[challengeID] = append(out[challengeID], it)
	}
	return out, rows.Err()
}

func (r *catalogRepository) MarketItems(ctx context.Context, difficulty models.Difficulty) ([]models.MarketItem, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("listing market items: difficulty=%d", difficulty)

	query := byDifficulty(sqlBuilder.Select(
		"id", "name", "category", "unit", "difficulty",
		"current_min", "current_max", "projected_min", "projected_max", "source", "quality",
	).From("market_items"), difficulty)

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list market items: %v", err)
		return nil, err
	}
	defer rows.Close()

	items := []models.MarketItem{}
	for rows.Next() {
		var m models.MarketItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.Unit, &m.Difficulty,
			&m.Current.Min, &m.Current.Max, &m.Projected.Min, &m.Projected.Max, &m.Source, &m.DataQuality); err != nil {
			log.Error("failed to scan market item row: %v", err)
			return nil, err
		}
		items = append(items, m)
	}
	log.Debug("found %d market items", len(items))
	return items, rows.Err()
}

func (r *catalogRepository) IsEmpty(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT (SELECT COUNT(*) FROM trend_items)
     + (SELECT COUNT(*) FROM budget_scenarios)
     + (SELECT COUNT(*) FROM shopping_challenges)
     + (SELECT COUNT(*) FROM market_items)
`).Scan(&count)
	if err != nil {
		log.Error("failed to count catalog rows: %v", err)
		return false, err
	}
	return count == 0, nil
}

// Seed writes content in one transaction, keeping authoring order in the
// position and seq columns.
func (r *catalogRepository) Seed(ctx context.Context, content models.CatalogContent) error {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Info("seeding catalog: trends=%d, budgets=%d, shopping=%d, market=%d",
		len(content.Trends), len(content.Budgets), len(content.Shopping), len(content.Market))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		var trendRows, priceRows [][]any
		for pos, t := range content.Trends {
			trendRows = append(trendRows, []any{t.ID, pos, t.Name, t.Category, t.Unit, int(t.Difficulty), t.Trend, t.NextPrice, t.Source})
			for seq, p := range t.PriceHistory {
				priceRows = append(priceRows, []any{t.ID, seq, p.Month, p.Price, p.DataQuality})
			}
		}
		if err := insertRows(ctx, tx, "trend_items",
			[]string{"id", "position", "name", "category", "unit", "difficulty", "trend", "next_price", "source"}, trendRows); err != nil {
			log.Error("failed to insert trend items: %v", err)
			return err
		}
		if err := insertRows(ctx, tx, "trend_prices",
			[]string{"item_id", "seq", "month", "price", "quality"}, priceRows); err != nil {
			log.Error("failed to insert price history: %v", err)
			return err
		}

		var scenarioRows, categoryRows [][]any
		for pos, s := range content.Budgets {
			scenarioRows = append(scenarioRows, []any{s.ID, pos, s.Title, s.Description, s.MonthlyIncome, s.FamilySize, s.Location, int(s.Difficulty)})
			for seq, c := range s.Categories {
				categoryRows = append(categoryRows, []any{s.ID, seq, c.ID, c.Name, c.Icon, c.Description, c.RecommendedPct, c.MinPct, c.MaxPct})
			}
		}
		if err := insertRows(ctx, tx, "budget_scenarios",
			[]string{"id", "position", "title", "description", "income", "family_size", "location", "difficulty"}, scenarioRows); err != nil {
			log.Error("failed to insert budget scenarios: %v", err)
			return err
		}
		if err := insertRows(ctx, tx, "budget_categories",
			[]string{"scenario_id", "seq", "id", "name", "icon", "description", "recommended", "min_pct", "max_pct"}, categoryRows); err != nil {
			log.Error("failed to insert budget categories: %v", err)
			return err
		}

		var challengeRows, itemRows [][]any
		for pos, c := range content.Shopping {
			challengeRows = append(challengeRows, []any{c.ID, pos, c.Title, c.Description, c.Budget, int(c.Difficulty), c.Location, c.FamilySize})
			for seq, it := range c.Items {
				itemRows = append(itemRows, []any{c.ID, seq, it.ID, it.Name, it.Category, it.Price, it.Priority, it.Unit, it.Description, it.MaxQuantity, it.MinQuantity})
			}
		}
		if err := insertRows(ctx, tx, "shopping_challenges",
			[]string{"id", "position", "title", "description", "budget", "difficulty", "location", "family_size"}, challengeRows); err != nil {
			log.Error("failed to insert shopping challenges: %v", err)
			return err
		}
		if err := insertRows(ctx, tx, "shopping_items",
			[]string{"challenge_id", "seq", "id", "name", "category", "price", "priority", "unit", "description", "max_quantity", "min_quantity"}, itemRows); err != nil {
			log.Error("failed to insert shopping items: %v", err)
			return err
		}

		var marketRows [][]any
		for pos, m := range content.Market {
			marketRows = append(marketRows, []any{m.ID, pos, m.Name, m.Category, m.Unit, int(m.Difficulty),
				m.Current.Min, m.Current.Max, m.Projected.Min, m.Projected.Max, m.Source, m.DataQuality})
		}
		if err := insertRows(ctx, tx, "market_items",
			[]string{"id", "position", "name", "category", "unit", "difficulty", "current_min", "current_max", "projected_min", "projected_max", "source", "quality"}, marketRows); err != nil {
			log.Error("failed to insert market items: %v", err)
			return err
		}
		return nil
	})
}

// Package catalog holds the immutable content tables every game draws its
// rounds from. A Catalog is built once at process start and never mutated.
package catalog

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/vytor/pricepulse/internal/logger"
	"github.com/vytor/pricepulse/internal/models"
	"github.com/vytor/pricepulse/internal/repository"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Catalog is a read-only view over the content of every game variant.
type Catalog struct {
	content models.CatalogContent
}

// New builds a catalog from already decoded content.
func New(content models.CatalogContent) *Catalog {
	return &Catalog{content: cloneContent(content)}
}

// Embedded returns the catalog compiled into the binary.
func Embedded() (*Catalog, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// LoadDir reads every *.yaml file in dir.
func LoadDir(dir string) (*Catalog, error) {
	return Load(os.DirFS(dir))
}

// Load decodes every *.yaml file at the root of fsys, in lexical file order,
// and concatenates the tables they contain.
func Load(fsys fs.FS) (*Catalog, error) {
	log := logger.Default().WithPrefix("catalog")

	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}

	var content models.CatalogContent
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var part models.CatalogContent
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&part); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		content.Trends = append(content.Trends, part.Trends...)
		content.Budgets = append(content.Budgets, part.Budgets...)
		content.Shopping = append(content.Shopping, part.Shopping...)
		content.Market = append(content.Market, part.Market...)
		log.Debug("loaded %s", name)
	}

	c := &Catalog{content: content}
	log.Info("catalog loaded: trends=%d, budgets=%d, shopping=%d, market=%d",
		len(content.Trends), len(content.Budgets), len(content.Shopping), len(content.Market))
	return c, nil
}

// FromRepository snapshots the content held by repo.
func FromRepository(ctx context.Context, repo repository.CatalogRepository) (*Catalog, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog")

	trends, err := repo.TrendItems(ctx, models.AnyDifficulty)
	if err != nil {
		return nil, fmt.Errorf("load trend items: %w", err)
	}
	budgets, err := repo.BudgetScenarios(ctx, models.AnyDifficulty)
	if err != nil {
		return nil, fmt.Errorf("load budget scenarios: %w", err)
	}
	shopping, err := repo.ShoppingChallenges(ctx, models.AnyDifficulty)
	if err != nil {
		return nil, fmt.Errorf("load shopping challenges: %w", err)
	}
	market, err := repo.MarketItems(ctx, models.AnyDifficulty)
	if err != nil {
		return nil, fmt.Errorf("load market items: %w", err)
	}

	log.Info("catalog snapshot taken from store: trends=%d, budgets=%d, shopping=%d, market=%d",
		len(trends), len(budgets), len(shopping), len(market))
	return &Catalog{content: models.CatalogContent{
		Trends:   trends,
		Budgets:  budgets,
		Shopping: shopping,
		Market:   market,
	}}, nil
}

// Content returns a copy of every table.
func (c *Catalog) Content() models.CatalogContent {
	return cloneContent(c.content)
}

// ListTrends returns trend items of exactly difficulty d. The result is empty
// when nothing matches.
func (c *Catalog) ListTrends(d models.Difficulty) []models.TrendItem {
	return byDifficulty(c.content.Trends, d, func(t models.TrendItem) models.Difficulty { return t.Difficulty })
}

func (c *Catalog) ListBudgets(d models.Difficulty) []models.BudgetScenario {
	return byDifficulty(c.content.Budgets, d, func(s models.BudgetScenario) models.Difficulty { return s.Difficulty })
}

func (c *Catalog) ListShopping(d models.Difficulty) []models.ShoppingChallenge {
	return byDifficulty(c.content.Shopping, d, func(s models.ShoppingChallenge) models.Difficulty { return s.Difficulty })
}

// ListMarket returns market items of difficulty d, or every market item when
// none match.
func (c *Catalog) ListMarket(d models.Difficulty) []models.MarketItem {
	items := byDifficulty(c.content.Market, d, func(m models.MarketItem) models.Difficulty { return m.Difficulty })
	if len(items) == 0 {
		return slices.Clone(c.content.Market)
	}
	return items
}

// ByVariant returns the typed list backing variant v. The memory game draws
// from the market table.
func (c *Catalog) ByVariant(v models.Variant, d models.Difficulty) (any, error) {
	switch v {
	case models.VariantTrend:
		return c.ListTrends(d), nil
	case models.VariantBudget:
		return c.ListBudgets(d), nil
	case models.VariantShopping:
		return c.ListShopping(d), nil
	case models.VariantGuess, models.VariantMemory:
		return c.ListMarket(d), nil
	}
	return nil, fmt.Errorf("unknown variant %q", v)
}

func byDifficulty[T any](items []T, d models.Difficulty, difficulty func(T) models.Difficulty) []T {
	if d == models.AnyDifficulty {
		return append(make([]T, 0, len(items)), items...)
	}
	return lo.Filter(items, func(item T, _ int) bool {
		return difficulty(item) == d
	})
}

func cloneContent(in models.CatalogContent) models.CatalogContent {
	out := models.CatalogContent{
		Trends:   make([]models.TrendItem, len(in.Trends)),
		Budgets:  make([]models.BudgetScenario, len(in.Budgets)),
		Shopping: make([]models.ShoppingChallenge, len(in.Shopping)),
		Market:   slices.Clone(in.Market),
	}
	for i, t := range in.Trends {
		t.PriceHistory = slices.Clone(t.PriceHistory)
		out.Trends[i] = t
	}
	for i, s := range in.Budgets {
		s.Categories = slices.Clone(s.Categories)
		out.Budgets[i] = s
	}
	for i, s := range in.Shopping {
		s.Items = slices.Clone(s.Items)
		out.Shopping[i] = s
	}
	return out
}

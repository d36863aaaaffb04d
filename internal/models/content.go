package models

// PricePoint is one month of a price history.
type PricePoint struct {
	Month       string      `json:"month" yaml:"month"`
	Price       float64     `json:"price" yaml:"price"`
	DataQuality DataQuality `json:"data_quality" yaml:"quality"`
}

// TrendItem is the content of one trend prediction round.
type TrendItem struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Category     Category     `json:"category" yaml:"category"`
	Unit         string       `json:"unit" yaml:"unit"`
	Difficulty   Difficulty   `json:"difficulty" yaml:"difficulty"`
	PriceHistory []PricePoint `json:"price_history" yaml:"history"`
	Trend        TrendClass   `json:"trend" yaml:"trend"`
	NextPrice    float64      `json:"next_price" yaml:"next_price"`
	Source       string       `json:"source" yaml:"source"`
}

// LatestPrice returns the last known price before the prediction, or 0.
func (t TrendItem) LatestPrice() float64 {
	if len(t.PriceHistory) == 0 {
		return 0
	}
	return t.PriceHistory[len(t.PriceHistory)-1].Price
}

type BudgetCategory struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Icon           string  `json:"icon" yaml:"icon"`
	Description    string  `json:"description" yaml:"description"`
	RecommendedPct float64 `json:"recommended_percentage" yaml:"recommended"`
	MinPct         float64 `json:"min_percentage" yaml:"min"`
	MaxPct         float64 `json:"max_percentage" yaml:"max"`
}

// BudgetScenario is the content of one budget allocation round.
type BudgetScenario struct {
	ID            string           `json:"id" yaml:"id"`
	Title         string           `json:"title" yaml:"title"`
	Description   string           `json:"description" yaml:"description"`
	MonthlyIncome int              `json:"monthly_income" yaml:"income"`
	FamilySize    int              `json:"family_size" yaml:"family_size"`
	Location      string           `json:"location" yaml:"location"`
	Difficulty    Difficulty       `json:"difficulty" yaml:"difficulty"`
	Categories    []BudgetCategory `json:"categories" yaml:"categories"`
}

// Category returns the category with the given id.
func (s BudgetScenario) Category(id string) (BudgetCategory, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return BudgetCategory{}, false
}

type ShoppingItem struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	Price       float64  `json:"price" yaml:"price"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Unit        string   `json:"unit" yaml:"unit"`
	Description string   `json:"description" yaml:"description"`
	MaxQuantity int      `json:"max_quantity" yaml:"max_quantity"`
	MinQuantity int      `json:"min_quantity" yaml:"min_quantity"`
}

// ShoppingChallenge is the content of one shopping round.
type ShoppingChallenge struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	Budget      int            `json:"budget" yaml:"budget"`
	Difficulty  Difficulty     `json:"difficulty" yaml:"difficulty"`
	Location    string         `json:"location" yaml:"location"`
	FamilySize  int            `json:"family_size" yaml:"family_size"`
	Items       []ShoppingItem `json:"items" yaml:"items"`
}

// Item returns the item with the given id.
func (c ShoppingChallenge) Item(id string) (ShoppingItem, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ShoppingItem{}, false
}

type PriceRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// MarketItem backs the price guess and memory games.
type MarketItem struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Category    Category    `json:"category" yaml:"category"`
	Unit        string      `json:"unit" yaml:"unit"`
	Difficulty  Difficulty  `json:"difficulty" yaml:"difficulty"`
	Current     PriceRange  `json:"current" yaml:"current"`
	Projected   PriceRange  `json:"projected_6mo" yaml:"projected_6mo"`
	Source      string      `json:"source" yaml:"source"`
	DataQuality DataQuality `json:"data_quality" yaml:"quality"`
}

// CatalogContent is the full content table of every game, in authoring order.
type CatalogContent struct {
	Trends   []TrendItem         `json:"trends" yaml:"trends"`
	Budgets  []BudgetScenario    `json:"budgets" yaml:"budgets"`
	Shopping []ShoppingChallenge `json:"shopping" yaml:"shopping"`
	Market   []MarketItem        `json:"market" yaml:"market"`
}

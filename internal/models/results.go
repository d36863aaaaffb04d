package models

// TrendPrediction is the player's answer in the trend game.
type TrendPrediction struct {
	PredictedPrice float64    `json:"predicted_price"`
	Confidence     Confidence `json:"confidence"`
	Reasoning      string     `json:"reasoning,omitempty"`
}

type TrendResult struct {
	ItemID          string     `json:"item_id"`
	ItemName        string     `json:"item_name"`
	ActualPrice     float64    `json:"actual_price"`
	PredictedPrice  float64    `json:"predicted_price"`
	Difference      float64    `json:"difference"`
	PercentageError float64    `json:"percentage_error"`
	Points          int        `json:"points"`
	Trend           TrendClass `json:"trend"`
	Confidence      Confidence `json:"confidence"`
}

func (r TrendResult) RoundScore() int { return r.Points }

type BudgetAllocation struct {
	CategoryID string  `json:"category_id"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type BudgetResult struct {
	ScenarioID       string             `json:"scenario_id"`
	ScenarioTitle    string             `json:"scenario_title"`
	TotalIncome      int                `json:"total_income"`
	Allocations      []BudgetAllocation `json:"allocations"`
	TotalAllocated   float64            `json:"total_allocated"`
	Remaining        float64            `json:"remaining"`
	Score            int                `json:"score"`
	Feedback         string             `json:"feedback"`
	CategoryFeedback map[string]string  `json:"category_feedback"`
}

func (r BudgetResult) RoundScore() int { return r.Score }

type ShoppingSelection struct {
	ItemID   string `json:"item_id"`
	Selected bool   `json:"selected"`
	Quantity int    `json:"quantity"`
}

type ShoppingResult struct {
	ChallengeID      string              `json:"challenge_id"`
	ChallengeTitle   string              `json:"challenge_title"`
	Budget           int                 `json:"budget"`
	Selections       []ShoppingSelection `json:"selections"`
	Quantities       map[string]int      `json:"quantities"`
	TotalSpent       float64             `json:"total_spent"`
	RemainingBudget  float64             `json:"remaining_budget"`
	TotalValue       int                 `json:"total_value"`
	MaxPossibleValue int                 `json:"max_possible_value"`
	Efficiency       float64             `json:"efficiency"`
	Score            int                 `json:"score"`
	Feedback         string              `json:"feedback"`
	MissedEssentials []string            `json:"missed_essentials"`
	SmartChoices     []string            `json:"smart_choices"`
}

func (r ShoppingResult) RoundScore() int { return r.Score }

type GuessResult struct {
	ItemID          string      `json:"item_id"`
	ItemName        string      `json:"item_name"`
	ActualPrice     float64     `json:"actual_price"`
	GuessedPrice    float64     `json:"guessed_price"`
	Difference      float64     `json:"difference"`
	PercentageError float64     `json:"percentage_error"`
	Points          int         `json:"points"`
	DataQuality     DataQuality `json:"data_quality"`
}

func (r GuessResult) RoundScore() int { return r.Points }

// MemoryCard is one face-down tile of the memory game.
type MemoryCard struct {
	ID       string   `json:"id"`
	ItemName string   `json:"item_name"`
	Price    float64  `json:"price"`
	Unit     string   `json:"unit"`
	Face     CardFace `json:"face"`
	Flipped  bool     `json:"flipped"`
	Matched  bool     `json:"matched"`
}

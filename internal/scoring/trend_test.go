package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/pricepulse/internal/models"
	"github.com/vytor/pricepulse/internal/scoring"
)

func TestTrend_ExactPredictionHighConfidence(t *testing.T) {
	// The bonus for an increasing trend needs a prediction strictly above
	// the actual price, so an exact call earns accuracy points only.
	assert.Equal(t, 1200, scoring.Trend(152, 152, models.ConfidenceHigh, models.TrendIncreasing))
}

func TestTrend_MaximumWithDirectionBonus(t *testing.T) {
	// 153 vs 152 is a 0.66% miss: 1000 * 1.2 + 100.
	assert.Equal(t, 1300, scoring.Trend(152, 153, models.ConfidenceHigh, models.TrendIncreasing))
}

func TestTrend_BaseTiers(t *testing.T) {
	tests := []struct {
		name      string
		predicted float64
		expected  int
	}{
		{name: "within 2%", predicted: 98.5, expected: 1000},
		{name: "within 5%", predicted: 96, expected: 900},
		{name: "within 10%", predicted: 91, expected: 800},
		{name: "within 15%", predicted: 86, expected: 700},
		{name: "within 20%", predicted: 81, expected: 600},
		{name: "within 30%", predicted: 75, expected: 500},
		{name: "within 50%", predicted: 55, expected: 300},
		{name: "beyond 50%", predicted: 10, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// volatile never earns the direction bonus
			got := scoring.Trend(100, tt.predicted, models.ConfidenceMedium, models.TrendVolatile)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTrend_ConfidenceMultiplier(t *testing.T) {
	assert.Equal(t, 640, scoring.Trend(100, 94, models.ConfidenceLow, models.TrendVolatile))
	assert.Equal(t, 800, scoring.Trend(100, 94, models.ConfidenceMedium, models.TrendVolatile))
	assert.Equal(t, 960, scoring.Trend(100, 94, models.ConfidenceHigh, models.TrendVolatile))
	assert.Equal(t, 800, scoring.Trend(100, 94, models.Confidence("unknown"), models.TrendVolatile))
}

func TestTrend_DirectionBonus(t *testing.T) {
	tests := []struct {
		name      string
		trend     models.TrendClass
		predicted float64
		bonus     bool
	}{
		{name: "increasing above actual", trend: models.TrendIncreasing, predicted: 101, bonus: true},
		{name: "increasing below actual", trend: models.TrendIncreasing, predicted: 99, bonus: false},
		{name: "decreasing below actual", trend: models.TrendDecreasing, predicted: 99, bonus: true},
		{name: "decreasing above actual", trend: models.TrendDecreasing, predicted: 101, bonus: false},
		{name: "stable inside band", trend: models.TrendStable, predicted: 104, bonus: true},
		{name: "stable outside band", trend: models.TrendStable, predicted: 106, bonus: false},
		{name: "volatile", trend: models.TrendVolatile, predicted: 101, bonus: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.bonus, scoring.DirectionMatches(100, tt.predicted, tt.trend))
		})
	}
}

func TestTrend_NonIncreasingWithError(t *testing.T) {
	confidences := []models.Confidence{models.ConfidenceLow, models.ConfidenceMedium, models.ConfidenceHigh}
	trends := []models.TrendClass{models.TrendIncreasing, models.TrendDecreasing, models.TrendStable, models.TrendVolatile}

	for _, c := range confidences {
		for _, tr := range trends {
			for _, sign := range []float64{1, -1} {
				prev := scoring.Trend(200, 200+sign*0.5, c, tr)
				for step := 1.0; step <= 190; step++ {
					got := scoring.Trend(200, 200+sign*(0.5+step), c, tr)
					assert.GreaterOrEqual(t, got, 0)
					assert.LessOrEqual(t, got, prev, "confidence=%s trend=%s step=%v", c, tr, step)
					prev = got
				}
			}
		}
	}
}

func TestPercentageError_ZeroReference(t *testing.T) {
	assert.Equal(t, 0.0, scoring.PercentageError(0, 0))
	assert.Equal(t, scoring.MaxPercentageError, scoring.PercentageError(0, 12))
	assert.Equal(t, 100, scoring.Trend(0, 12, models.ConfidenceMedium, models.TrendVolatile))
}

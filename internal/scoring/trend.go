// Package scoring holds the pure point schemes of every game. Nothing here
// draws random numbers, reads the clock or keeps state.
package scoring

import (
	"math"

	"github.com/vytor/pricepulse/internal/models"
)

// MaxPercentageError is reported when the reference price is zero but the
// answer is not. It lands in the lowest accuracy tier of every scheme.
const MaxPercentageError = 100.0

// DirectionBonus is added when a prediction agrees with the item's trend.
const DirectionBonus = 100

// StableBand is the relative distance within which a prediction counts as
// agreeing with a stable trend.
const StableBand = 0.05

type accuracyTier struct {
	maxError float64
	points   int
}

var trendTiers = []accuracyTier{
	{2, 1000},
	{5, 900},
	{10, 800},
	{15, 700},
	{20, 600},
	{30, 500},
	{50, 300},
}

const trendFloorPoints = 100

// PercentageError returns |actual-answer| as a percentage of actual.
// A zero reference yields 0 for an exact answer and MaxPercentageError otherwise.
func PercentageError(actual, answer float64) float64 {
	diff := math.Abs(actual - answer)
	if actual == 0 {
		if diff == 0 {
			return 0
		}
		return MaxPercentageError
	}
	return diff / math.Abs(actual) * 100
}

// ConfidenceMultiplier scales the accuracy points of a trend prediction.
// Unknown values count as medium.
func ConfidenceMultiplier(c models.Confidence) float64 {
	switch c {
	case models.ConfidenceLow:
		return 0.8
	case models.ConfidenceHigh:
		return 1.2
	default:
		return 1.0
	}
}

// TrendBase maps a percentage error onto the accuracy step function.
func TrendBase(percentageError float64) int {
	for _, t := range trendTiers {
		if percentageError <= t.maxError {
			return t.points
		}
	}
	return trendFloorPoints
}

// DirectionMatches reports whether the prediction moves the way the trend
// says, measured against the actual next price.
func DirectionMatches(actual, predicted float64, trend models.TrendClass) bool {
	change := predicted - actual
	switch trend {
	case models.TrendIncreasing:
		return change > 0
	case models.TrendDecreasing:
		return change < 0
	case models.TrendStable:
		return math.Abs(change) < math.Abs(actual)*StableBand
	case models.TrendVolatile:
		return false
	}
	return false
}

// Trend scores a next-period price prediction. The result is not clamped
// above: a high-confidence exact call on a matching trend scores 1300.
func Trend(actual, predicted float64, confidence models.Confidence, trend models.TrendClass) int {
	points := float64(TrendBase(PercentageError(actual, predicted))) * ConfidenceMultiplier(confidence)
	if DirectionMatches(actual, predicted, trend) {
		points += DirectionBonus
	}
	return int(math.Round(points))
}

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/pricepulse/internal/engine"
	"github.com/vytor/pricepulse/internal/models"
)

func TestTrendGame_StartLoadsFirstItem(t *testing.T) {
	g := engine.NewTrendGame(testCatalog(), engine.Settings{Difficulty: 2, Rounds: 5}, quiet())

	require.True(t, g.Start())
	st := g.State()
	require.NotNil(t, st.Current)
	assert.Equal(t, "rice", st.Current.ID)
	assert.Equal(t, 1, st.CurrentRound)
	assert.Equal(t, 5, st.TotalRounds)
	assert.Equal(t, 0, st.Score)
	assert.Empty(t, st.Results)
	assert.False(t, st.ShowResult)
	assert.False(t, st.IsGameOver)
	assert.Equal(t, models.VariantTrend, st.Variant)
}

func TestTrendGame_StartWithoutContentIsNoop(t *testing.T) {
	g := engine.NewTrendGame(testCatalog(), engine.Settings{Difficulty: 4, Rounds: 3}, quiet())

	assert.False(t, g.Start())
	st := g.State()
	assert.Nil(t, st.Current)
	assert.Equal(t, 0, st.CurrentRound)
	assert.False(t, g.Submit(models.TrendPrediction{PredictedPrice: 10, Confidence: models.ConfidenceLow}))
	assert.False(t, g.NextRound())
	assert.Nil(t, g.State().Current)
}

func TestTrendGame_DefaultRounds(t *testing.T) {
	g := engine.NewTrendGame(testCatalog(), engine.Settings{Difficulty: 2}, quiet())
	assert.Equal(t, engine.DefaultRounds, g.State().TotalRounds)
}

func TestTrendGame_SubmitScoresPrediction(t *testing.T) {
	g := engine.NewTrendGame(testCatalog(), engine.Settings{Difficulty: 2, Rounds: 1}, quiet())
	require.True(t, g.Start())

	require.True(t, g.Submit(models.TrendPrediction{PredictedPrice: 153, Confidence: models.ConfidenceHigh}))
	st := g.State()
	require.Len(t, st.Results, 1)
	res := st.Results[0]
	assert.Equal(t, "rice", res.ItemID)
	assert.Equal(t, 152.0, res.ActualPrice)
	assert.Equal(t, 1.0, res.Difference)
	assert.InDelta(t, 0.658, res.PercentageError, 0.001)
	assert.Equal(t, 1300, res.Points)
	assert.Equal(t, 1300, st.Score)
	assert.True(t, st.ShowResult)
	assert.Equal(t, 1, st.CurrentRound)
}

func TestTrendGame_ExactPredictionWithoutBonus(t *testing.T) {
	g := engine.NewTrendGame(testCatalog(), engine.Settings{Difficulty: 2, Rounds: 1}, quiet())
	require.True(t, g.Start())

	require.True(t, g.Submit(models.TrendPrediction{PredictedPrice: 152, Confidence: models.ConfidenceHigh}))
	assert.Equal(t, 1200, g.State().Score)
}

func TestTrendGame_RejectsInvalidAnswers(t *testing.T) {
	g := engine.NewTrendGame(testCatalog(), engine.Settings{Difficulty: 2, Rounds: 2}, quiet())
	require.True(t, g.Start())

	assert.False(t, g.Submit(models.TrendPrediction{PredictedPrice: 0, Confidence: models.ConfidenceHigh}))
	assert.False(t, g.Submit(models.TrendPrediction{PredictedPrice: -5, Confidence: models.ConfidenceHigh}))
	assert.Empty(t, g.State().Results)
}

func TestTrendGame_SubmitTwiceIsNoop(t *testing.T) {
	g := engine.NewTrendGame(testCatalog(), engine.Settings{Difficulty: 2, Rounds: 2}, quiet())
	require.True(t, g.Start())

	require.True(t, g.Submit(models.TrendPrediction{PredictedPrice: 150, Confidence: models.ConfidenceMedium}))
	assert.False(t, g.Submit(models.TrendPrediction{PredictedPrice: 150, Confidence: models.ConfidenceMedium}))
	assert.Len(t, g.State().Results, 1)
}

func TestTrendGame_FullGameCyclesCatalog(t *testing.T) {
	g := engine.NewTrendGame(testCatalog(), engine.Settings{Difficulty: 2, Rounds: 5}, quiet())
	require.True(t, g.Start())

	for range 5 {
		st := g.State()
		require.False(t, st.IsGameOver)
		require.True(t, g.Submit(models.TrendPrediction{PredictedPrice: st.Current.NextPrice * 1.1, Confidence: models.ConfidenceLow}))
		require.True(t, g.NextRound())
	}

	st := g.State()
	assert.True(t, st.IsGameOver)
	assert.False(t, st.ShowResult)
	require.Len(t, st.Results, 5)

	ids := make([]string, 0, 5)
	sum := 0
	for _, r := range st.Results {
		ids = append(ids, r.ItemID)
		sum += r.Points
	}
	assert.Equal(t, []string{"rice", "lpg", "oil", "rice", "lpg"}, ids)
	assert.Equal(t, sum, st.Score)

	assert.False(t, g.NextRound())
	assert.False(t, g.Submit(models.TrendPrediction{PredictedPrice: 1, Confidence: models.ConfidenceLow}))
	assert.Len(t, g.State().Results, 5)
}

func TestTrendGame_ResetStartsOver(t *testing.T) {
	g := engine.NewTrendGame(testCatalog(), engine.Settings{Difficulty: 2, Rounds: 3}, quiet())
	require.True(t, g.Start())
	require.True(t, g.Submit(models.TrendPrediction{PredictedPrice: 150, Confidence: models.ConfidenceHigh}))
	require.True(t, g.NextRound())

	require.True(t, g.Reset())
	st := g.State()
	assert.Equal(t, 1, st.CurrentRound)
	assert.Equal(t, 0, st.Score)
	assert.Empty(t, st.Results)
	assert.False(t, st.IsGameOver)
	assert.Equal(t, "rice", st.Current.ID)
}

func TestTrendGame_StateIsACopy(t *testing.T) {
	g := engine.NewTrendGame(testCatalog(), engine.Settings{Difficulty: 2, Rounds: 3}, quiet())
	require.True(t, g.Start())

	st := g.State()
	st.Current.PriceHistory[0].Price = -1
	st.Current.Name = "changed"

	fresh := g.State()
	assert.Equal(t, 120.0, fresh.Current.PriceHistory[0].Price)
	assert.Equal(t, "Rice", fresh.Current.Name)
}

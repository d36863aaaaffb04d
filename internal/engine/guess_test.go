package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/pricepulse/internal/catalog"
	"github.com/vytor/pricepulse/internal/engine"
	"github.com/vytor/pricepulse/internal/models"
)

func TestGuessGame_ExactGuess(t *testing.T) {
	g := engine.NewGuessGame(testCatalog(), engine.Settings{Difficulty: 2, Rounds: 1}, quiet(), seeded(1))
	require.True(t, g.Start())
	require.Equal(t, "milk", g.State().Current.ID)

	require.True(t, g.Submit(100))
	res := g.State().Results[0]
	assert.Equal(t, 100.0, res.ActualPrice)
	assert.Equal(t, 1000, res.Points)
	assert.Equal(t, models.QualityHigh, res.DataQuality)
}

func TestGuessGame_ActualPriceWithinCurrentRange(t *testing.T) {
	g := engine.NewGuessGame(testCatalog(), engine.Settings{Difficulty: 3, Rounds: 20}, quiet(), seeded(2))
	require.True(t, g.Start())

	for range 20 {
		require.True(t, g.Submit(1))
		require.True(t, g.NextRound())
	}
	st := g.State()
	require.True(t, st.IsGameOver)
	require.Len(t, st.Results, 20)
	for _, r := range st.Results {
		switch r.ItemID {
		case "petrol":
			assert.True(t, r.ActualPrice >= 170 && r.ActualPrice <= 175, "petrol %v", r.ActualPrice)
		case "eggs":
			assert.True(t, r.ActualPrice >= 480 && r.ActualPrice <= 540, "eggs %v", r.ActualPrice)
		default:
			t.Fatalf("unexpected item %s for difficulty 3", r.ItemID)
		}
	}
}

func TestGuessGame_FallsBackToWholeMarket(t *testing.T) {
	g := engine.NewGuessGame(testCatalog(), engine.Settings{Difficulty: 5, Rounds: 1}, quiet(), seeded(3))
	require.True(t, g.Start())
	assert.NotNil(t, g.State().Current)
}

func TestGuessGame_EmptyMarketIsNoop(t *testing.T) {
	g := engine.NewGuessGame(catalog.New(models.CatalogContent{}), engine.Settings{Rounds: 1}, quiet())
	assert.False(t, g.Start())
	assert.False(t, g.Submit(10))
}

func TestGuessGame_RejectsNonPositiveGuess(t *testing.T) {
	g := engine.NewGuessGame(testCatalog(), engine.Settings{Difficulty: 2, Rounds: 1}, quiet())
	require.True(t, g.Start())

	assert.False(t, g.Submit(0))
	assert.False(t, g.Submit(-10))
	assert.Empty(t, g.State().Results)
}

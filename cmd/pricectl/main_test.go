package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCatalogList(t *testing.T) {
	out, err := run(t, "catalog", "list", "market", "--difficulty", "5")
	require.Error(t, err, "market is not a variant")

	out, err = run(t, "catalog", "list", "guess", "--difficulty", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "cement-bag")
	assert.NotContains(t, out, "momo-plate")

	out, err = run(t, "catalog", "list", "shopping")
	require.NoError(t, err)
	assert.Contains(t, out, "festival-diwali-prep")
	assert.Contains(t, out, "NPR 8,000")
}

func TestCatalogListRejectsBadDifficulty(t *testing.T) {
	_, err := run(t, "catalog", "list", "trend", "--difficulty", "7")
	assert.Error(t, err)
}

func TestCatalogValidate(t *testing.T) {
	out, err := run(t, "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: ")
	assert.Contains(t, out, "16 market items")

	dir := t.TempDir()
	bad := `trends:
  - id: rice
    name: Rice
    difficulty: 9
    trend: stable
    next_price: 100
    history:
      - {month: Jan, price: 100}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trends.yaml"), []byte(bad), 0o644))

	_, err = run(t, "catalog", "validate", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trend rice: difficulty 9 out of range")
	assert.Contains(t, err.Error(), "history has 1 points")
}

func TestScoreTrend(t *testing.T) {
	out, err := run(t, "score", "trend", "--actual", "152", "--predicted", "152", "--confidence", "high", "--trend", "increasing")
	require.NoError(t, err)
	assert.Contains(t, out, "points:    1200")

	_, err = run(t, "score", "trend", "--actual", "152", "--predicted", "150", "--confidence", "certain")
	assert.Error(t, err)

	_, err = run(t, "score", "trend", "--actual", "152")
	assert.Error(t, err)
}

func TestScoreGuess(t *testing.T) {
	out, err := run(t, "score", "guess", "--actual", "128", "--guess", "128")
	require.NoError(t, err)
	assert.Contains(t, out, "points: 1000")
	assert.Contains(t, out, "NPR 128")

	_, err = run(t, "score", "guess", "--actual", "128", "--guess", "-1")
	assert.Error(t, err)
}

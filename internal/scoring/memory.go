package scoring

import (
	"time"

	"github.com/vytor/pricepulse/internal/models"
)

const (
	memoryBasePoints  = 500
	memoryMovePenalty = 20
)

// LevelBonus is the flat reward for finishing a harder memory board.
func LevelBonus(level models.MemoryLevel) int {
	switch level {
	case models.LevelMedium:
		return 100
	case models.LevelHard:
		return 300
	}
	return 0
}

// Memory scores a completed memory board: every move costs 20 points and
// every two elapsed seconds cost one.
func Memory(moves int, elapsed time.Duration, level models.MemoryLevel) int {
	seconds := int(elapsed / time.Second)
	score := memoryBasePoints - moves*memoryMovePenalty - seconds/2 + LevelBonus(level)
	return max(0, score)
}

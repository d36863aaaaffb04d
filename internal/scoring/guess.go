package scoring

import "math"

// PriceGuess scores a plain price guess on a 0-1000 scale, sliding linearly
// inside each accuracy band.
func PriceGuess(actual, guessed float64) int {
	if actual == guessed {
		return 1000
	}
	e := PercentageError(actual, guessed)
	var points float64
	switch {
	case e <= 5:
		points = 900 - e*20
	case e <= 10:
		points = 800 - e*20
	case e <= 20:
		points = 600 - e*10
	case e <= 30:
		points = 400 - e*6.67
	case e <= 50:
		points = 200 - e*2
	case e <= 100:
		points = 100 - e
	default:
		return 0
	}
	return max(0, int(math.Floor(points)))
}

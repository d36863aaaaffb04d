package scoring

import (
	"math"

	"github.com/dustin/go-humanize"
)

// FormatPrice renders an amount in rupees with digit grouping, e.g. "NPR 1,250".
func FormatPrice(price float64) string {
	if price == math.Trunc(price) {
		return "NPR " + humanize.Comma(int64(price))
	}
	return "NPR " + humanize.CommafWithDigits(price, 2)
}

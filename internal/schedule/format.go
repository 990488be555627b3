package schedule

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// FormatDollar renders a currency amount: values of 1000 and above are
// divided by 1000 and suffixed "K", everything else is printed to two
// decimals. Distinct from the market-cap/volume "M" convention.
func FormatDollar(v decimal.Decimal) string {
	if v.GreaterThanOrEqual(thousand) {
		return v.Div(thousand).StringFixed(2) + "K"
	}
	return v.StringFixed(2)
}

// FormatETA decomposes a duration in seconds into day/hour/minute/second
// tokens. Zero-valued units are omitted; seconds appear only when all
// larger units are zero. A zero duration renders as the empty string.
func FormatETA(seconds int64) string {
	days := seconds / 86400
	seconds %= 86400
	hours := seconds / 3600
	seconds %= 3600
	minutes := seconds / 60
	seconds %= 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if len(parts) == 0 && seconds > 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}

	return strings.Join(parts, " ")
}

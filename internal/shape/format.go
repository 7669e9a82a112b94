package shape

import (
	"math"
	"strconv"
	"strings"
)

// FormatPercent renders a rate with exactly one fractional digit. Zero and
// NaN render as "0%".
func FormatPercent(value float64) string {
	if value == 0 || math.IsNaN(value) {
		return "0%"
	}
	return strconv.FormatFloat(value, 'f', 1, 64) + "%"
}

// FormatTime renders a duration in seconds as "Xm Ys", dropping the minutes
// segment when it is zero. Zero and NaN render as "0s".
func FormatTime(seconds float64) string {
	if seconds == 0 || math.IsNaN(seconds) {
		return "0s"
	}

	minutes := int(seconds) / 60
	secs := int(math.Round(math.Mod(seconds, 60)))
	if secs == 60 {
		minutes++
		secs = 0
	}

	if minutes == 0 {
		return strconv.Itoa(secs) + "s"
	}
	return strconv.Itoa(minutes) + "m " + strconv.Itoa(secs) + "s"
}

// FormatNumber renders a count with thousands separators. Zero and NaN
// render as "0".
func FormatNumber(n float64) string {
	if n == 0 || math.IsNaN(n) {
		return "0"
	}

	neg := n < 0
	digits := strconv.FormatInt(int64(math.Abs(n)), 10)

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
		if len(digits) > lead {
			sb.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		sb.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			sb.WriteByte(',')
		}
	}
	return sb.String()
}

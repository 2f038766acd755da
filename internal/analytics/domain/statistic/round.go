package statistic

import (
	"math"
	"strconv"
	"strings"
)

// RoundHalfUp rounds value to the given number of decimal places with ties toward +Inf.
func RoundHalfUp(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Floor(value*scale+0.5) / scale
}

// FormatFixed renders value with a fixed number of decimals, rounding on the exact
// binary value. Exact ties round away from zero.
func FormatFixed(value float64, places int) string {
	if value == 0 {
		value = 0 // drop negative zero
	}
	if places < 0 {
		places = 0
	}
	if isDecimalTie(value, places) {
		scale := math.Pow(10, float64(places))
		value = math.Copysign(math.Floor(math.Abs(value)*scale)+1, value) / scale
	}
	return strconv.FormatFloat(value, 'f', places, 64)
}

// isDecimalTie reports whether the exact expansion of value is ...d5000... at places+1.
func isDecimalTie(value float64, places int) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	exact := strconv.FormatFloat(math.Abs(value), 'f', places+30, 64)
	dot := strings.IndexByte(exact, '.')
	if dot < 0 {
		return false
	}
	rest := exact[dot+1+places:]
	return rest[0] == '5' && strings.Trim(rest[1:], "0") == ""
}

// roundFixed rounds through FormatFixed so stored values match their rendered form.
func roundFixed(value float64, places int) float64 {
	parsed, err := strconv.ParseFloat(FormatFixed(value, places), 64)
	if err != nil {
		return value
	}
	return parsed
}


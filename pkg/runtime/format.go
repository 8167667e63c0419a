package runtime

import (
	"math"
	"strconv"
	"strings"
)

// ToString renders v the way print shows it.
func ToString(v Value) string {
	switch v := v.(type) {
	case nil, Null:
		return "null"
	case Boolean:
		if v {
			return "true"
		}
		return "false"
	case Number:
		return FormatNumber(float64(v))
	case String:
		return string(v)
	case *Object:
		return "{}"
	case *NativeFunction:
		return "<native fn " + v.Name + ">"
	case *Function:
		return "<fn " + v.Name + ">"
	default:
		return "<unknown>"
	}
}

// FormatNumber formats v with JavaScript's number to string rules: the
// shortest round-tripping digits, exponent notation outside [1e-6, 1e21).
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		// Covers -0 as well.
		return "0"
	}

	abs := math.Abs(v)
	if abs < 1e-6 || abs >= 1e21 {
		str := strconv.FormatFloat(v, 'e', -1, 64)
		// Remove leading zero from exponent: 1e-07 → 1e-7
		str = strings.Replace(str, "e-0", "e-", 1)
		str = strings.Replace(str, "e+0", "e+", 1)
		return str
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package sweep

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatValue renders a parameter value the way the EA preset loader expects:
// floats always keep a decimal point ("1.0", "0.6"), ints and bools are plain,
// strings pass through untouched and a missing value is empty.
func FormatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return formatFloat(value, 64)
	case float32:
		return formatFloat(float64(value), 32)
	default:
		return fmt.Sprint(value)
	}
}

func formatFloat(f float64, bitSize int) string {
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// ParseValue is the inverse of FormatValue for the grid schema: integers
// become int, decimals float64, "true"/"false" bool and anything else stays
// a string. Round-trips are lossless only while no string column holds a
// numeric-looking value; a Symbol of "1" would come back as the int 1.
func ParseValue(s string) any {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if strings.ContainsAny(s, "0123456789") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

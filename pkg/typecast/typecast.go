// Package typecast turns raw computed-style and attribute strings into typed values: numbers
// lose their units and color functions become color objects.
package typecast

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

// Value is one of nil, int, float64, string, bool, RGB, RGBA, HSL or HSLA.
type Value = interface{}

var numberPrefix = regexp.MustCompile(`^(\d+)((\.)(\d+))?`)

// Cast normalizes v: color functions become color objects, a leading number is returned as an
// int or as a float rounded to two decimals, anything else is returned unchanged.
func Cast(v interface{}) Value {
	if v == nil {
		return nil
	}

	if s, ok := v.(string); ok {
		if color, ok := ParseColor(s); ok {
			return color
		}
	}

	str, ok := stringOf(v)
	if !ok {
		return v
	}

	m := numberPrefix.FindStringSubmatch(str)
	if m == nil {
		return v
	}

	if m[4] != "" {
		f, err := strconv.ParseFloat(m[0], 64)
		if err != nil {
			return v
		}
		return integral(math.Round(f*100) / 100)
	}

	i, err := strconv.Atoi(m[1])
	if err != nil {
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return v
		}
		return f
	}
	return i
}

// integral keeps whole numbers as ints so casting a cast value yields the same value.
func integral(f float64) Value {
	if f == math.Trunc(f) && math.Abs(f) < math.MaxInt32 {
		return int(f)
	}
	return f
}

// stringOf returns the string representation of textual and numeric values.
func stringOf(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case int:
		return strconv.Itoa(t), true
	case int8:
		return strconv.FormatInt(int64(t), 10), true
	case int16:
		return strconv.FormatInt(int64(t), 10), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint:
		return strconv.FormatUint(uint64(t), 10), true
	case uint8:
		return strconv.FormatUint(uint64(t), 10), true
	case uint16:
		return strconv.FormatUint(uint64(t), 10), true
	case uint32:
		return strconv.FormatUint(uint64(t), 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float32:
		return formatFloat(float64(t)), true
	case float64:
		return formatFloat(t), true
	}
	return "", false
}

func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

package typecast

import "regexp"

type RGB struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

type RGBA struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
	Alpha float64 `json:"alpha"`
}

type HSL struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
}

type HSLA struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
	Alpha      float64 `json:"alpha"`
}

var colorFunction = regexp.MustCompile(`^(hsla|rgba|hsl|rgb)\D+([\d.%]+)\D+([\d.%]+)\D+([\d.%]+)\D+([\d.%]+)?`)

// ParseColor matches the rgb, rgba, hsl and hsla functional notations at the start of s.
// Matching is prefix based, so "rgb(0, 0, 0) 0px 1px" yields the leading color.
func ParseColor(s string) (Value, bool) {
	m := colorFunction.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}

	// A component with no leading digits, such as ".", is stored as 0 rather than kept as text
	// so every color struct stays numeric.
	switch m[1] {
	case "rgb":
		return RGB{
			Red:   component(m[2]),
			Green: component(m[3]),
			Blue:  component(m[4]),
		}, true
	case "rgba":
		return RGBA{
			Red:   component(m[2]),
			Green: component(m[3]),
			Blue:  component(m[4]),
			Alpha: component(m[5]),
		}, true
	case "hsl":
		return HSL{
			Hue:        component(m[2]),
			Saturation: component(m[3]),
			Lightness:  component(m[4]),
		}, true
	default:
		return HSLA{
			Hue:        component(m[2]),
			Saturation: component(m[3]),
			Lightness:  component(m[4]),
			Alpha:      component(m[5]),
		}, true
	}
}

// component casts a color component; components without a numeric prefix count as zero.
func component(s string) float64 {
	switch v := Cast(s).(type) {
	case int:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

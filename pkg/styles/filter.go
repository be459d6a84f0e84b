// Package styles filters computed style enumerations down to their canonical camelCase data
// properties.
package styles

import (
	"strconv"
	"strings"

	"github.com/zdunecki/domobject/pkg/dom"
)

// IsUnwanted reports whether a computed style member is an alias or a non-data member.
// A computed style exposes every property under its index, its camelCase name and its
// hyphenated name, next to methods and vendor keys. Only camelCase data members survive.
func IsUnwanted(entry dom.StyleEntry) bool {
	key := entry.Name

	return isNumeric(key) ||
		(key != "" && key[0] < 'a') ||
		strings.Contains(key, "-") ||
		entry.Kind == dom.KindFunction
}

// Filter returns the wanted members of decl in enumeration order.
func Filter(decl dom.Declaration) dom.Declaration {
	out := make(dom.Declaration, 0, len(decl))
	for _, e := range decl {
		if IsUnwanted(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// isNumeric follows numeric string conversion: blank strings, decimal, exponent and
// 0x/0o/0b literals and "Infinity" are numbers.
func isNumeric(key string) bool {
	s := strings.TrimSpace(key)
	if s == "" {
		return true
	}

	unsigned := strings.TrimLeft(s, "+-")
	if unsigned == "Infinity" {
		return true
	}
	if unsigned == "" || !(unsigned[0] == '.' || (unsigned[0] >= '0' && unsigned[0] <= '9')) {
		return false
	}

	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	if s == unsigned {
		if _, err := strconv.ParseInt(s, 0, 64); err == nil {
			return true
		}
	}
	return false
}

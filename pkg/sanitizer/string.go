package sanitizer

import (
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeExtraName is the canonical form used when matching requested
// extras against a property's configured extras.
func NormalizeExtraName(name string) string {
	p := Pipeline{
		TrimAndNormalize,
		strings.ToLower,
	}
	return p.Apply(name)
}

func NormalizeTitle(title string) string {
	return TrimAndNormalize(title)
}

// NormalizeExtraNames normalizes a slice of extra names, dropping empties
// and duplicates while preserving order.
func NormalizeExtraNames(names []string) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, n := range names {
		s := NormalizeExtraName(n)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}

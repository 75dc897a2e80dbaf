package fogbugz

import "strings"

// componentKind discriminates the searchComponent variants.
type componentKind int

const (
	kindTerm componentKind = iota
	kindPhrase
	kindNegatedTerm
	kindAxis
	kindNegatedAxis
	kindExactAxis
	kindOrGroup
)

// searchComponent is one clause of a search query. Components are only
// created by SearchBuilder and OrBuilder methods, which trim and validate
// input first, so a stored component always carries non-empty text and
// renders without further checks.
type searchComponent struct {
	kind     componentKind
	text     string            // term, phrase
	axis     string            // axis name
	value    string            // axis value
	children []searchComponent // OR group
}

// stringify renders the component in the FogBugz search grammar.
func (c searchComponent) stringify() string {
	switch c.kind {
	case kindTerm:
		return c.text
	case kindPhrase:
		return `"` + escapeQuotes(c.text) + `"`
	case kindNegatedTerm:
		return "-" + c.text
	case kindAxis:
		return c.axis + ":" + formatAxisValue(c.value)
	case kindNegatedAxis:
		return "-" + c.axis + ":" + formatAxisValue(c.value)
	case kindExactAxis:
		// Exact matches (usually numeric IDs) are never auto-quoted.
		return c.axis + ":=" + escapeQuotes(c.value)
	case kindOrGroup:
		parts := make([]string, 0, len(c.children))
		for _, child := range c.children {
			if s := child.stringify(); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return ""
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	}
	return ""
}

// formatAxisValue quotes an axis value when the grammar requires it:
// spaces, colons, quotes, date ranges ("..") and a leading "-" (descending
// OrderBy directives). Values the caller already wrapped in quotes keep
// their wrapping. Internal quotes are always escaped.
func formatAxisValue(v string) string {
	needsQuoting := strings.Contains(v, " ") ||
		strings.Contains(v, ":") ||
		strings.Contains(v, `"`) ||
		strings.Contains(v, "..") ||
		strings.HasPrefix(v, "-")

	if !needsQuoting {
		return escapeQuotes(v)
	}
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		return `"` + escapeQuotes(v[1:len(v)-1]) + `"`
	}
	return `"` + escapeQuotes(v) + `"`
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

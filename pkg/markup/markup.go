// Package markup builds the placeholder and link markup that the compositor
// understands: variable and condition markers, condition and repeat wrappers,
// and id-tagged hyperlinks and CTA buttons.
package markup

import (
	"strings"
)

// Variable returns the placeholder for a declared variable.
func Variable(name string) string {
	return "{{" + name + "}}"
}

// ConditionPlaceholder returns the self-closing marker for a condition.
func ConditionPlaceholder(name string) string {
	return "{{%" + name + "%}}"
}

// WrapCondition encloses body in paired markers for the named condition.
func WrapCondition(body, name string) string {
	return "{{%" + name + "%}}\n" + body + "\n{{/%" + name + "%}}"
}

// WrapConditionElse encloses body in paired markers with an inline else
// branch.
func WrapConditionElse(body, elseBody, name string) string {
	return "{{%" + name + "%}}\n" + body + "\n{{else}}\n" + elseBody + "\n{{/%" + name + "%}}"
}

// WrapLoop repeats body once per item of the named array variable.
func WrapLoop(body, name string) string {
	return "{{#each " + name + "}}\n" + body + "\n{{/each}}"
}

// NormalizeURL trims raw and prefixes https:// unless it already starts with
// http, "/" or "mailto:".
func NormalizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http") || strings.HasPrefix(url, "/") || strings.HasPrefix(url, "mailto:") {
		return url
	}
	return "https://" + url
}

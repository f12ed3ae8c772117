package markup

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	DefaultButtonBackground = "#D71E28"
	DefaultButtonText       = "#FFFFFF"
	DefaultLinkColor        = "#D71E28"
)

// Theme tokens read by StyleFromTheme.
const (
	TokenButtonBackground = "cta.background"
	TokenButtonText       = "cta.text"
	TokenLinkColor        = "link.color"
)

// Style holds the colours used for generated link markup. Empty fields fall
// back to the defaults.
type Style struct {
	ButtonBackground string
	ButtonText       string
	LinkColor        string
}

// DefaultStyle returns the built-in colours.
func DefaultStyle() Style {
	return Style{
		ButtonBackground: DefaultButtonBackground,
		ButtonText:       DefaultButtonText,
		LinkColor:        DefaultLinkColor,
	}
}

func (s Style) withDefaults() Style {
	def := DefaultStyle()
	if strings.TrimSpace(s.ButtonBackground) == "" {
		s.ButtonBackground = def.ButtonBackground
	}
	if strings.TrimSpace(s.ButtonText) == "" {
		s.ButtonText = def.ButtonText
	}
	if strings.TrimSpace(s.LinkColor) == "" {
		s.LinkColor = def.LinkColor
	}
	return s
}

// StyleFromTheme resolves link colours from a theme selection. Variant tokens
// override manifest tokens; missing tokens keep the defaults. A nil selector
// yields DefaultStyle.
func StyleFromTheme(selector theme.ThemeSelector, name, variant string) (Style, error) {
	if selector == nil {
		return DefaultStyle(), nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return DefaultStyle(), fmt.Errorf("markup: select theme %q: %w", name, err)
	}
	tokens := selectionTokens(selection)
	return Style{
		ButtonBackground: tokens[TokenButtonBackground],
		ButtonText:       tokens[TokenButtonText],
		LinkColor:        tokens[TokenLinkColor],
	}.withDefaults(), nil
}

func selectionTokens(selection *theme.Selection) map[string]string {
	tokens := make(map[string]string)
	if selection == nil || selection.Manifest == nil {
		return tokens
	}
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range v.Tokens {
			tokens[key] = value
		}
	}
	return tokens
}

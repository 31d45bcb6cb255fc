package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-galaxy/internal/layout"
	"github.com/litescript/ls-galaxy/internal/scene"
)

// Theme tokens that are not category labels.
const (
	TokenStar    = scene.ClassStar
	TokenOrbit   = scene.ClassOrbit
	TokenMessage = scene.ClassMessage
	TokenLink    = scene.ClassLink
	TokenBorder  = "border"
	TokenTitle   = "title"
	TokenText    = "text"
	TokenMuted   = "muted"
	TokenError   = "error"
	TokenAccent  = "accent"
)

// defaultColors maps style tokens to colors. Star category tokens come from
// layout.TypeToClass of common spectral labels.
var defaultColors = map[string]string{
	TokenStar:    "#ffffff",
	TokenOrbit:   "240",
	TokenMessage: "252",
	TokenLink:    "#64ffda",
	TokenBorder:  "#64ffda",
	TokenTitle:   "#ffffff",
	TokenText:    "252",
	TokenMuted:   "60",
	TokenError:   "#E84A27",
	TokenAccent:  "#9D4EDD",

	"yellow-dwarf":       "#ffd700",
	"orange-dwarf":       "#ffa54f",
	"red-dwarf":          "#ff6b4a",
	"white-dwarf":        "#f0f8ff",
	"brown-dwarf":        "#8b5a2b",
	"red-giant":          "#ff4500",
	"red-supergiant":     "#dc143c",
	"blue-giant":         "#87cefa",
	"blue-supergiant":    "#6495ed",
	"neutron-star":       "#e0ffff",
	"binary-star-system": "#ffe4b5",
}

// Theme resolves element colors from style tokens.
type Theme struct {
	colors     map[string]string
	overridden map[string]bool
}

// DefaultTheme returns the built-in colors.
func DefaultTheme() Theme {
	return NewTheme(nil)
}

// NewTheme returns the built-in colors with overrides applied. Override
// keys may be tokens or raw category labels. Planet type tokens start from
// the layout palette.
func NewTheme(overrides map[string]string) Theme {
	planets := layout.PlanetTypes()
	colors := make(map[string]string, len(defaultColors)+len(planets)+len(overrides))
	for k, v := range defaultColors {
		colors[k] = v
	}
	for _, label := range planets {
		colors[layout.TypeToClass(label)] = layout.PlanetColor(label)
	}

	overridden := make(map[string]bool, len(overrides))
	for k, v := range overrides {
		if strings.TrimSpace(v) == "" {
			continue
		}
		token := layout.TypeToClass(strings.TrimSpace(k))
		colors[token] = v
		overridden[token] = true
	}
	return Theme{colors: colors, overridden: overridden}
}

// Token returns the color of a token, or the default star color.
func (t Theme) Token(token string) string {
	if c, ok := t.colors[token]; ok {
		return c
	}
	return t.colors[TokenStar]
}

// ElementColor picks the color of e: a configured override of one of its
// classes, else its explicit color, else the most specific class with a
// theme entry, else the default star color.
func (t Theme) ElementColor(e *scene.Element) string {
	for i := len(e.Classes) - 1; i >= 0; i-- {
		if t.overridden[e.Classes[i]] {
			return t.colors[e.Classes[i]]
		}
	}
	if e.Color != "" {
		return e.Color
	}
	for i := len(e.Classes) - 1; i >= 0; i-- {
		if c, ok := t.colors[e.Classes[i]]; ok {
			return c
		}
	}
	return t.colors[TokenStar]
}

// Style returns a foreground style for a token.
func (t Theme) Style(token string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Token(token)))
}

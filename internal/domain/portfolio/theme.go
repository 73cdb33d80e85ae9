package portfolio

import (
	"errors"
	"fmt"
	"strings"
)

// Theme identifies one of the fixed colour pairs applied to a rendered portfolio.
type Theme string

const (
	ThemeBlue   Theme = "blue"
	ThemePurple Theme = "purple"
	ThemeGreen  Theme = "green"
	ThemeOrange Theme = "orange"

	DefaultTheme = ThemeBlue
)

// Palette is the (primary, secondary) pair every colour-bearing element uses.
type Palette struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
}

var ErrInvalidTheme = errors.New("unknown theme")

var palettes = map[Theme]Palette{
	ThemeBlue:   {Primary: "#3b82f6", Secondary: "#1d4ed8"},
	ThemePurple: {Primary: "#8b5cf6", Secondary: "#7c3aed"},
	ThemeGreen:  {Primary: "#10b981", Secondary: "#059669"},
	ThemeOrange: {Primary: "#f59e0b", Secondary: "#d97706"},
}

var themes = [...]Theme{ThemeBlue, ThemePurple, ThemeGreen, ThemeOrange}

// Themes lists the known themes in display order.
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes[:])
	return out
}

// ParseTheme normalises a user supplied theme name.
func ParseTheme(name string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := palettes[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, name)
	}
	return t, nil
}

// ResolveTheme returns the palette for t, ignoring case and surrounding
// space. Unknown themes are rejected, never defaulted.
func ResolveTheme(t Theme) (Palette, error) {
	p, ok := palettes[Theme(strings.ToLower(strings.TrimSpace(string(t))))]
	if !ok {
		return Palette{}, fmt.Errorf("%w: %q", ErrInvalidTheme, string(t))
	}
	return p, nil
}

func (t Theme) Valid() bool {
	_, ok := palettes[t]
	return ok
}

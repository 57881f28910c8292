package models

// Theme is the persisted UI theme preference.
type Theme string

const (
	ThemeDefault Theme = "default"
	ThemeDark    Theme = "dark"
	ThemePastel  Theme = "pastel"
)

// Themes lists the allowed values in display order.
var Themes = []Theme{ThemeDefault, ThemeDark, ThemePastel}

func (t Theme) Valid() bool {
	switch t {
	case ThemeDefault, ThemeDark, ThemePastel:
		return true
	}
	return false
}

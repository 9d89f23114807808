package models

// Theme is the persisted light/dark preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	// DefaultTheme applies when nothing has been stored yet
	DefaultTheme = ThemeDark
)

// Valid reports whether t is a known theme
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggled returns the opposite theme
func (t Theme) Toggled() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// ThemeRequest sets the visitor's theme
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// ThemeResponse reports the visitor's theme
type ThemeResponse struct {
	BaseResponse
	Theme Theme `json:"theme"`
}

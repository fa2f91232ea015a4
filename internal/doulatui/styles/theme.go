package styles

import "github.com/charmbracelet/lipgloss"

// BaseColors defines global UI colors.
type BaseColors struct {
	Background string
	Foreground string
	Muted      string
	Accent     string
	Border     string
	Error      string
}

// StatusColors defines the accent for each timeline status.
type StatusColors struct {
	Current string
	Past    string
	Future  string
}

// CategoryColors defines the accent for each event category.
type CategoryColors struct {
	Medical   string
	Test      string
	Vaccine   string
	Lifestyle string
	Unknown   string
}

// ChatColors defines transcript colors.
type ChatColors struct {
	User      string
	Assistant string
	Pending   string
}

// ChromeColors defines non-content UI colors.
type ChromeColors struct {
	Header       string
	Footer       string
	Breadcrumb   string
	SelectedItem string
}

// BorderColors defines border colors for pane state.
type BorderColors struct {
	ActivePane   string
	InactivePane string
	Divider      string
}

// Theme defines the doula TUI style/theme tokens.
type Theme struct {
	Name          string
	BorderStyle   string // "rounded", "sharp", "double", "hidden"
	MarkdownStyle string // glamour standard style name

	Base     BaseColors
	Status   StatusColors
	Category CategoryColors
	Chat     ChatColors
	Chrome   ChromeColors
	Borders  BorderColors
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// Lookup returns the named theme, falling back to DefaultTheme.
func Lookup(name string) Theme {
	if theme, ok := Themes[name]; ok {
		return theme
	}
	return DefaultTheme
}

// MutedStyle renders secondary text.
func (t Theme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Muted))
}

// AccentStyle renders highlighted text.
func (t Theme) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Accent))
}

// ErrorStyle renders failures.
func (t Theme) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Error)).Bold(true)
}

// TitleStyle renders screen titles.
func (t Theme) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Accent)).Bold(true)
}

package styles

// DefaultTheme is the baseline dark palette for the doula TUI.
var DefaultTheme = Theme{
	Name:          "default",
	BorderStyle:   "rounded",
	MarkdownStyle: "dark",
	Base: BaseColors{
		Background: "234",
		Foreground: "252",
		Muted:      "245",
		Accent:     "#6C63FF",
		Border:     "240",
		Error:      "203",
	},
	Status: StatusColors{
		Current: "#6C63FF",
		Past:    "#4CAF50",
		Future:  "#CCCCCC",
	},
	Category: CategoryColors{
		Medical:   "#FF6584",
		Test:      "#4DB6AC",
		Vaccine:   "#FFD54F",
		Lifestyle: "#9575CD",
		Unknown:   "#CCCCCC",
	},
	Chat: ChatColors{
		User:      "#6C63FF",
		Assistant: "252",
		Pending:   "245",
	},
	Chrome: ChromeColors{
		Header:       "60",
		Footer:       "237",
		Breadcrumb:   "147",
		SelectedItem: "237",
	},
	Borders: BorderColors{
		ActivePane:   "#6C63FF",
		InactivePane: "240",
		Divider:      "238",
	},
}

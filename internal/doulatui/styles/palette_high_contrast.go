package styles

// HighContrastTheme favors legibility on low-quality terminals.
var HighContrastTheme = Theme{
	Name:          "high-contrast",
	BorderStyle:   "sharp",
	MarkdownStyle: "dark",
	Base: BaseColors{
		Background: "16",
		Foreground: "231",
		Muted:      "250",
		Accent:     "51",
		Border:     "231",
		Error:      "196",
	},
	Status: StatusColors{
		Current: "51",
		Past:    "46",
		Future:  "250",
	},
	Category: CategoryColors{
		Medical:   "197",
		Test:      "43",
		Vaccine:   "226",
		Lifestyle: "177",
		Unknown:   "250",
	},
	Chat: ChatColors{
		User:      "51",
		Assistant: "231",
		Pending:   "250",
	},
	Chrome: ChromeColors{
		Header:       "117",
		Footer:       "159",
		Breadcrumb:   "195",
		SelectedItem: "238",
	},
	Borders: BorderColors{
		ActivePane:   "231",
		InactivePane: "250",
		Divider:      "248",
	},
}

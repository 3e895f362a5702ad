package styles

// DefaultTheme is the baseline palette.
var DefaultTheme = Theme{
	Name: "default",
	Tokens: ThemeTokens{
		Background: "#0C1117",
		Panel:      "#141B24",
		Text:       "#E8EEF4",
		TextMuted:  "#8D9CAF",
		Border:     "#26354A",
		Accent:     "#2BB673",
		Focus:      "#58D68D",
		Success:    "#3FB950",
		Warning:    "#D29922",
		Error:      "#F85149",
		Info:       "#58A6FF",
	},
}

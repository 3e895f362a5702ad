package styles

// HighContrastTheme raises contrast for low-color terminals.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Tokens: ThemeTokens{
		Background: "#000000",
		Panel:      "#000000",
		Text:       "#FFFFFF",
		TextMuted:  "#C0C0C0",
		Border:     "#FFFFFF",
		Accent:     "#00FF87",
		Focus:      "#5FFFAF",
		Success:    "#00FF00",
		Warning:    "#FFFF00",
		Error:      "#FF0000",
		Info:       "#00FFFF",
	},
}

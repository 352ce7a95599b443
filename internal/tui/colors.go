package tui

// Color constants for the countdown theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383"
	ColorHelpText      = "240" // Dark grey for help text

	// Mode accents
	ColorWork   = "#E2483D" // Tomato red
	ColorBreak  = "#4BB37A" // Leaf green
	ColorSwitch = "#E8BE42" // Amber while a switch settles

	ColorError = "#EF4444"
)

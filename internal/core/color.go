package core

// Color is the foreground color of a screen cell.
// Values map to ANSI 256-color codes in the platform renderer.
type Color uint8

// Palette used by the chart renderer and HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorGold
	ColorCoral
	ColorGray
	ColorDarkGray
)

// Bullish returns the candle color for a bullish or bearish body.
// Outliers use the bright variant so they stand out from regular bars.
func Bullish(up, outlier bool) Color {
	switch {
	case up && outlier:
		return ColorBrightGreen
	case up:
		return ColorGreen
	case outlier:
		return ColorBrightRed
	default:
		return ColorRed
	}
}

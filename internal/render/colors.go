package render

import (
	"image/color"

	"github.com/Demilade01/starstrike/internal/game"
)

// CGA 16-color palette indices. Cells store these, not RGB values.
const (
	ColorBlack = iota
	ColorBlue
	ColorGreen
	ColorCyan
	ColorRed
	ColorMagenta
	ColorBrown
	ColorLightGray
	ColorDarkGray
	ColorLightBlue
	ColorLightGreen
	ColorLightCyan
	ColorLightRed
	ColorLightMagenta
	ColorYellow
	ColorWhite
	paletteSize
)

// Palette holds the RGB value of each palette index.
var Palette = [paletteSize]color.RGBA{
	ColorBlack:        rgb(0x00, 0x00, 0x00),
	ColorBlue:         rgb(0x00, 0x00, 0xaa),
	ColorGreen:        rgb(0x00, 0xaa, 0x00),
	ColorCyan:         rgb(0x00, 0xaa, 0xaa),
	ColorRed:          rgb(0xaa, 0x00, 0x00),
	ColorMagenta:      rgb(0xaa, 0x00, 0xaa),
	ColorBrown:        rgb(0xaa, 0x55, 0x00),
	ColorLightGray:    rgb(0xaa, 0xaa, 0xaa),
	ColorDarkGray:     rgb(0x55, 0x55, 0x55),
	ColorLightBlue:    rgb(0x55, 0x55, 0xff),
	ColorLightGreen:   rgb(0x55, 0xff, 0x55),
	ColorLightCyan:    rgb(0x55, 0xff, 0xff),
	ColorLightRed:     rgb(0xff, 0x55, 0x55),
	ColorLightMagenta: rgb(0xff, 0x55, 0xff),
	ColorYellow:       rgb(0xff, 0xff, 0x55),
	ColorWhite:        rgb(0xff, 0xff, 0xff),
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{r, g, b, 0xff} }

// RGBA resolves a palette index. Out-of-range indices read as magenta so they
// stand out on screen.
func RGBA(i uint8) color.RGBA {
	if int(i) < len(Palette) {
		return Palette[i]
	}
	return Palette[ColorLightMagenta]
}

// NoticeColor maps a notice level onto the palette.
func NoticeColor(l game.NoticeLevel) uint8 {
	switch l {
	case game.NoticeFailure:
		return ColorLightRed
	case game.NoticeWarning:
		return ColorYellow
	case game.NoticeReward:
		return ColorLightGreen
	case game.NoticePromotion:
		return ColorWhite
	default:
		return ColorCyan
	}
}

// traitColor grades a trait value: strong, average, weak.
func traitColor(v int) uint8 {
	switch {
	case v >= 75:
		return ColorLightGreen
	case v >= 25:
		return ColorLightGray
	default:
		return ColorDarkGray
	}
}

func difficultyColor(d game.Difficulty) uint8 {
	switch d {
	case game.DifficultyElite:
		return ColorLightMagenta
	case game.DifficultyExpert:
		return ColorLightRed
	case game.DifficultyExperienced:
		return ColorYellow
	default:
		return ColorLightGray
	}
}

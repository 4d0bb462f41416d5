package screen

import (
	"image"
	"image/color"

	"github.com/Demilade01/starstrike/internal/render"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	GlyphWidth  = 16
	GlyphHeight = 16
	atlasSide   = 16 // glyphs per atlas row and column
)

var ink = color.NRGBA{255, 255, 255, 255}

// FontAtlas is a 256-glyph CP437 sheet rasterized once at startup. Glyphs are
// white on transparent and tinted per cell when drawn.
type FontAtlas struct {
	sheet  *ebiten.Image
	glyphs [256]*ebiten.Image
}

// NewFontAtlas rasterizes the sheet. Printable ASCII comes from
// basicfont.Face7x13; box lines, shading blocks and scanner markers are
// painted by hand.
func NewFontAtlas() *FontAtlas {
	img := image.NewNRGBA(image.Rect(0, 0, atlasSide*GlyphWidth, atlasSide*GlyphHeight))
	face := basicfont.Face7x13

	for code := range 256 {
		p := cellPainter{img: img, ox: code % atlasSide * GlyphWidth, oy: code / atlasSide * GlyphHeight}
		paintGlyph(p, face, byte(code))
	}

	a := &FontAtlas{sheet: ebiten.NewImageFromImage(img)}
	for code := range 256 {
		x, y := code%atlasSide*GlyphWidth, code/atlasSide*GlyphHeight
		a.glyphs[code] = a.sheet.SubImage(image.Rect(x, y, x+GlyphWidth, y+GlyphHeight)).(*ebiten.Image)
	}
	return a
}

// Glyph returns the sub-image for a CP437 code.
func (a *FontAtlas) Glyph(code byte) *ebiten.Image {
	return a.glyphs[code]
}

func paintGlyph(p cellPainter, face font.Face, code byte) {
	if r := render.CP437ToUnicode[code]; r >= 32 && r <= 126 {
		p.text(face, r)
		return
	}
	if links, ok := boxLinks[code]; ok {
		p.box(links)
		return
	}
	if shade, ok := shades[code]; ok {
		p.fill(shade)
		return
	}
	if rect, ok := blocks[code]; ok {
		p.rect(rect)
		return
	}
	p.marker(code)
}

// cellPainter draws into one 16x16 cell of the sheet.
type cellPainter struct {
	img    *image.NRGBA
	ox, oy int
}

func (p cellPainter) set(x, y int) {
	if x >= 0 && x < GlyphWidth && y >= 0 && y < GlyphHeight {
		p.img.SetNRGBA(p.ox+x, p.oy+y, ink)
	}
}

// text centers a 7x13 font glyph in the cell with its baseline on row 13.
func (p cellPainter) text(face font.Face, r rune) {
	d := &font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(p.ox+4, p.oy+13),
	}
	d.DrawString(string(r))
}

func (p cellPainter) rect(r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p.set(x, y)
		}
	}
}

func (p cellPainter) fill(on func(x, y int) bool) {
	for y := range GlyphHeight {
		for x := range GlyphWidth {
			if on(x, y) {
				p.set(x, y)
			}
		}
	}
}

// Box line directions.
const (
	linkLeft uint8 = 1 << iota
	linkRight
	linkUp
	linkDown
)

var boxLinks = map[byte]uint8{
	179: linkUp | linkDown,                        // │
	180: linkLeft | linkUp | linkDown,             // ┤
	191: linkLeft | linkDown,                      // ┐
	192: linkRight | linkUp,                       // └
	193: linkLeft | linkRight | linkUp,            // ┴
	194: linkLeft | linkRight | linkDown,          // ┬
	195: linkRight | linkUp | linkDown,            // ├
	196: linkLeft | linkRight,                     // ─
	197: linkLeft | linkRight | linkUp | linkDown, // ┼
	217: linkLeft | linkUp,                        // ┘
	218: linkRight | linkDown,                     // ┌
}

// box draws 2px lines from the cell center to each linked edge.
func (p cellPainter) box(links uint8) {
	const c = 7
	if links&linkLeft != 0 {
		p.rect(image.Rect(0, c, c+2, c+2))
	}
	if links&linkRight != 0 {
		p.rect(image.Rect(c, c, GlyphWidth, c+2))
	}
	if links&linkUp != 0 {
		p.rect(image.Rect(c, 0, c+2, c+2))
	}
	if links&linkDown != 0 {
		p.rect(image.Rect(c, c, c+2, GlyphHeight))
	}
}

var shades = map[byte]func(x, y int) bool{
	176: func(x, y int) bool { return (x+y)%4 == 0 }, // ░
	177: func(x, y int) bool { return (x+y)%2 == 0 }, // ▒
	178: func(x, y int) bool { return (x+y)%4 != 0 }, // ▓
}

var blocks = map[byte]image.Rectangle{
	219: image.Rect(0, 0, GlyphWidth, GlyphHeight),             // █
	220: image.Rect(0, GlyphHeight/2, GlyphWidth, GlyphHeight), // ▄
	221: image.Rect(0, 0, GlyphWidth/2, GlyphHeight),           // ▌
	222: image.Rect(GlyphWidth/2, 0, GlyphWidth, GlyphHeight),  // ▐
	223: image.Rect(0, 0, GlyphWidth, GlyphHeight/2),           // ▀
	254: image.Rect(4, 4, 12, 12),                              // ■
}

// marker paints the ship arrows and asteroid markers the scanner uses.
// Other codes stay blank.
func (p cellPainter) marker(code byte) {
	switch code {
	case 30: // ▲
		p.fill(func(x, y int) bool { return y >= 3 && y < 13 && abs(2*x-15) <= 2*((y-3)/2)+1 })
	case 31: // ▼
		p.fill(func(x, y int) bool { return y >= 3 && y < 13 && abs(2*x-15) <= 2*((12-y)/2)+1 })
	case 16: // ►
		p.fill(func(x, y int) bool { return x >= 3 && x < 13 && abs(2*y-15) <= 2*((12-x)/2)+1 })
	case 17: // ◄
		p.fill(func(x, y int) bool { return x >= 3 && x < 13 && abs(2*y-15) <= 2*((x-3)/2)+1 })
	case 4: // ♦
		p.fill(func(x, y int) bool {
			row := y - 2
			return row >= 0 && row < 12 && abs(2*x-15) <= 2*(min(row, 11-row)/2)+1
		})
	case 7: // •
		p.disc(3)
	case 250: // ·
		p.disc(1)
	case 15: // ☼
		p.disc(3)
		for i := 1; i < 15; i += 2 {
			p.set(i, 8)
			p.set(8, i)
		}
	}
}

func (p cellPainter) disc(r int) {
	p.fill(func(x, y int) bool {
		dx, dy := x-8, y-8
		return dx*dx+dy*dy <= r*r
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

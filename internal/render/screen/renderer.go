// Package screen draws render cell buffers with Ebitengine.
package screen

import (
	"image/color"

	"github.com/Demilade01/starstrike/internal/render"
	"github.com/hajimehoshi/ebiten/v2"
)

// GridRenderer blits a render.CellBuffer onto an Ebitengine image, one atlas
// glyph per cell, tinted with the cell's palette colors.
type GridRenderer struct {
	atlas        *FontAtlas
	cellW, cellH int
	solid        *ebiten.Image // 1x1 white, scaled up for backgrounds
}

// NewGridRenderer sizes cells at cellW x cellH screen pixels.
func NewGridRenderer(atlas *FontAtlas, cellW, cellH int) *GridRenderer {
	solid := ebiten.NewImage(1, 1)
	solid.Fill(color.White)
	return &GridRenderer{atlas: atlas, cellW: cellW, cellH: cellH, solid: solid}
}

// Draw paints every non-empty cell. Black backgrounds and blank glyphs are
// skipped.
func (r *GridRenderer) Draw(dst *ebiten.Image, buf *render.CellBuffer) {
	sx := float64(r.cellW) / GlyphWidth
	sy := float64(r.cellH) / GlyphHeight

	for i, cell := range buf.Cells {
		px := float64(i % buf.Cols * r.cellW)
		py := float64(i / buf.Cols * r.cellH)

		if cell.BG != render.ColorBlack {
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(float64(r.cellW), float64(r.cellH))
			op.GeoM.Translate(px, py)
			op.ColorScale.ScaleWithColor(render.RGBA(cell.BG))
			dst.DrawImage(r.solid, &op)
		}
		if cell.Glyph == ' ' || cell.Glyph == 0 {
			continue
		}
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(px, py)
		op.ColorScale.ScaleWithColor(render.RGBA(cell.FG))
		dst.DrawImage(r.atlas.Glyph(cell.Glyph), &op)
	}
}

// CellAt converts a screen pixel to a cell coordinate.
func (r *GridRenderer) CellAt(px, py int) (x, y int) {
	return px / r.cellW, py / r.cellH
}

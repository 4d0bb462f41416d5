package render

import (
	"math"

	"github.com/Demilade01/starstrike/internal/game"
)

// Rect is a cell-space rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Radar is a top-down view of the field centered on the ship. Screen up is
// world -Z.
type Radar struct {
	Frame Rect
	Scale float64 // world units per cell
}

func (rd Radar) inner() Rect {
	return Rect{X: rd.Frame.X + 1, Y: rd.Frame.Y + 1, W: rd.Frame.W - 2, H: rd.Frame.H - 2}
}

// project maps a world position to a cell. ok is false outside the frame.
func (rd Radar) project(ship, p game.Vec3) (x, y int, ok bool) {
	in := rd.inner()
	d := p.Sub(ship)
	x = in.X + in.W/2 + int(math.Round(d.X/rd.Scale))
	y = in.Y + in.H/2 + int(math.Round(d.Z/rd.Scale))
	return x, y, in.Contains(x, y)
}

// Draw renders the frame, asteroids, projectiles and ship.
func (rd Radar) Draw(buf *CellBuffer, snap game.Snapshot) {
	buf.Box(rd.Frame.X, rd.Frame.Y, rd.Frame.W, rd.Frame.H, ColorDarkGray)
	buf.WriteString(rd.Frame.X+2, rd.Frame.Y, " Scanner ", ColorLightCyan, ColorBlack)

	ship := snap.Ship.Position
	for _, a := range snap.Asteroids {
		if x, y, ok := rd.project(ship, a.Position); ok {
			glyph, fg := asteroidVisuals(a)
			buf.Set(x, y, glyph, fg, ColorBlack)
		}
	}
	for _, p := range snap.Projectiles {
		if x, y, ok := rd.project(ship, p.Position); ok {
			buf.Set(x, y, 7, ColorLightRed, ColorBlack) // •
		}
	}

	in := rd.inner()
	fg := uint8(ColorWhite)
	if snap.Ship.ThrusterIntensity > 0.5 {
		fg = ColorYellow
	}
	buf.Set(in.X+in.W/2, in.Y+in.H/2, ShipGlyph(snap.Ship.Heading), fg, ColorBlack)
}

// AsteroidAt returns the asteroid drawn at cell (x, y), if any. Unmined rocks
// win over mined ones sharing a cell.
func (rd Radar) AsteroidAt(snap game.Snapshot, x, y int) (game.AsteroidView, bool) {
	var found game.AsteroidView
	hit := false
	for _, a := range snap.Asteroids {
		ax, ay, ok := rd.project(snap.Ship.Position, a.Position)
		if !ok || ax != x || ay != y {
			continue
		}
		if !hit || (found.Mined && !a.Mined) {
			found, hit = a, true
		}
	}
	return found, hit
}

// Nearest returns the closest unmined asteroid to the ship within reach.
func Nearest(snap game.Snapshot, reach float64) (game.AsteroidView, bool) {
	var best game.AsteroidView
	bestDist := math.Inf(1)
	for _, a := range snap.Asteroids {
		if a.Mined {
			continue
		}
		if d := a.Position.Dist(snap.Ship.Position); d <= reach && d < bestDist {
			best, bestDist = a, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

// ShipGlyph picks the arrow closest to the ship's nose direction.
func ShipGlyph(heading float64) byte {
	f := game.Forward(heading)
	if math.Abs(f.Z) >= math.Abs(f.X) {
		if f.Z < 0 {
			return 30 // ▲
		}
		return 31 // ▼
	}
	if f.X < 0 {
		return 17 // ◄
	}
	return 16 // ►
}

func asteroidVisuals(a game.AsteroidView) (glyph byte, fg uint8) {
	switch {
	case a.Mined:
		return 250, ColorDarkGray // ·
	case a.Mining:
		return 15, ColorYellow // ☼
	case a.Kind == game.AsteroidRare:
		glyph, fg = '*', ColorLightMagenta
	default:
		glyph, fg = 'o', ColorLightGray
	}
	if a.Size >= 0.8 {
		glyph = 'O'
		if a.Kind == game.AsteroidRare {
			glyph = 4 // ♦
		}
	}
	return glyph, fg
}

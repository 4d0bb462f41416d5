package render

import (
	"math"
	"strings"
	"testing"

	"github.com/Demilade01/starstrike/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellBuffer_WriteStringMapsCP437(t *testing.T) {
	b := NewCellBuffer(10, 2)

	n := b.WriteString(1, 0, "a░é€", ColorWhite, ColorBlack)

	assert.Equal(t, 4, n)
	assert.Equal(t, byte('a'), b.Get(1, 0).Glyph)
	assert.Equal(t, byte(176), b.Get(2, 0).Glyph)
	assert.Equal(t, byte(130), b.Get(3, 0).Glyph)
	assert.Equal(t, byte('?'), b.Get(4, 0).Glyph)
	assert.Equal(t, "a░é?", b.Text(1, 0, 4))
}

func TestCellBuffer_OutOfBounds(t *testing.T) {
	b := NewCellBuffer(3, 3)

	b.Set(-1, 0, 'x', ColorWhite, ColorBlack)
	b.Set(3, 3, 'x', ColorWhite, ColorBlack)

	assert.Equal(t, Cell{}, b.Get(5, 5))
	for _, c := range b.Cells {
		assert.Equal(t, byte(' '), c.Glyph)
	}
}

func TestCP437_RoundTrip(t *testing.T) {
	for code := 1; code < 256; code++ {
		r := CP437ToUnicode[code]
		assert.Equal(t, byte(code), ToCP437(r), "code %d", code)
	}
}

func TestCellBuffer_Box(t *testing.T) {
	b := NewCellBuffer(5, 4)

	b.Box(0, 0, 5, 4, ColorDarkGray)

	assert.Equal(t, "┌───┐", b.Text(0, 0, 5))
	assert.Equal(t, "│   │", b.Text(0, 1, 5))
	assert.Equal(t, "└───┘", b.Text(0, 3, 5))
}

func TestShipGlyph(t *testing.T) {
	assert.Equal(t, byte(30), ShipGlyph(0))
	assert.Equal(t, byte(17), ShipGlyph(math.Pi/2))
	assert.Equal(t, byte(31), ShipGlyph(math.Pi))
	assert.Equal(t, byte(16), ShipGlyph(-math.Pi/2))
}

func radarSnap() game.Snapshot {
	return game.Snapshot{
		Ship: game.ShipState{Position: game.Vec3{X: 3, Z: 3}},
		Asteroids: []game.AsteroidView{
			{ID: "ahead", Kind: game.AsteroidBasic, Position: game.Vec3{X: 3, Z: -3}, Size: 0.5},
			{ID: "right", Kind: game.AsteroidRare, Position: game.Vec3{X: 6, Z: 3}, Size: 0.5},
			{ID: "done", Position: game.Vec3{X: 0, Z: 3}, Mined: true},
			{ID: "far", Position: game.Vec3{X: 500}},
		},
		Projectiles: []game.ProjectileView{{ID: 1, Position: game.Vec3{X: 3, Z: 0}}},
	}
}

func TestRadar_Draw(t *testing.T) {
	rd := Radar{Frame: Rect{X: 0, Y: 0, W: 11, H: 11}, Scale: 1}
	b := NewCellBuffer(11, 11)

	rd.Draw(b, radarSnap())

	// inner area is 9x9 with its center at (5, 5)
	assert.Equal(t, byte(30), b.Get(5, 5).Glyph)
	assert.Equal(t, byte(' '), b.Get(5, 1).Glyph)
	assert.Equal(t, byte(7), b.Get(5, 2).Glyph)
	assert.Equal(t, byte('*'), b.Get(8, 5).Glyph)
	assert.Equal(t, uint8(ColorLightMagenta), b.Get(8, 5).FG)
	assert.Equal(t, byte(250), b.Get(2, 5).Glyph)
}

func TestRadar_AsteroidAtAndNearest(t *testing.T) {
	rd := Radar{Frame: Rect{X: 0, Y: 0, W: 21, H: 21}, Scale: 1}
	snap := radarSnap()

	a, ok := rd.AsteroidAt(snap, 10, 4)
	require.True(t, ok)
	assert.Equal(t, "ahead", a.ID)
	_, ok = rd.AsteroidAt(snap, 1, 1)
	assert.False(t, ok)

	n, ok := Nearest(snap, 10)
	require.True(t, ok)
	assert.Equal(t, "right", n.ID)
	_, ok = Nearest(snap, 1)
	assert.False(t, ok)
}

func TestDrawFrame_MissionPanel(t *testing.T) {
	b := NewCellBuffer(Cols, Rows)
	snap := radarSnap()
	snap.Player = game.PlayerView{ID: "p1", Rank: game.RankExperienced, XP: 150, NextRankXP: 500, Credits: 1500,
		Traits: game.DefaultTraits().Map()}
	snap.Mined, snap.Quota = 2, 5
	snap.Active = &game.MissionView{
		Mission:   game.Mission{Title: "Extract 100 units of basic minerals", Type: game.MissionMiningQuota, TimeLimit: 3600},
		Remaining: 3599, Limited: true,
	}
	snap.Notices = []game.Notice{{Text: "Mission accepted", Level: game.NoticeInfo}}

	DrawFrame(b, snap)

	assert.Equal(t, "StarStrike", b.Text(2, 0, 10))
	assert.True(t, strings.Contains(b.Text(0, 0, Cols), "Experienced"))
	assert.Equal(t, "Extract 100 units", b.Text(2, missionRow+1, 17))
	assert.True(t, strings.Contains(b.Text(0, missionRow+1, Cols), "T-0:59:59"))
	assert.True(t, strings.Contains(b.Text(0, missionRow+2, Cols), "2/5 asteroids"))
	assert.Equal(t, "Mission accepted", b.Text(2, commsRow+1, 16))
	assert.Equal(t, uint8(ColorCyan), b.Get(2, commsRow+1).FG)
}

func TestDrawFrame_Board(t *testing.T) {
	b := NewCellBuffer(Cols, Rows)
	snap := game.Snapshot{Available: []game.Mission{
		{Title: "Explore local sector", Difficulty: game.DifficultyRookie},
		{Title: "Escort mining convoy", Difficulty: game.DifficultyExperienced},
	}}

	DrawFrame(b, snap)

	assert.Equal(t, "[1] Explore local sector", b.Text(2, missionRow+1, 24))
	assert.Equal(t, "[2] Escort mining convoy", b.Text(2, missionRow+2, 24))
	assert.Equal(t, uint8(ColorYellow), b.Get(2, missionRow+2).FG)
}

func TestDrawBar(t *testing.T) {
	b := NewCellBuffer(30, 1)

	drawBar(b, 0, 0, "XP", 5, 10, 10, ColorLightGreen)

	assert.Equal(t, "XP", b.Text(0, 0, 2))
	assert.Equal(t, "█████░░░░░", b.Text(7, 0, 10))

	drawBar(b, 0, 0, "XP", 50, 10, 10, ColorLightGreen)
	assert.Equal(t, "██████████", b.Text(7, 0, 10))
}

func TestClock(t *testing.T) {
	assert.Equal(t, "1:00:00", clock(3600))
	assert.Equal(t, "0:01:05", clock(65.9))
	assert.Equal(t, "0:00:00", clock(-3))
}

func TestPalette(t *testing.T) {
	assert.Equal(t, uint8(0xff), RGBA(ColorYellow).R)
	assert.Equal(t, uint8(0x55), RGBA(ColorYellow).B)
	assert.Equal(t, Palette[ColorLightMagenta], RGBA(200))

	assert.Equal(t, uint8(ColorLightRed), NoticeColor(game.NoticeFailure))
	assert.Equal(t, uint8(ColorCyan), NoticeColor(game.NoticeInfo))
	assert.Equal(t, uint8(ColorDarkGray), traitColor(5))
	assert.Equal(t, uint8(ColorLightGreen), traitColor(80))
}

package render

import (
	"fmt"

	"github.com/Demilade01/starstrike/internal/game"
)

// Screen layout in cells.
const (
	Cols = 80
	Rows = 45

	panelX     = 50 // right-hand pilot/ship panel
	missionRow = 28
	commsRow   = 36
	commsMax   = 7
	boardMax   = 4 // available missions listed, keys 1..4
)

// ScannerView is the radar used by DrawFrame.
var ScannerView = Radar{Frame: Rect{X: 1, Y: 2, W: 47, H: 25}, Scale: 1.5}

// DrawFrame clears buf and renders one full HUD frame for snap.
func DrawFrame(buf *CellBuffer, snap game.Snapshot) {
	buf.Clear()

	// Title bar
	buf.WriteString(2, 0, "StarStrike", ColorWhite, ColorBlack)
	buf.WriteString(14, 0, fmt.Sprintf("[ %s ]", snap.Player.Rank.Title()), ColorLightCyan, ColorBlack)
	buf.WriteString(Cols-22, 0, fmt.Sprintf("Credits: %9d", snap.Player.Credits), ColorYellow, ColorBlack)

	ScannerView.Draw(buf, snap)
	drawPilot(buf, panelX, 2, snap)
	drawShip(buf, panelX, 17, snap)
	drawMission(buf, 2, missionRow, snap)
	drawComms(buf, 2, commsRow, snap.Notices)

	buf.WriteString(2, Rows-1, "WASD/QE: Fly  Space: Fire  M: Mine  1-4: Accept  X: Abandon  R: Reset", ColorDarkGray, ColorBlack)
}

func drawPilot(buf *CellBuffer, x, y int, snap game.Snapshot) {
	p := snap.Player
	buf.WriteString(x, y, "--- Pilot ---", ColorLightCyan, ColorBlack)
	buf.WriteString(x, y+1, p.ID, ColorWhite, ColorBlack)

	if p.NextRankXP > 0 {
		drawBar(buf, x, y+2, "XP", float64(p.XP), float64(p.NextRankXP), 14, ColorLightGreen)
		buf.WriteString(x+19, y+2, fmt.Sprintf("%d/%d", p.XP, p.NextRankXP), ColorLightGray, ColorBlack)
	} else {
		buf.WriteString(x, y+2, fmt.Sprintf("XP %d (max rank)", p.XP), ColorLightGreen, ColorBlack)
	}

	row := y + 4
	for id := game.TraitID(0); id < game.TraitCount; id++ {
		v := p.Traits[id.String()]
		buf.WriteString(x, row, fmt.Sprintf("%-17s %3d", game.TraitName(id), v), traitColor(v), ColorBlack)
		row++
	}

	row++
	for _, g := range p.Stockpile {
		buf.WriteString(x, row, fmt.Sprintf("%-17s %5d", game.ResourceName(g.Kind), g.Amount), ColorLightGray, ColorBlack)
		row++
	}
}

func drawShip(buf *CellBuffer, x, y int, snap game.Snapshot) {
	s, st := snap.Ship, snap.Stats
	buf.WriteString(x, y, "--- Ship ---", ColorLightCyan, ColorBlack)
	drawBar(buf, x, y+1, "Speed", s.Speed(), st.MaxSpeed, 14, ColorLightBlue)
	buf.WriteString(x+21, y+1, fmt.Sprintf("%4.1f", s.Speed()), ColorLightGray, ColorBlack)
	drawBar(buf, x, y+2, "Thrust", s.ThrusterIntensity, 1, 14, ColorYellow)

	if s.WeaponCooldown > 0 {
		buf.WriteString(x, y+3, fmt.Sprintf("Guns   recharging %.2fs", s.WeaponCooldown), ColorDarkGray, ColorBlack)
	} else {
		buf.WriteString(x, y+3, "Guns   ready", ColorLightGreen, ColorBlack)
	}
	buf.WriteString(x, y+4, fmt.Sprintf("Shots  %d in flight", len(snap.Projectiles)), ColorLightGray, ColorBlack)
	buf.WriteString(x, y+5, fmt.Sprintf("Pos    %6.1f %6.1f", s.Position.X, s.Position.Z), ColorDarkGray, ColorBlack)
	if snap.Turning {
		buf.WriteString(x, y+6, "Turning", ColorLightGray, ColorBlack)
	}
}

func drawMission(buf *CellBuffer, x, y int, snap game.Snapshot) {
	buf.WriteString(x, y, "--- Mission ---", ColorLightCyan, ColorBlack)

	if a := snap.Active; a != nil {
		buf.WriteString(x, y+1, a.Mission.Title, ColorWhite, ColorBlack)
		if a.Limited {
			clr := uint8(ColorLightGray)
			if a.Remaining < a.Mission.TimeLimit*0.1 {
				clr = ColorLightRed
			}
			buf.WriteString(x+48, y+1, "T-"+clock(a.Remaining), clr, ColorBlack)
		}
		if a.Mission.Type == game.MissionMiningQuota {
			drawBar(buf, x, y+2, "Quota", float64(snap.Mined), float64(snap.Quota), 20, ColorLightGreen)
			buf.WriteString(x+27, y+2, fmt.Sprintf("%d/%d asteroids", snap.Mined, snap.Quota), ColorLightGray, ColorBlack)
		}
		for _, ast := range snap.Asteroids {
			if ast.Mining {
				drawBar(buf, x, y+3, "Drill", float64(ast.Progress), game.MaxProgress, 20, ColorYellow)
				buf.WriteString(x+27, y+3, ast.ID, ColorLightGray, ColorBlack)
				break
			}
		}
		return
	}

	if len(snap.Available) == 0 {
		buf.WriteString(x, y+1, "No contracts on the board", ColorDarkGray, ColorBlack)
		return
	}
	for i, m := range snap.Available {
		if i >= boardMax {
			break
		}
		line := fmt.Sprintf("[%d] %-44s %s", i+1, clip(m.Title, 44), m.Difficulty)
		buf.WriteString(x, y+1+i, line, difficultyColor(m.Difficulty), ColorBlack)
	}
}

func drawComms(buf *CellBuffer, x, y int, notices []game.Notice) {
	buf.WriteString(x, y, "--- Comms ---", ColorLightCyan, ColorBlack)
	if len(notices) > commsMax {
		notices = notices[len(notices)-commsMax:]
	}
	for i, n := range notices {
		buf.WriteString(x, y+1+i, n.Text, NoticeColor(n.Level), ColorBlack)
	}
}

// drawBar writes a label and a width-cell bar filled val/limit.
func drawBar(buf *CellBuffer, x, y int, label string, val, limit float64, width int, clr uint8) {
	if limit <= 0 {
		limit = 1
	}
	filled := int(float64(width) * min(1, max(0, val)/limit))

	buf.WriteString(x, y, label, ColorLightGray, ColorBlack)
	for i := 0; i < width; i++ {
		if i < filled {
			buf.Set(x+7+i, y, 219, clr, ColorBlack) // █
		} else {
			buf.Set(x+7+i, y, 176, ColorDarkGray, ColorBlack) // ░
		}
	}
}

func clock(sec float64) string {
	s := int(max(0, sec))
	return fmt.Sprintf("%d:%02d:%02d", s/3600, s/60%60, s%60)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}

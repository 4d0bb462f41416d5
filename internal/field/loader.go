package field

import (
	"encoding/json"
	"fmt"

	"github.com/Demilade01/starstrike/internal/game"
)

// Layout is the JSON definition of a hand-built asteroid field. Rocks come
// from the explicit list, the ASCII chart, or both.
type Layout struct {
	Name      string              `json:"name"`
	Cell      float64             `json:"cell"` // world units per chart cell
	Chart     []string            `json:"chart"`
	Asteroids []game.AsteroidSpec `json:"asteroids"`
}

// LoadLayout parses a Layout from JSON bytes.
func LoadLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse field layout: %w", err)
	}
	if l.Cell <= 0 {
		l.Cell = 1
	}
	seen := make(map[string]bool, len(l.Asteroids))
	for _, a := range l.Asteroids {
		if a.ID == "" {
			return nil, fmt.Errorf("field layout %q: asteroid without id", l.Name)
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("field layout %q: duplicate asteroid %q", l.Name, a.ID)
		}
		seen[a.ID] = true
	}
	return &l, nil
}

// Specs flattens the layout into asteroid specs. Chart rows lie on the y=0
// plane centered on the origin, row 0 farthest ahead (most negative z).
func (l *Layout) Specs() []game.AsteroidSpec {
	out := append([]game.AsteroidSpec(nil), l.Asteroids...)
	rows := len(l.Chart)
	n := 0
	for y, row := range l.Chart {
		cols := len(row)
		for x, ch := range row {
			kind, size, ok := charToAsteroid(ch)
			if !ok {
				continue
			}
			out = append(out, game.AsteroidSpec{
				ID:   fmt.Sprintf("chart_%d", n),
				Kind: kind,
				Position: game.Vec3{
					X: (float64(x) - float64(cols-1)/2) * l.Cell,
					Z: (float64(y) - float64(rows-1)/2) * l.Cell,
				},
				Size: size,
			})
			n++
		}
	}
	return out
}

func charToAsteroid(ch rune) (game.AsteroidKind, float64, bool) {
	switch ch {
	case 'o':
		return game.AsteroidBasic, 0.5, true
	case 'O':
		return game.AsteroidBasic, 0.9, true
	case '*':
		return game.AsteroidRare, 0.5, true
	case '@':
		return game.AsteroidRare, 0.9, true
	default:
		return 0, 0, false
	}
}

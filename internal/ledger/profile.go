package ledger

import (
	"fmt"

	"github.com/Demilade01/starstrike/internal/game"
)

// profile is the wire form of a pilot.
type profile struct {
	ID                string               `json:"id"`
	Traits            map[string]int       `json:"traits"`
	TotalXP           int                  `json:"totalXp"`
	Credits           int                  `json:"credits"`
	Rank              string               `json:"rank,omitempty"` // informational; always re-derived
	Resources         []game.ResourceGrant `json:"resources,omitempty"`
	CompletedMissions []string             `json:"completedMissions,omitempty"`
}

func toProfile(p game.Player) profile {
	return profile{
		ID:                p.ID,
		Traits:            p.Traits.Map(),
		TotalXP:           p.TotalXP,
		Credits:           p.Credits,
		Rank:              p.Rank().String(),
		Resources:         p.Stockpile.Grants(),
		CompletedMissions: p.CompletedMissions,
	}
}

// player converts the wire form, starting from the default profile for any
// trait the record leaves out.
func (w profile) player() (game.Player, error) {
	p := game.NewPlayer(w.ID)
	for key, v := range w.Traits {
		id, err := game.ParseTrait(key)
		if err != nil {
			return game.Player{}, fmt.Errorf("profile %s: %w", w.ID, err)
		}
		p.Traits[id] = v
	}
	p.Traits = p.Traits.Clamped()
	p.TotalXP = max(0, w.TotalXP)
	p.Credits = w.Credits
	for _, g := range w.Resources {
		p.Stockpile.Add(g)
	}
	p.CompletedMissions = append([]string(nil), w.CompletedMissions...)
	return p, nil
}

package game

import "math"

// StartingCredits is the balance of a fresh pilot.
const StartingCredits = 1000

// Player is the progression state a session carries. Rank is always derived.
type Player struct {
	ID                string
	Traits            Traits
	TotalXP           int
	Credits           int
	Stockpile         Stockpile
	CompletedMissions []string
}

// NewPlayer returns a pilot with the default starting profile.
func NewPlayer(id string) Player {
	return Player{
		ID:      id,
		Traits:  DefaultTraits(),
		Credits: StartingCredits,
	}
}

// Rank derives the consortium rank from XP and leadership.
func (p Player) Rank() Rank {
	return RankFor(p.TotalXP, p.Traits[TraitLeadership])
}

// Clone returns a deep copy.
func (p Player) Clone() Player {
	p.CompletedMissions = append([]string(nil), p.CompletedMissions...)
	return p
}

// addXP adds a non-negative gain, saturating at math.MaxInt.
func addXP(total, gain int) int {
	if gain <= 0 {
		return total
	}
	if total > math.MaxInt-gain {
		return math.MaxInt
	}
	return total + gain
}

// applyRewards grants a successful mission's rewards: trait upgrades clamped
// to MaxTrait, credits to the balance, other resources to the stockpile, then XP.
func (p *Player) applyRewards(missionID string, r Rewards) {
	for _, up := range r.TraitUpgrades {
		if up.Trait < TraitCount {
			p.Traits.Upgrade(up.Trait, up.Increase)
		}
	}
	for _, g := range r.Resources {
		if g.Kind == ResourceCredits {
			p.Credits += g.Amount
			continue
		}
		p.Stockpile.Add(g)
	}
	p.TotalXP = addXP(p.TotalXP, r.XP)
	p.CompletedMissions = append(p.CompletedMissions, missionID)
}

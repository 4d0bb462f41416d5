package game

// Snapshot is a value copy of everything presentation needs for one frame.
type Snapshot struct {
	Tick        uint64           `json:"tick"`
	Time        float64          `json:"time"`
	Ship        ShipState        `json:"ship"`
	Turning     bool             `json:"turning"`
	Stats       ShipStats        `json:"stats"`
	Projectiles []ProjectileView `json:"projectiles"`
	Asteroids   []AsteroidView   `json:"asteroids"`
	Mined       int              `json:"mined"`
	Quota       int              `json:"quota"`
	Active      *MissionView     `json:"active,omitempty"`
	Available   []Mission        `json:"available"`
	Player      PlayerView       `json:"player"`
	Notices     []Notice         `json:"notices"`
}

// MissionView is the active mission with its clock.
type MissionView struct {
	Mission   Mission `json:"mission"`
	Elapsed   float64 `json:"elapsed"`
	Remaining float64 `json:"remaining"`
	Limited   bool    `json:"limited"`
}

// PlayerView is the HUD-facing progression summary.
type PlayerView struct {
	ID         string          `json:"id"`
	Traits     map[string]int  `json:"traits"`
	Rank       Rank            `json:"rank"`
	XP         int             `json:"xp"`
	NextRankXP int             `json:"nextRankXp,omitempty"`
	Credits    int             `json:"credits"`
	Stockpile  []ResourceGrant `json:"stockpile,omitempty"`
	Completed  int             `json:"completed"`
}

// Snapshot copies the session state. Notices are limited to the newest n.
func (s *Session) Snapshot(notices int) Snapshot {
	p := s.missions.player
	rank := p.Rank()
	next, _ := NextRankXP(rank)

	snap := Snapshot{
		Tick:        s.ticks,
		Time:        s.elapsed,
		Ship:        s.ship,
		Turning:     s.ship.Turning(s.tuning.Flight.TurnEpsilon),
		Stats:       s.stats,
		Projectiles: s.shots.Live(),
		Asteroids:   s.mining.Asteroids(),
		Mined:       s.mining.MinedCount(),
		Quota:       s.tuning.Mining.Quota,
		Available:   s.missions.Available(),
		Player: PlayerView{
			ID:         p.ID,
			Traits:     p.Traits.Map(),
			Rank:       rank,
			XP:         p.TotalXP,
			NextRankXP: next,
			Credits:    p.Credits,
			Stockpile:  p.Stockpile.Grants(),
			Completed:  len(p.CompletedMissions),
		},
		Notices: s.notices.Recent(notices),
	}
	if am, ok := s.missions.Active(); ok {
		left, limited := am.Remaining()
		snap.Active = &MissionView{Mission: am.Mission, Elapsed: am.Elapsed, Remaining: left, Limited: limited}
	}
	return snap
}

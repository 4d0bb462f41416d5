package game

import (
	"fmt"
	"slices"
)

// Outcome is how a mission left the Active state.
type Outcome uint8

const (
	OutcomeCompleted Outcome = iota
	OutcomeAbandoned
)

func (o Outcome) String() string {
	if o == OutcomeCompleted {
		return "completed"
	}
	return "abandoned"
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Resolution is a terminal mission record.
type Resolution struct {
	Mission Mission
	Outcome Outcome
	Reason  string
	Elapsed float64 // seconds spent active
	Rank    Rank    // rank after rewards
}

// ActiveMission is the accepted mission plus how long it has run.
type ActiveMission struct {
	Mission Mission
	Elapsed float64
}

// Remaining returns seconds left on the time limit, or false if unlimited.
func (a ActiveMission) Remaining() (float64, bool) {
	if a.Mission.TimeLimit <= 0 {
		return 0, false
	}
	return max(0, a.Mission.TimeLimit-a.Elapsed), true
}

// Lifecycle is the mission state machine: Available -> Active -> Completed or
// Abandoned. At most one mission is Active. It owns the player's progression.
type Lifecycle struct {
	player    Player
	available []Mission
	active    *ActiveMission
	outcomes  []Resolution
	maxLog    int
}

// NewLifecycle starts with the given player and no missions.
func NewLifecycle(p Player, outcomeLog int) *Lifecycle {
	if outcomeLog <= 0 {
		outcomeLog = 20
	}
	p.Traits = p.Traits.Clamped()
	return &Lifecycle{player: p, maxLog: outcomeLog}
}

// Player returns a copy of the current progression state.
func (l *Lifecycle) Player() Player { return l.player.Clone() }

// Available returns a copy of the offered missions.
func (l *Lifecycle) Available() []Mission { return slices.Clone(l.available) }

// Offer adds missions to the Available set, skipping IDs already present.
func (l *Lifecycle) Offer(ms ...Mission) {
	for _, m := range ms {
		if l.indexOf(m.ID) < 0 && (l.active == nil || l.active.Mission.ID != m.ID) {
			l.available = append(l.available, m)
		}
	}
}

// ReplaceAvailable swaps the offered set for ms. The active mission is untouched.
func (l *Lifecycle) ReplaceAvailable(ms []Mission) {
	l.available = l.available[:0]
	l.Offer(ms...)
}

// Active returns the active mission, if any.
func (l *Lifecycle) Active() (ActiveMission, bool) {
	if l.active == nil {
		return ActiveMission{}, false
	}
	return *l.active, true
}

// Outcomes returns the most recent terminal records, oldest first.
func (l *Lifecycle) Outcomes() []Resolution { return slices.Clone(l.outcomes) }

func (l *Lifecycle) indexOf(id string) int {
	return slices.IndexFunc(l.available, func(m Mission) bool { return m.ID == id })
}

// Start moves an Available mission to Active. It fails with
// ErrInvalidTransition if a mission is already active or id is not offered,
// and with a *RequirementNotMetError listing every failed gate.
func (l *Lifecycle) Start(id string) (Mission, error) {
	if l.active != nil {
		return Mission{}, fmt.Errorf("%w: mission %s is already active", ErrInvalidTransition, l.active.Mission.ID)
	}
	i := l.indexOf(id)
	if i < 0 {
		return Mission{}, fmt.Errorf("%w: mission %s is not available", ErrInvalidTransition, id)
	}
	m := l.available[i]
	if unmet := m.Requirements.Check(&l.player); len(unmet) > 0 {
		return Mission{}, &RequirementNotMetError{MissionID: m.ID, Unmet: unmet}
	}
	l.available = slices.Delete(l.available, i, i+1)
	l.active = &ActiveMission{Mission: m}
	return m, nil
}

// Complete resolves the active mission. On success the rewards are applied
// and the rank re-derived; on failure the mission is abandoned with nothing
// granted.
func (l *Lifecycle) Complete(success bool) (Resolution, error) {
	if l.active == nil {
		return Resolution{}, fmt.Errorf("%w: no active mission", ErrInvalidTransition)
	}
	if success {
		l.player.applyRewards(l.active.Mission.ID, l.active.Mission.Rewards)
		return l.resolve(OutcomeCompleted, ""), nil
	}
	return l.resolve(OutcomeAbandoned, "abandoned"), nil
}

// Advance adds dt to the active mission's clock. With enforce set, a mission
// past its time limit is abandoned and its resolution returned.
func (l *Lifecycle) Advance(dt float64, enforce bool) (Resolution, bool) {
	if l.active == nil {
		return Resolution{}, false
	}
	l.active.Elapsed += dt
	if !enforce {
		return Resolution{}, false
	}
	if left, limited := l.active.Remaining(); limited && left <= 0 {
		return l.resolve(OutcomeAbandoned, "time limit"), true
	}
	return Resolution{}, false
}

// Restore replaces the player and clears every mission.
func (l *Lifecycle) Restore(p Player) {
	p.Traits = p.Traits.Clamped()
	l.player = p
	l.available = nil
	l.active = nil
	l.outcomes = nil
}

// Drop discards the active mission without recording an outcome.
func (l *Lifecycle) Drop() {
	l.active = nil
}

func (l *Lifecycle) resolve(o Outcome, reason string) Resolution {
	res := Resolution{
		Mission: l.active.Mission,
		Outcome: o,
		Reason:  reason,
		Elapsed: l.active.Elapsed,
		Rank:    l.player.Rank(),
	}
	l.active = nil
	if len(l.outcomes) >= l.maxLog {
		copy(l.outcomes, l.outcomes[1:])
		l.outcomes[len(l.outcomes)-1] = res
	} else {
		l.outcomes = append(l.outcomes, res)
	}
	return res
}

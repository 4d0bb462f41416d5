package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
)

// MaxProgress is the mining progress at which an asteroid is depleted.
const MaxProgress = 100

// AsteroidKind is the ore grade of an asteroid.
type AsteroidKind uint8

const (
	AsteroidBasic AsteroidKind = iota
	AsteroidRare
)

func (k AsteroidKind) String() string {
	if k == AsteroidRare {
		return "rare"
	}
	return "basic"
}

// MarshalText implements encoding.TextMarshaler.
func (k AsteroidKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *AsteroidKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "basic":
		*k = AsteroidBasic
	case "rare":
		*k = AsteroidRare
	default:
		return fmt.Errorf("unknown asteroid kind %q", b)
	}
	return nil
}

// AsteroidSpec places one asteroid in the field.
type AsteroidSpec struct {
	ID       string       `json:"id"`
	Kind     AsteroidKind `json:"kind"`
	Position Vec3         `json:"position"`
	Size     float64      `json:"size"`
}

// Placement is the ECS component for a static world position.
type Placement struct {
	Position Vec3
	Size     float64
}

// Asteroid is the ECS component for a mineable rock.
type Asteroid struct {
	ID       string
	Kind     AsteroidKind
	Progress int
	Mined    bool
}

// AsteroidView is the read-only copy handed to presentation.
type AsteroidView struct {
	ID       string       `json:"id"`
	Kind     AsteroidKind `json:"kind"`
	Position Vec3         `json:"position"`
	Size     float64      `json:"size"`
	Progress int          `json:"progress"`
	Mined    bool         `json:"mined"`
	Mining   bool         `json:"mining"`
}

// MissionGate exposes the active mission to components that need to check it.
type MissionGate interface {
	Active() (ActiveMission, bool)
}

// Mining owns the asteroid set and every in-flight mining operation.
type Mining struct {
	tuning MiningTuning
	sched  *Scheduler
	gate   MissionGate
	post   func(Event)

	world *ecs.World
	rocks *ecs.Map2[Placement, Asteroid]

	byID  map[string]ecs.Entity
	order []string
	ops   map[string]TimerID
	mined int
}

// NewMining registers asteroid components in w. Completion events go to post.
func NewMining(w *ecs.World, sched *Scheduler, gate MissionGate, mt MiningTuning, post func(Event)) *Mining {
	return &Mining{
		tuning: mt,
		sched:  sched,
		gate:   gate,
		post:   post,
		world:  w,
		rocks:  ecs.NewMap2[Placement, Asteroid](w),
		byID:   make(map[string]ecs.Entity),
		ops:    make(map[string]TimerID),
	}
}

// Populate replaces the asteroid field. Pending operations are cancelled.
func (m *Mining) Populate(specs []AsteroidSpec) {
	m.Clear()
	for _, sp := range specs {
		if _, dup := m.byID[sp.ID]; dup {
			continue
		}
		e := m.rocks.NewEntity(
			&Placement{Position: sp.Position, Size: sp.Size},
			&Asteroid{ID: sp.ID, Kind: sp.Kind},
		)
		m.byID[sp.ID] = e
		m.order = append(m.order, sp.ID)
	}
}

// Clear removes every asteroid and cancels in-flight operations.
func (m *Mining) Clear() {
	m.cancelOps()
	for _, e := range m.byID {
		m.world.RemoveEntity(e)
	}
	clear(m.byID)
	m.order = m.order[:0]
	m.mined = 0
}

// Restore cancels operations and returns every asteroid to unmined, zero
// progress. The mined count is reset.
func (m *Mining) Restore() {
	m.cancelOps()
	for _, e := range m.byID {
		_, a := m.rocks.Get(e)
		a.Progress = 0
		a.Mined = false
	}
	m.mined = 0
}

func (m *Mining) cancelOps() {
	for id, t := range m.ops {
		m.sched.Cancel(t)
		delete(m.ops, id)
	}
}

// Mine begins extracting asteroidID. It requires an active mining_quota
// mission and an asteroid that is neither depleted nor already being mined.
func (m *Mining) Mine(asteroidID string) error {
	am, ok := m.gate.Active()
	if !ok || am.Mission.Type != MissionMiningQuota {
		return ErrNoMiningMission
	}
	e, ok := m.byID[asteroidID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAsteroid, asteroidID)
	}
	if _, a := m.rocks.Get(e); a.Mined {
		return fmt.Errorf("%w: %s", ErrAsteroidMined, asteroidID)
	}
	if _, busy := m.ops[asteroidID]; busy {
		return fmt.Errorf("%w: %s", ErrMiningInProgress, asteroidID)
	}

	m.ops[asteroidID] = m.sched.Every(m.tuning.StepInterval, func() bool {
		return m.step(asteroidID)
	})
	return nil
}

// step adds one increment of progress. It re-reads the asteroid each time
// rather than trusting anything captured when the operation began.
func (m *Mining) step(id string) bool {
	e, ok := m.byID[id]
	if !ok || !m.world.Alive(e) {
		delete(m.ops, id)
		return false
	}
	_, a := m.rocks.Get(e)
	if a.Mined {
		delete(m.ops, id)
		return false
	}
	a.Progress = min(MaxProgress, a.Progress+m.tuning.StepPoints)
	if a.Progress < MaxProgress {
		return true
	}
	a.Mined = true
	m.mined++
	delete(m.ops, id)
	m.post(MiningCompleted{AsteroidID: id, Kind: a.Kind})
	return false
}

// MinedCount returns asteroids depleted since the last reset.
func (m *Mining) MinedCount() int { return m.mined }

// ResetCount zeroes the mined count.
func (m *Mining) ResetCount() { m.mined = 0 }

// InProgress reports whether asteroidID is being mined.
func (m *Mining) InProgress(asteroidID string) bool {
	_, ok := m.ops[asteroidID]
	return ok
}

// Asteroid returns one asteroid by ID.
func (m *Mining) Asteroid(id string) (AsteroidView, bool) {
	e, ok := m.byID[id]
	if !ok {
		return AsteroidView{}, false
	}
	return m.view(e), true
}

// Asteroids returns every asteroid in placement order.
func (m *Mining) Asteroids() []AsteroidView {
	out := make([]AsteroidView, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.view(m.byID[id]))
	}
	return out
}

func (m *Mining) view(e ecs.Entity) AsteroidView {
	p, a := m.rocks.Get(e)
	_, busy := m.ops[a.ID]
	return AsteroidView{
		ID:       a.ID,
		Kind:     a.Kind,
		Position: p.Position,
		Size:     p.Size,
		Progress: a.Progress,
		Mined:    a.Mined,
		Mining:   busy,
	}
}

package game

import (
	"cmp"
	"slices"

	"github.com/mlange-42/ark/ecs"
)

// cooldownEpsilon absorbs float residue so a cooldown that has counted down
// by exactly its own length reads as ready.
const cooldownEpsilon = 1e-9

// Shot is a projectile about to be spawned at a hardpoint.
type Shot struct {
	Position  Vec3
	Direction Vec3
}

// TryFire counts the weapon cooldown down and, if the guns are ready and the
// fire control is held, emits one shot per hardpoint along the ship's nose.
func TryFire(s ShipState, in Intent, stats ShipStats, wt WeaponTuning, dt float64) (ShipState, []Shot) {
	s.WeaponCooldown -= dt
	if s.WeaponCooldown < cooldownEpsilon {
		s.WeaponCooldown = 0
	}
	if !in.Fire || s.WeaponCooldown > 0 {
		return s, nil
	}

	fwd := s.Forward()
	shots := []Shot{
		{Position: s.Position.Add(wt.LeftHardpoint.RotateY(s.Heading)), Direction: fwd},
		{Position: s.Position.Add(wt.RightHardpoint.RotateY(s.Heading)), Direction: fwd},
	}
	s.WeaponCooldown = stats.WeaponCooldownTime
	return s, shots
}

// Kinematic is the ECS component for anything that flies in a straight line.
type Kinematic struct {
	Position  Vec3
	Direction Vec3
}

// Projectile is the ECS component for a laser bolt.
type Projectile struct {
	ID   uint64
	Age  float64
	Born uint64 // store tick the bolt was spawned on
}

// ProjectileView is the read-only copy handed to presentation.
type ProjectileView struct {
	ID        uint64  `json:"id"`
	Position  Vec3    `json:"position"`
	Direction Vec3    `json:"direction"`
	Age       float64 `json:"age"`
}

// Projectiles is the live projectile set, backed by the ECS world.
type Projectiles struct {
	speed    float64
	lifetime float64

	spawner *ecs.Map2[Kinematic, Projectile]
	filter  *ecs.Filter2[Kinematic, Projectile]
	world   *ecs.World

	nextID uint64
	tick   uint64
	doomed []ecs.Entity
}

// NewProjectiles registers projectile components in w.
func NewProjectiles(w *ecs.World, wt WeaponTuning) *Projectiles {
	return &Projectiles{
		speed:    wt.ProjectileSpeed,
		lifetime: wt.ProjectileLifetime,
		spawner:  ecs.NewMap2[Kinematic, Projectile](w),
		filter:   ecs.NewFilter2[Kinematic, Projectile](w),
		world:    w,
	}
}

// Spawn adds one projectile per shot and returns how many were added.
func (p *Projectiles) Spawn(shots []Shot) int {
	for _, sh := range shots {
		p.nextID++
		p.spawner.NewEntity(
			&Kinematic{Position: sh.Position, Direction: sh.Direction.Normalize()},
			&Projectile{ID: p.nextID, Born: p.tick},
		)
	}
	return len(shots)
}

// Age moves and ages every projectile spawned before this tick, then removes
// those past their lifetime. Returns the number removed.
func (p *Projectiles) Age(dt float64) int {
	p.doomed = p.doomed[:0]
	q := p.filter.Query()
	for q.Next() {
		k, pr := q.Get()
		if pr.Born == p.tick {
			continue
		}
		pr.Age += dt
		k.Position = k.Position.Add(k.Direction.Scale(p.speed * dt))
		if pr.Age >= p.lifetime {
			p.doomed = append(p.doomed, q.Entity())
		}
	}
	for _, e := range p.doomed {
		p.world.RemoveEntity(e)
	}
	p.tick++
	return len(p.doomed)
}

// Live returns a copy of every projectile ordered by ID.
func (p *Projectiles) Live() []ProjectileView {
	var out []ProjectileView
	q := p.filter.Query()
	for q.Next() {
		k, pr := q.Get()
		out = append(out, ProjectileView{ID: pr.ID, Position: k.Position, Direction: k.Direction, Age: pr.Age})
	}
	slices.SortFunc(out, func(a, b ProjectileView) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Count returns the number of live projectiles.
func (p *Projectiles) Count() int {
	n := 0
	q := p.filter.Query()
	for q.Next() {
		n++
	}
	return n
}

// Clear removes every projectile. IDs keep counting up.
func (p *Projectiles) Clear() {
	p.doomed = p.doomed[:0]
	q := p.filter.Query()
	for q.Next() {
		p.doomed = append(p.doomed, q.Entity())
	}
	for _, e := range p.doomed {
		p.world.RemoveEntity(e)
	}
}

package game

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryFire_CooldownGate(t *testing.T) {
	wt := DefaultTuning().Weapon
	stats := testStats()
	fire := Intent{Fire: true}

	s, shots := TryFire(ShipState{}, fire, stats, wt, 1.0/60)
	require.Len(t, shots, 2)
	assert.Equal(t, 0.2, s.WeaponCooldown)

	s, shots = TryFire(s, fire, stats, wt, 0.1)
	assert.Empty(t, shots)
	assert.InDelta(t, 0.1, s.WeaponCooldown, eps)

	s, shots = TryFire(s, fire, stats, wt, 0.1)
	assert.Len(t, shots, 2)
	assert.Equal(t, 0.2, s.WeaponCooldown)
}

func TestTryFire_CooldownFloorsAtZero(t *testing.T) {
	s, shots := TryFire(ShipState{WeaponCooldown: 0.05}, Intent{}, testStats(), DefaultTuning().Weapon, 0.1)

	assert.Empty(t, shots)
	assert.Equal(t, 0.0, s.WeaponCooldown)
}

func TestTryFire_Hardpoints(t *testing.T) {
	wt := DefaultTuning().Weapon

	_, shots := TryFire(ShipState{Position: Vec3{Y: 2}}, Intent{Fire: true}, testStats(), wt, 0.016)

	require.Len(t, shots, 2)
	assert.InDelta(t, -1.2, shots[0].Position.X, eps)
	assert.InDelta(t, 2.0, shots[0].Position.Y, eps)
	assert.InDelta(t, -1.0, shots[0].Position.Z, eps)
	assert.InDelta(t, 1.2, shots[1].Position.X, eps)
	for _, sh := range shots {
		assert.InDelta(t, -1.0, sh.Direction.Z, eps)
		assert.InDelta(t, 1.0, sh.Direction.Len(), eps)
	}
}

func TestTryFire_HardpointsRotateWithShip(t *testing.T) {
	wt := DefaultTuning().Weapon

	_, shots := TryFire(ShipState{Heading: math.Pi}, Intent{Fire: true}, testStats(), wt, 0.016)

	require.Len(t, shots, 2)
	// Turned around: the left gun is now on +X and the nose points at +Z.
	assert.InDelta(t, 1.2, shots[0].Position.X, 1e-9)
	assert.InDelta(t, 1.0, shots[0].Position.Z, 1e-9)
	assert.InDelta(t, 1.0, shots[0].Direction.Z, 1e-9)
}

func TestProjectiles_AgeAndExpire(t *testing.T) {
	w := ecs.NewWorld(64)
	p := NewProjectiles(w, DefaultTuning().Weapon)

	p.Spawn([]Shot{
		{Position: Vec3{X: -1.2, Z: -1}, Direction: Vec3{Z: -1}},
		{Position: Vec3{X: 1.2, Z: -1}, Direction: Vec3{Z: -1}},
	})

	// Spawn tick: not aged yet.
	assert.Equal(t, 0, p.Age(0.5))
	live := p.Live()
	require.Len(t, live, 2)
	assert.Equal(t, 0.0, live[0].Age)
	assert.InDelta(t, -1.0, live[0].Position.Z, eps)

	p.Age(0.5)
	live = p.Live()
	assert.Equal(t, 0.5, live[0].Age)
	assert.InDelta(t, -13.5, live[0].Position.Z, eps)

	for range 4 {
		assert.Equal(t, 0, p.Age(0.5))
	}
	assert.Equal(t, 2, p.Count())

	assert.Equal(t, 2, p.Age(0.5))
	assert.Equal(t, 0, p.Count())
}

func TestProjectiles_IDsMonotonic(t *testing.T) {
	w := ecs.NewWorld(64)
	p := NewProjectiles(w, DefaultTuning().Weapon)
	shot := []Shot{{Direction: Vec3{Z: -1}}, {Direction: Vec3{Z: -1}}}

	p.Spawn(shot)
	p.Clear()
	assert.Equal(t, 0, p.Count())

	p.Spawn(shot)
	live := p.Live()
	require.Len(t, live, 2)
	assert.Equal(t, uint64(3), live[0].ID)
	assert.Equal(t, uint64(4), live[1].ID)
}

package game

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraits_UpgradeClamps(t *testing.T) {
	tr := DefaultTraits()
	tr[TraitMiningEfficiency] = 99

	assert.Equal(t, 100, tr.Upgrade(TraitMiningEfficiency, 3))
	assert.Equal(t, 100, tr.Upgrade(TraitMiningEfficiency, 1))
	assert.Equal(t, 100, tr.Upgrade(TraitMiningEfficiency, -5))
}

// Any sequence of upgrades keeps every trait within 0..100 and non-decreasing.
func TestTraits_UpgradeSequenceStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	tr := DefaultTraits()
	for range 1000 {
		id := TraitID(rng.IntN(int(TraitCount)))
		before := tr[id]
		after := tr.Upgrade(id, rng.IntN(10))
		require.GreaterOrEqual(t, after, before)
		require.LessOrEqual(t, after, MaxTrait)
	}
	for _, v := range tr {
		assert.Equal(t, MaxTrait, v)
	}

	huge := DefaultTraits()
	huge[TraitLeadership] = 50
	assert.Equal(t, MaxTrait, huge.Upgrade(TraitLeadership, math.MaxInt))
	assert.Equal(t, MaxTrait, huge.Upgrade(TraitLeadership, math.MaxInt))
}

func TestTraits_GetUnknown(t *testing.T) {
	tr := DefaultTraits()

	assert.Zero(t, tr.Get(TraitID(9)))
	assert.Equal(t, 15, tr.Get(TraitNavigation))
}

func TestTraits_Defaults(t *testing.T) {
	tr := DefaultTraits()
	assert.Equal(t, map[string]int{
		"shipHandling":     10,
		"miningEfficiency": 5,
		"leadership":       0,
		"navigation":       15,
		"combatSkills":     5,
		"engineering":      10,
	}, tr.Map())
}

func TestParseTrait(t *testing.T) {
	id, err := ParseTrait("combatSkills")
	require.NoError(t, err)
	assert.Equal(t, TraitCombatSkills, id)

	_, err = ParseTrait("charisma")
	assert.Error(t, err)
}

func TestStatsFromTraits(t *testing.T) {
	st := DefaultTuning().Stats
	tr := DefaultTraits()

	stats := StatsFromTraits(tr, st)

	assert.InDelta(t, 15.0, stats.MaxSpeed, eps)     // 10 + 10*0.5
	assert.InDelta(t, 9.6, stats.Acceleration, eps)  // 8 * 1.2
	assert.InDelta(t, 4.8, stats.Deceleration, eps)  // 4 * 1.2
	assert.InDelta(t, 3.0, stats.RotationSpeed, eps) // 2.5 * 1.2
	assert.InDelta(t, 0.24, stats.WeaponCooldownTime, eps)
	assert.InDelta(t, 12.5, stats.WeaponDamage, eps)

	tr[TraitCombatSkills] = 100
	assert.InDelta(t, 0.1, StatsFromTraits(tr, st).WeaponCooldownTime, eps)
}

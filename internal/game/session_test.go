package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	mu      sync.Mutex
	profile Player
	proofs  []MissionCompletionProof
	fail    error
}

func (f *fakeLedger) Profile(_ context.Context, id string) (Player, error) {
	if f.fail != nil {
		return Player{}, f.fail
	}
	p := f.profile
	p.ID = id
	return p, nil
}

func (f *fakeLedger) SubmitMissionCompletion(_ context.Context, proof MissionCompletionProof) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.proofs = append(f.proofs, proof)
	return f.fail
}

func (f *fakeLedger) submitted() []MissionCompletionProof {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]MissionCompletionProof(nil), f.proofs...)
}

type fakeCatalog struct {
	byRank map[Rank][]Mission
	asked  []Rank
	fail   error
}

func (f *fakeCatalog) Missions(_ context.Context, r Rank) ([]Mission, error) {
	f.asked = append(f.asked, r)
	if f.fail != nil {
		return nil, f.fail
	}
	return f.byRank[r], nil
}

func testField() []AsteroidSpec {
	specs := make([]AsteroidSpec, 6)
	for i := range specs {
		specs[i] = AsteroidSpec{
			ID:       fmt.Sprintf("a%d", i+1),
			Kind:     AsteroidKind(i % 2),
			Position: Vec3{X: float64(i * 3)},
			Size:     0.5,
		}
	}
	return specs
}

func quotaMission(id string) Mission {
	return Mission{
		ID:    id,
		Type:  MissionMiningQuota,
		Title: "Extract 100 units of basic minerals",
		Rewards: Rewards{
			XP:            200,
			TraitUpgrades: []TraitUpgrade{{Trait: TraitMiningEfficiency, Increase: 1}},
			Resources:     []ResourceGrant{{Kind: ResourceCredits, Amount: 1000}},
		},
		TimeLimit: 3600,
	}
}

func newTestSession(t *testing.T, opts ...Option) (*Session, *ManualClock) {
	t.Helper()
	clk := NewManualClock(epoch)
	opts = append([]Option{WithClock(clk), WithField(testField)}, opts...)
	s, err := NewSession(opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, clk
}

// mineOne mines an asteroid to completion: ten 100ms steps.
func mineOne(t *testing.T, s *Session, clk *ManualClock, id string) {
	t.Helper()
	require.NoError(t, s.Mine(id))
	clk.Advance(time.Second)
	s.Tick(1.0 / 60)
	a, ok := s.Asteroid(id)
	require.True(t, ok)
	require.True(t, a.Mined, id)
}

func TestSession_StartRejectedOnTraits(t *testing.T) {
	s, _ := newTestSession(t)
	s.Offer(rareQuota("rare"))

	err := s.StartMission("rare")

	require.ErrorIs(t, err, ErrRequirementNotMet)
	_, active := s.ActiveMission()
	assert.False(t, active)
	assert.Equal(t, NewPlayer("local"), s.Player())
	notes := s.Snapshot(5).Notices
	require.NotEmpty(t, notes)
	assert.Equal(t, NoticeWarning, notes[len(notes)-1].Level)
}

func TestSession_CompleteAppliesRewards(t *testing.T) {
	s, _ := newTestSession(t)
	s.Offer(simpleMission("m", Rewards{
		XP:            200,
		TraitUpgrades: []TraitUpgrade{{Trait: TraitShipHandling, Increase: 10}},
		Resources:     []ResourceGrant{{Kind: ResourceCredits, Amount: 500}},
	}))
	before := s.Stats().MaxSpeed

	require.NoError(t, s.StartMission("m"))
	require.NoError(t, s.CompleteMission(true))

	p := s.Player()
	assert.Equal(t, 200, p.TotalXP)
	assert.Equal(t, 1500, p.Credits)
	assert.Equal(t, RankExperienced, p.Rank())
	assert.InDelta(t, before+5, s.Stats().MaxSpeed, eps)
}

func TestSession_QuotaCompletesAfterSettle(t *testing.T) {
	s, clk := newTestSession(t)
	s.Offer(quotaMission("q1"))
	require.NoError(t, s.StartMission("q1"))

	for i := 1; i <= 5; i++ {
		mineOne(t, s, clk, fmt.Sprintf("a%d", i))
		assert.Equal(t, i, s.MinedCount())
	}
	_, active := s.ActiveMission()
	require.True(t, active, "mission completes only after the settle delay")

	clk.Advance(499 * time.Millisecond)
	s.Tick(1.0 / 60)
	_, active = s.ActiveMission()
	require.True(t, active)

	clk.Advance(time.Millisecond)
	s.Tick(1.0 / 60)

	_, active = s.ActiveMission()
	assert.False(t, active)
	assert.Equal(t, 0, s.MinedCount())
	out := s.Outcomes()
	require.Len(t, out, 1)
	assert.Equal(t, OutcomeCompleted, out[0].Outcome)
	assert.Equal(t, 200, s.Player().TotalXP)
	assert.Equal(t, 2000, s.Player().Credits)
	assert.Equal(t, 6, s.Player().Traits[TraitMiningEfficiency])
	assert.Equal(t, 0, s.PendingTimers())
}

func TestSession_QuotaSettleSkipsAbandonedMission(t *testing.T) {
	s, clk := newTestSession(t)
	s.Offer(quotaMission("q1"), quotaMission("q2"))
	require.NoError(t, s.StartMission("q1"))
	for i := 1; i <= 5; i++ {
		mineOne(t, s, clk, fmt.Sprintf("a%d", i))
	}

	require.NoError(t, s.CompleteMission(false))
	require.NoError(t, s.StartMission("q2"))
	assert.Equal(t, 0, s.MinedCount())

	clk.Advance(time.Second)
	s.Tick(1.0 / 60)

	am, active := s.ActiveMission()
	require.True(t, active)
	assert.Equal(t, "q2", am.Mission.ID)
	out := s.Outcomes()
	require.Len(t, out, 1)
	assert.Equal(t, OutcomeAbandoned, out[0].Outcome)
	assert.Zero(t, s.Player().TotalXP)
}

func TestSession_MineGates(t *testing.T) {
	s, clk := newTestSession(t)

	assert.ErrorIs(t, s.Mine("a1"), ErrNoMiningMission)

	s.Offer(simpleMission("explore", Rewards{}), quotaMission("q1"))
	require.NoError(t, s.StartMission("explore"))
	assert.ErrorIs(t, s.Mine("a1"), ErrNoMiningMission)
	require.NoError(t, s.CompleteMission(false))

	require.NoError(t, s.StartMission("q1"))
	assert.ErrorIs(t, s.Mine("nope"), ErrUnknownAsteroid)

	require.NoError(t, s.Mine("a1"))
	assert.ErrorIs(t, s.Mine("a1"), ErrMiningInProgress)

	clk.Advance(500 * time.Millisecond)
	s.Tick(1.0 / 60)
	a, _ := s.Asteroid("a1")
	assert.Equal(t, 50, a.Progress)
	assert.True(t, a.Mining)

	clk.Advance(500 * time.Millisecond)
	s.Tick(1.0 / 60)
	a, _ = s.Asteroid("a1")
	assert.Equal(t, 100, a.Progress)
	assert.True(t, a.Mined)
	assert.False(t, a.Mining)

	assert.ErrorIs(t, s.Mine("a1"), ErrAsteroidMined)
}

func TestSession_ParallelMining(t *testing.T) {
	s, clk := newTestSession(t)
	s.Offer(quotaMission("q1"))
	require.NoError(t, s.StartMission("q1"))

	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Mine(fmt.Sprintf("a%d", i)))
	}
	clk.Advance(time.Second)
	s.Tick(1.0 / 60)
	assert.Equal(t, 5, s.MinedCount())

	clk.Advance(500 * time.Millisecond)
	s.Tick(1.0 / 60)

	require.Len(t, s.Outcomes(), 1, "exactly one completion for the quota")
	assert.Equal(t, OutcomeCompleted, s.Outcomes()[0].Outcome)
}

func TestSession_WeaponCooldown(t *testing.T) {
	tun := DefaultTuning()
	tun.Stats.BaseCooldown = 0.2
	tun.Stats.CooldownPerCombat = 0
	s, _ := newTestSession(t, WithTuning(tun))
	require.InDelta(t, 0.2, s.Stats().WeaponCooldownTime, eps)

	s.SetIntent(ControlFire, true)
	s.Tick(1.0 / 60)
	assert.Len(t, s.Projectiles(), 2)

	s.Tick(0.1)
	assert.Len(t, s.Projectiles(), 2)

	s.Tick(0.1)
	assert.Len(t, s.Projectiles(), 4)

	s.SetIntent(ControlFire, false)
	for range 40 {
		s.Tick(0.1)
	}
	assert.Empty(t, s.Projectiles())
}

func TestSession_TickMovesShip(t *testing.T) {
	s, _ := newTestSession(t)
	s.SetIntent(ControlForward, true)
	for range 60 {
		s.Tick(1.0 / 60)
	}
	s.SetIntent(ControlForward, false)

	ship := s.Ship()
	assert.Less(t, ship.Position.Z, 0.0)
	assert.LessOrEqual(t, ship.Speed(), s.Stats().MaxSpeed+eps)
	assert.Equal(t, 1.0, ship.ThrusterIntensity)
}

func TestSession_TimeLimitExpires(t *testing.T) {
	tun := DefaultTuning()
	tun.Mission.EnforceTimeLimit = true
	s, _ := newTestSession(t, WithTuning(tun))
	m := simpleMission("short", Rewards{XP: 50})
	m.TimeLimit = 1
	s.Offer(m)
	require.NoError(t, s.StartMission("short"))

	for range 11 {
		s.Tick(0.1)
	}

	_, active := s.ActiveMission()
	assert.False(t, active)
	require.Len(t, s.Outcomes(), 1)
	assert.Equal(t, "time limit", s.Outcomes()[0].Reason)
}

func TestSession_Reset(t *testing.T) {
	s, clk := newTestSession(t)
	s.Offer(quotaMission("q1"))
	require.NoError(t, s.StartMission("q1"))
	mineOne(t, s, clk, "a1")
	require.NoError(t, s.Mine("a2"))
	s.SetIntent(ControlFire, true)
	s.Tick(0.1)
	require.NotEmpty(t, s.Projectiles())

	s.Reset()

	assert.Empty(t, s.Projectiles())
	assert.Equal(t, 0, s.PendingTimers())
	assert.Equal(t, 0, s.MinedCount())
	_, active := s.ActiveMission()
	assert.False(t, active)
	a, _ := s.Asteroid("a1")
	assert.False(t, a.Mined)
	assert.Equal(t, ShipState{}, s.Ship())

	// Released controls stay released.
	s.Tick(0.1)
	assert.Empty(t, s.Projectiles())
}

func TestSession_FullResetRestoresPilot(t *testing.T) {
	calls := 0
	gen := func() []AsteroidSpec { calls++; return testField() }
	s, _ := newTestSession(t, WithField(gen))
	s.Offer(simpleMission("m", Rewards{XP: 300}))
	require.NoError(t, s.StartMission("m"))
	require.NoError(t, s.CompleteMission(true))
	require.Equal(t, 300, s.Player().TotalXP)

	require.NoError(t, s.FullReset(context.Background()))

	assert.Equal(t, NewPlayer("local"), s.Player())
	assert.Equal(t, 2, calls)
	assert.Len(t, s.Snapshot(0).Asteroids, 6)
}

func TestSession_SubmitsProof(t *testing.T) {
	ledger := &fakeLedger{}
	s, _ := newTestSession(t, WithLedger(ledger))
	s.Offer(quotaMission("q1"))
	require.NoError(t, s.StartMission("q1"))
	s.Tick(1)

	require.NoError(t, s.CompleteMission(true))
	s.Close()

	proofs := ledger.submitted()
	require.Len(t, proofs, 1)
	assert.Equal(t, "q1", proofs[0].MissionID)
	assert.Equal(t, "local", proofs[0].PlayerID)
	assert.InDelta(t, 1.0, proofs[0].CompletionTime, eps)
	assert.InDelta(t, 100*(1-1.0/3600), proofs[0].Efficiency, 1e-6)
	assert.Equal(t, []ResourceGrant{{Kind: ResourceCredits, Amount: 1000}}, proofs[0].ResourcesCollected)
}

func TestSession_SubmissionFailureKeepsRewards(t *testing.T) {
	ledger := &fakeLedger{fail: errors.New("ledger down")}
	s, _ := newTestSession(t, WithLedger(ledger))
	s.Offer(simpleMission("m", Rewards{XP: 120}))
	require.NoError(t, s.StartMission("m"))

	require.NoError(t, s.CompleteMission(true))
	s.Close()

	assert.Len(t, ledger.submitted(), 1)
	assert.Equal(t, 120, s.Player().TotalXP)
}

func TestSession_AbandonDoesNotSubmit(t *testing.T) {
	ledger := &fakeLedger{}
	s, _ := newTestSession(t, WithLedger(ledger))
	s.Offer(simpleMission("m", Rewards{XP: 120}))
	require.NoError(t, s.StartMission("m"))

	require.NoError(t, s.CompleteMission(false))
	s.Close()

	assert.Empty(t, ledger.submitted())
}

func TestSession_BeginLoadsProfileAndBoard(t *testing.T) {
	profile := NewPlayer("")
	profile.TotalXP = 600
	profile.Traits[TraitLeadership] = 30
	ledger := &fakeLedger{profile: profile}
	catalog := &fakeCatalog{byRank: map[Rank][]Mission{
		RankForeman: {simpleMission("team", Rewards{})},
	}}
	s, _ := newTestSession(t, WithLedger(ledger), WithCatalog(catalog))

	require.NoError(t, s.Begin(context.Background(), "pilot-7"))

	assert.Equal(t, "pilot-7", s.Player().ID)
	assert.Equal(t, RankForeman, s.Player().Rank())
	assert.Equal(t, []Rank{RankForeman}, catalog.asked)
	require.Len(t, s.Available(), 1)
	assert.Equal(t, "team", s.Available()[0].ID)
}

func TestSession_BeginSurvivesCollaboratorFailure(t *testing.T) {
	ledger := &fakeLedger{fail: errors.New("offline")}
	catalog := &fakeCatalog{fail: errors.New("offline")}
	s, _ := newTestSession(t, WithLedger(ledger), WithCatalog(catalog))

	err := s.Begin(context.Background(), "pilot-7")

	require.ErrorIs(t, err, ErrExternalSubmission)
	assert.Equal(t, NewPlayer("local"), s.Player())
}

func TestSession_Snapshot(t *testing.T) {
	s, _ := newTestSession(t)
	s.Offer(quotaMission("q1"))
	require.NoError(t, s.StartMission("q1"))
	s.Tick(0.5)

	snap := s.Snapshot(10)

	assert.Equal(t, uint64(1), snap.Tick)
	assert.InDelta(t, 0.5, snap.Time, eps)
	require.NotNil(t, snap.Active)
	assert.Equal(t, "q1", snap.Active.Mission.ID)
	assert.True(t, snap.Active.Limited)
	assert.InDelta(t, 3599.5, snap.Active.Remaining, eps)
	assert.Len(t, snap.Asteroids, 6)
	assert.Equal(t, 5, snap.Quota)
	assert.Equal(t, RankRookie, snap.Player.Rank)
	assert.Equal(t, 100, snap.Player.NextRankXP)
	assert.Equal(t, 1000, snap.Player.Credits)
	assert.Equal(t, 5, snap.Player.Traits["miningEfficiency"])
}

func TestSession_BeginMidSessionDropsMining(t *testing.T) {
	ledger := &fakeLedger{profile: NewPlayer("")}
	s, clk := newTestSession(t, WithLedger(ledger))
	s.Offer(quotaMission("q1"))
	require.NoError(t, s.StartMission("q1"))
	for i := 1; i <= 4; i++ {
		mineOne(t, s, clk, fmt.Sprintf("a%d", i))
	}
	require.NoError(t, s.Mine("a5"))
	clk.Advance(time.Second)
	s.Tick(1.0 / 60)
	require.Equal(t, 1, s.PendingTimers(), "settle armed")

	require.NoError(t, s.Begin(context.Background(), "pilot-7"))

	assert.Equal(t, 0, s.PendingTimers())
	assert.Equal(t, 0, s.MinedCount())
	a, _ := s.Asteroid("a5")
	assert.False(t, a.Mined)

	clk.Advance(time.Second)
	s.Tick(1.0 / 60)
	assert.Empty(t, s.Outcomes())
	assert.Equal(t, "pilot-7", s.Player().ID)
}

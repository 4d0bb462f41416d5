package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mlange-42/ark/ecs"
	"github.com/rs/zerolog"
)

// Session is one play session. It owns every piece of gameplay state and is
// the only type the presentation layer talks to. All methods must be called
// from the same goroutine.
type Session struct {
	tuning Tuning
	log    zerolog.Logger

	clock  Clock
	sched  *Scheduler
	events eventQueue
	world  *ecs.World

	input  Sampler
	ship   ShipState
	stats  ShipStats
	shots  *Projectiles
	mining *Mining

	missions *Lifecycle
	notices  *NoticeLog

	ledger        Ledger
	catalog       Catalog
	submitTimeout time.Duration
	submissions   sync.WaitGroup

	starting Player
	field    func() []AsteroidSpec

	settlePending bool
	settleTimer   TimerID

	elapsed float64
	ticks   uint64
	metrics instruments
}

// Option configures a Session.
type Option func(*Session)

// WithTuning overrides the gameplay constants.
func WithTuning(t Tuning) Option { return func(s *Session) { s.tuning = t } }

// WithClock sets the clock mining timers run against.
func WithClock(c Clock) Option { return func(s *Session) { s.clock = c } }

// WithLogger sets the structured logger.
func WithLogger(l zerolog.Logger) Option { return func(s *Session) { s.log = l } }

// WithLedger sets the identity and completion ledger.
func WithLedger(l Ledger) Option { return func(s *Session) { s.ledger = l } }

// WithCatalog sets the mission catalog.
func WithCatalog(c Catalog) Option { return func(s *Session) { s.catalog = c } }

// WithPlayer sets the starting progression state.
func WithPlayer(p Player) Option { return func(s *Session) { s.starting = p.Clone() } }

// WithField sets the asteroid field source. It is called once at startup and
// again on every full reset.
func WithField(gen func() []AsteroidSpec) Option { return func(s *Session) { s.field = gen } }

// WithSubmitTimeout bounds each ledger submission.
func WithSubmitTimeout(d time.Duration) Option { return func(s *Session) { s.submitTimeout = d } }

// NewSession builds a session. Without options it runs on the system clock
// with default tuning, a fresh pilot, no asteroids and no ledger.
func NewSession(opts ...Option) (*Session, error) {
	s := &Session{
		tuning:        DefaultTuning(),
		log:           zerolog.Nop(),
		clock:         SystemClock{},
		starting:      NewPlayer("local"),
		submitTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.metrics, err = newInstruments(); err != nil {
		return nil, err
	}

	s.world = ecs.NewWorld(256)
	s.sched = NewScheduler(s.clock)
	s.shots = NewProjectiles(s.world, s.tuning.Weapon)
	s.missions = NewLifecycle(s.starting.Clone(), s.tuning.Mission.OutcomeLog)
	s.mining = NewMining(s.world, s.sched, s.missions, s.tuning.Mining, s.events.post)
	s.notices = NewNoticeLog(50, 55)

	if s.field != nil {
		s.mining.Populate(s.field())
	}
	s.refreshStats()
	return s, nil
}

// Begin loads the pilot from the ledger and fetches the mission board. Either
// step may fail; the session stays playable on its current state. A loaded
// profile drops the active mission and any mining in progress.
func (s *Session) Begin(ctx context.Context, playerID string) error {
	var errs []error
	if s.ledger != nil {
		p, err := s.ledger.Profile(ctx, playerID)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: load profile %s: %w", ErrExternalSubmission, playerID, err))
		} else {
			s.starting = p.Clone()
			s.cancelSettle()
			s.mining.Restore()
			s.missions.Restore(p)
			s.refreshStats()
			s.log.Info().Str("player", p.ID).Str("rank", p.Rank().String()).Msg("profile loaded")
		}
	}
	if err := s.RefreshMissions(ctx); err != nil {
		errs = append(errs, err)
	}
	for _, err := range errs {
		s.log.Warn().Err(err).Msg("session begin")
	}
	return errors.Join(errs...)
}

// RefreshMissions replaces the Available set with the catalog's offer for the
// current rank.
func (s *Session) RefreshMissions(ctx context.Context) error {
	if s.catalog == nil {
		return nil
	}
	rank := s.missions.player.Rank()
	ms, err := s.catalog.Missions(ctx, rank)
	if err != nil {
		return fmt.Errorf("%w: fetch missions for %s: %w", ErrExternalSubmission, rank, err)
	}
	s.missions.ReplaceAvailable(ms)
	s.log.Debug().Int("count", len(ms)).Str("rank", rank.String()).Msg("missions refreshed")
	return nil
}

// Offer adds missions to the board directly.
func (s *Session) Offer(ms ...Mission) { s.missions.Offer(ms...) }

// SetIntent records a press or release of one control.
func (s *Session) SetIntent(c Control, down bool) { s.input.Set(c, down) }

// Tick advances the session by dt seconds: due timers and their events first,
// then flight, weapons, projectile aging and the mission clock.
func (s *Session) Tick(dt float64) {
	s.Pump()
	if dt <= 0 {
		return
	}

	in := s.input.Sample()
	s.ship = Advance(s.ship, in, s.stats, s.tuning.Flight, dt)

	var shots []Shot
	s.ship, shots = TryFire(s.ship, in, s.stats, s.tuning.Weapon, dt)
	if n := s.shots.Spawn(shots); n > 0 {
		s.metrics.shotsFired(n)
	}
	s.shots.Age(dt)

	s.elapsed += dt
	s.ticks++

	prev := s.missions.player.Rank()
	if res, expired := s.missions.Advance(dt, s.tuning.Mission.EnforceTimeLimit); expired {
		s.resolved(res, prev)
	}
}

// Pump runs due timers and handles the events they post until both are idle.
func (s *Session) Pump() {
	for {
		ran := s.sched.RunDue()
		handled := s.events.drain(s.handle)
		if ran == 0 && handled == 0 {
			return
		}
	}
}

func (s *Session) handle(e Event) {
	switch ev := e.(type) {
	case MiningCompleted:
		s.metrics.asteroidMined(ev.Kind)
		s.notices.Add(s.elapsed, NoticeReward, fmt.Sprintf("Asteroid %s mined (%d/%d)", ev.AsteroidID, s.mining.MinedCount(), s.tuning.Mining.Quota))
		s.log.Debug().Str("asteroid", ev.AsteroidID).Int("mined", s.mining.MinedCount()).Msg("asteroid mined")
		s.checkQuota()
	}
}

// checkQuota arms the settle timer once the mined count reaches the quota.
func (s *Session) checkQuota() {
	am, ok := s.missions.Active()
	if !ok || am.Mission.Type != MissionMiningQuota || s.settlePending {
		return
	}
	if s.mining.MinedCount() < s.tuning.Mining.Quota {
		return
	}
	id := am.Mission.ID
	s.settlePending = true
	s.settleTimer = s.sched.After(s.tuning.Mining.SettleDelay, func() {
		s.settlePending = false
		s.settle(id)
	})
}

// settle completes the quota mission if it is still the active one and the
// quota still holds when the delay expires.
func (s *Session) settle(missionID string) {
	am, ok := s.missions.Active()
	if !ok || am.Mission.ID != missionID {
		return
	}
	if s.mining.MinedCount() < s.tuning.Mining.Quota {
		return
	}
	prev := s.missions.player.Rank()
	res, err := s.missions.Complete(true)
	if err != nil {
		s.log.Error().Err(err).Str("mission", missionID).Msg("quota settle")
		return
	}
	s.mining.ResetCount()
	s.resolved(res, prev)
}

// StartMission accepts an Available mission.
func (s *Session) StartMission(id string) error {
	m, err := s.missions.Start(id)
	if err != nil {
		s.reject("start", err)
		return err
	}
	if m.Type == MissionMiningQuota {
		s.cancelSettle()
		s.mining.ResetCount()
	}
	s.notices.Add(s.elapsed, NoticeInfo, "Mission accepted: "+m.Title)
	s.log.Info().Str("mission", m.ID).Str("type", m.Type.String()).Msg("mission started")
	return nil
}

// CompleteMission resolves the active mission. success=false abandons it.
func (s *Session) CompleteMission(success bool) error {
	prev := s.missions.player.Rank()
	res, err := s.missions.Complete(success)
	if err != nil {
		s.reject("complete", err)
		return err
	}
	s.resolved(res, prev)
	return nil
}

// Mine starts extracting an asteroid.
func (s *Session) Mine(asteroidID string) error {
	if err := s.mining.Mine(asteroidID); err != nil {
		s.reject("mine", err)
		return err
	}
	s.log.Debug().Str("asteroid", asteroidID).Msg("mining started")
	return nil
}

func (s *Session) reject(command string, err error) {
	s.metrics.commandRejected(command)
	s.log.Debug().Err(err).Str("command", command).Msg("command rejected")

	var unmet *RequirementNotMetError
	switch {
	case errors.As(err, &unmet):
		parts := make([]string, len(unmet.Unmet))
		for i, u := range unmet.Unmet {
			if u.RankCheck {
				parts[i] = "rank " + u.RankNeeded.Title()
			} else {
				parts[i] = fmt.Sprintf("%s %d", TraitName(u.Trait), u.Required)
			}
		}
		s.notices.Add(s.elapsed, NoticeWarning, "Requirements not met: "+strings.Join(parts, ", "))
	case errors.Is(err, ErrNoMiningMission):
		s.notices.Add(s.elapsed, NoticeWarning, "Accept a mining mission first")
	}
}

// resolved finishes a mission transition: stats, notices, metrics and the
// ledger submission for completed missions.
func (s *Session) resolved(res Resolution, prevRank Rank) {
	s.cancelSettle()
	s.metrics.missionResolved(res)
	logEvt := s.log.Info().Str("mission", res.Mission.ID).Str("outcome", res.Outcome.String())
	if res.Reason != "" {
		logEvt = logEvt.Str("reason", res.Reason)
	}
	logEvt.Float64("elapsed", res.Elapsed).Msg("mission resolved")

	if res.Outcome != OutcomeCompleted {
		s.notices.Add(s.elapsed, NoticeFailure, fmt.Sprintf("Mission %s: %s", res.Reason, res.Mission.Title))
		return
	}

	s.refreshStats()
	s.notices.Add(s.elapsed, NoticeReward, fmt.Sprintf("Mission complete: %s (+%d XP)", res.Mission.Title, res.Mission.Rewards.XP))
	if res.Rank > prevRank {
		s.notices.Add(s.elapsed, NoticePromotion, "Promoted to "+res.Rank.Title())
		s.log.Info().Str("rank", res.Rank.String()).Msg("promotion")
	}
	s.submit(res)
}

func (s *Session) cancelSettle() {
	if s.settlePending {
		s.sched.Cancel(s.settleTimer)
		s.settlePending = false
	}
}

// submit hands the completion to the ledger in the background. A failure is
// logged and nothing local is undone.
func (s *Session) submit(res Resolution) {
	if s.ledger == nil {
		return
	}
	proof := MissionCompletionProof{
		MissionID:          res.Mission.ID,
		PlayerID:           s.missions.player.ID,
		CompletionTime:     res.Elapsed,
		Efficiency:         efficiency(res.Elapsed, res.Mission.TimeLimit),
		ResourcesCollected: append([]ResourceGrant(nil), res.Mission.Rewards.Resources...),
	}
	ledger, log, timeout := s.ledger, s.log, s.submitTimeout

	s.submissions.Add(1)
	go func() {
		defer s.submissions.Done()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := ledger.SubmitMissionCompletion(ctx, proof); err != nil {
			log.Error().Err(fmt.Errorf("%w: %w", ErrExternalSubmission, err)).
				Str("mission", proof.MissionID).Msg("mission submission")
			return
		}
		log.Debug().Str("mission", proof.MissionID).Msg("mission submitted")
	}()
}

// Reset clears projectiles, mining progress, pending timers and the active
// mission. Player progression and the mission board are kept.
func (s *Session) Reset() {
	s.sched.CancelAll()
	s.events.reset()
	s.settlePending = false
	s.shots.Clear()
	s.mining.Restore()
	s.missions.Drop()
	s.input.Release()
	s.ship = ShipState{}
	s.notices.Add(s.elapsed, NoticeInfo, "Session reset")
	s.log.Info().Msg("session reset")
}

// FullReset also restores the starting pilot, regenerates the asteroid field
// and refetches the mission board.
func (s *Session) FullReset(ctx context.Context) error {
	s.Reset()
	s.missions.Restore(s.starting.Clone())
	if s.field != nil {
		s.mining.Populate(s.field())
	}
	s.notices.Clear()
	s.elapsed = 0
	s.ticks = 0
	s.refreshStats()
	s.log.Info().Msg("session full reset")
	return s.RefreshMissions(ctx)
}

// Close waits for in-flight ledger submissions.
func (s *Session) Close() {
	s.submissions.Wait()
}

func (s *Session) refreshStats() {
	s.stats = StatsFromTraits(s.missions.player.Traits, s.tuning.Stats)
}

// Ship returns the current ship state.
func (s *Session) Ship() ShipState { return s.ship }

// Stats returns the current derived performance figures.
func (s *Session) Stats() ShipStats { return s.stats }

// Player returns a copy of the progression state.
func (s *Session) Player() Player { return s.missions.Player() }

// ActiveMission returns the active mission, if any.
func (s *Session) ActiveMission() (ActiveMission, bool) { return s.missions.Active() }

// Available returns the mission board.
func (s *Session) Available() []Mission { return s.missions.Available() }

// Outcomes returns recent mission resolutions.
func (s *Session) Outcomes() []Resolution { return s.missions.Outcomes() }

// MinedCount returns asteroids mined toward the current quota.
func (s *Session) MinedCount() int { return s.mining.MinedCount() }

// Asteroid returns one asteroid by ID.
func (s *Session) Asteroid(id string) (AsteroidView, bool) { return s.mining.Asteroid(id) }

// Projectiles returns the live projectiles.
func (s *Session) Projectiles() []ProjectileView { return s.shots.Live() }

// PendingTimers returns the number of scheduled callbacks.
func (s *Session) PendingTimers() int { return s.sched.Pending() }

// Tuning returns the session's constants.
func (s *Session) Tuning() Tuning { return s.tuning }

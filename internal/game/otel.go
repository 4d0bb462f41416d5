package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/Demilade01/starstrike/internal/game"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// instruments are the session's counters. They are no-ops unless a meter
// provider has been installed globally.
type instruments struct {
	shots    metric.Int64Counter
	mined    metric.Int64Counter
	missions metric.Int64Counter
	rejected metric.Int64Counter
}

func newInstruments() (instruments, error) {
	m := meter()
	var (
		in  instruments
		err error
	)
	in.shots, err = m.Int64Counter(
		"starstrike.shots.fired",
		metric.WithDescription("Projectiles spawned"),
	)
	if err != nil {
		return in, fmt.Errorf("creating shots counter: %w", err)
	}
	in.mined, err = m.Int64Counter(
		"starstrike.asteroids.mined",
		metric.WithDescription("Asteroids fully mined"),
	)
	if err != nil {
		return in, fmt.Errorf("creating mined counter: %w", err)
	}
	in.missions, err = m.Int64Counter(
		"starstrike.missions.resolved",
		metric.WithDescription("Missions that left the active state"),
	)
	if err != nil {
		return in, fmt.Errorf("creating missions counter: %w", err)
	}
	in.rejected, err = m.Int64Counter(
		"starstrike.commands.rejected",
		metric.WithDescription("Mission and mining commands refused"),
	)
	if err != nil {
		return in, fmt.Errorf("creating rejected counter: %w", err)
	}
	return in, nil
}

func (in instruments) shotsFired(n int) {
	in.shots.Add(context.Background(), int64(n))
}

func (in instruments) asteroidMined(kind AsteroidKind) {
	in.mined.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", kind.String())))
}

func (in instruments) missionResolved(r Resolution) {
	in.missions.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("outcome", r.Outcome.String()),
		attribute.String("type", r.Mission.Type.String()),
	))
}

func (in instruments) commandRejected(command string) {
	in.rejected.Add(context.Background(), 1, metric.WithAttributes(attribute.String("command", command)))
}

package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTransition is returned for a lifecycle call that does not fit
	// the current state: starting while another mission is active, starting an
	// unknown mission, or completing with nothing active.
	ErrInvalidTransition = errors.New("invalid mission transition")

	// ErrRequirementNotMet matches any *RequirementNotMetError.
	ErrRequirementNotMet = errors.New("mission requirement not met")

	// ErrExternalSubmission marks a failed hand-off to the ledger or catalog.
	// Local state is never rolled back when this happens.
	ErrExternalSubmission = errors.New("external submission failed")

	ErrNoMiningMission  = errors.New("no active mining mission")
	ErrUnknownAsteroid  = errors.New("unknown asteroid")
	ErrAsteroidMined    = errors.New("asteroid already mined")
	ErrMiningInProgress = errors.New("asteroid already being mined")
)

// Unmet describes one requirement the player failed.
type Unmet struct {
	Trait    TraitID `json:"trait"`
	Required int     `json:"required"`
	Current  int     `json:"current"`

	// Set instead of the trait fields when the rank check failed.
	RankCheck   bool `json:"rankCheck,omitempty"`
	RankNeeded  Rank `json:"rankNeeded,omitempty"`
	RankCurrent Rank `json:"rankCurrent,omitempty"`
}

func (u Unmet) String() string {
	if u.RankCheck {
		return fmt.Sprintf("rank %s < %s", u.RankCurrent, u.RankNeeded)
	}
	return fmt.Sprintf("%s %d < %d", u.Trait, u.Current, u.Required)
}

// RequirementNotMetError lists every requirement a start attempt failed.
type RequirementNotMetError struct {
	MissionID string
	Unmet     []Unmet
}

func (e *RequirementNotMetError) Error() string {
	parts := make([]string, len(e.Unmet))
	for i, u := range e.Unmet {
		parts[i] = u.String()
	}
	return fmt.Sprintf("mission %s: requirement not met: %s", e.MissionID, strings.Join(parts, ", "))
}

// Is lets errors.Is(err, ErrRequirementNotMet) match.
func (e *RequirementNotMetError) Is(target error) bool {
	return target == ErrRequirementNotMet
}

package game

import "context"

// MissionCompletionProof is what the ledger receives for a completed mission.
type MissionCompletionProof struct {
	MissionID          string          `json:"missionId"`
	PlayerID           string          `json:"playerId"`
	CompletionTime     float64         `json:"completionTime"` // seconds active
	Efficiency         float64         `json:"efficiency"`     // 0..100
	ResourcesCollected []ResourceGrant `json:"resourcesCollected"`
	Signature          string          `json:"signature"`
}

// Ledger is the external identity and record-keeping service.
type Ledger interface {
	Profile(ctx context.Context, playerID string) (Player, error)
	SubmitMissionCompletion(ctx context.Context, proof MissionCompletionProof) error
}

// Catalog supplies the missions offered at a rank.
type Catalog interface {
	Missions(ctx context.Context, rank Rank) ([]Mission, error)
}

// efficiency scores how much of the time limit was left, 0..100.
// Missions without a limit always score 100.
func efficiency(elapsed, limit float64) float64 {
	if limit <= 0 {
		return 100
	}
	return min(100, max(0, 100*(1-elapsed/limit)))
}

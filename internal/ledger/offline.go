package ledger

import (
	"context"
	"sync"

	"github.com/Demilade01/starstrike/internal/game"
	"github.com/rs/zerolog"
)

// Offline is an in-process ledger. Every pilot starts from the default
// profile and signed proofs are kept in memory.
type Offline struct {
	key []byte
	log zerolog.Logger

	mu      sync.Mutex
	players map[string]game.Player
	proofs  []game.MissionCompletionProof
}

// NewOffline returns an empty offline ledger that signs with key.
func NewOffline(key []byte, log zerolog.Logger) *Offline {
	return &Offline{
		key:     key,
		log:     log,
		players: make(map[string]game.Player),
	}
}

// Seed registers a stored profile for a pilot.
func (o *Offline) Seed(p game.Player) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.players[p.ID] = p.Clone()
}

// Profile returns the stored profile, or the default starting one.
func (o *Offline) Profile(ctx context.Context, playerID string) (game.Player, error) {
	if err := ctx.Err(); err != nil {
		return game.Player{}, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if p, ok := o.players[playerID]; ok {
		return p.Clone(), nil
	}
	return game.NewPlayer(playerID), nil
}

// SubmitMissionCompletion signs and records the proof.
func (o *Offline) SubmitMissionCompletion(ctx context.Context, proof game.MissionCompletionProof) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sig, err := Sign(o.key, proof)
	if err != nil {
		return err
	}
	proof.Signature = sig

	o.mu.Lock()
	o.proofs = append(o.proofs, proof)
	o.mu.Unlock()

	o.log.Info().
		Str("mission", proof.MissionID).
		Str("player", proof.PlayerID).
		Float64("efficiency", proof.Efficiency).
		Str("signature", sig[:12]).
		Msg("mission completion recorded")
	return nil
}

// Proofs returns every recorded proof.
func (o *Offline) Proofs() []game.MissionCompletionProof {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]game.MissionCompletionProof(nil), o.proofs...)
}

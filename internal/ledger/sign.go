package ledger

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Demilade01/starstrike/internal/game"
)

// Sign returns the hex HMAC-SHA256 of the proof with its Signature field
// blanked.
func Sign(key []byte, proof game.MissionCompletionProof) (string, error) {
	proof.Signature = ""
	body, err := json.Marshal(proof)
	if err != nil {
		return "", fmt.Errorf("encode proof: %w", err)
	}
	mac := hmac.New(sha256.New, key)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify reports whether proof carries a valid signature for key.
func Verify(key []byte, proof game.MissionCompletionProof) bool {
	want, err := Sign(key, proof)
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(proof.Signature)
	if err != nil {
		return false
	}
	exp, _ := hex.DecodeString(want)
	return hmac.Equal(got, exp)
}

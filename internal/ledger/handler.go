package ledger

import (
	"encoding/json"
	"net/http"

	"github.com/Demilade01/starstrike/internal/game"
)

// Handler serves the ledger HTTP API from an Offline ledger. Requests must
// carry the bearer key and proofs must verify against it.
func Handler(o *Offline, apiKey string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/players/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r, apiKey) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		p, err := o.Profile(r.Context(), r.PathValue("id"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toProfile(p))
	})

	mux.HandleFunc("POST /api/v1/missions/complete", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r, apiKey) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var proof game.MissionCompletionProof
		if err := json.NewDecoder(r.Body).Decode(&proof); err != nil {
			http.Error(w, "bad proof", http.StatusBadRequest)
			return
		}
		if !Verify([]byte(apiKey), proof) {
			http.Error(w, "bad signature", http.StatusForbidden)
			return
		}
		if err := o.SubmitMissionCompletion(r.Context(), proof); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	})

	return mux
}

func authorized(r *http.Request, apiKey string) bool {
	return apiKey == "" || r.Header.Get("Authorization") == "Bearer "+apiKey
}

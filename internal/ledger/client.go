package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Demilade01/starstrike/internal/game"
)

// Client talks to a remote ledger over HTTP JSON.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a ledger client. The API key authenticates requests and signs
// proofs.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Profile fetches a pilot's progression record.
func (c *Client) Profile(ctx context.Context, playerID string) (game.Player, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/players/"+url.PathEscape(playerID), nil)
	if err != nil {
		return game.Player{}, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return game.Player{}, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return game.Player{}, fmt.Errorf("profile returned status %d", resp.StatusCode)
	}
	var w profile
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return game.Player{}, fmt.Errorf("decode profile: %w", err)
	}
	if w.ID == "" {
		w.ID = playerID
	}
	return w.player()
}

// SubmitMissionCompletion signs the proof and posts it.
func (c *Client) SubmitMissionCompletion(ctx context.Context, proof game.MissionCompletionProof) error {
	sig, err := Sign([]byte(c.apiKey), proof)
	if err != nil {
		return err
	}
	proof.Signature = sig

	body, err := json.Marshal(proof)
	if err != nil {
		return fmt.Errorf("encode proof: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/missions/complete", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("submit returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

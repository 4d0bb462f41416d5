package catalog

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/Demilade01/starstrike/assets"
	"github.com/Demilade01/starstrike/internal/game"
	"gopkg.in/yaml.v3"
)

// Template is one mission offer. Each call to Missions stamps a fresh ID
// from Prefix.
type Template struct {
	Prefix       string `yaml:"prefix"`
	game.Mission `yaml:",inline"`
}

// YAML serves rank-keyed mission templates decoded from YAML.
type YAML struct {
	mu        sync.Mutex
	templates [game.RankCount][]Template
	now       func() time.Time
	rng       *rand.Rand
}

// Option configures a YAML catalog.
type Option func(*YAML)

// WithClock sets the time source used for mission IDs.
func WithClock(now func() time.Time) Option { return func(c *YAML) { c.now = now } }

// WithSeed makes ID suffixes reproducible.
func WithSeed(seed uint64) Option {
	return func(c *YAML) { c.rng = rand.New(rand.NewPCG(seed, seed^0x5DEECE66D)) }
}

// Parse decodes a catalog document.
func Parse(data []byte, opts ...Option) (*YAML, error) {
	var raw map[string][]Template
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse mission catalog: %w", err)
	}

	c := &YAML{
		now: time.Now,
		rng: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
	for _, opt := range opts {
		opt(c)
	}

	for key, ts := range raw {
		rank, err := game.ParseRank(key)
		if err != nil {
			return nil, fmt.Errorf("parse mission catalog: %w", err)
		}
		for i, t := range ts {
			if t.Prefix == "" {
				return nil, fmt.Errorf("parse mission catalog: %s template %d has no prefix", key, i)
			}
			if t.TimeLimit < 0 {
				return nil, fmt.Errorf("parse mission catalog: %s/%s has negative time limit", key, t.Prefix)
			}
		}
		c.templates[rank] = ts
	}
	return c, nil
}

// Load reads a catalog file.
func Load(path string, opts ...Option) (*YAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mission catalog: %w", err)
	}
	return Parse(data, opts...)
}

// Default returns the catalog embedded in the binary.
func Default(opts ...Option) (*YAML, error) {
	data, err := assets.Data.ReadFile(assets.MissionsFile)
	if err != nil {
		return nil, fmt.Errorf("read mission catalog: %w", err)
	}
	return Parse(data, opts...)
}

// Missions returns the offers for rank, each with a newly generated ID.
func (c *YAML) Missions(ctx context.Context, rank game.Rank) ([]game.Mission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if rank >= game.RankCount {
		return nil, fmt.Errorf("missions for %s: unknown rank", rank)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stamp := c.now().Unix()
	ts := c.templates[rank]
	out := make([]game.Mission, 0, len(ts))
	for _, t := range ts {
		m := cloneMission(t.Mission)
		m.ID = fmt.Sprintf("%s_%d_%s", t.Prefix, stamp, c.suffix(9))
		out = append(out, m)
	}
	return out, nil
}

// Templates returns how many templates are registered for rank.
func (c *YAML) Templates(rank game.Rank) int {
	if rank >= game.RankCount {
		return 0
	}
	return len(c.templates[rank])
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func (c *YAML) suffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[c.rng.IntN(len(base36))]
	}
	return string(b)
}

func cloneMission(m game.Mission) game.Mission {
	m.Requirements.Traits = slices.Clone(m.Requirements.Traits)
	if m.Requirements.MinRank != nil {
		m.Requirements.MinRank = game.RequireRank(*m.Requirements.MinRank)
	}
	m.Rewards.TraitUpgrades = slices.Clone(m.Rewards.TraitUpgrades)
	m.Rewards.Resources = slices.Clone(m.Rewards.Resources)
	return m
}

package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankFor_Thresholds(t *testing.T) {
	tests := []struct {
		name       string
		xp         int
		leadership int
		want       Rank
	}{
		{"fresh pilot", 0, 0, RankRookie},
		{"just short of experienced", 99, 100, RankRookie},
		{"experienced at 100", 100, 0, RankExperienced},
		{"foreman needs leadership", 500, 24, RankExperienced},
		{"foreman exact", 500, 25, RankForeman},
		{"sector chief exact", 1500, 50, RankSectorChief},
		{"sector chief xp, foreman leadership", 1500, 49, RankForeman},
		{"board member exact", 5000, 75, RankBoardMember},
		{"board member xp, low leadership", 5000, 74, RankSectorChief},
		{"leadership alone is not enough", 0, 100, RankRookie},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RankFor(tt.xp, tt.leadership))
		})
	}
}

func TestRankFor_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 2000 {
		xp := rng.IntN(6000)
		lead := rng.IntN(101)
		r := RankFor(xp, lead)

		assert.GreaterOrEqual(t, RankFor(xp+rng.IntN(500), lead), r)
		assert.GreaterOrEqual(t, RankFor(xp, min(100, lead+rng.IntN(20))), r)
		assert.Equal(t, r, RankFor(xp, lead))
	}
}

func TestNextRankXP(t *testing.T) {
	want := map[Rank]int{
		RankRookie:      100,
		RankExperienced: 500,
		RankForeman:     1500,
		RankSectorChief: 5000,
	}
	for r, xp := range want {
		got, ok := NextRankXP(r)
		require.True(t, ok, r.String())
		assert.Equal(t, xp, got)
	}
	_, ok := NextRankXP(RankBoardMember)
	assert.False(t, ok)
}

func TestRank_TextRoundTrip(t *testing.T) {
	var r Rank
	require.NoError(t, r.UnmarshalText([]byte("sector_chief")))
	assert.Equal(t, RankSectorChief, r)
	assert.Error(t, r.UnmarshalText([]byte("admiral")))
	assert.Equal(t, "Board Member", RankBoardMember.Title())
}

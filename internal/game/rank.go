package game

import "fmt"

// Rank is the consortium rank. Ordering matters: higher ranks compare greater.
type Rank uint8

const (
	RankRookie Rank = iota
	RankExperienced
	RankForeman
	RankSectorChief
	RankBoardMember
	RankCount // sentinel
)

var rankKeys = [RankCount]string{
	RankRookie:      "rookie",
	RankExperienced: "experienced",
	RankForeman:     "foreman",
	RankSectorChief: "sector_chief",
	RankBoardMember: "board_member",
}

// rankThreshold is the (xp, leadership) floor for each rank.
var rankThreshold = [RankCount]struct{ xp, leadership int }{
	RankRookie:      {0, 0},
	RankExperienced: {100, 0},
	RankForeman:     {500, 25},
	RankSectorChief: {1500, 50},
	RankBoardMember: {5000, 75},
}

// RankFor derives the rank from total XP and leadership. It checks from the top
// down, so the first satisfied threshold wins.
func RankFor(xp, leadership int) Rank {
	for r := RankCount - 1; r > RankRookie; r-- {
		th := rankThreshold[r]
		if xp >= th.xp && leadership >= th.leadership {
			return r
		}
	}
	return RankRookie
}

// NextRankXP returns the XP target of the rank above r, or false at the top.
func NextRankXP(r Rank) (int, bool) {
	if r+1 >= RankCount {
		return 0, false
	}
	return rankThreshold[r+1].xp, true
}

// AtLeast reports whether r is the same as or above floor.
func (r Rank) AtLeast(floor Rank) bool { return r >= floor }

func (r Rank) String() string {
	if r < RankCount {
		return rankKeys[r]
	}
	return fmt.Sprintf("rank(%d)", uint8(r))
}

// Title returns the display name for a rank.
func (r Rank) Title() string {
	switch r {
	case RankRookie:
		return "Rookie"
	case RankExperienced:
		return "Experienced"
	case RankForeman:
		return "Foreman"
	case RankSectorChief:
		return "Sector Chief"
	case RankBoardMember:
		return "Board Member"
	default:
		return "Unknown"
	}
}

// ParseRank resolves a key such as "sector_chief".
func ParseRank(key string) (Rank, error) {
	for r, k := range rankKeys {
		if k == key {
			return Rank(r), nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", key)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rank) MarshalText() ([]byte, error) {
	if r >= RankCount {
		return nil, fmt.Errorf("invalid rank %d", uint8(r))
	}
	return []byte(rankKeys[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rank) UnmarshalText(b []byte) error {
	v, err := ParseRank(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

package game

import "fmt"

// MissionType is the kind of work a mission asks for.
type MissionType uint8

const (
	MissionMiningQuota MissionType = iota
	MissionExploration
	MissionConvoyEscort
	MissionSalvage
	missionTypeCount
)

var missionTypeKeys = [missionTypeCount]string{
	MissionMiningQuota:  "mining_quota",
	MissionExploration:  "exploration",
	MissionConvoyEscort: "convoy_escort",
	MissionSalvage:      "salvage_operation",
}

func (t MissionType) String() string {
	if t < missionTypeCount {
		return missionTypeKeys[t]
	}
	return fmt.Sprintf("mission_type(%d)", uint8(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t MissionType) MarshalText() ([]byte, error) {
	if t >= missionTypeCount {
		return nil, fmt.Errorf("invalid mission type %d", uint8(t))
	}
	return []byte(missionTypeKeys[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *MissionType) UnmarshalText(b []byte) error {
	for i, k := range missionTypeKeys {
		if k == string(b) {
			*t = MissionType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mission type %q", b)
}

// Difficulty is a display grade; it has no effect on gating.
type Difficulty uint8

const (
	DifficultyRookie Difficulty = iota
	DifficultyExperienced
	DifficultyExpert
	DifficultyElite
	difficultyCount
)

var difficultyKeys = [difficultyCount]string{"rookie", "experienced", "expert", "elite"}

func (d Difficulty) String() string {
	if d < difficultyCount {
		return difficultyKeys[d]
	}
	return fmt.Sprintf("difficulty(%d)", uint8(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if d >= difficultyCount {
		return nil, fmt.Errorf("invalid difficulty %d", uint8(d))
	}
	return []byte(difficultyKeys[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(b []byte) error {
	for i, k := range difficultyKeys {
		if k == string(b) {
			*d = Difficulty(i)
			return nil
		}
	}
	return fmt.Errorf("unknown difficulty %q", b)
}

// TraitMinimum is one trait gate: the trait must be at least Min.
type TraitMinimum struct {
	Trait TraitID `yaml:"trait" json:"trait"`
	Min   int     `yaml:"min" json:"min"`
}

// Requirements gate mission start. Traits are checked in order; MinRank is
// optional.
type Requirements struct {
	Traits  []TraitMinimum `yaml:"traits,omitempty" json:"traits,omitempty"`
	MinRank *Rank          `yaml:"minRank,omitempty" json:"minRank,omitempty"`
}

// Check returns every requirement the player fails, in declaration order with
// the rank check last. An empty result means the mission may start.
func (r Requirements) Check(p *Player) []Unmet {
	var unmet []Unmet
	for _, tm := range r.Traits {
		if tm.Trait >= TraitCount {
			unmet = append(unmet, Unmet{Trait: tm.Trait, Required: tm.Min})
			continue
		}
		if cur := p.Traits.Get(tm.Trait); cur < tm.Min {
			unmet = append(unmet, Unmet{Trait: tm.Trait, Required: tm.Min, Current: cur})
		}
	}
	if r.MinRank != nil {
		if cur := p.Rank(); !cur.AtLeast(*r.MinRank) {
			unmet = append(unmet, Unmet{RankCheck: true, RankNeeded: *r.MinRank, RankCurrent: cur})
		}
	}
	return unmet
}

// TraitUpgrade raises a trait on successful completion.
type TraitUpgrade struct {
	Trait    TraitID `yaml:"trait" json:"trait"`
	Increase int     `yaml:"increase" json:"increase"`
}

// Rewards are granted once, on successful completion.
type Rewards struct {
	XP            int             `yaml:"xp" json:"xp"`
	TraitUpgrades []TraitUpgrade  `yaml:"traitUpgrades,omitempty" json:"traitUpgrades,omitempty"`
	Resources     []ResourceGrant `yaml:"resources,omitempty" json:"resources,omitempty"`
}

// Mission is an offered or accepted contract.
type Mission struct {
	ID           string       `yaml:"id" json:"id"`
	Type         MissionType  `yaml:"type" json:"type"`
	Title        string       `yaml:"title" json:"title"`
	Description  string       `yaml:"description" json:"description"`
	Requirements Requirements `yaml:"requirements" json:"requirements"`
	Rewards      Rewards      `yaml:"rewards" json:"rewards"`
	TimeLimit    float64      `yaml:"timeLimit" json:"timeLimit"` // seconds
	Difficulty   Difficulty   `yaml:"difficulty" json:"difficulty"`
}

// RequireRank returns a pointer suitable for Requirements.MinRank.
func RequireRank(r Rank) *Rank { return &r }

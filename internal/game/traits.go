package game

import "fmt"

// TraitID identifies a player trait.
type TraitID uint8

const (
	TraitShipHandling TraitID = iota
	TraitMiningEfficiency
	TraitLeadership
	TraitNavigation
	TraitCombatSkills
	TraitEngineering
	TraitCount // sentinel
)

// MaxTrait is the ceiling every trait is clamped to.
const MaxTrait = 100

// traitKeys are the wire/catalog names, indexed by TraitID.
var traitKeys = [TraitCount]string{
	TraitShipHandling:     "shipHandling",
	TraitMiningEfficiency: "miningEfficiency",
	TraitLeadership:       "leadership",
	TraitNavigation:       "navigation",
	TraitCombatSkills:     "combatSkills",
	TraitEngineering:      "engineering",
}

// TraitName returns the display name for a trait.
func TraitName(id TraitID) string {
	switch id {
	case TraitShipHandling:
		return "Ship Handling"
	case TraitMiningEfficiency:
		return "Mining Efficiency"
	case TraitLeadership:
		return "Leadership"
	case TraitNavigation:
		return "Navigation"
	case TraitCombatSkills:
		return "Combat Skills"
	case TraitEngineering:
		return "Engineering"
	default:
		return "Unknown"
	}
}

// String returns the catalog key, e.g. "miningEfficiency".
func (t TraitID) String() string {
	if t < TraitCount {
		return traitKeys[t]
	}
	return fmt.Sprintf("trait(%d)", uint8(t))
}

// ParseTrait resolves a catalog key to a TraitID.
func ParseTrait(key string) (TraitID, error) {
	for id, k := range traitKeys {
		if k == key {
			return TraitID(id), nil
		}
	}
	return 0, fmt.Errorf("unknown trait %q", key)
}

// MarshalText implements encoding.TextMarshaler.
func (t TraitID) MarshalText() ([]byte, error) {
	if t >= TraitCount {
		return nil, fmt.Errorf("invalid trait %d", uint8(t))
	}
	return []byte(traitKeys[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TraitID) UnmarshalText(b []byte) error {
	id, err := ParseTrait(string(b))
	if err != nil {
		return err
	}
	*t = id
	return nil
}

// Traits holds the six player traits, each 0..MaxTrait.
type Traits [TraitCount]int

// DefaultTraits is the starting profile for a new pilot.
func DefaultTraits() Traits {
	return Traits{
		TraitShipHandling:     10,
		TraitMiningEfficiency: 5,
		TraitLeadership:       0,
		TraitNavigation:       15,
		TraitCombatSkills:     5,
		TraitEngineering:      10,
	}
}

// Get returns the value of a trait, or 0 for an unknown ID.
func (t *Traits) Get(id TraitID) int {
	if id >= TraitCount {
		return 0
	}
	return t[id]
}

// Upgrade raises a trait by amount, clamped to MaxTrait. Negative amounts are ignored
// so traits never decrease. Returns the new value.
func (t *Traits) Upgrade(id TraitID, amount int) int {
	if amount > 0 {
		t[id] = min(MaxTrait, t[id]+min(amount, MaxTrait))
	}
	return t[id]
}

// Clamped returns a copy with every trait forced into 0..MaxTrait.
func (t Traits) Clamped() Traits {
	for i := range t {
		t[i] = clampInt(t[i], 0, MaxTrait)
	}
	return t
}

// Map returns the traits keyed by catalog name.
func (t Traits) Map() map[string]int {
	m := make(map[string]int, TraitCount)
	for id, v := range t {
		m[traitKeys[id]] = v
	}
	return m
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

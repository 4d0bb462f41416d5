package game

import "fmt"

// ResourceKind identifies something a mission can pay out.
type ResourceKind uint8

const (
	ResourceBasicMinerals ResourceKind = iota
	ResourceRareElements
	ResourceCredits
	ResourceConsortiumTokens
	ResourceKindCount // sentinel
)

type resourceEntry struct {
	Key  string
	Name string
}

// resourceTable maps ResourceKind to catalog key and display name.
var resourceTable = [ResourceKindCount]resourceEntry{
	ResourceBasicMinerals:    {"basic_minerals", "Basic Minerals"},
	ResourceRareElements:     {"rare_elements", "Rare Elements"},
	ResourceCredits:          {"credits", "Credits"},
	ResourceConsortiumTokens: {"consortium_tokens", "Consortium Tokens"},
}

// ResourceName returns the display name for a resource kind.
func ResourceName(k ResourceKind) string {
	if k < ResourceKindCount {
		return resourceTable[k].Name
	}
	return "Unknown"
}

func (k ResourceKind) String() string {
	if k < ResourceKindCount {
		return resourceTable[k].Key
	}
	return fmt.Sprintf("resource(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k ResourceKind) MarshalText() ([]byte, error) {
	if k >= ResourceKindCount {
		return nil, fmt.Errorf("invalid resource kind %d", uint8(k))
	}
	return []byte(resourceTable[k].Key), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ResourceKind) UnmarshalText(b []byte) error {
	for i, e := range resourceTable {
		if e.Key == string(b) {
			*k = ResourceKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown resource kind %q", b)
}

// ResourceGrant is an amount of one resource.
type ResourceGrant struct {
	Kind   ResourceKind `yaml:"type" json:"type"`
	Amount int          `yaml:"amount" json:"amount"`
}

// Stockpile counts non-credit resources held by the player.
type Stockpile [ResourceKindCount]int

// Add credits a grant to the stockpile. Credits are not stockpiled; callers
// route them to the balance.
func (s *Stockpile) Add(g ResourceGrant) {
	if g.Kind < ResourceKindCount && g.Kind != ResourceCredits && g.Amount > 0 {
		s[g.Kind] += g.Amount
	}
}

// Grants returns the non-zero entries as a list.
func (s Stockpile) Grants() []ResourceGrant {
	var out []ResourceGrant
	for k, n := range s {
		if n > 0 {
			out = append(out, ResourceGrant{Kind: ResourceKind(k), Amount: n})
		}
	}
	return out
}

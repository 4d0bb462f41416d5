package field

import (
	"fmt"
	"os"

	"github.com/Demilade01/starstrike/assets"
	"github.com/Demilade01/starstrike/internal/game"
)

// Builtin names the embedded training layout.
const Builtin = "training"

// Source resolves a field setting. An empty path generates fields from seed,
// Builtin loads the embedded layout, anything else is read as a layout file.
func Source(path string, seed int64) (func() []game.AsteroidSpec, error) {
	var (
		data []byte
		err  error
	)
	switch path {
	case "":
		return Generator(seed, DefaultParams()), nil
	case Builtin:
		data, err = assets.Data.ReadFile(assets.TrainingField)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read field layout: %w", err)
	}

	l, err := LoadLayout(data)
	if err != nil {
		return nil, err
	}
	return l.Specs, nil
}

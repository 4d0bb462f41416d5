// Package field builds asteroid fields, either procedurally or from a JSON
// layout file.
package field

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/Demilade01/starstrike/internal/game"
)

// Default field shape.
const (
	DefaultCount    = 20
	DefaultRadius   = 15.0
	DefaultRareOdds = 0.3
	minSize         = 0.3
	sizeSpread      = 0.7
)

// Params shapes a generated field.
type Params struct {
	Count    int
	Radius   float64
	RareOdds float64 // 0..1 chance an asteroid is rare
}

// DefaultParams returns the standard 20-rock field.
func DefaultParams() Params {
	return Params{Count: DefaultCount, Radius: DefaultRadius, RareOdds: DefaultRareOdds}
}

// Generate scatters asteroids uniformly by direction inside a sphere. The same
// seed always produces the same field.
func Generate(seed int64, p Params) []game.AsteroidSpec {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed>>16|1)))
	out := make([]game.AsteroidSpec, 0, p.Count)
	for i := range p.Count {
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)
		r := rng.Float64() * p.Radius

		kind := game.AsteroidBasic
		size := minSize + rng.Float64()*sizeSpread
		if rng.Float64() < p.RareOdds {
			kind = game.AsteroidRare
		}
		out = append(out, game.AsteroidSpec{
			ID:   fmt.Sprintf("asteroid_%d", i),
			Kind: kind,
			Position: game.Vec3{
				X: r * math.Sin(phi) * math.Cos(theta),
				Y: r * math.Sin(phi) * math.Sin(theta),
				Z: r * math.Cos(phi),
			},
			Size: size,
		})
	}
	return out
}

// Generator returns a field source that draws a fresh seed from base on every
// call, so full resets get a new field while runs stay reproducible.
func Generator(base int64, p Params) func() []game.AsteroidSpec {
	n := int64(0)
	return func() []game.AsteroidSpec {
		specs := Generate(base+n, p)
		n++
		return specs
	}
}

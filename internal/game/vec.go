package game

import "math"

// Vec3 is a world-space vector. +Y is up, ship forward is -Z at heading 0.
type Vec3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Scale returns a*s.
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

// Len returns the Euclidean length.
func (a Vec3) Len() float64 { return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z) }

// Normalize returns a unit vector, or the zero vector for zero input.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{}
	}
	return a.Scale(1 / l)
}

// Dist returns the distance between a and b.
func (a Vec3) Dist(b Vec3) float64 { return a.Sub(b).Len() }

// RotateY rotates a about the +Y axis by yaw radians (counter-clockwise seen from above).
func (a Vec3) RotateY(yaw float64) Vec3 {
	sin, cos := math.Sincos(yaw)
	return Vec3{
		X: a.X*cos + a.Z*sin,
		Y: a.Y,
		Z: -a.X*sin + a.Z*cos,
	}
}

// Forward returns the unit forward direction for a heading.
func Forward(heading float64) Vec3 {
	return Vec3{Z: -1}.RotateY(heading)
}

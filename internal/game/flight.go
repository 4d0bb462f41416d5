package game

import "math"

// ShipState is the kinematic and weapon state of the player ship.
type ShipState struct {
	Position          Vec3    `json:"position"`
	Heading           float64 `json:"heading"` // yaw about +Y, radians
	Velocity          Vec3    `json:"velocity"`
	AngularVelocity   float64 `json:"angularVelocity"`   // rad/s, positive turns left
	ThrusterIntensity float64 `json:"thrusterIntensity"` // 0..1, drives the engine glow
	WeaponCooldown    float64 `json:"weaponCooldown"`    // seconds until the guns are ready
}

// Speed returns the magnitude of the velocity.
func (s ShipState) Speed() float64 { return s.Velocity.Len() }

// Forward returns the unit vector the nose points along.
func (s ShipState) Forward() Vec3 { return Forward(s.Heading) }

// Turning reports whether the ship is visibly rotating.
func (s ShipState) Turning(epsilon float64) bool {
	return math.Abs(s.AngularVelocity) > epsilon
}

// localThrust sums the held translation controls in ship-local space.
func localThrust(in Intent, ft FlightTuning) Vec3 {
	var v Vec3
	if in.Forward {
		v.Z -= ft.ForwardThrust
	}
	if in.Backward {
		v.Z += ft.ReverseThrust
	}
	if in.StrafeLeft {
		v.X -= ft.StrafeThrust
	}
	if in.StrafeRight {
		v.X += ft.StrafeThrust
	}
	return v
}

// Advance integrates one tick of ship motion. It is pure: the input state is
// not modified and the same inputs always give the same result.
func Advance(s ShipState, in Intent, stats ShipStats, ft FlightTuning, dt float64) ShipState {
	raw := localThrust(in, ft)
	mag := math.Min(1, raw.Len())
	thrusting := in.Thrusting() && mag > 0

	var accel Vec3
	if thrusting {
		dir := raw.Normalize().RotateY(s.Heading)
		accel = dir.Scale(stats.Acceleration * mag)
		s.ThrusterIntensity = math.Min(1, s.ThrusterIntensity+ft.RampUpRate*dt)
	} else {
		s.ThrusterIntensity = math.Max(0, s.ThrusterIntensity-ft.RampDownRate*dt)
	}

	s.Velocity = s.Velocity.Add(accel.Scale(dt))

	if !thrusting {
		speed := s.Velocity.Len()
		if speed > 0 {
			next := math.Max(0, speed-stats.Deceleration*dt)
			s.Velocity = s.Velocity.Scale(next / speed)
		}
	}

	if speed := s.Velocity.Len(); speed > stats.MaxSpeed {
		if stats.MaxSpeed <= 0 {
			s.Velocity = Vec3{}
		} else {
			s.Velocity = s.Velocity.Scale(stats.MaxSpeed / speed)
		}
	}

	switch {
	case in.RotateLeft && !in.RotateRight:
		s.AngularVelocity = stats.RotationSpeed
	case in.RotateRight && !in.RotateLeft:
		s.AngularVelocity = -stats.RotationSpeed
	default:
		s.AngularVelocity *= ft.AngularDamping
		if math.Abs(s.AngularVelocity) < ft.AngularSnap {
			s.AngularVelocity = 0
		}
	}

	s.Heading += s.AngularVelocity * dt
	s.Position = s.Position.Add(s.Velocity.Scale(dt))
	return s
}

package game

// Control is one boolean input channel.
type Control uint8

const (
	ControlForward Control = iota
	ControlBackward
	ControlStrafeLeft
	ControlStrafeRight
	ControlRotateLeft
	ControlRotateRight
	ControlFire
	ControlCount // sentinel
)

// Intent is the control state the simulation consumes for one tick.
type Intent struct {
	Forward     bool
	Backward    bool
	StrafeLeft  bool
	StrafeRight bool
	RotateLeft  bool
	RotateRight bool
	Fire        bool
}

// Thrusting reports whether any translation control is held.
func (in Intent) Thrusting() bool {
	return in.Forward || in.Backward || in.StrafeLeft || in.StrafeRight
}

// Sampler turns press/release events into a held-state snapshot.
// Events between two samples collapse to the last state of each channel.
type Sampler struct {
	held [ControlCount]bool
}

// Set records a press (down=true) or release of a control.
func (s *Sampler) Set(c Control, down bool) {
	if c < ControlCount {
		s.held[c] = down
	}
}

// Held reports the current state of one control.
func (s *Sampler) Held(c Control) bool {
	return c < ControlCount && s.held[c]
}

// Sample returns the intent for this tick.
func (s *Sampler) Sample() Intent {
	return Intent{
		Forward:     s.held[ControlForward],
		Backward:    s.held[ControlBackward],
		StrafeLeft:  s.held[ControlStrafeLeft],
		StrafeRight: s.held[ControlStrafeRight],
		RotateLeft:  s.held[ControlRotateLeft],
		RotateRight: s.held[ControlRotateRight],
		Fire:        s.held[ControlFire],
	}
}

// Release clears every held control.
func (s *Sampler) Release() {
	s.held = [ControlCount]bool{}
}

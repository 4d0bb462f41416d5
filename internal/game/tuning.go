package game

import "time"

// Tuning holds every gameplay constant that designers may override from YAML.
type Tuning struct {
	Flight  FlightTuning  `yaml:"flight" json:"flight"`
	Weapon  WeaponTuning  `yaml:"weapon" json:"weapon"`
	Mining  MiningTuning  `yaml:"mining" json:"mining"`
	Mission MissionTuning `yaml:"mission" json:"mission"`
	Stats   StatTuning    `yaml:"stats" json:"stats"`
}

// FlightTuning shapes the thrust and rotation model.
type FlightTuning struct {
	ForwardThrust  float64 `yaml:"forwardThrust" json:"forwardThrust"`
	ReverseThrust  float64 `yaml:"reverseThrust" json:"reverseThrust"`
	StrafeThrust   float64 `yaml:"strafeThrust" json:"strafeThrust"`
	RampUpRate     float64 `yaml:"rampUpRate" json:"rampUpRate"`         // thruster intensity per second
	RampDownRate   float64 `yaml:"rampDownRate" json:"rampDownRate"`     // thruster intensity per second
	AngularDamping float64 `yaml:"angularDamping" json:"angularDamping"` // per tick, no rotate input
	TurnEpsilon    float64 `yaml:"turnEpsilon" json:"turnEpsilon"`       // presentation only
	AngularSnap    float64 `yaml:"angularSnap" json:"angularSnap"`       // 0 disables
}

// WeaponTuning covers hardpoints and projectile flight.
type WeaponTuning struct {
	ProjectileSpeed    float64 `yaml:"projectileSpeed" json:"projectileSpeed"`
	ProjectileLifetime float64 `yaml:"projectileLifetime" json:"projectileLifetime"`
	LeftHardpoint      Vec3    `yaml:"leftHardpoint" json:"leftHardpoint"`
	RightHardpoint     Vec3    `yaml:"rightHardpoint" json:"rightHardpoint"`
}

// MiningTuning covers the mining timers and quota.
type MiningTuning struct {
	StepInterval time.Duration `yaml:"stepInterval" json:"stepInterval"`
	StepPoints   int           `yaml:"stepPoints" json:"stepPoints"`
	Quota        int           `yaml:"quota" json:"quota"`
	SettleDelay  time.Duration `yaml:"settleDelay" json:"settleDelay"`
}

// MissionTuning covers lifecycle options.
type MissionTuning struct {
	EnforceTimeLimit bool `yaml:"enforceTimeLimit" json:"enforceTimeLimit"`
	OutcomeLog       int  `yaml:"outcomeLog" json:"outcomeLog"`
}

// StatTuning maps traits onto ShipStats.
type StatTuning struct {
	BaseMaxSpeed        float64 `yaml:"baseMaxSpeed" json:"baseMaxSpeed"`
	MaxSpeedPerHandling float64 `yaml:"maxSpeedPerHandling" json:"maxSpeedPerHandling"`
	ManeuverPerHandling float64 `yaml:"maneuverPerHandling" json:"maneuverPerHandling"`
	BaseAcceleration    float64 `yaml:"baseAcceleration" json:"baseAcceleration"`
	BaseDeceleration    float64 `yaml:"baseDeceleration" json:"baseDeceleration"`
	BaseRotationSpeed   float64 `yaml:"baseRotationSpeed" json:"baseRotationSpeed"`
	BaseCooldown        float64 `yaml:"baseCooldown" json:"baseCooldown"`
	CooldownPerCombat   float64 `yaml:"cooldownPerCombat" json:"cooldownPerCombat"`
	MinCooldown         float64 `yaml:"minCooldown" json:"minCooldown"`
	BaseDamage          float64 `yaml:"baseDamage" json:"baseDamage"`
	DamagePerCombat     float64 `yaml:"damagePerCombat" json:"damagePerCombat"`
}

// DefaultTuning returns the built-in constants. assets/tuning.yaml mirrors these.
func DefaultTuning() Tuning {
	return Tuning{
		Flight: FlightTuning{
			ForwardThrust:  1.0,
			ReverseThrust:  0.6,
			StrafeThrust:   0.8,
			RampUpRate:     4,
			RampDownRate:   2,
			AngularDamping: 0.9,
			TurnEpsilon:    0.01,
		},
		Weapon: WeaponTuning{
			ProjectileSpeed:    25,
			ProjectileLifetime: 3,
			LeftHardpoint:      Vec3{X: -1.2, Z: -1.0},
			RightHardpoint:     Vec3{X: 1.2, Z: -1.0},
		},
		Mining: MiningTuning{
			StepInterval: 100 * time.Millisecond,
			StepPoints:   10,
			Quota:        5,
			SettleDelay:  500 * time.Millisecond,
		},
		Mission: MissionTuning{
			OutcomeLog: 20,
		},
		Stats: StatTuning{
			BaseMaxSpeed:        10,
			MaxSpeedPerHandling: 0.5,
			ManeuverPerHandling: 0.02,
			BaseAcceleration:    8,
			BaseDeceleration:    4,
			BaseRotationSpeed:   2.5,
			BaseCooldown:        0.25,
			CooldownPerCombat:   0.002,
			MinCooldown:         0.1,
			BaseDamage:          10,
			DamagePerCombat:     0.5,
		},
	}
}

package game

// ShipStats are the performance figures the flight and weapon steps read.
// They are derived from traits and never edited directly.
type ShipStats struct {
	MaxSpeed           float64 `json:"maxSpeed"`
	Acceleration       float64 `json:"acceleration"`
	Deceleration       float64 `json:"deceleration"`
	RotationSpeed      float64 `json:"rotationSpeed"`      // rad/s
	WeaponCooldownTime float64 `json:"weaponCooldownTime"` // seconds
	WeaponDamage       float64 `json:"weaponDamage"`
}

// StatsFromTraits derives ship performance from the pilot's traits.
// Ship handling feeds speed and maneuverability, combat skills feed the guns.
func StatsFromTraits(t Traits, st StatTuning) ShipStats {
	handling := float64(t[TraitShipHandling])
	combat := float64(t[TraitCombatSkills])
	maneuver := 1 + handling*st.ManeuverPerHandling

	return ShipStats{
		MaxSpeed:           st.BaseMaxSpeed + handling*st.MaxSpeedPerHandling,
		Acceleration:       st.BaseAcceleration * maneuver,
		Deceleration:       st.BaseDeceleration * maneuver,
		RotationSpeed:      st.BaseRotationSpeed * maneuver,
		WeaponCooldownTime: max(st.MinCooldown, st.BaseCooldown-combat*st.CooldownPerCombat),
		WeaponDamage:       st.BaseDamage + combat*st.DamagePerCombat,
	}
}

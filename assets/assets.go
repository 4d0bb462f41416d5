package assets

import "embed"

// Data holds the built-in tuning, mission catalog and field layouts.
//
//go:embed tuning.yaml missions.yaml fields/*.json
var Data embed.FS

const (
	TuningFile    = "tuning.yaml"
	MissionsFile  = "missions.yaml"
	TrainingField = "fields/training.json"
)

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Demilade01/starstrike/assets"
	"github.com/Demilade01/starstrike/internal/game"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the resolved application configuration.
type Config struct {
	LogLevel     string          `mapstructure:"logLevel"`
	LogFile      string          `mapstructure:"logFile"`
	PlayerID     string          `mapstructure:"playerId"`
	TuningFile   string          `mapstructure:"tuningFile"`
	MissionsFile string          `mapstructure:"missionsFile"`
	FieldFile    string          `mapstructure:"fieldFile"`
	Seed         int64           `mapstructure:"seed"`
	Telemetry    TelemetryConfig `mapstructure:"telemetry"`
	Ledger       LedgerConfig    `mapstructure:"ledger"`
}

// TelemetryConfig controls the websocket snapshot feed.
type TelemetryConfig struct {
	Addr       string `mapstructure:"addr"`
	EveryTicks int    `mapstructure:"everyTicks"`
}

// LedgerConfig selects the ledger. An empty URL uses the offline ledger.
type LedgerConfig struct {
	URL     string        `mapstructure:"url"`
	Key     string        `mapstructure:"key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"log-level":       "logLevel",
	"log-file":        "logFile",
	"player":          "playerId",
	"tuning":          "tuningFile",
	"missions":        "missionsFile",
	"field":           "fieldFile",
	"seed":            "seed",
	"telemetry-addr":  "telemetry.addr",
	"ledger-url":      "ledger.url",
	"ledger-key":      "ledger.key",
	"ledger-timeout":  "ledger.timeout",
	"telemetry-every": "telemetry.everyTicks",
}

// Flags returns the command line flags Load understands.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("starstrike", pflag.ContinueOnError)
	fs.String("config-dir", ".", "directory holding starstrike.yaml")
	fs.String("log-level", "", "trace, debug, info, warn or error")
	fs.String("log-file", "", "also write logs to this file")
	fs.String("player", "", "pilot ID to load from the ledger")
	fs.String("tuning", "", "gameplay tuning YAML overriding the built-in values")
	fs.String("missions", "", "mission catalog YAML (default: built-in)")
	fs.String("field", "", "asteroid field layout JSON, or \"training\"")
	fs.Int64("seed", 0, "asteroid field seed (0 picks one from the clock)")
	fs.String("telemetry-addr", "", "serve snapshots over websocket on this address")
	fs.Int("telemetry-every", 0, "broadcast a snapshot every N ticks")
	fs.String("ledger-url", "", "remote ledger base URL (default: offline)")
	fs.String("ledger-key", "", "ledger API key, also used to sign proofs")
	fs.Duration("ledger-timeout", 0, "ledger request timeout")
	return fs
}

// Load parses args, reads an optional starstrike.yaml and STARSTRIKE_*
// environment variables, and returns the merged configuration. Flags win over
// the environment, which wins over the file.
func Load(args []string) (Config, error) {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")
	viper.SetDefault("playerId", "local")
	viper.SetDefault("tuningFile", "")
	viper.SetDefault("missionsFile", "")
	viper.SetDefault("fieldFile", "")
	viper.SetDefault("seed", 0)

	viper.SetDefault("telemetry.addr", "")
	viper.SetDefault("telemetry.everyTicks", 6)

	viper.SetDefault("ledger.url", "")
	viper.SetDefault("ledger.key", "starstrike-dev")
	viper.SetDefault("ledger.timeout", "10s")

	fs := Flags()
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	for name, key := range flagKeys {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	viper.SetEnvPrefix("STARSTRIKE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	dir, _ := fs.GetString("config-dir")
	viper.SetConfigName("starstrike")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(dir)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Telemetry.EveryTicks < 1 {
		cfg.Telemetry.EveryTicks = 1
	}
	return cfg, nil
}

// LoadTuning layers the embedded tuning file and then the override at path
// (if any) onto the built-in defaults. Keys missing from a file keep their
// previous value.
func LoadTuning(path string) (game.Tuning, error) {
	t := game.DefaultTuning()

	data, err := assets.Data.ReadFile(assets.TuningFile)
	if err != nil {
		return t, fmt.Errorf("read built-in tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse built-in tuning: %w", err)
	}

	if path == "" {
		return t, nil
	}
	data, err = os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := validate(t); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

func validate(t game.Tuning) error {
	switch {
	case t.Mining.StepInterval <= 0:
		return errors.New("mining.stepInterval must be positive")
	case t.Mining.StepPoints <= 0:
		return errors.New("mining.stepPoints must be positive")
	case t.Mining.Quota <= 0:
		return errors.New("mining.quota must be positive")
	case t.Weapon.ProjectileLifetime <= 0:
		return errors.New("weapon.projectileLifetime must be positive")
	case t.Flight.AngularDamping < 0 || t.Flight.AngularDamping > 1:
		return errors.New("flight.angularDamping must be within 0..1")
	}
	return nil
}

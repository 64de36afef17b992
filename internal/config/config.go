// Package config loads the urtledger configuration: TOML file, then
// environment, then explicit flag overrides, each layer winning over the
// previous one.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultLogLevel     = "info"
	defaultLogMaxSizeMB = 10
	defaultLogMaxFiles  = 5
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Ledger  LedgerConfig  `toml:"ledger"`
	Logging LoggingConfig `toml:"logging"`
}

type LedgerConfig struct {
	// Path is the ledger database file. There is no baked-in default; the
	// surrounding application decides where the ledger lives.
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
	MaxFiles  int    `toml:"max_files"`
}

type LoadOptions struct {
	ConfigPath string
	// Env overrides process environment lookups when non-nil (tests).
	Env   map[string]string
	Flags FlagOverrides
}

type FlagOverrides struct {
	LedgerPath *string
	LogLevel   *string
}

func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:     defaultLogLevel,
			MaxSizeMB: defaultLogMaxSizeMB,
			MaxFiles:  defaultLogMaxFiles,
		},
	}
}

func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	if err := loadAndApplyFile(opts.ConfigPath, &cfg); err != nil {
		return Config{}, err
	}
	applyEnvOverrides(&cfg, opts)
	applyFlagOverrides(&cfg, opts.Flags)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Raw mirrors of the config structs with pointer fields, so a file can set
// a value to its zero without being mistaken for "absent".
type rawConfig struct {
	Ledger  *rawLedger  `toml:"ledger"`
	Logging *rawLogging `toml:"logging"`
}

type rawLedger struct {
	Path *string `toml:"path"`
}

type rawLogging struct {
	Level     *string `toml:"level"`
	File      *string `toml:"file"`
	MaxSizeMB *int    `toml:"max_size_mb"`
	MaxFiles  *int    `toml:"max_files"`
}

func loadAndApplyFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: parse TOML file %q: %v", ErrInvalidConfig, path, err)
	}

	if raw.Ledger != nil && raw.Ledger.Path != nil {
		cfg.Ledger.Path = *raw.Ledger.Path
	}
	if raw.Logging != nil {
		if raw.Logging.Level != nil {
			cfg.Logging.Level = *raw.Logging.Level
		}
		if raw.Logging.File != nil {
			cfg.Logging.File = *raw.Logging.File
		}
		if raw.Logging.MaxSizeMB != nil {
			cfg.Logging.MaxSizeMB = *raw.Logging.MaxSizeMB
		}
		if raw.Logging.MaxFiles != nil {
			cfg.Logging.MaxFiles = *raw.Logging.MaxFiles
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config, opts LoadOptions) {
	lookup := func(key string) (string, bool) {
		if opts.Env != nil {
			value, ok := opts.Env[key]
			return value, ok
		}
		return os.LookupEnv(key)
	}

	if value, ok := lookup("URTLEDGER_DB"); ok && value != "" {
		cfg.Ledger.Path = value
	}
	if value, ok := lookup("URTLEDGER_LOG_LEVEL"); ok && value != "" {
		cfg.Logging.Level = value
	}
}

func applyFlagOverrides(cfg *Config, flags FlagOverrides) {
	if flags.LedgerPath != nil && *flags.LedgerPath != "" {
		cfg.Ledger.Path = *flags.LedgerPath
	}
	if flags.LogLevel != nil && *flags.LogLevel != "" {
		cfg.Logging.Level = *flags.LogLevel
	}
}

func validate(cfg Config) error {
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q is not one of debug, info, warn, error", ErrInvalidConfig, cfg.Logging.Level)
	}
	if cfg.Logging.MaxSizeMB < 0 {
		return fmt.Errorf("%w: logging.max_size_mb must not be negative", ErrInvalidConfig)
	}
	if cfg.Logging.MaxFiles < 0 {
		return fmt.Errorf("%w: logging.max_files must not be negative", ErrInvalidConfig)
	}
	return nil
}

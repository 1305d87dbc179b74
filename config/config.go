package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug               = "debug"
	ConfigConfigFile          = "config-file"
	ConfigCPUProfile          = "cpu-profile"
	ConfigTimeLimitMs         = "time-limit-ms"
	ConfigMinDepth            = "min-depth"
	ConfigMaxDepth            = "max-depth"
	ConfigWrapWidth           = "wrap-width"
	ConfigDepthAwareCache     = "depth-aware-cache"
	ConfigCachePerCycle       = "cache-per-cycle"
	ConfigCacheMemoryFraction = "cache-memory-fraction"
	ConfigBoardWidth          = "board-width"
	ConfigBoardHeight         = "board-height"
	ConfigMaxTurns            = "max-turns"
	ConfigArenaMatches        = "arena-matches"
	ConfigArenaThreads        = "arena-threads"
	ConfigArenaFish           = "arena-fish"
	ConfigArenaOpponent       = "arena-opponent"
	ConfigArenaOut            = "arena-out"
)

var ErrBadDepthRange = errors.New("min-depth must be at least 1 and not above max-depth")

// Config wraps a viper instance. Values come, in increasing priority, from
// defaults, an optional config file, FISHDERBY_* environment variables and
// command-line flags.
type Config struct {
	viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigTimeLimitMs, 30)
	v.SetDefault(ConfigMinDepth, 2)
	v.SetDefault(ConfigMaxDepth, 8)
	v.SetDefault(ConfigWrapWidth, 19)
	v.SetDefault(ConfigDepthAwareCache, false)
	v.SetDefault(ConfigCachePerCycle, false)
	v.SetDefault(ConfigCacheMemoryFraction, 0.01)
	v.SetDefault(ConfigBoardWidth, 20)
	v.SetDefault(ConfigBoardHeight, 20)
	v.SetDefault(ConfigMaxTurns, 150)
	v.SetDefault(ConfigArenaMatches, 20)
	v.SetDefault(ConfigArenaThreads, 4)
	v.SetDefault(ConfigArenaFish, 8)
	v.SetDefault(ConfigArenaOpponent, "greedy")
	v.SetDefault(ConfigArenaOut, "")
}

// DefaultConfig returns a config holding only the defaults. Tests use it.
func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	setDefaults(&c.Viper)
	return c
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("fishderby", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigConfigFile, "", "optional yaml/toml/json config file")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this path")
	fs.Int(ConfigTimeLimitMs, 30, "per-decision time budget in milliseconds")
	fs.Int(ConfigMinDepth, 2, "first iterative deepening depth")
	fs.Int(ConfigMaxDepth, 8, "last iterative deepening depth")
	fs.Int(ConfigWrapWidth, 19, "board width used by the distance heuristic")
	fs.Bool(ConfigDepthAwareCache, false, "only reuse cached values computed at an equal or greater depth")
	fs.Bool(ConfigCachePerCycle, false, "clear the transposition cache at the start of every decision")
	fs.Float64(ConfigCacheMemoryFraction, 0.01, "fraction of system memory used to presize the cache")
	fs.Int(ConfigBoardWidth, 20, "board width for generated scenarios")
	fs.Int(ConfigBoardHeight, 20, "board height for generated scenarios")
	fs.Int(ConfigMaxTurns, 150, "turn limit; 0 means no limit")
	fs.Int(ConfigArenaMatches, 20, "number of arena matches")
	fs.Int(ConfigArenaThreads, 4, "matches played concurrently")
	fs.Int(ConfigArenaFish, 8, "fish per generated scenario")
	fs.String(ConfigArenaOpponent, "greedy", "arena opponent: greedy, random or minimax")
	fs.String(ConfigArenaOut, "", "write match records to this parquet file")
	return fs
}

// Load builds the config from the given command-line arguments and the
// environment. Positional arguments are left for the caller in Args.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	setDefaults(&c.Viper)

	c.SetEnvPrefix("fishderby")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.Set("args", fs.Args())

	if cf := c.GetString(ConfigConfigFile); cf != "" {
		c.SetConfigFile(cf)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return c.Validate()
}

// Args returns the positional arguments left over after flag parsing.
func (c *Config) Args() []string {
	return c.GetStringSlice("args")
}

// Validate checks the relationships between keys.
func (c *Config) Validate() error {
	minD, maxD := c.GetInt(ConfigMinDepth), c.GetInt(ConfigMaxDepth)
	if minD < 1 || minD > maxD {
		return fmt.Errorf("%w (got %d..%d)", ErrBadDepthRange, minD, maxD)
	}
	if c.GetInt(ConfigTimeLimitMs) <= 0 {
		return errors.New("time-limit-ms must be positive")
	}
	return nil
}

// SanitizedSettings returns all settings for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}

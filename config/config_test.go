package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigTimeLimitMs), 30)
	is.Equal(cfg.GetInt(ConfigMinDepth), 2)
	is.Equal(cfg.GetInt(ConfigMaxDepth), 8)
	is.Equal(cfg.GetInt(ConfigWrapWidth), 19)
	is.Equal(cfg.GetBool(ConfigDepthAwareCache), false)
	is.NoErr(cfg.Validate())
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--time-limit-ms", "75", "--max-depth=6", "scenario.yaml"})
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigTimeLimitMs), 75)
	is.Equal(cfg.GetInt(ConfigMaxDepth), 6)
	is.Equal(cfg.GetInt(ConfigMinDepth), 2)
	is.Equal(cfg.Args(), []string{"scenario.yaml"})
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("FISHDERBY_TIME_LIMIT_MS", "60")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetInt(ConfigTimeLimitMs), 60)
}

func TestLoadConfigFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "fishderby.yaml")
	is.NoErr(os.WriteFile(path, []byte("min-depth: 3\ndepth-aware-cache: true\n"), 0o644))
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--config-file", path}))
	is.Equal(cfg.GetInt(ConfigMinDepth), 3)
	is.True(cfg.GetBool(ConfigDepthAwareCache))
}

func TestBadDepthRange(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--min-depth", "9"})
	is.True(err != nil)
}

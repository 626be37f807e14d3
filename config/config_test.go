package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, CheckConfig(cfg))
	assert.Equal(t, DefaultAttempts, cfg.Bench.Attempts)

	// Defaults must not alias the package-level slice.
	cfg.Bench.Attempts[0] = 7
	assert.Equal(t, uint32(1), DefaultAttempts[0])
}

func TestCheckConfigFillsSections(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, CheckConfig(cfg))
	assert.Equal(t, DefaultLog(), cfg.Log)
	assert.Equal(t, DefaultDatastore(), cfg.Datastore)
	assert.Equal(t, DefaultBench(), cfg.Bench)
	assert.Equal(t, DefaultMiner(), cfg.Miner)
}

func TestCheckConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"bad header hex", func(c *Config) { c.Bench.HeaderHex = "zz" }, false},
		{"short header", func(c *Config) { c.Bench.HeaderHex = DefaultHeaderHex[:100] }, false},
		{"no attempts", func(c *Config) { c.Bench.Attempts = nil }, false},
		{"zero attempt", func(c *Config) { c.Bench.Attempts = []uint32{0, 10} }, false},
		{"unsorted attempts", func(c *Config) { c.Bench.Attempts = []uint32{10, 1} }, false},
		{"negative elapsed", func(c *Config) { c.Bench.MinElapsed = -1 }, false},
		{"zero profit", func(c *Config) { c.Bench.YearProfitPerMegahash = 0 }, false},
		{"zero workers", func(c *Config) { c.Miner.Workers = 0 }, false},
		{"too many workers", func(c *Config) { c.Miner.Workers = MaxMinerWorkers + 1 }, false},
		{"zero batch", func(c *Config) { c.Miner.BatchSize = 0 }, false},
		{"many workers", func(c *Config) { c.Miner.Workers = 8 }, true},
	}
	for _, test := range tests {
		cfg := DefaultConfig()
		test.modify(cfg)
		err := CheckConfig(cfg)
		if test.ok {
			assert.NoError(t, err, test.name)
		} else {
			assert.Error(t, err, test.name)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "config")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, DefaultConfigFilename)
	content := `{"bench": {"attempts": [5, 50]}, "miner": {"workers": 4}}`
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []uint32{5, 50}, cfg.Bench.Attempts)
	assert.Equal(t, 4, cfg.Miner.Workers)
	// Unset fields keep their defaults.
	assert.Equal(t, DefaultHeaderHex, cfg.Bench.HeaderHex)
	assert.Equal(t, uint32(1<<14), cfg.Miner.BatchSize)
	assert.Equal(t, DefaultLogLevel, cfg.Log.LogLevel)
	require.NoError(t, CheckConfig(cfg))

	require.NoError(t, ioutil.WriteFile(path, []byte("{"), 0600))
	_, err = LoadConfig(path)
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(dir, "missing.json"))
	assert.True(t, os.IsNotExist(err))
}

package config

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/pkg/errors"
)

const (
	DefaultConfigFilename  = "config.json"
	DefaultLoggingFilename = "sha256bench"
	DefaultDataDirname     = "data"
	DefaultLogLevel        = "info"
	defaultLogDirname      = "logs"

	// DefaultHeaderHex is block 277316 of the Bitcoin main chain, whose
	// nonce 4215469401 sits at byte offset 76.
	DefaultHeaderHex = "02000000492263a1711b7d5ff065d7ae3da8b5f3fa39ad7bfea67b7e02000000000000009de25511ea941d5eb23a3f08ea8a54096e0a3cf57823b9eb2dabe030409f045ece05be520ca3031959f542fb"

	// DefaultYearProfitPerMegahash is the 2021 income, in dollars per
	// year, of one MH/s of SHA-256 mining.
	DefaultYearProfitPerMegahash = 0.0001129

	// DefaultMinElapsed is the shortest round, in seconds, whose timing is
	// trusted for a speed estimate.
	DefaultMinElapsed = 0.2

	MaxMinerWorkers = 1024
	headerSize      = 80
)

// DefaultAttempts are the escalating iteration counts of a benchmark.
var DefaultAttempts = []uint32{1, 10, 100, 1000, 10000, 100000, 500000, 1000000, 2000000}

type Config struct {
	Log       *Log       `json:"log"`
	Datastore *Datastore `json:"datastore"`
	Bench     *Bench     `json:"bench"`
	Miner     *Miner     `json:"miner"`
}

type Log struct {
	LogDir        string `json:"log_dir"`
	LogLevel      string `json:"log_level"`
	LogAge        uint32 `json:"log_age"`
	DisableCPrint bool   `json:"disable_cprint"`
}

type Datastore struct {
	Dir string `json:"dir"`
}

type Bench struct {
	HeaderHex             string   `json:"header_hex"`
	Attempts              []uint32 `json:"attempts"`
	MinElapsed            float64  `json:"min_elapsed"`
	YearProfitPerMegahash float64  `json:"year_profit_per_megahash"`
}

type Miner struct {
	Workers           int    `json:"workers"`
	BatchSize         uint32 `json:"batch_size"`
	MidstateCacheSize int    `json:"midstate_cache_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Log:       DefaultLog(),
		Datastore: DefaultDatastore(),
		Bench:     DefaultBench(),
		Miner:     DefaultMiner(),
	}
}

func DefaultLog() *Log {
	return &Log{
		LogDir:        defaultLogDirname,
		LogLevel:      DefaultLogLevel,
		LogAge:        7,
		DisableCPrint: true,
	}
}

func DefaultDatastore() *Datastore {
	return &Datastore{
		Dir: DefaultDataDirname,
	}
}

func DefaultBench() *Bench {
	attempts := make([]uint32, len(DefaultAttempts))
	copy(attempts, DefaultAttempts)
	return &Bench{
		HeaderHex:             DefaultHeaderHex,
		Attempts:              attempts,
		MinElapsed:            DefaultMinElapsed,
		YearProfitPerMegahash: DefaultYearProfitPerMegahash,
	}
}

func DefaultMiner() *Miner {
	return &Miner{
		Workers:           1,
		BatchSize:         1 << 14,
		MidstateCacheSize: 16,
	}
}

// LoadConfig reads a JSON config file over the defaults.
func LoadConfig(filename string) (*Config, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err = json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", filename)
	}
	return cfg, nil
}

// CheckConfig fills missing sections with defaults and validates values.
func CheckConfig(cfg *Config) error {
	if cfg.Log == nil {
		cfg.Log = DefaultLog()
	}

	if cfg.Datastore == nil {
		cfg.Datastore = DefaultDatastore()
	}

	if cfg.Bench == nil {
		cfg.Bench = DefaultBench()
	}

	if cfg.Miner == nil {
		cfg.Miner = DefaultMiner()
	}

	// Checks for bench
	raw, err := hex.DecodeString(cfg.Bench.HeaderHex)
	if err != nil {
		return errors.Wrap(err, "invalid bench header")
	}
	if len(raw) != headerSize {
		return fmt.Errorf("bench header must be %d bytes, got %d", headerSize, len(raw))
	}
	if len(cfg.Bench.Attempts) == 0 {
		return errors.New("bench attempts cannot be empty")
	}
	for i, n := range cfg.Bench.Attempts {
		if n == 0 {
			return fmt.Errorf("invalid bench attempts, %d, %d", i, n)
		}
	}
	if !sort.SliceIsSorted(cfg.Bench.Attempts, func(i, j int) bool {
		return cfg.Bench.Attempts[i] < cfg.Bench.Attempts[j]
	}) {
		return errors.New("bench attempts must be ascending")
	}
	if cfg.Bench.MinElapsed < 0 {
		return fmt.Errorf("invalid bench min_elapsed %v", cfg.Bench.MinElapsed)
	}
	if cfg.Bench.YearProfitPerMegahash <= 0 {
		return fmt.Errorf("invalid bench year_profit_per_megahash %v", cfg.Bench.YearProfitPerMegahash)
	}

	// Checks for miner
	if cfg.Miner.Workers <= 0 || cfg.Miner.Workers > MaxMinerWorkers {
		return errors.New(fmt.Sprintln("miner workers must be in [1,", MaxMinerWorkers, "], current", cfg.Miner.Workers))
	}
	if cfg.Miner.BatchSize == 0 {
		return errors.New("miner batch_size cannot be zero")
	}

	return nil
}

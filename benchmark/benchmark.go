// Package benchmark measures single-core double SHA-256 throughput the way
// a Bitcoin miner spends it: one 80-byte header hashed, the 32-byte digest
// hashed again, with the nonce changing between attempts.
package benchmark

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/dmitryelj/SHA256-Benchmark/config"
	"github.com/dmitryelj/SHA256-Benchmark/logging"
	"github.com/dmitryelj/SHA256-Benchmark/version"
	"github.com/dmitryelj/SHA256-Benchmark/wire"
	"github.com/pkg/errors"
)

// checkInterval is how many attempts run between context checks.
const checkInterval = 1 << 12

// Round is one timed batch of double hashes.
type Round struct {
	Attempts uint32        `json:"attempts"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Seconds returns the round duration in seconds.
func (r Round) Seconds() float64 { return r.Elapsed.Seconds() }

// Report is the outcome of a benchmark run.
type Report struct {
	Version    string    `json:"version"`
	StartedAt  time.Time `json:"started_at"`
	Header     string    `json:"header"`
	Nonce      uint32    `json:"nonce"`
	FirstHash  string    `json:"first_hash"`
	SecondHash string    `json:"second_hash"`
	Rounds     []Round   `json:"rounds"`

	// Estimated reports whether some round ran long enough for a speed
	// estimate. HashRate and YearsToEarnDollar are zero otherwise.
	Estimated         bool      `json:"estimated"`
	HashRate          float64   `json:"hash_rate"`
	YearsToEarnDollar float64   `json:"years_to_earn_dollar"`
	Host              *HostInfo `json:"host,omitempty"`
}

// YearsToEarnDollar returns how many years of mining at hashRate hashes per
// second it takes to earn one dollar, given the yearly income of 1 MH/s.
func YearsToEarnDollar(hashRate, yearProfitPerMegahash float64) float64 {
	if hashRate <= 0 || yearProfitPerMegahash <= 0 {
		return 0
	}
	return 1e6 / (yearProfitPerMegahash * hashRate)
}

// Runner runs benchmarks with one configuration.
type Runner struct {
	cfg    *config.Bench
	header [wire.HeaderSize]byte
	nonce  uint32
	hasher *wire.DoubleHasher

	// Progress, when set, is called after every round.
	Progress func(Round)
	// Host, when set, is called once to describe the machine.
	Host func() *HostInfo
}

// NewRunner validates cfg and returns a Runner for it.
func NewRunner(cfg *config.Bench) (*Runner, error) {
	raw, err := hex.DecodeString(cfg.HeaderHex)
	if err != nil {
		return nil, errors.Wrap(err, "decode header")
	}
	header, err := wire.NewBlockHeaderFromBytes(raw)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:    cfg,
		nonce:  header.Nonce,
		hasher: wire.NewDoubleHasher(),
		Host:   GetHostInfo,
	}
	copy(r.header[:], raw)
	return r, nil
}

// Describe hashes the configured header once and returns a report holding
// the header, its nonce and both digests, with no rounds yet.
func (r *Runner) Describe() *Report {
	first, second := r.hasher.Sum(r.header[:])
	report := &Report{
		Version:    version.GetVersion(),
		StartedAt:  time.Now(),
		Header:     hex.EncodeToString(r.header[:]),
		Nonce:      r.nonce,
		FirstHash:  first.String(),
		SecondHash: second.String(),
	}
	if r.Host != nil {
		report.Host = r.Host()
	}
	return report
}

// Run describes the header, then measures it.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := r.Describe()
	return report, r.Measure(ctx, report)
}

// Measure runs rounds of increasing size until one lasts longer than the
// configured minimum, recording them in report.
func (r *Runner) Measure(ctx context.Context, report *Report) error {
	// The working copy only ever changes its low nonce byte.
	block := r.header
	for _, attempts := range r.cfg.Attempts {
		round, err := r.round(ctx, &block, attempts)
		if err != nil {
			return err
		}
		report.Rounds = append(report.Rounds, round)
		logging.VPrint(logging.DEBUG, "benchmark round", logging.LogFormat{
			"attempts": round.Attempts,
			"elapsed":  round.Elapsed,
		})
		if r.Progress != nil {
			r.Progress(round)
		}

		if round.Seconds() > r.cfg.MinElapsed {
			report.Estimated = true
			report.HashRate = float64(round.Attempts) / round.Seconds()
			report.YearsToEarnDollar = YearsToEarnDollar(report.HashRate, r.cfg.YearProfitPerMegahash)
			break
		}
	}

	logging.VPrint(logging.INFO, "benchmark finished", logging.LogFormat{
		"rounds":    len(report.Rounds),
		"estimated": report.Estimated,
		"hash_rate": report.HashRate,
	})
	return nil
}

func (r *Runner) round(ctx context.Context, block *[wire.HeaderSize]byte, attempts uint32) (Round, error) {
	start := time.Now()
	for nonce := uint32(0); nonce < attempts; nonce++ {
		if nonce%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Round{}, err
			}
		}
		block[wire.NonceOffset] = byte(nonce)
		r.hasher.Sum(block[:])
	}
	return Round{Attempts: attempts, Elapsed: time.Since(start)}, nil
}

package cmd

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/dmitryelj/SHA256-Benchmark/errors"
	"github.com/dmitryelj/SHA256-Benchmark/logging"
	"github.com/dmitryelj/SHA256-Benchmark/mining"
	"github.com/dmitryelj/SHA256-Benchmark/wire"
	"github.com/spf13/cobra"
)

var (
	mineFlagHeader   string
	mineFlagTarget   string
	mineFlagMaxNonce uint32
	mineFlagWorkers  int
)

// mineCmd represents the mine command
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Search the nonce field of a block header for a hash under its target",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		headerHex := mineFlagHeader
		if headerHex == "" {
			headerHex = cfg.Bench.HeaderHex
		}
		header, err := wire.NewBlockHeaderFromStr(headerHex)
		if err != nil {
			return errors.New(errors.ErrInvalidHeader, err)
		}
		target, err := parseTarget(mineFlagTarget)
		if err != nil {
			return err
		}

		minerCfg := mining.Config{
			Workers:           cfg.Miner.Workers,
			BatchSize:         cfg.Miner.BatchSize,
			MidstateCacheSize: cfg.Miner.MidstateCacheSize,
		}
		if mineFlagWorkers > 0 {
			minerCfg.Workers = mineFlagWorkers
		}
		miner, err := mining.NewMiner(minerCfg)
		if err != nil {
			return errors.New(errors.ErrCreateMiner, err)
		}
		defer miner.Close()

		ctx, cancel := withInterrupt(context.Background())
		defer cancel()

		sol, err := miner.Mine(ctx, header, target, mineFlagMaxNonce)
		switch {
		case err == nil:
		case err == mining.ErrNonceSpaceExhausted:
			return errors.New(errors.ErrNonceExhausted, err)
		case err == mining.ErrInvalidTarget:
			return errors.New(errors.ErrInvalidTarget, err)
		case err == context.Canceled:
			return errors.New(errors.ErrMiningCanceled, err)
		default:
			return errors.Wrap(errors.ErrUnknownErr, err, "mine")
		}

		logging.VPrint(logging.INFO, "nonce found", logging.LogFormat{
			"nonce":  sol.Nonce,
			"hash":   sol.Hash.String(),
			"hashes": sol.Hashes,
			"stats":  miner.Stats(),
		})
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Nonce: %d\n", sol.Nonce)
		fmt.Fprintf(w, "Hash: %s\n", sol.Hash)
		fmt.Fprintf(w, "Hashes: %d in %s (%.0f hash/s)\n", sol.Hashes, sol.Elapsed, sol.HashRate())

		solved := *header
		solved.Nonce = sol.Nonce
		if err := mining.CheckProofOfWork(&solved); err != nil {
			fmt.Fprintf(w, "Header bits %08x: not met (%v)\n", solved.Bits, err)
		} else {
			fmt.Fprintf(w, "Header bits %08x: met\n", solved.Bits)
		}
		return nil
	},
}

// parseTarget reads a hexadecimal target, optionally 0x-prefixed. An
// empty string selects the header's own bits.
func parseTarget(s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	target, ok := new(big.Int).SetString(strings.TrimPrefix(strings.ToLower(s), "0x"), 16)
	if !ok || target.Sign() <= 0 {
		return nil, errors.New(errors.ErrInvalidTarget, fmt.Errorf("invalid target %q", s))
	}
	return target, nil
}

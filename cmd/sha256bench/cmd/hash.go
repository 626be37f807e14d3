package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/dmitryelj/SHA256-Benchmark/crypto/sha256"
	"github.com/dmitryelj/SHA256-Benchmark/errors"
	"github.com/dmitryelj/SHA256-Benchmark/logging"
	"github.com/dmitryelj/SHA256-Benchmark/wire"
	"github.com/spf13/cobra"
)

var (
	hashFlagHex     bool
	hashFlagFile    string
	hashFlagDouble  bool
	hashFlagReverse bool
)

// hashCmd represents the hash command
var hashCmd = &cobra.Command{
	Use:   "hash [data]",
	Short: "Print the SHA-256 digest of a string, hexadecimal bytes, a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if hashFlagFile != "" && len(args) > 0 {
			return errors.New(errors.ErrInvalidParameter, fmt.Errorf("--file and an argument are exclusive"))
		}

		var src io.Reader
		switch {
		case hashFlagFile != "":
			f, err := os.Open(hashFlagFile)
			if err != nil {
				return errors.Wrap(errors.ErrReadInput, err, hashFlagFile)
			}
			defer f.Close()
			src = f
		case len(args) == 0:
			src = os.Stdin
		default:
			data, err := hashArgument(args[0], hashFlagHex)
			if err != nil {
				return err
			}
			digest := hashBytes(data, hashFlagDouble)
			fmt.Fprintln(cmd.OutOrStdout(), formatDigest(digest, hashFlagReverse))
			return nil
		}

		digest, err := hashReader(src, hashFlagDouble)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatDigest(digest, hashFlagReverse))
		return nil
	},
}

func hashArgument(arg string, isHex bool) ([]byte, error) {
	if !isHex {
		return []byte(arg), nil
	}
	data, err := hex.DecodeString(arg)
	if err != nil {
		return nil, errors.New(errors.ErrInvalidHex, err)
	}
	return data, nil
}

func hashBytes(data []byte, double bool) wire.Hash {
	if double {
		return wire.DoubleHashH(data)
	}
	return wire.HashH(data)
}

// hashReader streams r through one context, so inputs of any size hash in
// constant memory.
func hashReader(r io.Reader, double bool) (wire.Hash, error) {
	ctx := sha256.New()
	n, err := io.Copy(ctx, r)
	if err != nil {
		if err == sha256.ErrMessageTooLong {
			return wire.Hash{}, errors.New(errors.ErrMessageTooLong, err)
		}
		return wire.Hash{}, errors.Wrap(errors.ErrReadInput, err, "read input")
	}
	logging.VPrint(logging.DEBUG, "input hashed", logging.LogFormat{"bytes": n, "double": double})

	digest := wire.Hash(ctx.Finalize())
	if double {
		return wire.HashH(digest[:]), nil
	}
	return digest, nil
}

func formatDigest(h wire.Hash, reverse bool) string {
	if reverse {
		return h.String()
	}
	return h.Hex()
}

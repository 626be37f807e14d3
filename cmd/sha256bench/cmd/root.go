package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dmitryelj/SHA256-Benchmark/errors"
	"github.com/dmitryelj/SHA256-Benchmark/logging"
	"github.com/dmitryelj/SHA256-Benchmark/mining"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:               filepath.Base(os.Args[0]),
	Short:             `SHA-256 single-core benchmark and Bitcoin header miner`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initialize,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	// Use all processor cores.
	runtime.GOMAXPROCS(runtime.NumCPU())

	if err := RootCmd.Execute(); err != nil {
		logging.VPrint(logging.ERROR, "fail on RootCmd.Execute", logging.LogFormat{
			"err":  err,
			"code": errors.CodeOf(err),
		})
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+defaultConfigFile+" if present)")
	RootCmd.PersistentFlags().StringVar(&flagLogDir, "log_dir", "", "directory for log files")
	RootCmd.PersistentFlags().StringVar(&flagLogLevel, "log_level", "", "level of logs (trace, debug, info, warn, error, fatal, panic)")
	RootCmd.PersistentFlags().StringVar(&flagDataDir, "data_dir", "", "directory for stored reports")

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.BindPFlag("log_dir", RootCmd.PersistentFlags().Lookup("log_dir"))
	viper.BindPFlag("log_level", RootCmd.PersistentFlags().Lookup("log_level"))
	viper.BindPFlag("data_dir", RootCmd.PersistentFlags().Lookup("data_dir"))

	hashCmd.Flags().BoolVarP(&hashFlagHex, "hex", "x", false, "treat the argument as hexadecimal bytes")
	hashCmd.Flags().StringVarP(&hashFlagFile, "file", "f", "", "hash the contents of a file")
	hashCmd.Flags().BoolVarP(&hashFlagDouble, "double", "d", false, "hash the digest a second time")
	hashCmd.Flags().BoolVarP(&hashFlagReverse, "reverse", "r", false, "print the digest byte-reversed, as block explorers do")
	RootCmd.AddCommand(hashCmd)

	benchCmd.Flags().BoolVarP(&benchFlagSave, "save", "s", false, "store the report in the data directory")
	benchCmd.Flags().StringVar(&benchFlagHeader, "header", "", "hexadecimal 80-byte block header to hash")
	RootCmd.AddCommand(benchCmd)

	historyCmd.Flags().IntVarP(&historyFlagLimit, "limit", "n", 10, "number of reports to list, 0 for all")
	historyCmd.Flags().IntVar(&historyFlagPrune, "prune", -1, "before listing, delete all but the newest N reports")
	RootCmd.AddCommand(historyCmd)

	mineCmd.Flags().StringVar(&mineFlagHeader, "header", "", "hexadecimal 80-byte block header to mine")
	mineCmd.Flags().StringVar(&mineFlagTarget, "target", "", "hexadecimal target overriding the header bits")
	mineCmd.Flags().Uint32Var(&mineFlagMaxNonce, "max-nonce", mining.MaxNonce, "largest nonce to try")
	mineCmd.Flags().IntVarP(&mineFlagWorkers, "workers", "w", 0, "number of mining workers (default from config)")
	RootCmd.AddCommand(mineCmd)

	RootCmd.AddCommand(versionCmd)
}

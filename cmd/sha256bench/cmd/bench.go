package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dmitryelj/SHA256-Benchmark/benchmark"
	"github.com/dmitryelj/SHA256-Benchmark/database"
	"github.com/dmitryelj/SHA256-Benchmark/errors"
	"github.com/dmitryelj/SHA256-Benchmark/logging"
	"github.com/spf13/cobra"
)

const (
	projectURL   = "https://github.com/dmitryelj/SHA256-Benchmark"
	blockInfoURL = "https://www.blockchain.com/btc/block/"
)

var (
	benchFlagSave   bool
	benchFlagHeader string
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure single-core double SHA-256 speed on a Bitcoin block header",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		benchCfg := *cfg.Bench
		if benchFlagHeader != "" {
			benchCfg.HeaderHex = benchFlagHeader
		}
		runner, err := benchmark.NewRunner(&benchCfg)
		if err != nil {
			return errors.New(errors.ErrInvalidHeader, err)
		}

		ctx, cancel := withInterrupt(context.Background())
		defer cancel()

		w := cmd.OutOrStdout()
		report := runner.Describe()
		printBenchHeader(w, report)

		fmt.Fprintln(w, "Starting the benchmark")
		runner.Progress = func(round benchmark.Round) {
			fmt.Fprintf(w, "Trying %d calculations...done in %fs\n", round.Attempts, round.Seconds())
		}
		if err := runner.Measure(ctx, report); err != nil {
			return errors.New(errors.ErrMiningCanceled, err)
		}
		printBenchResult(w, report)

		if benchFlagSave {
			if err := saveReport(report); err != nil {
				return err
			}
			fmt.Fprintf(w, "Report saved to %s\n", reportsPath())
		}
		return nil
	},
}

func printBenchHeader(w io.Writer, report *benchmark.Report) {
	fmt.Fprintln(w, "SHA-256 Single-core Benchmark")
	fmt.Fprintf(w, "v%s %s\n", report.Version, projectURL)
	fmt.Fprintf(w, "Simulating of Bitcoin mining calculations\n\n")
	if h := report.Host; h != nil {
		fmt.Fprintf(w, "Host: %s/%s, %s, %d logical cores\n\n", h.OS, h.Arch, h.CPUModel, h.LogicalCores)
	}
	fmt.Fprintf(w, "Bitcoin block:\n%s\n", report.Header)
	fmt.Fprintf(w, "Nonce: %d\n", report.Nonce)
	fmt.Fprintf(w, "SHA256-1: %s\n", report.FirstHash)
	fmt.Fprintf(w, "SHA256-2: %s\n", report.SecondHash)
	fmt.Fprintf(w, "Block info:\n%s%s\n\n", blockInfoURL, report.SecondHash)
}

func printBenchResult(w io.Writer, report *benchmark.Report) {
	if !report.Estimated {
		fmt.Fprintln(w, "No round ran long enough for a speed estimate")
		return
	}
	fmt.Fprintf(w, "Speed estimate: %f hash/s\n", report.HashRate)
	fmt.Fprintf(w, "With this speed you can earn 1$ in %f years\n", report.YearsToEarnDollar)
}

func saveReport(report *benchmark.Report) error {
	db, err := database.OpenReportDB(reportsDbType, reportsPath())
	if err != nil {
		return errors.Wrap(errors.ErrOpenDatastore, err, reportsPath())
	}
	defer db.Close()

	if err := db.Put(report.StartedAt, report); err != nil {
		return errors.Wrap(errors.ErrWriteDatastore, err, "put report")
	}
	logging.VPrint(logging.INFO, "report saved", logging.LogFormat{
		"path":       reportsPath(),
		"started_at": report.StartedAt,
	})
	return nil
}

// withInterrupt returns a context canceled on the first interrupt signal.
func withInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		select {
		case <-sig:
			logging.CPrint(logging.WARN, "interrupt received, stopping")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sig)
	}()
	return ctx, cancel
}

package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitryelj/SHA256-Benchmark/benchmark"
	"github.com/dmitryelj/SHA256-Benchmark/database"
	"github.com/dmitryelj/SHA256-Benchmark/errors"
	"github.com/spf13/cobra"
)

var (
	historyFlagLimit int
	historyFlagPrune int
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved benchmark reports, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyFlagLimit < 0 {
			return errors.New(errors.ErrInvalidParameter, fmt.Errorf("invalid limit %d", historyFlagLimit))
		}
		db, err := database.OpenReportDB(reportsDbType, reportsPath())
		if err != nil {
			return errors.Wrap(errors.ErrOpenDatastore, err, reportsPath())
		}
		defer db.Close()

		w := cmd.OutOrStdout()
		if historyFlagPrune >= 0 {
			deleted, err := db.Prune(historyFlagPrune)
			if err != nil {
				return errors.Wrap(errors.ErrWriteDatastore, err, "prune reports")
			}
			fmt.Fprintf(w, "Pruned %d reports\n", deleted)
		}

		n := 0
		err = db.List(historyFlagLimit, func(at time.Time, data []byte) error {
			var report benchmark.Report
			if err := json.Unmarshal(data, &report); err != nil {
				return err
			}
			n++
			if !report.Estimated {
				fmt.Fprintf(w, "%s  v%s  no estimate (%d rounds)\n", at.Format(time.RFC3339), report.Version, len(report.Rounds))
				return nil
			}
			fmt.Fprintf(w, "%s  v%s  %.0f hash/s  %.1f years to earn 1$\n",
				at.Format(time.RFC3339), report.Version, report.HashRate, report.YearsToEarnDollar)
			return nil
		})
		if err != nil {
			return errors.Wrap(errors.ErrReadDatastore, err, "list reports")
		}
		if n == 0 {
			fmt.Fprintln(w, "No saved reports")
		}
		return nil
	},
}

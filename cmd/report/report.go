// Package report prints spending summaries from the labeled ledger.
package report

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"gobudget/cmd/root"
	"gobudget/internal/ledger"
	"gobudget/internal/models"
	"gobudget/internal/report"
)

var (
	startDate string
	endDate   string

	// Cmd represents the report command
	Cmd = &cobra.Command{
		Use:   "report",
		Short: "Summarize spending by category",
		Long: `Summarize labeled transactions into per-category spending totals.
Without flags the whole ledger is covered; --start and --end bound the range.`,
		Run: reportFunc,
	}
)

func init() {
	Cmd.Flags().StringVar(&startDate, "start", "", "Start date (MM/DD/YYYY)")
	Cmd.Flags().StringVar(&endDate, "end", "", "End date (MM/DD/YYYY)")
}

func reportFunc(cmd *cobra.Command, args []string) {
	log := root.Log

	book, err := ledger.Open(root.Cfg.Data.LedgerFile, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open ledger")
	}

	transactions := book.Transactions()
	if startDate != "" || endDate != "" {
		start, end, err := parseRange(startDate, endDate)
		if err != nil {
			log.WithError(err).Fatal("Invalid date range")
		}
		transactions = book.Between(start, end)
	}

	summary, err := report.Spending(transactions)
	if err != nil {
		log.WithError(err).Fatal("Failed to summarize spending")
	}
	if len(summary.ByCat) == 0 {
		log.Info("No labeled transactions to report")
		return
	}
	summary.Render(os.Stdout)
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	startTime := time.Time{}
	endTime := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

	var err error
	if start != "" {
		startTime, err = models.ParseDate(start)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if end != "" {
		endTime, err = models.ParseDate(end)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return startTime, endTime, nil
}

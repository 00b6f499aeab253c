// Package ingest handles importing raw bank export files into the ledger.
package ingest

import (
	"os"

	"github.com/spf13/cobra"

	"gobudget/cmd/root"
	"gobudget/internal/extract"
	"gobudget/internal/identity"
	"gobudget/internal/ledger"
	"gobudget/internal/logging"
	"gobudget/internal/models"
)

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Import bank CSV exports into the ledger",
	Long: `Import one or more raw bank CSV export files. Each row is matched
against the known bank schemas, normalized, deduplicated against the ledger
by content hash, and appended awaiting labeling.`,
	Args: cobra.MinimumNArgs(1),
	Run:  ingestFunc,
}

func ingestFunc(cmd *cobra.Command, args []string) {
	log := root.Log

	book, err := ledger.Open(root.Cfg.Data.LedgerFile, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open ledger")
	}

	pipeline := extract.NewPipeline(log)
	totalInserted := 0

	for _, path := range args {
		file, err := os.Open(path)
		if err != nil {
			log.WithError(err).Fatal("Failed to open input file")
		}

		rows, err := extract.ReadRows(file)
		file.Close()
		if err != nil {
			log.WithError(err).Fatal("Failed to read input file")
		}

		extracted, err := pipeline.Extract(rows)
		if err != nil {
			log.WithError(err).Fatal("Failed to extract transactions")
		}

		identified := make([]models.LedgerTransaction, 0, len(extracted))
		for _, tx := range extracted {
			identified = append(identified, identity.Identify(tx))
		}

		inserted := book.MergeNew(identified)
		totalInserted += inserted
		log.Info("file ingested",
			logging.Field{Key: "file", Value: path},
			logging.Field{Key: "rows", Value: len(rows)},
			logging.Field{Key: "inserted", Value: inserted})
	}

	if err := book.Save(); err != nil {
		log.WithError(err).Fatal("Failed to save ledger")
	}
	log.Info("ingest completed",
		logging.Field{Key: "files", Value: len(args)},
		logging.Field{Key: "inserted", Value: totalInserted})
}

// Package ledger stores the master transaction record set as a CSV file and
// enforces the hash-based deduplication contract on ingest.
package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gobudget/internal/logging"
	"gobudget/internal/models"

	"github.com/gocarina/gocsv"
)

// masterColumns is the fixed column order of the ledger file. It must match
// the csv tags on models.LedgerTransaction, which drive reading.
var masterColumns = []string{
	"Date", "Description", "Amount", "Institution", "SchemaID",
	"Indicator", "Category", "Amounts", "GUID", "ContentHash",
	"HumanConfirmed",
}

// Ledger holds the full transaction set loaded from the master CSV file.
// It is only ever touched by a single logical thread, so no locking.
type Ledger struct {
	path         string
	transactions []models.LedgerTransaction
	hashes       map[string]bool
	dirty        bool
	logger       logging.Logger
}

// Open loads the master ledger from path. A missing file yields an empty
// ledger, not an error: first run simply has nothing to merge against.
func Open(path string, logger logging.Logger) (*Ledger, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	l := &Ledger{
		path:   path,
		hashes: make(map[string]bool),
		logger: logger,
	}

	file, err := os.Open(path) // #nosec G304 -- CLI tool operates on user-provided paths
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("Ledger file not found, starting empty",
				logging.Field{Key: "file", Value: path})
			return l, nil
		}
		return nil, fmt.Errorf("opening ledger file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close ledger file")
		}
	}()

	if err := gocsv.UnmarshalFile(file, &l.transactions); err != nil {
		return nil, fmt.Errorf("parsing ledger file: %w", err)
	}
	for i := range l.transactions {
		l.hashes[l.transactions[i].ContentHash] = true
	}

	logger.Info("Loaded ledger",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "count", Value: len(l.transactions)})
	return l, nil
}

// Transactions returns all ledger transactions.
func (l *Ledger) Transactions() []models.LedgerTransaction {
	return l.transactions
}

// Len returns the number of ledger transactions.
func (l *Ledger) Len() int {
	return len(l.transactions)
}

// MergeNew inserts transactions whose content hash is not already present.
// Duplicates are dropped silently: re-ingesting the same statement line
// across overlapping export windows is expected, not an error. Returns the
// number actually inserted.
func (l *Ledger) MergeNew(txs []models.LedgerTransaction) int {
	inserted := 0
	for _, tx := range txs {
		if l.hashes[tx.ContentHash] {
			l.logger.Debug("Skipping duplicate transaction",
				logging.Field{Key: "hash", Value: tx.ContentHash},
				logging.Field{Key: "description", Value: tx.Description})
			continue
		}
		l.transactions = append(l.transactions, tx)
		l.hashes[tx.ContentHash] = true
		inserted++
	}
	if inserted > 0 {
		l.dirty = true
	}
	l.logger.Info("Merged new transactions into ledger",
		logging.Field{Key: "offered", Value: len(txs)},
		logging.Field{Key: "inserted", Value: inserted})
	return inserted
}

// Unlabeled returns the transactions still in the TO_LABEL state.
func (l *Ledger) Unlabeled() []models.LedgerTransaction {
	var unlabeled []models.LedgerTransaction
	for _, tx := range l.transactions {
		if !tx.IsLabeled() {
			unlabeled = append(unlabeled, tx)
		}
	}
	return unlabeled
}

// Labeled returns the transactions with a finalized label assignment.
func (l *Ledger) Labeled() []models.LedgerTransaction {
	var labeled []models.LedgerTransaction
	for _, tx := range l.transactions {
		if tx.IsLabeled() {
			labeled = append(labeled, tx)
		}
	}
	return labeled
}

// Between returns transactions whose date falls within [start, end].
// Transactions with unparseable dates are skipped.
func (l *Ledger) Between(start, end time.Time) []models.LedgerTransaction {
	var window []models.LedgerTransaction
	for _, tx := range l.transactions {
		date, err := models.ParseDate(tx.Date)
		if err != nil {
			l.logger.WithError(err).Warn("Skipping transaction with bad date",
				logging.Field{Key: "guid", Value: tx.GUID})
			continue
		}
		if !date.Before(start) && !date.After(end) {
			window = append(window, tx)
		}
	}
	return window
}

// Apply writes back labeling results by guid. Only category, amounts and the
// human-confirmed flag are mutable; hash and guid never change once assigned.
func (l *Ledger) Apply(labeled []models.LedgerTransaction) error {
	byGUID := make(map[string]int, len(l.transactions))
	for i := range l.transactions {
		byGUID[l.transactions[i].GUID] = i
	}

	for _, tx := range labeled {
		i, ok := byGUID[tx.GUID]
		if !ok {
			return fmt.Errorf("transaction %s not found in ledger", tx.GUID)
		}
		l.transactions[i].Category = tx.Category
		l.transactions[i].Amounts = tx.Amounts
		l.transactions[i].HumanConfirmed = tx.HumanConfirmed
	}
	l.dirty = true
	return nil
}

// Save writes the ledger back to disk if it has been modified. Records are
// written through LedgerTransaction.MarshalCSV so the file keeps the fixed
// format: amounts padded to two decimals, the confirmed flag as 0/1.
func (l *Ledger) Save() error {
	if !l.dirty {
		return nil
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	file, err := os.Create(l.path) // #nosec G304 -- CLI tool operates on user-provided paths
	if err != nil {
		return fmt.Errorf("creating ledger file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			l.logger.WithError(err).Warn("Failed to close ledger file")
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write(masterColumns); err != nil {
		return fmt.Errorf("writing ledger header: %w", err)
	}
	for i := range l.transactions {
		record, err := l.transactions[i].MarshalCSV()
		if err != nil {
			return fmt.Errorf("serializing transaction %s: %w", l.transactions[i].GUID, err)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing ledger record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("writing ledger file: %w", err)
	}

	l.dirty = false
	l.logger.Info("Saved ledger",
		logging.Field{Key: "file", Value: l.path},
		logging.Field{Key: "count", Value: len(l.transactions)})
	return nil
}

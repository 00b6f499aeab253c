// Package report summarizes labeled ledger transactions into per-category
// spending totals over the date range the transactions cover.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"gobudget/internal/models"
)

// Summary is the per-category spending rollup for a set of transactions.
// Category totals keep their sign internally; rendering shows magnitudes
// and a signed grand total.
type Summary struct {
	StartDate string
	EndDate   string
	ByCat     map[string]decimal.Decimal
	Total     decimal.Decimal
}

// Spending aggregates the label assignments of the given transactions.
// Unlabeled transactions are skipped; a labeled transaction contributes each
// of its split amounts to the matching category. Transactions with malformed
// assignments abort the report.
func Spending(transactions []models.LedgerTransaction) (*Summary, error) {
	summary := &Summary{ByCat: make(map[string]decimal.Decimal)}
	var minDate, maxDate time.Time

	for _, tx := range transactions {
		if !tx.IsLabeled() {
			continue
		}
		assignment, err := tx.Assignment()
		if err != nil {
			return nil, fmt.Errorf("reporting transaction %s: %w", tx.GUID, err)
		}
		if date, err := models.ParseDate(tx.Date); err == nil {
			if minDate.IsZero() || date.Before(minDate) {
				minDate = date
			}
			if maxDate.IsZero() || date.After(maxDate) {
				maxDate = date
			}
		}
		for _, pair := range assignment {
			summary.ByCat[pair.Category] = summary.ByCat[pair.Category].Add(pair.Amount)
			summary.Total = summary.Total.Add(pair.Amount)
		}
	}

	if !minDate.IsZero() {
		summary.StartDate = minDate.Format(models.DateLayout)
		summary.EndDate = maxDate.Format(models.DateLayout)
	}
	return summary, nil
}

// Categories returns the summarized category names in sorted order.
func (s *Summary) Categories() []string {
	out := make([]string, 0, len(s.ByCat))
	for category := range s.ByCat {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// Render writes the human-readable spending report. Per-category amounts are
// shown as magnitudes; the total keeps its sign so refunds and income still
// net out visibly.
func (s *Summary) Render(w io.Writer) {
	fmt.Fprintf(w, "Spending from %s to %s\n", s.StartDate, s.EndDate)
	for _, category := range s.Categories() {
		amount := s.ByCat[category]
		fmt.Fprintf(w, "\t%s: %s\n", category, amount.Abs().StringFixed(2))
	}
	fmt.Fprintf(w, "Total: %s\n", s.Total.StringFixed(2))
}

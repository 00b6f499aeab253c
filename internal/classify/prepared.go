// Package classify turns finalized label assignments into training examples
// and drives the interactive human-confirmation loop with model suggestions.
package classify

import (
	"fmt"
	"strings"

	"gobudget/internal/models"

	"github.com/shopspring/decimal"
)

// PreparedTransaction is the classifier-internal view of a transaction: the
// textual feature source plus the categories and amounts assigned so far in
// the current in-progress decomposition. It is mutated incrementally as each
// category is confirmed and discarded once the transaction reaches NONE.
type PreparedTransaction struct {
	Text        string
	Categories  []string
	Amounts     []decimal.Decimal
	TotalAmount decimal.Decimal
}

// Assigned returns the sum of amounts assigned so far.
func (pt PreparedTransaction) Assigned() decimal.Decimal {
	sum := decimal.Zero
	for _, amount := range pt.Amounts {
		sum = sum.Add(amount)
	}
	return sum
}

// Remaining returns the not-yet-assigned share of the total.
func (pt PreparedTransaction) Remaining() decimal.Decimal {
	return pt.TotalAmount.Sub(pt.Assigned())
}

// clone copies the prepared transaction so snapshots taken for training
// examples are not aliased by later mutation.
func (pt PreparedTransaction) clone() PreparedTransaction {
	out := PreparedTransaction{
		Text:        pt.Text,
		TotalAmount: pt.TotalAmount,
	}
	out.Categories = append(out.Categories, pt.Categories...)
	out.Amounts = append(out.Amounts, pt.Amounts...)
	return out
}

// TrainingExample pairs a partial-decomposition snapshot with the category
// and amount the model should predict next. NextCategory is one of the real
// categories or the terminal NONE sentinel.
type TrainingExample struct {
	State        PreparedTransaction
	NextCategory string
	NextAmount   decimal.Decimal
}

// Prepare builds the classifier view of a ledger transaction. For labeled
// transactions the final assignment is carried along and the total is the
// exact sum of its split amounts; for unlabeled ones the decomposition
// starts empty with the transaction's own total.
func Prepare(tx models.LedgerTransaction) (PreparedTransaction, error) {
	pt := PreparedTransaction{
		Text:        strings.Join([]string{tx.Date, tx.Description, tx.Institution}, " "),
		TotalAmount: tx.Amount,
	}

	if !tx.IsLabeled() {
		return pt, nil
	}

	assignment, err := tx.Assignment()
	if err != nil {
		return PreparedTransaction{}, fmt.Errorf("preparing transaction %s: %w", tx.GUID, err)
	}
	for _, pair := range assignment {
		pt.Categories = append(pt.Categories, pair.Category)
		pt.Amounts = append(pt.Amounts, pair.Amount)
	}
	pt.TotalAmount = assignment.Sum()
	return pt, nil
}

package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LabelPair is one (category, amount) slice of a split transaction.
type LabelPair struct {
	Category string
	Amount   decimal.Decimal
}

// LabelAssignment is the ordered split of one transaction's total amount
// across one or more categories. The amounts must sum to the transaction
// total exactly.
type LabelAssignment []LabelPair

// Categories returns the category names in assignment order.
func (a LabelAssignment) Categories() []string {
	categories := make([]string, len(a))
	for i, pair := range a {
		categories[i] = pair.Category
	}
	return categories
}

// Sum returns the exact sum of all assigned amounts.
func (a LabelAssignment) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, pair := range a {
		sum = sum.Add(pair.Amount)
	}
	return sum
}

// Serialize renders the assignment as parallel comma-joined category and
// amount strings, the ledger's boundary format.
func (a LabelAssignment) Serialize() (categories, amounts string) {
	categoryParts := make([]string, len(a))
	amountParts := make([]string, len(a))
	for i, pair := range a {
		categoryParts[i] = pair.Category
		amountParts[i] = pair.Amount.StringFixed(2)
	}
	return strings.Join(categoryParts, ","), strings.Join(amountParts, ",")
}

// Validate checks the label-sum invariant against the transaction total.
func (a LabelAssignment) Validate(total decimal.Decimal) error {
	if sum := a.Sum(); !sum.Equal(total) {
		return fmt.Errorf("label amounts sum to %s, transaction total is %s",
			sum.StringFixed(2), total.StringFixed(2))
	}
	return nil
}

// ParseLabelAssignment parses the parallel comma-joined category and amount
// strings produced by Serialize.
func ParseLabelAssignment(categories, amounts string) (LabelAssignment, error) {
	categoryParts := strings.Split(categories, ",")
	amountParts := strings.Split(amounts, ",")
	if len(categoryParts) != len(amountParts) {
		return nil, fmt.Errorf("label assignment has %d categories but %d amounts",
			len(categoryParts), len(amountParts))
	}

	assignment := make(LabelAssignment, 0, len(categoryParts))
	for i, category := range categoryParts {
		amount, err := decimal.NewFromString(strings.TrimSpace(amountParts[i]))
		if err != nil {
			return nil, fmt.Errorf("parsing split amount %q: %w", amountParts[i], err)
		}
		assignment = append(assignment, LabelPair{
			Category: strings.TrimSpace(category),
			Amount:   amount,
		})
	}
	return assignment, nil
}

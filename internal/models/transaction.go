// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RawRow is a single unparsed line from a bank export: an ordered sequence of
// string fields whose width and meaning vary by source institution.
type RawRow []string

// ExtractedTransaction is the normalized form of one raw row after schema
// detection. Amount is sign-normalized: negative means money leaving, positive
// means money received, consistent with Indicator.
type ExtractedTransaction struct {
	Date        string
	Description string
	Amount      decimal.Decimal
	Indicator   string
	SchemaID    int
	Institution string
}

// LedgerTransaction is an extracted transaction plus the identity and
// labeling fields kept in the master ledger. ContentHash and GUID are
// immutable once assigned; only Category, Amounts and HumanConfirmed may be
// mutated by later processing.
type LedgerTransaction struct {
	Date           string          `csv:"Date"`
	Description    string          `csv:"Description"`
	Amount         decimal.Decimal `csv:"Amount"`
	Institution    string          `csv:"Institution"`
	SchemaID       int             `csv:"SchemaID"`
	Indicator      string          `csv:"Indicator"`
	Category       string          `csv:"Category"` // TO_LABEL or comma-joined category list
	Amounts        string          `csv:"Amounts"`  // comma-joined split amounts, parallel to Category
	GUID           string          `csv:"GUID"`
	ContentHash    string          `csv:"ContentHash"`
	HumanConfirmed bool            `csv:"HumanConfirmed"` // serialized as 0/1
}

// IsLabeled reports whether the transaction has left the TO_LABEL state.
func (t *LedgerTransaction) IsLabeled() bool {
	return t.Category != "" && t.Category != CategoryToLabel
}

// IsCredit returns true if the transaction is incoming money.
func (t *LedgerTransaction) IsCredit() bool {
	return t.Indicator == IndicatorCredit
}

// IsDebit returns true if the transaction is outgoing money.
func (t *LedgerTransaction) IsDebit() bool {
	return t.Indicator == IndicatorDebit
}

// Assignment parses the comma-joined Category/Amounts columns into a
// LabelAssignment. Returns an empty assignment for unlabeled transactions.
func (t *LedgerTransaction) Assignment() (LabelAssignment, error) {
	if !t.IsLabeled() {
		return nil, nil
	}
	return ParseLabelAssignment(t.Category, t.Amounts)
}

// SetAssignment serializes the assignment into the Category/Amounts columns
// and marks the transaction as human confirmed.
func (t *LedgerTransaction) SetAssignment(assignment LabelAssignment) {
	t.Category, t.Amounts = assignment.Serialize()
	t.HumanConfirmed = true
}

// MarshalCSV writes the ledger record in the fixed master column order:
// Amount padded to two decimals, HumanConfirmed as 0/1. Reading goes the
// other way through the csv struct tags.
func (t *LedgerTransaction) MarshalCSV() ([]string, error) {
	confirmed := "0"
	if t.HumanConfirmed {
		confirmed = "1"
	}
	return []string{
		t.Date,
		t.Description,
		t.Amount.StringFixed(2),
		t.Institution,
		strconv.Itoa(t.SchemaID),
		t.Indicator,
		t.Category,
		t.Amounts,
		t.GUID,
		t.ContentHash,
		confirmed,
	}, nil
}

// ParseAmount converts a raw amount string to a decimal, tolerating currency
// symbols, spaces and comma decimal separators found in bank exports.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "$", "")
	amount = strings.ReplaceAll(amount, "USD", "")
	// Strip thousand separators but keep a trailing decimal comma usable
	if strings.Count(amount, ",") == 1 && !strings.Contains(amount, ".") {
		amount = strings.ReplaceAll(amount, ",", ".")
	} else {
		amount = strings.ReplaceAll(amount, ",", "")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", amountStr, err)
	}
	return dec, nil
}

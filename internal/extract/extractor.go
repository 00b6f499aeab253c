// Package extract normalizes heterogeneous bank-export rows into canonical
// transactions. Each supported institution layout is a registered Extractor;
// the Pipeline tries them in priority order until one matches.
package extract

import (
	"fmt"

	"gobudget/internal/extracterror"
	"gobudget/internal/models"

	"github.com/shopspring/decimal"
)

// rawFields destructures a row into the raw (date, amount, indicator,
// description) quadruple. An empty indicator means the extractor infers it
// from the raw amount's sign.
type rawFields func(row models.RawRow) (date, amount, indicator, description string)

// Extractor normalizes rows of one specific institution layout. It is a pure
// value: extraction either succeeds or fails with a schema mismatch, never
// mutating anything.
type Extractor struct {
	ID          int
	Institution string
	Columns     int
	destructure rawFields
	infer       func(amount decimal.Decimal) string
}

// Extract normalizes one raw row, or fails with *SchemaMismatchError when the
// row does not have this extractor's shape.
func (e Extractor) Extract(row models.RawRow) (models.ExtractedTransaction, error) {
	if len(row) != e.Columns {
		return models.ExtractedTransaction{}, e.mismatch(
			fmt.Sprintf("row has %d columns, want %d", len(row), e.Columns), nil)
	}

	rawDate, rawAmount, indicator, description := e.destructure(row)

	date, err := models.FormatDate(rawDate)
	if err != nil {
		return models.ExtractedTransaction{}, e.mismatch("unparseable date", err)
	}

	amount, err := models.ParseAmount(rawAmount)
	if err != nil {
		return models.ExtractedTransaction{}, e.mismatch("unparseable amount", err)
	}

	if indicator == "" && e.infer != nil {
		indicator = e.infer(amount)
	}

	signed, err := normalizeAmount(amount, indicator)
	if err != nil {
		return models.ExtractedTransaction{}, e.mismatch("invalid indicator", err)
	}

	return models.ExtractedTransaction{
		Date:        date,
		Description: description,
		Amount:      signed,
		Indicator:   indicator,
		SchemaID:    e.ID,
		Institution: e.Institution,
	}, nil
}

func (e Extractor) mismatch(reason string, err error) error {
	return &extracterror.SchemaMismatchError{SchemaID: e.ID, Reason: reason, Err: err}
}

// normalizeAmount applies the uniform sign law: Credit stores the negated
// magnitude, Debit the positive magnitude. Anything else is an invalid
// indicator, which the pipeline treats as a mismatch.
func normalizeAmount(amount decimal.Decimal, indicator string) (decimal.Decimal, error) {
	switch indicator {
	case models.IndicatorCredit:
		return amount.Abs().Neg(), nil
	case models.IndicatorDebit:
		return amount.Abs(), nil
	default:
		return decimal.Zero, &extracterror.InvalidIndicatorError{Indicator: indicator}
	}
}

// debitWhenNegative infers the bookkeeping indicator for institutions that
// export outflows as negative amounts.
func debitWhenNegative(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return models.IndicatorDebit
	}
	return models.IndicatorCredit
}

// creditWhenNegative is the opposite convention: negative source amounts are
// inflows. Both encodings exist in the wild; each schema preserves its
// institution's documented law.
func creditWhenNegative(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return models.IndicatorCredit
	}
	return models.IndicatorDebit
}

// builtinExtractors returns the five supported institution layouts in
// priority order. Layouts are distinguished purely by column arity and
// position; header text never reaches the pipeline.
func builtinExtractors() []Extractor {
	return []Extractor{
		{
			ID:          1,
			Institution: "navyfed",
			Columns:     13,
			destructure: func(row models.RawRow) (string, string, string, string) {
				return row[0], row[1], row[2], row[9]
			},
		},
		{
			ID:          2,
			Institution: "penfed",
			Columns:     13,
			destructure: func(row models.RawRow) (string, string, string, string) {
				return row[1], row[2], row[3], row[10]
			},
		},
		{
			ID:          3,
			Institution: "chase",
			Columns:     7,
			destructure: func(row models.RawRow) (string, string, string, string) {
				return row[0], row[5], "", row[2]
			},
			infer: debitWhenNegative,
		},
		{
			ID:          4,
			Institution: "amex",
			Columns:     3,
			destructure: func(row models.RawRow) (string, string, string, string) {
				return row[0], row[2], "", row[1]
			},
			infer: creditWhenNegative,
		},
		{
			ID:          5,
			Institution: "becu",
			Columns:     6,
			destructure: func(row models.RawRow) (string, string, string, string) {
				return row[0], row[3], "", row[1]
			},
			infer: debitWhenNegative,
		},
	}
}

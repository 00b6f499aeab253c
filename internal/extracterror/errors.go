// Package extracterror defines the typed errors raised while normalizing
// raw bank-export rows and labeling transactions.
package extracterror

import "fmt"

// SchemaMismatchError reports that one extractor's shape or numeric
// assumptions do not hold for a row. It is local to the extractor: the
// pipeline catches it and advances to the next extractor in priority order.
type SchemaMismatchError struct {
	SchemaID int
	Reason   string
	Err      error
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema %d does not match row: %s", e.SchemaID, e.Reason)
}

func (e *SchemaMismatchError) Unwrap() error {
	return e.Err
}

// InvalidIndicatorError reports an indicator string other than the two
// recognized literals. The pipeline treats it as a schema mismatch, never
// surfacing it to the end user.
type InvalidIndicatorError struct {
	Indicator string
}

func (e *InvalidIndicatorError) Error() string {
	return fmt.Sprintf("%q is not a valid transaction indicator", e.Indicator)
}

// UnrecognizedSchemaError is the fatal, batch-level condition raised when no
// registered extractor matches a row. The extractor set is incomplete; the
// batch is abandoned without partial commit.
type UnrecognizedSchemaError struct {
	RowIndex int
	Columns  int
}

func (e *UnrecognizedSchemaError) Error() string {
	return fmt.Sprintf("row %d (%d columns) matches no registered schema; add an extractor for this format",
		e.RowIndex, e.Columns)
}

// InvariantError reports a violation of the label-sum law: the amounts of a
// finalized label assignment must equal the transaction total exactly. It
// indicates a bug in the confirmation loop's bookkeeping, not a recoverable
// runtime condition.
type InvariantError struct {
	GUID string
	Err  error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("label-sum invariant violated for transaction %s: %v", e.GUID, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

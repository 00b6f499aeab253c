package models

// Transaction indicator literals as they appear in bank exports. Any other
// indicator value is rejected by the extraction pipeline.
const (
	IndicatorCredit = "Credit"
	IndicatorDebit  = "Debit"
)

// Category sentinels.
const (
	// CategoryToLabel marks a transaction that has not been labeled yet.
	CategoryToLabel = "TO_LABEL"
	// CategoryNone is the terminal label meaning no further category applies.
	CategoryNone = "NONE"
)

// DateLayout is the canonical calendar format for ledger dates.
const DateLayout = "01/02/2006"

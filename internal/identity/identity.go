// Package identity derives the stable content hash and the unique id for a
// normalized transaction. The hash is what makes re-ingesting overlapping
// export windows idempotent.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"gobudget/internal/models"

	"github.com/google/uuid"
)

// ContentHash returns the deterministic fingerprint of a normalized
// transaction: sha256 over the exact concatenation of date, description,
// amount, schema id and indicator. Two transactions with identical fields
// always collide, which is what suppresses duplicate ingestion of the same
// statement line.
func ContentHash(t models.ExtractedTransaction) string {
	payload := fmt.Sprintf("%s%s%s%d%s",
		t.Date, t.Description, t.Amount.StringFixed(2), t.SchemaID, t.Indicator)
	digest := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(digest[:])
}

// Identify promotes an extracted transaction to a ledger transaction with a
// content hash, a fresh random guid and the TO_LABEL starting state. Two
// imports of the same statement line get different guids but the same hash.
func Identify(t models.ExtractedTransaction) models.LedgerTransaction {
	return models.LedgerTransaction{
		Date:           t.Date,
		Description:    t.Description,
		Amount:         t.Amount,
		Institution:    t.Institution,
		SchemaID:       t.SchemaID,
		Indicator:      t.Indicator,
		Category:       models.CategoryToLabel,
		GUID:           uuid.NewString(),
		ContentHash:    ContentHash(t),
		HumanConfirmed: false,
	}
}

package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobudget/internal/extracterror"
	"gobudget/internal/models"
)

func row13(fields map[int]string) models.RawRow {
	row := make(models.RawRow, 13)
	for i, v := range fields {
		row[i] = v
	}
	return row
}

func TestExtractNavyFed(t *testing.T) {
	e := builtinExtractors()[0]
	row := row13(map[int]string{
		0: "03/15/2024",
		1: "52.10",
		2: models.IndicatorDebit,
		9: "GROCERY OUTLET",
	})

	tx, err := e.Extract(row)
	require.NoError(t, err)
	assert.Equal(t, 1, tx.SchemaID)
	assert.Equal(t, "navyfed", tx.Institution)
	assert.Equal(t, "03/15/2024", tx.Date)
	assert.Equal(t, "GROCERY OUTLET", tx.Description)
	assert.Equal(t, models.IndicatorDebit, tx.Indicator)
	assert.Equal(t, "52.1", tx.Amount.String())
}

func TestExtractNavyFed_CreditNegatesAmount(t *testing.T) {
	e := builtinExtractors()[0]
	row := row13(map[int]string{
		0: "03/15/2024",
		1: "1500.00",
		2: models.IndicatorCredit,
		9: "PAYROLL DEPOSIT",
	})

	tx, err := e.Extract(row)
	require.NoError(t, err)
	assert.Equal(t, "-1500", tx.Amount.String())
}

func TestExtractPenFed(t *testing.T) {
	e := builtinExtractors()[1]
	row := row13(map[int]string{
		1:  "04/01/2024",
		2:  "20.00",
		3:  models.IndicatorDebit,
		10: "GAS STATION",
	})

	tx, err := e.Extract(row)
	require.NoError(t, err)
	assert.Equal(t, 2, tx.SchemaID)
	assert.Equal(t, "penfed", tx.Institution)
	assert.Equal(t, "GAS STATION", tx.Description)
	assert.Equal(t, "20", tx.Amount.String())
}

func TestExtractChase_InfersIndicatorFromSign(t *testing.T) {
	e := builtinExtractors()[2]

	// Chase exports outflows as negative amounts.
	tx, err := e.Extract(models.RawRow{"03/20/2024", "", "RESTAURANT", "", "", "-33.25", ""})
	require.NoError(t, err)
	assert.Equal(t, models.IndicatorDebit, tx.Indicator)
	assert.Equal(t, "33.25", tx.Amount.String())

	tx, err = e.Extract(models.RawRow{"03/21/2024", "", "REFUND", "", "", "12.00", ""})
	require.NoError(t, err)
	assert.Equal(t, models.IndicatorCredit, tx.Indicator)
	assert.Equal(t, "-12", tx.Amount.String())
}

func TestExtractAmex_NegativeMeansCredit(t *testing.T) {
	e := builtinExtractors()[3]

	// Amex exports payments to the card as negative amounts.
	tx, err := e.Extract(models.RawRow{"03/22/2024", "CARD PAYMENT", "-200.00"})
	require.NoError(t, err)
	assert.Equal(t, models.IndicatorCredit, tx.Indicator)
	assert.Equal(t, "-200", tx.Amount.String())

	tx, err = e.Extract(models.RawRow{"03/23/2024", "BOOKSTORE", "18.99"})
	require.NoError(t, err)
	assert.Equal(t, models.IndicatorDebit, tx.Indicator)
	assert.Equal(t, "18.99", tx.Amount.String())
}

func TestExtractBecu(t *testing.T) {
	e := builtinExtractors()[4]

	tx, err := e.Extract(models.RawRow{"03/24/2024", "HARDWARE STORE", "", "-45.00", "", ""})
	require.NoError(t, err)
	assert.Equal(t, 5, tx.SchemaID)
	assert.Equal(t, models.IndicatorDebit, tx.Indicator)
	assert.Equal(t, "45", tx.Amount.String())
}

func TestExtract_WrongWidthIsMismatch(t *testing.T) {
	e := builtinExtractors()[0]
	_, err := e.Extract(models.RawRow{"03/15/2024", "52.10"})

	var mismatch *extracterror.SchemaMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 1, mismatch.SchemaID)
}

func TestExtract_BadDateIsMismatch(t *testing.T) {
	e := builtinExtractors()[3]
	_, err := e.Extract(models.RawRow{"not a date", "SHOP", "10.00"})

	var mismatch *extracterror.SchemaMismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestExtract_BadIndicatorIsMismatch(t *testing.T) {
	e := builtinExtractors()[0]
	row := row13(map[int]string{
		0: "03/15/2024",
		1: "52.10",
		2: "Sideways",
		9: "GROCERY OUTLET",
	})
	_, err := e.Extract(row)

	var mismatch *extracterror.SchemaMismatchError
	require.True(t, errors.As(err, &mismatch))

	var invalid *extracterror.InvalidIndicatorError
	assert.True(t, errors.As(err, &invalid))
}

package classify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobudget/internal/models"
)

func TestConsolePrompter_AcceptPredictedCategory(t *testing.T) {
	var out bytes.Buffer
	p := NewConsolePrompter(strings.NewReader("y\n"), &out)

	category, err := p.ConfirmCategory(unlabeledTransaction("g1", "10.00"), "groceries", []string{"groceries", models.CategoryNone})
	require.NoError(t, err)
	assert.Equal(t, "groceries", category)
	assert.Contains(t, out.String(), "SUPERSTORE")
}

func TestConsolePrompter_ChooseByIndex(t *testing.T) {
	var out bytes.Buffer
	p := NewConsolePrompter(strings.NewReader("n\n1\n"), &out)

	category, err := p.ConfirmCategory(unlabeledTransaction("g1", "10.00"), "groceries", []string{"groceries", "gas", models.CategoryNone})
	require.NoError(t, err)
	assert.Equal(t, "gas", category)
	assert.Contains(t, out.String(), "0 : groceries")
	assert.Contains(t, out.String(), "2 : NONE")
}

func TestConsolePrompter_RepromptsOnBadIndex(t *testing.T) {
	var out bytes.Buffer
	p := NewConsolePrompter(strings.NewReader("n\n9\n\n0\n"), &out)

	category, err := p.ConfirmCategory(unlabeledTransaction("g1", "10.00"), "groceries", []string{"groceries", models.CategoryNone})
	require.NoError(t, err)
	assert.Equal(t, "groceries", category)
	assert.Contains(t, out.String(), "between 0 and 1")
}

func TestConsolePrompter_NewLabelAsFreeText(t *testing.T) {
	var out bytes.Buffer
	p := NewConsolePrompter(strings.NewReader("n\nvet bills\n"), &out)

	category, err := p.ConfirmCategory(unlabeledTransaction("g1", "10.00"), "groceries", []string{"groceries", models.CategoryNone})
	require.NoError(t, err)
	assert.Equal(t, "vet bills", category)
}

func TestConsolePrompter_AcceptPredictedAmount(t *testing.T) {
	var out bytes.Buffer
	p := NewConsolePrompter(strings.NewReader("y\n"), &out)

	amount, err := p.ConfirmAmount(unlabeledTransaction("g1", "10.00"), "groceries", decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("10.00")))
}

func TestConsolePrompter_RepromptsOnBadAmount(t *testing.T) {
	var out bytes.Buffer
	p := NewConsolePrompter(strings.NewReader("n\nlots\n7.50\n"), &out)

	amount, err := p.ConfirmAmount(unlabeledTransaction("g1", "10.00"), "groceries", decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("7.50")))
	assert.Contains(t, out.String(), "numeric amount")
}

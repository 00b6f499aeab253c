package classify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobudget/internal/models"
)

func collect(final PreparedTransaction) []TrainingExample {
	var out []TrainingExample
	for example := range Expand(final) {
		out = append(out, example)
	}
	return out
}

func TestExpand_SingleLabel(t *testing.T) {
	final := PreparedTransaction{
		Text:        "03/15/2024 GROCERY OUTLET navyfed",
		Categories:  []string{"groceries"},
		Amounts:     []decimal.Decimal{decimal.RequireFromString("52.10")},
		TotalAmount: decimal.RequireFromString("52.10"),
	}

	examples := collect(final)
	require.Len(t, examples, 2)

	// Empty prefix predicts the single label.
	assert.Empty(t, examples[0].State.Categories)
	assert.Equal(t, "groceries", examples[0].NextCategory)
	assert.True(t, examples[0].NextAmount.Equal(decimal.RequireFromString("52.10")))

	// Full prefix predicts the terminal.
	assert.Equal(t, []string{"groceries"}, examples[1].State.Categories)
	assert.Equal(t, models.CategoryNone, examples[1].NextCategory)
	assert.True(t, examples[1].NextAmount.IsZero())
}

func TestExpand_TwoLabels(t *testing.T) {
	final := PreparedTransaction{
		Text:        "03/20/2024 SUPERSTORE chase",
		Categories:  []string{"groceries", "household"},
		Amounts: []decimal.Decimal{
			decimal.RequireFromString("30.00"),
			decimal.RequireFromString("12.00"),
		},
		TotalAmount: decimal.RequireFromString("42.00"),
	}

	examples := collect(final)
	require.Len(t, examples, 6)

	terminals := 0
	for _, example := range examples {
		if example.NextCategory == models.CategoryNone {
			terminals++
			assert.Len(t, example.State.Categories, 2)
			assert.True(t, example.NextAmount.IsZero())
		}
	}
	// One terminal per complete ordering of the two labels.
	assert.Equal(t, 2, terminals)
}

func TestExpand_DuplicateCategoriesKeptDistinct(t *testing.T) {
	final := PreparedTransaction{
		Text:       "split purchase",
		Categories: []string{"fun", "fun"},
		Amounts: []decimal.Decimal{
			decimal.RequireFromString("5.00"),
			decimal.RequireFromString("7.00"),
		},
		TotalAmount: decimal.RequireFromString("12.00"),
	}

	examples := collect(final)
	// Same count as two distinct labels: positions expand, not names.
	assert.Len(t, examples, 6)
}

func TestExpand_StatesAreIndependentSnapshots(t *testing.T) {
	final := PreparedTransaction{
		Text:       "snapshot check",
		Categories: []string{"a", "b"},
		Amounts: []decimal.Decimal{
			decimal.RequireFromString("1.00"),
			decimal.RequireFromString("2.00"),
		},
		TotalAmount: decimal.RequireFromString("3.00"),
	}

	examples := collect(final)
	for _, example := range examples {
		example.State.Categories = append(example.State.Categories, "mutated")
	}

	fresh := collect(final)
	for i := range fresh {
		assert.NotContains(t, fresh[i].State.Categories, "mutated")
		assert.Len(t, examples[i].State.Amounts, len(fresh[i].State.Amounts))
	}
}

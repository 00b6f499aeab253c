package classify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorizer_FitTransform(t *testing.T) {
	v := NewVectorizer()
	assert.False(t, v.Fitted())

	v.Fit([]string{"coffee shop", "gas station"})
	assert.True(t, v.Fitted())

	vec := v.Transform("coffee shop")
	require.NotEmpty(t, vec)

	// L2 norm of a transformed vector is 1.
	var norm float64
	for _, val := range vec {
		norm += val * val
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestVectorizer_OutOfVocabularyDropped(t *testing.T) {
	v := NewVectorizer()
	v.Fit([]string{"aaaa"})

	vec := v.Transform("zzzz")
	assert.Empty(t, vec)
}

func TestVectorizer_CaseInsensitive(t *testing.T) {
	v := NewVectorizer()
	v.Fit([]string{"Coffee"})

	assert.Equal(t, v.Transform("COFFEE"), v.Transform("coffee"))
}

func TestFeaturizer_AmountBlock(t *testing.T) {
	f := NewFeaturizer(3)
	state := PreparedTransaction{
		Text:        "grocery run",
		Categories:  []string{"groceries"},
		Amounts:     []decimal.Decimal{decimal.RequireFromString("25.50")},
		TotalAmount: decimal.RequireFromString("40.00"),
	}
	f.Fit([]PreparedTransaction{state})

	vec := f.Featurize(state)
	require.Len(t, vec.Amounts, 3)
	assert.InDelta(t, 25.50, vec.Amounts[0], 1e-9)
	assert.Zero(t, vec.Amounts[1])
	assert.InDelta(t, 40.00, vec.Total, 1e-9)
}

func TestFeaturizer_AssignedCategoriesChangeDocument(t *testing.T) {
	f := NewFeaturizer(5)

	bare := PreparedTransaction{Text: "superstore"}
	partial := PreparedTransaction{Text: "superstore", Categories: []string{"groceries"}}

	f.Fit([]PreparedTransaction{bare, partial})

	assert.NotEqual(t, f.Featurize(bare).Terms, f.Featurize(partial).Terms)
}

func TestNewFeaturizer_DefaultMaxSplit(t *testing.T) {
	f := NewFeaturizer(0)
	f.Fit([]PreparedTransaction{{Text: "x"}})
	assert.Len(t, f.Featurize(PreparedTransaction{Text: "x"}).Amounts, 5)
}

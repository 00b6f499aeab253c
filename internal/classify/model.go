package classify

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// CategoryModel suggests the next category for a partial decomposition.
// Trained is explicit state: an untrained model is never consulted and the
// assistant falls back to a fixed suggestion instead.
type CategoryModel interface {
	Trained() bool
	Train(examples []TrainingExample) error
	Suggest(state PreparedTransaction) (string, error)
}

// AmountModel suggests the amount for the category just appended to the
// state (the last category in the decomposition).
type AmountModel interface {
	Trained() bool
	Train(examples []TrainingExample) error
	Suggest(state PreparedTransaction) (decimal.Decimal, error)
}

// CentroidClassifier is a nearest-centroid cosine classifier over the
// expansion output: one centroid per next-category label in TF-IDF space
// with the amount block appended as dense trailing dimensions.
type CentroidClassifier struct {
	featurizer *Featurizer
	centroids  map[string][]sparseEntry
	trained    bool
}

type sparseEntry struct {
	index int
	value float64
}

// NewCentroidClassifier creates an untrained classifier sharing the given
// featurizer.
func NewCentroidClassifier(featurizer *Featurizer) *CentroidClassifier {
	return &CentroidClassifier{
		featurizer: featurizer,
		centroids:  make(map[string][]sparseEntry),
	}
}

// Trained reports whether Train has run with at least one example.
func (c *CentroidClassifier) Trained() bool {
	return c.trained
}

// Train fits one centroid per next-category label. The featurizer must be
// fitted before training.
func (c *CentroidClassifier) Train(examples []TrainingExample) error {
	if !c.featurizer.Fitted() {
		return fmt.Errorf("featurizer is not fitted")
	}
	if len(examples) == 0 {
		return fmt.Errorf("no training examples")
	}

	sums := make(map[string]map[int]float64)
	for _, example := range examples {
		vec := combined(c.featurizer.Featurize(example.State))
		sum, ok := sums[example.NextCategory]
		if !ok {
			sum = make(map[int]float64)
			sums[example.NextCategory] = sum
		}
		for idx, val := range vec {
			sum[idx] += val
		}
	}

	c.centroids = make(map[string][]sparseEntry, len(sums))
	for label, sum := range sums {
		c.centroids[label] = normalizeSparse(sum)
	}
	c.trained = true
	return nil
}

// Suggest returns the label whose centroid is closest in cosine similarity
// to the featurized state.
func (c *CentroidClassifier) Suggest(state PreparedTransaction) (string, error) {
	if !c.trained {
		return "", fmt.Errorf("category model is not trained")
	}

	vec := combined(c.featurizer.Featurize(state))
	best, bestScore := "", -1.0
	for label, centroid := range c.centroids {
		score := 0.0
		for _, entry := range centroid {
			score += entry.value * vec[entry.index]
		}
		if score > bestScore || (score == bestScore && label < best) {
			best, bestScore = label, score
		}
	}
	return best, nil
}

// MeanAmountModel predicts the mean training amount for the state's last
// assigned category. Cheap, deterministic, and good enough to seed the
// confirmation prompt.
type MeanAmountModel struct {
	sums    map[string]decimal.Decimal
	counts  map[string]int
	trained bool
}

// NewMeanAmountModel creates an untrained amount model.
func NewMeanAmountModel() *MeanAmountModel {
	return &MeanAmountModel{
		sums:   make(map[string]decimal.Decimal),
		counts: make(map[string]int),
	}
}

// Trained reports whether Train has run with at least one example.
func (m *MeanAmountModel) Trained() bool {
	return m.trained
}

// Train accumulates per-category means of the next-amount labels.
func (m *MeanAmountModel) Train(examples []TrainingExample) error {
	if len(examples) == 0 {
		return fmt.Errorf("no training examples")
	}
	for _, example := range examples {
		m.sums[example.NextCategory] = m.sums[example.NextCategory].Add(example.NextAmount)
		m.counts[example.NextCategory]++
	}
	m.trained = true
	return nil
}

// Suggest returns the mean amount seen for the last assigned category, or
// the remaining amount when the category was never seen in training.
func (m *MeanAmountModel) Suggest(state PreparedTransaction) (decimal.Decimal, error) {
	if !m.trained {
		return decimal.Zero, fmt.Errorf("amount model is not trained")
	}
	if len(state.Categories) == 0 {
		return decimal.Zero, fmt.Errorf("state has no assigned category")
	}

	category := state.Categories[len(state.Categories)-1]
	count := m.counts[category]
	if count == 0 {
		return state.Remaining(), nil
	}
	return m.sums[category].Div(decimal.NewFromInt(int64(count))), nil
}

// combined folds the dense amount block into the sparse term map at indices
// beyond the vocabulary, so one dot product covers both.
func combined(f FeatureVector) map[int]float64 {
	vec := make(map[int]float64, len(f.Terms)+len(f.Amounts)+1)
	for idx, val := range f.Terms {
		vec[idx] = val
	}
	// Amount dims live in a fixed band far past any realistic vocabulary so
	// vocabulary growth cannot shift them between Train and Suggest.
	const amountBase = 1 << 30
	for i, amount := range f.Amounts {
		if amount != 0 {
			vec[amountBase+i] = amount
		}
	}
	if f.Total != 0 {
		vec[amountBase+len(f.Amounts)] = f.Total
	}
	return vec
}

func normalizeSparse(sum map[int]float64) []sparseEntry {
	var norm float64
	for _, val := range sum {
		norm += val * val
	}
	entries := make([]sparseEntry, 0, len(sum))
	if norm == 0 {
		return entries
	}
	norm = math.Sqrt(norm)
	for idx, val := range sum {
		entries = append(entries, sparseEntry{index: idx, value: val / norm})
	}
	return entries
}

package classify

import (
	"math"
	"strings"
)

// ngram bounds for the character vectorizer. Short character n-grams cope
// well with the noisy merchant strings in bank descriptions.
const (
	minNgram = 1
	maxNgram = 5
)

// Vectorizer maps text to sparse TF-IDF vectors over character n-grams. It
// must be fitted before transforming; fitted/unfitted is explicit state, not
// inferred from file existence.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
	fitted     bool
}

// NewVectorizer returns an unfitted vectorizer.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{vocabulary: make(map[string]int)}
}

// Fitted reports whether Fit has run.
func (v *Vectorizer) Fitted() bool {
	return v.fitted
}

// Fit builds the n-gram vocabulary and inverse document frequencies from the
// training corpus.
func (v *Vectorizer) Fit(docs []string) {
	documentFrequency := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, gram := range ngrams(doc) {
			if seen[gram] {
				continue
			}
			seen[gram] = true
			documentFrequency[gram]++
		}
	}

	v.vocabulary = make(map[string]int, len(documentFrequency))
	v.idf = make([]float64, 0, len(documentFrequency))
	total := float64(len(docs))
	for gram, df := range documentFrequency {
		v.vocabulary[gram] = len(v.idf)
		v.idf = append(v.idf, math.Log((1+total)/(1+float64(df)))+1)
	}
	v.fitted = true
}

// Transform returns the L2-normalized TF-IDF vector for one document.
// Out-of-vocabulary n-grams are dropped.
func (v *Vectorizer) Transform(doc string) map[int]float64 {
	counts := make(map[int]float64)
	for _, gram := range ngrams(doc) {
		if idx, ok := v.vocabulary[gram]; ok {
			counts[idx]++
		}
	}

	var norm float64
	for idx, tf := range counts {
		counts[idx] = tf * v.idf[idx]
		norm += counts[idx] * counts[idx]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			counts[idx] /= norm
		}
	}
	return counts
}

func ngrams(doc string) []string {
	runes := []rune(strings.ToLower(doc))
	var grams []string
	for n := minNgram; n <= maxNgram; n++ {
		for i := 0; i+n <= len(runes); i++ {
			grams = append(grams, string(runes[i:i+n]))
		}
	}
	return grams
}

// Featurizer turns prepared transactions into feature vectors: TF-IDF of the
// transaction text joined with the already-assigned categories, plus the
// assigned amounts padded to maxSplit slots and the total amount.
type Featurizer struct {
	vectorizer *Vectorizer
	maxSplit   int
}

// NewFeaturizer creates a featurizer with an unfitted vectorizer. maxSplit
// bounds the amount slots; values at or below zero fall back to five.
func NewFeaturizer(maxSplit int) *Featurizer {
	if maxSplit <= 0 {
		maxSplit = 5
	}
	return &Featurizer{
		vectorizer: NewVectorizer(),
		maxSplit:   maxSplit,
	}
}

// FeatureVector is the sparse term block plus the dense amount block of one
// featurized state.
type FeatureVector struct {
	Terms   map[int]float64
	Amounts []float64
	Total   float64
}

// Fit fits the underlying vectorizer on the documents of the given states.
func (f *Featurizer) Fit(states []PreparedTransaction) {
	docs := make([]string, len(states))
	for i, state := range states {
		docs[i] = f.document(state)
	}
	f.vectorizer.Fit(docs)
}

// Fitted reports whether the featurizer is ready to transform.
func (f *Featurizer) Fitted() bool {
	return f.vectorizer.Fitted()
}

// Featurize transforms one state. The featurizer must be fitted.
func (f *Featurizer) Featurize(state PreparedTransaction) FeatureVector {
	amounts := make([]float64, f.maxSplit)
	for i, amount := range state.Amounts {
		if i >= f.maxSplit {
			break
		}
		amounts[i], _ = amount.Float64()
	}
	total, _ := state.TotalAmount.Float64()

	return FeatureVector{
		Terms:   f.vectorizer.Transform(f.document(state)),
		Amounts: amounts,
		Total:   total,
	}
}

func (f *Featurizer) document(state PreparedTransaction) string {
	if len(state.Categories) == 0 {
		return state.Text
	}
	return state.Text + " " + strings.Join(state.Categories, " ")
}

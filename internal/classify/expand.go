package classify

import (
	"iter"

	"gobudget/internal/models"

	"github.com/shopspring/decimal"
)

// Expand turns one finalized label assignment into every partial-state
// training example consistent with "some subset of labels already assigned,
// predict the next one".
//
// For every ordered permutation of every prefix length p (0..n) of the final
// (category, amount) pairs, each not-yet-assigned pair yields one example
// with that pair as the label to predict. Once the full set is assigned
// (p == n), each complete permutation yields exactly one terminal example
// labeled NONE with amount zero.
//
// The enumeration is factorial in the label count; assignments are expected
// to stay small, at most five labels.
func Expand(final PreparedTransaction) iter.Seq[TrainingExample] {
	return func(yield func(TrainingExample) bool) {
		n := len(final.Categories)
		perm := make([]int, 0, n)
		used := make([]bool, n)

		// emit produces the examples for the current permutation: one per
		// remaining pair, or the NONE terminal when nothing remains.
		emit := func() bool {
			state := PreparedTransaction{
				Text:        final.Text,
				TotalAmount: final.TotalAmount,
			}
			for _, idx := range perm {
				state.Categories = append(state.Categories, final.Categories[idx])
				state.Amounts = append(state.Amounts, final.Amounts[idx])
			}

			if len(perm) == n {
				return yield(TrainingExample{
					State:        state,
					NextCategory: models.CategoryNone,
					NextAmount:   decimal.Zero,
				})
			}

			for i := 0; i < n; i++ {
				if used[i] {
					continue
				}
				if !yield(TrainingExample{
					State:        state.clone(),
					NextCategory: final.Categories[i],
					NextAmount:   final.Amounts[i],
				}) {
					return false
				}
			}
			return true
		}

		// walk enumerates permutations by extending the current prefix with
		// every unused index, emitting at each node.
		var walk func() bool
		walk = func() bool {
			if !emit() {
				return false
			}
			for i := 0; i < n; i++ {
				if used[i] {
					continue
				}
				used[i] = true
				perm = append(perm, i)
				if !walk() {
					return false
				}
				perm = perm[:len(perm)-1]
				used[i] = false
			}
			return true
		}
		walk()
	}
}

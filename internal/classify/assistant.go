package classify

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"gobudget/internal/extracterror"
	"gobudget/internal/logging"
	"gobudget/internal/models"
)

// Labeling states for a single transaction's confirmation loop.
const (
	StateUnassigned       = "UNASSIGNED"
	StateAwaitingCategory = "AWAITING_CATEGORY"
	StateAwaitingAmount   = "AWAITING_AMOUNT"
	StateDone             = "DONE"
)

// Assistant drives the interactive labeling session: it trains the local
// models on confirmed transactions, suggests the next category and amount
// for each unlabeled one, and records the human's confirmations.
type Assistant struct {
	featurizer    *Featurizer
	categoryModel CategoryModel
	amountModel   AmountModel
	suggester     Suggester
	prompter      Prompter
	labels        []string
	seedLabels    []string
	batchSize     int
	logger        logging.Logger
}

// AssistantOptions configures a labeling session.
type AssistantOptions struct {
	Prompter  Prompter
	Suggester Suggester // optional AI fallback when local models are untrained
	Labels    []string  // seed categories offered before any are learned
	BatchSize int
	MaxSplit  int
	Logger    logging.Logger
}

// NewAssistant builds an assistant around the given prompter. BatchSize
// defaults to 20 when non-positive.
func NewAssistant(opts AssistantOptions) *Assistant {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 20
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetLogger()
	}
	featurizer := NewFeaturizer(opts.MaxSplit)
	a := &Assistant{
		featurizer:    featurizer,
		categoryModel: NewCentroidClassifier(featurizer),
		amountModel:   NewMeanAmountModel(),
		suggester:     opts.Suggester,
		prompter:      opts.Prompter,
		seedLabels:    opts.Labels,
		batchSize:     opts.BatchSize,
		logger:        opts.Logger,
	}
	a.labels = append(a.labels, a.seedLabels...)
	sort.Strings(a.labels)
	return a
}

// Train expands every labeled transaction into its permutation examples and
// fits the featurizer and both models. With no labeled transactions the
// models stay untrained and suggestions fall back to the suggester or to
// the human's explicit choice.
func (a *Assistant) Train(labeled []models.LedgerTransaction) error {
	var examples []TrainingExample
	labelSet := map[string]bool{}
	for _, label := range a.seedLabels {
		labelSet[label] = true
	}

	for _, tx := range labeled {
		pt, err := Prepare(tx)
		if err != nil {
			return err
		}
		for example := range Expand(pt) {
			examples = append(examples, example)
		}
		for _, category := range pt.Categories {
			labelSet[category] = true
		}
	}

	a.labels = a.labels[:0]
	for label := range labelSet {
		a.labels = append(a.labels, label)
	}
	sort.Strings(a.labels)

	if len(examples) == 0 {
		a.logger.Info("no labeled transactions, models stay untrained")
		return nil
	}

	states := make([]PreparedTransaction, len(examples))
	for i, example := range examples {
		states[i] = example.State
	}
	a.featurizer.Fit(states)

	if err := a.categoryModel.Train(examples); err != nil {
		return fmt.Errorf("training category model: %w", err)
	}
	if err := a.amountModel.Train(examples); err != nil {
		return fmt.Errorf("training amount model: %w", err)
	}

	a.logger.Info("models trained",
		logging.Field{Key: "examples", Value: len(examples)},
		logging.Field{Key: "labels", Value: len(a.labels)})
	return nil
}

// LabelAll repeatedly samples up to batchSize unlabeled transactions and
// runs each through the confirmation loop until none remain. Returns the
// transactions whose assignments were confirmed in this session.
func (a *Assistant) LabelAll(ctx context.Context, unlabeled []models.LedgerTransaction) ([]models.LedgerTransaction, error) {
	var confirmed []models.LedgerTransaction

	remaining := unlabeled
	for len(remaining) > 0 {
		batch := remaining
		if len(batch) > a.batchSize {
			batch = batch[:a.batchSize]
		}
		remaining = remaining[len(batch):]

		for _, tx := range batch {
			labeled, err := a.labelOne(ctx, tx)
			if err != nil {
				return confirmed, err
			}
			confirmed = append(confirmed, labeled)
		}
		a.logger.Info("batch labeled",
			logging.Field{Key: "confirmed", Value: len(confirmed)},
			logging.Field{Key: "remaining", Value: len(remaining)})
	}
	return confirmed, nil
}

// labelOne runs the state machine for a single transaction: suggest a
// category, confirm it, suggest an amount for that category, confirm it,
// and repeat until the NONE sentinel closes the decomposition. The final
// assignment must sum exactly to the transaction amount.
func (a *Assistant) labelOne(ctx context.Context, tx models.LedgerTransaction) (models.LedgerTransaction, error) {
	state, err := Prepare(tx)
	if err != nil {
		return tx, err
	}

	var assignment models.LabelAssignment
	phase := StateUnassigned

	for phase != StateDone {
		phase = StateAwaitingCategory
		predicted := a.suggestCategory(ctx, state)
		category, err := a.prompter.ConfirmCategory(tx, predicted, a.choices())
		if err != nil {
			return tx, err
		}

		if category == models.CategoryNone {
			if err := assignment.Validate(tx.Amount); err != nil {
				return tx, &extracterror.InvariantError{GUID: tx.GUID, Err: err}
			}
			phase = StateDone
			continue
		}

		phase = StateAwaitingAmount
		state.Categories = append(state.Categories, category)
		predictedAmount := a.suggestAmount(state)
		amount, err := a.prompter.ConfirmAmount(tx, category, predictedAmount)
		if err != nil {
			return tx, err
		}
		state.Amounts = append(state.Amounts, amount)
		assignment = append(assignment, models.LabelPair{Category: category, Amount: amount})

		a.rememberLabel(category)
	}

	tx.SetAssignment(assignment)
	return tx, nil
}

// suggestCategory asks the local model first, then the AI suggester, and
// finally falls back to the first known label so the prompter always has
// something to confirm.
func (a *Assistant) suggestCategory(ctx context.Context, state PreparedTransaction) string {
	if a.categoryModel.Trained() {
		category, err := a.categoryModel.Suggest(state)
		if err == nil {
			return category
		}
		a.logger.WithError(err).Warn("category model suggestion failed")
	}
	if a.suggester != nil {
		category, err := a.suggester.SuggestCategory(ctx, state, a.labels)
		if err == nil && category != "" {
			return category
		}
		if err != nil {
			a.logger.WithError(err).Warn("AI category suggestion failed")
		}
	}
	if len(a.labels) > 0 {
		return a.labels[0]
	}
	return models.CategoryNone
}

// suggestAmount asks the amount model, defaulting to the unassigned
// remainder so accepting every default always closes the sum exactly.
func (a *Assistant) suggestAmount(state PreparedTransaction) decimal.Decimal {
	if a.amountModel.Trained() {
		amount, err := a.amountModel.Suggest(state)
		if err == nil {
			return amount
		}
		a.logger.WithError(err).Warn("amount model suggestion failed")
	}
	return state.Remaining()
}

// choices returns the selectable labels with the NONE sentinel always last.
func (a *Assistant) choices() []string {
	out := make([]string, 0, len(a.labels)+1)
	out = append(out, a.labels...)
	return append(out, models.CategoryNone)
}

// rememberLabel adds a newly typed-in category to the label set so it is
// offered for the rest of the session.
func (a *Assistant) rememberLabel(category string) {
	for _, label := range a.labels {
		if label == category {
			return
		}
	}
	a.labels = append(a.labels, category)
	sort.Strings(a.labels)
}

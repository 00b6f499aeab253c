// Package label runs the interactive transaction labeling session.
package label

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"gobudget/cmd/root"
	"gobudget/internal/budget"
	"gobudget/internal/classify"
	"gobudget/internal/ledger"
	"gobudget/internal/logging"
)

// Cmd represents the label command
var Cmd = &cobra.Command{
	Use:   "label",
	Short: "Interactively label unlabeled transactions",
	Long: `Label unlabeled ledger transactions in batches. Models trained on
previously confirmed labels suggest a category and an amount for each
transaction; every suggestion is confirmed or corrected at the prompt.
A transaction may split across several categories; choosing NONE closes it.`,
	Run: labelFunc,
}

func labelFunc(cmd *cobra.Command, args []string) {
	log := root.Log

	book, err := ledger.Open(root.Cfg.Data.LedgerFile, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open ledger")
	}

	unlabeled := book.Unlabeled()
	if len(unlabeled) == 0 {
		log.Info("No unlabeled transactions")
		return
	}

	var suggester classify.Suggester
	if root.Cfg.AI.Enabled {
		suggester = classify.NewGeminiSuggester(root.Cfg.AI.APIKey, root.Cfg.AI.Model, log)
	}

	// Budget categories seed the label choices so a fresh ledger still has
	// something to offer at the first prompt.
	plan, err := budget.NewStore(root.Cfg.Data.BudgetFile, log).Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load budget")
	}

	assistant := classify.NewAssistant(classify.AssistantOptions{
		Prompter:  classify.NewConsolePrompter(os.Stdin, os.Stdout),
		Suggester: suggester,
		Labels:    plan.Categories(),
		BatchSize: root.Cfg.Labeling.BatchSize,
		MaxSplit:  root.Cfg.Labeling.MaxSplit,
		Logger:    log,
	})

	if err := assistant.Train(book.Labeled()); err != nil {
		log.WithError(err).Fatal("Failed to train labeling models")
	}

	confirmed, err := assistant.LabelAll(context.Background(), unlabeled)
	if len(confirmed) > 0 {
		if applyErr := book.Apply(confirmed); applyErr != nil {
			log.WithError(applyErr).Fatal("Failed to apply labels")
		}
		if saveErr := book.Save(); saveErr != nil {
			log.WithError(saveErr).Fatal("Failed to save ledger")
		}
		log.Info("labels saved", logging.Field{Key: "confirmed", Value: len(confirmed)})
	}
	if err != nil {
		log.WithError(err).Fatal("Labeling session aborted")
	}
}

// Package budget edits the per-category budget allocations.
package budget

import (
	"os"

	"github.com/spf13/cobra"

	"gobudget/cmd/root"
	"gobudget/internal/budget"
	"gobudget/internal/logging"
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Review and edit budget allocations",
	Long: `Walk through every budgeted category to confirm or change its
allocation, then add new categories. A blank category name ends the session
and the result is written back to the budget file.`,
	Run: budgetFunc,
}

func budgetFunc(cmd *cobra.Command, args []string) {
	log := root.Log

	store := budget.NewStore(root.Cfg.Data.BudgetFile, log)
	current, err := store.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load budget")
	}

	editor := budget.NewEditor(os.Stdin, os.Stdout)
	updated, err := editor.Edit(current)
	if err != nil {
		log.WithError(err).Fatal("Budget editing aborted")
	}

	if err := store.Save(updated); err != nil {
		log.WithError(err).Fatal("Failed to save budget")
	}
	log.Info("budget updated", logging.Field{Key: "categories", Value: len(updated)})
}

package classify

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gobudget/internal/models"

	"github.com/shopspring/decimal"
)

// Prompter is the human collaborator in the confirmation loop. The console
// implementation blocks on stdin; tests script it.
type Prompter interface {
	// ConfirmCategory presents the predicted category and returns the one
	// the human settles on, which may be the NONE sentinel (always the last
	// entry of choices).
	ConfirmCategory(tx models.LedgerTransaction, predicted string, choices []string) (string, error)

	// ConfirmAmount presents the predicted amount for the category just
	// assigned and returns the confirmed amount.
	ConfirmAmount(tx models.LedgerTransaction, category string, predicted decimal.Decimal) (decimal.Decimal, error)
}

// ConsolePrompter reads confirmations from an input stream and writes
// prompts to an output stream. At the label prompt a non-numeric answer is
// taken as a new category; invalid input (out-of-range index, non-numeric
// amount) re-issues the prompt rather than propagating.
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsolePrompter wraps the given streams, typically stdin and stdout.
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *ConsolePrompter) ConfirmCategory(tx models.LedgerTransaction, predicted string, choices []string) (string, error) {
	p.showTransaction(tx)

	answer, err := p.ask(fmt.Sprintf("Does %s match this transaction? ", predicted))
	if err != nil {
		return "", err
	}
	if answer == "y" {
		return predicted, nil
	}

	for i, choice := range choices {
		fmt.Fprintf(p.out, "%d : %s\n", i, choice)
	}
	for {
		answer, err := p.ask("Which label matches this transaction? (number or new label) ")
		if err != nil {
			return "", err
		}
		if answer == "" {
			fmt.Fprintf(p.out, "Please enter a number between 0 and %d or a new label.\n", len(choices)-1)
			continue
		}
		idx, err := strconv.Atoi(answer)
		if err != nil {
			// Anything that is not an index is a brand new category.
			return answer, nil
		}
		if idx < 0 || idx >= len(choices) {
			fmt.Fprintf(p.out, "Please enter a number between 0 and %d or a new label.\n", len(choices)-1)
			continue
		}
		return choices[idx], nil
	}
}

func (p *ConsolePrompter) ConfirmAmount(tx models.LedgerTransaction, category string, predicted decimal.Decimal) (decimal.Decimal, error) {
	p.showTransaction(tx)
	fmt.Fprintf(p.out, "Category: %s\n", category)

	answer, err := p.ask(fmt.Sprintf("Does %s match this category for this transaction? ", predicted.StringFixed(2)))
	if err != nil {
		return decimal.Zero, err
	}
	if answer == "y" {
		return predicted, nil
	}

	for {
		answer, err := p.ask("What amount matches this category? ")
		if err != nil {
			return decimal.Zero, err
		}
		amount, err := decimal.NewFromString(answer)
		if err != nil {
			fmt.Fprintln(p.out, "Please enter a numeric amount.")
			continue
		}
		return amount, nil
	}
}

func (p *ConsolePrompter) showTransaction(tx models.LedgerTransaction) {
	fmt.Fprintf(p.out, "\nDate: %s\n", tx.Date)
	fmt.Fprintf(p.out, "Description: %s\n", tx.Description)
	fmt.Fprintf(p.out, "Amount: %s\n", tx.Amount.StringFixed(2))
	fmt.Fprintf(p.out, "Institution: %s\n", tx.Institution)
}

func (p *ConsolePrompter) ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return strings.TrimSpace(line), nil
}

package budget

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Editor walks the user through the budget: confirm or change the amount of
// every existing category, then add new categories until a blank name ends
// the session.
type Editor struct {
	in  *bufio.Reader
	out io.Writer
}

// NewEditor wraps the given streams, typically stdin and stdout.
func NewEditor(in io.Reader, out io.Writer) *Editor {
	return &Editor{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Edit mutates the budget in place and returns it. Pressing enter on an
// existing category keeps its current amount; duplicate new categories are
// rejected with a note.
func (e *Editor) Edit(budget Budget) (Budget, error) {
	for _, category := range budget.Categories() {
		current := budget[category]
		for {
			answer, err := e.ask(fmt.Sprintf("What amount for %s (current: %d)? ", category, current))
			if err != nil {
				return budget, err
			}
			if answer == "" {
				break
			}
			amount, err := e.parseAmount(answer)
			if err != nil {
				fmt.Fprintln(e.out, "Please enter a whole number.")
				continue
			}
			budget[category] = amount
			break
		}
	}
	fmt.Fprintln(e.out)

	for {
		category, err := e.ask("What other category would you like to add? ")
		if err != nil {
			return budget, err
		}
		if category == "" {
			break
		}
		if _, exists := budget[category]; exists {
			fmt.Fprintf(e.out, "\t%s already accounted for.\n", category)
			continue
		}
		amount, err := e.askAmount(fmt.Sprintf("How much would you like to allocate for %s? ", category))
		if err != nil {
			return budget, err
		}
		budget[category] = amount
	}

	fmt.Fprintln(e.out)
	return budget, nil
}

// askAmount re-prompts until the response parses as an integer.
func (e *Editor) askAmount(prompt string) (int, error) {
	for {
		answer, err := e.ask(prompt)
		if err != nil {
			return 0, err
		}
		amount, err := e.parseAmount(answer)
		if err != nil {
			fmt.Fprintln(e.out, "Please enter a whole number.")
			continue
		}
		return amount, nil
	}
}

func (e *Editor) parseAmount(answer string) (int, error) {
	amount, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", answer, err)
	}
	return amount, nil
}

func (e *Editor) ask(prompt string) (string, error) {
	fmt.Fprint(e.out, prompt)
	line, err := e.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return strings.TrimSpace(line), nil
}

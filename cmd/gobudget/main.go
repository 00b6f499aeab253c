// Package main provides the entry point for the gobudget CLI application.
package main

import (
	"os"

	"gobudget/cmd/budget"
	"gobudget/cmd/ingest"
	"gobudget/cmd/label"
	"gobudget/cmd/report"
	"gobudget/cmd/root"
)

func main() {
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(label.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(budget.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

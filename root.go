package main

import (
	"github.com/spf13/cobra"

	"github.com/km-arc/go-validation/framework/app"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "govalidate",
		Short: "Laravel-style data validation",
		Long: `govalidate validates maps of data against Laravel-style rules such as
"required|email" or "between:18,65".

Rules are declared inline or in YAML rule sets. The serve command exposes
them over HTTP; the check command runs one rule set against a data file.`,
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newCheckCmd(), newRulesCmd())
	return root
}

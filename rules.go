package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-validation/framework/validation"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the built-in rules and their default messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := validation.DefaultRegistry()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RULE\tMESSAGE")
			for _, name := range registry.Names() {
				fmt.Fprintf(w, "%s\t%s\n", name, registry.Get(name).Message())
			}
			return w.Flush()
		},
	}
}

package main

import (
	"fmt"

	"github.com/newthinker/pricelog/internal/storage/ledger"
	"github.com/spf13/cobra"
)

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single fetch cycle and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, _, a, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		out := cmd.OutOrStdout()
		for _, o := range a.RunOnce(cmd.Context()) {
			if o.OK() {
				fmt.Fprintf(out, "%s price $%s saved\n", o.Source, ledger.FormatPrice(o.Price))
				continue
			}
			fmt.Fprintf(out, "%s: %s (%v)\n", o.Source, o.Kind, o.Err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(onceCmd)
}

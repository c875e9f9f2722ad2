package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terrarisk/hazard-cli/internal/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <descriptor.yaml> [descriptor.yaml ...]",
	Short: "Load gridded hazard datasets into the store",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		ing := ingest.New(store, cfg.Ingest.Concurrency)
		runs, err := ing.Files(ctx, args)
		if err != nil {
			return err
		}
		for _, run := range runs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d cells\n", run.ID, run.Path, run.Cells)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

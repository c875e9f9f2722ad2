package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Inspect registered hazard dataset resources",
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered resources",
	RunE: func(cmd *cobra.Command, _ []string) error {
		inv, err := loadInventory()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "HAZARD\tID\tPATH\tSCENARIOS")
		for _, r := range inv.Resources() {
			ids := make([]string, 0, len(r.Scenarios))
			for _, s := range r.Scenarios {
				ids = append(ids, s.ID)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.HazardType, r.ID, r.Path, strings.Join(ids, ","))
		}
		return w.Flush()
	},
}

var inventoryDatasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List datasets present in the store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		paths, err := store.ListDatasets(ctx)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	inventoryCmd.AddCommand(inventoryListCmd)
	inventoryCmd.AddCommand(inventoryDatasetsCmd)
	rootCmd.AddCommand(inventoryCmd)
}

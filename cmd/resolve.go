package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/terrarisk/hazard-cli/internal/hazard"
	"github.com/terrarisk/hazard-cli/internal/sourcepath"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the stored array path for a hazard request",
	RunE: func(cmd *cobra.Command, _ []string) error {
		hazardName, _ := cmd.Flags().GetString("hazard")
		model, _ := cmd.Flags().GetString("model")
		scen, _ := cmd.Flags().GetString("scenario")
		year, _ := cmd.Flags().GetInt("year")

		t, err := hazard.Lookup(hazardName)
		if err != nil {
			return err
		}
		resolve, err := newResolver(t)
		if err != nil {
			return err
		}

		path, err := resolve(model, scen, year)
		if err != nil {
			if eris.Is(err, sourcepath.ErrNoData) {
				return eris.Errorf("no data available for hazard %s, model %q", t, model)
			}
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	resolveCmd.Flags().String("hazard", "", "hazard type (e.g. RiverineInundation)")
	resolveCmd.Flags().String("model", "", "model identifier (e.g. 00000NorESM1-M, wtsub/95, mean_work_loss/high)")
	resolveCmd.Flags().String("scenario", "historical", "scenario identifier (CMIP6 or RCP)")
	resolveCmd.Flags().Int("year", 2050, "projection year")
	_ = resolveCmd.MarkFlagRequired("hazard")
	_ = resolveCmd.MarkFlagRequired("model")
	rootCmd.AddCommand(resolveCmd)
}

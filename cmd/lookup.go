package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/terrarisk/hazard-cli/internal/coords"
	"github.com/terrarisk/hazard-cli/internal/export"
	"github.com/terrarisk/hazard-cli/internal/hazard"
	"github.com/terrarisk/hazard-cli/internal/provider"
	"github.com/terrarisk/hazard-cli/internal/reader"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Fetch hazard values at point coordinates",
	Long:  "Fetches intensity curves (acute hazards) or scalar parameters (chronic hazards) at the given coordinates from the configured dataset store.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		hazardName, _ := cmd.Flags().GetString("hazard")
		model, _ := cmd.Flags().GetString("model")
		scen, _ := cmd.Flags().GetString("scenario")
		year, _ := cmd.Flags().GetInt("year")
		interp, _ := cmd.Flags().GetString("interpolation")
		output, _ := cmd.Flags().GetString("output")

		t, err := hazard.Lookup(hazardName)
		if err != nil {
			return err
		}
		set, err := lookupCoords(cmd)
		if err != nil {
			return err
		}

		resolve, err := newResolver(t)
		if err != nil {
			return err
		}
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		if interp == "" {
			interp = cfg.Lookup.Interpolation
		}
		pcfg := provider.Config{
			SourcePath:    resolve,
			Reader:        reader.NewGridReader(store),
			Interpolation: reader.Interpolation(interp),
		}

		if t.Kind() == hazard.Chronic {
			p, err := provider.NewChronic(pcfg)
			if err != nil {
				return err
			}
			params, err := p.Parameters(ctx, set.Lons, set.Lats, model, scen, year)
			if err != nil {
				return err
			}
			return writeParameters(cmd, output, set, params)
		}

		p, err := provider.NewAcute(pcfg)
		if err != nil {
			return err
		}
		curves, rps, err := p.IntensityCurves(ctx, set.Lons, set.Lats, model, scen, year)
		if err != nil {
			return err
		}
		return writeCurves(cmd, output, set, curves, rps)
	},
}

// lookupCoords assembles the coordinate set from --lon/--lat pairs, a
// CSV file, or a point shapefile.
func lookupCoords(cmd *cobra.Command) (coords.Set, error) {
	csvPath, _ := cmd.Flags().GetString("coords")
	shpPath, _ := cmd.Flags().GetString("shapefile")
	lons, _ := cmd.Flags().GetFloat64Slice("lon")
	lats, _ := cmd.Flags().GetFloat64Slice("lat")

	switch {
	case csvPath != "":
		return coords.FromCSV(csvPath)
	case shpPath != "":
		return coords.FromShapefile(shpPath)
	case len(lons) > 0 || len(lats) > 0:
		if len(lons) != len(lats) {
			return coords.Set{}, eris.Errorf("%d --lon values vs %d --lat values", len(lons), len(lats))
		}
		return coords.Set{Lons: lons, Lats: lats}, nil
	default:
		return coords.Set{}, eris.New("coordinates required: use --lon/--lat, --coords or --shapefile")
	}
}

func writeCurves(cmd *cobra.Command, output string, set coords.Set, curves [][]float64, rps []float64) error {
	if output != "" {
		return export.WriteCurves(output, export.CurveSet{
			Lons: set.Lons, Lats: set.Lats, ReturnPeriods: rps, Curves: curves,
		})
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprint(w, "LON\tLAT")
	for _, rp := range rps {
		fmt.Fprintf(w, "\t%g", rp)
	}
	fmt.Fprintln(w)
	for i := range set.Lons {
		fmt.Fprintf(w, "%g\t%g", set.Lons[i], set.Lats[i])
		for _, v := range curves[i] {
			fmt.Fprintf(w, "\t%.4g", v)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func writeParameters(cmd *cobra.Command, output string, set coords.Set, params []float64) error {
	if output != "" {
		return export.WriteParameters(output, export.ParameterSet{
			Lons: set.Lons, Lats: set.Lats, Parameters: params,
		})
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LON\tLAT\tPARAMETER")
	for i := range set.Lons {
		fmt.Fprintf(w, "%g\t%g\t%.4g\n", set.Lons[i], set.Lats[i], params[i])
	}
	return w.Flush()
}

func init() {
	lookupCmd.Flags().String("hazard", "", "hazard type (e.g. RiverineInundation)")
	lookupCmd.Flags().String("model", "", "model identifier")
	lookupCmd.Flags().String("scenario", "historical", "scenario identifier (CMIP6 or RCP)")
	lookupCmd.Flags().Int("year", 2050, "projection year")
	lookupCmd.Flags().Float64Slice("lon", nil, "longitude (repeatable, pairs with --lat)")
	lookupCmd.Flags().Float64Slice("lat", nil, "latitude (repeatable, pairs with --lon)")
	lookupCmd.Flags().String("coords", "", "CSV file of lon,lat coordinates")
	lookupCmd.Flags().String("shapefile", "", "point shapefile of coordinates")
	lookupCmd.Flags().String("interpolation", "", "interpolation mode: floor or linear (default from config)")
	lookupCmd.Flags().String("output", "", "write results to a .csv or .xlsx file instead of stdout")
	_ = lookupCmd.MarkFlagRequired("hazard")
	_ = lookupCmd.MarkFlagRequired("model")
	rootCmd.AddCommand(lookupCmd)
}

package sourcepath

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSCChronicHeat_Paths(t *testing.T) {
	tests := []struct {
		name  string
		model string
		scen  string
		year  int
		want  string
	}{
		{
			name:  "work loss keeps CMIP6 scenario verbatim",
			model: "mean_work_loss/high",
			scen:  "ssp585",
			year:  2100,
			want:  "chronic_heat/osc/v1/mean_work_loss_high_ssp585_2100",
		},
		{
			name:  "work loss low",
			model: "mean_work_loss/low",
			scen:  "ssp126",
			year:  2030,
			want:  "chronic_heat/osc/v1/mean_work_loss_low_ssp126_2030",
		},
		{
			name:  "degree days above 32c",
			model: "mean_degree_days/above/32c",
			scen:  "ssp585",
			year:  2050,
			want:  "chronic_heat/osc/v1/mean_degree_days_above_32c_ssp585_2050",
		},
		{
			name:  "degree days below 18c",
			model: "mean_degree_days/below/18c",
			scen:  "historical",
			year:  2005,
			want:  "chronic_heat/osc/v1/mean_degree_days_below_18c_historical_2005",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OSCChronicHeat(tt.model, tt.scen, tt.year)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Scenarios are not RCP-normalized for this family, whatever they look like.
func TestOSCChronicHeat_NoScenarioNormalization(t *testing.T) {
	got, err := OSCChronicHeat("mean_work_loss/medium", "rcp8p5", 2050)
	require.NoError(t, err)
	assert.Equal(t, "chronic_heat/osc/v1/mean_work_loss_medium_rcp8p5_2050", got)

	// Even identifiers no scenario table knows pass straight through.
	got, err = OSCChronicHeat("mean_work_loss/medium", "ssp370", 2050)
	require.NoError(t, err)
	assert.Equal(t, "chronic_heat/osc/v1/mean_work_loss_medium_ssp370_2050", got)
}

func TestOSCChronicHeat_InvalidModel(t *testing.T) {
	tests := []struct {
		name  string
		model string
	}{
		{"unknown type", "max_degree_days/above/32c"},
		{"missing segments for degree days", "mean_degree_days"},
		{"missing threshold", "mean_degree_days/above"},
		{"bad direction", "mean_degree_days/around/32c"},
		{"bad threshold", "mean_degree_days/above/25c"},
		{"missing intensity", "mean_work_loss"},
		{"bad intensity", "mean_work_loss/extreme"},
		{"empty model", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OSCChronicHeat(tt.model, "ssp585", 2050)
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrInvalidModel))
		})
	}
}

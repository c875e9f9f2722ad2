package sourcepath

import (
	"fmt"
	"path"
	"strings"

	"github.com/rotisserie/eris"
)

const oscChronicHeatPrefix = "chronic_heat/osc/v1"

var degreeDayDirections = map[string]bool{"above": true, "below": true}
var degreeDayThresholds = map[string]bool{"18c": true, "32c": true}
var workLossIntensities = map[string]bool{"low": true, "medium": true, "high": true}

// OSCChronicHeat resolves paths for the OS-Climate chronic heat dataset.
// The model is "<type>/<level>..." where type is mean_degree_days
// (levels: above|below, 18c|32c) or mean_work_loss (levels:
// low|medium|high). Scenarios are stored under their CMIP6 identifiers,
// so the caller scenario is used verbatim.
func OSCChronicHeat(model, scen string, year int) (string, error) {
	parts := strings.Split(model, "/")
	typ, levels := parts[0], parts[1:]

	switch typ {
	case "mean_degree_days":
		if len(levels) < 2 {
			return "", eris.Wrapf(ErrInvalidModel,
				"chronic heat model %q: mean_degree_days requires direction and threshold, e.g. mean_degree_days/above/32c", model)
		}
		if !degreeDayDirections[levels[0]] {
			return "", eris.Wrapf(ErrInvalidModel, "chronic heat direction %q: expected above or below", levels[0])
		}
		if !degreeDayThresholds[levels[1]] {
			return "", eris.Wrapf(ErrInvalidModel, "chronic heat threshold %q: expected 18c or 32c", levels[1])
		}
		return path.Join(oscChronicHeatPrefix,
			fmt.Sprintf("mean_degree_days_%s_%s_%s_%d", levels[0], levels[1], scen, year)), nil

	case "mean_work_loss":
		if len(levels) < 1 {
			return "", eris.Wrapf(ErrInvalidModel,
				"chronic heat model %q: mean_work_loss requires an intensity, e.g. mean_work_loss/high", model)
		}
		if !workLossIntensities[levels[0]] {
			return "", eris.Wrapf(ErrInvalidModel, "work intensity %q: expected low, medium or high", levels[0])
		}
		return path.Join(oscChronicHeatPrefix,
			fmt.Sprintf("mean_work_loss_%s_%s_%d", levels[0], scen, year)), nil

	default:
		return "", eris.Wrapf(ErrInvalidModel,
			"chronic heat model type %q: expected mean_degree_days or mean_work_loss", typ)
	}
}

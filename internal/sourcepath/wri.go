package sourcepath

import (
	"fmt"
	"path"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/terrarisk/hazard-cli/internal/scenario"
)

const wriInundationPrefix = "inundation/wri/v2"

// percentileSuffixes maps the requested return-level percentile to the
// suffix token used in WRI coastal array names.
var percentileSuffixes = map[string]string{
	"95": "0",
	"5":  "0_perc_05",
	"50": "0_perc_50",
}

// subsidenceSet is the allowlist of WRI coastal subsidence components.
var subsidenceSet = map[string]bool{
	"wtsub": true,
	"nosub": true,
}

// WRICoastalInundation resolves paths for the WRI Aqueduct coastal
// inundation dataset. The model encodes subsidence and an optional
// percentile as "<subsidence>[/<percentile>]", e.g. "wtsub/95" or "nosub";
// the percentile defaults to 95.
func WRICoastalInundation(model, scen string, year int) (string, error) {
	parts := strings.Split(model, "/")
	sub := parts[0]
	if !subsidenceSet[sub] {
		return "", eris.Wrapf(ErrInvalidModel,
			"coastal inundation model %q: expected {subsidence}[/{percentile}], e.g. wtsub/95, nosub/5, wtsub/50", model)
	}
	perc := "95"
	if len(parts) > 1 {
		perc = parts[1]
	}
	suffix, ok := percentileSuffixes[perc]
	if !ok {
		return "", eris.Wrapf(ErrInvalidModel, "coastal inundation percentile %q: expected 95, 5 or 50", perc)
	}
	rcp, err := scenario.ToRCP(scen)
	if err != nil {
		return "", err
	}
	return path.Join(wriInundationPrefix, fmt.Sprintf("inuncoast_%s_%s_%d_%s", rcp, sub, year, suffix)), nil
}

// WRIRiverineInundation resolves paths for the WRI Aqueduct riverine
// inundation dataset. The model is the GCM identifier and is passed
// through as a raw path segment.
func WRIRiverineInundation(model, scen string, year int) (string, error) {
	rcp, err := scenario.ToRCP(scen)
	if err != nil {
		return "", err
	}
	return path.Join(wriInundationPrefix, fmt.Sprintf("inunriver_%s_%s_%d", rcp, model, year)), nil
}

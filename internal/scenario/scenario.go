// Package scenario translates climate scenario identifiers between the
// CMIP6 convention (ssp126, ssp245, ssp585) and the RCP convention used by
// the WRI Aqueduct dataset paths (rcp2p6, rcp4p5, rcp8p5).
package scenario

import (
	"strings"

	"github.com/rotisserie/eris"
)

// ErrUnknownScenario indicates a scenario identifier recognized by neither
// the CMIP6 nor the RCP convention.
var ErrUnknownScenario = eris.New("scenario: unknown identifier")

// cmip6ToRCP maps CMIP6 SSP identifiers to their RCP counterparts.
var cmip6ToRCP = map[string]string{
	"ssp126": "rcp2p6",
	"ssp245": "rcp4p5",
	"ssp585": "rcp8p5",
}

// rcpScenarios is the allowlist of identifiers that pass through unchanged.
var rcpScenarios = map[string]bool{
	"rcp2p6":     true,
	"rcp4p5":     true,
	"rcp8p5":     true,
	"historical": true,
}

// ToRCP converts a CMIP6 scenario identifier to RCP form. RCP identifiers
// and "historical" are returned unchanged. Any other identifier fails with
// ErrUnknownScenario.
func ToRCP(scenario string) (string, error) {
	if rcp, ok := cmip6ToRCP[scenario]; ok {
		return rcp, nil
	}
	if rcpScenarios[scenario] {
		return scenario, nil
	}
	return "", eris.Wrapf(ErrUnknownScenario, "scenario %q", scenario)
}

// IsRCP reports whether a scenario identifier uses the RCP naming
// convention. Resources whose first declared scenario is RCP-keyed have
// caller scenarios normalized before path formatting.
func IsRCP(id string) bool {
	return strings.HasPrefix(id, "rcp")
}

package sourcepath

import (
	"path"

	"github.com/rotisserie/eris"

	"github.com/terrarisk/hazard-cli/internal/hazard"
	"github.com/terrarisk/hazard-cli/internal/inventory"
	"github.com/terrarisk/hazard-cli/internal/scenario"
)

// Generic builds a resolver for one hazard type from an inventory
// snapshot. Models are looked up against the registered resources; where
// an id is registered more than once, the first registration wins. A miss
// dispatches to the embedded family resolver for the hazard type, if one
// was supplied, and otherwise yields ErrNoData.
//
// The caller scenario is RCP-normalized only when the resource's first
// declared scenario uses the RCP convention; resources natively keyed by
// CMIP6 identifiers see the caller scenario verbatim.
func Generic(inv *inventory.Inventory, hazardType hazard.Type, embedded map[hazard.Type]SourcePath) SourcePath {
	byID := make(map[string]inventory.Resource)
	for _, r := range inv.ForType(hazardType) {
		if _, ok := byID[r.ID]; !ok {
			byID[r.ID] = r
		}
	}
	fallback := embedded[hazardType]

	return func(model, scen string, year int) (string, error) {
		r, ok := byID[model]
		if !ok {
			if fallback == nil {
				return "", eris.Wrapf(ErrNoData, "hazard type %s, model %q", hazardType, model)
			}
			return fallback(model, scen, year)
		}
		proxy := scen
		if len(r.Scenarios) > 0 && scenario.IsRCP(r.Scenarios[0].ID) {
			rcp, err := scenario.ToRCP(scen)
			if err != nil {
				return "", err
			}
			proxy = rcp
		}
		return path.Join(r.Path, r.FormatArrayName(model, proxy, year)), nil
	}
}

// EmbeddedDefaults is the standard embedded fallback map: the hand-written
// family resolvers keyed by the hazard types they serve.
func EmbeddedDefaults() map[hazard.Type]SourcePath {
	return map[hazard.Type]SourcePath{
		hazard.CoastalInundation:  WRICoastalInundation,
		hazard.RiverineInundation: WRIRiverineInundation,
		hazard.ChronicHeat:        OSCChronicHeat,
	}
}

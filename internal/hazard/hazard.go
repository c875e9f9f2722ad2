// Package hazard defines the hazard-type taxonomy shared by path resolution
// and the data providers.
package hazard

import "github.com/rotisserie/eris"

// Type identifies a hazard type, e.g. RiverineInundation.
type Type string

// Registered hazard types.
const (
	CoastalInundation  Type = "CoastalInundation"
	RiverineInundation Type = "RiverineInundation"
	ChronicHeat        Type = "ChronicHeat"
	Drought            Type = "Drought"
	Wildfire           Type = "Wildfire"
)

// Kind classifies a hazard as acute (event-based, described by intensity
// curves over return periods) or chronic (described by scalar parameters).
type Kind int

const (
	Acute Kind = iota
	Chronic
)

func (k Kind) String() string {
	if k == Chronic {
		return "chronic"
	}
	return "acute"
}

// kinds is the allowlist of known hazard types and their classification.
var kinds = map[Type]Kind{
	CoastalInundation:  Acute,
	RiverineInundation: Acute,
	Wildfire:           Acute,
	ChronicHeat:        Chronic,
	Drought:            Chronic,
}

// Kind returns the acute/chronic classification for a hazard type.
// Unknown types classify as acute; use Lookup to validate identifiers.
func (t Type) Kind() Kind {
	return kinds[t]
}

func (t Type) String() string {
	return string(t)
}

// Lookup resolves a hazard-type identifier string to a registered Type.
func Lookup(name string) (Type, error) {
	t := Type(name)
	if _, ok := kinds[t]; !ok {
		return "", eris.Errorf("hazard: unknown hazard type %q", name)
	}
	return t, nil
}

// Types returns all registered hazard types, acute first, in a stable order.
func Types() []Type {
	return []Type{
		CoastalInundation,
		RiverineInundation,
		Wildfire,
		ChronicHeat,
		Drought,
	}
}

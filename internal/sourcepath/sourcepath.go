// Package sourcepath resolves (model, scenario, year) requests to array
// paths inside the hazard store. Each hazard dataset family has its own
// naming convention; the resolvers here hide those behind one contract.
package sourcepath

import "github.com/rotisserie/eris"

// SourcePath maps a (model, scenario, year) request to the path of the
// stored array holding that dataset. Implementations are pure: no I/O,
// deterministic, safe for concurrent use.
type SourcePath func(model, scen string, year int) (string, error)

// ErrInvalidModel indicates a malformed or unsupported model string for a
// hazard family: a bad sub-component, a missing required segment, or an
// unknown family type.
var ErrInvalidModel = eris.New("sourcepath: invalid model")

// ErrNoData is the explicit no-data signal: the generic resolver found no
// matching resource and no embedded fallback is configured. Callers check
// it with eris.Is before invoking the reader.
var ErrNoData = eris.New("sourcepath: no data available")

// Package provider orchestrates hazard data lookups: resolve a source
// path, delegate the coordinate read to the array-store reader, and shape
// the result per hazard kind. Acute hazards yield intensity curves over
// return periods; chronic hazards yield a single parameter per
// coordinate.
package provider

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/terrarisk/hazard-cli/internal/reader"
	"github.com/terrarisk/hazard-cli/internal/sourcepath"
)

// ErrInvalidConfiguration indicates an illegal provider configuration at
// construction; there is no request-time recovery.
var ErrInvalidConfiguration = eris.New("provider: invalid configuration")

// Config is the immutable configuration shared by both provider kinds.
// Interpolation defaults to floor.
type Config struct {
	SourcePath    sourcepath.SourcePath
	Reader        reader.Reader
	Interpolation reader.Interpolation
}

func (c *Config) validate() error {
	if c.SourcePath == nil {
		return eris.Wrap(ErrInvalidConfiguration, "source path resolver is required")
	}
	if c.Reader == nil {
		return eris.Wrap(ErrInvalidConfiguration, "reader is required")
	}
	if c.Interpolation == "" {
		c.Interpolation = reader.InterpolationFloor
	}
	if _, err := reader.ParseInterpolation(string(c.Interpolation)); err != nil {
		return eris.Wrapf(ErrInvalidConfiguration, "interpolation %q", c.Interpolation)
	}
	return nil
}

// getCurves is the shared orchestration: resolve, then read. Resolver and
// reader errors propagate unwrapped so callers can match their sentinels.
func (c Config) getCurves(ctx context.Context, lons, lats []float64, model, scen string, year int) ([][]float64, []float64, error) {
	if len(lons) != len(lats) {
		return nil, nil, eris.Errorf("provider: %d longitudes vs %d latitudes", len(lons), len(lats))
	}
	path, err := c.SourcePath(model, scen, year)
	if err != nil {
		return nil, nil, err
	}
	return c.Reader.GetCurves(ctx, path, lons, lats, c.Interpolation)
}

// Acute provides hazard event intensities for a single acute hazard type.
type Acute struct {
	cfg Config
}

// NewAcute validates the configuration and creates an acute provider.
func NewAcute(cfg Config) (*Acute, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Acute{cfg: cfg}, nil
}

// IntensityCurves returns the intensity curve for each coordinate pair:
// curves indexed [coordinate][return period], paired with the ordered
// return periods in years.
func (p *Acute) IntensityCurves(ctx context.Context, lons, lats []float64, model, scen string, year int) ([][]float64, []float64, error) {
	return p.cfg.getCurves(ctx, lons, lats, model, scen, year)
}

// Chronic provides scalar parameters for a single chronic hazard type.
type Chronic struct {
	cfg Config
}

// NewChronic validates the configuration and creates a chronic provider.
func NewChronic(cfg Config) (*Chronic, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Chronic{cfg: cfg}, nil
}

// Parameters returns the hazard parameter for each coordinate pair. By
// convention chronic arrays carry the parameter in column 0; the
// return-period axis is discarded.
func (p *Chronic) Parameters(ctx context.Context, lons, lats []float64, model, scen string, year int) ([]float64, error) {
	curves, _, err := p.cfg.getCurves(ctx, lons, lats, model, scen, year)
	if err != nil {
		return nil, err
	}
	params := make([]float64, len(curves))
	for i, row := range curves {
		if len(row) == 0 {
			return nil, eris.Errorf("provider: empty curve for coordinate %d", i)
		}
		params[i] = row[0]
	}
	return params, nil
}

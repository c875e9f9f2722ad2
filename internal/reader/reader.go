// Package reader implements the array-store reader: chunked access to
// stored hazard grids and spatial interpolation of grid values at
// arbitrary point coordinates.
package reader

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
)

// Interpolation selects how grid values are sampled at point coordinates.
type Interpolation string

const (
	// InterpolationFloor samples the grid cell containing the point.
	InterpolationFloor Interpolation = "floor"
	// InterpolationLinear interpolates bilinearly between the four
	// surrounding cell centres.
	InterpolationLinear Interpolation = "linear"
)

// ParseInterpolation validates an interpolation mode string.
func ParseInterpolation(s string) (Interpolation, error) {
	switch Interpolation(s) {
	case InterpolationFloor, InterpolationLinear:
		return Interpolation(s), nil
	default:
		return "", eris.Errorf("reader: interpolation must be %q or %q, got %q",
			InterpolationFloor, InterpolationLinear, s)
	}
}

// Reader fetches interpolated hazard values at point coordinates from a
// stored array. values is indexed [coordinate][return period] and is
// paired with the ordered return-period sequence in years.
type Reader interface {
	GetCurves(ctx context.Context, path string, lons, lats []float64, interp Interpolation) (values [][]float64, returnPeriods []float64, err error)
}

// IngestRun records one dataset ingestion into a store.
type IngestRun struct {
	ID        string
	Path      string
	Source    string
	Cells     int
	CreatedAt time.Time
}

// DatasetStore is the persistence layer beneath the reader. Stores are
// safe for concurrent reads; datasets are immutable once put.
type DatasetStore interface {
	GetDataset(ctx context.Context, path string) (*Dataset, error)
	PutDataset(ctx context.Context, ds *Dataset) error
	ListDatasets(ctx context.Context) ([]string, error)
	LogIngest(ctx context.Context, run IngestRun) error
	Close() error
}

// GridReader implements Reader over a DatasetStore.
type GridReader struct {
	store DatasetStore
}

// NewGridReader creates a reader backed by the given store.
func NewGridReader(store DatasetStore) *GridReader {
	return &GridReader{store: store}
}

// GetCurves loads the dataset at path and samples it at each coordinate
// pair. Row i of the result corresponds to (lons[i], lats[i]).
func (g *GridReader) GetCurves(ctx context.Context, path string, lons, lats []float64, interp Interpolation) ([][]float64, []float64, error) {
	if len(lons) != len(lats) {
		return nil, nil, eris.Errorf("reader: %d longitudes vs %d latitudes", len(lons), len(lats))
	}
	if _, err := ParseInterpolation(string(interp)); err != nil {
		return nil, nil, err
	}
	ds, err := g.store.GetDataset(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	values := make([][]float64, len(lons))
	for i := range lons {
		values[i] = ds.Sample(lons[i], lats[i], interp)
	}
	rps := make([]float64, len(ds.ReturnPeriods))
	copy(rps, ds.ReturnPeriods)
	return values, rps, nil
}

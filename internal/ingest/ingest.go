// Package ingest loads gridded hazard datasets into a dataset store.
// Each dataset is described by a YAML descriptor carrying grid geometry
// and return periods, with sparse cell values in a CSV or XLSX data file.
package ingest

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/terrarisk/hazard-cli/internal/reader"
)

// Grid describes the raster geometry of a dataset.
type Grid struct {
	Lon0   float64 `yaml:"lon0"`
	Lat0   float64 `yaml:"lat0"`
	DLon   float64 `yaml:"dlon"`
	DLat   float64 `yaml:"dlat"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
}

// Descriptor is the YAML sidecar describing one dataset to ingest. Data
// rows are (return_period, row, col, value); cells not listed take the
// NoData fill (NaN unless set).
type Descriptor struct {
	Path          string    `yaml:"path"`
	ReturnPeriods []float64 `yaml:"return_periods"`
	Grid          Grid      `yaml:"grid"`
	NoData        *float64  `yaml:"nodata,omitempty"`
	Data          string    `yaml:"data"`
}

// LoadDescriptor reads and validates a descriptor file.
func LoadDescriptor(path string) (*Descriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read descriptor")
	}
	var d Descriptor
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, eris.Wrap(err, "ingest: unmarshal descriptor")
	}
	if d.Path == "" {
		return nil, eris.Errorf("ingest: descriptor %s has no dataset path", path)
	}
	if d.Data == "" {
		return nil, eris.Errorf("ingest: descriptor %s has no data file", path)
	}
	return &d, nil
}

// Ingester loads datasets into a store.
type Ingester struct {
	store       reader.DatasetStore
	concurrency int
}

// New creates an ingester; concurrency bounds parallel File ingests.
func New(store reader.DatasetStore, concurrency int) *Ingester {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Ingester{store: store, concurrency: concurrency}
}

// File ingests the dataset described by one descriptor file. The data
// file path is resolved relative to the descriptor.
func (ing *Ingester) File(ctx context.Context, descriptorPath string) (reader.IngestRun, error) {
	d, err := LoadDescriptor(descriptorPath)
	if err != nil {
		return reader.IngestRun{}, err
	}

	dataPath := d.Data
	if !filepath.IsAbs(dataPath) {
		dataPath = filepath.Join(filepath.Dir(descriptorPath), dataPath)
	}
	rows, err := readDataRows(dataPath)
	if err != nil {
		return reader.IngestRun{}, err
	}

	ds, cells, err := buildDataset(d, rows)
	if err != nil {
		return reader.IngestRun{}, err
	}
	if err := ing.store.PutDataset(ctx, ds); err != nil {
		return reader.IngestRun{}, err
	}

	run := reader.IngestRun{
		ID:        uuid.NewString(),
		Path:      ds.Path,
		Source:    descriptorPath,
		Cells:     cells,
		CreatedAt: time.Now().UTC(),
	}
	if err := ing.store.LogIngest(ctx, run); err != nil {
		return reader.IngestRun{}, err
	}

	zap.L().Info("ingested dataset",
		zap.String("component", "ingest"),
		zap.String("path", ds.Path),
		zap.Int("cells", cells),
		zap.String("run_id", run.ID),
	)
	return run, nil
}

// Files ingests multiple descriptors concurrently.
func (ing *Ingester) Files(ctx context.Context, descriptorPaths []string) ([]reader.IngestRun, error) {
	var mu sync.Mutex
	runs := make([]reader.IngestRun, 0, len(descriptorPaths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ing.concurrency)
	for _, p := range descriptorPaths {
		g.Go(func() error {
			run, err := ing.File(gctx, p)
			if err != nil {
				return err
			}
			mu.Lock()
			runs = append(runs, run)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

// buildDataset materializes the sparse cell rows into a dense grid.
func buildDataset(d *Descriptor, rows [][]string) (*reader.Dataset, int, error) {
	ds := &reader.Dataset{
		Path:          d.Path,
		ReturnPeriods: d.ReturnPeriods,
		Lon0:          d.Grid.Lon0,
		Lat0:          d.Grid.Lat0,
		DLon:          d.Grid.DLon,
		DLat:          d.Grid.DLat,
		Width:         d.Grid.Width,
		Height:        d.Grid.Height,
	}

	fill := math.NaN()
	if d.NoData != nil {
		fill = *d.NoData
	}
	ds.Values = make([]float64, len(d.ReturnPeriods)*d.Grid.Width*d.Grid.Height)
	for i := range ds.Values {
		ds.Values[i] = fill
	}

	slabByRP := make(map[float64]int, len(d.ReturnPeriods))
	for i, rp := range d.ReturnPeriods {
		slabByRP[rp] = i
	}

	cells := 0
	for i, rec := range rows {
		if len(rec) < 4 {
			return nil, 0, eris.Errorf("ingest: data row %d has %d columns, want return_period,row,col,value", i+1, len(rec))
		}
		rp, rpErr := strconv.ParseFloat(rec[0], 64)
		if rpErr != nil {
			if i == 0 {
				continue // header row
			}
			return nil, 0, eris.Errorf("ingest: data row %d: bad return period %q", i+1, rec[0])
		}
		row, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, 0, eris.Errorf("ingest: data row %d: bad row index %q", i+1, rec[1])
		}
		col, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, 0, eris.Errorf("ingest: data row %d: bad col index %q", i+1, rec[2])
		}
		val, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, 0, eris.Errorf("ingest: data row %d: bad value %q", i+1, rec[3])
		}

		slab, ok := slabByRP[rp]
		if !ok {
			return nil, 0, eris.Errorf("ingest: data row %d: return period %g not in descriptor", i+1, rp)
		}
		if row < 0 || row >= d.Grid.Height || col < 0 || col >= d.Grid.Width {
			return nil, 0, eris.Errorf("ingest: data row %d: cell (%d,%d) outside %dx%d grid", i+1, row, col, d.Grid.Width, d.Grid.Height)
		}
		ds.Values[slab*d.Grid.Width*d.Grid.Height+row*d.Grid.Width+col] = val
		cells++
	}

	if err := ds.Validate(); err != nil {
		return nil, 0, err
	}
	return ds, cells, nil
}

// Package coords loads coordinate sets for batch hazard lookups.
package coords

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
)

// Set is a paired, order-significant sequence of longitudes and
// latitudes. Result row i of a lookup corresponds to (Lons[i], Lats[i]).
type Set struct {
	Lons []float64
	Lats []float64
}

// Len returns the number of coordinate pairs.
func (s Set) Len() int {
	return len(s.Lons)
}

// Append adds one coordinate pair.
func (s *Set) Append(lon, lat float64) {
	s.Lons = append(s.Lons, lon)
	s.Lats = append(s.Lats, lat)
}

// FromCSV reads a two-column lon,lat CSV. A non-numeric first row is
// treated as a header and skipped.
func FromCSV(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, eris.Wrap(err, "coords: open csv")
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return Set{}, eris.Wrap(err, "coords: read csv")
	}

	var set Set
	for i, rec := range records {
		if len(rec) < 2 {
			return Set{}, eris.Errorf("coords: row %d has %d columns, want lon,lat", i+1, len(rec))
		}
		lon, lonErr := strconv.ParseFloat(rec[0], 64)
		lat, latErr := strconv.ParseFloat(rec[1], 64)
		if lonErr != nil || latErr != nil {
			if i == 0 {
				continue // header row
			}
			return Set{}, eris.Errorf("coords: row %d: non-numeric coordinate %q,%q", i+1, rec[0], rec[1])
		}
		set.Append(lon, lat)
	}
	if set.Len() == 0 {
		return Set{}, eris.New("coords: csv contains no coordinates")
	}
	return set, nil
}

// FromShapefile reads point features from a shapefile. Non-point shapes
// are rejected.
func FromShapefile(path string) (Set, error) {
	r, err := shp.Open(path)
	if err != nil {
		return Set{}, eris.Wrap(err, "coords: open shapefile")
	}
	defer func() { _ = r.Close() }()

	var set Set
	for r.Next() {
		n, shape := r.Shape()
		pt, ok := shape.(*shp.Point)
		if !ok {
			return Set{}, eris.Errorf("coords: shape %d is %T, want point", n, shape)
		}
		set.Append(pt.X, pt.Y)
	}
	if err := r.Err(); err != nil {
		return Set{}, eris.Wrap(err, "coords: read shapefile")
	}
	if set.Len() == 0 {
		return Set{}, eris.New("coords: shapefile contains no points")
	}
	return set, nil
}

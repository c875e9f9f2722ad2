package reader

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// Dataset is one stored hazard grid: a north-up regular lon/lat raster
// with one slab of values per return period. Lon0/Lat0 is the north-west
// outer corner of cell (0, 0); longitudes grow with column, latitudes
// shrink with row. Values is row-major per slab, slabs concatenated in
// return-period order. Chronic parameter grids carry a single slab with
// return period 0.
type Dataset struct {
	Path          string
	ReturnPeriods []float64
	Lon0          float64
	Lat0          float64
	DLon          float64
	DLat          float64
	Width         int
	Height        int
	Values        []float64
}

// Validate checks grid geometry and value cardinality.
func (d *Dataset) Validate() error {
	if d.Path == "" {
		return eris.New("reader: dataset has no path")
	}
	if len(d.ReturnPeriods) == 0 {
		return eris.Errorf("reader: dataset %s has no return periods", d.Path)
	}
	if d.Width <= 0 || d.Height <= 0 {
		return eris.Errorf("reader: dataset %s has invalid grid %dx%d", d.Path, d.Width, d.Height)
	}
	if d.DLon <= 0 || d.DLat <= 0 {
		return eris.Errorf("reader: dataset %s has invalid cell size %gx%g", d.Path, d.DLon, d.DLat)
	}
	if want := len(d.ReturnPeriods) * d.Width * d.Height; len(d.Values) != want {
		return eris.Errorf("reader: dataset %s has %d values, want %d", d.Path, len(d.Values), want)
	}
	return nil
}

// Bounds returns the geographic extent of the grid.
func (d *Dataset) Bounds() *geom.Bounds {
	return geom.NewBounds(geom.XY).Set(
		d.Lon0,
		d.Lat0-float64(d.Height)*d.DLat,
		d.Lon0+float64(d.Width)*d.DLon,
		d.Lat0,
	)
}

// at reads the value for one cell of one return-period slab.
func (d *Dataset) at(slab, row, col int) float64 {
	return d.Values[slab*d.Width*d.Height+row*d.Width+col]
}

// Sample returns the per-return-period values at a point. Points outside
// the grid extent yield NaN for every return period.
func (d *Dataset) Sample(lon, lat float64, interp Interpolation) []float64 {
	out := make([]float64, len(d.ReturnPeriods))
	if !d.Bounds().OverlapsPoint(geom.XY, geom.Coord{lon, lat}) {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	if interp == InterpolationLinear {
		d.sampleLinear(lon, lat, out)
		return out
	}
	d.sampleFloor(lon, lat, out)
	return out
}

// sampleFloor reads the cell containing the point.
func (d *Dataset) sampleFloor(lon, lat float64, out []float64) {
	col := d.clampCol(int(math.Floor((lon - d.Lon0) / d.DLon)))
	row := d.clampRow(int(math.Floor((d.Lat0 - lat) / d.DLat)))
	for s := range d.ReturnPeriods {
		out[s] = d.at(s, row, col)
	}
}

// sampleLinear interpolates bilinearly between the four cell centres
// surrounding the point. Outside the ring of outermost cell centres the
// interpolation degrades to nearest-cell sampling along that axis.
func (d *Dataset) sampleLinear(lon, lat float64, out []float64) {
	// Fractional index relative to cell centres.
	u := (lon-d.Lon0)/d.DLon - 0.5
	v := (d.Lat0-lat)/d.DLat - 0.5

	col0, col1, tx := neighbours(u, d.Width)
	row0, row1, ty := neighbours(v, d.Height)

	for s := range d.ReturnPeriods {
		top := d.at(s, row0, col0)*(1-tx) + d.at(s, row0, col1)*tx
		bot := d.at(s, row1, col0)*(1-tx) + d.at(s, row1, col1)*tx
		out[s] = top*(1-ty) + bot*ty
	}
}

// neighbours maps a fractional centre-relative index to the two cell
// indices bracketing it and the interpolation weight of the second.
func neighbours(u float64, n int) (i0, i1 int, t float64) {
	i0 = int(math.Floor(u))
	if i0 < 0 {
		return 0, 0, 0
	}
	if i0 >= n-1 {
		return n - 1, n - 1, 0
	}
	return i0, i0 + 1, u - math.Floor(u)
}

func (d *Dataset) clampCol(col int) int {
	if col < 0 {
		return 0
	}
	if col >= d.Width {
		return d.Width - 1
	}
	return col
}

func (d *Dataset) clampRow(row int) int {
	if row < 0 {
		return 0
	}
	if row >= d.Height {
		return d.Height - 1
	}
	return row
}

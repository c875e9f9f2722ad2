package coords

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coords.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromCSV(t *testing.T) {
	path := writeTempCSV(t, "4.89,52.37\n-0.13,51.51\n")

	set, err := FromCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{4.89, -0.13}, set.Lons)
	assert.Equal(t, []float64{52.37, 51.51}, set.Lats)
	assert.Equal(t, 2, set.Len())
}

func TestFromCSV_SkipsHeader(t *testing.T) {
	path := writeTempCSV(t, "lon,lat\n4.89,52.37\n")

	set, err := FromCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{4.89}, set.Lons)
	assert.Equal(t, []float64{52.37}, set.Lats)
}

func TestFromCSV_ExtraColumnsIgnored(t *testing.T) {
	path := writeTempCSV(t, "4.89,52.37,amsterdam\n")

	set, err := FromCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
}

func TestFromCSV_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := FromCSV(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})

	t.Run("non-numeric data row", func(t *testing.T) {
		_, err := FromCSV(writeTempCSV(t, "lon,lat\n4.89,north\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-numeric")
	})

	t.Run("single column", func(t *testing.T) {
		_, err := FromCSV(writeTempCSV(t, "4.89\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "columns")
	})

	t.Run("header only", func(t *testing.T) {
		_, err := FromCSV(writeTempCSV(t, "lon,lat\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no coordinates")
	})
}

func TestFromShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.shp")
	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	w.Write(&shp.Point{X: 4.89, Y: 52.37})
	w.Write(&shp.Point{X: -0.13, Y: 51.51})
	w.Close()

	set, err := FromShapefile(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{4.89, -0.13}, set.Lons)
	assert.Equal(t, []float64{52.37, 51.51}, set.Lats)
}

func TestFromShapefile_RejectsNonPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.shp")
	w, err := shp.Create(path, shp.POLYLINE)
	require.NoError(t, err)
	w.Write(&shp.PolyLine{
		Box:      shp.Box{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1},
		NumParts: 1, NumPoints: 2,
		Parts:  []int32{0},
		Points: []shp.Point{{X: 0, Y: 0}, {X: 1, Y: 1}},
	})
	w.Close()

	_, err = FromShapefile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want point")
}

func TestFromShapefile_Missing(t *testing.T) {
	_, err := FromShapefile(filepath.Join(t.TempDir(), "nope.shp"))
	assert.Error(t, err)
}

func TestSet_Append(t *testing.T) {
	var set Set
	set.Append(1, 2)
	set.Append(3, 4)
	assert.Equal(t, Set{Lons: []float64{1, 3}, Lats: []float64{2, 4}}, set)
}

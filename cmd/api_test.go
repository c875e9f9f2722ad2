package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrarisk/hazard-cli/internal/inventory"
	"github.com/terrarisk/hazard-cli/internal/reader"
)

// newTestAPI seeds a memory store with one riverine grid and one chronic
// heat grid and returns a router over it.
func newTestAPI(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	store := reader.NewMemoryStore()

	require.NoError(t, store.PutDataset(ctx, &reader.Dataset{
		Path:          "inundation/wri/v2/inunriver_rcp8p5_00000NorESM1-M_2050",
		ReturnPeriods: []float64{2, 10},
		Lon0:          0, Lat0: 2, DLon: 1, DLat: 1, Width: 2, Height: 2,
		Values: []float64{0.1, 0.2, 0.3, 0.4, 1.1, 1.2, 1.3, 1.4},
	}))
	require.NoError(t, store.PutDataset(ctx, &reader.Dataset{
		Path:          "chronic_heat/osc/v1/mean_work_loss_high_ssp585_2100",
		ReturnPeriods: []float64{0},
		Lon0:          0, Lat0: 2, DLon: 1, DLat: 1, Width: 2, Height: 2,
		Values: []float64{0.05, 0.06, 0.07, 0.08},
	}))

	inv, err := inventory.New(nil)
	require.NoError(t, err)

	return newRouter(&apiServer{store: store, inv: inv, defaultInterp: "floor"})
}

func doJSON(t *testing.T, h http.Handler, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestAPI_Health(t *testing.T) {
	rr := doJSON(t, newTestAPI(t), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestAPI_Paths(t *testing.T) {
	h := newTestAPI(t)

	rr := doJSON(t, h, http.MethodGet,
		"/api/v1/paths?hazard=RiverineInundation&model=00000NorESM1-M&scenario=ssp585&year=2050", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "inundation/wri/v2/inunriver_rcp8p5_00000NorESM1-M_2050", body["path"])
}

func TestAPI_Paths_Errors(t *testing.T) {
	h := newTestAPI(t)

	t.Run("unknown hazard", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodGet, "/api/v1/paths?hazard=Tsunami&model=m", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown scenario", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodGet,
			"/api/v1/paths?hazard=RiverineInundation&model=m&scenario=ssp370", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("bad year", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodGet,
			"/api/v1/paths?hazard=RiverineInundation&model=m&scenario=rcp8p5&year=soon", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("no resolver for hazard", func(t *testing.T) {
		// Drought has no embedded family resolver and nothing registered.
		rr := doJSON(t, h, http.MethodGet,
			"/api/v1/paths?hazard=Drought&model=m&scenario=rcp8p5", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAPI_Curves(t *testing.T) {
	h := newTestAPI(t)

	rr := doJSON(t, h, http.MethodPost, "/api/v1/curves", lookupRequest{
		Hazard:     "RiverineInundation",
		Model:      "00000NorESM1-M",
		Scenario:   "ssp585",
		Year:       2050,
		Longitudes: []float64{0.5, 1.5},
		Latitudes:  []float64{1.5, 0.5},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var body struct {
		ReturnPeriods []float64   `json:"return_periods"`
		Curves        [][]float64 `json:"curves"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, []float64{2, 10}, body.ReturnPeriods)
	require.Len(t, body.Curves, 2)
	assert.Equal(t, []float64{0.1, 1.1}, body.Curves[0])
	assert.Equal(t, []float64{0.4, 1.4}, body.Curves[1])
}

func TestAPI_Curves_Errors(t *testing.T) {
	h := newTestAPI(t)

	t.Run("chronic hazard rejected", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodPost, "/api/v1/curves", lookupRequest{
			Hazard: "ChronicHeat", Model: "mean_work_loss/high", Scenario: "ssp585", Year: 2100,
			Longitudes: []float64{0.5}, Latitudes: []float64{1.5},
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "parameters")
	})

	t.Run("missing coordinates", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodPost, "/api/v1/curves", lookupRequest{
			Hazard: "RiverineInundation", Model: "m", Scenario: "rcp8p5", Year: 2050,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/curves", bytes.NewBufferString("{"))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown scenario", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodPost, "/api/v1/curves", lookupRequest{
			Hazard: "RiverineInundation", Model: "00000NorESM1-M", Scenario: "ssp370", Year: 2050,
			Longitudes: []float64{0.5}, Latitudes: []float64{1.5},
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid model", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodPost, "/api/v1/parameters", lookupRequest{
			Hazard: "ChronicHeat", Model: "mean_work_loss/extreme", Scenario: "ssp585", Year: 2100,
			Longitudes: []float64{0.5}, Latitudes: []float64{1.5},
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAPI_Parameters(t *testing.T) {
	h := newTestAPI(t)

	rr := doJSON(t, h, http.MethodPost, "/api/v1/parameters", lookupRequest{
		Hazard:     "ChronicHeat",
		Model:      "mean_work_loss/high",
		Scenario:   "ssp585",
		Year:       2100,
		Longitudes: []float64{0.5, 1.5},
		Latitudes:  []float64{1.5, 1.5},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var body struct {
		Parameters []float64 `json:"parameters"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, []float64{0.05, 0.06}, body.Parameters)
}

func TestAPI_Parameters_AcuteRejected(t *testing.T) {
	rr := doJSON(t, newTestAPI(t), http.MethodPost, "/api/v1/parameters", lookupRequest{
		Hazard: "RiverineInundation", Model: "00000NorESM1-M", Scenario: "rcp8p5", Year: 2050,
		Longitudes: []float64{0.5}, Latitudes: []float64{1.5},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "curves")
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GridSense/internal/domain/models"
	"GridSense/internal/domain/repository"
	"GridSense/internal/predictor"
	"GridSense/internal/synthetic"
	"GridSense/internal/usecase"
	"GridSense/pkg/logger"
)

type stubModel struct {
	demand []float64
	supply []float64
	err    error
}

func (m *stubModel) Predict(_ context.Context, _, _ [][]float64) ([]float64, []float64, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.demand, m.supply, nil
}

type stubStore struct {
	horizons []int
	models   map[int]repository.ForecastModel
}

func (s *stubStore) Lookup(h int) (repository.ForecastModel, bool) {
	m, ok := s.models[h]
	return m, ok
}

func (s *stubStore) Status() map[string]bool {
	status := make(map[string]bool)
	for _, h := range s.horizons {
		_, ok := s.models[h]
		status[fmt.Sprintf("%dh", h)] = ok
	}
	return status
}

func (s *stubStore) Horizons() []int {
	return s.horizons
}

type stubFeatures struct{}

func (stubFeatures) Windows(_ context.Context, _ int) ([][]float64, [][]float64, error) {
	long := make([][]float64, predictor.LongWindowSteps)
	for i := range long {
		long[i] = make([]float64, predictor.FeatureCount)
	}
	short := make([][]float64, predictor.ShortWindowSteps)
	for i := range short {
		short[i] = make([]float64, predictor.FeatureCount)
	}
	return long, short, nil
}

func newTestServer(t *testing.T, store repository.ModelStore) *echo.Echo {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	synth := synthetic.NewGenerator(synthetic.WithSeed(1))
	fc := usecase.NewForecaster(log, store, stubFeatures{}, synth, nil)

	e := echo.New()
	NewForecastHandler(log, fc, store).RegisterRoutes(e)
	return e
}

func emptyStore() *stubStore {
	return &stubStore{
		horizons: []int{3, 6, 12, 24},
		models:   map[int]repository.ForecastModel{},
	}
}

func doGet(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHome(t *testing.T) {
	store := emptyStore()
	store.models[6] = &stubModel{demand: []float64{1}, supply: []float64{1}}
	e := newTestServer(t, store)

	rec := doGet(e, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.HomeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "online", resp.Status)
	assert.Equal(t, "GridSense AI Backend is Running!", resp.Message)
	assert.Equal(t, map[string]bool{"3h": false, "6h": true, "12h": false, "24h": false}, resp.ModelsStatus)
	assert.Equal(t, "/predict?horizon=6", resp.Endpoints["predict_custom"])
	assert.Equal(t, "/predict/3h", resp.Endpoints["predict_3h"])
	assert.Equal(t, "/predict/24h", resp.Endpoints["predict_24h"])
}

func TestPredictDefaultHorizon(t *testing.T) {
	e := newTestServer(t, emptyStore())

	for _, target := range []string{"/predict", "/predict?horizon=", "/predict?horizon=abc"} {
		rec := doGet(e, target)
		require.Equal(t, http.StatusOK, rec.Code, target)

		var resp models.PredictionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Equal(t, "success", resp.Status, target)
		assert.Equal(t, "LS-DL Model", resp.Source, target)
		assert.Len(t, resp.Data, DefaultHorizonHours*synthetic.PointsPerHour, target)
	}
}

func TestPredictExplicitHorizon(t *testing.T) {
	e := newTestServer(t, emptyStore())

	rec := doGet(e, "/predict?horizon=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.PredictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2*synthetic.PointsPerHour)
}

func TestPredictRejectsOutOfRangeHorizon(t *testing.T) {
	e := newTestServer(t, emptyStore())

	for _, target := range []string{"/predict?horizon=0", "/predict?horizon=-3", "/predict?horizon=169"} {
		rec := doGet(e, target)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status, target)
		assert.NotEmpty(t, resp.Message, target)
	}
}

func TestPredictFixedHorizonRoutes(t *testing.T) {
	e := newTestServer(t, emptyStore())

	rec := doGet(e, "/predict/3h")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.PredictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "LS-DL Model", resp.Source)
	require.Len(t, resp.Data, 3*synthetic.PointsPerHour)
	for _, p := range resp.Data {
		assert.True(t, p.IsPrediction)
	}
}

func TestPredictUsesModelWhenLoaded(t *testing.T) {
	store := emptyStore()
	store.models[6] = &stubModel{
		demand: []float64{31000, 31500},
		supply: []float64{12000, 12500},
	}
	e := newTestServer(t, store)

	rec := doGet(e, "/predict/6h")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.PredictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Real Model (6h)", resp.Source)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, 31000, resp.Data[0].Demand)
}

func TestPredictModelFailure(t *testing.T) {
	store := emptyStore()
	store.models[6] = &stubModel{err: errors.New("weights corrupted")}
	e := newTestServer(t, store)

	rec := doGet(e, "/predict/6h")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.NotEmpty(t, resp.Message)
}

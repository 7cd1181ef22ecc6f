package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"GridSense/internal/domain/models"
	"GridSense/internal/domain/repository"
	"GridSense/internal/usecase"
	xhttp "GridSense/pkg/http"
	"GridSense/pkg/logger"
)

// DefaultHorizonHours is served when a request carries no usable horizon.
const DefaultHorizonHours = 6

// ForecastHandler exposes the prediction API.
type ForecastHandler struct {
	log   *logger.Logger
	fc    *usecase.Forecaster
	store repository.ModelStore
}

// NewForecastHandler creates the forecast HTTP handler.
func NewForecastHandler(log *logger.Logger, fc *usecase.Forecaster, store repository.ModelStore) *ForecastHandler {
	return &ForecastHandler{
		log:   log,
		fc:    fc,
		store: store,
	}
}

// RegisterRoutes mounts the API routes on the Echo instance.
func (h *ForecastHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/predict", h.Predict)

	for _, horizon := range h.store.Horizons() {
		horizon := horizon
		e.GET(fmt.Sprintf("/predict/%dh", horizon), func(c echo.Context) error {
			return h.serve(c, horizon)
		})
	}
}

// Home reports service status, model availability and the route map.
func (h *ForecastHandler) Home(c echo.Context) error {
	endpoints := map[string]string{
		"predict_custom": "/predict?horizon=6",
	}
	for _, horizon := range h.store.Horizons() {
		endpoints[fmt.Sprintf("predict_%dh", horizon)] = fmt.Sprintf("/predict/%dh", horizon)
	}

	return c.JSON(http.StatusOK, models.HomeResponse{
		Status:       models.StatusOnline,
		Message:      "GridSense AI Backend is Running!",
		ModelsStatus: h.store.Status(),
		Endpoints:    endpoints,
	})
}

// Predict serves a forecast for the horizon query parameter.
func (h *ForecastHandler) Predict(c echo.Context) error {
	// An explicit zero binds as the unset zero value and would pick up the
	// default, so it is rejected before binding.
	if v, err := strconv.Atoi(c.QueryParam("horizon")); err == nil && v == 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  models.StatusError,
			Message: "Horizon must be greater than or equal to 1",
		})
	}

	req := new(models.HorizonRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req, xhttp.LenientBind()); errs != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  models.StatusError,
			Message: validationMessage(errs),
		})
	}
	return h.serve(c, req.Horizon)
}

func (h *ForecastHandler) serve(c echo.Context, horizonHours int) error {
	resp, err := h.fc.Forecast(c.Request().Context(), horizonHours)
	if err != nil {
		h.log.Error("forecast failed",
			logger.Int("horizon_hours", horizonHours),
			logger.Error(err))

		status := http.StatusInternalServerError
		var appErr *xhttp.AppError
		if errors.As(err, &appErr) {
			status = appErr.Status
		}
		return c.JSON(status, models.ErrorResponse{
			Status:  models.StatusError,
			Message: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func validationMessage(errs interface{}) string {
	ve, ok := errs.([]xhttp.ValidationError)
	if !ok {
		return "invalid request"
	}
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

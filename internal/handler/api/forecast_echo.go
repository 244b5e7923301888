package api

import (
	"Metricast/internal/domain/models"
	"Metricast/internal/usecase"
	xhttp "Metricast/pkg/http"
	xlogger "Metricast/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ForecastEchoHandler exposes the forecasting use case over HTTP.
type ForecastEchoHandler struct {
	logger *xlogger.Logger
	runner *usecase.ForecastRunner
}

func NewForecastEchoHandler(logger *xlogger.Logger, runner *usecase.ForecastRunner) *ForecastEchoHandler {
	return &ForecastEchoHandler{logger: logger, runner: runner}
}

func (h *ForecastEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/forecast", h.Forecast)
	g.POST("/forecast", h.ForecastSeries)
	g.GET("/trend", h.Trend)
	g.GET("/history", h.History)
}

// Forecast runs a stored-series forecast for a named metric.
func (h *ForecastEchoHandler) Forecast(c echo.Context) error {
	req := &models.ForecastQueryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.runner.ForecastMetric(c.Request().Context(), req.Metric, req.N, req.Horizon)
	if err != nil {
		h.logger.Error("forecast usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// ForecastSeries runs the engine over a series supplied in the request
// body, bypassing the store entirely.
func (h *ForecastEchoHandler) ForecastSeries(c echo.Context) error {
	req := &models.ForecastBodyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res := h.runner.ForecastSeries(req.Points, req.Horizon)
	return xhttp.SuccessResponse(c, res)
}

// Trend reports the linear fit and direction label for a metric.
func (h *ForecastEchoHandler) Trend(c echo.Context) error {
	req := &models.TrendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.runner.TrendMetric(c.Request().Context(), req.Metric, req.N)
	if err != nil {
		h.logger.Error("trend usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// History returns the observed series for a metric, oldest first.
func (h *ForecastEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	points, err := h.runner.HistoryMetric(c.Request().Context(), req.Metric, req.N)
	if err != nil {
		h.logger.Error("history usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, points, int64(len(points)))
}

var _ xhttp.Handler = (*ForecastEchoHandler)(nil)

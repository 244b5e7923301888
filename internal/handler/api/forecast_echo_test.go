package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Metricast/internal/services/forecaster"
	"Metricast/internal/usecase"
	xhttp "Metricast/pkg/http"
	applogger "Metricast/pkg/logger"

	"github.com/labstack/echo/v4"
)

type noopMetrics struct{}

func (noopMetrics) RecordForecast(string, string)    {}
func (noopMetrics) RecordError(string)               {}
func (noopMetrics) RecordConfidence(string, float64) {}
func (noopMetrics) RecordLatency(string, float64)    {}

func testHandler(t *testing.T) (*ForecastEchoHandler, *echo.Echo) {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	engine := forecaster.NewEngine(
		forecaster.FixedClock{T: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)},
		forecaster.FixedNoise{V: 0.5},
	)
	runner := usecase.NewForecastRunner(nil, nil, engine, noopMetrics{}, l)
	h := NewForecastEchoHandler(l, runner)

	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}

func TestForecastSeriesEndpoint(t *testing.T) {
	_, e := testHandler(t)

	body := `{"points":[{"period":"January","value":100},{"period":"February","value":110},{"period":"March","value":120}],"horizon":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/forecast", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Status int `json:"status"`
		Data   struct {
			Points []struct {
				Period    string  `json:"period"`
				Value     float64 `json:"value"`
				Predicted bool    `json:"predicted"`
			} `json:"points"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Status != http.StatusOK {
		t.Fatalf("unexpected envelope status %d", envelope.Status)
	}
	if len(envelope.Data.Points) != 2 {
		t.Fatalf("expected 2 forecast points, got %d", len(envelope.Data.Points))
	}
	for i, p := range envelope.Data.Points {
		if !p.Predicted {
			t.Fatalf("point %d must be predicted", i)
		}
	}
}

func TestForecastSeriesDefaultHorizon(t *testing.T) {
	_, e := testHandler(t)

	body := `{"points":[{"period":"January","value":100},{"period":"February","value":110},{"period":"March","value":120}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/forecast", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Points []json.RawMessage `json:"points"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Points) != 6 {
		t.Fatalf("expected default horizon of 6 points, got %d", len(envelope.Data.Points))
	}
}

func TestForecastRequiresMetric(t *testing.T) {
	_, e := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/forecast", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("envelope responses always carry 200 transport status, got %d", rec.Code)
	}

	var envelope struct {
		Status int `json:"status"`
		Data   []xhttp.ValidationError `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 envelope status, got %d", envelope.Status)
	}
	if len(envelope.Data) == 0 || envelope.Data[0].Field != "Metric" {
		t.Fatalf("expected Metric validation error, got %+v", envelope.Data)
	}
}

func TestTrendRejectsOutOfRangeN(t *testing.T) {
	_, e := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/trend?metric=revenue&n=1000", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	var envelope struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 envelope status, got %d", envelope.Status)
	}
}

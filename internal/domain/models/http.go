package models

// Requests for forecast HTTP endpoints. Defined in domain for consistency and reuse.

type ForecastQueryRequest struct {
	Metric  string `query:"metric" json:"metric" validate:"required"`
	Horizon int    `query:"horizon" json:"horizon" default:"6" validate:"gte=1,lte=36"`
	N       int    `query:"n" json:"n" default:"24" validate:"gte=3,lte=240"`
}

type ForecastBodyRequest struct {
	Points  []ObservedPoint `json:"points" validate:"required,min=1"`
	Horizon int             `json:"horizon" default:"6" validate:"gte=1,lte=36"`
}

type TrendRequest struct {
	Metric string `query:"metric" json:"metric" validate:"required"`
	N      int    `query:"n" json:"n" default:"24" validate:"gte=2,lte=240"`
}

type HistoryRequest struct {
	Metric string `query:"metric" json:"metric" validate:"required"`
	N      int    `query:"n" json:"n" default:"24" validate:"gte=1,lte=240"`
}

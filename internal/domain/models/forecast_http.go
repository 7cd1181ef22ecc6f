package models

// Requests for forecast HTTP endpoints. Defined in domain for consistency and reuse.

// HorizonRequest carries the requested forecast length in hours. A missing or
// unparseable value falls back to the default; an explicit out-of-range value
// is rejected with a validation error.
type HorizonRequest struct {
	Horizon int `query:"horizon" json:"horizon" default:"6" validate:"gte=1,lte=168"`
}

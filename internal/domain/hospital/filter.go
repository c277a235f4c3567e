package hospital

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ambulance/ambulance/internal/platform/apperr"
	"github.com/ambulance/ambulance/internal/platform/db"
)

// Filter narrows a hospital search. Every set field must match; unset
// fields are ignored.
type Filter struct {
	Type        string
	Emergency   *bool
	MaxDistance *float64
	MinRating   *float64
	Specialty   string
}

// FilterFromContext reads type, emergency, maxDistance, minRating and
// specialty from the query string.
func FilterFromContext(c echo.Context) (Filter, error) {
	f := Filter{
		Type:      c.QueryParam("type"),
		Specialty: c.QueryParam("specialty"),
	}
	fields := map[string]string{}

	if raw := c.QueryParam("emergency"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			fields["emergency"] = "must be true or false"
		} else {
			f.Emergency = &v
		}
	}
	if raw := c.QueryParam("maxDistance"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			fields["maxDistance"] = "must be a non-negative number"
		} else {
			f.MaxDistance = &v
		}
	}
	if raw := c.QueryParam("minRating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 5 {
			fields["minRating"] = "must be a number between 0 and 5"
		} else {
			f.MinRating = &v
		}
	}

	if len(fields) > 0 {
		return Filter{}, apperr.Validation(fields)
	}
	return f, nil
}

// Apply adds the filter's conditions to q.
func (f Filter) Apply(q *db.Query) {
	if f.Type != "" {
		q.Where("type = $%d", f.Type)
	}
	if f.Emergency != nil {
		q.Where("emergency = $%d", *f.Emergency)
	}
	if f.MaxDistance != nil {
		q.Where("distance <= $%d", *f.MaxDistance)
	}
	if f.MinRating != nil {
		q.Where("rating >= $%d", *f.MinRating)
	}
	if f.Specialty != "" {
		q.Where("$%d = ANY(specialties)", f.Specialty)
	}
}

// Matches reports whether h satisfies every set field.
func (f Filter) Matches(h *Hospital) bool {
	if f.Type != "" && h.Type != f.Type {
		return false
	}
	if f.Emergency != nil && h.Emergency != *f.Emergency {
		return false
	}
	if f.MaxDistance != nil && h.Distance > *f.MaxDistance {
		return false
	}
	if f.MinRating != nil && h.Rating < *f.MinRating {
		return false
	}
	if f.Specialty != "" {
		for _, s := range h.Specialties {
			if s == f.Specialty {
				return true
			}
		}
		return false
	}
	return true
}

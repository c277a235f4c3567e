package pagination

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// MaxLimit caps an explicit page size. A request without limit gets every
// record.
const MaxLimit = 500

// Params holds pagination parameters extracted from a request. Limit 0
// means unlimited.
type Params struct {
	Limit  int
	Offset int
}

// All is the zero Params: every record from the start.
var All = Params{}

// FromContext extracts ?limit= and ?offset= from the echo context. Missing
// or malformed values fall back to "all records from the start".
func FromContext(c echo.Context) Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 0 {
		limit = 0
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}

// SQL returns the LIMIT and OFFSET clause for SQL queries, or "" when the
// whole result is wanted.
func (p Params) SQL() string {
	switch {
	case p.Limit > 0:
		return fmt.Sprintf(" LIMIT %d OFFSET %d", p.Limit, p.Offset)
	case p.Offset > 0:
		return fmt.Sprintf(" OFFSET %d", p.Offset)
	}
	return ""
}

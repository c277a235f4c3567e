package location

import "github.com/ambulance/ambulance/internal/platform/apperr"

var (
	ErrNotFoundOrForbidden = apperr.New(apperr.KindNotFoundOrForbidden, "location not found")

	// ErrDefaultConflict is returned when a concurrent request made another
	// location the default first.
	ErrDefaultConflict = apperr.New(apperr.KindConflict, "another location was made default at the same time")
)

package contact

import "github.com/ambulance/ambulance/internal/platform/apperr"

var (
	ErrNotFoundOrForbidden = apperr.New(apperr.KindNotFoundOrForbidden, "emergency contact not found")

	// ErrPrimaryConflict is returned when a concurrent request made another
	// contact primary first.
	ErrPrimaryConflict = apperr.New(apperr.KindConflict, "another contact was made primary at the same time")

	ErrDemotePrimary = apperr.Field("isPrimary", "the primary contact cannot be unset; make another contact primary instead")
)

package identity

import "github.com/ambulance/ambulance/internal/platform/apperr"

var (
	ErrDuplicateEmail     = apperr.New(apperr.KindDuplicateEmail, "email is already registered")
	ErrInvalidCredentials = apperr.New(apperr.KindInvalidCredentials, "invalid email or password")
	ErrAccountDisabled    = apperr.New(apperr.KindAccountDisabled, "account is disabled")
	ErrInvalidRole        = apperr.New(apperr.KindInvalidRole, "role must be one of user, driver, admin")
	ErrUserNotFound       = apperr.New(apperr.KindNotFound, "user not found")
)

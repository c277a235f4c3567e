package booking

import "github.com/ambulance/ambulance/internal/platform/apperr"

var ErrNotFoundOrForbidden = apperr.New(apperr.KindNotFoundOrForbidden, "booking not found")

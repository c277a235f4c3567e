package hospital

import "github.com/ambulance/ambulance/internal/platform/apperr"

var ErrHospitalNotFound = apperr.New(apperr.KindNotFound, "hospital not found")

package apperr

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ErrorHandler returns an echo.HTTPErrorHandler that renders every error as
// {"error": kind, "message": msg, "fields": {...}}. Errors that are neither
// *Error nor *echo.HTTPError are logged and replaced by a generic 500.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body, status := render(err)
		if status == http.StatusInternalServerError {
			rid, _ := c.Get("request_id").(string)
			logger.Error().Err(err).
				Str("request_id", rid).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error().Err(err).Msg("write error response")
		}
	}
}

func render(err error) (*Error, int) {
	if ae, ok := As(err); ok {
		if ae.Kind == KindServer {
			return New(KindServer, "internal server error"), http.StatusInternalServerError
		}
		return ae, ae.Status()
	}

	if he, ok := err.(*echo.HTTPError); ok {
		if inner, ok := As(he.Internal); ok {
			return render(inner)
		}
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		}
		if he.Code >= http.StatusInternalServerError {
			msg = "internal server error"
		}
		return &Error{Kind: kindForStatus(he.Code), Message: msg}, he.Code
	}

	return New(KindServer, "internal server error"), http.StatusInternalServerError
}

func kindForStatus(code int) Kind {
	switch code {
	case http.StatusUnauthorized:
		return KindUnauthenticated
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusConflict:
		return KindConflict
	case http.StatusInternalServerError:
		return KindServer
	}
	return Kind(strings.ToLower(strings.ReplaceAll(http.StatusText(code), " ", "_")))
}

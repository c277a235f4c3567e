package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ambulance/ambulance/internal/platform/apperr"
	"github.com/ambulance/ambulance/internal/platform/auth"
)

// AuditEntry records who changed which record, from where, and the outcome.
type AuditEntry struct {
	UserID     string
	Role       string
	Resource   string
	RecordID   string
	Action     string // create, update, delete
	IPAddress  string
	UserAgent  string
	Path       string
	Method     string
	Timestamp  time.Time
	RequestID  string
	StatusCode int
}

// Audit logs every mutating request made by an authenticated caller. It is
// mounted behind RequireCredential so the caller id is on the context. Reads
// are not audited.
func Audit(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			action := httpMethodToAction(req.Method)
			if action == "" {
				return next(c)
			}

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if ae, ok := apperr.As(err); ok {
					status = ae.Status()
				}
			}

			ctx := req.Context()
			entry := AuditEntry{
				Timestamp:  time.Now().UTC(),
				Path:       req.URL.Path,
				Method:     req.Method,
				Action:     action,
				IPAddress:  c.RealIP(),
				UserAgent:  req.UserAgent(),
				StatusCode: status,
				Resource:   extractResource(req.URL.Path),
				RecordID:   recordID(c),
				Role:       auth.RoleFromContext(ctx),
			}
			if id := auth.UserIDFromContext(ctx); id != uuid.Nil {
				entry.UserID = id.String()
			}
			if rid, ok := c.Get(RequestIDKey).(string); ok {
				entry.RequestID = rid
			}

			logger.Info().
				Str("type", "audit").
				Str("request_id", entry.RequestID).
				Str("user_id", entry.UserID).
				Str("role", entry.Role).
				Str("resource", entry.Resource).
				Str("record_id", entry.RecordID).
				Str("action", entry.Action).
				Str("method", entry.Method).
				Str("path", entry.Path).
				Str("remote_ip", entry.IPAddress).
				Int("status", entry.StatusCode).
				Msg("record_change")

			return err
		}
	}
}

func httpMethodToAction(method string) string {
	switch method {
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	}
	return ""
}

// extractResource returns the first path segment: /bookings/123/cancel ->
// bookings.
func extractResource(path string) string {
	seg := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)[0]
	if seg == "" {
		return "unknown"
	}
	return seg
}

// recordID returns the :id route parameter when it is a uuid.
func recordID(c echo.Context) string {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

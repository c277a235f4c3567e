package middleware

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CacheConfig controls the Cache-Control and ETag headers set on GET
// responses of public, non-personal resources such as the hospital
// directory.
type CacheConfig struct {
	MaxAge      int // seconds
	Private     bool
	VaryHeaders []string
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		MaxAge:      60,
		VaryHeaders: []string{"Accept"},
	}
}

// bufferedResponseWriter holds the body back so the ETag can be computed
// before anything reaches the client.
type bufferedResponseWriter struct {
	writer     http.ResponseWriter
	buf        *bytes.Buffer
	statusCode int
}

func newBufferedResponseWriter(w http.ResponseWriter) *bufferedResponseWriter {
	return &bufferedResponseWriter{
		writer:     w,
		buf:        &bytes.Buffer{},
		statusCode: http.StatusOK,
	}
}

func (w *bufferedResponseWriter) Header() http.Header {
	return w.writer.Header()
}

func (w *bufferedResponseWriter) Write(b []byte) (int, error) {
	return w.buf.Write(b)
}

func (w *bufferedResponseWriter) WriteHeader(code int) {
	w.statusCode = code
}

func (w *bufferedResponseWriter) flushTo() error {
	w.writer.WriteHeader(w.statusCode)
	if w.buf.Len() > 0 {
		_, err := w.writer.Write(w.buf.Bytes())
		return err
	}
	return nil
}

// ETag sets ETag, Cache-Control and Vary on successful GET and HEAD
// responses and answers a matching If-None-Match with 304.
func ETag(config CacheConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet && req.Method != http.MethodHead {
				return next(c)
			}

			res := c.Response()
			origWriter := res.Writer
			buf := newBufferedResponseWriter(origWriter)
			res.Writer = buf

			err := next(c)
			res.Writer = origWriter
			if err != nil {
				return err
			}

			if buf.statusCode >= 400 {
				return buf.flushTo()
			}

			res.Header().Set("Cache-Control", buildCacheControl(config))
			if len(config.VaryHeaders) > 0 {
				res.Header().Set("Vary", strings.Join(config.VaryHeaders, ", "))
			}

			etag := computeETag(buf.buf.Bytes())
			res.Header().Set("ETag", etag)
			if inm := req.Header.Get("If-None-Match"); inm != "" && etagMatch(inm, etag) {
				origWriter.WriteHeader(http.StatusNotModified)
				return nil
			}

			return buf.flushTo()
		}
	}
}

// computeETag returns a weak ETag over the response body.
func computeETag(body []byte) string {
	return fmt.Sprintf(`W/"%x"`, md5.Sum(body))
}

func buildCacheControl(config CacheConfig) string {
	scope := "public"
	if config.Private {
		scope = "private"
	}
	return fmt.Sprintf("%s, max-age=%d", scope, config.MaxAge)
}

// etagMatch compares an If-None-Match value against etag using weak
// comparison. Lists and the wildcard are accepted.
func etagMatch(headerVal, etag string) bool {
	headerVal = strings.TrimSpace(headerVal)
	if headerVal == "*" {
		return true
	}
	for _, candidate := range strings.Split(headerVal, ",") {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}

package httpapi

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
)

// nullToEmptyArray rewrites a bare JSON `null` response body to `[]`. Go
// marshals a nil slice as `null`; callers of this API expect `[]` for an
// empty list rather than having to special-case null on their side.
func nullToEmptyArray() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rec := &bodyInterceptor{ResponseWriter: c.Response().Writer, buf: &bytes.Buffer{}}
			c.Response().Writer = rec

			if err := next(c); err != nil {
				return err
			}

			body := rec.buf.Bytes()
			ct := c.Response().Header().Get(echo.HeaderContentType)
			isJSON := len(ct) >= 16 && ct[:16] == "application/json"
			statusOK := c.Response().Status >= 200 && c.Response().Status < 300

			if isJSON && statusOK && bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
				body = []byte("[]")
				c.Response().Header().Set("Content-Length", "2")
			}

			rec.ResponseWriter.WriteHeader(c.Response().Status)
			_, writeErr := rec.ResponseWriter.Write(body)
			return writeErr
		}
	}
}

type bodyInterceptor struct {
	http.ResponseWriter
	buf *bytes.Buffer
}

func (b *bodyInterceptor) Write(data []byte) (int, error) {
	return b.buf.Write(data)
}

func (b *bodyInterceptor) WriteHeader(_ int) {
	// suppressed: written once, after body inspection, in nullToEmptyArray
}

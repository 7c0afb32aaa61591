package echoutil

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	HeaderTraceId = "trace-id"

	contextKeyTraceId = "feast.trace-id"
)

// TraceId takes the trace id of the request from the "trace-id" header,
// or issues a new one. The id is echoed back in the response header.
func TraceId(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(HeaderTraceId)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextKeyTraceId, id)
		c.Response().Header().Set(HeaderTraceId, id)
		return next(c)
	}
}

// GetTraceId returns the trace id set by TraceId, or "".
func GetTraceId(c echo.Context) string {
	id, _ := c.Get(contextKeyTraceId).(string)
	return id
}

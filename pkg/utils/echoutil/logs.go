package echoutil

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
)

// LogHandlerFunc logs each request and its response.
func LogHandlerFunc(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			caller := GetCaller(c)
			l := logger.With().
				Str("trace_id", GetTraceId(c)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("user_id", caller.Id).
				Str("user_name", caller.Name).
				Logger()

			begin := time.Now()
			l.Info().Msg("< request")

			err := next(c)
			if err != nil {
				// let HTTPErrorHandler write the response here, so that the status is logged.
				c.Error(err)
			}

			ev := l.Info()
			if err != nil {
				ev = l.Warn().Err(err)
			}
			ev.Int("status", c.Response().Status).
				Dur("elapsed", time.Since(begin)).
				Msg("> response")
			return nil
		}
	}
}

// SetLevel sets the level of echo's own logger.
func SetLevel(e *echo.Echo, loglevel string) {
	switch strings.ToLower(loglevel) {
	case "debug":
		e.Logger.SetLevel(log.DEBUG)
	case "info":
		e.Logger.SetLevel(log.INFO)
	case "warn", "":
		e.Logger.SetLevel(log.WARN)
	case "error":
		e.Logger.SetLevel(log.ERROR)
	case "off":
		e.Logger.SetLevel(log.OFF)
	default:
		e.Logger.SetLevel(log.WARN)
		e.Logger.Warnf("unknown loglevel: %s . fall-backed to warn", loglevel)
	}
}

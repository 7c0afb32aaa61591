package echoutil

import (
	"errors"
	"fmt"
	"net/http"

	apierr "github.com/azure/feast-azure/api-types/errors"
	binderr "github.com/azure/feast-azure/pkg/api-types-binding/errors"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// HTTPErrorHandler renders errors as ErrorMessage documents with the trace id.
//
// Errors other than *echo.HTTPError are internal server errors and their
// messages are not shown to clients.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		msg := asErrorMessage(err)
		msg.TraceId = GetTraceId(c)

		if msg.HttpStatusCode == http.StatusInternalServerError {
			logger.Error().
				Str("trace_id", msg.TraceId).
				Err(err).
				Msg(msg.String())
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(msg.HttpStatusCode)
		} else {
			werr = c.JSON(msg.HttpStatusCode, msg)
		}
		if werr != nil {
			logger.Error().Err(werr).Msg("failed to write error response")
		}
	}
}

func asErrorMessage(err error) apierr.ErrorMessage {
	he := new(echo.HTTPError)
	if !errors.As(err, &he) {
		he = binderr.InternalServerError(err)
	}

	switch m := he.Message.(type) {
	case apierr.ErrorMessage:
		return m
	case *apierr.ErrorMessage:
		return *m
	}

	// raised by echo itself (route not found, method not allowed, ...)
	if he.Code == http.StatusInternalServerError {
		return apierr.ErrorMessage{
			ErrorMessage:   binderr.MessageInternalServerError,
			ErrorCode:      apierr.CodeInternal,
			HttpStatusCode: he.Code,
			Cause:          err,
		}
	}
	return apierr.ErrorMessage{
		ErrorMessage:   fmt.Sprint(he.Message),
		ErrorCode:      apierr.CodeUnknown,
		HttpStatusCode: he.Code,
		Cause:          err,
	}
}

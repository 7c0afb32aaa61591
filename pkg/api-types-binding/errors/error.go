package errors

import (
	"fmt"
	"net/http"

	apierr "github.com/azure/feast-azure/api-types/errors"
	kdb "github.com/azure/feast-azure/pkg/db"
	"github.com/labstack/echo/v4"
)

const (
	MessageInternalServerError = "The server encountered an internal error and was unable to complete your request."
	MessageInvalidBody         = "The request body can not be read: %s"
)

type ErrorMessageOption func(in *apierr.ErrorMessage) *apierr.ErrorMessage

func WithError(err error) ErrorMessageOption {
	return func(in *apierr.ErrorMessage) *apierr.ErrorMessage {
		if err != nil {
			in.Cause = err
		}
		return in
	}
}

func WithTraceId(traceId string) ErrorMessageOption {
	return func(in *apierr.ErrorMessage) *apierr.ErrorMessage {
		if traceId != "" {
			in.TraceId = traceId
		}
		return in
	}
}

// NewErrorMessage builds an HTTPError whose body is an ErrorMessage.
func NewErrorMessage(status int, code int, message string, opts ...ErrorMessageOption) *echo.HTTPError {
	msg := apierr.ErrorMessage{
		ErrorMessage:   message,
		ErrorCode:      code,
		HttpStatusCode: status,
	}
	for _, opt := range opts {
		msg = *opt(&msg)
	}

	return echo.NewHTTPError(status, msg).SetInternal(msg)
}

// Noun is how the kind is called in messages.
func Noun(kind kdb.Kind) string {
	switch kind {
	case kdb.KindEntity:
		return "entity"
	case kdb.KindFeatureView:
		return "feature view"
	case kdb.KindFeatureService:
		return "feature service"
	}
	return string(kind)
}

func ProjectNotFound(project string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusNotFound, apierr.CodeObjectNotFound,
		fmt.Sprintf("The project with name %s does not exist or you don't have permission to access it.", project),
		WithError(err),
	)
}

func ProjectAlreadyExists(project string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusConflict, apierr.CodeObjectAlreadyExists,
		fmt.Sprintf("The project with name %s already exists.", project),
		WithError(err),
	)
}

func ProjectNotEmpty(project string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusConflict, apierr.CodeProjectNotEmpty,
		fmt.Sprintf(
			"The project with name %s contains other objects and can not be deleted. Delete all objects and try again.",
			project,
		),
		WithError(err),
	)
}

func ObjectNotFound(kind kdb.Kind, project string, name string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusNotFound, apierr.CodeObjectNotFound,
		fmt.Sprintf(
			"The %s with name %s does not exist in project %s or you don't have permission to access it.",
			Noun(kind), name, project,
		),
		WithError(err),
	)
}

func ObjectAlreadyExists(kind kdb.Kind, project string, name string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusConflict, apierr.CodeObjectAlreadyExists,
		fmt.Sprintf("The %s with name %s already exists in project %s.", Noun(kind), name, project),
		WithError(err),
	)
}

func ValueDoesNotMatch(param string) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusBadRequest, apierr.CodeValueDoesNotMatch,
		fmt.Sprintf("Value of %s in the URL doesn't match the value in request body.", param),
	)
}

func MissingParameter(param string) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusBadRequest, apierr.CodeMissingParameter,
		fmt.Sprintf("The value of required parameter %s is not provided.", param),
	)
}

func InvalidBody(err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusBadRequest, apierr.CodeUnknown,
		fmt.Sprintf(MessageInvalidBody, err),
		WithError(err),
	)
}

// InternalServerError hides err from the response body. err is kept as the cause for logging.
func InternalServerError(err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusInternalServerError, apierr.CodeInternal,
		MessageInternalServerError,
		WithError(err),
	)
}

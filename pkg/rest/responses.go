package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	apierr "github.com/azure/feast-azure/api-types/errors"
)

// UnknownErrorMessage is the message of ResponseError when the server says nothing.
const UnknownErrorMessage = "Unknown error."

// ResponseError is returned when the server responds with a status other than 200 or 204.
type ResponseError struct {
	StatusCode int
	Message    string

	// ErrorCode and TraceId are copied from the error document, if any.
	ErrorCode int
	TraceId   string
}

func (e *ResponseError) Error() string {
	return e.Message
}

// IsNotFound tells whether err is a ResponseError with status 404.
func IsNotFound(err error) bool {
	return HasStatus(err, http.StatusNotFound)
}

// HasStatus tells whether err is a ResponseError with the status.
func HasStatus(err error, status int) bool {
	var re *ResponseError
	return errors.As(err, &re) && re.StatusCode == status
}

func succeeded(resp *http.Response) bool {
	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent
}

// read the error document in the response and build ResponseError.
func errorOf(resp *http.Response) error {
	re := &ResponseError{StatusCode: resp.StatusCode, Message: UnknownErrorMessage}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return re
	}
	msg := new(apierr.ErrorMessage)
	if err := json.Unmarshal(body, msg); err != nil {
		return re
	}
	if msg.ErrorMessage != "" {
		re.Message = msg.ErrorMessage
	}
	re.ErrorCode = msg.ErrorCode
	re.TraceId = msg.TraceId
	return re
}

// unmarshal http response which has json content.
//
// args:
//   - resp: http response to be processed.
//   - v: value which response should be.
//
// return:
//
//	error if...
//	- status code is neither 200 nor 204 (as *ResponseError)
//	- response body is not shaped of v
func unmarshalJsonResponse[T any](resp *http.Response, v *T) error {
	if !succeeded(resp) {
		return errorOf(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("unexpected response: %w (status code = %d)", err, resp.StatusCode)
	}
	return nil
}

func unmarshalResponseDiscardingPayload(resp *http.Response) error {
	if !succeeded(resp) {
		return errorOf(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

package errors

import (
	"encoding/json"
	"fmt"
)

// Error codes carried in ErrorMessage.ErrorCode.
const (
	CodeObjectAlreadyExists = 100
	CodeValueDoesNotMatch   = 101
	CodeObjectNotFound      = 102
	CodeMissingParameter    = 103
	CodeRBACInitialized     = 104
	CodeProjectNotEmpty     = 105
	CodeUnknown             = 900

	// CodeInternal is the code of errors caused by the server itself.
	CodeInternal = -1
)

// ErrorMessage is the body of error responses.
type ErrorMessage struct {
	ErrorMessage   string `json:"ErrorMessage"`
	ErrorCode      int    `json:"ErrorCode"`
	HttpStatusCode int    `json:"HttpStatusCode"`
	TraceId        string `json:"TraceId,omitempty"`

	Cause error `json:"-"`
}

// UnmarshalJSON reads ErrorMessage, falling back to "Message" for servers
// which render exceptions as they are.
func (em *ErrorMessage) UnmarshalJSON(b []byte) error {
	f := new(struct {
		ErrorMessage   *string `json:"ErrorMessage"`
		Message        *string `json:"Message"`
		ErrorCode      int     `json:"ErrorCode"`
		HttpStatusCode int     `json:"HttpStatusCode"`
		TraceId        string  `json:"TraceId"`
	})
	if err := json.Unmarshal(b, f); err != nil {
		return err
	}

	switch {
	case f.ErrorMessage != nil:
		em.ErrorMessage = *f.ErrorMessage
	case f.Message != nil:
		em.ErrorMessage = *f.Message
	default:
		return fmt.Errorf(`required field missing: "ErrorMessage"`)
	}
	em.ErrorCode = f.ErrorCode
	em.HttpStatusCode = f.HttpStatusCode
	em.TraceId = f.TraceId
	return nil
}

func (e ErrorMessage) String() string {
	return fmt.Sprintf("Message: %s. Error Code: %d.", e.ErrorMessage, e.ErrorCode)
}

func (e ErrorMessage) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s caused by: %s", e.String(), e.Cause)
	}
	return e.String()
}

func (e ErrorMessage) Unwrap() error {
	return e.Cause
}

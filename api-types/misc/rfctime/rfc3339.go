package rfctime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Format string for date-time in RFC3339, disallowing Z as time-offset.
//
// Use it to stringify time.Time forcing timezone offset not to use "Z".
const RFC3339DateTimeFormat string = "2006-01-02T15:04:05.999-07:00"

// Format string for date-time in RFC3339, allowing Z as time-offset.
//
// Use it to parse RFC3339 date-time expression.
const RFC3339DateTimeFormatZ string = time.RFC3339Nano

// Forms without time-offset, as .NET writes DateTime of unspecified kind.
const (
	RFC3339DateNano      = "2006-01-02T15:04:05.999999999"
	RFC3339DateNanoSpace = "2006-01-02 15:04:05.999999999"
)

// date-time in https://www.ietf.org/rfc/rfc3339.txt .
//
// This type is useful to interchange timestamps via network/file.
type RFC3339 time.Time

func (rfctime RFC3339) Time() time.Time {
	return time.Time(rfctime)
}

func (rfctime RFC3339) Equal(other RFC3339) bool {
	return rfctime.Time().Equal(other.Time())
}

// get string expression.
//
// It formatted by RFC3339DateTimeFormat.
func (t RFC3339) String() string {
	return time.Time(t).Format(RFC3339DateTimeFormat)
}

// Parse string to RFC3339 time.
func ParseRFC3339DateTime(s string) (RFC3339, error) {
	t, err := time.Parse(RFC3339DateTimeFormatZ, s)
	if err != nil {
		return *new(RFC3339), err
	}
	return RFC3339(t), nil
}

// ParseLooseRFC3339 parses s as RFC3339 date-time.
// A date-time without time-offset is taken as UTC.
func ParseLooseRFC3339(s string) (RFC3339, error) {
	if t, err := ParseRFC3339DateTime(s); err == nil {
		return t, nil
	}
	for _, format := range []string{RFC3339DateNano, RFC3339DateNanoSpace} {
		t, err := time.ParseInLocation(format, s, time.UTC)
		if err == nil {
			return RFC3339(t), nil
		}
	}
	return RFC3339{}, fmt.Errorf("failed to parse %s", s)
}

// implement encoding/json.Marshaller
func (t RFC3339) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, t)), nil
}

// implement encoding/json.Unmarshaller
func (t *RFC3339) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	ret, err := ParseLooseRFC3339(s)
	if err != nil {
		return err
	}

	*t = ret

	return nil
}

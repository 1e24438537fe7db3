package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

const calendarLayout = "2006-01-02"

// Date is a timestamp that also accepts plain calendar dates (YYYY-MM-DD) on input.
// It always marshals as RFC 3339.
type Date struct {
	time.Time
}

// NewDate wraps t
func NewDate(t time.Time) *Date {
	return &Date{Time: t}
}

// ParseDate parses an RFC 3339 timestamp or a calendar date
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Date{Time: t}, nil
	}
	if t, err := time.Parse(calendarLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	return Date{}, fmt.Errorf("invalid date %q: want RFC 3339 or YYYY-MM-DD", s)
}

// UnmarshalJSON implements json.Unmarshaler. Failures are reported as
// *json.UnmarshalTypeError so the decoder can attach the field path.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(Date{})}
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + s, Type: reflect.TypeOf(Date{})}
	}
	*d = parsed
	return nil
}

package bridge

import (
	"encoding/json"
	"time"

	"github.com/iov-one/bridge/errors"
)

// UnixTime represents a point in time as POSIX time with seconds precision.
// It is used in protobuf messages instead of time.Time.
type UnixTime int64

// AsUnixTime converts given Time structure into its UNIX time representation.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// Time returns a time.Time structure that represents the same moment in time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// IsZero returns true if this time represents a zero value.
func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add modifies this UNIX time by given duration. This is compatible with
// time.Time.Add method.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// Validate returns an error if this time value is invalid.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

// String returns the usual string representation of this time as the time.Time
// structure would.
func (t UnixTime) String() string {
	return t.Time().String()
}

// UnmarshalJSON supports unmarshaling both as time.Time and from a number.
// Usually a number is used as a representation of this time in JSON but it is
// convinient to use a string format in configurations (ie genesis file).
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if err := json.Unmarshal(raw, &unix); err == nil {
		if unix < 0 {
			return errors.Wrap(errors.ErrInput, "time before epoch")
		}
		*t = UnixTime(unix)
		return nil
	}

	var stdtime time.Time
	if err := json.Unmarshal(raw, &stdtime); err != nil {
		return errors.Wrap(errors.ErrInput, "invalid time format")
	}
	if stdtime.Unix() < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = AsUnixTime(stdtime)
	return nil
}

// Seconds is a time span with seconds precision. Time locks are declared
// with it.
type Seconds int64

// Duration returns the time.Duration equivalent.
func (s Seconds) Duration() time.Duration {
	return time.Duration(s) * time.Second
}

// Validate returns an error unless the span is positive.
func (s Seconds) Validate() error {
	if s <= 0 {
		return errors.Wrap(errors.ErrInput, "must be greater than zero")
	}
	return nil
}

// UnmarshalJSON accepts both a number of seconds and a duration string such
// as "24h".
func (s *Seconds) UnmarshalJSON(raw []byte) error {
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		*s = Seconds(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return errors.Wrap(errors.ErrInput, "invalid duration format")
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*s = Seconds(d / time.Second)
	return nil
}

package authlock

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/iov-one/authlock/errors"
)

// UnixTime is a point in time in seconds since the Unix epoch. It is the
// time representation used by stored models.
type UnixTime int64

// AsUnixTime drops the sub second part of t.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// Time returns t in the local time zone.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add returns t moved by d, truncated to whole seconds.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// Bytes returns the big endian encoding of t. Keys built from it sort in
// time order for non negative times.
func (t UnixTime) Bytes() []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(t))
	return raw
}

// UnmarshalJSON accepts a number of seconds or an RFC 3339 string.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var secs int64
	if json.Unmarshal(raw, &secs) == nil {
		*t = UnixTime(secs)
		return nil
	}
	var ts time.Time
	if err := json.Unmarshal(raw, &ts); err != nil {
		return errors.Wrapf(errors.ErrInput, "time %s", raw)
	}
	*t = AsUnixTime(ts)
	return nil
}

func (t UnixTime) String() string {
	return t.Time().UTC().String()
}

// UnixDuration is a duration in whole seconds.
type UnixDuration int32

// AsUnixDuration truncates d to whole seconds.
func AsUnixDuration(d time.Duration) UnixDuration {
	return UnixDuration(d / time.Second)
}

func (d UnixDuration) Duration() time.Duration {
	return time.Duration(d) * time.Second
}

// UnmarshalJSON accepts a number of seconds or a string understood by
// time.ParseDuration, for example "72h".
func (d *UnixDuration) UnmarshalJSON(raw []byte) error {
	var secs int32
	if json.Unmarshal(raw, &secs) == nil {
		*d = UnixDuration(secs)
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrapf(errors.ErrInput, "duration %s", raw)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*d = AsUnixDuration(parsed)
	return nil
}

// MarshalJSON encodes d as a number of seconds.
func (d UnixDuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(int32(d))
}

func (d UnixDuration) String() string {
	return d.Duration().String()
}

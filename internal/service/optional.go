package service

import (
	"bytes"
	"encoding/json"
	"time"
)

// OptionalTime is a patch field that tells an absent key apart from an
// explicit null. Set is false when the key was missing; Value is nil when
// the key was null.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// SomeTime sets the field to t.
func SomeTime(t time.Time) OptionalTime { return OptionalTime{Set: true, Value: &t} }

// NullTime clears the field.
func NullTime() OptionalTime { return OptionalTime{Set: true} }

func (o *OptionalTime) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	o.Value = &t
	return nil
}

func (o OptionalTime) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

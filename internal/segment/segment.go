// Package segment provides interval-tagged transcript chunks and their
// JSON wire format.
package segment

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ulagbulag/string-combiner/internal/token"
)

// Duration is a time.Duration that marshals as {"secs", "nanos"}, the
// format transcript producers emit.
type Duration time.Duration

type durationJSON struct {
	Secs  int64 `json:"secs"`
	Nanos int64 `json:"nanos"`
}

func (d Duration) MarshalJSON() ([]byte, error) {
	v := time.Duration(d)
	return json.Marshal(durationJSON{
		Secs:  int64(v / time.Second),
		Nanos: int64(v % time.Second),
	})
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v durationJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("parsing duration: %w", err)
	}
	*d = Duration(time.Duration(v.Secs)*time.Second + time.Duration(v.Nanos))
	return nil
}

// Key is the time interval a segment covers.
type Key struct {
	T0 Duration `json:"t0"`
	T1 Duration `json:"t1"`
}

// Duration returns the length of the interval.
func (k Key) Duration() time.Duration {
	return time.Duration(k.T1) - time.Duration(k.T0)
}

// Overlaps reports whether this segment's interval reaches into the
// start of the other.
func (k Key) Overlaps(other Key) bool {
	return k.T1 > other.T0
}

// Union spans both intervals.
func (k Key) Union(other Key) Key {
	u := k
	if other.T0 < u.T0 {
		u.T0 = other.T0
	}
	if other.T1 > u.T1 {
		u.T1 = other.T1
	}
	return u
}

// Segment is an interval-tagged chunk of any payload.
type Segment[V any] struct {
	Key   Key `json:"key"`
	Value V   `json:"value"`
}

// Kind classifies a segment on the wire.
type Kind string

const (
	KindNormal   Kind = "Normal"
	KindSelected Kind = "Selected"
)

// TokenData is one decoded transcript token. Identity is the ID alone;
// the timestamps are metadata.
type TokenData struct {
	ID int32    `json:"id"`
	T0 Duration `json:"t0"`
	T1 Duration `json:"t1"`
}

// Equal reports token identity, ignoring the timestamps.
func (t TokenData) Equal(other TokenData) bool {
	return t.ID == other.ID
}

// Value is a segment payload on the wire: the decoded text plus the
// decoder tokens behind it.
type Value struct {
	Kind   Kind        `json:"kind"`
	Text   string      `json:"text"`
	Tokens []TokenData `json:"tokens,omitempty"`
}

// Parse reads a JSON array of wire segments.
func Parse(r io.Reader) ([]Segment[Value], error) {
	var segments []Segment[Value]
	if err := json.NewDecoder(r).Decode(&segments); err != nil {
		return nil, fmt.Errorf("parsing segments: %w", err)
	}
	return segments, nil
}

// Aligned is a segment carrying a consolidated token sequence, the form
// segments take while being combined.
type Aligned[T any] struct {
	Key   Key
	Value token.AlignedSequence[T]
}

// AlignedSeq exposes the consolidated sequence for the reducers.
func (s Aligned[T]) AlignedSeq() token.AlignedSequence[T] {
	return s.Value
}

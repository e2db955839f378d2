package segment

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationJSON(t *testing.T) {
	t.Run("marshal splits seconds and nanos", func(t *testing.T) {
		d := Duration(1500 * time.Millisecond)
		data, err := json.Marshal(d)
		require.NoError(t, err)
		assert.JSONEq(t, `{"secs": 1, "nanos": 500000000}`, string(data))
	})

	t.Run("round trip", func(t *testing.T) {
		d := Duration(2*time.Second + 250*time.Millisecond)
		data, err := json.Marshal(d)
		require.NoError(t, err)

		var back Duration
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, d, back)
	})

	t.Run("invalid payload", func(t *testing.T) {
		var d Duration
		assert.Error(t, json.Unmarshal([]byte(`"1s"`), &d))
	})
}

func TestKey(t *testing.T) {
	key := func(t0, t1 time.Duration) Key {
		return Key{T0: Duration(t0), T1: Duration(t1)}
	}

	t.Run("duration", func(t *testing.T) {
		assert.Equal(t, 2*time.Second, key(time.Second, 3*time.Second).Duration())
	})

	t.Run("overlap", func(t *testing.T) {
		a := key(0, 2*time.Second)
		b := key(time.Second, 3*time.Second)
		c := key(5*time.Second, 6*time.Second)

		assert.True(t, a.Overlaps(b))
		assert.False(t, a.Overlaps(c))
	})

	t.Run("touching intervals do not overlap", func(t *testing.T) {
		a := key(0, time.Second)
		b := key(time.Second, 2*time.Second)
		assert.False(t, a.Overlaps(b))
	})

	t.Run("union spans both", func(t *testing.T) {
		u := key(time.Second, 2*time.Second).Union(key(0, 3*time.Second))
		assert.Equal(t, key(0, 3*time.Second), u)
	})
}

func TestTokenDataEqual(t *testing.T) {
	a := TokenData{ID: 7, T0: Duration(time.Second), T1: Duration(2 * time.Second)}
	b := TokenData{ID: 7, T0: Duration(5 * time.Second), T1: Duration(6 * time.Second)}
	c := TokenData{ID: 8}

	// Identity ignores the timestamps.
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestParse(t *testing.T) {
	t.Run("wire format", func(t *testing.T) {
		input := `[
		  {"key": {"t0": {"secs": 0, "nanos": 0}, "t1": {"secs": 2, "nanos": 0}},
		   "value": {"kind": "Normal", "text": "Hello World",
		             "tokens": [{"id": 1, "t0": {"secs": 0, "nanos": 0}, "t1": {"secs": 1, "nanos": 0}}]}},
		  {"key": {"t0": {"secs": 1, "nanos": 0}, "t1": {"secs": 3, "nanos": 0}},
		   "value": {"kind": "Selected", "text": "World!"}}
		]`

		segments, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, segments, 2)

		assert.Equal(t, KindNormal, segments[0].Value.Kind)
		assert.Equal(t, "Hello World", segments[0].Value.Text)
		require.Len(t, segments[0].Value.Tokens, 1)
		assert.Equal(t, int32(1), segments[0].Value.Tokens[0].ID)

		assert.Equal(t, KindSelected, segments[1].Value.Kind)
		assert.Equal(t, Duration(time.Second), segments[1].Key.T0)
		assert.True(t, segments[0].Key.Overlaps(segments[1].Key))
	})

	t.Run("malformed input", func(t *testing.T) {
		_, err := Parse(strings.NewReader("not json"))
		assert.Error(t, err)
	})
}

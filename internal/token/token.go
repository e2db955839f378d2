// Package token provides the consolidated-sequence data model: tokens
// annotated with support counts and the merge visitor that produces them
// from alignment traces.
package token

import "strings"

// AlignedToken is a payload annotated with a support count: how many
// times the token has been confirmed by match columns across combines.
// The count starts at 1 and only match columns increase it; identity is
// carried by Data alone.
type AlignedToken[T any] struct {
	Count int
	Data  T
}

// NewAlignedToken wraps a payload with a support count of 1.
func NewAlignedToken[T any](data T) AlignedToken[T] {
	return AlignedToken[T]{Count: 1, Data: data}
}

// AlignedSequence is a consolidated token sequence plus cumulative loss
// counters. NumDeletedX counts tokens the left-hand side lost across the
// alignments that produced this sequence; NumDeletedY mirrors it for the
// right-hand side. The counters track discarded tokens, not retained
// ones, so they have no fixed relation to len(Value).
type AlignedSequence[T any] struct {
	Value       []AlignedToken[T]
	NumDeletedX int
	NumDeletedY int
}

// NewAlignedSequence wraps raw payloads into a fresh sequence with zero
// loss counters.
func NewAlignedSequence[T any](data []T) AlignedSequence[T] {
	value := make([]AlignedToken[T], len(data))
	for i, d := range data {
		value[i] = NewAlignedToken(d)
	}
	return AlignedSequence[T]{Value: value}
}

// AlignedSeq returns the sequence itself. It exists so that
// AlignedSequence and wrapper types can be consolidated through the same
// reducers.
func (s AlignedSequence[T]) AlignedSeq() AlignedSequence[T] {
	return s
}

// TotalMatched sums the support counts over all retained tokens.
func (s AlignedSequence[T]) TotalMatched() int {
	total := 0
	for _, t := range s.Value {
		total += t.Count
	}
	return total
}

// Payload projects the sequence to its raw payloads.
func (s AlignedSequence[T]) Payload() []T {
	data := make([]T, len(s.Value))
	for i, t := range s.Value {
		data[i] = t.Data
	}
	return data
}

// Join concatenates two sequences without aligning them, summing the
// loss counters. The optional separator tokens enter with a support
// count of 1.
func (s AlignedSequence[T]) Join(other AlignedSequence[T], sep []T) AlignedSequence[T] {
	value := make([]AlignedToken[T], 0, len(s.Value)+len(sep)+len(other.Value))
	value = append(value, s.Value...)
	for _, d := range sep {
		value = append(value, NewAlignedToken(d))
	}
	value = append(value, other.Value...)
	return AlignedSequence[T]{
		Value:       value,
		NumDeletedX: s.NumDeletedX + other.NumDeletedX,
		NumDeletedY: s.NumDeletedY + other.NumDeletedY,
	}
}

// RuneString renders a rune-payload sequence as a string.
func RuneString(s AlignedSequence[rune]) string {
	var b strings.Builder
	for _, t := range s.Value {
		b.WriteRune(t.Data)
	}
	return b.String()
}

// ByteString renders a byte-payload sequence as a string.
func ByteString(s AlignedSequence[byte]) string {
	b := make([]byte, len(s.Value))
	for i, t := range s.Value {
		b[i] = t.Data
	}
	return string(b)
}

// Package stats provides statistical summaries over consolidated token
// sequences.
package stats

import (
	"fmt"
	"sort"

	"github.com/ulagbulag/string-combiner/internal/token"
)

// SequenceStats summarizes a consolidated sequence: how many tokens it
// retains, how well supported they are, and how much each side lost on
// the way.
type SequenceStats struct {
	Tokens       int
	TotalMatched int
	MeanSupport  float64
	MinSupport   int
	MaxSupport   int
	NumDeletedX  int
	NumDeletedY  int
}

// FromSequence calculates statistics for a consolidated sequence.
func FromSequence[T any](s token.AlignedSequence[T]) SequenceStats {
	st := SequenceStats{
		Tokens:      len(s.Value),
		NumDeletedX: s.NumDeletedX,
		NumDeletedY: s.NumDeletedY,
	}
	if len(s.Value) == 0 {
		return st
	}

	st.MinSupport = s.Value[0].Count
	for _, t := range s.Value {
		st.TotalMatched += t.Count
		if t.Count < st.MinSupport {
			st.MinSupport = t.Count
		}
		if t.Count > st.MaxSupport {
			st.MaxSupport = t.Count
		}
	}
	st.MeanSupport = float64(st.TotalMatched) / float64(st.Tokens)
	return st
}

func (s SequenceStats) String() string {
	return fmt.Sprintf(`SequenceStats {
  tokens: %d
  total matched: %d
  support: mean %.2f, min %d, max %d
  deleted: x %d, y %d
}`, s.Tokens, s.TotalMatched, s.MeanSupport, s.MinSupport, s.MaxSupport,
		s.NumDeletedX, s.NumDeletedY)
}

// SupportBin is one row of a support histogram.
type SupportBin struct {
	Support int
	Count   int
}

// SupportHistogram counts tokens per support level, in increasing
// support order.
func SupportHistogram[T any](s token.AlignedSequence[T]) []SupportBin {
	counts := make(map[int]int)
	for _, t := range s.Value {
		counts[t.Count]++
	}

	bins := make([]SupportBin, 0, len(counts))
	for support, count := range counts {
		bins = append(bins, SupportBin{Support: support, Count: count})
	}
	sort.Slice(bins, func(i, j int) bool {
		return bins[i].Support < bins[j].Support
	})
	return bins
}

// FilterBySupport drops tokens confirmed fewer than minSupport times.
// The loss counters carry over unchanged; dropped tokens are not counted
// as alignment losses.
func FilterBySupport[T any](s token.AlignedSequence[T], minSupport int) token.AlignedSequence[T] {
	value := make([]token.AlignedToken[T], 0, len(s.Value))
	for _, t := range s.Value {
		if t.Count >= minSupport {
			value = append(value, t)
		}
	}
	return token.AlignedSequence[T]{
		Value:       value,
		NumDeletedX: s.NumDeletedX,
		NumDeletedY: s.NumDeletedY,
	}
}

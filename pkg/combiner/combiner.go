// Package combiner provides a high-level API for consolidating streams
// of overlapping, possibly-noisy transcript segments.
//
// Successive segments from a live decoder usually share material with
// earlier ones; the combiner aligns each new segment against the best
// prior candidate, merges the shared region once and reconciles the
// divergent parts under a support-count scoring model.
//
// Example usage:
//
//	c := combiner.Default()
//	combined, ok := c.ConcatStrings([]string{"Hello World", "World!"})
//	if ok {
//	    fmt.Println(combined) // "Hello World!"
//	}
package combiner

import (
	"math"
	"runtime"

	"github.com/ulagbulag/string-combiner/internal/align"
	"github.com/ulagbulag/string-combiner/internal/msa"
	"github.com/ulagbulag/string-combiner/internal/segment"
	"github.com/ulagbulag/string-combiner/internal/token"
)

// Re-export the collaborator types callers need alongside the facade.
type (
	Segment      = segment.Segment[segment.Value]
	SegmentKey   = segment.Key
	SegmentValue = segment.Value
	TokenData    = segment.TokenData
)

// Combiner holds the consolidation parameters. The zero value is not
// useful; start from Default.
type Combiner struct {
	// GapOpen is the score penalty for opening a gap.
	GapOpen int
	// GapExtend is the score penalty for extending an open gap.
	GapExtend int
	// ThresholdDeletionX is the maximum tolerated loss on the
	// established side before a candidate is rejected.
	ThresholdDeletionX int
	// ThresholdDeletionY mirrors ThresholdDeletionX for the new side.
	ThresholdDeletionY int
	// AllowTokenDeletion lets the merger drop tokens on deletion
	// columns; when false they are retained as substitutions.
	AllowTokenDeletion bool
	// Workers bounds the goroutines used to evaluate candidate table
	// rows within one step.
	Workers int
}

// Default returns a combiner with the conventional penalties: gap open
// -5, gap extend -1, unbounded loss on the established side and at most
// 3 lost tokens on the new side.
func Default() *Combiner {
	return &Combiner{
		GapOpen:            -5,
		GapExtend:          -1,
		ThresholdDeletionX: math.MaxInt,
		ThresholdDeletionY: 3,
		AllowTokenDeletion: true,
		Workers:            runtime.NumCPU(),
	}
}

// ConcatWith consolidates arbitrary candidates under the combiner's
// scoring. eq compares payloads, matchFn decides whether two candidates
// should be aligned, and buildFn lifts a merged sequence back into the
// candidate type. Returns false when inputs is empty.
//
// Candidates are scored by their total support and rejected when either
// deletion counter exceeds its threshold.
func ConcatWith[T any, I msa.Sequence[T]](
	c *Combiner,
	inputs []I,
	eq func(a, b T) bool,
	matchFn func(x, y I) msa.Match[I],
	buildFn func(x, y I, merged token.AlignedSequence[T]) I,
) (I, bool) {
	scoring := align.NewScoring(c.GapOpen, c.GapExtend,
		func(a, b token.AlignedToken[T]) bool { return eq(a.Data, b.Data) })

	scoreFn := func(s I) (int, bool) {
		seq := s.AlignedSeq()
		if seq.NumDeletedX <= c.ThresholdDeletionX && seq.NumDeletedY <= c.ThresholdDeletionY {
			return seq.TotalMatched(), true
		}
		return 0, false
	}

	newVisitor := func() align.Visitor[token.AlignedToken[T], token.AlignedSequence[T]] {
		if c.AllowTokenDeletion {
			return token.NewMergeVisitor[T]()
		}
		return token.NewMergeVisitorKeepAll[T]()
	}

	g := msa.NewGreedyAligner[T, int, I](matchFn, scoreFn, buildFn)
	g.Workers = c.Workers
	return g.ReduceAll(scoring, newVisitor, inputs)
}

// ConsolidateRunes combines rune sequences and returns the consolidated
// sequence with its support counts and loss counters intact.
func (c *Combiner) ConsolidateRunes(inputs []string) (token.AlignedSequence[rune], bool) {
	seqs := make([]token.AlignedSequence[rune], 0, len(inputs))
	for _, s := range inputs {
		seqs = append(seqs, token.NewAlignedSequence([]rune(s)))
	}
	return ConcatWith(c, seqs,
		func(a, b rune) bool { return a == b },
		func(_, _ token.AlignedSequence[rune]) msa.Match[token.AlignedSequence[rune]] {
			return msa.NewMatched[token.AlignedSequence[rune]]()
		},
		func(_, _, merged token.AlignedSequence[rune]) token.AlignedSequence[rune] {
			return merged
		},
	)
}

// ConcatStrings combines the inputs into one consolidated string.
// Payload equality is per code point. Returns false when inputs is
// empty.
func (c *Combiner) ConcatStrings(inputs []string) (string, bool) {
	out, ok := c.ConsolidateRunes(inputs)
	if !ok {
		return "", false
	}
	return token.RuneString(out), true
}

// ConcatBytes combines byte sequences into one consolidated byte slice.
// Returns false when inputs is empty.
func (c *Combiner) ConcatBytes(inputs [][]byte) ([]byte, bool) {
	seqs := make([]token.AlignedSequence[byte], 0, len(inputs))
	for _, s := range inputs {
		seqs = append(seqs, token.NewAlignedSequence(s))
	}
	out, ok := ConcatWith(c, seqs,
		func(a, b byte) bool { return a == b },
		func(_, _ token.AlignedSequence[byte]) msa.Match[token.AlignedSequence[byte]] {
			return msa.NewMatched[token.AlignedSequence[byte]]()
		},
		func(_, _, merged token.AlignedSequence[byte]) token.AlignedSequence[byte] {
			return merged
		},
	)
	if !ok {
		return nil, false
	}
	data := make([]byte, len(out.Value))
	for i, t := range out.Value {
		data[i] = t.Data
	}
	return data, true
}

// ConcatSegments combines interval-tagged payloads. Overlapping segments
// are aligned and merged; disjoint ones are concatenated without
// alignment under the union of their intervals. Returns false when
// inputs is empty.
func ConcatSegments[T any](c *Combiner, inputs []segment.Segment[[]T], eq func(a, b T) bool) (segment.Segment[[]T], bool) {
	aligned := make([]segment.Aligned[T], 0, len(inputs))
	for _, s := range inputs {
		aligned = append(aligned, segment.Aligned[T]{
			Key:   s.Key,
			Value: token.NewAlignedSequence(s.Value),
		})
	}

	matchFn := func(x, y segment.Aligned[T]) msa.Match[segment.Aligned[T]] {
		if x.Key.Overlaps(y.Key) {
			return msa.NewMatched[segment.Aligned[T]]()
		}
		return msa.NewCustom(segment.Aligned[T]{
			Key:   x.Key.Union(y.Key),
			Value: x.Value.Join(y.Value, nil),
		})
	}

	buildFn := func(x, y segment.Aligned[T], merged token.AlignedSequence[T]) segment.Aligned[T] {
		return segment.Aligned[T]{Key: x.Key.Union(y.Key), Value: merged}
	}

	out, ok := ConcatWith(c, aligned, eq, matchFn, buildFn)
	if !ok {
		var zero segment.Segment[[]T]
		return zero, false
	}
	return segment.Segment[[]T]{Key: out.Key, Value: out.Value.Payload()}, true
}

// ConcatSegmentTexts combines wire segments by their decoded text,
// per code point.
func (c *Combiner) ConcatSegmentTexts(inputs []Segment) (segment.Segment[string], bool) {
	raw := make([]segment.Segment[[]rune], 0, len(inputs))
	for _, s := range inputs {
		raw = append(raw, segment.Segment[[]rune]{Key: s.Key, Value: []rune(s.Value.Text)})
	}
	out, ok := ConcatSegments(c, raw, func(a, b rune) bool { return a == b })
	if !ok {
		var zero segment.Segment[string]
		return zero, false
	}
	return segment.Segment[string]{Key: out.Key, Value: string(out.Value)}, true
}

// ConcatSegmentTokens combines wire segments by their decoder tokens;
// token identity is the token ID alone.
func (c *Combiner) ConcatSegmentTokens(inputs []Segment) (segment.Segment[[]TokenData], bool) {
	raw := make([]segment.Segment[[]TokenData], 0, len(inputs))
	for _, s := range inputs {
		raw = append(raw, segment.Segment[[]TokenData]{Key: s.Key, Value: s.Value.Tokens})
	}
	return ConcatSegments(c, raw, TokenData.Equal)
}

// PrettyAlign renders a pairwise alignment of two strings as a
// three-row diff paginated at ncol columns.
func (c *Combiner) PrettyAlign(mode align.Mode, x, y string, ncol int) string {
	scoring := align.NewScoring(c.GapOpen, c.GapExtend,
		func(a, b byte) bool { return a == b })
	xb, yb := []byte(x), []byte(y)
	tr := align.New(scoring).Align(mode, xb, yb)
	return align.Reduce[byte, string](tr, align.NewPrettyVisitor(ncol), xb, yb)
}

// Version returns the combiner version.
func Version() string {
	return "1.0.0"
}

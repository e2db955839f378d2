package msa

import (
	"cmp"
	"sync"

	"github.com/ulagbulag/string-combiner/internal/align"
	"github.com/ulagbulag/string-combiner/internal/token"
)

// MatchKind classifies the caller's decision for a candidate pair.
type MatchKind int

const (
	// Matched aligns the pair and merges the result
	Matched MatchKind = iota
	// Unmatched skips the pair
	Unmatched
	// Custom uses the caller-built sequence directly, without aligning
	Custom
)

// Match is the result of a match predicate: a decision kind plus, for
// Custom, the replacement sequence.
type Match[I any] struct {
	Kind MatchKind
	Seq  I
}

// NewMatched decides that the pair should be aligned.
func NewMatched[I any]() Match[I] { return Match[I]{Kind: Matched} }

// NewUnmatched decides that the pair should be skipped.
func NewUnmatched[I any]() Match[I] { return Match[I]{Kind: Unmatched} }

// NewCustom short-circuits the pair with a caller-built sequence.
func NewCustom[I any](seq I) Match[I] { return Match[I]{Kind: Custom, Seq: seq} }

// Sequence is the candidate type consolidated by the greedy reducer: any
// value that can expose its aligned-token sequence.
type Sequence[T any] interface {
	AlignedSeq() token.AlignedSequence[T]
}

// GreedyAligner consolidates inputs through a table of candidate states.
// Each new input is aligned locally against every prior table entry the
// match predicate accepts; the best-scoring merge (or the input itself)
// becomes a new entry. Entries are never mutated after insertion.
//
// MatchFn decides whether two candidates should be aligned, skipped or
// short-circuited. ScoreFn ranks a candidate and may reject it entirely.
// BuildFn lifts a merged sequence back into the candidate type. All
// three must be pure: when Workers permits it, table rows are evaluated
// concurrently.
type GreedyAligner[T any, S cmp.Ordered, I Sequence[T]] struct {
	MatchFn func(x, y I) Match[I]
	ScoreFn func(I) (S, bool)
	BuildFn func(x, y I, merged token.AlignedSequence[T]) I

	// Workers bounds the goroutines used per step. Values below 2
	// disable parallelism; parallel evaluation only engages once the
	// table holds at least 5 rows per worker.
	Workers int
}

// NewGreedyAligner creates a greedy reducer from its three callbacks.
func NewGreedyAligner[T any, S cmp.Ordered, I Sequence[T]](
	matchFn func(x, y I) Match[I],
	scoreFn func(I) (S, bool),
	buildFn func(x, y I, merged token.AlignedSequence[T]) I,
) *GreedyAligner[T, S, I] {
	return &GreedyAligner[T, S, I]{
		MatchFn: matchFn,
		ScoreFn: scoreFn,
		BuildFn: buildFn,
	}
}

// state is one candidate table entry: a consolidated sequence plus its
// score, or scored=false when the score function rejected it.
type state[I any, S any] struct {
	seq    I
	score  S
	scored bool
}

type rowResult[I any, S any] struct {
	cand  I
	score S
	ok    bool
}

// ReduceAll consolidates the inputs and returns the best table entry.
// Returns false when the input list is empty.
//
// Determinism: candidate ties keep the later table row, final ties keep
// the latest entry, so the result is identical whether or not rows were
// evaluated in parallel.
func (g *GreedyAligner[T, S, I]) ReduceAll(
	scoring align.Scoring[token.AlignedToken[T]],
	newVisitor func() align.Visitor[token.AlignedToken[T], token.AlignedSequence[T]],
	inputs []I,
) (I, bool) {
	aligner := align.New(scoring)
	table := make([]state[I, S], 0, len(inputs))

	evaluate := func(x I, y I) (r rowResult[I, S]) {
		var cand I
		switch m := g.MatchFn(x, y); m.Kind {
		case Matched:
			xs, ys := x.AlignedSeq().Value, y.AlignedSeq().Value
			tr := aligner.Local(xs, ys)
			merged := align.Reduce(tr, newVisitor(), xs, ys)
			cand = g.BuildFn(x, y, merged)
		case Custom:
			cand = m.Seq
		default:
			return r
		}
		score, ok := g.ScoreFn(cand)
		if !ok {
			return r
		}
		return rowResult[I, S]{cand: cand, score: score, ok: true}
	}

	for _, y := range inputs {
		// The genesis candidate: the input on its own.
		best := state[I, S]{seq: y}
		best.score, best.scored = g.ScoreFn(y)

		results := g.evaluateRows(table, y, evaluate)

		// The best merge candidate; on equal scores the later row wins.
		var merged rowResult[I, S]
		for _, r := range results {
			if !r.ok {
				continue
			}
			if !merged.ok || r.score >= merged.score {
				merged = r
			}
		}
		if merged.ok && (!best.scored || merged.score > best.score) {
			best = state[I, S]{seq: merged.cand, score: merged.score, scored: true}
		}
		table = append(table, best)
	}

	// Pick the entry that was finally selected; on equal scores the
	// latest one wins.
	var out I
	if len(table) == 0 {
		return out, false
	}
	bestIdx := 0
	for i := 1; i < len(table); i++ {
		if betterOrEqual(table[i], table[bestIdx]) {
			bestIdx = i
		}
	}
	return table[bestIdx].seq, true
}

// evaluateRows computes one merge candidate per table row, in parallel
// when the table is large enough to amortize the goroutines.
func (g *GreedyAligner[T, S, I]) evaluateRows(
	table []state[I, S],
	y I,
	evaluate func(x, y I) rowResult[I, S],
) []rowResult[I, S] {
	results := make([]rowResult[I, S], len(table))

	if g.Workers < 2 || len(table) < 5*g.Workers {
		for i := range table {
			results[i] = evaluate(table[i].seq, y)
		}
		return results
	}

	chunk := (len(table) + g.Workers - 1) / g.Workers
	var wg sync.WaitGroup
	for lo := 0; lo < len(table); lo += chunk {
		hi := min(lo+chunk, len(table))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				results[i] = evaluate(table[i].seq, y)
			}
		}(lo, hi)
	}
	wg.Wait()
	return results
}

// betterOrEqual reports whether a should replace b as the running best:
// a scored entry beats an unscored one, a higher score beats a lower,
// and equality favors a (the later entry).
func betterOrEqual[I any, S cmp.Ordered](a, b state[I, S]) bool {
	if a.scored != b.scored {
		return a.scored
	}
	if !a.scored {
		return true
	}
	return a.score >= b.score
}

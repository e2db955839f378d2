// Package msa provides multiple sequence alignment reducers that fold a
// stream of token sequences into one consolidated sequence.
package msa

import "github.com/ulagbulag/string-combiner/internal/align"

// ReduceLinear consolidates the inputs in order: the running result is
// semiglobally aligned against each next input and rebuilt from the
// visitor's output. Returns false when the input list is empty.
//
// newVisitor is called once per alignment; each call must return a fresh
// visitor.
func ReduceLinear[T any](scoring align.Scoring[T], newVisitor func() align.Visitor[T, []T], inputs [][]T) ([]T, bool) {
	if len(inputs) == 0 {
		return nil, false
	}

	aligner := align.New(scoring)
	x := inputs[0]
	for _, y := range inputs[1:] {
		tr := aligner.Semiglobal(x, y)
		x = align.Reduce(tr, newVisitor(), x, y)
	}
	return x, true
}

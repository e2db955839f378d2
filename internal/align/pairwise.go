package align

// negInf is low enough to never win a maximum but far from integer
// overflow when gap penalties are added to it.
const negInf = -(1 << 40)

// Traceback layer markers. Every DP cell records which layer the optimal
// path came from; start marks a cell where the aligned region begins.
const (
	tbStart uint8 = iota
	tbM
	tbIns
	tbDel
)

// Aligner computes pairwise alignments between token sequences under an
// affine gap model.
//
// The aligner is stateless apart from its scoring and is safe to share
// across goroutines.
type Aligner[T any] struct {
	scoring Scoring[T]
}

// New creates an aligner with the given scoring.
func New[T any](scoring Scoring[T]) *Aligner[T] {
	return &Aligner[T]{scoring: scoring}
}

// Global computes a Needleman-Wunsch alignment covering both sequences
// end to end.
func (a *Aligner[T]) Global(x, y []T) Trace {
	return a.Align(Global, x, y)
}

// Semiglobal aligns x end to end while leading and trailing gaps on y
// are free.
func (a *Aligner[T]) Semiglobal(x, y []T) Trace {
	return a.Align(Semiglobal, x, y)
}

// Local computes a Smith-Waterman alignment: the highest-scoring pair of
// subsequences.
func (a *Aligner[T]) Local(x, y []T) Trace {
	return a.Align(Local, x, y)
}

// Align computes the optimal alignment of x against y for the given
// mode. Ties are broken deterministically: diagonal steps are preferred
// over insertions over deletions, and among equally scoring end points
// the earliest wins.
//
// Empty inputs yield an empty operation list with zero coordinates.
// Custom is not a computable mode (custom traces are assembled by
// callers from explicit clip operations) and is treated as Global.
func (a *Aligner[T]) Align(mode Mode, x, y []T) Trace {
	m, n := len(x), len(y)
	tr := Trace{Mode: mode, XLen: m, YLen: n}
	if m == 0 || n == 0 {
		return tr
	}

	computeMode := mode
	if computeMode == Custom {
		computeMode = Global
	}
	freeY := computeMode == Semiglobal || computeMode == Local
	freeX := computeMode == Local

	// Three DP layers: M holds alignment columns, ins holds gaps in y
	// (consuming x), del holds gaps in x (consuming y). Flat row-major
	// matrices, cell (i, j) at i*(n+1)+j.
	cols := n + 1
	size := (m + 1) * cols
	mat := make([]int, size)
	ins := make([]int, size)
	del := make([]int, size)
	tMat := make([]uint8, size)
	tIns := make([]uint8, size)
	tDel := make([]uint8, size)

	open := a.scoring.GapOpen + a.scoring.GapExtend
	extend := a.scoring.GapExtend

	// Boundary row and column.
	mat[0] = 0
	tMat[0] = tbStart
	ins[0] = negInf
	del[0] = negInf
	for j := 1; j <= n; j++ {
		if freeY {
			mat[j] = 0
			tMat[j] = tbStart
		} else {
			mat[j] = negInf
		}
		ins[j] = negInf
		del[j] = open + (j-1)*extend
		if j == 1 {
			tDel[j] = tbM
		} else {
			tDel[j] = tbDel
		}
	}
	for i := 1; i <= m; i++ {
		c := i * cols
		if freeX {
			mat[c] = 0
			tMat[c] = tbStart
		} else {
			mat[c] = negInf
		}
		del[c] = negInf
		ins[c] = open + (i-1)*extend
		if i == 1 {
			tIns[c] = tbM
		} else {
			tIns[c] = tbIns
		}
	}

	// Track the local maximum while filling.
	bestScore, bestI, bestJ := 0, 0, 0

	for i := 1; i <= m; i++ {
		c := i * cols
		p := c - cols // row i-1
		for j := 1; j <= n; j++ {
			colScore := a.scoring.Match(x[i-1], y[j-1])

			// Diagonal step: prefer M, then ins, then del on ties.
			diag := mat[p+j-1]
			from := tbM
			if ins[p+j-1] > diag {
				diag = ins[p+j-1]
				from = tbIns
			}
			if del[p+j-1] > diag {
				diag = del[p+j-1]
				from = tbDel
			}
			score := diag + colScore
			if freeX && freeY && score <= 0 {
				// Local mode: an empty alignment ending here beats a
				// negative-scoring one.
				score = 0
				from = tbStart
			}
			mat[c+j] = score
			tMat[c+j] = from

			if freeX && freeY && score > bestScore {
				bestScore = score
				bestI, bestJ = i, j
			}

			// Gap in y: consume x[i-1].
			openScore := mat[p+j] + open
			extendScore := ins[p+j] + extend
			if openScore >= extendScore {
				ins[c+j] = openScore
				tIns[c+j] = tbM
			} else {
				ins[c+j] = extendScore
				tIns[c+j] = tbIns
			}

			// Gap in x: consume y[j-1].
			openScore = mat[c+j-1] + open
			extendScore = del[c+j-1] + extend
			if openScore >= extendScore {
				del[c+j] = openScore
				tDel[c+j] = tbM
			} else {
				del[c+j] = extendScore
				tDel[c+j] = tbDel
			}
		}
	}

	// Choose the end point of the optimal path.
	var endI, endJ int
	var endLayer uint8
	switch computeMode {
	case Local:
		if bestScore <= 0 {
			return tr
		}
		endI, endJ, endLayer = bestI, bestJ, tbM
		tr.Score = bestScore
	case Semiglobal:
		// x is fully consumed; the remaining y suffix is free.
		c := m * cols
		best, bestJ, bestLayer := negInf, 0, tbM
		for j := 0; j <= n; j++ {
			score, layer := cellBest(mat[c+j], ins[c+j], del[c+j])
			if score > best {
				best, bestJ, bestLayer = score, j, layer
			}
		}
		endI, endJ, endLayer = m, bestJ, bestLayer
		tr.Score = best
	default:
		c := m * cols
		score, layer := cellBest(mat[c+n], ins[c+n], del[c+n])
		endI, endJ, endLayer = m, n, layer
		tr.Score = score
	}

	// Backtrack, collecting operations in reverse.
	ops := make([]Op, 0, m+n)
	i, j, layer := endI, endJ, endLayer
loop:
	for {
		c := i*cols + j
		switch layer {
		case tbM:
			if tMat[c] == tbStart {
				break loop
			}
			kind := OpSubst
			if a.scoring.Eq(x[i-1], y[j-1]) {
				kind = OpMatch
			}
			ops = append(ops, Op{Kind: kind})
			layer = tMat[c]
			i--
			j--
		case tbIns:
			ops = append(ops, Op{Kind: OpIns})
			layer = tIns[c]
			i--
		case tbDel:
			ops = append(ops, Op{Kind: OpDel})
			layer = tDel[c]
			j--
		}
	}

	// Reverse into forward order.
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}

	tr.XStart, tr.YStart = i, j
	tr.XEnd, tr.YEnd = endI, endJ
	tr.Ops = ops
	return tr
}

// cellBest picks the best layer at a cell, preferring M, then ins, then
// del on ties.
func cellBest(m, ins, del int) (int, uint8) {
	best, layer := m, tbM
	if ins > best {
		best, layer = ins, tbIns
	}
	if del > best {
		best, layer = del, tbDel
	}
	return best, layer
}

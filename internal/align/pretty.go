package align

import "strings"

// PrettyVisitor renders an alignment as a three-row diff: the x row, a
// marker row ('|' match, '\' substitution, 'x' deletion, '+' insertion)
// and the y row, paginated into blocks of ncol columns.
type PrettyVisitor struct {
	ncol   int
	xRow   []byte
	midRow []byte
	yRow   []byte
}

// NewPrettyVisitor creates a pretty visitor paginating at ncol columns.
func NewPrettyVisitor(ncol int) *PrettyVisitor {
	return &PrettyVisitor{ncol: ncol}
}

func (p *PrettyVisitor) VisitPrefixX(x []byte) {
	for _, k := range x {
		p.xRow = append(p.xRow, k)
		p.midRow = append(p.midRow, ' ')
		p.yRow = append(p.yRow, ' ')
	}
}

func (p *PrettyVisitor) VisitPrefixY(y []byte) {
	for _, k := range y {
		p.xRow = append(p.xRow, ' ')
		p.midRow = append(p.midRow, ' ')
		p.yRow = append(p.yRow, k)
	}
}

func (p *PrettyVisitor) VisitMatch(x, y byte) {
	p.xRow = append(p.xRow, x)
	p.midRow = append(p.midRow, '|')
	p.yRow = append(p.yRow, y)
}

func (p *PrettyVisitor) VisitSubst(x, y byte) {
	p.xRow = append(p.xRow, x)
	p.midRow = append(p.midRow, '\\')
	p.yRow = append(p.yRow, y)
}

func (p *PrettyVisitor) VisitDel(y byte) {
	p.xRow = append(p.xRow, '-')
	p.midRow = append(p.midRow, 'x')
	p.yRow = append(p.yRow, y)
}

func (p *PrettyVisitor) VisitIns(x byte) {
	p.xRow = append(p.xRow, x)
	p.midRow = append(p.midRow, '+')
	p.yRow = append(p.yRow, '-')
}

func (p *PrettyVisitor) VisitXClip(x []byte) { p.VisitPrefixX(x) }

func (p *PrettyVisitor) VisitYClip(y []byte) { p.VisitPrefixY(y) }

func (p *PrettyVisitor) VisitSuffixX(x []byte) { p.VisitPrefixX(x) }

func (p *PrettyVisitor) VisitSuffixY(y []byte) { p.VisitPrefixY(y) }

// Finish paginates the three rows into blocks of ncol columns separated
// by blank lines.
func (p *PrettyVisitor) Finish() string {
	var s strings.Builder
	total := len(p.xRow)

	for idx := 0; idx < total; idx += p.ncol {
		end := min(idx+p.ncol, total)

		s.Write(p.xRow[idx:end])
		s.WriteByte('\n')
		s.Write(p.midRow[idx:end])
		s.WriteByte('\n')
		s.Write(p.yRow[idx:end])
		s.WriteByte('\n')
		s.WriteString("\n\n")
	}

	return s.String()
}

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(s string) AlignedSequence[rune] {
	return NewAlignedSequence([]rune(s))
}

func TestAlignedToken(t *testing.T) {
	tok := NewAlignedToken('a')
	assert.Equal(t, 1, tok.Count)
	assert.Equal(t, 'a', tok.Data)
}

func TestAlignedSequence(t *testing.T) {
	t.Run("fresh sequence", func(t *testing.T) {
		s := seq("abc")
		require.Len(t, s.Value, 3)
		for _, tok := range s.Value {
			assert.Equal(t, 1, tok.Count)
		}
		assert.Equal(t, 0, s.NumDeletedX)
		assert.Equal(t, 0, s.NumDeletedY)
	})

	t.Run("total matched sums support", func(t *testing.T) {
		s := seq("abc")
		assert.Equal(t, 3, s.TotalMatched())

		s.Value[1].Count = 5
		assert.Equal(t, 7, s.TotalMatched())
	})

	t.Run("payload projection", func(t *testing.T) {
		s := seq("abc")
		assert.Equal(t, []rune("abc"), s.Payload())
	})

	t.Run("join sums counters and concatenates", func(t *testing.T) {
		a, b := seq("ab"), seq("cd")
		a.NumDeletedX, a.NumDeletedY = 1, 2
		b.NumDeletedX, b.NumDeletedY = 3, 4

		joined := a.Join(b, nil)
		assert.Equal(t, "abcd", RuneString(joined))
		assert.Equal(t, 4, joined.NumDeletedX)
		assert.Equal(t, 6, joined.NumDeletedY)
	})

	t.Run("join with separator", func(t *testing.T) {
		joined := seq("ab").Join(seq("cd"), []rune(" "))
		assert.Equal(t, "ab cd", RuneString(joined))
		assert.Equal(t, 1, joined.Value[2].Count)
	})

	t.Run("string rendering", func(t *testing.T) {
		assert.Equal(t, "안녕", RuneString(seq("안녕")))
		assert.Equal(t, "abc", ByteString(NewAlignedSequence([]byte("abc"))))
	})
}

func TestMergeVisitorMatch(t *testing.T) {
	t.Run("support becomes max plus one", func(t *testing.T) {
		v := NewMergeVisitor[rune]()
		v.VisitMatch(AlignedToken[rune]{Count: 2, Data: 'a'}, AlignedToken[rune]{Count: 5, Data: 'a'})

		out := v.Finish()
		require.Len(t, out.Value, 1)
		assert.Equal(t, 6, out.Value[0].Count)
		assert.Equal(t, 'a', out.Value[0].Data)
		assert.Equal(t, 0, out.NumDeletedX)
		assert.Equal(t, 0, out.NumDeletedY)
	})

	t.Run("count stays at least one", func(t *testing.T) {
		v := NewMergeVisitor[rune]()
		v.VisitMatch(NewAlignedToken('a'), NewAlignedToken('a'))

		out := v.Finish()
		assert.Equal(t, 2, out.Value[0].Count)
	})
}

func TestMergeVisitorSubst(t *testing.T) {
	tests := []struct {
		name         string
		xCount       int
		yCount       int
		wantData     rune
		wantDeletedX int
		wantDeletedY int
	}{
		{"x better supported", 3, 1, 'x', 0, 1},
		{"y better supported", 1, 3, 'y', 1, 0},
		{"tie keeps the established side", 2, 2, 'x', 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewMergeVisitor[rune]()
			v.VisitSubst(
				AlignedToken[rune]{Count: tt.xCount, Data: 'x'},
				AlignedToken[rune]{Count: tt.yCount, Data: 'y'},
			)

			out := v.Finish()
			require.Len(t, out.Value, 1)
			assert.Equal(t, tt.wantData, out.Value[0].Data)
			assert.Equal(t, tt.wantDeletedX, out.NumDeletedX)
			assert.Equal(t, tt.wantDeletedY, out.NumDeletedY)
		})
	}
}

func TestMergeVisitorDel(t *testing.T) {
	t.Run("deletion drops the token but counts the loss", func(t *testing.T) {
		v := NewMergeVisitor[rune]()
		v.VisitDel(NewAlignedToken('z'))

		out := v.Finish()
		assert.Empty(t, out.Value)
		assert.Equal(t, 1, out.NumDeletedX)
	})

	t.Run("keep-all folds the deletion into a substitution", func(t *testing.T) {
		v := NewMergeVisitorKeepAll[rune]()
		v.VisitDel(NewAlignedToken('z'))

		out := v.Finish()
		require.Len(t, out.Value, 1)
		assert.Equal(t, 'z', out.Value[0].Data)
		assert.Equal(t, 1, out.NumDeletedX)
	})
}

func TestMergeVisitorSides(t *testing.T) {
	t.Run("x prefix retained, y prefix dropped", func(t *testing.T) {
		v := NewMergeVisitor[rune]()
		v.VisitPrefixX(seq("ab").Value)
		v.VisitPrefixY(seq("cd").Value)

		out := v.Finish()
		assert.Equal(t, "ab", RuneString(out))
		assert.Equal(t, 0, out.NumDeletedX)
		assert.Equal(t, 2, out.NumDeletedY)
	})

	t.Run("x suffix dropped, y suffix retained", func(t *testing.T) {
		v := NewMergeVisitor[rune]()
		v.VisitSuffixX(seq("ab").Value)
		v.VisitSuffixY(seq("cd").Value)

		out := v.Finish()
		assert.Equal(t, "cd", RuneString(out))
		assert.Equal(t, 2, out.NumDeletedX)
		assert.Equal(t, 0, out.NumDeletedY)
	})

	t.Run("clips behave like prefixes", func(t *testing.T) {
		v := NewMergeVisitor[rune]()
		v.VisitXClip(seq("ab").Value)
		v.VisitYClip(seq("cd").Value)

		out := v.Finish()
		assert.Equal(t, "ab", RuneString(out))
		assert.Equal(t, 2, out.NumDeletedY)
	})

	t.Run("insertion keeps the x token", func(t *testing.T) {
		v := NewMergeVisitor[rune]()
		v.VisitIns(NewAlignedToken('q'))

		out := v.Finish()
		assert.Equal(t, "q", RuneString(out))
		assert.Equal(t, 0, out.NumDeletedX)
		assert.Equal(t, 0, out.NumDeletedY)
	})
}

package token

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type startEnd struct{ s, e Pos }

func (se startEnd) Span() (start, end Pos) { return se.s, se.e }

func TestPosInside(t *testing.T) {
	cases := []struct {
		ref, test startEnd
		want      bool
	}{
		{startEnd{1, 2}, startEnd{3, 4}, false},
		{startEnd{1, 3}, startEnd{3, 4}, false},
		{startEnd{1, 4}, startEnd{3, 4}, true},
		{startEnd{2, 4}, startEnd{3, 4}, true},
		{startEnd{3, 4}, startEnd{3, 4}, true},
		{startEnd{4, 5}, startEnd{3, 4}, false},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v-%v", c.ref, c.test), func(t *testing.T) {
			require.Equal(t, c.want, PosInside(c.ref, c.test))
		})
	}
}

func TestFilePosition(t *testing.T) {
	fs := NewFileSet()
	f := fs.AddFile("test", 10)
	f.AddLine(3)
	f.AddLine(5)
	f.AddLine(8)

	cases := []struct {
		off  int
		line int
		col  int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{4, 2, 2},
		{5, 3, 1},
		{8, 4, 1},
	}
	for _, c := range cases {
		p := f.Pos(c.off)
		pos := f.Position(p)
		require.Equal(t, c.line, pos.Line, "offset %d line", c.off)
		require.Equal(t, c.col, pos.Column, "offset %d col", c.off)
	}
}

func TestFormatPos(t *testing.T) {
	fs := NewFileSet()
	f0 := fs.AddFile("test", 10)
	f1 := fs.AddFile("test_next", 10)

	cases := []struct {
		pos  Pos
		mode PosMode
		file *File
		want string
	}{
		{NoPos, PosLong, f0, "test:-:-"},
		{NoPos, PosOffsets, f0, "-"},
		{NoPos, PosNone, f0, ""},
		{f0.Pos(0), PosLong, f0, "test:1:1"},
		{f0.Pos(0), PosOffsets, f0, "0"},
		{f0.Pos(9), PosLong, f0, "test:1:10"},
		{f1.Pos(0), PosLong, f1, "test_next:1:1"},
	}
	for _, c := range cases {
		got := FormatPos(c.pos, c.mode, c.file)
		require.Equal(t, c.want, got)
	}
}

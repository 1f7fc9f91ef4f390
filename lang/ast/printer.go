package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/cbellis/pyrint/lang/token"
)

// Printer controls pretty-printing of the AST, mostly useful for debugging.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// Pos indicates the position printing mode.
	Pos token.PosMode

	// NodeFmt is the format string to use for each node. The verb must be
	// either 's' or 'v'; width, '#' and '-' flags are supported the same way
	// Node.Format supports them. Defaults to "%v".
	NodeFmt string
}

// Print pretty-prints the AST rooted at n. file is required unless
// p.Pos == token.PosNone.
func (p *Printer) Print(n Node, file *token.File) error {
	pp := &printer{w: p.Output, pos: p.Pos, nodeFmt: p.NodeFmt, file: file}
	if pp.nodeFmt == "" {
		pp.nodeFmt = "%v"
	}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w       io.Writer
	pos     token.PosMode
	nodeFmt string
	file    *token.File
	depth   int
	err     error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}
	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}

	format := "%s"
	args := []interface{}{strings.Repeat(". ", indent)}
	if p.pos != token.PosNone {
		format += "[%s:%s] "
		start, end := n.Span()
		args = append(args, token.FormatPos(start, p.pos, p.file), token.FormatPos(end, p.pos, p.file))
	}
	format += p.nodeFmt + "\n"
	args = append(args, n)

	_, p.err = fmt.Fprintf(p.w, format, args...)
}

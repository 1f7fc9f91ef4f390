// Package ast defines the abstract syntax tree produced by lang/parser and
// consumed by lang/resolver, lang/flowctx, lang/assign and lang/check. Node
// identities and source positions are immutable once built; nothing
// downstream mutates the tree shape, only the auxiliary Binding field that
// the resolver attaches to each Name.
package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cbellis/pyrint/lang/token"
)

// Node is implemented by every AST node.
type Node interface {
	fmt.Formatter
	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)
	// Walk visits the node's direct children in source order.
	Walk(v Visitor)
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
	// BlockEnding reports whether this statement unconditionally transfers
	// control out of its block (return, break, continue, raise). The parser
	// accepts further statements after one in the same block.
	BlockEnding() bool
	// IsLoop reports whether this statement introduces a loop body.
	IsLoop() bool
}

// Binding is a marker interface implemented by lang/resolver.Binding. It
// exists so that ast.Name can carry resolution results without lang/ast
// importing lang/resolver (which itself must import lang/ast).
type Binding interface {
	isBinding()
}

// BindingMarker must be embedded (by value) in any type outside this
// package that implements Binding, since isBinding is unexported and
// therefore otherwise only satisfiable from within package ast.
type BindingMarker struct{}

func (BindingMarker) isBinding() {}

// Module is the root of a single file's AST.
type Module struct {
	Name  string // file name, used for diagnostics
	Body  []Stmt
	Start token.Pos
	End   token.Pos
}

func (n *Module) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *Module) Walk(v Visitor) {
	for _, s := range n.Body {
		Walk(v, s)
	}
}
func (n *Module) Format(f fmt.State, verb rune) { format(f, verb, n, "module", map[string]int{"stmts": len(n.Body)}) }

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⏮")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		switch {
		case len(runes) >= w:
			runes = runes[:w]
		case minus:
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		case !plus:
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}

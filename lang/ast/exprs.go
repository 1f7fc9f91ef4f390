package ast

import (
	"fmt"

	"github.com/cbellis/pyrint/lang/token"
)

func (*Name) exprNode()          {}
func (*Constant) exprNode()      {}
func (*Attribute) exprNode()     {}
func (*Subscript) exprNode()     {}
func (*Call) exprNode()          {}
func (*ListExpr) exprNode()      {}
func (*SetExpr) exprNode()       {}
func (*TupleExpr) exprNode()     {}
func (*DictExpr) exprNode()      {}
func (*StarredExpr) exprNode()   {}
func (*Comprehension) exprNode() {}
func (*Compare) exprNode()       {}
func (*BinOp) exprNode()         {}
func (*UnaryOp) exprNode()       {}
func (*BoolOp) exprNode()        {}
func (*Lambda) exprNode()        {}
func (*IfExp) exprNode()         {}
func (*Yield) exprNode()         {}

// CompKind distinguishes the four comprehension shapes.
type CompKind int

const (
	ListComp CompKind = iota
	SetComp
	DictComp
	GeneratorExp
)

// ConstKind values.
const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstString
	ConstBytes
	ConstBool
	ConstNone
)

type (
	// Name is a bare identifier reference, either a use or (when it appears as
	// an assignment/parameter/for/with/except/import/global/nonlocal target) a
	// binding site. The resolver fills in Binding for every Name it visits as
	// a use.
	Name struct {
		Id      string
		Binding Binding
		Start   token.Pos
	}

	// ConstKind tags the kind of literal value a Constant holds.
	ConstKind int

	// Constant is a literal atom: a number, string, bytes, bool or None.
	Constant struct {
		Kind  ConstKind
		Raw   string // source text, used by checkers that need the literal form
		Int   int64
		Float float64
		Str   string
		Start token.Pos
		End   token.Pos
	}

	// Attribute represents "value.attr".
	Attribute struct {
		Value Expr
		Attr  string
		End   token.Pos
	}

	// Subscript represents "value[index]".
	Subscript struct {
		Value Expr
		Index Expr
		End   token.Pos
	}

	// Keyword is a "name=value" call argument or class-definition keyword.
	Keyword struct {
		Name  *Name // nil for "**value"
		Value Expr
	}

	// Call represents "fn(args..., name=value..., *star, **dstar)".
	Call struct {
		Fn       Expr
		Args     []Expr
		Keywords []*Keyword
		End      token.Pos
	}

	// ListExpr represents a "[a, b, c]" literal.
	ListExpr struct {
		Elts  []Expr
		Start token.Pos
		End   token.Pos
	}

	// SetExpr represents a "{a, b, c}" literal.
	SetExpr struct {
		Elts  []Expr
		Start token.Pos
		End   token.Pos
	}

	// TupleExpr represents a "(a, b, c)" or bare "a, b, c" literal.
	TupleExpr struct {
		Elts  []Expr
		Start token.Pos
		End   token.Pos
	}

	// DictExpr represents a "{k: v, **rest}" literal. A nil element of Keys
	// at index i means Values[i] is a "**rest" unpacking.
	DictExpr struct {
		Keys   []Expr
		Values []Expr
		Start  token.Pos
		End    token.Pos
	}

	// StarredExpr represents "*expr" used as an assignment target or call
	// argument.
	StarredExpr struct {
		Value Expr
		Start token.Pos
	}

	// CompClause is one "for target in iter [if cond]*" clause of a
	// comprehension.
	CompClause struct {
		IsAsync bool
		Target  Expr
		Iter    Expr
		Ifs     []Expr
	}

	// Comprehension represents a list/set/dict/generator comprehension. Key is
	// non-nil only for DictComp.
	Comprehension struct {
		Kind       CompKind
		Element    Expr
		Key        Expr // dict comprehension key, nil otherwise
		Generators []*CompClause
		Start      token.Pos
		End        token.Pos
	}

	// Compare represents a comparison chain "a op b op c ...".
	Compare struct {
		Left        Expr
		Ops         []token.Token
		Comparators []Expr
		End         token.Pos
	}

	// BinOp represents "left op right".
	BinOp struct {
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// UnaryOp represents "op operand".
	UnaryOp struct {
		Op      token.Token
		Operand Expr
		Start   token.Pos
	}

	// BoolOp represents a chain of "and"/"or" with the same operator.
	BoolOp struct {
		Op     token.Token // AND or OR
		Values []Expr
	}

	// Lambda represents "lambda params: body".
	Lambda struct {
		Params *Params
		Body   Expr
		Start  token.Pos
	}

	// IfExp represents the conditional expression "body if cond else orelse".
	IfExp struct {
		Body   Expr
		Cond   Expr
		Orelse Expr
	}

	// Yield represents "yield value" or "yield from value".
	Yield struct {
		Value  Expr // nil for a bare "yield"
		IsFrom bool
		Start  token.Pos
		End    token.Pos
	}
)

func (n *Name) Span() (token.Pos, token.Pos) { return n.Start, n.Start + token.Pos(len(n.Id)) }
func (n *Constant) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Attribute) Span() (token.Pos, token.Pos) {
	s, _ := n.Value.Span()
	return s, n.End
}
func (n *Subscript) Span() (token.Pos, token.Pos) {
	s, _ := n.Value.Span()
	return s, n.End
}
func (n *Call) Span() (token.Pos, token.Pos) {
	s, _ := n.Fn.Span()
	return s, n.End
}
func (n *ListExpr) Span() (token.Pos, token.Pos)      { return n.Start, n.End }
func (n *SetExpr) Span() (token.Pos, token.Pos)       { return n.Start, n.End }
func (n *TupleExpr) Span() (token.Pos, token.Pos)     { return n.Start, n.End }
func (n *DictExpr) Span() (token.Pos, token.Pos)      { return n.Start, n.End }
func (n *StarredExpr) Span() (token.Pos, token.Pos) {
	_, e := n.Value.Span()
	return n.Start, e
}
func (n *Comprehension) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Compare) Span() (token.Pos, token.Pos) {
	s, _ := n.Left.Span()
	return s, n.End
}
func (n *BinOp) Span() (token.Pos, token.Pos) {
	s, _ := n.Left.Span()
	_, e := n.Right.Span()
	return s, e
}
func (n *UnaryOp) Span() (token.Pos, token.Pos) {
	_, e := n.Operand.Span()
	return n.Start, e
}
func (n *BoolOp) Span() (token.Pos, token.Pos) {
	s, _ := n.Values[0].Span()
	_, e := n.Values[len(n.Values)-1].Span()
	return s, e
}
func (n *Lambda) Span() (token.Pos, token.Pos) {
	_, e := n.Body.Span()
	return n.Start, e
}
func (n *IfExp) Span() (token.Pos, token.Pos) {
	s, _ := n.Body.Span()
	_, e := n.Orelse.Span()
	return s, e
}
func (n *Yield) Span() (token.Pos, token.Pos) { return n.Start, n.End }

func (n *Name) Walk(Visitor) {}
func (n *Constant) Walk(Visitor) {}
func (n *Attribute) Walk(v Visitor) { Walk(v, n.Value) }
func (n *Subscript) Walk(v Visitor) {
	Walk(v, n.Value)
	Walk(v, n.Index)
}
func (n *Call) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, a := range n.Args {
		Walk(v, a)
	}
	for _, kw := range n.Keywords {
		Walk(v, kw.Value)
	}
}
func (n *ListExpr) Walk(v Visitor) {
	for _, e := range n.Elts {
		Walk(v, e)
	}
}
func (n *SetExpr) Walk(v Visitor) {
	for _, e := range n.Elts {
		Walk(v, e)
	}
}
func (n *TupleExpr) Walk(v Visitor) {
	for _, e := range n.Elts {
		Walk(v, e)
	}
}
func (n *DictExpr) Walk(v Visitor) {
	for i, k := range n.Keys {
		if k != nil {
			Walk(v, k)
		}
		Walk(v, n.Values[i])
	}
}
func (n *StarredExpr) Walk(v Visitor) { Walk(v, n.Value) }
func (n *Comprehension) Walk(v Visitor) {
	// the first clause's Iter is evaluated in the enclosing scope but is still
	// a child of this node for traversal purposes.
	for _, g := range n.Generators {
		Walk(v, g.Iter)
		Walk(v, g.Target)
		for _, c := range g.Ifs {
			Walk(v, c)
		}
	}
	if n.Key != nil {
		Walk(v, n.Key)
	}
	Walk(v, n.Element)
}
func (n *Compare) Walk(v Visitor) {
	Walk(v, n.Left)
	for _, c := range n.Comparators {
		Walk(v, c)
	}
}
func (n *BinOp) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *UnaryOp) Walk(v Visitor) { Walk(v, n.Operand) }
func (n *BoolOp) Walk(v Visitor) {
	for _, e := range n.Values {
		Walk(v, e)
	}
}
func (n *Lambda) Walk(v Visitor) {
	if n.Params != nil {
		for _, p := range allParams(n.Params) {
			if p.Default != nil {
				Walk(v, p.Default)
			}
		}
	}
	Walk(v, n.Body)
}
func (n *IfExp) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
	Walk(v, n.Orelse)
}
func (n *Yield) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}

func (n *Name) Format(f fmt.State, verb rune)      { format(f, verb, n, "name "+n.Id, nil) }
func (n *Constant) Format(f fmt.State, verb rune)  { format(f, verb, n, "const "+n.Raw, nil) }
func (n *Attribute) Format(f fmt.State, verb rune) { format(f, verb, n, "attr ."+n.Attr, nil) }
func (n *Subscript) Format(f fmt.State, verb rune) { format(f, verb, n, "subscript", nil) }
func (n *Call) Format(f fmt.State, verb rune)      { format(f, verb, n, "call", map[string]int{"args": len(n.Args)}) }
func (n *ListExpr) Format(f fmt.State, verb rune)  { format(f, verb, n, "list", map[string]int{"elts": len(n.Elts)}) }
func (n *SetExpr) Format(f fmt.State, verb rune)   { format(f, verb, n, "set", map[string]int{"elts": len(n.Elts)}) }
func (n *TupleExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "tuple", map[string]int{"elts": len(n.Elts)}) }
func (n *DictExpr) Format(f fmt.State, verb rune)  { format(f, verb, n, "dict", map[string]int{"items": len(n.Keys)}) }
func (n *StarredExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "starred", nil) }
func (n *Comprehension) Format(f fmt.State, verb rune) {
	format(f, verb, n, "comprehension", map[string]int{"generators": len(n.Generators)})
}
func (n *Compare) Format(f fmt.State, verb rune)  { format(f, verb, n, "compare", nil) }
func (n *BinOp) Format(f fmt.State, verb rune)    { format(f, verb, n, "binop "+n.Op.String(), nil) }
func (n *UnaryOp) Format(f fmt.State, verb rune)  { format(f, verb, n, "unaryop "+n.Op.String(), nil) }
func (n *BoolOp) Format(f fmt.State, verb rune)   { format(f, verb, n, "boolop "+n.Op.String(), nil) }
func (n *Lambda) Format(f fmt.State, verb rune)   { format(f, verb, n, "lambda", nil) }
func (n *IfExp) Format(f fmt.State, verb rune)    { format(f, verb, n, "ifexp", nil) }
func (n *Yield) Format(f fmt.State, verb rune) {
	label := "yield"
	if n.IsFrom {
		label = "yield from"
	}
	format(f, verb, n, label, nil)
}

package ast

import (
	"fmt"

	"github.com/cbellis/pyrint/lang/token"
)

func (*FuncDef) stmtNode()     {}
func (*ClassDef) stmtNode()    {}
func (*Assign) stmtNode()      {}
func (*ExprStmt) stmtNode()    {}
func (*For) stmtNode()         {}
func (*While) stmtNode()       {}
func (*If) stmtNode()          {}
func (*Try) stmtNode()         {}
func (*With) stmtNode()        {}
func (*Raise) stmtNode()       {}
func (*Return) stmtNode()      {}
func (*Break) stmtNode()       {}
func (*Continue) stmtNode()    {}
func (*Pass) stmtNode()        {}
func (*Global) stmtNode()      {}
func (*Nonlocal) stmtNode()    {}
func (*Import) stmtNode()      {}
func (*ImportFrom) stmtNode()  {}
func (*Delete) stmtNode()      {}
func (*Assert) stmtNode()      {}

func (*FuncDef) BlockEnding() bool     { return false }
func (*ClassDef) BlockEnding() bool    { return false }
func (*Assign) BlockEnding() bool      { return false }
func (*ExprStmt) BlockEnding() bool    { return false }
func (*For) BlockEnding() bool         { return false }
func (*While) BlockEnding() bool       { return false }
func (*If) BlockEnding() bool          { return false }
func (*Try) BlockEnding() bool         { return false }
func (*With) BlockEnding() bool        { return false }
func (*Raise) BlockEnding() bool       { return true }
func (*Return) BlockEnding() bool      { return true }
func (*Break) BlockEnding() bool       { return true }
func (*Continue) BlockEnding() bool    { return true }
func (*Pass) BlockEnding() bool        { return false }
func (*Global) BlockEnding() bool      { return false }
func (*Nonlocal) BlockEnding() bool    { return false }
func (*Import) BlockEnding() bool      { return false }
func (*ImportFrom) BlockEnding() bool  { return false }
func (*Delete) BlockEnding() bool      { return false }
func (*Assert) BlockEnding() bool      { return false }

func (*FuncDef) IsLoop() bool    { return false }
func (*ClassDef) IsLoop() bool   { return false }
func (*Assign) IsLoop() bool     { return false }
func (*ExprStmt) IsLoop() bool   { return false }
func (*For) IsLoop() bool        { return true }
func (*While) IsLoop() bool      { return true }
func (*If) IsLoop() bool         { return false }
func (*Try) IsLoop() bool        { return false }
func (*With) IsLoop() bool       { return false }
func (*Raise) IsLoop() bool      { return false }
func (*Return) IsLoop() bool     { return false }
func (*Break) IsLoop() bool      { return false }
func (*Continue) IsLoop() bool   { return false }
func (*Pass) IsLoop() bool       { return false }
func (*Global) IsLoop() bool     { return false }
func (*Nonlocal) IsLoop() bool   { return false }
func (*Import) IsLoop() bool     { return false }
func (*ImportFrom) IsLoop() bool { return false }
func (*Delete) IsLoop() bool     { return false }
func (*Assert) IsLoop() bool     { return false }

type (
	// Param represents one function parameter.
	Param struct {
		Name       *Name
		Annotation Expr
		Default    Expr // nil if no default value
	}

	// Params groups a function's parameters per kind, in source order within
	// each kind.
	Params struct {
		PosOnly  []*Param // parameters before a bare '/' marker
		PosOrKw  []*Param // ordinary positional-or-keyword parameters
		VarArg   *Param   // *args, nil if absent
		KwOnly   []*Param // parameters after '*' or '*args'
		KwArg    *Param   // **kwargs, nil if absent
	}

	// FuncDef represents "def name(...): ..." or "async def name(...): ...".
	FuncDef struct {
		IsAsync    bool
		Decorators []Expr
		Name       *Name
		Params     *Params
		Returns    Expr // return type annotation, may be nil
		Body       []Stmt
		Start      token.Pos
		End        token.Pos
	}

	// ClassDef represents "class Name(bases...): ...".
	ClassDef struct {
		Decorators []Expr
		Name       *Name
		Bases      []Expr
		Keywords   []*Keyword
		Body       []Stmt
		Start      token.Pos
		End        token.Pos
	}

	// Assign represents a simple, tuple, starred, augmented or annotated
	// assignment. Op is token.ASSIGN for a plain "=" assignment or the
	// specific augmented operator (e.g. token.PLUS_EQ) for "x += 1". For an
	// annotated assignment ("x: int = 1" or bare "x: int"), Annotation is set
	// and Value may be nil.
	Assign struct {
		Targets    []Expr // len > 1 only for chained assignment "a = b = 1"
		Op         token.Token
		Value      Expr
		Annotation Expr
		Start      token.Pos
		End        token.Pos
	}

	// ExprStmt is an expression used as a statement (e.g. a bare call).
	ExprStmt struct {
		X     Expr
		Start token.Pos
		End   token.Pos
	}

	// For represents "for target in iter: body [else: orelse]".
	For struct {
		IsAsync bool
		Target  Expr
		Iter    Expr
		Body    []Stmt
		Orelse  []Stmt
		Start   token.Pos
		End     token.Pos
	}

	// While represents "while cond: body [else: orelse]".
	While struct {
		Cond   Expr
		Body   []Stmt
		Orelse []Stmt
		Start  token.Pos
		End    token.Pos
	}

	// If represents "if cond: body [else: orelse]"; "elif" chains are
	// represented as a single-statement Orelse containing a nested *If.
	If struct {
		Cond   Expr
		Body   []Stmt
		Orelse []Stmt
		Start  token.Pos
		End    token.Pos
	}

	// ExceptClause represents one "except [Type [as Name]]: body" clause.
	ExceptClause struct {
		Type  Expr // nil for a bare "except:"
		Name  *Name
		Body  []Stmt
		Start token.Pos
		End   token.Pos
	}

	// Try represents "try: body  except...  else: orelse  finally: final".
	Try struct {
		Body     []Stmt
		Handlers []*ExceptClause
		Orelse   []Stmt
		Final    []Stmt
		Start    token.Pos
		End      token.Pos
	}

	// WithItem is one "ctx [as target]" clause of a with statement.
	WithItem struct {
		Ctx    Expr
		Target Expr // nil if no "as" clause
	}

	// With represents "with item, item: body" (sync or async).
	With struct {
		IsAsync bool
		Items   []*WithItem
		Body    []Stmt
		Start   token.Pos
		End     token.Pos
	}

	// Raise represents "raise", "raise exc" or "raise exc from cause".
	Raise struct {
		Exc   Expr
		Cause Expr
		Start token.Pos
		End   token.Pos
	}

	// Return represents "return" or "return value".
	Return struct {
		Value Expr // nil for bare return
		Start token.Pos
		End   token.Pos
	}

	// Break represents a "break" statement.
	Break struct {
		Start token.Pos
		End   token.Pos
	}

	// Continue represents a "continue" statement.
	Continue struct {
		Start token.Pos
		End   token.Pos
	}

	// Pass represents a "pass" statement.
	Pass struct {
		Start token.Pos
		End   token.Pos
	}

	// Global represents "global name, name, ...".
	Global struct {
		Names []*Name
		Start token.Pos
		End   token.Pos
	}

	// Nonlocal represents "nonlocal name, name, ...".
	Nonlocal struct {
		Names []*Name
		Start token.Pos
		End   token.Pos
	}

	// ImportAlias is one "module [as asname]" or "name [as asname]" item.
	ImportAlias struct {
		Path   string // dotted module path, or bare name for from-imports
		AsName *Name  // nil if no "as" clause
	}

	// Import represents "import a.b.c [as d], ...".
	Import struct {
		Names []*ImportAlias
		Start token.Pos
		End   token.Pos
	}

	// ImportFrom represents "from module import a [as b], ...".
	ImportFrom struct {
		Module string
		Level  int // number of leading dots, for relative imports
		Names  []*ImportAlias
		Start  token.Pos
		End    token.Pos
	}

	// Delete represents "del target, target, ...".
	Delete struct {
		Targets []Expr
		Start   token.Pos
		End     token.Pos
	}

	// Assert represents "assert cond[, msg]".
	Assert struct {
		Cond  Expr
		Msg   Expr
		Start token.Pos
		End   token.Pos
	}
)

func (n *FuncDef) Span() (token.Pos, token.Pos)     { return n.Start, n.End }
func (n *ClassDef) Span() (token.Pos, token.Pos)    { return n.Start, n.End }
func (n *Assign) Span() (token.Pos, token.Pos)      { return n.Start, n.End }
func (n *ExprStmt) Span() (token.Pos, token.Pos)    { return n.Start, n.End }
func (n *For) Span() (token.Pos, token.Pos)         { return n.Start, n.End }
func (n *While) Span() (token.Pos, token.Pos)       { return n.Start, n.End }
func (n *If) Span() (token.Pos, token.Pos)          { return n.Start, n.End }
func (n *Try) Span() (token.Pos, token.Pos)         { return n.Start, n.End }
func (n *Param) Span() (start, end token.Pos) {
	start, end = n.Name.Span()
	if n.Annotation != nil {
		_, end = n.Annotation.Span()
	}
	if n.Default != nil {
		_, end = n.Default.Span()
	}
	return start, end
}
func (n *ExceptClause) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *With) Span() (token.Pos, token.Pos)        { return n.Start, n.End }
func (n *Raise) Span() (token.Pos, token.Pos)       { return n.Start, n.End }
func (n *Return) Span() (token.Pos, token.Pos)      { return n.Start, n.End }
func (n *Break) Span() (token.Pos, token.Pos)       { return n.Start, n.End }
func (n *Continue) Span() (token.Pos, token.Pos)    { return n.Start, n.End }
func (n *Pass) Span() (token.Pos, token.Pos)        { return n.Start, n.End }
func (n *Global) Span() (token.Pos, token.Pos)      { return n.Start, n.End }
func (n *Nonlocal) Span() (token.Pos, token.Pos)    { return n.Start, n.End }
func (n *Import) Span() (token.Pos, token.Pos)      { return n.Start, n.End }
func (n *ImportFrom) Span() (token.Pos, token.Pos)  { return n.Start, n.End }
func (n *Delete) Span() (token.Pos, token.Pos)      { return n.Start, n.End }
func (n *Assert) Span() (token.Pos, token.Pos)      { return n.Start, n.End }

func (n *FuncDef) Walk(v Visitor) {
	for _, d := range n.Decorators {
		Walk(v, d)
	}
	Walk(v, n.Name)
	if n.Params != nil {
		for _, p := range allParams(n.Params) {
			Walk(v, p.Name)
			if p.Annotation != nil {
				Walk(v, p.Annotation)
			}
			if p.Default != nil {
				Walk(v, p.Default)
			}
		}
	}
	if n.Returns != nil {
		Walk(v, n.Returns)
	}
	for _, s := range n.Body {
		Walk(v, s)
	}
}

// allParams returns every parameter of sig in declaration order.
func allParams(sig *Params) []*Param {
	var out []*Param
	out = append(out, sig.PosOnly...)
	out = append(out, sig.PosOrKw...)
	if sig.VarArg != nil {
		out = append(out, sig.VarArg)
	}
	out = append(out, sig.KwOnly...)
	if sig.KwArg != nil {
		out = append(out, sig.KwArg)
	}
	return out
}

func (n *ClassDef) Walk(v Visitor) {
	for _, d := range n.Decorators {
		Walk(v, d)
	}
	Walk(v, n.Name)
	for _, b := range n.Bases {
		Walk(v, b)
	}
	for _, kw := range n.Keywords {
		Walk(v, kw.Value)
	}
	for _, s := range n.Body {
		Walk(v, s)
	}
}

func (n *Assign) Walk(v Visitor) {
	for _, t := range n.Targets {
		Walk(v, t)
	}
	if n.Annotation != nil {
		Walk(v, n.Annotation)
	}
	if n.Value != nil {
		Walk(v, n.Value)
	}
}

func (n *ExprStmt) Walk(v Visitor) { Walk(v, n.X) }

func (n *For) Walk(v Visitor) {
	Walk(v, n.Iter)
	Walk(v, n.Target)
	for _, s := range n.Body {
		Walk(v, s)
	}
	for _, s := range n.Orelse {
		Walk(v, s)
	}
}

func (n *While) Walk(v Visitor) {
	Walk(v, n.Cond)
	for _, s := range n.Body {
		Walk(v, s)
	}
	for _, s := range n.Orelse {
		Walk(v, s)
	}
}

func (n *If) Walk(v Visitor) {
	Walk(v, n.Cond)
	for _, s := range n.Body {
		Walk(v, s)
	}
	for _, s := range n.Orelse {
		Walk(v, s)
	}
}

func (n *Param) Walk(v Visitor) {
	Walk(v, n.Name)
	if n.Annotation != nil {
		Walk(v, n.Annotation)
	}
	if n.Default != nil {
		Walk(v, n.Default)
	}
}

func (n *ExceptClause) Walk(v Visitor) {
	if n.Type != nil {
		Walk(v, n.Type)
	}
	if n.Name != nil {
		Walk(v, n.Name)
	}
	for _, s := range n.Body {
		Walk(v, s)
	}
}

func (n *Try) Walk(v Visitor) {
	for _, s := range n.Body {
		Walk(v, s)
	}
	for _, h := range n.Handlers {
		Walk(v, h)
	}
	for _, s := range n.Orelse {
		Walk(v, s)
	}
	for _, s := range n.Final {
		Walk(v, s)
	}
}

func (n *With) Walk(v Visitor) {
	for _, it := range n.Items {
		Walk(v, it.Ctx)
		if it.Target != nil {
			Walk(v, it.Target)
		}
	}
	for _, s := range n.Body {
		Walk(v, s)
	}
}

func (n *Raise) Walk(v Visitor) {
	if n.Exc != nil {
		Walk(v, n.Exc)
	}
	if n.Cause != nil {
		Walk(v, n.Cause)
	}
}

func (n *Return) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}

func (n *Break) Walk(Visitor)    {}
func (n *Continue) Walk(Visitor) {}
func (n *Pass) Walk(Visitor)     {}

func (n *Global) Walk(v Visitor) {
	for _, id := range n.Names {
		Walk(v, id)
	}
}

func (n *Nonlocal) Walk(v Visitor) {
	for _, id := range n.Names {
		Walk(v, id)
	}
}

func (n *Import) Walk(v Visitor) {
	for _, a := range n.Names {
		if a.AsName != nil {
			Walk(v, a.AsName)
		}
	}
}

func (n *ImportFrom) Walk(v Visitor) {
	for _, a := range n.Names {
		if a.AsName != nil {
			Walk(v, a.AsName)
		}
	}
}

func (n *Delete) Walk(v Visitor) {
	for _, t := range n.Targets {
		Walk(v, t)
	}
}

func (n *Assert) Walk(v Visitor) {
	Walk(v, n.Cond)
	if n.Msg != nil {
		Walk(v, n.Msg)
	}
}

func (n *FuncDef) Format(f fmt.State, verb rune) {
	lbl := "def " + n.Name.Id
	format(f, verb, n, lbl, map[string]int{"stmts": len(n.Body)})
}
func (n *ClassDef) Format(f fmt.State, verb rune) {
	format(f, verb, n, "class "+n.Name.Id, map[string]int{"stmts": len(n.Body)})
}
func (n *Assign) Format(f fmt.State, verb rune)     { format(f, verb, n, "assign", nil) }
func (n *ExprStmt) Format(f fmt.State, verb rune)   { format(f, verb, n, "expr-stmt", nil) }
func (n *For) Format(f fmt.State, verb rune)        { format(f, verb, n, "for", nil) }
func (n *While) Format(f fmt.State, verb rune)      { format(f, verb, n, "while", nil) }
func (n *If) Format(f fmt.State, verb rune)         { format(f, verb, n, "if", nil) }
func (n *Param) Format(f fmt.State, verb rune)        { format(f, verb, n, "param "+n.Name.Id, nil) }
func (n *ExceptClause) Format(f fmt.State, verb rune) { format(f, verb, n, "except", nil) }
func (n *Try) Format(f fmt.State, verb rune)        { format(f, verb, n, "try", nil) }
func (n *With) Format(f fmt.State, verb rune)       { format(f, verb, n, "with", nil) }
func (n *Raise) Format(f fmt.State, verb rune)      { format(f, verb, n, "raise", nil) }
func (n *Return) Format(f fmt.State, verb rune)     { format(f, verb, n, "return", nil) }
func (n *Break) Format(f fmt.State, verb rune)      { format(f, verb, n, "break", nil) }
func (n *Continue) Format(f fmt.State, verb rune)   { format(f, verb, n, "continue", nil) }
func (n *Pass) Format(f fmt.State, verb rune)       { format(f, verb, n, "pass", nil) }
func (n *Global) Format(f fmt.State, verb rune)     { format(f, verb, n, "global", nil) }
func (n *Nonlocal) Format(f fmt.State, verb rune)   { format(f, verb, n, "nonlocal", nil) }
func (n *Import) Format(f fmt.State, verb rune)     { format(f, verb, n, "import", nil) }
func (n *ImportFrom) Format(f fmt.State, verb rune) { format(f, verb, n, "from-import", nil) }
func (n *Delete) Format(f fmt.State, verb rune)     { format(f, verb, n, "del", nil) }
func (n *Assert) Format(f fmt.State, verb rune)     { format(f, verb, n, "assert", nil) }

package parser

import (
	"github.com/cbellis/pyrint/lang/ast"
	"github.com/cbellis/pyrint/lang/token"
)

// parseStmts parses the next logical line into dst: one compound statement
// (with its own suite), or the full ';'-separated list of simple statements
// on the line.
func (p *parser) parseStmts(dst []ast.Stmt) []ast.Stmt {
	switch p.tok {
	case token.DEF:
		return append(dst, p.parseFuncDef(false, nil))
	case token.ASYNC:
		return append(dst, p.parseAsyncStmt(nil))
	case token.CLASS:
		return append(dst, p.parseClassDef(nil))
	case token.IF:
		return append(dst, p.parseIf())
	case token.WHILE:
		return append(dst, p.parseWhile())
	case token.FOR:
		return append(dst, p.parseFor(false))
	case token.TRY:
		return append(dst, p.parseTry())
	case token.WITH:
		return append(dst, p.parseWith(false))
	case token.ATSIGN:
		return append(dst, p.parseDecorated())
	default:
		return append(dst, p.parseSimpleStmtLine()...)
	}
}

func (p *parser) parseDecorated() ast.Stmt {
	var decorators []ast.Expr
	for p.tok == token.ATSIGN {
		p.next()
		e := p.parseExpr()
		p.expect(token.NEWLINE)
		decorators = append(decorators, e)
	}
	switch p.tok {
	case token.DEF:
		return p.parseFuncDef(false, decorators)
	case token.ASYNC:
		return p.parseAsyncStmt(decorators)
	case token.CLASS:
		return p.parseClassDef(decorators)
	default:
		p.errorf(p.pos(), "expected a function or class definition after decorator")
		p.syncStmt()
		return &ast.Pass{Start: p.pos(), End: p.pos()}
	}
}

func (p *parser) parseAsyncStmt(decorators []ast.Expr) ast.Stmt {
	p.next() // 'async'
	switch p.tok {
	case token.DEF:
		return p.parseFuncDef(true, decorators)
	case token.FOR:
		return p.parseFor(true)
	case token.WITH:
		return p.parseWith(true)
	default:
		p.errorf(p.pos(), "expected 'def', 'for' or 'with' after 'async'")
		p.syncStmt()
		return &ast.Pass{Start: p.pos(), End: p.pos()}
	}
}

func (p *parser) parseFuncDef(isAsync bool, decorators []ast.Expr) *ast.FuncDef {
	start := p.pos()
	p.expect(token.DEF)
	name := p.parseName()
	params := p.parseParams()
	var returns ast.Expr
	if p.accept(token.ARROW) {
		returns = p.parseExpr()
	}
	p.expect(token.COLON)
	body := p.parseBlock()
	return &ast.FuncDef{
		IsAsync: isAsync, Decorators: decorators, Name: name, Params: params,
		Returns: returns, Body: body, Start: start, End: p.pos(),
	}
}

func (p *parser) parseParams() *ast.Params {
	p.expect(token.LPAREN)
	params := &ast.Params{}
	sawStar := false
	for p.tok != token.RPAREN && p.tok != token.EOF {
		switch p.tok {
		case token.STAR:
			p.next()
			sawStar = true
			if p.tok == token.IDENT {
				params.VarArg = p.parseOneParam()
			}
		case token.DOUBLESTAR:
			p.next()
			params.KwArg = p.parseOneParam()
		case token.SLASH:
			p.next()
			params.PosOnly = append(params.PosOnly, params.PosOrKw...)
			params.PosOrKw = nil
		default:
			prm := p.parseOneParam()
			if sawStar {
				params.KwOnly = append(params.KwOnly, prm)
			} else {
				params.PosOrKw = append(params.PosOrKw, prm)
			}
		}
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *parser) parseOneParam() *ast.Param {
	n := p.parseName()
	prm := &ast.Param{Name: n}
	if p.accept(token.COLON) {
		prm.Annotation = p.parseExpr()
	}
	if p.accept(token.ASSIGN) {
		prm.Default = p.parseExpr()
	}
	return prm
}

func (p *parser) parseClassDef(decorators []ast.Expr) *ast.ClassDef {
	start := p.pos()
	p.expect(token.CLASS)
	name := p.parseName()
	var bases []ast.Expr
	var kws []*ast.Keyword
	if p.accept(token.LPAREN) {
		for p.tok != token.RPAREN && p.tok != token.EOF {
			if p.tok == token.IDENT && p.peekTok == token.ASSIGN {
				n := p.parseName()
				p.next()
				kws = append(kws, &ast.Keyword{Name: n, Value: p.parseExpr()})
			} else {
				bases = append(bases, p.parseExpr())
			}
			if !p.accept(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}
	p.expect(token.COLON)
	body := p.parseBlock()
	return &ast.ClassDef{Decorators: decorators, Name: name, Bases: bases, Keywords: kws, Body: body, Start: start, End: p.pos()}
}

func (p *parser) parseIf() *ast.If {
	start := p.pos()
	p.expect(token.IF)
	cond := p.parseNamedExpr()
	p.expect(token.COLON)
	body := p.parseBlock()
	n := &ast.If{Cond: cond, Body: body, Start: start}
	switch p.tok {
	case token.ELIF:
		n.Orelse = []ast.Stmt{p.parseElifClause()}
	case token.ELSE:
		p.next()
		p.expect(token.COLON)
		n.Orelse = p.parseBlock()
	}
	n.End = p.pos()
	return n
}

// parseElifClause parses one "elif cond: body" clause, nesting it as the
// Orelse of the enclosing If the same way the reference grammar treats elif
// as sugar for "else: if ...".
func (p *parser) parseElifClause() *ast.If {
	start := p.pos()
	p.expect(token.ELIF)
	cond := p.parseNamedExpr()
	p.expect(token.COLON)
	body := p.parseBlock()
	n := &ast.If{Cond: cond, Body: body, Start: start}
	switch p.tok {
	case token.ELIF:
		n.Orelse = []ast.Stmt{p.parseElifClause()}
	case token.ELSE:
		p.next()
		p.expect(token.COLON)
		n.Orelse = p.parseBlock()
	}
	n.End = p.pos()
	return n
}

func (p *parser) parseWhile() *ast.While {
	start := p.pos()
	p.expect(token.WHILE)
	cond := p.parseNamedExpr()
	p.expect(token.COLON)
	body := p.parseBlock()
	n := &ast.While{Cond: cond, Body: body, Start: start}
	if p.accept(token.ELSE) {
		p.expect(token.COLON)
		n.Orelse = p.parseBlock()
	}
	n.End = p.pos()
	return n
}

func (p *parser) parseFor(isAsync bool) *ast.For {
	start := p.pos()
	p.expect(token.FOR)
	target := p.parseTargetList()
	p.expect(token.IN)
	iter := p.parseExprList()
	p.expect(token.COLON)
	body := p.parseBlock()
	n := &ast.For{IsAsync: isAsync, Target: target, Iter: iter, Body: body, Start: start}
	if p.accept(token.ELSE) {
		p.expect(token.COLON)
		n.Orelse = p.parseBlock()
	}
	n.End = p.pos()
	return n
}

func (p *parser) parseTry() *ast.Try {
	start := p.pos()
	p.expect(token.TRY)
	p.expect(token.COLON)
	body := p.parseBlock()
	n := &ast.Try{Body: body, Start: start}
	for p.tok == token.EXCEPT {
		h := &ast.ExceptClause{Start: p.pos()}
		p.next()
		if p.tok != token.COLON {
			h.Type = p.parseExpr()
			if p.accept(token.AS) {
				h.Name = p.parseName()
			}
		}
		p.expect(token.COLON)
		h.Body = p.parseBlock()
		h.End = p.pos()
		n.Handlers = append(n.Handlers, h)
	}
	if p.accept(token.ELSE) {
		p.expect(token.COLON)
		n.Orelse = p.parseBlock()
	}
	if p.accept(token.FINALLY) {
		p.expect(token.COLON)
		n.Final = p.parseBlock()
	}
	n.End = p.pos()
	return n
}

func (p *parser) parseWith(isAsync bool) *ast.With {
	start := p.pos()
	p.expect(token.WITH)
	n := &ast.With{IsAsync: isAsync, Start: start}
	for {
		item := &ast.WithItem{Ctx: p.parseExpr()}
		if p.accept(token.AS) {
			item.Target = p.parseTarget()
		}
		n.Items = append(n.Items, item)
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.COLON)
	n.Body = p.parseBlock()
	n.End = p.pos()
	return n
}

func (p *parser) parseSimpleStmt() ast.Stmt {
	start := p.pos()
	switch p.tok {
	case token.PASS:
		p.next()
		return &ast.Pass{Start: start, End: p.pos()}
	case token.BREAK:
		p.next()
		return &ast.Break{Start: start, End: p.pos()}
	case token.CONTINUE:
		p.next()
		return &ast.Continue{Start: start, End: p.pos()}
	case token.RETURN:
		p.next()
		var val ast.Expr
		if p.tok != token.NEWLINE && p.tok != token.SEMI && p.tok != token.EOF {
			val = p.parseExprList()
		}
		return &ast.Return{Value: val, Start: start, End: p.pos()}
	case token.RAISE:
		p.next()
		var exc, cause ast.Expr
		if p.tok != token.NEWLINE && p.tok != token.SEMI && p.tok != token.EOF {
			exc = p.parseExpr()
			if p.accept(token.FROM) {
				cause = p.parseExpr()
			}
		}
		return &ast.Raise{Exc: exc, Cause: cause, Start: start, End: p.pos()}
	case token.GLOBAL:
		p.next()
		names := p.parseNameList()
		return &ast.Global{Names: names, Start: start, End: p.pos()}
	case token.NONLOCAL:
		p.next()
		names := p.parseNameList()
		return &ast.Nonlocal{Names: names, Start: start, End: p.pos()}
	case token.IMPORT:
		return p.parseImport()
	case token.FROM:
		return p.parseImportFrom()
	case token.DEL:
		p.next()
		targets := p.parseTargetListAsSlice()
		return &ast.Delete{Targets: targets, Start: start, End: p.pos()}
	case token.ASSERT:
		p.next()
		cond := p.parseExpr()
		var msg ast.Expr
		if p.accept(token.COMMA) {
			msg = p.parseExpr()
		}
		return &ast.Assert{Cond: cond, Msg: msg, Start: start, End: p.pos()}
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *parser) parseNameList() []*ast.Name {
	names := []*ast.Name{p.parseName()}
	for p.accept(token.COMMA) {
		names = append(names, p.parseName())
	}
	return names
}

func (p *parser) parseImport() *ast.Import {
	start := p.pos()
	p.expect(token.IMPORT)
	n := &ast.Import{Start: start}
	for {
		path := p.parseDottedName()
		alias := &ast.ImportAlias{Path: path}
		if p.accept(token.AS) {
			alias.AsName = p.parseName()
		}
		n.Names = append(n.Names, alias)
		if !p.accept(token.COMMA) {
			break
		}
	}
	n.End = p.pos()
	return n
}

func (p *parser) parseImportFrom() *ast.ImportFrom {
	start := p.pos()
	p.expect(token.FROM)
	level := 0
	for p.tok == token.DOT {
		level++
		p.next()
	}
	mod := ""
	if p.tok == token.IDENT {
		mod = p.parseDottedName()
	}
	p.expect(token.IMPORT)
	n := &ast.ImportFrom{Module: mod, Level: level, Start: start}
	if p.accept(token.STAR) {
		n.Names = []*ast.ImportAlias{{Path: "*"}}
		n.End = p.pos()
		return n
	}
	paren := p.accept(token.LPAREN)
	for {
		nm := p.expect(token.IDENT)
		alias := &ast.ImportAlias{Path: nm.Raw}
		if p.accept(token.AS) {
			alias.AsName = p.parseName()
		}
		n.Names = append(n.Names, alias)
		if !p.accept(token.COMMA) {
			break
		}
		if paren && p.tok == token.RPAREN {
			break
		}
	}
	if paren {
		p.expect(token.RPAREN)
	}
	n.End = p.pos()
	return n
}

func (p *parser) parseDottedName() string {
	s := p.expect(token.IDENT).Raw
	for p.tok == token.DOT {
		p.next()
		s += "." + p.expect(token.IDENT).Raw
	}
	return s
}

// parseExprOrAssignStmt parses an expression statement, or an assignment
// (possibly chained/annotated/augmented).
func (p *parser) parseExprOrAssignStmt() ast.Stmt {
	start := p.pos()
	first := p.parseExprList()

	if p.tok.IsAugBinop() {
		op := p.tok
		p.next()
		val := p.parseExprList()
		return &ast.Assign{Targets: []ast.Expr{first}, Op: op, Value: val, Start: start, End: p.pos()}
	}

	if p.accept(token.COLON) {
		ann := p.parseExpr()
		var val ast.Expr
		if p.accept(token.ASSIGN) {
			val = p.parseExprList()
		}
		return &ast.Assign{Targets: []ast.Expr{first}, Op: token.ASSIGN, Annotation: ann, Value: val, Start: start, End: p.pos()}
	}

	if p.tok == token.ASSIGN {
		targets := []ast.Expr{first}
		var val ast.Expr
		for p.accept(token.ASSIGN) {
			val = p.parseExprList()
			if p.tok == token.ASSIGN {
				targets = append(targets, val)
			}
		}
		return &ast.Assign{Targets: targets, Op: token.ASSIGN, Value: val, Start: start, End: p.pos()}
	}

	return &ast.ExprStmt{X: first, Start: start, End: p.pos()}
}

package parser

import (
	"github.com/cbellis/pyrint/lang/ast"
	"github.com/cbellis/pyrint/lang/token"
)

func (p *parser) parseName() *ast.Name {
	pos := p.pos()
	lit := p.val.Raw
	p.expect(token.IDENT)
	return &ast.Name{Id: lit, Start: pos}
}

// parseTarget parses a single assignment target: a name, attribute,
// subscript, starred target, or a parenthesized/bracketed list of targets.
func (p *parser) parseTarget() ast.Expr {
	return p.parseOrExprPostfix(true)
}

func (p *parser) parseTargetList() ast.Expr {
	first := p.parseTarget()
	if p.tok != token.COMMA {
		return first
	}
	elts := []ast.Expr{first}
	for p.accept(token.COMMA) {
		if p.tok == token.IN || p.tok == token.ASSIGN || p.tok == token.COLON {
			break
		}
		elts = append(elts, p.parseTarget())
	}
	return &ast.TupleExpr{Elts: elts}
}

func (p *parser) parseTargetListAsSlice() []ast.Expr {
	elts := []ast.Expr{p.parseTarget()}
	for p.accept(token.COMMA) {
		if p.tok == token.NEWLINE || p.tok == token.EOF || p.tok == token.SEMI {
			break
		}
		elts = append(elts, p.parseTarget())
	}
	return elts
}

// parseExprList parses "expr (',' expr)* [',']", collapsing to a bare Expr
// when there is no trailing/embedded comma and to a TupleExpr otherwise.
func (p *parser) parseExprList() ast.Expr {
	start := p.pos()
	first := p.parseStarOrExpr()
	if p.tok != token.COMMA {
		return first
	}
	elts := []ast.Expr{first}
	for p.accept(token.COMMA) {
		if p.atExprListEnd() {
			break
		}
		elts = append(elts, p.parseStarOrExpr())
	}
	return &ast.TupleExpr{Elts: elts, Start: start}
}

func (p *parser) atExprListEnd() bool {
	switch p.tok {
	case token.NEWLINE, token.EOF, token.SEMI, token.COLON, token.RPAREN, token.RBRACK, token.RBRACE, token.ASSIGN, token.IN:
		return true
	}
	return false
}

func (p *parser) parseStarOrExpr() ast.Expr {
	if p.tok == token.STAR {
		start := p.pos()
		p.next()
		return &ast.StarredExpr{Value: p.parseExpr(), Start: start}
	}
	return p.parseExpr()
}

// parseNamedExpr parses a plain expression. The walrus form "x := expr" is
// not recognized: the scanner has no ":=" token, so such source is reported
// as a parse error.
func (p *parser) parseNamedExpr() ast.Expr {
	return p.parseExpr()
}

func (p *parser) parseExpr() ast.Expr {
	if p.tok == token.LAMBDA {
		return p.parseLambda()
	}
	if p.tok == token.YIELD {
		return p.parseYield()
	}
	return p.parseTernary()
}

func (p *parser) parseYield() ast.Expr {
	start := p.pos()
	p.next()
	if p.accept(token.FROM) {
		val := p.parseExpr()
		return &ast.Yield{Value: val, IsFrom: true, Start: start, End: p.pos()}
	}
	if p.atExprListEnd() {
		return &ast.Yield{Start: start, End: p.pos()}
	}
	val := p.parseExprList()
	return &ast.Yield{Value: val, Start: start, End: p.pos()}
}

func (p *parser) parseLambda() ast.Expr {
	start := p.pos()
	p.next()
	params := &ast.Params{}
	for p.tok != token.COLON && p.tok != token.EOF {
		switch p.tok {
		case token.STAR:
			p.next()
			params.VarArg = p.parseLambdaParam()
		case token.DOUBLESTAR:
			p.next()
			params.KwArg = p.parseLambdaParam()
		default:
			params.PosOrKw = append(params.PosOrKw, p.parseLambdaParam())
		}
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.COLON)
	body := p.parseExpr()
	return &ast.Lambda{Params: params, Body: body, Start: start}
}

// parseLambdaParam parses one lambda parameter: a name with an optional
// default but, unlike a def parameter, never an annotation (the colon always
// belongs to the lambda body).
func (p *parser) parseLambdaParam() *ast.Param {
	n := p.parseName()
	prm := &ast.Param{Name: n}
	if p.accept(token.ASSIGN) {
		prm.Default = p.parseExpr()
	}
	return prm
}

func (p *parser) parseTernary() ast.Expr {
	e := p.parseBoolOr()
	if p.tok == token.IF {
		p.next()
		cond := p.parseBoolOr()
		p.expect(token.ELSE)
		elseE := p.parseExpr()
		return &ast.IfExp{Body: e, Cond: cond, Orelse: elseE}
	}
	return e
}

func (p *parser) parseBoolOr() ast.Expr {
	left := p.parseBoolAnd()
	if p.tok != token.OR {
		return left
	}
	values := []ast.Expr{left}
	for p.accept(token.OR) {
		values = append(values, p.parseBoolAnd())
	}
	return &ast.BoolOp{Op: token.OR, Values: values}
}

func (p *parser) parseBoolAnd() ast.Expr {
	left := p.parseNot()
	if p.tok != token.AND {
		return left
	}
	values := []ast.Expr{left}
	for p.accept(token.AND) {
		values = append(values, p.parseNot())
	}
	return &ast.BoolOp{Op: token.AND, Values: values}
}

func (p *parser) parseNot() ast.Expr {
	if p.tok == token.NOT {
		start := p.pos()
		p.next()
		return &ast.UnaryOp{Op: token.NOT, Operand: p.parseNot(), Start: start}
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() ast.Expr {
	left := p.parseBitOr()
	var ops []token.Token
	var comparators []ast.Expr
	for {
		op, ok := p.compareOp()
		if !ok {
			break
		}
		comparators = append(comparators, p.parseBitOr())
		ops = append(ops, op)
	}
	if len(ops) == 0 {
		return left
	}
	_, end := comparators[len(comparators)-1].Span()
	return &ast.Compare{Left: left, Ops: ops, Comparators: comparators, End: end}
}

func (p *parser) compareOp() (token.Token, bool) {
	switch p.tok {
	case token.LT, token.GT, token.LE, token.GE, token.EQ, token.NEQ, token.NEQ_OLD, token.IS:
		op := p.tok
		p.next()
		if op == token.IS && p.tok == token.NOT {
			p.next()
			return token.IS_NOT, true
		}
		return op, true
	case token.IN:
		p.next()
		return token.IN, true
	case token.NOT:
		if p.peekTok == token.IN {
			p.next()
			p.next()
			return token.NOT_IN, true
		}
	}
	return token.ILLEGAL, false
}

func (p *parser) parseBitOr() ast.Expr  { return p.binary(token.PIPE, p.parseBitXor) }
func (p *parser) parseBitXor() ast.Expr { return p.binary(token.CARET, p.parseBitAnd) }
func (p *parser) parseBitAnd() ast.Expr { return p.binary(token.AMP, p.parseShift) }
func (p *parser) parseShift() ast.Expr  { return p.binary2(p.parseArith, token.LTLT, token.GTGT) }
func (p *parser) parseArith() ast.Expr  { return p.binary2(p.parseTerm, token.PLUS, token.MINUS) }
func (p *parser) parseTerm() ast.Expr {
	return p.binary2(p.parseFactor, token.STAR, token.SLASH, token.SLASHSLASH, token.PERCENT, token.ATSIGN)
}

func (p *parser) binary(op token.Token, next func() ast.Expr) ast.Expr {
	left := next()
	for p.tok == op {
		p.next()
		right := next()
		left = &ast.BinOp{Left: left, Op: op, Right: right}
	}
	return left
}

func (p *parser) binary2(next func() ast.Expr, ops ...token.Token) ast.Expr {
	left := next()
	for {
		matched := false
		for _, op := range ops {
			if p.tok == op {
				p.next()
				right := next()
				left = &ast.BinOp{Left: left, Op: op, Right: right}
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}
	return left
}

func (p *parser) parseFactor() ast.Expr {
	switch p.tok {
	case token.PLUS, token.MINUS, token.TILDE:
		start := p.pos()
		op := p.tok
		p.next()
		return &ast.UnaryOp{Op: op, Operand: p.parseFactor(), Start: start}
	}
	return p.parsePower()
}

func (p *parser) parsePower() ast.Expr {
	left := p.parseAwait()
	if p.tok == token.DOUBLESTAR {
		p.next()
		right := p.parseFactor()
		return &ast.BinOp{Left: left, Op: token.DOUBLESTAR, Right: right}
	}
	return left
}

func (p *parser) parseAwait() ast.Expr {
	if p.tok == token.AWAIT {
		start := p.pos()
		p.next()
		operand := p.parseUnaryPostfix()
		return &ast.UnaryOp{Op: token.AWAIT, Operand: operand, Start: start}
	}
	return p.parseUnaryPostfix()
}

func (p *parser) parseUnaryPostfix() ast.Expr {
	return p.parseOrExprPostfix(false)
}

// parseOrExprPostfix parses an atom followed by any number of trailers
// (call, subscript, attribute). When forTarget is true it restricts the
// leading atom to the forms valid as assignment targets (names,
// parenthesized/bracketed target lists, starred targets) but still permits
// attribute/subscript trailers on them.
func (p *parser) parseOrExprPostfix(forTarget bool) ast.Expr {
	e := p.parseAtom(forTarget)
	for {
		switch p.tok {
		case token.DOT:
			p.next()
			name := p.expect(token.IDENT)
			e = &ast.Attribute{Value: e, Attr: name.Raw, End: p.pos()}
		case token.LPAREN:
			if forTarget {
				return e
			}
			e = p.parseCall(e)
		case token.LBRACK:
			p.next()
			idx := p.parseSubscriptIndex()
			end := p.pos()
			p.expect(token.RBRACK)
			e = &ast.Subscript{Value: e, Index: idx, End: end}
		default:
			return e
		}
	}
}

func (p *parser) parseSubscriptIndex() ast.Expr {
	return p.parseExprList()
}

func (p *parser) parseCall(fn ast.Expr) ast.Expr {
	p.expect(token.LPAREN)
	call := &ast.Call{Fn: fn}
	for p.tok != token.RPAREN && p.tok != token.EOF {
		if p.tok == token.IDENT && p.peekTok == token.ASSIGN {
			n := p.parseName()
			p.next()
			call.Keywords = append(call.Keywords, &ast.Keyword{Name: n, Value: p.parseExpr()})
		} else if p.tok == token.DOUBLESTAR {
			p.next()
			call.Keywords = append(call.Keywords, &ast.Keyword{Value: p.parseExpr()})
		} else if p.tok == token.STAR {
			start := p.pos()
			p.next()
			call.Args = append(call.Args, &ast.StarredExpr{Value: p.parseExpr(), Start: start})
		} else {
			e := p.parseExpr()
			if p.tok == token.FOR || p.tok == token.ASYNC {
				e = p.parseComprehensionTail(e, ast.GeneratorExp, nil, p.pos())
			}
			call.Args = append(call.Args, e)
		}
		if !p.accept(token.COMMA) {
			break
		}
	}
	call.End = p.pos()
	p.expect(token.RPAREN)
	return call
}

func (p *parser) parseAtom(forTarget bool) ast.Expr {
	start := p.pos()
	switch p.tok {
	case token.IDENT:
		return p.parseName()
	case token.INT:
		v := p.val
		p.next()
		return &ast.Constant{Kind: ast.ConstInt, Raw: v.Raw, Int: v.Int, Start: start, End: p.pos()}
	case token.FLOAT:
		v := p.val
		p.next()
		return &ast.Constant{Kind: ast.ConstFloat, Raw: v.Raw, Float: v.Float, Start: start, End: p.pos()}
	case token.STRING:
		v := p.val
		p.next()
		for p.tok == token.STRING { // adjacent string literal concatenation
			v2 := p.val
			p.next()
			v.String += v2.String
			v.Raw += v2.Raw
		}
		return &ast.Constant{Kind: ast.ConstString, Raw: v.Raw, Str: v.String, Start: start, End: p.pos()}
	case token.BYTES:
		v := p.val
		p.next()
		return &ast.Constant{Kind: ast.ConstBytes, Raw: v.Raw, Str: v.String, Start: start, End: p.pos()}
	case token.TRUE:
		p.next()
		return &ast.Constant{Kind: ast.ConstBool, Raw: "True", Int: 1, Start: start, End: p.pos()}
	case token.FALSE:
		p.next()
		return &ast.Constant{Kind: ast.ConstBool, Raw: "False", Int: 0, Start: start, End: p.pos()}
	case token.NONE:
		p.next()
		return &ast.Constant{Kind: ast.ConstNone, Raw: "None", Start: start, End: p.pos()}
	case token.LPAREN:
		return p.parseParenOrTupleOrGenexp(forTarget)
	case token.LBRACK:
		return p.parseListOrListComp(forTarget)
	case token.LBRACE:
		return p.parseSetOrDictOrComp()
	case token.STAR:
		p.next()
		return &ast.StarredExpr{Value: p.parseOrExprPostfix(forTarget), Start: start}
	case token.NOT:
		p.next()
		return &ast.UnaryOp{Op: token.NOT, Operand: p.parseNot(), Start: start}
	case token.MINUS, token.PLUS, token.TILDE:
		op := p.tok
		p.next()
		return &ast.UnaryOp{Op: op, Operand: p.parseFactor(), Start: start}
	default:
		p.errorf(start, "unexpected %s in expression", p.tok.GoString())
		p.next()
		return &ast.Constant{Kind: ast.ConstNone, Raw: "None", Start: start, End: start}
	}
}

func (p *parser) parseParenOrTupleOrGenexp(forTarget bool) ast.Expr {
	start := p.pos()
	p.expect(token.LPAREN)
	if p.accept(token.RPAREN) {
		return &ast.TupleExpr{Start: start, End: p.pos()}
	}
	first := p.parseStarOrExprForParen(forTarget)
	if p.tok == token.FOR || p.tok == token.ASYNC {
		comp := p.parseComprehensionTail(first, ast.GeneratorExp, nil, start)
		p.expect(token.RPAREN)
		return comp
	}
	if p.tok != token.COMMA {
		p.expect(token.RPAREN)
		return first
	}
	elts := []ast.Expr{first}
	for p.accept(token.COMMA) {
		if p.tok == token.RPAREN {
			break
		}
		elts = append(elts, p.parseStarOrExprForParen(forTarget))
	}
	end := p.pos()
	p.expect(token.RPAREN)
	return &ast.TupleExpr{Elts: elts, Start: start, End: end}
}

func (p *parser) parseStarOrExprForParen(forTarget bool) ast.Expr {
	if forTarget {
		return p.parseTarget()
	}
	return p.parseStarOrExpr()
}

func (p *parser) parseListOrListComp(forTarget bool) ast.Expr {
	start := p.pos()
	p.expect(token.LBRACK)
	if p.accept(token.RBRACK) {
		return &ast.ListExpr{Start: start, End: p.pos()}
	}
	first := p.parseStarOrExprForParen(forTarget)
	if p.tok == token.FOR || p.tok == token.ASYNC {
		comp := p.parseComprehensionTail(first, ast.ListComp, nil, start)
		p.expect(token.RBRACK)
		return comp
	}
	elts := []ast.Expr{first}
	for p.accept(token.COMMA) {
		if p.tok == token.RBRACK {
			break
		}
		elts = append(elts, p.parseStarOrExprForParen(forTarget))
	}
	end := p.pos()
	p.expect(token.RBRACK)
	return &ast.ListExpr{Elts: elts, Start: start, End: end}
}

func (p *parser) parseSetOrDictOrComp() ast.Expr {
	start := p.pos()
	p.expect(token.LBRACE)
	if p.accept(token.RBRACE) {
		return &ast.DictExpr{Start: start, End: p.pos()}
	}
	if p.tok == token.DOUBLESTAR {
		p.next()
		val := p.parseExpr()
		dict := &ast.DictExpr{Keys: []ast.Expr{nil}, Values: []ast.Expr{val}, Start: start}
		for p.accept(token.COMMA) {
			if p.tok == token.RBRACE {
				break
			}
			p.parseDictItemInto(dict)
		}
		dict.End = p.pos()
		p.expect(token.RBRACE)
		return dict
	}
	first := p.parseExpr()
	if p.accept(token.COLON) {
		val := p.parseExpr()
		if p.tok == token.FOR || p.tok == token.ASYNC {
			comp := p.parseComprehensionTail(first, ast.DictComp, val, start)
			p.expect(token.RBRACE)
			return comp
		}
		dict := &ast.DictExpr{Keys: []ast.Expr{first}, Values: []ast.Expr{val}, Start: start}
		for p.accept(token.COMMA) {
			if p.tok == token.RBRACE {
				break
			}
			p.parseDictItemInto(dict)
		}
		dict.End = p.pos()
		p.expect(token.RBRACE)
		return dict
	}
	if p.tok == token.FOR || p.tok == token.ASYNC {
		comp := p.parseComprehensionTail(first, ast.SetComp, nil, start)
		p.expect(token.RBRACE)
		return comp
	}
	elts := []ast.Expr{first}
	for p.accept(token.COMMA) {
		if p.tok == token.RBRACE {
			break
		}
		elts = append(elts, p.parseExpr())
	}
	end := p.pos()
	p.expect(token.RBRACE)
	return &ast.SetExpr{Elts: elts, Start: start, End: end}
}

func (p *parser) parseDictItemInto(dict *ast.DictExpr) {
	if p.tok == token.DOUBLESTAR {
		p.next()
		dict.Keys = append(dict.Keys, nil)
		dict.Values = append(dict.Values, p.parseExpr())
		return
	}
	k := p.parseExpr()
	p.expect(token.COLON)
	v := p.parseExpr()
	dict.Keys = append(dict.Keys, k)
	dict.Values = append(dict.Values, v)
}

// parseComprehensionTail parses "for target in iter [if cond]* [for ...]*"
// given the already-parsed element (or dict key, with dictVal as the dict
// value expression).
func (p *parser) parseComprehensionTail(elt ast.Expr, kind ast.CompKind, dictVal ast.Expr, start token.Pos) *ast.Comprehension {
	comp := &ast.Comprehension{Kind: kind, Element: elt, Key: dictVal, Start: start}
	if kind == ast.DictComp {
		comp.Element, comp.Key = dictVal, elt
	}
	for p.tok == token.FOR || p.tok == token.ASYNC {
		clause := &ast.CompClause{}
		if p.accept(token.ASYNC) {
			clause.IsAsync = true
		}
		p.expect(token.FOR)
		clause.Target = p.parseTargetList()
		p.expect(token.IN)
		clause.Iter = p.parseOrTernaryNoIf()
		for p.tok == token.IF {
			p.next()
			clause.Ifs = append(clause.Ifs, p.parseOrTernaryNoIf())
		}
		comp.Generators = append(comp.Generators, clause)
	}
	comp.End = p.pos()
	return comp
}

// parseOrTernaryNoIf parses the iterable/condition expressions inside a
// comprehension clause, which must not themselves start with the ternary
// "if" (that would be ambiguous with the comprehension's own "if" clause).
func (p *parser) parseOrTernaryNoIf() ast.Expr {
	return p.parseBoolOr()
}

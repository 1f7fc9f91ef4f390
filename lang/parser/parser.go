// Package parser builds a lang/ast.Module from the token stream produced by
// lang/scanner. The grammar implemented is a practical subset of the
// reference language sufficient to exercise every checker in lang/check:
// function and class definitions, all compound statements, comprehensions,
// and the common expression forms. It is a hand-written recursive-descent
// parser with a small constant lookahead buffer.
package parser

import (
	"fmt"

	"github.com/cbellis/pyrint/lang/ast"
	sc "github.com/cbellis/pyrint/lang/scanner"
	"github.com/cbellis/pyrint/lang/token"
)

type (
	Error     = sc.Error
	ErrorList = sc.ErrorList
)

// ParseFile tokenizes and parses a single file, returning its Module.
func ParseFile(fs *token.FileSet, name string, src []byte) (*ast.Module, error) {
	f := fs.AddFile(name, len(src))
	var el ErrorList
	var s sc.Scanner
	s.Init(f, src, el.Add)

	p := &parser{scan: &s, file: f, errs: &el}
	p.next()
	p.next()
	mod := p.parseModule(name)
	el.Sort()
	return mod, el.Err()
}

// parser holds two tokens of lookahead (tok/val is current, peekTok/peekVal
// is next), filled by next().
type parser struct {
	scan *sc.Scanner
	file *token.File
	errs *ErrorList

	tok  token.Token
	val  token.Value
	peekTok token.Token
	peekVal token.Value
}

func (p *parser) next() {
	p.tok, p.val = p.peekTok, p.peekVal
	p.peekTok = p.scan.Scan(&p.peekVal)
}

func (p *parser) pos() token.Pos { return p.val.Pos }

func (p *parser) errorf(pos token.Pos, format string, args ...any) {
	p.errs.Add(p.file.Position(pos), fmt.Sprintf(format, args...))
}

func (p *parser) expect(tok token.Token) token.Value {
	val := p.val
	if p.tok != tok {
		p.errorf(p.pos(), "expected %s, found %s", tok.GoString(), p.tok.GoString())
	} else {
		p.next()
	}
	return val
}

func (p *parser) accept(tok token.Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// syncStmt skips tokens up to the next NEWLINE, DEDENT or EOF and consumes
// the NEWLINE if it stopped at one (a DEDENT or EOF is left in place), for
// rudimentary error recovery: one malformed statement should not cascade
// into hundreds of spurious diagnostics.
func (p *parser) syncStmt() {
	for p.tok != token.NEWLINE && p.tok != token.DEDENT && p.tok != token.EOF {
		p.next()
	}
	p.accept(token.NEWLINE)
}

func (p *parser) parseModule(name string) *ast.Module {
	start := p.pos()
	mod := &ast.Module{Name: name, Start: start}
	for p.tok != token.EOF {
		if p.accept(token.NEWLINE) {
			continue
		}
		mod.Body = p.parseStmts(mod.Body)
	}
	mod.End = p.pos()
	return mod
}

// parseBlock parses an indented suite: NEWLINE INDENT stmt+ DEDENT, or a
// single simple-statement list on the same line as the header (e.g.
// "if x: y = 1").
func (p *parser) parseBlock() []ast.Stmt {
	if p.tok == token.NEWLINE {
		p.next()
		if p.tok != token.INDENT {
			p.errorf(p.pos(), "expected an indented block")
			return nil
		}
		p.next()
		var body []ast.Stmt
		for p.tok != token.DEDENT && p.tok != token.EOF {
			if p.accept(token.NEWLINE) {
				continue
			}
			body = p.parseStmts(body)
		}
		p.expect(token.DEDENT)
		return body
	}
	return p.parseSimpleStmtLine()
}

// parseSimpleStmtLine parses "simple_stmt (';' simple_stmt)* [';'] NEWLINE".
func (p *parser) parseSimpleStmtLine() []ast.Stmt {
	var stmts []ast.Stmt
	for {
		stmts = append(stmts, p.parseSimpleStmt())
		if !p.accept(token.SEMI) {
			break
		}
		if p.tok == token.NEWLINE || p.tok == token.EOF {
			break
		}
	}
	p.expect(token.NEWLINE)
	return stmts
}

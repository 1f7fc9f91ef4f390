package resolver

import (
	"github.com/cbellis/pyrint/lang/ast"
	"github.com/cbellis/pyrint/lang/token"
)

// ScopeKind distinguishes which kind of construct introduced a scope.
type ScopeKind int

const (
	ScopeModule ScopeKind = iota
	ScopeFunction
	ScopeClass
	ScopeComprehension
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeClass:
		return "class"
	case ScopeComprehension:
		return "comprehension"
	default:
		return "scope"
	}
}

// BindingKind classifies how a name came to be bound, used by checkers that
// care about the binding's shape (e.g. E0111 flags a reversed() argument
// whose binding is a FuncDef).
type BindingKind int

const (
	BindAssign BindingKind = iota
	BindParam
	BindFuncDef
	BindClassDef
	BindFor
	BindWith
	BindExcept
	BindImport
	BindComprehension
)

// Binding records one binding site for a name in a Scope. It implements
// ast.Binding so the resolver can attach it directly to ast.Name.Binding
// without lang/ast importing lang/resolver.
type Binding struct {
	ast.BindingMarker
	Name  string
	Kind  BindingKind
	Pos   token.Pos
	Scope *Scope
	// Node is the binding AST node (the *ast.FuncDef, *ast.ClassDef, etc.),
	// when the binding is more than a bare name; nil for simple assignments.
	Node ast.Node
}

// Builtin is the sentinel Binding attached to a Name that resolves to a
// built-in rather than to any user binding site.
var Builtin = &Binding{Name: "<builtin>"}

// Unresolved is the sentinel Binding attached to a Name that could not be
// resolved at all (an E0602 was emitted for it).
var Unresolved = &Binding{Name: "<unresolved>"}

// Uncertain is the sentinel Binding attached to a Name whose resolution
// failure was suppressed because an enclosing scope is resolution-uncertain
// (a star-import, exec, or locals() mutation in scope).
var Uncertain = &Binding{Name: "<uncertain>"}

// LoadRef records one direct (non-nested-scope) use of a name within a
// scope, in source-position order. It backs the E0118
// used-prior-global-declaration rule.
type LoadRef struct {
	Name string
	Pos  token.Pos
	Node *ast.Name
}

// Scope is one lexical scope: a module, function/lambda, class body, or
// comprehension.
type Scope struct {
	Kind   ScopeKind
	Parent *Scope // lexical parent, used to build child scopes
	Node   ast.Node
	// Bindings holds every binding site for each name, in source-position
	// order; Bindings[name][0] is the canonical first binding.
	Bindings map[string][]*Binding
	// Globals/Nonlocals record the position of the global/nonlocal
	// declaration for a name in this scope, if any.
	Globals   map[string]token.Pos
	Nonlocals map[string]token.Pos

	// Loads lists every direct (non-nested-scope) name-use in this scope, in
	// source-position order. Used by the E0118 rule.
	Loads []LoadRef

	// IsGenerator is set when the scope (function/lambda body) directly
	// contains a yield/yield from, not inside a nested function.
	IsGenerator bool
	// IsCoroutine is set for "async def" function scopes.
	IsCoroutine bool
	// ResolutionUncertain is set when this scope directly contains a
	// star-import, a bare call to exec, or a call to locals(): free-name
	// resolution failures here, or in any scope whose lookup chain passes
	// through here, are suppressed.
	ResolutionUncertain bool

	Children []*Scope
}

func newScope(kind ScopeKind, parent *Scope, node ast.Node) *Scope {
	s := &Scope{
		Kind:      kind,
		Parent:    parent,
		Node:      node,
		Bindings:  make(map[string][]*Binding),
		Globals:   make(map[string]token.Pos),
		Nonlocals: make(map[string]token.Pos),
	}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// bind records a new binding site for name in s, in BindAssign-style order
// (callers append in source-visitation order, which is source-position
// order since the collect pass walks the tree top-down left-to-right).
func (s *Scope) bind(name string, kind BindingKind, pos token.Pos, node ast.Node) *Binding {
	b := &Binding{Name: name, Kind: kind, Pos: pos, Scope: s, Node: node}
	s.Bindings[name] = append(s.Bindings[name], b)
	return b
}

// binds reports whether s itself directly binds name.
func (s *Scope) binds(name string) bool {
	_, ok := s.Bindings[name]
	return ok
}

// First returns the canonical (first by source position) binding for name
// in s, or nil if s has no such binding.
func (s *Scope) First(name string) *Binding {
	list := s.Bindings[name]
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

// isFunctionLike reports whether s is a scope a nonlocal lookup may
// terminate at: the nearest enclosing non-class, non-module function scope.
func (s *Scope) isFunctionLike() bool {
	return s.Kind == ScopeFunction
}

// nearestNonClass walks s's lookup chain (lexical parent, skipping class
// scopes) and returns the first ancestor (including s) that is not a class
// scope. This lookup chain is distinct from the lexical "Parent" chain used
// purely for scope creation.
func nearestNonClass(s *Scope) *Scope {
	for s != nil && s.Kind == ScopeClass {
		s = s.Parent
	}
	return s
}

// lookupParent returns the scope that free-name lookup continues in after
// s, skipping class scopes: a class body's own names are never visible to
// nested scopes the way a function's locals are.
func lookupParent(s *Scope) *Scope {
	if s.Parent == nil {
		return nil
	}
	return nearestNonClass(s.Parent)
}

// resolutionUncertain reports whether name-resolution failures originating
// in s should be suppressed because s or any scope on its lookup chain is
// marked ResolutionUncertain.
func resolutionUncertain(s *Scope) bool {
	for c := s; c != nil; c = lookupParent(c) {
		if c.ResolutionUncertain {
			return true
		}
	}
	return false
}

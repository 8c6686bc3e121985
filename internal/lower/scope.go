package lower

import "github.com/gobrainfuck/bfgen/internal/codegen"

// scope is one lexical frame of surface-language variable bindings. A
// function call gets one root scope (binding its parameters); each nested
// block gets a child scope chained to its enclosing one for lookups, but
// declare rejects a name already bound anywhere in the chain, since every
// name in a function activation owns exactly one tape cell for the whole
// activation (spec.md §4.6, "block-local redeclaration" is a compile error).
type scope struct {
	vars   map[string]*codegen.Var
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[string]*codegen.Var), parent: parent}
}

// resolve looks up name in this scope and its ancestors.
func (s *scope) resolve(name string) (*codegen.Var, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// declare binds name to v in this scope. It fails if name is already bound
// anywhere in the chain (this scope or an ancestor).
func (s *scope) declare(name string, v *codegen.Var) bool {
	if _, exists := s.resolve(name); exists {
		return false
	}
	s.vars[name] = v
	return true
}

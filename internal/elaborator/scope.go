package elaborator

import (
	"fmt"

	"github.com/funvibe/funxy/internal/token"
	"github.com/funvibe/funxy/internal/typesystem"
)

// ConstraintBinding is `{interface_id, subjects = [subject_type, arg_type...]}`
// plus its declaration location (spec §3, "TypeScope").
type ConstraintBinding struct {
	InterfaceID string
	Subjects    []typesystem.Type
	Loc         token.Location
}

// substitute returns a copy of b with every subject substituted by s.
func (b ConstraintBinding) substitute(s typesystem.Subst) ConstraintBinding {
	subjects := make([]typesystem.Type, len(b.Subjects))
	for i, t := range b.Subjects {
		subjects[i] = typesystem.Substitute(t, s)
	}
	return ConstraintBinding{InterfaceID: b.InterfaceID, Subjects: subjects, Loc: b.Loc}
}

func subjectsEqual(a, b []typesystem.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !typesystem.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// TypeScope is the set of type variables and constraints visible inside one
// entity or function signature (spec §3, "TypeScope").
type TypeScope struct {
	// ThisType is set only inside an interface's scope; its type variable is
	// always id 0 (spec invariant: "the distinguished This type in an
	// interface's scope is the type-variable with id 0").
	ThisType *typesystem.Type

	varIDs  map[string]int
	varLocs map[string]token.Location

	// DebugNames is the ordered list of declared type-variable names; its
	// length is also the next type-variable id to assign (spec §4.3: "ids
	// are assigned in declaration order starting from the scope's current
	// typeVariableDebugNames length").
	DebugNames []string

	Constraints []ConstraintBinding
}

// NewTypeScope returns an empty (record-style) scope.
func NewTypeScope() *TypeScope {
	return &TypeScope{
		varIDs:  make(map[string]int),
		varLocs: make(map[string]token.Location),
	}
}

// NewInterfaceTypeScope returns a scope seeded with `This` as type variable 0.
func NewInterfaceTypeScope() *TypeScope {
	s := NewTypeScope()
	this := typesystem.Type(typesystem.TypeVarType{ID: 0})
	s.ThisType = &this
	s.DebugNames = append(s.DebugNames, "This")
	return s
}

// DeclareVar installs a new user type variable, returning its id.
func (s *TypeScope) DeclareVar(name string, loc token.Location) (int, error) {
	if _, exists := s.varIDs[name]; exists {
		return 0, errTypeVariableRedefined(name, s.varLocs[name], loc)
	}
	id := len(s.DebugNames)
	s.varIDs[name] = id
	s.varLocs[name] = loc
	s.DebugNames = append(s.DebugNames, name)
	return id, nil
}

// LookupVar returns the type-variable id bound to name, if any.
func (s *TypeScope) LookupVar(name string) (int, bool) {
	id, ok := s.varIDs[name]
	return id, ok
}

// VariableStack is a scoped ordered mapping from textual variable name to
// {id, declared type, binding location} (spec §3). Ids equal the variable's
// positional index into the flat, append-only stack (spec §9).
type VariableStack struct {
	entries     []varEntry
	active      map[string]int
	blockStarts []int
	tempCounter int
}

type varEntry struct {
	Name string
	Type typesystem.Type
	Loc  token.Location
}

// NewVariableStack returns an empty stack with no block open (callers that
// want a block should call OpenBlock/CloseBlock themselves around nested
// statement lists; names declared outside any block are never removed).
func NewVariableStack() *VariableStack {
	return &VariableStack{active: make(map[string]int)}
}

// OpenBlock starts a new lexical block.
func (vs *VariableStack) OpenBlock() {
	vs.blockStarts = append(vs.blockStarts, len(vs.entries))
}

// CloseBlock ends the innermost open block, removing every name it
// introduced so it cannot collide with sibling blocks' names.
func (vs *VariableStack) CloseBlock() {
	n := len(vs.blockStarts)
	start := vs.blockStarts[n-1]
	vs.blockStarts = vs.blockStarts[:n-1]
	for i := len(vs.entries) - 1; i >= start; i-- {
		delete(vs.active, vs.entries[i].Name)
	}
	vs.entries = vs.entries[:start]
}

// Declare introduces a user-named variable, failing if the name is already
// visible in the current scope.
func (vs *VariableStack) Declare(name string, typ typesystem.Type, loc token.Location) (int, error) {
	if existingID, exists := vs.active[name]; exists {
		return 0, errVariableRedefined(name, vs.entries[existingID].Loc, loc)
	}
	id := len(vs.entries)
	vs.entries = append(vs.entries, varEntry{Name: name, Type: typ, Loc: loc})
	vs.active[name] = id
	return id, nil
}

// DeclareTemp allocates a synthesized `$i` temporary, which by construction
// cannot collide with a user name and so is never added to the active-name
// table (spec §3, "VariableStack").
func (vs *VariableStack) DeclareTemp(typ typesystem.Type, loc token.Location) int {
	name := fmt.Sprintf("$%d", vs.tempCounter)
	vs.tempCounter++
	id := len(vs.entries)
	vs.entries = append(vs.entries, varEntry{Name: name, Type: typ, Loc: loc})
	return id
}

// Lookup resolves a user name to its variable id and type.
func (vs *VariableStack) Lookup(name string) (id int, typ typesystem.Type, ok bool) {
	id, ok = vs.active[name]
	if !ok {
		return 0, nil, false
	}
	return id, vs.entries[id].Type, true
}

// TypeOf returns the declared type of an already-allocated variable id.
func (vs *VariableStack) TypeOf(id int) typesystem.Type {
	return vs.entries[id].Type
}

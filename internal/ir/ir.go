// Package ir defines the output contract (spec §3, "IR Program"): the typed,
// operation-list representation the elaborator produces and hands to the
// downstream verifier. Cross-entity references are by id (record/interface
// ids are canonical-name strings, function ids are "package.Entity.member"
// strings)
// — there are no cyclic Go pointers between IR entities, matching spec §9's
// "arena + positional ids" design note.
package ir

import "github.com/funvibe/funxy/internal/typesystem"

// ConstraintParam is a constraint carried by a signature's type parameters,
// e.g. the declared `T is Interface[args]`.
type ConstraintParam struct {
	InterfaceID string
	Subjects    []typesystem.Type
}

// Param is one function parameter: a name and its IR type.
type Param struct {
	Name string
	Type typesystem.Type
}

// Block is an IR basic block with a distinguished result variable — used
// for pre-/post-condition lowerings (spec glossary: "Contract clause") where
// the block's last assignment to ResultVar is its boolean value.
type Block struct {
	Ops       []Op
	ResultVar int
}

// Signature is a function signature (spec §3, "Function signature").
type Signature struct {
	TypeParameters       []string
	ConstraintParameters []ConstraintParam
	Parameters           []Param
	ReturnTypes          []typesystem.Type
	Preconditions        []Block
	Postconditions       []Block
	// Semantics carries foreign-function annotations, e.g. {"eq": true} for
	// the primitive integer equality predicate (spec §6).
	Semantics map[string]bool
}

// Function is one compiled record function, keyed by "package.Entity.member".
type Function struct {
	ID        string
	Signature Signature
	Body      []Op
}

// Field is one record field's IR type.
type Field struct {
	Name string
	Type typesystem.Type
}

// Record is a record entity's IR shape.
type Record struct {
	TypeParameters []string
	Fields         []Field
}

// Interface is an interface entity's IR shape: its type parameters (the
// implicit `This` plus any user ones) and its method signatures.
type Interface struct {
	TypeParameters []string
	Signatures     map[string]Signature
}

// VtableFactory is a placeholder for interface-implementation dispatch
// tables. The spec leaves implementation *lookup* as an open question
// (§4.4, §9) — this table exists in the data model but is never populated
// by the elaborator; the verifier/lowering stage that needs runtime
// dispatch owns filling it in.
type VtableFactory struct {
	InterfaceID string
	RecordID    string
}

// Program is the complete output of CompileSources.
type Program struct {
	Functions       map[string]*Function
	Records         map[string]*Record
	Interfaces      map[string]*Interface
	Foreign         map[string]Signature
	VtableFactories map[string]*VtableFactory
}

// NewProgram returns an empty, initialized Program.
func NewProgram() *Program {
	return &Program{
		Functions:       make(map[string]*Function),
		Records:         make(map[string]*Record),
		Interfaces:      make(map[string]*Interface),
		Foreign:         make(map[string]Signature),
		VtableFactories: make(map[string]*VtableFactory),
	}
}

package ir

import "github.com/funvibe/funxy/internal/typesystem"

// Op is one instruction in an IR block body (spec §3, "IR Ops"). Variable
// ids are positional indices into a function's flat, append-only variable
// arena (spec §9).
type Op interface {
	opNode()
}

// VarDecl introduces a new variable slot with a declared type.
type VarDecl struct {
	VarID int
	Name  string
	Type  typesystem.Type
}

func (VarDecl) opNode() {}

// Const assigns a constant value (from an integer/string/boolean literal) to
// a freshly declared temporary.
type Const struct {
	VarID int
	Type  typesystem.Type
	Value interface{}
}

func (Const) opNode() {}

// Assign copies the value of one variable into another, already-declared
// variable.
type Assign struct {
	Target int
	Value  int
}

func (Assign) opNode() {}

// StaticCall invokes a record function `Type.method(args)`, binding its
// (possibly multiple) return values to freshly allocated result variables.
type StaticCall struct {
	ResultVars []int
	FnID       string
	TypeArgs   []typesystem.Type
	Args       []int
}

func (StaticCall) opNode() {}

// ForeignCall invokes a built-in primitive operator (Int==, Int+, Int-).
type ForeignCall struct {
	ResultVars []int
	Name       string
	Args       []int
}

func (ForeignCall) opNode() {}

// Branch is a two-way conditional with its own true/false sub-block bodies —
// used both for `if` statements and for short-circuit logical-operator
// lowering (spec §4.8).
type Branch struct {
	Cond        int
	TrueBlock   []Op
	FalseBlock  []Op
}

func (Branch) opNode() {}

// Return terminates the enclosing function, yielding the given variables as
// its result tuple.
type Return struct {
	Values []int
}

func (Return) opNode() {}

// FieldRead projects one field out of a compound value (spec §4.6 field
// access). Not part of the op vocabulary spec.md's data model enumerates;
// added to give `x.f` a real value rather than leaving it a validation-only
// dead end (see DESIGN.md for the open-question resolution).
type FieldRead struct {
	VarID    int
	Target   int
	RecordID string
	Field    string
}

func (FieldRead) opNode() {}

// MethodCall invokes a value-dispatched `target.method(args)` (spec §4.6
// method access). Resolved statically against Target's declared compound
// type, the same as StaticCall but with an implicit receiver argument.
type MethodCall struct {
	ResultVars []int
	Target     int
	RecordID   string
	Method     string
	TypeArgs   []typesystem.Type
	Args       []int
}

func (MethodCall) opNode() {}

// RecordLiteral constructs a compound value from named field values (spec
// §9 open question: "Record literal ... lowering is a TODO in the source").
type RecordLiteral struct {
	VarID       int
	RecordID    string
	TypeArgs    []typesystem.Type
	FieldValues map[string]int
}

func (RecordLiteral) opNode() {}

// Unreachable marks a control-flow path that the elaborator has determined
// cannot be reached at runtime if the program is well-typed (e.g. the
// implicit tail of a function whose last written statement doesn't
// terminate). Kind documents why it was inserted, e.g. "return" for the
// total-return-coverage backstop (spec §4.9).
type Unreachable struct {
	Kind string
}

func (Unreachable) opNode() {}

// Package typesystem defines the IR type representation (spec §3, "IR
// Types"): a closed three-way sum of primitive, compound, and type-variable
// types, with structural equality and substitution. It plays the same role
// as the teacher's Type/Subst/Apply trio, narrowed to the three kinds this
// spec allows — no unions, tuples, or function types, since those belong to
// the teacher's dynamic language, not this statically verified one.
package typesystem

import (
	"fmt"
	"strings"
)

// Primitive enumerates the three built-in IR primitive types.
type Primitive int

const (
	Int Primitive = iota
	Boolean
	Bytes
)

func (p Primitive) String() string {
	switch p {
	case Int:
		return "Int"
	case Boolean:
		return "Boolean"
	case Bytes:
		return "Bytes"
	default:
		return "?Primitive"
	}
}

// Type is an IR type: exactly one of PrimitiveType, CompoundType, or
// TypeVarType. Two Types are equal iff structurally identical (spec §3).
type Type interface {
	isType()
	String() string
}

// PrimitiveType is Int, Boolean, or Bytes.
type PrimitiveType struct {
	Kind Primitive
}

func (PrimitiveType) isType()          {}
func (t PrimitiveType) String() string { return t.Kind.String() }

// CompoundType is a record instantiated with type arguments,
// e.g. `example.Pair[Int, Boolean]`.
type CompoundType struct {
	RecordID string
	Args     []Type
}

func (CompoundType) isType() {}
func (t CompoundType) String() string {
	if len(t.Args) == 0 {
		return t.RecordID
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", t.RecordID, strings.Join(parts, ", "))
}

// TypeVarType is a reference to a type variable by its scope-assigned id.
type TypeVarType struct {
	ID int
}

func (TypeVarType) isType()          {}
func (t TypeVarType) String() string { return fmt.Sprintf("#%d", t.ID) }

// Equal reports whether a and b are the same IR type after no further
// substitution (both sides must already be fully substituted).
func Equal(a, b Type) bool {
	switch av := a.(type) {
	case PrimitiveType:
		bv, ok := b.(PrimitiveType)
		return ok && av.Kind == bv.Kind
	case TypeVarType:
		bv, ok := b.(TypeVarType)
		return ok && av.ID == bv.ID
	case CompoundType:
		bv, ok := b.(CompoundType)
		if !ok || av.RecordID != bv.RecordID || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !Equal(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Subst maps type-variable ids to the type substituted for them.
type Subst map[int]Type

// Substitute applies s to t, recursing into compound type arguments. A type
// variable not present in s is left unchanged.
func Substitute(t Type, s Subst) Type {
	switch v := t.(type) {
	case TypeVarType:
		if repl, ok := s[v.ID]; ok {
			return repl
		}
		return v
	case CompoundType:
		if len(v.Args) == 0 {
			return v
		}
		newArgs := make([]Type, len(v.Args))
		for i, a := range v.Args {
			newArgs[i] = Substitute(a, s)
		}
		return CompoundType{RecordID: v.RecordID, Args: newArgs}
	default:
		return t
	}
}

// PositionalSubst builds a Subst mapping type-variable ids [0..len(args)) (or
// [base..base+len(args)) when base != 0) to args, in order. Used to
// substitute a callee's or a constraint's declared type parameters by actual
// type arguments (spec §4.3, §4.4, §4.6 call-expression rule).
func PositionalSubst(base int, args []Type) Subst {
	s := make(Subst, len(args))
	for i, a := range args {
		s[base+i] = a
	}
	return s
}

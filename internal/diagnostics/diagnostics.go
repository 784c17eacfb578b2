// Package diagnostics implements the structured-message error model (spec
// §4.10, §7): every user-visible failure carries an ordered sequence of
// interleaved text fragments and source locations, built eagerly at the
// point of detection. This generalizes the teacher's flat
// DiagnosticError{Code, Phase, Args, Token, File} + errorTemplates map (one
// %s-style template per code, one Token per error) into an ordered fragment
// list that can carry more than one location — needed for errors like
// EntityRedefined that must cite both the original and the duplicate
// definition.
package diagnostics

import (
	"strings"

	"github.com/funvibe/funxy/internal/token"
)

// Code enumerates the semantic error taxonomy from spec §7.
type Code string

const (
	EntityRedefined                   Code = "EntityRedefined"
	NoSuchPackage                     Code = "NoSuchPackage"
	NoSuchEntity                      Code = "NoSuchEntity"
	NamespaceAlreadyDefined           Code = "NamespaceAlreadyDefined"
	InvalidThisType                   Code = "InvalidThisType"
	MemberRedefined                   Code = "MemberRedefined"
	TypeVariableRedefined             Code = "TypeVariableRedefined"
	NoSuchTypeVariable                Code = "NoSuchTypeVariable"
	NonTypeEntityUsedAsType           Code = "NonTypeEntityUsedAsType"
	TypeUsedAsConstraint              Code = "TypeUsedAsConstraint"
	VariableRedefined                 Code = "VariableRedefined"
	VariableNotDefined                Code = "VariableNotDefined"
	MultiExpressionGrouped            Code = "MultiExpressionGrouped"
	ValueCountMismatch                Code = "ValueCountMismatch"
	TypeMismatch                      Code = "TypeMismatch"
	FieldAccessOnNonCompound          Code = "FieldAccessOnNonCompound"
	MethodAccessOnNonCompound         Code = "MethodAccessOnNonCompound"
	BooleanTypeExpected               Code = "BooleanTypeExpected"
	TypeDoesNotProvideOperator        Code = "TypeDoesNotProvideOperator"
	OperatorTypeMismatch              Code = "OperatorTypeMismatch"
	CallOnNonCompound                 Code = "CallOnNonCompound"
	NoSuchFn                          Code = "NoSuchFn"
	OperationRequiresParenthesization Code = "OperationRequiresParenthesization"
	RecursivePrecondition             Code = "RecursivePrecondition"
	ReturnExpressionUsedOutsideEnsures Code = "ReturnExpressionUsedOutsideEnsures"
	TypesDontSatisfyConstraint        Code = "TypesDontSatisfyConstraint"
	NonCompoundInRecordLiteral        Code = "NonCompoundInRecordLiteral"
	FieldRepeatedInRecordLiteral      Code = "FieldRepeatedInRecordLiteral"
	NoSuchField                       Code = "NoSuchField"
	UninitializedField                Code = "UninitializedField"
	TypeParameterCountMismatch        Code = "TypeParameterCountMismatch"
)

// Fragment is either a text run or a source location; a Message alternates
// between the two as needed to point at more than one span.
type Fragment struct {
	Text string
	Loc  *token.Location
}

// T builds a plain-text fragment.
func T(text string) Fragment { return Fragment{Text: text} }

// At builds a location fragment.
func At(loc token.Location) Fragment { return Fragment{Loc: &loc} }

// Message is an ordered sequence of interleaved fragments.
type Message []Fragment

func (m Message) String() string {
	var b strings.Builder
	for _, f := range m {
		if f.Loc != nil {
			b.WriteString(f.Loc.String())
		} else {
			b.WriteString(f.Text)
		}
	}
	return b.String()
}

// Locations returns every location fragment's Location, in order.
func (m Message) Locations() []token.Location {
	var locs []token.Location
	for _, f := range m {
		if f.Loc != nil {
			locs = append(locs, *f.Loc)
		}
	}
	return locs
}

// Error is a semantic (user-visible) compile failure. Exactly one Error
// aborts a CompileSources call (spec §7: no partial-result mode).
type Error struct {
	Code    Code
	Message Message
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message.String()
}

// New builds an Error from a code and a sequence of fragments.
func New(code Code, frags ...Fragment) *Error {
	return &Error{Code: code, Message: Message(frags)}
}

// ICE is an internal-consistency fault: a condition the spec's invariants
// guarantee cannot happen. Surfaced distinctly from semantic Errors so
// callers never mistake a bug in the elaborator for a bad input program.
type ICE struct {
	Msg string
}

func (e *ICE) Error() string { return "ICE: " + e.Msg }

// Iced raises an internal-consistency fault.
func Iced(msg string) error { return &ICE{Msg: msg} }

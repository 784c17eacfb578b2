package elaborator

import (
	"fmt"

	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/token"
)

// This file collects one constructor per diagnostics.Code the elaborator can
// raise, the same "one helper per error shape" role the teacher's
// internal/analyzer/errors.go plays for its own error taxonomy — adapted
// from the teacher's flat {code, token, args} shape to the fragment-based
// diagnostics.Message model.

func errEntityRedefined(canonical string, first, second token.Location) error {
	return diagnostics.New(diagnostics.EntityRedefined,
		diagnostics.T("entity "+canonical+" already defined at "),
		diagnostics.At(first),
		diagnostics.T(", redefined at "),
		diagnostics.At(second),
	)
}

func errNoSuchPackage(pkg string, loc token.Location) error {
	return diagnostics.New(diagnostics.NoSuchPackage,
		diagnostics.T("no such package "+pkg+" at "),
		diagnostics.At(loc),
	)
}

func errNoSuchEntity(pkg, name string, loc token.Location) error {
	return diagnostics.New(diagnostics.NoSuchEntity,
		diagnostics.T("no such entity "+pkg+"."+name+" at "),
		diagnostics.At(loc),
	)
}

func errNamespaceAlreadyDefined(pkg string, first, second token.Location) error {
	return diagnostics.New(diagnostics.NamespaceAlreadyDefined,
		diagnostics.T("namespace "+pkg+" already defined at "),
		diagnostics.At(first),
		diagnostics.T(", redefined at "),
		diagnostics.At(second),
	)
}

func errInvalidThisType(loc token.Location) error {
	return diagnostics.New(diagnostics.InvalidThisType,
		diagnostics.T("This used outside an interface at "),
		diagnostics.At(loc),
	)
}

func errMemberRedefined(canonical, name string, first, second token.Location) error {
	return diagnostics.New(diagnostics.MemberRedefined,
		diagnostics.T("member "+canonical+"."+name+" already defined at "),
		diagnostics.At(first),
		diagnostics.T(", redefined at "),
		diagnostics.At(second),
	)
}

func errTypeVariableRedefined(name string, first, second token.Location) error {
	return diagnostics.New(diagnostics.TypeVariableRedefined,
		diagnostics.T("type variable "+name+" already defined at "),
		diagnostics.At(first),
		diagnostics.T(", redefined at "),
		diagnostics.At(second),
	)
}

func errNoSuchTypeVariable(name string, loc token.Location) error {
	return diagnostics.New(diagnostics.NoSuchTypeVariable,
		diagnostics.T("no such type variable "+name+" at "),
		diagnostics.At(loc),
	)
}

func errNonTypeEntityUsedAsType(canonical string, loc token.Location) error {
	return diagnostics.New(diagnostics.NonTypeEntityUsedAsType,
		diagnostics.T("interface "+canonical+" used as a type at "),
		diagnostics.At(loc),
	)
}

func errTypeUsedAsConstraint(canonical string, loc token.Location) error {
	return diagnostics.New(diagnostics.TypeUsedAsConstraint,
		diagnostics.T(canonical+" is not an interface, used as a constraint at "),
		diagnostics.At(loc),
	)
}

func errVariableRedefined(name string, first, second token.Location) error {
	return diagnostics.New(diagnostics.VariableRedefined,
		diagnostics.T("variable "+name+" already defined at "),
		diagnostics.At(first),
		diagnostics.T(", redefined at "),
		diagnostics.At(second),
	)
}

func errVariableNotDefined(name string, loc token.Location) error {
	return diagnostics.New(diagnostics.VariableNotDefined,
		diagnostics.T("variable "+name+" not defined at "),
		diagnostics.At(loc),
	)
}

func errMultiExpressionGrouped(grouping string, loc token.Location) error {
	return diagnostics.New(diagnostics.MultiExpressionGrouped,
		diagnostics.T("expected a single value for grouping="+grouping+" at "),
		diagnostics.At(loc),
	)
}

func errValueCountMismatch(actual, expected int, loc token.Location) error {
	return diagnostics.New(diagnostics.ValueCountMismatch,
		diagnostics.T(fmt.Sprintf("actual %d, expected %d at ", actual, expected)),
		diagnostics.At(loc),
	)
}

func errTypeMismatch(from, to string, loc token.Location) error {
	return diagnostics.New(diagnostics.TypeMismatch,
		diagnostics.T(from+" -> "+to+" at "),
		diagnostics.At(loc),
	)
}

func errFieldAccessOnNonCompound(loc token.Location) error {
	return diagnostics.New(diagnostics.FieldAccessOnNonCompound,
		diagnostics.T("field access on a non-compound value at "),
		diagnostics.At(loc),
	)
}

func errMethodAccessOnNonCompound(loc token.Location) error {
	return diagnostics.New(diagnostics.MethodAccessOnNonCompound,
		diagnostics.T("method access on a non-compound value at "),
		diagnostics.At(loc),
	)
}

func errBooleanTypeExpected(reason string, loc token.Location) error {
	return diagnostics.New(diagnostics.BooleanTypeExpected,
		diagnostics.T("reason="+reason+" at "),
		diagnostics.At(loc),
	)
}

func errTypeDoesNotProvideOperator(typ, operator string, loc token.Location) error {
	return diagnostics.New(diagnostics.TypeDoesNotProvideOperator,
		diagnostics.T(typ+" does not provide operator "+operator+" at "),
		diagnostics.At(loc),
	)
}

func errOperatorTypeMismatch(operator, left, right string, loc token.Location) error {
	return diagnostics.New(diagnostics.OperatorTypeMismatch,
		diagnostics.T(left+" "+operator+" "+right+" at "),
		diagnostics.At(loc),
	)
}

func errCallOnNonCompound(loc token.Location) error {
	return diagnostics.New(diagnostics.CallOnNonCompound,
		diagnostics.T("call on a non-compound type at "),
		diagnostics.At(loc),
	)
}

func errNoSuchFn(recordID, method string, loc token.Location) error {
	return diagnostics.New(diagnostics.NoSuchFn,
		diagnostics.T("no such function "+recordID+"."+method+" at "),
		diagnostics.At(loc),
	)
}

func errOperationRequiresParenthesization(reason string, first, second token.Location) error {
	return diagnostics.New(diagnostics.OperationRequiresParenthesization,
		diagnostics.T("reason="+reason+" between "),
		diagnostics.At(first),
		diagnostics.T(" and "),
		diagnostics.At(second),
	)
}

func errReturnExpressionUsedOutsideEnsures(loc token.Location) error {
	return diagnostics.New(diagnostics.ReturnExpressionUsedOutsideEnsures,
		diagnostics.T("return expression used outside ensures at "),
		diagnostics.At(loc),
	)
}

func errTypesDontSatisfyConstraint(subject, interfaceID string, neededLoc, declLoc token.Location) error {
	return diagnostics.New(diagnostics.TypesDontSatisfyConstraint,
		diagnostics.T(subject+" is "+interfaceID+" required at "),
		diagnostics.At(neededLoc),
		diagnostics.T(", declared at "),
		diagnostics.At(declLoc),
	)
}

func errNonCompoundInRecordLiteral(loc token.Location) error {
	return diagnostics.New(diagnostics.NonCompoundInRecordLiteral,
		diagnostics.T("record literal type is not compound at "),
		diagnostics.At(loc),
	)
}

func errFieldRepeatedInRecordLiteral(field string, first, second token.Location) error {
	return diagnostics.New(diagnostics.FieldRepeatedInRecordLiteral,
		diagnostics.T("field "+field+" already given at "),
		diagnostics.At(first),
		diagnostics.T(", repeated at "),
		diagnostics.At(second),
	)
}

func errNoSuchField(recordID, field string, loc token.Location) error {
	return diagnostics.New(diagnostics.NoSuchField,
		diagnostics.T("no such field "+recordID+"."+field+" at "),
		diagnostics.At(loc),
	)
}

func errUninitializedField(recordID, field string, loc token.Location) error {
	return diagnostics.New(diagnostics.UninitializedField,
		diagnostics.T("field "+recordID+"."+field+" not initialized, literal at "),
		diagnostics.At(loc),
	)
}

func errTypeParameterCountMismatch(canonical string, actual, expected int, loc token.Location) error {
	return diagnostics.New(diagnostics.TypeParameterCountMismatch,
		diagnostics.T(fmt.Sprintf("%s expects %d type argument(s), got %d at ", canonical, expected, actual)),
		diagnostics.At(loc),
	)
}

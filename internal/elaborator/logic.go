package elaborator

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/ir"
	"github.com/funvibe/funxy/internal/typesystem"
)

var boolType = typesystem.PrimitiveType{Kind: typesystem.Boolean}

// checkBinaryExpr dispatches a resolved BinaryExpr to either short-circuit
// logical lowering or foreign arithmetic/comparison dispatch (spec §4.8).
func (fc *funcCtx) checkBinaryExpr(n *ast.BinaryExpr) (exprResult, error) {
	switch n.Operator {
	case "and", "or", "implies":
		return fc.lowerLogical(n)
	default:
		return fc.lowerArithmetic(n)
	}
}

// lowerLogical compiles `and`/`or`/`implies` to an op-branch with
// short-circuit semantics (spec §4.8).
func (fc *funcCtx) lowerLogical(n *ast.BinaryExpr) (exprResult, error) {
	left, err := fc.checkBooleanSingle(n.Left, "logical", "logical")
	if err != nil {
		return exprResult{}, err
	}

	resultVar := fc.vars.DeclareTemp(boolType, n.Loc())
	ops := append(append([]ir.Op(nil), left.Ops...), ir.VarDecl{VarID: resultVar, Name: "$branch", Type: boolType})

	trueBlock, falseBlock, err := fc.logicalSides(n, left.Vars[0], resultVar)
	if err != nil {
		return exprResult{}, err
	}
	ops = append(ops, ir.Branch{Cond: left.Vars[0], TrueBlock: trueBlock, FalseBlock: falseBlock})

	return exprResult{Ops: ops, Vars: []int{resultVar}, Types: []typesystem.Type{boolType}}, nil
}

// logicalSides builds the true/false sub-blocks for one logical operator,
// each evaluating the right operand (when needed) inside its own fresh
// variable block so its temporaries cannot leak (spec §4.8).
func (fc *funcCtx) logicalSides(n *ast.BinaryExpr, leftVar, resultVar int) (trueBlock, falseBlock []ir.Op, err error) {
	assignLeft := []ir.Op{ir.Assign{Target: resultVar, Value: leftVar}}

	evalRight := func() ([]ir.Op, error) {
		fc.vars.OpenBlock()
		defer fc.vars.CloseBlock()
		right, err := fc.checkBooleanSingle(n.Right, "logical", "logical")
		if err != nil {
			return nil, err
		}
		return append(right.Ops, ir.Assign{Target: resultVar, Value: right.Vars[0]}), nil
	}

	switch n.Operator {
	case "or":
		rightOps, err := evalRight()
		if err != nil {
			return nil, nil, err
		}
		return assignLeft, rightOps, nil

	case "and":
		rightOps, err := evalRight()
		if err != nil {
			return nil, nil, err
		}
		return rightOps, assignLeft, nil

	case "implies":
		rightOps, err := evalRight()
		if err != nil {
			return nil, nil, err
		}
		trueConst := fc.vars.DeclareTemp(boolType, n.Loc())
		falseOps := []ir.Op{
			ir.Const{VarID: trueConst, Type: boolType, Value: true},
			ir.Assign{Target: resultVar, Value: trueConst},
		}
		return rightOps, falseOps, nil

	default:
		return nil, nil, nil
	}
}

// lowerArithmetic dispatches a non-logical binary operator to a foreign
// function call (spec §4.8: "Arithmetic/comparison operators dispatch on
// the left-hand type").
func (fc *funcCtx) lowerArithmetic(n *ast.BinaryExpr) (exprResult, error) {
	left, err := fc.checkSingle(n.Left, "operator")
	if err != nil {
		return exprResult{}, err
	}
	right, err := fc.checkSingle(n.Right, "operator")
	if err != nil {
		return exprResult{}, err
	}

	foreignName, ok := foreignOperatorName(left.Types[0], n.Operator)
	if !ok {
		return exprResult{}, errTypeDoesNotProvideOperator(left.Types[0].String(), n.Operator, n.Loc())
	}
	sig := fc.pc.Foreign[foreignName]
	if !typesystem.Equal(right.Types[0], sig.Parameters[len(sig.Parameters)-1].Type) {
		return exprResult{}, errOperatorTypeMismatch(n.Operator, left.Types[0].String(), right.Types[0].String(), n.Loc())
	}

	resultVar := fc.vars.DeclareTemp(sig.ReturnTypes[0], n.Loc())
	var ops []ir.Op
	ops = append(ops, left.Ops...)
	ops = append(ops, right.Ops...)
	ops = append(ops, ir.ForeignCall{ResultVars: []int{resultVar}, Name: foreignName, Args: []int{left.Vars[0], right.Vars[0]}})
	return exprResult{Ops: ops, Vars: []int{resultVar}, Types: []typesystem.Type{sig.ReturnTypes[0]}}, nil
}

// foreignOperatorName maps a left-hand type and source operator to the
// foreign function name dispatching it (spec §4.8, §6: "exactly Int==,
// Int+, Int-").
func foreignOperatorName(left typesystem.Type, operator string) (string, bool) {
	prim, ok := left.(typesystem.PrimitiveType)
	if !ok || prim.Kind != typesystem.Int {
		return "", false
	}
	switch operator {
	case "==":
		return "Int==", true
	case "+":
		return "Int+", true
	case "-":
		return "Int-", true
	default:
		return "", false
	}
}

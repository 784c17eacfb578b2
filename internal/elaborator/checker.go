package elaborator

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/ir"
	"github.com/funvibe/funxy/internal/typesystem"
)

// funcCtx is the per-function checking context threaded through statement
// and expression checking during Pass 3 (spec §4.6, §4.9).
type funcCtx struct {
	pc          *ProgramContext
	sc          *SourceContext
	scope       *TypeScope
	vars        *VariableStack
	returnTypes []typesystem.Type

	// inEnsures and returnVars/returnValTypes are set while compiling an
	// `ensures` clause, where the `return` keyword yields the synthetic
	// return-tuple (spec §4.6, §4.9).
	inEnsures      bool
	returnVars     []int
	returnValTypes []typesystem.Type
}

// exprResult is the fan-out of compiling one expression: the ops needed to
// compute it, the variable ids holding its (possibly multiple) values, and
// their types, in order.
type exprResult struct {
	Ops   []ir.Op
	Vars  []int
	Types []typesystem.Type
}

func single(op ir.Op, varID int, typ typesystem.Type) exprResult {
	return exprResult{Ops: []ir.Op{op}, Vars: []int{varID}, Types: []typesystem.Type{typ}}
}

// checkExpr type-checks and lowers one expression into IR (spec §4.6).
func (fc *funcCtx) checkExpr(e ast.Expr) (exprResult, error) {
	switch n := e.(type) {
	case *ast.OperatorChain:
		tree, err := buildPrecedenceTree(n)
		if err != nil {
			return exprResult{}, err
		}
		return fc.checkExpr(tree)

	case *ast.BinaryExpr:
		return fc.checkBinaryExpr(n)

	case *ast.Identifier:
		id, typ, ok := fc.vars.Lookup(n.Name)
		if !ok {
			return exprResult{}, errVariableNotDefined(n.Name, n.Loc())
		}
		return exprResult{Vars: []int{id}, Types: []typesystem.Type{typ}}, nil

	case *ast.ParenExpr:
		inner, err := fc.checkExpr(n.Inner)
		if err != nil {
			return exprResult{}, err
		}
		if len(inner.Vars) != 1 {
			return exprResult{}, errMultiExpressionGrouped("paren", n.Loc())
		}
		return inner, nil

	case *ast.IntLiteral:
		id := fc.vars.DeclareTemp(typesystem.PrimitiveType{Kind: typesystem.Int}, n.Loc())
		return single(ir.Const{VarID: id, Type: typesystem.PrimitiveType{Kind: typesystem.Int}, Value: n.Value}, id, typesystem.PrimitiveType{Kind: typesystem.Int}), nil

	case *ast.StringLiteral:
		id := fc.vars.DeclareTemp(typesystem.PrimitiveType{Kind: typesystem.Bytes}, n.Loc())
		return single(ir.Const{VarID: id, Type: typesystem.PrimitiveType{Kind: typesystem.Bytes}, Value: n.Value}, id, typesystem.PrimitiveType{Kind: typesystem.Bytes}), nil

	case *ast.BoolLiteral:
		id := fc.vars.DeclareTemp(typesystem.PrimitiveType{Kind: typesystem.Boolean}, n.Loc())
		return single(ir.Const{VarID: id, Type: typesystem.PrimitiveType{Kind: typesystem.Boolean}, Value: n.Value}, id, typesystem.PrimitiveType{Kind: typesystem.Boolean}), nil

	case *ast.ReturnExpr:
		if !fc.inEnsures {
			return exprResult{}, errReturnExpressionUsedOutsideEnsures(n.Loc())
		}
		return exprResult{Vars: append([]int(nil), fc.returnVars...), Types: append([]typesystem.Type(nil), fc.returnValTypes...)}, nil

	case *ast.CallExpr:
		return fc.checkCallExpr(n)

	case *ast.FieldAccessExpr:
		return fc.checkFieldAccess(n)

	case *ast.MethodAccessExpr:
		return fc.checkMethodAccess(n)

	case *ast.RecordLiteralExpr:
		return fc.checkRecordLiteral(n)

	default:
		return exprResult{}, diagnostics.Iced("unknown expression node")
	}
}

// checkSingle checks e, failing MultiExpressionGrouped(grouping) if it does
// not yield exactly one value.
func (fc *funcCtx) checkSingle(e ast.Expr, grouping string) (exprResult, error) {
	res, err := fc.checkExpr(e)
	if err != nil {
		return exprResult{}, err
	}
	if len(res.Vars) != 1 {
		return exprResult{}, errMultiExpressionGrouped(grouping, e.Loc())
	}
	return res, nil
}

// checkBooleanSingle checks e, requiring a single boolean value (used by
// `if`, contract clauses, and logical-operator operands).
func (fc *funcCtx) checkBooleanSingle(e ast.Expr, grouping, reason string) (exprResult, error) {
	res, err := fc.checkSingle(e, grouping)
	if err != nil {
		return exprResult{}, err
	}
	if _, ok := res.Types[0].(typesystem.PrimitiveType); !ok || res.Types[0].(typesystem.PrimitiveType).Kind != typesystem.Boolean {
		return exprResult{}, errBooleanTypeExpected(reason, e.Loc())
	}
	return res, nil
}

// evalArgs evaluates a left-to-right expression list, flattening each
// expression's (possibly multi-valued) result into one combined tuple.
func (fc *funcCtx) evalArgs(exprs []ast.Expr) (exprResult, error) {
	var out exprResult
	for _, e := range exprs {
		res, err := fc.checkExpr(e)
		if err != nil {
			return exprResult{}, err
		}
		out.Ops = append(out.Ops, res.Ops...)
		out.Vars = append(out.Vars, res.Vars...)
		out.Types = append(out.Types, res.Types...)
	}
	return out, nil
}

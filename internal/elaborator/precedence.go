package elaborator

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
)

// assoc is an operator's associativity.
type assoc int

const (
	leftAssoc assoc = iota
	rightAssoc
	nonAssoc
)

// opInfo is an operator's {precedence, associativity, associationGroup}
// (spec §4.7, step 1).
type opInfo struct {
	precedence int
	assoc      assoc
	group      string
}

// operatorTable is the fixed, small, table-driven precedence table (spec §9:
// "avoid ad-hoc recursive descent ... the parser has already produced a flat
// operator list").
var operatorTable = map[string]opInfo{
	"implies": {precedence: 0, assoc: rightAssoc, group: "implies"},
	"and":     {precedence: 0, assoc: leftAssoc, group: "and"},
	"or":      {precedence: 0, assoc: leftAssoc, group: "or"},
	"<":       {precedence: 1, assoc: leftAssoc, group: "<"},
	"<=":      {precedence: 1, assoc: leftAssoc, group: "<"},
	">":       {precedence: 1, assoc: leftAssoc, group: ">"},
	">=":      {precedence: 1, assoc: leftAssoc, group: ">"},
	"==":      {precedence: 1, assoc: nonAssoc, group: "=="},
	"!=":      {precedence: 1, assoc: nonAssoc, group: "!="},
}

func lookupOpInfo(operator string) opInfo {
	if info, ok := operatorTable[operator]; ok {
		return info
	}
	return opInfo{precedence: 2, assoc: nonAssoc, group: operator}
}

// buildPrecedenceTree rewrites a flat, parser-produced operator chain into a
// properly associated BinaryExpr tree (spec §4.7). Implemented as a
// precedence-climbing reduction over the flat list (rather than the
// "sort, then fold from the right" description of the algorithm) with an
// explicit post-join compatibility check — this produces the same tree the
// spec's three-step procedure describes and makes the associativity
// violations explicit at the point a join is created.
func buildPrecedenceTree(chain *ast.OperatorChain) (ast.Expr, error) {
	if len(chain.Rest) == 0 {
		return chain.Head, nil
	}

	operands := make([]ast.Expr, 0, len(chain.Rest)+1)
	operands = append(operands, chain.Head)
	for _, r := range chain.Rest {
		operands = append(operands, r.Operand)
	}
	ops := chain.Rest

	pos := 0 // index into ops of the next operator to consider

	var climb func(minPrec int) (ast.Expr, error)
	climb = func(minPrec int) (ast.Expr, error) {
		left := operands[pos]

		for pos < len(ops) {
			info := lookupOpInfo(ops[pos].Operator)
			if info.precedence < minPrec {
				break
			}
			opTok := ops[pos]
			pos++

			nextMin := info.precedence + 1
			if info.assoc == rightAssoc {
				nextMin = info.precedence
			}

			right, err := climb(nextMin)
			if err != nil {
				return nil, err
			}

			if err := checkJoinCompatible(info, opTok, left); err != nil {
				return nil, err
			}
			if err := checkJoinCompatible(info, opTok, right); err != nil {
				return nil, err
			}

			left = &ast.BinaryExpr{Operator: opTok.Operator, OpLoc: opTok.OpLoc, Left: left, Right: right}
		}
		return left, nil
	}

	return climb(0)
}

// checkJoinCompatible implements spec §4.7 step 3: a child subtree of lower
// precedence than the new join is an internal error (the climbing
// construction above guarantees this cannot happen); equal precedence
// requires an equal associationGroup; a strictly non-associative join (or a
// non-associative child) forbids an equal-precedence child altogether.
func checkJoinCompatible(newInfo opInfo, newOp ast.OperatorOperand, child ast.Expr) error {
	be, ok := child.(*ast.BinaryExpr)
	if !ok {
		return nil
	}
	childInfo := lookupOpInfo(be.Operator)

	if childInfo.precedence < newInfo.precedence {
		return diagnostics.Iced("operator-precedence tree: child has lower precedence than its parent join")
	}
	if childInfo.precedence != newInfo.precedence {
		return nil
	}
	if newInfo.assoc == nonAssoc || childInfo.assoc == nonAssoc {
		return errOperationRequiresParenthesization("non-associative", be.OpLoc, newOp.OpLoc)
	}
	if childInfo.group != newInfo.group {
		return errOperationRequiresParenthesization("unordered", be.OpLoc, newOp.OpLoc)
	}
	return nil
}

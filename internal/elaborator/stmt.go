package elaborator

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/ir"
	"github.com/funvibe/funxy/internal/typesystem"
)

// checkBlock compiles a statement list inside a fresh variable block (spec
// §4.6).
func (fc *funcCtx) checkBlock(b *ast.Block) ([]ir.Op, error) {
	fc.vars.OpenBlock()
	defer fc.vars.CloseBlock()

	var ops []ir.Op
	for _, s := range b.Stmts {
		stmtOps, err := fc.checkStmt(s)
		if err != nil {
			return nil, err
		}
		ops = append(ops, stmtOps...)
	}
	return ops, nil
}

func (fc *funcCtx) checkStmt(s ast.Stmt) ([]ir.Op, error) {
	switch n := s.(type) {
	case *ast.VarStmt:
		return fc.checkVarStmt(n)
	case *ast.ReturnStmt:
		return fc.checkReturnStmt(n)
	case *ast.IfStmt:
		return fc.checkIfStmt(n)
	case *ast.UnreachableStmt:
		return []ir.Op{ir.Unreachable{Kind: "source"}}, nil
	default:
		return nil, diagnostics.Iced("unknown statement node")
	}
}

// checkVarStmt compiles `var v1: T1, v2: T2 = e1, e2;` (spec §4.6).
func (fc *funcCtx) checkVarStmt(n *ast.VarStmt) ([]ir.Op, error) {
	values, err := fc.evalArgs(n.Values)
	if err != nil {
		return nil, err
	}
	if len(values.Vars) != len(n.Decls) {
		return nil, errValueCountMismatch(len(values.Vars), len(n.Decls), n.Loc())
	}

	ops := append([]ir.Op(nil), values.Ops...)
	for i, decl := range n.Decls {
		declType, err := fc.pc.compileType(decl.Type, fc.scope, fc.sc, CheckConstraints)
		if err != nil {
			return nil, err
		}
		if !typesystem.Equal(values.Types[i], declType) {
			return nil, errTypeMismatch(values.Types[i].String(), declType.String(), decl.Type.Loc())
		}
		id, err := fc.vars.Declare(decl.Name, declType, decl.NameLoc)
		if err != nil {
			return nil, err
		}
		ops = append(ops, ir.VarDecl{VarID: id, Name: decl.Name, Type: declType})
		ops = append(ops, ir.Assign{Target: id, Value: values.Vars[i]})
	}
	return ops, nil
}

// checkReturnStmt compiles `return e1, e2;` against the enclosing
// function's declared return types (spec §4.6).
func (fc *funcCtx) checkReturnStmt(n *ast.ReturnStmt) ([]ir.Op, error) {
	values, err := fc.evalArgs(n.Values)
	if err != nil {
		return nil, err
	}
	if len(values.Vars) != len(fc.returnTypes) {
		return nil, errValueCountMismatch(len(values.Vars), len(fc.returnTypes), n.Loc())
	}
	for i, want := range fc.returnTypes {
		if !typesystem.Equal(values.Types[i], want) {
			return nil, errTypeMismatch(values.Types[i].String(), want.String(), argLoc(n.Values, i, n.Loc()))
		}
	}
	ops := append(append([]ir.Op(nil), values.Ops...), ir.Return{Values: values.Vars})
	return ops, nil
}

// checkIfStmt compiles `if/else if/else`, chaining remaining clauses as
// nested branches on the false side (spec §4.6).
func (fc *funcCtx) checkIfStmt(n *ast.IfStmt) ([]ir.Op, error) {
	cond, err := fc.checkBooleanSingle(n.Cond, "if", "if")
	if err != nil {
		return nil, err
	}
	trueOps, err := fc.checkBlock(n.Then)
	if err != nil {
		return nil, err
	}

	var falseOps []ir.Op
	switch {
	case n.ElseIf != nil:
		falseOps, err = fc.checkIfStmt(n.ElseIf)
		if err != nil {
			return nil, err
		}
	case n.Else != nil:
		falseOps, err = fc.checkBlock(n.Else)
		if err != nil {
			return nil, err
		}
	}

	ops := append(append([]ir.Op(nil), cond.Ops...), ir.Branch{Cond: cond.Vars[0], TrueBlock: trueOps, FalseBlock: falseOps})
	return ops, nil
}

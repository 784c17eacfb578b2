package elaborator

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/ir"
	"github.com/funvibe/funxy/internal/token"
	"github.com/funvibe/funxy/internal/typesystem"
)

// checkCallExpr lowers an explicit static call `Type.method(args)` (spec
// §4.6, "Call expression").
func (fc *funcCtx) checkCallExpr(n *ast.CallExpr) (exprResult, error) {
	typ, err := fc.pc.compileType(n.Type, fc.scope, fc.sc, CheckConstraints)
	if err != nil {
		return exprResult{}, err
	}
	ct, ok := typ.(typesystem.CompoundType)
	if !ok {
		return exprResult{}, errCallOnNonCompound(n.Loc())
	}
	entity := fc.pc.Entities[ct.RecordID]
	fnEntry, ok := entity.Functions[n.Method]
	if !ok {
		return exprResult{}, errNoSuchFn(ct.RecordID, n.Method, n.MethodLoc)
	}

	args, err := fc.evalArgs(n.Args)
	if err != nil {
		return exprResult{}, err
	}
	if len(args.Vars) != len(fnEntry.ParamTypes) {
		return exprResult{}, errValueCountMismatch(len(args.Vars), len(fnEntry.ParamTypes), n.Loc())
	}

	subst := typesystem.PositionalSubst(0, ct.Args)
	for i, want := range fnEntry.ParamTypes {
		expected := typesystem.Substitute(want, subst)
		if !typesystem.Equal(args.Types[i], expected) {
			return exprResult{}, errTypeMismatch(args.Types[i].String(), expected.String(), argLoc(n.Args, i, n.Loc()))
		}
	}

	resultVars := make([]int, len(fnEntry.ReturnTypes))
	resultTypes := make([]typesystem.Type, len(fnEntry.ReturnTypes))
	for i, rt := range fnEntry.ReturnTypes {
		sub := typesystem.Substitute(rt, subst)
		resultVars[i] = fc.vars.DeclareTemp(sub, n.Loc())
		resultTypes[i] = sub
	}

	ops := append(args.Ops, ir.StaticCall{ResultVars: resultVars, FnID: fnEntry.ID, TypeArgs: ct.Args, Args: args.Vars})
	return exprResult{Ops: ops, Vars: resultVars, Types: resultTypes}, nil
}

// checkFieldAccess lowers `target.name` (spec §4.6, "Field/method access").
func (fc *funcCtx) checkFieldAccess(n *ast.FieldAccessExpr) (exprResult, error) {
	target, err := fc.checkSingle(n.Target, "field")
	if err != nil {
		return exprResult{}, err
	}
	ct, ok := target.Types[0].(typesystem.CompoundType)
	if !ok {
		return exprResult{}, errFieldAccessOnNonCompound(n.Loc())
	}
	entity := fc.pc.Entities[ct.RecordID]
	field, ok := findField(entity, n.Field)
	if !ok {
		return exprResult{}, errNoSuchField(ct.RecordID, n.Field, n.FieldLoc)
	}

	subst := typesystem.PositionalSubst(0, ct.Args)
	fieldType := typesystem.Substitute(field.Type, subst)
	id := fc.vars.DeclareTemp(fieldType, n.Loc())
	ops := append(target.Ops, ir.FieldRead{VarID: id, Target: target.Vars[0], RecordID: ct.RecordID, Field: n.Field})
	return exprResult{Ops: ops, Vars: []int{id}, Types: []typesystem.Type{fieldType}}, nil
}

// checkMethodAccess lowers `target.method(args)` (spec §4.6, value-dispatched
// method call).
func (fc *funcCtx) checkMethodAccess(n *ast.MethodAccessExpr) (exprResult, error) {
	target, err := fc.checkSingle(n.Target, "method")
	if err != nil {
		return exprResult{}, err
	}
	ct, ok := target.Types[0].(typesystem.CompoundType)
	if !ok {
		return exprResult{}, errMethodAccessOnNonCompound(n.Loc())
	}
	entity := fc.pc.Entities[ct.RecordID]
	fnEntry, ok := entity.Functions[n.Method]
	if !ok {
		return exprResult{}, errNoSuchFn(ct.RecordID, n.Method, n.MethodLoc)
	}

	args, err := fc.evalArgs(n.Args)
	if err != nil {
		return exprResult{}, err
	}
	if len(args.Vars) != len(fnEntry.ParamTypes) {
		return exprResult{}, errValueCountMismatch(len(args.Vars), len(fnEntry.ParamTypes), n.Loc())
	}

	subst := typesystem.PositionalSubst(0, ct.Args)
	for i, want := range fnEntry.ParamTypes {
		expected := typesystem.Substitute(want, subst)
		if !typesystem.Equal(args.Types[i], expected) {
			return exprResult{}, errTypeMismatch(args.Types[i].String(), expected.String(), argLoc(n.Args, i, n.Loc()))
		}
	}

	resultVars := make([]int, len(fnEntry.ReturnTypes))
	resultTypes := make([]typesystem.Type, len(fnEntry.ReturnTypes))
	for i, rt := range fnEntry.ReturnTypes {
		sub := typesystem.Substitute(rt, subst)
		resultVars[i] = fc.vars.DeclareTemp(sub, n.Loc())
		resultTypes[i] = sub
	}

	var ops []ir.Op
	ops = append(ops, target.Ops...)
	ops = append(ops, args.Ops...)
	ops = append(ops, ir.MethodCall{ResultVars: resultVars, Target: target.Vars[0], RecordID: ct.RecordID, Method: n.Method, TypeArgs: ct.Args, Args: args.Vars})
	return exprResult{Ops: ops, Vars: resultVars, Types: resultTypes}, nil
}

// checkRecordLiteral lowers `Type{ f1 = e1, ... }` (spec §9 open question:
// "Record literal ... lowering is a TODO in the source" — resolved here;
// see DESIGN.md).
func (fc *funcCtx) checkRecordLiteral(n *ast.RecordLiteralExpr) (exprResult, error) {
	typ, err := fc.pc.compileType(n.Type, fc.scope, fc.sc, CheckConstraints)
	if err != nil {
		return exprResult{}, err
	}
	ct, ok := typ.(typesystem.CompoundType)
	if !ok {
		return exprResult{}, errNonCompoundInRecordLiteral(n.Loc())
	}
	entity := fc.pc.Entities[ct.RecordID]
	subst := typesystem.PositionalSubst(0, ct.Args)

	seen := make(map[string]token.Location)
	fieldValues := make(map[string]int)
	var ops []ir.Op

	for _, fl := range n.Fields {
		if prev, dup := seen[fl.Name]; dup {
			return exprResult{}, errFieldRepeatedInRecordLiteral(fl.Name, prev, fl.NameLoc)
		}
		seen[fl.Name] = fl.NameLoc

		field, ok := findField(entity, fl.Name)
		if !ok {
			return exprResult{}, errNoSuchField(ct.RecordID, fl.Name, fl.NameLoc)
		}

		val, err := fc.checkSingle(fl.Value, "record-literal")
		if err != nil {
			return exprResult{}, err
		}
		expected := typesystem.Substitute(field.Type, subst)
		if !typesystem.Equal(val.Types[0], expected) {
			return exprResult{}, errTypeMismatch(val.Types[0].String(), expected.String(), fl.Value.Loc())
		}

		ops = append(ops, val.Ops...)
		fieldValues[fl.Name] = val.Vars[0]
	}

	for _, field := range entity.Fields {
		if _, ok := fieldValues[field.Name]; !ok {
			return exprResult{}, errUninitializedField(ct.RecordID, field.Name, n.Loc())
		}
	}

	id := fc.vars.DeclareTemp(ct, n.Loc())
	ops = append(ops, ir.RecordLiteral{VarID: id, RecordID: ct.RecordID, TypeArgs: ct.Args, FieldValues: fieldValues})
	return exprResult{Ops: ops, Vars: []int{id}, Types: []typesystem.Type{ct}}, nil
}

func findField(entity *EntityDef, name string) (FieldEntry, bool) {
	for _, f := range entity.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldEntry{}, false
}

// argLoc picks the location of the i'th argument expression when it exists,
// falling back to the call's own location. It only anchors the location:
// the TypeMismatch diagnostics built with it carry no tuple-index text.
func argLoc(args []ast.Expr, i int, fallback token.Location) token.Location {
	if i < len(args) {
		return args[i].Loc()
	}
	return fallback
}

package elaborator

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/ir"
	"github.com/funvibe/funxy/internal/typesystem"
)

// compileTypes elaborates a list of AST type expressions in order.
func compileTypes(pc *ProgramContext, exprs []ast.TypeExpr, scope *TypeScope, sc *SourceContext, mode CheckMode) ([]typesystem.Type, error) {
	out := make([]typesystem.Type, len(exprs))
	for i, e := range exprs {
		t, err := pc.compileType(e, scope, sc, mode)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// BodyCheckerPass is Pass 3 (spec §4.9): with hasCollectedMembers true,
// re-elaborates every type with constraint-checking enabled, type-checks
// function bodies into IR, lowers contract clauses, and assembles the
// output ir.Program.
type BodyCheckerPass struct{}

func (BodyCheckerPass) Name() string { return "body-and-signature-checking" }

func (BodyCheckerPass) Run(pc *ProgramContext) error {
	for _, canonical := range pc.orderedEntityNames() {
		if err := checkEntity(pc, pc.Entities[canonical]); err != nil {
			return err
		}
	}
	return nil
}

func checkEntity(pc *ProgramContext, entity *EntityDef) error {
	sc := pc.SourceContexts[entity.SourceID]

	switch entity.AST.(type) {
	case *ast.RecordDefinition:
		if err := reElaborateFields(pc, entity, sc); err != nil {
			return err
		}
		record := &ir.Record{
			TypeParameters: append([]string(nil), entity.Scope.DebugNames...),
			Fields:         make([]ir.Field, len(entity.Fields)),
		}
		for i, f := range entity.Fields {
			record.Fields[i] = ir.Field{Name: f.Name, Type: f.Type}
		}
		pc.Program.Records[entity.CanonicalName] = record

		for _, name := range entity.FunctionOrder {
			fn, err := checkFunction(pc, entity, sc, entity.Functions[name])
			if err != nil {
				return err
			}
			pc.Program.Functions[fn.ID] = fn
		}
		return nil

	case *ast.InterfaceDefinition:
		iface := &ir.Interface{
			TypeParameters: append([]string(nil), entity.Scope.DebugNames...),
			Signatures:     make(map[string]ir.Signature, len(entity.FunctionOrder)),
		}
		for _, name := range entity.FunctionOrder {
			sig, err := buildSignature(pc, entity, sc, entity.Functions[name])
			if err != nil {
				return err
			}
			iface.Signatures[name] = sig
		}
		pc.Program.Interfaces[entity.CanonicalName] = iface
		return nil

	default:
		return nil
	}
}

func reElaborateFields(pc *ProgramContext, entity *EntityDef, sc *SourceContext) error {
	def := entity.AST.(*ast.RecordDefinition)
	fields := make([]FieldEntry, len(def.Fields))
	for i, f := range def.Fields {
		t, err := pc.compileType(f.Type, entity.Scope, sc, CheckConstraints)
		if err != nil {
			return err
		}
		fields[i] = FieldEntry{Name: f.Name, Type: t, Loc: f.NameLoc}
	}
	entity.Fields = fields
	return nil
}

// buildSignature re-elaborates a function's parameter/return types in check
// mode and lowers its contract clauses (spec §4.9). It does not require a
// body — interface members never have one.
func buildSignature(pc *ProgramContext, entity *EntityDef, sc *SourceContext, fnEntry *FunctionEntry) (ir.Signature, error) {
	def := fnEntry.AST
	vars := NewVariableStack()
	fc := &funcCtx{pc: pc, sc: sc, scope: entity.Scope, vars: vars}

	params := make([]ir.Param, len(def.Parameters))
	for i, p := range def.Parameters {
		t, err := pc.compileType(p.Type, entity.Scope, sc, CheckConstraints)
		if err != nil {
			return ir.Signature{}, err
		}
		if _, err := vars.Declare(p.Name, t, p.NameLoc); err != nil {
			return ir.Signature{}, err
		}
		params[i] = ir.Param{Name: p.Name, Type: t}
	}

	retTypes, err := compileTypes(pc, def.Returns, entity.Scope, sc, CheckConstraints)
	if err != nil {
		return ir.Signature{}, err
	}
	fc.returnTypes = retTypes

	preconditions, err := compileContractClauses(fc, def.Requires)
	if err != nil {
		return ir.Signature{}, err
	}

	fc.inEnsures = true
	fc.returnVars = make([]int, len(retTypes))
	fc.returnValTypes = retTypes
	for i, t := range retTypes {
		fc.returnVars[i] = vars.DeclareTemp(t, def.Loc)
	}
	postconditions, err := compileContractClauses(fc, def.Ensures)
	if err != nil {
		return ir.Signature{}, err
	}
	fc.inEnsures = false

	constraintParams := make([]ir.ConstraintParam, len(entity.Scope.Constraints))
	for i, c := range entity.Scope.Constraints {
		constraintParams[i] = ir.ConstraintParam{InterfaceID: c.InterfaceID, Subjects: c.Subjects}
	}

	return ir.Signature{
		TypeParameters:       append([]string(nil), entity.Scope.DebugNames...),
		ConstraintParameters: constraintParams,
		Parameters:           params,
		ReturnTypes:          retTypes,
		Preconditions:        preconditions,
		Postconditions:       postconditions,
	}, nil
}

// checkFunction builds a record function's full signature and, since
// records (unlike interfaces) carry bodies, also type-checks its body block,
// backstopping total return coverage with an op-unreachable (spec §4.9).
func checkFunction(pc *ProgramContext, entity *EntityDef, sc *SourceContext, fnEntry *FunctionEntry) (*ir.Function, error) {
	sig, err := buildSignature(pc, entity, sc, fnEntry)
	if err != nil {
		return nil, err
	}

	vars := NewVariableStack()
	for i, p := range sig.Parameters {
		if _, err := vars.Declare(p.Name, p.Type, fnEntry.AST.Parameters[i].NameLoc); err != nil {
			return nil, err
		}
	}
	fc := &funcCtx{pc: pc, sc: sc, scope: entity.Scope, vars: vars, returnTypes: sig.ReturnTypes}

	body, err := fc.checkBlock(fnEntry.AST.Body)
	if err != nil {
		return nil, err
	}
	if !terminates(body) {
		body = append(body, ir.Unreachable{Kind: "return"})
	}

	return &ir.Function{ID: fnEntry.ID, Signature: sig, Body: body}, nil
}

// terminates reports whether the last op of a block is op-return or
// op-unreachable (spec §8, "Termination").
func terminates(ops []ir.Op) bool {
	if len(ops) == 0 {
		return false
	}
	switch ops[len(ops)-1].(type) {
	case ir.Return, ir.Unreachable:
		return true
	default:
		return false
	}
}

func compileContractClauses(fc *funcCtx, exprs []ast.Expr) ([]ir.Block, error) {
	blocks := make([]ir.Block, len(exprs))
	for i, e := range exprs {
		fc.vars.OpenBlock()
		res, err := fc.checkBooleanSingle(e, "contract", "contract")
		fc.vars.CloseBlock()
		if err != nil {
			return nil, err
		}
		blocks[i] = ir.Block{Ops: res.Ops, ResultVar: res.Vars[0]}
	}
	return blocks, nil
}

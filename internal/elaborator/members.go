package elaborator

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/typesystem"
)

// MemberCollectorPass is the second half of Pass 2 (spec §4.5): installs
// each entity's type-parameter scope, its declared constraints (elaborated
// in skip mode), and its field/function member tables.
type MemberCollectorPass struct{}

func (MemberCollectorPass) Name() string { return "member-collection" }

func (MemberCollectorPass) Run(pc *ProgramContext) error {
	if err := resolveSourceContexts(pc); err != nil {
		return err
	}
	for _, canonical := range pc.orderedEntityNames() {
		if err := collectMembers(pc, pc.Entities[canonical]); err != nil {
			return err
		}
	}
	pc.MarkMembersCollected()
	return nil
}

func collectMembers(pc *ProgramContext, entity *EntityDef) error {
	sc := pc.SourceContexts[entity.SourceID]
	tpl := entity.AST.TypeParamList()

	for _, tp := range tpl.Params {
		if _, err := entity.Scope.DeclareVar(tp.Name, tp.Loc); err != nil {
			return err
		}
	}

	for _, c := range tpl.Constraints {
		subjectExpr := &ast.VarTypeExpr{Name: c.TypeVarName, TokLoc: c.TypeVarLoc}
		cb, err := pc.elaborateConstraint(subjectExpr, c.InterfaceName, c.Args, entity.Scope, sc, SkipConstraints, c.Loc)
		if err != nil {
			return err
		}
		entity.Scope.Constraints = append(entity.Scope.Constraints, cb)
	}

	switch def := entity.AST.(type) {
	case *ast.RecordDefinition:
		if err := collectImplements(pc, entity, sc, def); err != nil {
			return err
		}
		if err := collectFields(pc, entity, sc, def); err != nil {
			return err
		}
		return collectFunctions(pc, entity, sc, def.Functions)

	case *ast.InterfaceDefinition:
		return collectFunctions(pc, entity, sc, def.Functions)

	default:
		return nil
	}
}

func collectImplements(pc *ProgramContext, entity *EntityDef, sc *SourceContext, def *ast.RecordDefinition) error {
	for _, impl := range def.Implements {
		ownArgs := make([]typesystem.Type, len(entity.Scope.DebugNames))
		for i := range entity.Scope.DebugNames {
			ownArgs[i] = typesystem.TypeVarType{ID: i}
		}

		canonical, err := pc.resolveEntityName(impl.InterfaceName.Package, impl.InterfaceName.Name, impl.InterfaceName.Loc, sc)
		if err != nil {
			return err
		}
		iface := pc.Entities[canonical]
		if iface.Kind != InterfaceEntity {
			return errTypeUsedAsConstraint(canonical, impl.InterfaceName.Loc)
		}

		args := make([]typesystem.Type, 0, len(impl.Args)+1)
		args = append(args, typesystem.CompoundType{RecordID: entity.CanonicalName, Args: ownArgs})
		for _, a := range impl.Args {
			t, err := pc.compileType(a, entity.Scope, sc, SkipConstraints)
			if err != nil {
				return err
			}
			args = append(args, t)
		}

		entity.Implements = append(entity.Implements, ConstraintBinding{
			InterfaceID: canonical,
			Subjects:    args,
			Loc:         impl.Loc,
		})
	}
	return nil
}

func collectFields(pc *ProgramContext, entity *EntityDef, sc *SourceContext, def *ast.RecordDefinition) error {
	for _, f := range def.Fields {
		if err := entity.claimMember(f.Name, f.NameLoc); err != nil {
			return err
		}
		t, err := pc.compileType(f.Type, entity.Scope, sc, SkipConstraints)
		if err != nil {
			return err
		}
		entity.Fields = append(entity.Fields, FieldEntry{Name: f.Name, Type: t, Loc: f.NameLoc})
	}
	return nil
}

func collectFunctions(pc *ProgramContext, entity *EntityDef, sc *SourceContext, fns []ast.FnSignature) error {
	for _, fn := range fns {
		if err := entity.claimMember(fn.Name, fn.NameLoc); err != nil {
			return err
		}

		paramTypes := make([]typesystem.Type, len(fn.Parameters))
		for i, p := range fn.Parameters {
			t, err := pc.compileType(p.Type, entity.Scope, sc, SkipConstraints)
			if err != nil {
				return err
			}
			paramTypes[i] = t
		}
		returnTypes := make([]typesystem.Type, len(fn.Returns))
		for i, r := range fn.Returns {
			t, err := pc.compileType(r, entity.Scope, sc, SkipConstraints)
			if err != nil {
				return err
			}
			returnTypes[i] = t
		}

		id := ""
		if entity.Kind == RecordEntity {
			id = entity.CanonicalName + "." + fn.Name
		}
		entity.Functions[fn.Name] = &FunctionEntry{
			Name:        fn.Name,
			ID:          id,
			AST:         fn,
			ParamTypes:  paramTypes,
			ReturnTypes: returnTypes,
		}
		entity.FunctionOrder = append(entity.FunctionOrder, fn.Name)
	}
	return nil
}

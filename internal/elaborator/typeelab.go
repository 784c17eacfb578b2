package elaborator

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/token"
	"github.com/funvibe/funxy/internal/typesystem"
)

// CheckMode selects whether compileType verifies constraint satisfaction
// (spec §4.3). The spec's own hasCollectedMembers invariant pins exactly one
// mode to each pass, so mismatches are internal consistency faults, not
// semantic errors.
type CheckMode int

const (
	SkipConstraints CheckMode = iota
	CheckConstraints
)

// compileType maps an AST type expression to an IR type (spec §4.3).
func (pc *ProgramContext) compileType(expr ast.TypeExpr, scope *TypeScope, sc *SourceContext, mode CheckMode) (typesystem.Type, error) {
	if mode == CheckConstraints && !pc.hasCollectedMembers {
		return nil, diagnostics.Iced("compileType(check) called before member collection completed")
	}
	if mode == SkipConstraints && pc.hasCollectedMembers {
		return nil, diagnostics.Iced("compileType(skip) called after member collection completed")
	}

	switch e := expr.(type) {
	case *ast.ThisTypeExpr:
		if scope.ThisType == nil {
			return nil, errInvalidThisType(e.Loc())
		}
		return *scope.ThisType, nil

	case *ast.KeywordTypeExpr:
		switch e.Kind {
		case ast.KeywordString:
			return typesystem.PrimitiveType{Kind: typesystem.Bytes}, nil
		case ast.KeywordInt:
			return typesystem.PrimitiveType{Kind: typesystem.Int}, nil
		case ast.KeywordBoolean:
			return typesystem.PrimitiveType{Kind: typesystem.Boolean}, nil
		default:
			return nil, diagnostics.Iced("unknown keyword type kind")
		}

	case *ast.VarTypeExpr:
		id, ok := scope.LookupVar(e.Name)
		if !ok {
			return nil, errNoSuchTypeVariable(e.Name, e.Loc())
		}
		return typesystem.TypeVarType{ID: id}, nil

	case *ast.NamedTypeExpr:
		return pc.compileNamedType(e, scope, sc, mode)

	default:
		return nil, diagnostics.Iced("unknown type expression node")
	}
}

func (pc *ProgramContext) compileNamedType(e *ast.NamedTypeExpr, scope *TypeScope, sc *SourceContext, mode CheckMode) (typesystem.Type, error) {
	canonical, err := pc.resolveEntityName(e.Qualifier, e.Name, e.Loc(), sc)
	if err != nil {
		return nil, err
	}
	entity := pc.Entities[canonical]
	if entity.Kind == InterfaceEntity {
		return nil, errNonTypeEntityUsedAsType(canonical, e.Loc())
	}
	if len(e.Args) != entity.typeParamCount() {
		return nil, errTypeParameterCountMismatch(canonical, len(e.Args), entity.typeParamCount(), e.Loc())
	}

	args := make([]typesystem.Type, len(e.Args))
	for i, a := range e.Args {
		t, err := pc.compileType(a, scope, sc, mode)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}

	result := typesystem.CompoundType{RecordID: canonical, Args: args}

	if mode == CheckConstraints {
		subst := typesystem.PositionalSubst(0, args)
		for _, declared := range entity.Scope.Constraints {
			needed := declared.substitute(subst)
			if ok, _ := pc.satisfies(needed, scope); !ok {
				return nil, errTypesDontSatisfyConstraint(needed.Subjects[0].String(), needed.InterfaceID, e.Loc(), declared.Loc)
			}
		}
	}

	return result, nil
}

// elaborateConstraint resolves one `subject is InterfaceName[args...]`
// clause into a ConstraintBinding (spec §4.4). Its caller passes a
// synthesized VarTypeExpr for the constrained type parameter; record-header
// `is Interface` declarations are built by collectImplements instead.
func (pc *ProgramContext) elaborateConstraint(subjectExpr ast.TypeExpr, ifaceName ast.QualifiedName, args []ast.TypeExpr, scope *TypeScope, sc *SourceContext, mode CheckMode, loc token.Location) (ConstraintBinding, error) {
	canonical, err := pc.resolveEntityName(ifaceName.Package, ifaceName.Name, ifaceName.Loc, sc)
	if err != nil {
		return ConstraintBinding{}, err
	}
	iface := pc.Entities[canonical]
	if iface.Kind != InterfaceEntity {
		return ConstraintBinding{}, errTypeUsedAsConstraint(canonical, ifaceName.Loc)
	}

	subject, err := pc.compileType(subjectExpr, scope, sc, mode)
	if err != nil {
		return ConstraintBinding{}, err
	}
	subjects := make([]typesystem.Type, 0, len(args)+1)
	subjects = append(subjects, subject)
	for _, a := range args {
		t, err := pc.compileType(a, scope, sc, mode)
		if err != nil {
			return ConstraintBinding{}, err
		}
		subjects = append(subjects, t)
	}

	return ConstraintBinding{InterfaceID: canonical, Subjects: subjects, Loc: loc}, nil
}

// satisfies implements the constraint-search policy spec §4.4 leaves open:
// a constraint is satisfied iff an available declaration's substituted
// subjects are structurally equal to the needed ones. Available
// declarations are (a) the ambient scope's own constraint list and (b) the
// record-level `is Interface` declarations on the needed subject's base
// type, substituted by its actual type arguments.
func (pc *ProgramContext) satisfies(needed ConstraintBinding, ambient *TypeScope) (bool, token.Location) {
	for _, cb := range ambient.Constraints {
		if cb.InterfaceID == needed.InterfaceID && subjectsEqual(cb.Subjects, needed.Subjects) {
			return true, cb.Loc
		}
	}

	if len(needed.Subjects) == 0 {
		return false, token.Location{}
	}
	ct, ok := needed.Subjects[0].(typesystem.CompoundType)
	if !ok {
		return false, token.Location{}
	}
	entity, ok := pc.Entities[ct.RecordID]
	if !ok {
		return false, token.Location{}
	}
	subst := typesystem.PositionalSubst(0, ct.Args)
	for _, decl := range entity.Implements {
		substituted := decl.substitute(subst)
		if substituted.InterfaceID == needed.InterfaceID && subjectsEqual(substituted.Subjects, needed.Subjects) {
			return true, decl.Loc
		}
	}
	return false, token.Location{}
}

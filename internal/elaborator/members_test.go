package elaborator

import (
	"testing"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/token"
	"github.com/funvibe/funxy/internal/typesystem"
)

func runThroughMemberCollection(t *testing.T, src *ast.Source) (*ProgramContext, error) {
	t.Helper()
	pc := NewProgramContext(map[token.SourceID]*ast.Source{src.ID: src})
	if err := (EntityCollectorPass{}).Run(pc); err != nil {
		t.Fatalf("entity collection failed: %v", err)
	}
	return pc, (MemberCollectorPass{}).Run(pc)
}

func TestMemberCollectorInstallsTypeParametersInDeclarationOrder(t *testing.T) {
	src := &ast.Source{
		ID:      1,
		Package: "p",
		Definitions: []ast.Definition{
			&ast.RecordDefinition{
				EntityName: "Pair",
				TypeParams: ast.TypeParamList{Params: []ast.TypeParam{{Name: "T"}, {Name: "U"}}},
				Fields: []ast.FieldDef{
					{Name: "first", Type: &ast.VarTypeExpr{Name: "T"}},
					{Name: "second", Type: &ast.VarTypeExpr{Name: "U"}},
				},
			},
		},
	}

	pc, err := runThroughMemberCollection(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entity := pc.Entities["p.Pair"]
	first := entity.Fields[0].Type.(typesystem.TypeVarType)
	second := entity.Fields[1].Type.(typesystem.TypeVarType)
	if first.ID != 0 || second.ID != 1 {
		t.Fatalf("got ids (%d, %d), want (0, 1)", first.ID, second.ID)
	}
	if !pc.HasCollectedMembers() {
		t.Fatalf("expected hasCollectedMembers to be set after MemberCollectorPass")
	}
}

func TestMemberCollectorDetectsFieldRedefinedAsFunction(t *testing.T) {
	// Fields and functions share one member namespace per record.
	src := &ast.Source{
		ID:      1,
		Package: "p",
		Definitions: []ast.Definition{
			&ast.RecordDefinition{
				EntityName: "Thing",
				Fields:     []ast.FieldDef{{Name: "x", Type: &ast.KeywordTypeExpr{Kind: ast.KeywordInt}}},
				Functions:  []ast.FnSignature{{Name: "x", Body: &ast.Block{}}},
			},
		},
	}

	_, err := runThroughMemberCollection(t, src)
	semErr, ok := err.(*diagnostics.Error)
	if !ok || semErr.Code != diagnostics.MemberRedefined {
		t.Fatalf("got %v (%T), want MemberRedefined", err, err)
	}
}

func TestMemberCollectorDetectsTypeVariableRedefinition(t *testing.T) {
	src := &ast.Source{
		ID:      1,
		Package: "p",
		Definitions: []ast.Definition{
			&ast.RecordDefinition{
				EntityName: "Pair",
				TypeParams: ast.TypeParamList{Params: []ast.TypeParam{{Name: "T"}, {Name: "T"}}},
			},
		},
	}

	_, err := runThroughMemberCollection(t, src)
	semErr, ok := err.(*diagnostics.Error)
	if !ok || semErr.Code != diagnostics.TypeVariableRedefined {
		t.Fatalf("got %v (%T), want TypeVariableRedefined", err, err)
	}
}

func TestMemberCollectorRecordFunctionIDsAreQualified(t *testing.T) {
	src := &ast.Source{
		ID:      1,
		Package: "p",
		Definitions: []ast.Definition{
			&ast.RecordDefinition{
				EntityName: "Thing",
				Functions:  []ast.FnSignature{{Name: "Do", Body: &ast.Block{}}},
			},
		},
	}

	pc, err := runThroughMemberCollection(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := pc.Entities["p.Thing"].Functions["Do"]
	if fn.ID != "p.Thing.Do" {
		t.Fatalf("got ID %q, want p.Thing.Do", fn.ID)
	}
}

func TestMemberCollectorInterfaceFunctionHasNoID(t *testing.T) {
	src := &ast.Source{
		ID:      1,
		Package: "p",
		Definitions: []ast.Definition{
			&ast.InterfaceDefinition{
				EntityName: "Greeter",
				Functions:  []ast.FnSignature{{Name: "Greet", Returns: []ast.TypeExpr{&ast.KeywordTypeExpr{Kind: ast.KeywordString}}}},
			},
		},
	}

	pc, err := runThroughMemberCollection(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := pc.Entities["p.Greeter"].Functions["Greet"]
	if fn.ID != "" {
		t.Fatalf("got ID %q, want empty (interface members are never directly callable)", fn.ID)
	}
}

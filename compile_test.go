package funxy

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/ir"
	"github.com/funvibe/funxy/internal/token"
	"github.com/funvibe/funxy/internal/typesystem"
)

// --- small AST-building helpers, local to this test file -----------------

func kwInt() *ast.KeywordTypeExpr     { return &ast.KeywordTypeExpr{Kind: ast.KeywordInt} }
func kwBool() *ast.KeywordTypeExpr    { return &ast.KeywordTypeExpr{Kind: ast.KeywordBoolean} }
func namedType(name string, args ...ast.TypeExpr) *ast.NamedTypeExpr {
	return &ast.NamedTypeExpr{Name: name, Args: args}
}
func id(name string) *ast.Identifier { return &ast.Identifier{Name: name} }
func intLit(v int64) *ast.IntLiteral { return &ast.IntLiteral{Value: v} }

func opChain(head ast.Expr, op string, right ast.Expr) *ast.OperatorChain {
	return &ast.OperatorChain{Head: head, Rest: []ast.OperatorOperand{{Operator: op, Operand: right}}}
}

func block(stmts ...ast.Stmt) *ast.Block { return &ast.Block{Stmts: stmts} }

func sources(srcs ...*ast.Source) map[token.SourceID]*ast.Source {
	out := make(map[token.SourceID]*ast.Source, len(srcs))
	for _, s := range srcs {
		out[s.ID] = s
	}
	return out
}

// --- scenario 1: a full arithmetic function compiles successfully --------

func TestCompileSources_SuccessfulArithmeticFunction(t *testing.T) {
	src := &ast.Source{
		ID:      1,
		Package: "math",
		Definitions: []ast.Definition{
			&ast.RecordDefinition{
				EntityName: "Box",
				Fields:     []ast.FieldDef{{Name: "v", Type: kwInt()}},
				Functions: []ast.FnSignature{
					{
						Name:       "Add",
						Parameters: []ast.ParamDef{{Name: "a", Type: kwInt()}, {Name: "b", Type: kwInt()}},
						Returns:    []ast.TypeExpr{kwInt()},
						Body:       block(&ast.ReturnStmt{Values: []ast.Expr{opChain(id("a"), "+", id("b"))}}),
					},
				},
			},
		},
	}

	prog, err := CompileSources(sources(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := prog.Records["math.Box"]; !ok {
		t.Fatalf("expected record math.Box in output program")
	}
	fn, ok := prog.Functions["math.Box.Add"]
	if !ok {
		t.Fatalf("expected function math.Box.Add in output program")
	}
	if len(fn.Body) == 0 {
		t.Fatalf("expected a non-empty function body")
	}
	last := fn.Body[len(fn.Body)-1]
	ret, ok := last.(ir.Return)
	if !ok || len(ret.Values) != 1 {
		t.Fatalf("expected body to terminate in a single-value op-return, got %#v", last)
	}
	foundForeign := false
	for _, op := range fn.Body {
		if fc, ok := op.(ir.ForeignCall); ok && fc.Name == "Int+" {
			foundForeign = true
		}
	}
	if !foundForeign {
		t.Fatalf("expected an Int+ foreign call somewhere in the body, got %#v", fn.Body)
	}
}

// --- scenario 2: redefinition detection cites both locations --------------

func TestCompileSources_EntityRedefinedCitesBothLocations(t *testing.T) {
	first := token.Location{FileID: 1, Offset: 0}
	second := token.Location{FileID: 1, Offset: 50}
	src := &ast.Source{
		ID:      1,
		Package: "p",
		Definitions: []ast.Definition{
			&ast.RecordDefinition{EntityName: "X", EntityLoc: first},
			&ast.RecordDefinition{EntityName: "X", EntityLoc: second},
		},
	}

	_, err := CompileSources(sources(src))
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.Code != diagnostics.EntityRedefined {
		t.Fatalf("got code %v, want EntityRedefined", err.Code)
	}
	locs := err.Message.Locations()
	if len(locs) != 2 || locs[0] != first || locs[1] != second {
		t.Fatalf("got locations %v, want [%v %v]", locs, first, second)
	}
}

// --- scenario 3: value-count mismatch in a var statement -------------------

func TestCompileSources_ValueCountMismatch(t *testing.T) {
	src := &ast.Source{
		ID:      1,
		Package: "p",
		Definitions: []ast.Definition{
			&ast.RecordDefinition{
				EntityName: "Driver",
				Functions: []ast.FnSignature{
					{
						Name: "Run",
						Body: block(&ast.VarStmt{
							Decls:  []ast.VarDecl{{Name: "x", Type: kwInt()}},
							Values: []ast.Expr{intLit(1), intLit(2)},
						}),
					},
				},
			},
		},
	}

	_, err := CompileSources(sources(src))
	if err == nil || err.Code != diagnostics.ValueCountMismatch {
		t.Fatalf("got %v, want ValueCountMismatch", err)
	}
}

// --- scenario 4: type mismatch in a var statement --------------------------

func TestCompileSources_TypeMismatch(t *testing.T) {
	src := &ast.Source{
		ID:      1,
		Package: "p",
		Definitions: []ast.Definition{
			&ast.RecordDefinition{
				EntityName: "Driver",
				Functions: []ast.FnSignature{
					{
						Name: "Run",
						Body: block(&ast.VarStmt{
							Decls:  []ast.VarDecl{{Name: "x", Type: kwBool()}},
							Values: []ast.Expr{intLit(1)},
						}),
					},
				},
			},
		},
	}

	_, err := CompileSources(sources(src))
	if err == nil || err.Code != diagnostics.TypeMismatch {
		t.Fatalf("got %v, want TypeMismatch", err)
	}
}

// --- scenario 5: ambiguous operator join requires parenthesization --------

func TestCompileSources_AmbiguousOperatorJoinRequiresParenthesization(t *testing.T) {
	src := &ast.Source{
		ID:      1,
		Package: "p",
		Definitions: []ast.Definition{
			&ast.RecordDefinition{
				EntityName: "Driver",
				Functions: []ast.FnSignature{
					{
						Name:       "Run",
						Parameters: []ast.ParamDef{{Name: "a", Type: kwInt()}, {Name: "b", Type: kwInt()}, {Name: "c", Type: kwInt()}},
						Body: block(&ast.IfStmt{
							Cond: &ast.OperatorChain{
								Head: id("a"),
								Rest: []ast.OperatorOperand{
									{Operator: "<", Operand: id("b")},
									{Operator: ">", Operand: id("c")},
								},
							},
							Then: block(),
						}),
					},
				},
			},
		},
	}

	_, err := CompileSources(sources(src))
	if err == nil || err.Code != diagnostics.OperationRequiresParenthesization {
		t.Fatalf("got %v, want OperationRequiresParenthesization", err)
	}
}

// --- scenarios 6 & 7: constraint satisfaction totality (fail / succeed) ---

func eqAndDriver(boxName string, implementsEq bool) *ast.Source {
	boxFields := []ast.FieldDef{{Name: "v", Type: kwInt()}}
	var implements []ast.ImplementsClause
	if implementsEq {
		implements = []ast.ImplementsClause{{InterfaceName: ast.QualifiedName{Name: "Eq"}}}
	}

	varStmt := &ast.VarStmt{
		Decls: []ast.VarDecl{{Name: "w", Type: namedType("Wrapper", namedType(boxName))}},
		Values: []ast.Expr{&ast.RecordLiteralExpr{
			Type:   namedType("Wrapper", namedType(boxName)),
			Fields: []ast.RecordLiteralField{{Name: "v", Value: id("b")}},
		}},
	}

	return &ast.Source{
		ID:      1,
		Package: "p",
		Definitions: []ast.Definition{
			&ast.InterfaceDefinition{
				EntityName: "Eq",
				Functions: []ast.FnSignature{
					{Name: "eq", Parameters: []ast.ParamDef{{Name: "other", Type: &ast.ThisTypeExpr{}}}, Returns: []ast.TypeExpr{kwBool()}},
				},
			},
			&ast.RecordDefinition{
				EntityName: boxName,
				Fields:     boxFields,
				Implements: implements,
			},
			&ast.RecordDefinition{
				EntityName: "Wrapper",
				TypeParams: ast.TypeParamList{
					Params: []ast.TypeParam{{Name: "T"}},
					Constraints: []ast.ConstraintClause{
						{TypeVarName: "T", InterfaceName: ast.QualifiedName{Name: "Eq"}},
					},
				},
				Fields: []ast.FieldDef{{Name: "v", Type: &ast.VarTypeExpr{Name: "T"}}},
			},
			&ast.RecordDefinition{
				EntityName: "Driver",
				Functions: []ast.FnSignature{
					{
						Name:       "Run",
						Parameters: []ast.ParamDef{{Name: "b", Type: namedType(boxName)}},
						Body:       block(varStmt),
					},
				},
			},
		},
	}
}

func TestCompileSources_ConstraintSatisfied(t *testing.T) {
	src := eqAndDriver("IntBox", true)
	prog, err := CompileSources(sources(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := prog.Functions["p.Driver.Run"]; !ok {
		t.Fatalf("expected p.Driver.Run in output program")
	}
}

func TestCompileSources_ConstraintNotSatisfied(t *testing.T) {
	src := eqAndDriver("PlainBox", false)
	_, err := CompileSources(sources(src))
	if err == nil || err.Code != diagnostics.TypesDontSatisfyConstraint {
		t.Fatalf("got %v, want TypesDontSatisfyConstraint", err)
	}
}

// --- termination backstop: an implicit fall-through gets op-unreachable ---

func TestCompileSources_ImplicitFallThroughGetsUnreachableBackstop(t *testing.T) {
	src := &ast.Source{
		ID:      1,
		Package: "p",
		Definitions: []ast.Definition{
			&ast.RecordDefinition{
				EntityName: "Driver",
				Functions: []ast.FnSignature{
					{Name: "Noop", Body: block()},
				},
			},
		},
	}

	prog, err := CompileSources(sources(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := prog.Functions["p.Driver.Noop"]
	if len(fn.Body) != 1 {
		t.Fatalf("got body %#v, want a single op-unreachable", fn.Body)
	}
	unreach, ok := fn.Body[0].(ir.Unreachable)
	if !ok || unreach.Kind != "return" {
		t.Fatalf("got %#v, want Unreachable{Kind: \"return\"}", fn.Body[0])
	}
}

// --- structural IR shape: deep-equality via go-cmp -------------------------

func TestCompileSources_RecordIRShapeMatchesExactly(t *testing.T) {
	src := &ast.Source{
		ID:      1,
		Package: "p",
		Definitions: []ast.Definition{
			&ast.RecordDefinition{
				EntityName: "Pair",
				Fields: []ast.FieldDef{
					{Name: "x", Type: kwInt()},
					{Name: "y", Type: kwBool()},
				},
			},
		},
	}

	prog, err := CompileSources(sources(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &ir.Record{
		Fields: []ir.Field{
			{Name: "x", Type: typesystem.PrimitiveType{Kind: typesystem.Int}},
			{Name: "y", Type: typesystem.PrimitiveType{Kind: typesystem.Boolean}},
		},
	}
	got := prog.Records["p.Pair"]
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record shape mismatch (-want +got):\n%s", diff)
	}
}

// --- name-scope completeness: an unresolved reference fails ---------------

func TestCompileSources_UnresolvedTypeReferenceFails(t *testing.T) {
	src := &ast.Source{
		ID:      1,
		Package: "p",
		Definitions: []ast.Definition{
			&ast.RecordDefinition{
				EntityName: "Driver",
				Fields:     []ast.FieldDef{{Name: "v", Type: namedType("Nonexistent")}},
			},
		},
	}

	_, err := CompileSources(sources(src))
	if err == nil || err.Code != diagnostics.NoSuchEntity {
		t.Fatalf("got %v, want NoSuchEntity", err)
	}
}

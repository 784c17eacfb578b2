package elaborator

import (
	"testing"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
)

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func chain(head ast.Expr, ops ...ast.OperatorOperand) *ast.OperatorChain {
	return &ast.OperatorChain{Head: head, Rest: ops}
}

func opnd(op string, operand ast.Expr) ast.OperatorOperand {
	return ast.OperatorOperand{Operator: op, Operand: operand}
}

func TestBuildPrecedenceTreeSingleOperator(t *testing.T) {
	tree, err := buildPrecedenceTree(chain(ident("a"), opnd("+", ident("b"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	be, ok := tree.(*ast.BinaryExpr)
	if !ok || be.Operator != "+" {
		t.Fatalf("got %#v, want BinaryExpr{+}", tree)
	}
}

func TestBuildPrecedenceTreeSameGroupLeftAssociativeFoldsWithoutError(t *testing.T) {
	// a < b <= c: both operators share the "<" group, so this must fold
	// without ambiguity into ((a < b) <= c).
	tree, err := buildPrecedenceTree(chain(ident("a"), opnd("<", ident("b")), opnd("<=", ident("c"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer, ok := tree.(*ast.BinaryExpr)
	if !ok || outer.Operator != "<=" {
		t.Fatalf("got %#v, want outer operator <=", tree)
	}
	inner, ok := outer.Left.(*ast.BinaryExpr)
	if !ok || inner.Operator != "<" {
		t.Fatalf("got %#v, want inner operator <", outer.Left)
	}
}

func TestBuildPrecedenceTreeDifferentGroupSamePrecedenceIsAmbiguous(t *testing.T) {
	// a < b > c: "<" and ">" are different groups at the same precedence.
	_, err := buildPrecedenceTree(chain(ident("a"), opnd("<", ident("b")), opnd(">", ident("c"))))
	semErr, ok := err.(*diagnostics.Error)
	if !ok || semErr.Code != diagnostics.OperationRequiresParenthesization {
		t.Fatalf("got %v (%T), want OperationRequiresParenthesization", err, err)
	}
}

func TestBuildPrecedenceTreeNonAssociativeRepeatIsAmbiguous(t *testing.T) {
	// a == b == c: == is declared non-associative.
	_, err := buildPrecedenceTree(chain(ident("a"), opnd("==", ident("b")), opnd("==", ident("c"))))
	semErr, ok := err.(*diagnostics.Error)
	if !ok || semErr.Code != diagnostics.OperationRequiresParenthesization {
		t.Fatalf("got %v (%T), want OperationRequiresParenthesization", err, err)
	}
}

func TestBuildPrecedenceTreeImpliesIsRightAssociative(t *testing.T) {
	// a implies b implies c must parse as a implies (b implies c) without error.
	tree, err := buildPrecedenceTree(chain(ident("a"), opnd("implies", ident("b")), opnd("implies", ident("c"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer, ok := tree.(*ast.BinaryExpr)
	if !ok || outer.Operator != "implies" {
		t.Fatalf("got %#v", tree)
	}
	right, ok := outer.Right.(*ast.BinaryExpr)
	if !ok || right.Operator != "implies" {
		t.Fatalf("got %#v, want right-associated implies", outer.Right)
	}
	if _, ok := outer.Left.(*ast.BinaryExpr); ok {
		t.Fatalf("expected left operand to be the bare identifier a, got %#v", outer.Left)
	}
}

func TestBuildPrecedenceTreeDifferentPrecedenceBindsTighter(t *testing.T) {
	// a == b and c: == binds tighter than and (different precedence tiers),
	// so this must parse as (a == b) and c without ambiguity.
	tree, err := buildPrecedenceTree(chain(ident("a"), opnd("==", ident("b")), opnd("and", ident("c"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer, ok := tree.(*ast.BinaryExpr)
	if !ok || outer.Operator != "and" {
		t.Fatalf("got %#v, want outer operator and", tree)
	}
	left, ok := outer.Left.(*ast.BinaryExpr)
	if !ok || left.Operator != "==" {
		t.Fatalf("got %#v, want left operand ==", outer.Left)
	}
}

func TestBuildPrecedenceTreeAndOrSamePrecedenceDifferentGroupIsAmbiguous(t *testing.T) {
	_, err := buildPrecedenceTree(chain(ident("a"), opnd("and", ident("b")), opnd("or", ident("c"))))
	semErr, ok := err.(*diagnostics.Error)
	if !ok || semErr.Code != diagnostics.OperationRequiresParenthesization {
		t.Fatalf("got %v (%T), want OperationRequiresParenthesization", err, err)
	}
}

func TestBuildPrecedenceTreeNoOperatorsReturnsHeadUnchanged(t *testing.T) {
	head := ident("a")
	tree, err := buildPrecedenceTree(chain(head))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree != ast.Expr(head) {
		t.Fatalf("expected the bare head back unchanged")
	}
}

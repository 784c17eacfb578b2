// Package ast defines the input contract the elaborator consumes: the shape
// of already-parsed source files. The parser that produces these trees is an
// external collaborator (spec §1); this package only fixes node shapes.
package ast

import "github.com/funvibe/funxy/internal/token"

// Source is one parsed source file.
type Source struct {
	ID          token.SourceID
	Package     string
	PackageLoc  token.Location
	Imports     []Import
	Definitions []Definition
}

// ImportKind distinguishes the two import forms.
type ImportKind int

const (
	// ImportPackage is `import pkg;` — binds a namespace qualifier.
	ImportPackage ImportKind = iota
	// ImportEntity is `import pkg.Name;` — binds a single short name.
	ImportEntity
)

// Import is one import clause.
type Import struct {
	Kind    ImportKind
	Package string
	Name    string // only set when Kind == ImportEntity
	Loc     token.Location
}

// Definition is a top-level record or interface definition.
type Definition interface {
	Name() string
	NameLoc() token.Location
	Loc() token.Location
	IsInterface() bool
	TypeParamList() TypeParamList
}

// TypeParamList is the `[#T, #U | constraints...]` clause on an entity.
type TypeParamList struct {
	Params      []TypeParam
	Constraints []ConstraintClause
}

// TypeParam is a single declared type variable, e.g. `#T`.
type TypeParam struct {
	Name string
	Loc  token.Location
}

// ConstraintClause is `T is Interface[args...]`.
type ConstraintClause struct {
	TypeVarName   string
	TypeVarLoc    token.Location
	InterfaceName QualifiedName
	Args          []TypeExpr
	Loc           token.Location
}

// QualifiedName is `pkg.Name` or bare `Name`.
type QualifiedName struct {
	Package string // "" when unqualified
	Name    string
	Loc     token.Location
}

// ImplementsClause is a record-header `is Interface[args...]` declaration.
type ImplementsClause struct {
	InterfaceName QualifiedName
	Args          []TypeExpr
	Loc           token.Location
}

// FieldDef is one record field.
type FieldDef struct {
	Name    string
	NameLoc token.Location
	Type    TypeExpr
}

// ParamDef is one function parameter.
type ParamDef struct {
	Name    string
	NameLoc token.Location
	Type    TypeExpr
}

// FnSignature is a function signature, with an optional body (record
// functions have one; interface member signatures never do).
type FnSignature struct {
	Proof      bool
	Name       string
	NameLoc    token.Location
	Parameters []ParamDef
	Returns    []TypeExpr
	Requires   []Expr
	Ensures    []Expr
	Body       *Block // nil for interface members
	Loc        token.Location
}

// RecordDefinition is a top-level `record` definition.
type RecordDefinition struct {
	EntityName string
	EntityLoc  token.Location // location of the name token
	TypeParams TypeParamList
	Implements []ImplementsClause
	Fields     []FieldDef
	Functions  []FnSignature
	DefLoc     token.Location
}

func (d *RecordDefinition) Name() string                   { return d.EntityName }
func (d *RecordDefinition) NameLoc() token.Location         { return d.EntityLoc }
func (d *RecordDefinition) Loc() token.Location             { return d.DefLoc }
func (d *RecordDefinition) IsInterface() bool               { return false }
func (d *RecordDefinition) TypeParamList() TypeParamList    { return d.TypeParams }

// InterfaceDefinition is a top-level `interface` definition.
type InterfaceDefinition struct {
	EntityName string
	EntityLoc  token.Location
	TypeParams TypeParamList
	Functions  []FnSignature
	DefLoc     token.Location
}

func (d *InterfaceDefinition) Name() string                { return d.EntityName }
func (d *InterfaceDefinition) NameLoc() token.Location      { return d.EntityLoc }
func (d *InterfaceDefinition) Loc() token.Location          { return d.DefLoc }
func (d *InterfaceDefinition) IsInterface() bool            { return true }
func (d *InterfaceDefinition) TypeParamList() TypeParamList { return d.TypeParams }

// --- Type expressions -------------------------------------------------

// TypeExpr is a type as written in source, before elaboration.
type TypeExpr interface {
	typeExprNode()
	Loc() token.Location
}

// ThisTypeExpr is the keyword `This`, valid only inside an interface.
type ThisTypeExpr struct{ TokLoc token.Location }

func (e *ThisTypeExpr) typeExprNode()       {}
func (e *ThisTypeExpr) Loc() token.Location { return e.TokLoc }

// KeywordTypeKind enumerates the built-in primitive type keywords.
type KeywordTypeKind int

const (
	KeywordInt KeywordTypeKind = iota
	KeywordBoolean
	KeywordString
)

// KeywordTypeExpr is one of `Int`, `Boolean`, `String`.
type KeywordTypeExpr struct {
	Kind   KeywordTypeKind
	TokLoc token.Location
}

func (e *KeywordTypeExpr) typeExprNode()       {}
func (e *KeywordTypeExpr) Loc() token.Location { return e.TokLoc }

// VarTypeExpr is a reference to a declared type variable, e.g. `T`.
type VarTypeExpr struct {
	Name   string
	TokLoc token.Location
}

func (e *VarTypeExpr) typeExprNode()       {}
func (e *VarTypeExpr) Loc() token.Location { return e.TokLoc }

// NamedTypeExpr is `pkg.Name[args...]` or `Name[args...]`.
type NamedTypeExpr struct {
	Qualifier string // "" when unqualified
	Name      string
	Args      []TypeExpr
	TokLoc    token.Location
}

func (e *NamedTypeExpr) typeExprNode()       {}
func (e *NamedTypeExpr) Loc() token.Location { return e.TokLoc }

// --- Statements ---------------------------------------------------------

// Stmt is a statement: var, return, if, or the unreachable pseudo-statement.
type Stmt interface {
	stmtNode()
	Loc() token.Location
}

// Block is a brace-delimited sequence of statements.
type Block struct {
	Stmts  []Stmt
	TokLoc token.Location
}

// VarDecl is one `name: Type` slot in a `var` statement.
type VarDecl struct {
	Name    string
	NameLoc token.Location
	Type    TypeExpr
}

// VarStmt is `var v1: T1, v2: T2 = e1, e2;`.
type VarStmt struct {
	Decls  []VarDecl
	Values []Expr
	TokLoc token.Location
}

func (s *VarStmt) stmtNode()          {}
func (s *VarStmt) Loc() token.Location { return s.TokLoc }

// ReturnStmt is `return e1, e2;`.
type ReturnStmt struct {
	Values []Expr
	TokLoc token.Location
}

func (s *ReturnStmt) stmtNode()          {}
func (s *ReturnStmt) Loc() token.Location { return s.TokLoc }

// IfStmt is `if cond { ... } else if cond2 { ... } else { ... }`. ElseIf
// chains to the next clause; Else is only ever set on the final clause.
type IfStmt struct {
	Cond   Expr
	Then   *Block
	ElseIf *IfStmt
	Else   *Block
	TokLoc token.Location
}

func (s *IfStmt) stmtNode()          {}
func (s *IfStmt) Loc() token.Location { return s.TokLoc }

// UnreachableStmt is the pseudo-statement a source writes to assert dead
// code, marking a path that never returns a value through normal control
// flow. The assembler's return-coverage backstop does not use this node; it
// appends an ir.Unreachable op directly.
type UnreachableStmt struct {
	TokLoc token.Location
}

func (s *UnreachableStmt) stmtNode()          {}
func (s *UnreachableStmt) Loc() token.Location { return s.TokLoc }

// --- Expressions ---------------------------------------------------------

// Expr is any expression atom, operator chain, or call form.
type Expr interface {
	exprNode()
	Loc() token.Location
}

// OperatorOperand is one `(operator, operand)` pair in a raw operator chain,
// exactly as the parser hands it to us (left-to-right, unparenthesized).
type OperatorOperand struct {
	Operator string
	OpLoc    token.Location
	Operand  Expr
}

// OperatorChain is the flat, unparsed left-to-right sequence the parser
// produces for any expression involving infix operators. The
// operator-precedence tree builder (spec §4.7) rewrites this into nested
// BinaryExpr nodes before type checking ever sees it.
type OperatorChain struct {
	Head   Expr
	Rest    []OperatorOperand
	TokLoc token.Location
}

func (e *OperatorChain) exprNode()          {}
func (e *OperatorChain) Loc() token.Location { return e.TokLoc }

// BinaryExpr is a resolved infix application, produced only by the
// precedence tree builder — never by the parser directly.
type BinaryExpr struct {
	Operator string
	OpLoc    token.Location
	Left     Expr
	Right    Expr
}

func (e *BinaryExpr) exprNode()          {}
func (e *BinaryExpr) Loc() token.Location { return e.OpLoc }

// Identifier is a bare name reference.
type Identifier struct {
	Name   string
	TokLoc token.Location
}

func (e *Identifier) exprNode()          {}
func (e *Identifier) Loc() token.Location { return e.TokLoc }

// ParenExpr is a parenthesized sub-expression; it must be single-valued.
type ParenExpr struct {
	Inner  Expr
	TokLoc token.Location
}

func (e *ParenExpr) exprNode()          {}
func (e *ParenExpr) Loc() token.Location { return e.TokLoc }

// IntLiteral is an integer literal.
type IntLiteral struct {
	Value  int64
	TokLoc token.Location
}

func (e *IntLiteral) exprNode()          {}
func (e *IntLiteral) Loc() token.Location { return e.TokLoc }

// StringLiteral is a string literal (IR type Bytes).
type StringLiteral struct {
	Value  string
	TokLoc token.Location
}

func (e *StringLiteral) exprNode()          {}
func (e *StringLiteral) Loc() token.Location { return e.TokLoc }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Value  bool
	TokLoc token.Location
}

func (e *BoolLiteral) exprNode()          {}
func (e *BoolLiteral) Loc() token.Location { return e.TokLoc }

// ReturnExpr is the keyword `return` used inside an `ensures` clause to
// refer to the function's result tuple.
type ReturnExpr struct {
	TokLoc token.Location
}

func (e *ReturnExpr) exprNode()          {}
func (e *ReturnExpr) Loc() token.Location { return e.TokLoc }

// CallExpr is an explicit static call `Type.method(args)`.
type CallExpr struct {
	Type      TypeExpr
	Method    string
	MethodLoc token.Location
	Args      []Expr
	TokLoc    token.Location
}

func (e *CallExpr) exprNode()          {}
func (e *CallExpr) Loc() token.Location { return e.TokLoc }

// FieldAccessExpr is `target.name` (no call parens).
type FieldAccessExpr struct {
	Target   Expr
	Field    string
	FieldLoc token.Location
	TokLoc   token.Location
}

func (e *FieldAccessExpr) exprNode()          {}
func (e *FieldAccessExpr) Loc() token.Location { return e.TokLoc }

// MethodAccessExpr is `target.method(args)` — value-dispatched method call.
type MethodAccessExpr struct {
	Target    Expr
	Method    string
	MethodLoc token.Location
	Args      []Expr
	TokLoc    token.Location
}

func (e *MethodAccessExpr) exprNode()          {}
func (e *MethodAccessExpr) Loc() token.Location { return e.TokLoc }

// RecordLiteralField is one `name = value` pair in a record literal.
type RecordLiteralField struct {
	Name    string
	NameLoc token.Location
	Value   Expr
}

// RecordLiteralExpr is `Type{ f1 = e1, f2 = e2 }`.
type RecordLiteralExpr struct {
	Type   TypeExpr
	Fields []RecordLiteralField
	TokLoc token.Location
}

func (e *RecordLiteralExpr) exprNode()          {}
func (e *RecordLiteralExpr) Loc() token.Location { return e.TokLoc }

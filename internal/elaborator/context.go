// Package elaborator implements the three-pass semantic analyzer: entity
// collection, source-context resolution plus member collection, and
// body/signature checking, sharing one mutable ProgramContext (spec §2, §3).
package elaborator

import (
	"sort"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/ir"
	"github.com/funvibe/funxy/internal/token"
	"github.com/funvibe/funxy/internal/typesystem"
)

// EntityKind distinguishes the two top-level definition forms.
type EntityKind int

const (
	RecordEntity EntityKind = iota
	InterfaceEntity
)

// FieldEntry is one collected record field.
type FieldEntry struct {
	Name string
	Type typesystem.Type
	Loc  token.Location
}

// FunctionEntry is one collected function/method signature, filled in once
// during Pass 2. Pass 3 reads it and builds the ir.Function separately.
type FunctionEntry struct {
	Name        string
	ID          string // "package.Entity.member"; empty for interface members
	AST         ast.FnSignature
	ParamTypes  []typesystem.Type
	ReturnTypes []typesystem.Type
}

// EntityDef is a collected top-level record or interface (spec §3,
// "Entities").
type EntityDef struct {
	Kind           EntityKind
	CanonicalName  string
	Package        string
	SourceID       token.SourceID
	BindingLoc     token.Location
	Scope          *TypeScope
	AST            ast.Definition
	memberNames    map[string]token.Location
	Fields         []FieldEntry
	FunctionOrder  []string
	Functions      map[string]*FunctionEntry
	// Implements holds the record-header `is Interface[args]` declarations,
	// substituted to the record's own declared type parameters (spec §4.4).
	Implements []ConstraintBinding
}

func newEntityDef(kind EntityKind, canonical, pkg string, sourceID token.SourceID, bindingLoc token.Location, def ast.Definition) *EntityDef {
	var scope *TypeScope
	if kind == InterfaceEntity {
		scope = NewInterfaceTypeScope()
	} else {
		scope = NewTypeScope()
	}
	return &EntityDef{
		Kind:          kind,
		CanonicalName: canonical,
		Package:       pkg,
		SourceID:      sourceID,
		BindingLoc:    bindingLoc,
		Scope:         scope,
		AST:           def,
		memberNames:   make(map[string]token.Location),
		Functions:     make(map[string]*FunctionEntry),
	}
}

// claimMember records name in the entity's shared field/function namespace,
// failing MemberRedefined on a collision (spec §4.5: "Fields and functions
// share a namespace within a record").
func (e *EntityDef) claimMember(name string, loc token.Location) error {
	if prev, exists := e.memberNames[name]; exists {
		return errMemberRedefined(e.CanonicalName, name, prev, loc)
	}
	e.memberNames[name] = loc
	return nil
}

// typeParamCount returns the number of user-declared type parameters (i.e.
// excluding the implicit `This` on interfaces).
func (e *EntityDef) typeParamCount() int {
	if e.Kind == InterfaceEntity {
		return len(e.Scope.DebugNames) - 1
	}
	return len(e.Scope.DebugNames)
}

// SourceContext is per-file name resolution state built in Pass 2 (spec §3,
// "SourceContext").
type SourceContext struct {
	Package string

	EntityAliases map[string]AliasBinding
	Namespaces    map[string]NamespaceBinding
}

// AliasBinding is one `entityAliases` entry.
type AliasBinding struct {
	CanonicalName string
	BindingLoc    token.Location
}

// NamespaceBinding is one `namespaces` entry.
type NamespaceBinding struct {
	PackageName string
	BindingLoc  token.Location
}

func newSourceContext(pkg string) *SourceContext {
	return &SourceContext{
		Package:       pkg,
		EntityAliases: make(map[string]AliasBinding),
		Namespaces:    make(map[string]NamespaceBinding),
	}
}

// ProgramContext is the mutable, process-wide elaboration state shared by
// all three passes (spec §3, "ProgramContext").
type ProgramContext struct {
	Sources                  map[token.SourceID]*ast.Source
	CanonicalByQualifiedName map[string]map[string]string
	Entities                 map[string]*EntityDef
	SourceContexts           map[token.SourceID]*SourceContext

	// hasCollectedMembers is the single monotonic bit gating constraint
	// checking (spec §3 invariant; flips true between Pass 2 and Pass 3).
	hasCollectedMembers bool

	Foreign map[string]ir.Signature

	Program *ir.Program
}

// NewProgramContext returns a freshly initialized context for one
// CompileSources call.
func NewProgramContext(sources map[token.SourceID]*ast.Source) *ProgramContext {
	return &ProgramContext{
		Sources:                  sources,
		CanonicalByQualifiedName: make(map[string]map[string]string),
		Entities:                 make(map[string]*EntityDef),
		SourceContexts:           make(map[token.SourceID]*SourceContext),
		Foreign:                  make(map[string]ir.Signature),
		Program:                  ir.NewProgram(),
	}
}

// HasCollectedMembers reports the current phase.
func (pc *ProgramContext) HasCollectedMembers() bool { return pc.hasCollectedMembers }

// MarkMembersCollected flips the one-shot phase bit to true. It does not
// check whether the bit was already set; a second call leaves it true and
// reports nothing.
func (pc *ProgramContext) MarkMembersCollected() {
	pc.hasCollectedMembers = true
}

// orderedSourceIDs returns source ids in a deterministic (ascending) order,
// since iteration order must not affect correctness or diagnostics (spec §5)
// but must still be reproducible between runs.
func (pc *ProgramContext) orderedSourceIDs() []token.SourceID {
	ids := make([]token.SourceID, 0, len(pc.Sources))
	for id := range pc.Sources {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// orderedEntityNames returns canonical entity names in deterministic order.
func (pc *ProgramContext) orderedEntityNames() []string {
	names := make([]string, 0, len(pc.Entities))
	for name := range pc.Entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveEntityName resolves a (possibly qualified) type/interface reference
// against a SourceContext, per spec §4.3's `pkg.Name` / `Name` rule.
func (pc *ProgramContext) resolveEntityName(qualifier, name string, loc token.Location, sc *SourceContext) (string, error) {
	if qualifier == "" {
		alias, ok := sc.EntityAliases[name]
		if !ok {
			return "", errNoSuchEntity(sc.Package, name, loc)
		}
		return alias.CanonicalName, nil
	}
	ns, ok := sc.Namespaces[qualifier]
	if !ok {
		return "", errNoSuchPackage(qualifier, loc)
	}
	canonical, ok := pc.CanonicalByQualifiedName[ns.PackageName][name]
	if !ok {
		return "", errNoSuchEntity(ns.PackageName, name, loc)
	}
	return canonical, nil
}

// Package config is the single source of truth for the foreign (built-in)
// function table, the same role the teacher's internal/config/builtins.go
// plays for its built-in types/traits — narrowed here to exactly the three
// foreign operators the spec names (spec §6: "Foreign signatures exposed to
// the IR: exactly Int==, Int+, Int-").
package config

import "github.com/funvibe/funxy/internal/typesystem"

// ForeignFn describes one foreign function's signature and semantics.
type ForeignFn struct {
	Name        string
	Parameters  []typesystem.Type
	ReturnTypes []typesystem.Type
	// Semantics carries annotations the verifier relies on, e.g. Int=='s
	// {"eq": true} marking it as the primitive integer equality predicate.
	Semantics map[string]bool
}

var intType = typesystem.PrimitiveType{Kind: typesystem.Int}
var boolType = typesystem.PrimitiveType{Kind: typesystem.Boolean}

// ForeignFns is the fixed table of foreign functions the elaborator installs
// into every ProgramContext. Dispatch keys them by name ("Int==", "Int+",
// "Int-"); see internal/elaborator/logic.go for how arithmetic/comparison
// operators resolve to these.
var ForeignFns = []ForeignFn{
	{
		Name:        "Int==",
		Parameters:  []typesystem.Type{intType, intType},
		ReturnTypes: []typesystem.Type{boolType},
		Semantics:   map[string]bool{"eq": true},
	},
	{
		Name:        "Int+",
		Parameters:  []typesystem.Type{intType, intType},
		ReturnTypes: []typesystem.Type{intType},
	},
	{
		Name:        "Int-",
		Parameters:  []typesystem.Type{intType, intType},
		ReturnTypes: []typesystem.Type{intType},
	},
}

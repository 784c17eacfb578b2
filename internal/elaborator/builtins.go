package elaborator

import (
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/ir"
	"github.com/funvibe/funxy/internal/typesystem"
)

// installForeign turns the static internal/config foreign-function table
// into ir.Signature values and installs them into both the ProgramContext
// (for the checker's own dispatch) and the output ir.Program (spec §4.11,
// §6).
func installForeign(pc *ProgramContext) {
	for _, fn := range config.ForeignFns {
		params := make([]ir.Param, len(fn.Parameters))
		for i, t := range fn.Parameters {
			params[i] = ir.Param{Name: "", Type: t}
		}
		sig := ir.Signature{
			Parameters:  params,
			ReturnTypes: append([]typesystem.Type(nil), fn.ReturnTypes...),
			Semantics:   fn.Semantics,
		}
		pc.Foreign[fn.Name] = sig
		pc.Program.Foreign[fn.Name] = sig
	}
}

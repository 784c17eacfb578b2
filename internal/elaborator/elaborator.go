package elaborator

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/ir"
	"github.com/funvibe/funxy/internal/pipeline"
	"github.com/funvibe/funxy/internal/token"
)

// CompileSources runs the three-pass elaborator over a bag of parsed source
// files and returns the assembled IR program, or the single semantic error
// that aborted compilation (spec §2, §6, §7).
func CompileSources(sources map[token.SourceID]*ast.Source) (*ir.Program, *diagnostics.Error) {
	pc := NewProgramContext(sources)
	installForeign(pc)

	passes := []pipeline.Pass[ProgramContext]{
		EntityCollectorPass{},
		MemberCollectorPass{},
		BodyCheckerPass{},
	}

	if err := pipeline.Run(pc, passes); err != nil {
		semErr, ok := err.(*diagnostics.Error)
		if !ok {
			// An *diagnostics.ICE signals a violated invariant, not a bad
			// input program (spec §7: "internal consistency faults ...
			// should be unreachable if invariants hold"). CompileSources'
			// contract only has room for semantic errors, so this panics
			// rather than inventing a semantic error code for a bug.
			panic(err)
		}
		return nil, semErr
	}
	return pc.Program, nil
}

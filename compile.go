// Package funxy is the front-end of a small verifying-language compiler: it
// elaborates parsed source files into a typed intermediate representation
// for a downstream verifier. The parser, lexer, and verifier are external
// collaborators (see internal/ast for the input contract this package
// consumes and internal/ir for the output contract it produces).
package funxy

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/elaborator"
	"github.com/funvibe/funxy/internal/ir"
	"github.com/funvibe/funxy/internal/token"
)

// CompileSources runs the three-pass elaborator (entity collection,
// source-context resolution and member collection, body and signature
// checking) over a bag of already-parsed source files. It either returns
// the assembled IR program or the single structured semantic error that
// aborted compilation; there is no partial-result mode.
func CompileSources(sources map[token.SourceID]*ast.Source) (*ir.Program, *diagnostics.Error) {
	return elaborator.CompileSources(sources)
}

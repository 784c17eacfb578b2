// Package token defines the source-location type shared by every AST and IR
// node. The lexer/parser that produce locations are external collaborators;
// this package only fixes the shape the elaborator consumes.
package token

import "fmt"

// SourceID identifies one parsed source file within a CompileSources call.
type SourceID int

// Location pins a span of source text: which file, where it starts, how long
// it is. Every token handed to the elaborator carries one.
type Location struct {
	FileID SourceID
	Offset int
	Length int
}

func (l Location) String() string {
	return fmt.Sprintf("file%d:%d+%d", l.FileID, l.Offset, l.Length)
}

// Zero reports whether this is the unset (all-zero) location.
func (l Location) Zero() bool {
	return l.FileID == 0 && l.Offset == 0 && l.Length == 0
}

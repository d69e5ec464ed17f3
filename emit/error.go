package emit

import "github.com/ardnew/scribe/pkg"

var (
	ErrNestedDeclaration = pkg.NewError("declarations cannot be nested")
	ErrNestedFile        = pkg.NewError("source files cannot be nested")
	ErrDuplicateFile     = pkg.NewError("duplicate output file")
	ErrUnresolved        = pkg.NewError("unresolved reference")
	ErrInvalidPath       = pkg.NewError("invalid output path")
)

package manifest

import "github.com/ardnew/scribe/pkg"

var (
	ErrReadInput       = pkg.NewError("failed to read manifest")
	ErrDecode          = pkg.NewError("failed to decode manifest")
	ErrItemKind        = pkg.NewError("item must have exactly one kind")
	ErrItemField       = pkg.NewError("field not valid for item kind")
	ErrUnknownLanguage = pkg.NewError("unknown language")
	ErrUnknownNaming   = pkg.NewError("unknown naming policy")
	ErrPlaceholder     = pkg.NewError("malformed placeholder")
	ErrExprCompile     = pkg.NewError("failed to compile expression")
	ErrExprEval        = pkg.NewError("failed to evaluate expression")
	ErrExprResult      = pkg.NewError("expression result cannot be rendered")
	ErrUndeclared      = pkg.NewError("reference to undeclared key")
	ErrOutsideFile     = pkg.NewError("content must appear within a file")
	ErrNestedFile      = pkg.NewError("files cannot be nested")
	ErrNestedDeclare   = pkg.NewError("declarations cannot be nested without a scope")
)

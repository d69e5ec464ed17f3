package bind

import "github.com/ardnew/scribe/pkg"

var (
	ErrInvalidParent = pkg.NewError("invalid parent scope")
	ErrUnknownScope  = pkg.NewError("unknown scope")
)

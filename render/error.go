package render

import "github.com/ardnew/scribe/pkg"

var (
	ErrUnsupportedChild = pkg.NewError("unsupported child value")
	ErrComponent        = pkg.NewError("component failed")
	ErrNoProvider       = pkg.NewError("no provider for context")
	ErrTemplateArity    = pkg.NewError("template literal count must exceed substitutions by one")
	ErrTemplateStart    = pkg.NewError("code template must begin with a line break")
	ErrSlotUnplaced     = pkg.NewError("deferred slot was never rendered")
	ErrSlotReused       = pkg.NewError("deferred slot rendered more than once")
	ErrForeignPending   = pkg.NewError("pending value belongs to another render session")
	ErrStalled          = pkg.NewError("render stalled with unsettled values")
)

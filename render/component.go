package render

import (
	"context"

	"github.com/ardnew/scribe/log"
)

// Component produces output for one node of the render tree.
//
// The returned value is rendered as the component's children. It may be a
// string, a number, another Component, a [*Pending], a slice of any of
// these, or nil. Returning an error aborts the render.
type Component interface {
	Render(f *Frame) (any, error)
}

// Func adapts an ordinary function to [Component].
type Func func(*Frame) (any, error)

func (fn Func) Render(f *Frame) (any, error) { return fn(f) }

// E binds props to a function component.
func E[P any](fn func(*Frame, P) (any, error), props P) Component {
	return Func(func(f *Frame) (any, error) { return fn(f, props) })
}

// Fragment groups children under a single node without adding text.
func Fragment(children ...any) Component { return fragment(children) }

type fragment []any

func (c fragment) Render(*Frame) (any, error) { return []any(c), nil }

// Text is a component that emits itself verbatim.
type Text string

func (t Text) Render(*Frame) (any, error) { return string(t), nil }

// Intrinsic text components.
const (
	Br     Text = "\n"
	LBrace Text = "{"
	RBrace Text = "}"
)

// Frame is the view a component has of the render in progress: its own node
// and the session that owns the tree.
type Frame struct {
	node    *Node
	session *Session
}

// Node returns the node the component is rendering into.
func (f *Frame) Node() *Node { return f.node }

// Session returns the render session.
func (f *Frame) Session() *Session { return f.session }

// Context returns the context the render was started with.
func (f *Frame) Context() context.Context { return f.session.ctx }

// Logger returns the session logger.
func (f *Frame) Logger() log.Logger { return f.session.log }

// Transform registers fn to rewrite the flattened text of this component's
// subtree.
func (f *Frame) Transform(fn func(string) string) {
	if fn != nil {
		f.node.transforms = append(f.node.transforms, fn)
	}
}

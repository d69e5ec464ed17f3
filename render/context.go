package render

import (
	"log/slog"
	"sync/atomic"
)

var contextSeq atomic.Uint64

// Context is an ambient value passed down the render tree without threading
// it through every component. A [Context.Provider] binds a value to its
// subtree; [Context.Use] finds the nearest binding above the caller.
type Context[T any] struct {
	id     uint64
	name   string
	def    T
	hasDef bool
}

// NewContext returns a context with no default value.
func NewContext[T any](name string) *Context[T] {
	return &Context[T]{id: contextSeq.Add(1), name: name}
}

// NewContextDefault returns a context that yields def when no provider
// encloses the caller.
func NewContextDefault[T any](name string, def T) *Context[T] {
	return &Context[T]{id: contextSeq.Add(1), name: name, def: def, hasDef: true}
}

// Name returns the name given at construction.
func (c *Context[T]) Name() string { return c.name }

// Provider returns a component that binds value for children. It adds no
// text of its own.
func (c *Context[T]) Provider(value T, children ...any) Component {
	return Func(func(f *Frame) (any, error) {
		f.node.binding = &binding{id: c.id, value: value}

		return children, nil
	})
}

// Use returns the value bound by the nearest enclosing provider, else the
// default. The boolean is false only when neither exists.
func (c *Context[T]) Use(f *Frame) (T, bool) {
	if v, ok := f.node.lookup(c.id); ok {
		t, _ := v.(T)

		return t, true
	}

	return c.def, c.hasDef
}

// Must is like [Context.Use] but reports a missing value as [ErrNoProvider].
func (c *Context[T]) Must(f *Frame) (T, error) {
	v, ok := c.Use(f)
	if !ok {
		return v, ErrNoProvider.With(slog.String("context", c.name))
	}

	return v, nil
}

package render

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"

	"github.com/ardnew/scribe/log"
)

// Option configures a render session.
type Option func(*Session)

// WithLogger sets the logger used for session diagnostics.
func WithLogger(l log.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Render evaluates root and returns the rendered tree.
//
// Rendering happens on the calling goroutine. After the synchronous pass,
// Render keeps filling placeholders for [Pending] values and running
// deferred slots until nothing is left. If a pending value is never settled,
// Render blocks until ctx is done and then fails with [ErrStalled].
func Render(ctx context.Context, root any, opts ...Option) (*Node, error) {
	s := newSession(ctx, opts...)

	s.log.DebugContext(ctx, "render session started")

	if err := s.render(s.root, root); err != nil {
		return nil, err
	}

	if err := s.drive(); err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "render session finished",
		slog.Int("rounds", s.rounds))

	return s.root, nil
}

// RenderText renders root and flattens the result.
func RenderText(ctx context.Context, root any, opts ...Option) (string, error) {
	n, err := Render(ctx, root, opts...)
	if err != nil {
		return "", err
	}

	return n.Text(), nil
}

// render appends the output of child to parent.
func (s *Session) render(parent *Node, child any) error {
	switch c := child.(type) {
	case nil, bool:
		return nil

	case string:
		parent.appendText(c)

		return nil

	case []byte:
		parent.appendText(string(c))

		return nil

	case Component:
		if isNil(c) {
			return nil
		}

		return s.invoke(parent, c)

	case func(*Frame) (any, error):
		if c == nil {
			return nil
		}

		return s.invoke(parent, Func(c))

	case *Pending:
		if c == nil {
			return nil
		}

		return s.place(parent, c)

	case []any:
		for _, e := range c {
			if err := s.render(parent, e); err != nil {
				return err
			}
		}

		return nil

	case int:
		parent.appendText(strconv.Itoa(c))

		return nil

	case fmt.Stringer:
		if isNil(c) {
			return nil
		}

		parent.appendText(c.String())

		return nil
	}

	return s.renderReflect(parent, reflect.ValueOf(child))
}

// isNil reports whether v holds a nil pointer or function.
func isNil(v any) bool {
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

func (s *Session) renderReflect(parent *Node, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parent.appendText(strconv.FormatInt(v.Int(), 10))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		parent.appendText(strconv.FormatUint(v.Uint(), 10))

	case reflect.Float32, reflect.Float64:
		parent.appendText(strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()))

	case reflect.String:
		parent.appendText(v.String())

	case reflect.Bool:

	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			if err := s.render(parent, v.Index(i).Interface()); err != nil {
				return err
			}
		}

	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}

		return ErrUnsupportedChild.With(slog.String("type", v.Type().String()))

	default:
		return ErrUnsupportedChild.With(slog.String("type", v.Type().String()))
	}

	return nil
}

// invoke renders c into a fresh node beneath parent.
func (s *Session) invoke(parent *Node, c Component) error {
	n := newNode(parent)

	out, err := c.Render(&Frame{node: n, session: s})
	if err != nil {
		return ErrComponent.Wrap(err).With(slog.String("component", fmt.Sprintf("%T", c)))
	}

	return s.render(n, out)
}

package emit

import (
	"log/slog"
	"path"
	"strings"

	"github.com/ardnew/scribe/bind"
	"github.com/ardnew/scribe/render"
)

// SourceDirectory prefixes the paths of the files and directories beneath it
// with Path and opens a module scope for them.
type SourceDirectory struct {
	Path     string
	Children []any
}

func (d SourceDirectory) Render(f *render.Frame) (any, error) {
	full, err := joinPath(f, d.Path)
	if err != nil {
		return nil, err
	}

	id, err := openModule(f, full)
	if err != nil {
		return nil, err
	}

	return directoryContext.Provider(full,
		scopeContext.Provider(id, d.Children...)), nil
}

// Scope opens a local scope named Name for its children. Declarations
// inside a Scope may appear within the body of another declaration.
type Scope struct {
	Name     string
	Children []any
}

func (s Scope) Render(f *render.Frame) (any, error) {
	binder, err := BinderContext.Must(f)
	if err != nil {
		return nil, err
	}

	parent, _ := scopeContext.Use(f)

	id, err := binder.CreateLocalScope(s.Name, parent)
	if err != nil {
		return nil, err
	}

	return scopeContext.Provider(id,
		declarationContext.Provider(nil, s.Children...)), nil
}

// CurrentScope returns the scope a component renders in.
func CurrentScope(f *render.Frame) bind.ScopeID {
	id, _ := scopeContext.Use(f)

	return id
}

func openModule(f *render.Frame, name string) (bind.ScopeID, error) {
	binder, err := BinderContext.Must(f)
	if err != nil {
		return 0, err
	}

	parent, _ := scopeContext.Use(f)

	return binder.CreateModuleScope(name, parent)
}

// joinPath resolves p against the enclosing directory. Paths must be
// relative and stay within the output root.
func joinPath(f *render.Frame, p string) (string, error) {
	dir, _ := directoryContext.Use(f)

	if p == "" || path.IsAbs(p) {
		return "", ErrInvalidPath.With(slog.String("path", p))
	}

	full := path.Join(dir, p)
	if full == ".." || strings.HasPrefix(full, "../") {
		return "", ErrInvalidPath.With(slog.String("path", full))
	}

	return full, nil
}

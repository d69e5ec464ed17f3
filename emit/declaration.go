package emit

import (
	"log/slog"

	"github.com/ardnew/scribe/bind"
	"github.com/ardnew/scribe/render"
)

var declarationContext = render.NewContext[*bind.Declaration]("declaration")

// Declaration registers Name, after the enclosing [NamePolicy], in the
// current scope under Refkey. With no Children it emits the name; otherwise
// it emits Children, which may use [DeclarationName] to refer to it.
//
// A Declaration cannot appear inside another unless a [Scope] separates
// them.
type Declaration struct {
	Name     string
	Refkey   bind.Refkey
	Children []any
}

func (d Declaration) Render(f *render.Frame) (any, error) {
	if outer, _ := declarationContext.Use(f); outer != nil {
		return nil, ErrNestedDeclaration.With(
			slog.String("name", d.Name),
			slog.String("within", outer.Name),
		)
	}

	binder, err := BinderContext.Must(f)
	if err != nil {
		return nil, err
	}

	name := d.Name
	if policy, _ := NamePolicyContext.Use(f); policy != nil {
		name = policy(name)
	}

	id, err := binder.CreateDeclaration(name, CurrentScope(f), d.Refkey)
	if err != nil {
		return nil, err
	}

	decl, _ := binder.Declaration(id)

	children := d.Children
	if len(children) == 0 {
		children = []any{decl.Name}
	}

	return declarationContext.Provider(&decl, children...), nil
}

// DeclarationName emits the name of the enclosing [Declaration].
type DeclarationName struct{}

func (DeclarationName) Render(f *render.Frame) (any, error) {
	decl, _ := declarationContext.Use(f)
	if decl == nil {
		return nil, render.ErrNoProvider.With(slog.String("context", "declaration"))
	}

	return decl.Name, nil
}

// Reference emits the name of the declaration registered under Refkey,
// qualified and imported as the enclosing file's language requires. The
// declaration may be created before or after the Reference renders.
//
// A Builtin reference names an external symbol instead, and is imported
// without consulting the binder.
type Reference struct {
	Refkey  bind.Refkey
	Builtin *Import
}

func (r Reference) Render(f *render.Frame) (any, error) {
	file, _ := fileContext.Use(f)

	if r.Builtin != nil {
		imp := *r.Builtin
		imp.External = true

		if file == nil {
			return imp.Name, nil
		}

		return file.use(imp), nil
	}

	binder, err := BinderContext.Must(f)
	if err != nil {
		return nil, err
	}

	scope := CurrentScope(f)
	p, settle := f.Session().NewPending()

	binder.ResolveOrWait(scope, r.Refkey, func(res bind.Resolution) {
		if !res.Resolved {
			settle(nil, ErrUnresolved.With(slog.String("refkey", r.Refkey.String())))

			return
		}

		name := res.Target.Name

		if file != nil && len(res.PathDown) > 0 {
			if info, _ := binder.Scope(res.PathDown[0]); info.Kind == bind.KindModule {
				name = file.use(Import{Module: moduleOf(binder, res.Target.Scope), Name: name})
			}
		}

		settle(name, nil)
	})

	return p, nil
}

// moduleOf returns the path of the innermost module enclosing scope.
func moduleOf(b *bind.Binder, scope bind.ScopeID) string {
	chain := b.Chain(scope)
	for i := len(chain) - 1; i >= 0; i-- {
		if info, _ := b.Scope(chain[i]); info.Kind == bind.KindModule {
			return info.Name
		}
	}

	return ""
}

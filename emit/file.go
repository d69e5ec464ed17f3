package emit

import (
	"log/slog"

	"github.com/ardnew/scribe/bind"
	"github.com/ardnew/scribe/log"
	"github.com/ardnew/scribe/render"
)

// SourceFile is one output file. Its content is the rendered text of its
// children, preceded by an import header generated by Language when the
// file is flattened, after every reference in the tree has resolved. A nil
// Language is chosen from the file extension.
type SourceFile struct {
	Path     string
	Language Language
	Children []any
}

type sourceFile struct {
	path    string
	scope   bind.ScopeID
	lang    Language
	node    *render.Node
	log     log.Logger
	imports []Import
	seen    map[Import]bool
}

func (sf SourceFile) Render(f *render.Frame) (any, error) {
	if outer, _ := fileContext.Use(f); outer != nil {
		return nil, ErrNestedFile.With(
			slog.String("path", sf.Path),
			slog.String("within", outer.path),
		)
	}

	out, err := outputContext.Must(f)
	if err != nil {
		return nil, err
	}

	full, err := joinPath(f, sf.Path)
	if err != nil {
		return nil, err
	}

	id, err := openModule(f, full)
	if err != nil {
		return nil, err
	}

	lang := sf.Language
	if lang == nil {
		lang = LanguageForPath(full)
	}

	file := &sourceFile{
		path:  full,
		scope: id,
		lang:  lang,
		node:  f.Node(),
		log:   out.log,
		seen:  make(map[Import]bool),
	}

	if err := out.register(file); err != nil {
		return nil, err
	}

	// Imports keep arriving until the session finishes, so the header is
	// only computed when the file is flattened.
	f.Transform(func(body string) string {
		return file.lang.Header(file.path, file.imports) + body
	})

	return fileContext.Provider(file,
		scopeContext.Provider(id, sf.Children...)), nil
}

// use returns the text that names imp from within the file, recording the
// import if the language needs one.
func (sf *sourceFile) use(imp Import) string {
	text, need := sf.lang.Ref(sf.path, imp)
	if need && !sf.seen[imp] {
		sf.seen[imp] = true
		sf.imports = append(sf.imports, imp)

		sf.log.Debug("import added",
			slog.String("file", sf.path),
			slog.String("module", imp.Module),
			slog.String("name", imp.Name))
	}

	return text
}

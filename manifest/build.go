package manifest

import (
	"log/slog"
	"path"
	"strconv"

	"github.com/ardnew/scribe/emit"
	"github.com/ardnew/scribe/pkg"
	"github.com/ardnew/scribe/render"
)

// state is what an item inherits from the items that enclose it.
type state struct {
	dir    string // output directory
	file   string // output file, empty outside files
	inDecl bool
}

type refUse struct {
	at  string
	key string
}

type builder struct {
	m        *Manifest
	policy   emit.NamePolicy
	declared map[string]string
	refs     []refUse
	entries  []Entry
	diags    []Diagnostic
}

// build walks the manifest once, producing the component tree along with
// everything Check and Outline report.
func (m *Manifest) build() *builder {
	b := &builder{m: m, declared: make(map[string]string)}

	policy, err := m.NamePolicy()
	if err != nil {
		b.fail("naming", err)
	}

	b.policy = policy

	return b
}

func (b *builder) fail(at string, err error) {
	b.diags = append(b.diags, Diagnostic{
		Item: at,
		Err:  pkg.WrapError(err).With(slog.String("item", at)),
	})
}

func (b *builder) items(at string, items []Item, st state) []any {
	out := make([]any, 0, len(items))

	for i, it := range items {
		if c, ok := b.item(at+"["+strconv.Itoa(i)+"]", it, st); ok {
			out = append(out, c)
		}
	}

	return out
}

func (b *builder) item(at string, it Item, st state) (any, bool) {
	kind, err := it.Kind()
	if err != nil {
		b.fail(at, err)

		return nil, false
	}

	ok, err := b.m.holds(it.When)
	if err != nil {
		b.fail(at, err)

		return nil, false
	}

	if !ok {
		b.m.log.Trace("item skipped", slog.String("item", at), slog.String("when", it.When))

		return nil, false
	}

	switch kind {
	case KindDir, KindFile:
	default:
		if st.file == "" {
			b.fail(at, ErrOutsideFile.With(slog.String("kind", string(kind))))

			return nil, false
		}
	}

	switch kind {
	case KindDir:
		return b.dir(at, it, st)
	case KindFile:
		return b.file(at, it, st)
	case KindDeclare:
		return b.declare(at, it, st)
	case KindRef:
		b.refs = append(b.refs, refUse{at: at, key: it.Ref})

		return emit.Reference{Refkey: b.m.Refkey(it.Ref)}, true
	case KindImport:
		if it.Import.From == "" || it.Import.Name == "" {
			b.fail(at, ErrItemField.With(slog.String("field", "import"), slog.String("kind", string(kind))))

			return nil, false
		}

		return emit.Reference{Builtin: &emit.Import{Module: it.Import.From, Name: it.Import.Name}}, true
	case KindText:
		return it.Text, true
	case KindCode:
		return b.code(at, it.Code, st)
	case KindIndent:
		return render.Indent{
			Unit:     it.Indent.Unit,
			Children: b.items(at+".indent.items", it.Indent.Items, st),
		}, true
	case KindScope:
		st.inDecl = false

		return emit.Scope{Name: it.Scope, Children: b.items(at+".items", it.Items, st)}, true
	case KindExpr:
		v, err := b.m.eval(it.Expr)
		if err != nil {
			b.fail(at, err)

			return nil, false
		}

		return v, true
	case KindBr:
		return render.Br, true
	}

	return nil, false
}

func (b *builder) dir(at string, it Item, st state) (any, bool) {
	if st.file != "" {
		b.fail(at, ErrNestedFile.With(slog.String("dir", it.Dir), slog.String("within", st.file)))

		return nil, false
	}

	st.dir = path.Join(st.dir, it.Dir)
	b.entries = append(b.entries, Entry{Kind: KindDir, Path: st.dir})

	return emit.SourceDirectory{Path: it.Dir, Children: b.items(at+".items", it.Items, st)}, true
}

func (b *builder) file(at string, it Item, st state) (any, bool) {
	if st.file != "" {
		b.fail(at, ErrNestedFile.With(slog.String("file", it.File), slog.String("within", st.file)))

		return nil, false
	}

	lang, err := language(it)
	if err != nil {
		b.fail(at, err)

		return nil, false
	}

	st.file = path.Join(st.dir, it.File)
	b.entries = append(b.entries, Entry{Kind: KindFile, Path: st.file})

	return emit.SourceFile{
		Path:     it.File,
		Language: lang,
		Children: b.items(at+".items", it.Items, st),
	}, true
}

func (b *builder) declare(at string, it Item, st state) (any, bool) {
	if st.inDecl {
		b.fail(at, ErrNestedDeclare.With(slog.String("declare", it.Declare)))

		return nil, false
	}

	key := it.RefKey()
	if prev, ok := b.declared[key]; ok {
		b.m.log.Debug("key redeclared",
			slog.String("key", key),
			slog.String("item", at),
			slog.String("previous", prev))
	}

	b.declared[key] = at

	name := it.Declare
	if b.policy != nil {
		name = b.policy(name)
	}

	b.entries = append(b.entries, Entry{Kind: KindDeclare, Path: st.file, Name: name, Key: key})

	st.inDecl = true

	return emit.Declaration{
		Name:     it.Declare,
		Refkey:   b.m.Refkey(key),
		Children: b.items(at+".items", it.Items, st),
	}, true
}

func (b *builder) code(at, src string, st state) (any, bool) {
	lits, phs, err := splitCode(src)
	if err != nil {
		b.fail(at, err)

		return nil, false
	}

	subs := make([]any, len(phs))

	for i, ph := range phs {
		switch ph.kind {
		case "ref":
			b.refs = append(b.refs, refUse{at: at, key: ph.arg})
			subs[i] = emit.Reference{Refkey: b.m.Refkey(ph.arg)}

		case "expr":
			v, err := b.m.eval(ph.arg)
			if err != nil {
				b.fail(at, err)

				return nil, false
			}

			subs[i] = v

		case "name":
			if !st.inDecl {
				b.fail(at, ErrPlaceholder.With(
					slog.String("placeholder", ph.kind),
					slog.String("reason", "outside declaration"),
				))

				return nil, false
			}

			subs[i] = emit.DeclarationName{}
		}
	}

	lits[0] = "\n" + lits[0]

	out, err := render.Code(lits, subs...)
	if err != nil {
		b.fail(at, err)

		return nil, false
	}

	return out, true
}

// language returns the language of a file item, or nil to infer it from
// the file extension.
func language(it Item) (emit.Language, error) {
	if it.Language == "" {
		if it.Module != "" && path.Ext(it.File) == ".go" {
			return emit.Go{Module: it.Module}, nil
		}

		return nil, nil
	}

	lang, ok := emit.LanguageFor(it.Language)
	if !ok {
		return nil, ErrUnknownLanguage.With(slog.String("language", it.Language))
	}

	if _, isGo := lang.(emit.Go); isGo {
		return emit.Go{Module: it.Module}, nil
	}

	return lang, nil
}

// Tree returns the component tree the manifest describes, to be rendered
// with [emit.Render] using [Manifest.Keyer]. It fails on the first problem
// [Manifest.Check] would report.
func (m *Manifest) Tree() (any, error) {
	b := m.build()
	tree := b.items("files", m.Files, state{})
	b.resolve()

	if len(b.diags) > 0 {
		return nil, b.diags[0].Err
	}

	return tree, nil
}

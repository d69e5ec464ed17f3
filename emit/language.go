package emit

import (
	"cmp"
	"path"
	"slices"
	"strings"
)

// Import is a symbol one file uses from another module. Module is an output
// path, or a package specifier used verbatim when External is set.
type Import struct {
	Module   string
	Name     string
	External bool
}

// Language decides how references are written and how imports are declared.
type Language interface {
	Name() string

	// Ref returns the text that names imp from the file at path from, and
	// whether the file must import it.
	Ref(from string, imp Import) (string, bool)

	// Header returns the text that precedes the content of the file at path
	// from, given the imports it accumulated in first-use order.
	Header(from string, imports []Import) string
}

// LanguageFor returns the language registered under name or one of its
// aliases.
func LanguageFor(name string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "typescript", "ts", "javascript", "js":
		return TypeScript{}, true
	case "python", "py":
		return Python{}, true
	case "go", "golang":
		return Go{}, true
	case "text", "plain", "":
		return Plain{}, true
	default:
		return nil, false
	}
}

// LanguageForPath infers a language from the extension of p.
func LanguageForPath(p string) Language {
	switch path.Ext(p) {
	case ".ts", ".tsx", ".mts", ".js", ".mjs":
		return TypeScript{}
	case ".py":
		return Python{}
	case ".go":
		return Go{}
	default:
		return Plain{}
	}
}

// groupImports returns the imported names per module, both sorted.
func groupImports(imports []Import, module func(Import) string) ([]string, map[string][]string) {
	names := make(map[string][]string)

	for _, imp := range imports {
		m := module(imp)
		if !slices.Contains(names[m], imp.Name) {
			names[m] = append(names[m], imp.Name)
		}
	}

	mods := make([]string, 0, len(names))
	for m, ns := range names {
		slices.Sort(ns)
		mods = append(mods, m)
	}

	slices.Sort(mods)

	return mods, names
}

// Plain writes bare names and no header.
type Plain struct{}

func (Plain) Name() string { return "text" }

func (Plain) Ref(_ string, imp Import) (string, bool) { return imp.Name, false }

func (Plain) Header(string, []Import) string { return "" }

// TypeScript writes ES module named imports with relative specifiers.
type TypeScript struct{}

func (TypeScript) Name() string { return "typescript" }

func (TypeScript) Ref(from string, imp Import) (string, bool) {
	return imp.Name, from != imp.Module
}

func (TypeScript) Header(from string, imports []Import) string {
	if len(imports) == 0 {
		return ""
	}

	mods, names := groupImports(imports, func(imp Import) string {
		if imp.External {
			return imp.Module
		}

		return tsSpecifier(from, imp.Module)
	})

	var b strings.Builder

	for _, m := range mods {
		b.WriteString("import { ")
		b.WriteString(strings.Join(names[m], ", "))
		b.WriteString(` } from "`)
		b.WriteString(m)
		b.WriteString("\";\n")
	}

	b.WriteByte('\n')

	return b.String()
}

func tsSpecifier(from, module string) string {
	rel := relativePath(path.Dir(from), module)

	switch ext := path.Ext(rel); ext {
	case ".ts", ".tsx", ".mts":
		rel = strings.TrimSuffix(rel, ext) + ".js"
	}

	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}

	return rel
}

// relativePath returns target relative to dir; both are slash-separated
// paths below the same root.
func relativePath(dir, target string) string {
	split := func(p string) []string {
		if p == "." || p == "" {
			return nil
		}

		return strings.Split(p, "/")
	}

	d, t := split(path.Clean(dir)), split(path.Clean(target))

	n := 0
	for n < len(d) && n < len(t)-1 && d[n] == t[n] {
		n++
	}

	parts := make([]string, 0, len(d)-n+len(t)-n)
	for range d[n:] {
		parts = append(parts, "..")
	}

	return strings.Join(append(parts, t[n:]...), "/")
}

// Python writes "from module import names" lines with dotted module paths.
type Python struct{}

func (Python) Name() string { return "python" }

func (Python) Ref(from string, imp Import) (string, bool) {
	return imp.Name, from != imp.Module
}

func (Python) Header(_ string, imports []Import) string {
	if len(imports) == 0 {
		return ""
	}

	mods, names := groupImports(imports, func(imp Import) string {
		if imp.External {
			return imp.Module
		}

		return pyModule(imp.Module)
	})

	var b strings.Builder

	for _, m := range mods {
		b.WriteString("from ")
		b.WriteString(m)
		b.WriteString(" import ")
		b.WriteString(strings.Join(names[m], ", "))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')

	return b.String()
}

func pyModule(p string) string {
	p = strings.TrimSuffix(p, ".py")
	p = strings.TrimSuffix(p, "/__init__")

	return strings.ReplaceAll(p, "/", ".")
}

// Go writes package-qualified references and a package clause followed by
// an import block. Files in the same directory share a package and need no
// import. Module is the import path of the output root.
type Go struct {
	Module string
}

func (Go) Name() string { return "go" }

func (g Go) Ref(from string, imp Import) (string, bool) {
	if !imp.External && path.Dir(imp.Module) == path.Dir(from) {
		return imp.Name, false
	}

	return path.Base(g.importPath(imp)) + "." + imp.Name, true
}

func (g Go) importPath(imp Import) string {
	if imp.External {
		return imp.Module
	}

	dir := path.Dir(imp.Module)
	if dir == "." {
		return cmp.Or(g.Module, ".")
	}

	if g.Module == "" {
		return dir
	}

	return g.Module + "/" + dir
}

func (g Go) Header(from string, imports []Import) string {
	var b strings.Builder

	b.WriteString("package ")
	b.WriteString(goPackage(from))
	b.WriteString("\n\n")

	mods, _ := groupImports(imports, g.importPath)

	switch len(mods) {
	case 0:
	case 1:
		b.WriteString("import \"" + mods[0] + "\"\n\n")
	default:
		b.WriteString("import (\n")

		for _, m := range mods {
			b.WriteString("\t\"" + m + "\"\n")
		}

		b.WriteString(")\n\n")
	}

	return b.String()
}

func goPackage(file string) string {
	dir := path.Dir(file)
	if dir == "." {
		return "main"
	}

	return strings.ReplaceAll(path.Base(dir), "-", "_")
}

package emit

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ardnew/scribe/bind"
	"github.com/ardnew/scribe/log"
	"github.com/ardnew/scribe/render"
)

func renderFiles(t *testing.T, tree any, opts ...Option) map[string]string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	files, err := Render(ctx, tree, opts...)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := make(map[string]string, len(files))
	for _, f := range files {
		out[f.Path] = f.Content
	}

	return out
}

func TestRender_CrossModuleImport(t *testing.T) {
	var keys bind.Keyer
	widget := keys.New()
	gadget := keys.New()

	tree := SourceDirectory{Path: "src", Children: []any{
		SourceFile{Path: "index.ts", Children: []any{
			"const a: ", Reference{Refkey: widget}, " = {};\n",
			"const b: ", Reference{Refkey: widget}, " = {};\n",
			"const c: ", Reference{Refkey: gadget}, " = {};\n",
		}},
		SourceFile{Path: "models.ts", Children: []any{
			"export interface ", Declaration{Name: "Widget", Refkey: widget}, " {}\n",
			"export interface ", Declaration{Name: "Gadget", Refkey: gadget}, " {}\n",
			"type W = ", Reference{Refkey: widget}, ";\n",
		}},
	}}

	files := renderFiles(t, tree)

	wantIndex := "import { Gadget, Widget } from \"./models.js\";\n\n" +
		"const a: Widget = {};\nconst b: Widget = {};\nconst c: Gadget = {};\n"
	if got := files["src/index.ts"]; got != wantIndex {
		t.Errorf("src/index.ts =\n%s\nwant\n%s", got, wantIndex)
	}

	wantModels := "export interface Widget {}\nexport interface Gadget {}\ntype W = Widget;\n"
	if got := files["src/models.ts"]; got != wantModels {
		t.Errorf("src/models.ts =\n%s\nwant\n%s", got, wantModels)
	}

	if n := strings.Count(files["src/index.ts"], "import"); n != 1 {
		t.Errorf("index.ts has %d import lines, want 1", n)
	}
}

func TestRender_ImportOfDeferredDeclaration(t *testing.T) {
	var keys bind.Keyer
	late := keys.New()

	deferred := render.Func(func(f *render.Frame) (any, error) {
		return f.Session().Defer(func() (any, error) {
			return []any{"export interface ", Declaration{Name: "Late", Refkey: late}, " {}\n"}, nil
		}), nil
	})

	files := renderFiles(t, []any{
		SourceFile{Path: "a.ts", Children: []any{"let x: ", Reference{Refkey: late}, ";\n"}},
		SourceFile{Path: "b.ts", Children: []any{deferred}},
	})

	want := "import { Late } from \"./b.js\";\n\nlet x: Late;\n"
	if got := files["a.ts"]; got != want {
		t.Errorf("a.ts = %q, want %q", got, want)
	}

	if got, want := files["b.ts"], "export interface Late {}\n"; got != want {
		t.Errorf("b.ts = %q, want %q", got, want)
	}
}

func TestRender_FileOrderAndPaths(t *testing.T) {
	tree := []any{
		SourceFile{Path: "b.txt", Children: []any{"b"}},
		SourceDirectory{Path: "x", Children: []any{
			SourceDirectory{Path: "y", Children: []any{
				SourceFile{Path: "a.txt", Children: []any{"a"}},
			}},
		}},
	}

	files, err := Render(context.Background(), tree)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if len(files) != 2 || files[0].Path != "b.txt" || files[1].Path != "x/y/a.txt" {
		t.Fatalf("files = %+v", files)
	}

	if files[1].Content != "a" {
		t.Errorf("content = %q, want %q", files[1].Content, "a")
	}
}

func TestRender_Python(t *testing.T) {
	var keys bind.Keyer
	pet := keys.New()

	tree := SourceDirectory{Path: "app", Children: []any{
		SourceFile{Path: "main.py", Children: []any{
			"def adopt() -> ", Reference{Refkey: pet}, ":\n",
			"    return ", Reference{Refkey: pet}, "()\n",
			"print(", Reference{Builtin: &Import{Module: "json", Name: "dumps"}}, ")\n",
		}},
		SourceDirectory{Path: "models", Children: []any{
			SourceFile{Path: "pets.py", Children: []any{
				"class ", Declaration{Name: "Pet", Refkey: pet}, ":\n    pass\n",
			}},
		}},
	}}

	files := renderFiles(t, tree)

	want := "from app.models.pets import Pet\nfrom json import dumps\n\n" +
		"def adopt() -> Pet:\n    return Pet()\nprint(dumps)\n"
	if got := files["app/main.py"]; got != want {
		t.Errorf("app/main.py =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_Go(t *testing.T) {
	var keys bind.Keyer
	cfg := keys.New()
	helper := keys.New()

	lang := Go{Module: "example.com/app"}

	tree := []any{
		SourceFile{Path: "main.go", Language: lang, Children: []any{
			"var c ", Reference{Refkey: cfg}, "\n",
			"var d = ", Reference{Builtin: &Import{Module: "time", Name: "Second"}}, "\n",
		}},
		SourceDirectory{Path: "config", Children: []any{
			SourceFile{Path: "config.go", Language: lang, Children: []any{
				"type ", Declaration{Name: "Config", Refkey: cfg}, " struct{}\n",
				"var _ = ", Reference{Refkey: helper}, "\n",
			}},
			SourceFile{Path: "helper.go", Language: lang, Children: []any{
				"func ", Declaration{Name: "help", Refkey: helper}, "() {}\n",
			}},
		}},
	}

	files := renderFiles(t, tree)

	wantMain := "package main\n\n" +
		"import (\n\t\"example.com/app/config\"\n\t\"time\"\n)\n\n" +
		"var c config.Config\nvar d = time.Second\n"
	if got := files["main.go"]; got != wantMain {
		t.Errorf("main.go =\n%s\nwant\n%s", got, wantMain)
	}

	wantConfig := "package config\n\ntype Config struct{}\nvar _ = help\n"
	if got := files["config/config.go"]; got != wantConfig {
		t.Errorf("config/config.go =\n%s\nwant\n%s", got, wantConfig)
	}
}

func TestRender_ForwardAndCircularReferences(t *testing.T) {
	var keys bind.Keyer
	a, b := keys.New(), keys.New()

	tree := []any{
		SourceFile{Path: "a.ts", Children: []any{
			"export class ", Declaration{Name: "A", Refkey: a}, " { b?: ", Reference{Refkey: b}, " }\n",
		}},
		SourceFile{Path: "b.ts", Children: []any{
			"export class ", Declaration{Name: "B", Refkey: b}, " { a?: ", Reference{Refkey: a}, " }\n",
		}},
	}

	files := renderFiles(t, tree)

	if got, want := files["a.ts"], "import { B } from \"./b.js\";\n\nexport class A { b?: B }\n"; got != want {
		t.Errorf("a.ts = %q, want %q", got, want)
	}

	if got, want := files["b.ts"], "import { A } from \"./a.js\";\n\nexport class B { a?: A }\n"; got != want {
		t.Errorf("b.ts = %q, want %q", got, want)
	}
}

func TestDeclaration_Nested(t *testing.T) {
	tree := SourceFile{Path: "x.ts", Children: []any{
		Declaration{Name: "Outer", Children: []any{
			Declaration{Name: "Inner"},
		}},
	}}

	if _, err := Render(context.Background(), tree); !errors.Is(err, ErrNestedDeclaration) {
		t.Errorf("Render() error = %v, want ErrNestedDeclaration", err)
	}
}

func TestDeclaration_ScopeSeparatesNesting(t *testing.T) {
	var keys bind.Keyer
	field := keys.New()

	tree := SourceFile{Path: "x.ts", Children: []any{
		Declaration{Name: "Outer", Children: []any{
			"class ", DeclarationName{}, " {\n",
			Scope{Name: "Outer", Children: []any{
				render.Indent{Children: []any{Declaration{Name: "field", Refkey: field}, ": number;\n"}},
			}},
			"}\n",
		}},
		"// ", Reference{Refkey: field}, "\n",
	}}

	files := renderFiles(t, tree)

	if got, want := files["x.ts"], "class Outer {\n  field: number;\n}\n// field\n"; got != want {
		t.Errorf("x.ts = %q, want %q", got, want)
	}
}

func TestScope_OutsideFiles(t *testing.T) {
	var keys bind.Keyer
	k := keys.New()

	tree := []any{
		Scope{Name: "shared", Children: []any{Declaration{Name: "Shared", Refkey: k}}},
		SourceFile{Path: "a.ts", Children: []any{"let s: ", Reference{Refkey: k}, ";\n"}},
	}

	files := renderFiles(t, tree)

	if got, want := files["a.ts"], "let s: Shared;\n"; got != want {
		t.Errorf("a.ts = %q, want %q", got, want)
	}

	if len(files) != 1 {
		t.Errorf("Render() produced %d files, want 1", len(files))
	}
}

func TestDeclaration_NamePolicy(t *testing.T) {
	tree := SourceFile{Path: "x.py", Children: []any{
		Declaration{Name: "fetchWidget"}, " ",
		NamePolicyContext.Provider(CamelCase, Declaration{Name: "fetch_widget"}),
	}}

	files := renderFiles(t, tree, WithNamePolicy(SnakeCase))

	if got, want := files["x.py"], "fetch_widget fetchWidget"; got != want {
		t.Errorf("x.py = %q, want %q", got, want)
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		tree any
		want error
	}{
		{"nested file", SourceFile{Path: "a.txt", Children: []any{SourceFile{Path: "b.txt"}}}, ErrNestedFile},
		{"duplicate file", []any{SourceFile{Path: "a.txt"}, SourceFile{Path: "a.txt"}}, ErrDuplicateFile},
		{"absolute path", SourceFile{Path: "/etc/passwd"}, ErrInvalidPath},
		{"escaping path", SourceDirectory{Path: "..", Children: []any{SourceFile{Path: "x"}}}, ErrInvalidPath},
		{"name outside declaration", DeclarationName{}, render.ErrNoProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Render(context.Background(), tt.tree); !errors.Is(err, tt.want) {
				t.Errorf("Render() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRender_UndeclaredReferenceStalls(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	tree := SourceFile{Path: "a.ts", Children: []any{Reference{Refkey: 99}}}

	if _, err := Render(ctx, tree); !errors.Is(err, render.ErrStalled) {
		t.Errorf("Render() error = %v, want ErrStalled", err)
	}
}

func TestRender_ComponentsNeedOutput(t *testing.T) {
	_, err := render.Render(context.Background(), Reference{Refkey: 1})
	if !errors.Is(err, render.ErrNoProvider) {
		t.Errorf("render.Render() error = %v, want ErrNoProvider", err)
	}
}

func TestOutput_RenderedDirectly(t *testing.T) {
	var keys bind.Keyer
	k := keys.New()

	text, err := render.RenderText(context.Background(), Output{Children: []any{
		SourceFile{Path: "a.txt", Children: []any{Reference{Refkey: k}, "|"}},
		SourceFile{Path: "b.txt", Children: []any{Declaration{Name: "B", Refkey: k}}},
	}})
	if err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}

	if text != "B|B" {
		t.Errorf("RenderText() = %q, want %q", text, "B|B")
	}
}

func TestRender_LogsImports(t *testing.T) {
	var buf bytes.Buffer
	var keys bind.Keyer
	k := keys.New()

	logger := log.Make(&buf, log.WithLevel(log.LevelDebug), log.WithFormat(log.FormatJSON))

	renderFiles(t, []any{
		SourceFile{Path: "a.ts", Children: []any{Reference{Refkey: k}}},
		SourceFile{Path: "b.ts", Children: []any{Declaration{Name: "B", Refkey: k}}},
	}, WithLogger(logger))

	for _, want := range []string{"import added", "declaration created", "output rendered"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log missing %q:\n%s", want, buf.String())
		}
	}
}

func TestParseNamePolicy(t *testing.T) {
	tests := []struct {
		in, name, want string
	}{
		{"camel", "fetch_widget", "fetchWidget"},
		{"Pascal", "fetch_widget", "FetchWidget"},
		{"snake", "FetchWidget", "fetch_widget"},
		{"screaming-snake", "fetchWidget", "FETCH_WIDGET"},
		{"kebab", "FetchWidget", "fetch-widget"},
	}

	for _, tt := range tests {
		p, ok := ParseNamePolicy(tt.in)
		if !ok || p == nil {
			t.Fatalf("ParseNamePolicy(%q) = %v", tt.in, ok)
		}

		if got := p(tt.name); got != tt.want {
			t.Errorf("%s(%q) = %q, want %q", tt.in, tt.name, got, tt.want)
		}
	}

	if p, ok := ParseNamePolicy("none"); !ok || p != nil {
		t.Error("ParseNamePolicy(none) should be a known nil policy")
	}

	if _, ok := ParseNamePolicy("weird"); ok {
		t.Error("ParseNamePolicy(weird) succeeded")
	}
}

func TestRelativeSpecifiers(t *testing.T) {
	tests := []struct {
		from, module, want string
	}{
		{"src/index.ts", "src/models.ts", "./models.js"},
		{"index.ts", "lib/a.ts", "./lib/a.js"},
		{"src/a/b.ts", "lib/c.ts", "../../lib/c.js"},
		{"src/a/b.ts", "src/c.mts", "../c.js"},
		{"src/a.ts", "src/data.json", "./data.json"},
	}

	for _, tt := range tests {
		if got := tsSpecifier(tt.from, tt.module); got != tt.want {
			t.Errorf("tsSpecifier(%q, %q) = %q, want %q", tt.from, tt.module, got, tt.want)
		}
	}
}

func TestLanguageFor(t *testing.T) {
	for name, want := range map[string]string{
		"ts": "typescript", "Python": "python", "golang": "go", "": "text",
	} {
		lang, ok := LanguageFor(name)
		if !ok || lang.Name() != want {
			t.Errorf("LanguageFor(%q) = %v, %v, want %s", name, lang, ok, want)
		}
	}

	if _, ok := LanguageFor("cobol"); ok {
		t.Error("LanguageFor(cobol) succeeded")
	}

	if got := LanguageForPath("a/b.py").Name(); got != "python" {
		t.Errorf("LanguageForPath(a/b.py) = %s", got)
	}
}

package render

import (
	"context"
	"errors"
	"testing"
)

func TestIndent(t *testing.T) {
	tests := []struct {
		name string
		root any
		want string
	}{
		{"single", Indent{Children: []any{"x\ny"}}, "  x\n  y"},
		{"nested", Indent{Children: []any{Indent{Children: []any{"x\ny"}}}}, "    x\n    y"},
		{"blank interior line", Indent{Children: []any{"x\n\ny"}}, "  x\n\n  y"},
		{"whitespace-only line", Indent{Children: []any{"x\n  \t\ny"}}, "  x\n  \t\n  y"},
		{"trailing newline", Indent{Children: []any{"x\n"}}, "  x\n"},
		{"custom unit", Indent{Unit: "\t", Children: []any{"x"}}, "\tx"},
		{"inherited unit", Indent{Unit: "----", Children: []any{"a\n", Indent{Children: []any{"b"}}}}, "----a\n--------b"},
		{"empty", Indent{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderText(context.Background(), tt.root)
			if err != nil {
				t.Fatalf("RenderText() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("RenderText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIndent_PublishesLevel(t *testing.T) {
	level := Func(func(f *Frame) (any, error) {
		st, _ := IndentContext.Use(f)
		return st.Level, nil
	})

	got, err := RenderText(context.Background(),
		[]any{level, Indent{Unit: " ", Children: []any{level, Indent{Children: []any{level}}}}})
	if err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}

	if want := "0 1 2"; got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		lits []string
		subs []any
		want string
	}{
		{
			name: "splice aligned to indentation",
			lits: []string{"\n  def foo():\n    ", "\n"},
			subs: []any{"return 1"},
			want: "def foo():\n  return 1\n",
		},
		{
			name: "no substitutions",
			lits: []string{"\n    a\n      b\n    "},
			want: "a\n  b\n",
		},
		{
			name: "multi-line substitution",
			lits: []string{"\n\tfunc f() {\n\t\t", "\n\t}\n"},
			subs: []any{"a()\nb()"},
			want: "func f() {\n\ta()\n\tb()\n}\n",
		},
		{
			name: "inline substitution",
			lits: []string{"\n  x := ", "\n"},
			subs: []any{"1\n2"},
			want: "x := 1\n2\n",
		},
		{
			name: "substitution at line start",
			lits: []string{"\n  a\n", "\n  b"},
			subs: []any{"s"},
			want: "a\ns\nb",
		},
		{
			name: "component substitution",
			lits: []string{"\n  {\n    ", "\n  }"},
			subs: []any{Fragment("k: ", 1)},
			want: "{\n  k: 1\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			children, err := Code(tt.lits, tt.subs...)
			if err != nil {
				t.Fatalf("Code() error = %v", err)
			}

			got, err := RenderText(context.Background(), children)
			if err != nil {
				t.Fatalf("RenderText() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("RenderText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCode_Errors(t *testing.T) {
	if _, err := Code([]string{"no newline"}); !errors.Is(err, ErrTemplateStart) {
		t.Errorf("Code() error = %v, want ErrTemplateStart", err)
	}

	if _, err := Code([]string{"\na", "b"}); !errors.Is(err, ErrTemplateArity) {
		t.Errorf("Code() error = %v, want ErrTemplateArity", err)
	}

	if _, err := Code([]string{"\na"}, "x", "y"); !errors.Is(err, ErrTemplateArity) {
		t.Errorf("Code() error = %v, want ErrTemplateArity", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustCode did not panic")
		}
	}()

	MustCode([]string{"x"})
}

func TestTemplate(t *testing.T) {
	children, err := Template(`
		class {{}}:
		    {{}}
		`, "Widget", "pass")
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}

	got, err := RenderText(context.Background(), children)
	if err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}

	if want := "class Widget:\n    pass\n"; got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}
}

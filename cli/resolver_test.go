package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	val, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%q) error = %v", name, err)
	}

	return val
}

func TestResolve_NamedMapping(t *testing.T) {
	const doc = `
config:
  log_level: debug
  log-format: json
  log-pretty: false
other:
  foo: bar
`

	r, err := resolve("config")(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "json"},
		{"log-pretty", false},
		{"foo", nil},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			if got := resolveFlag(t, r, tt.flag); got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolve_TopLevel(t *testing.T) {
	r, err := resolve("config")(strings.NewReader("timeout: 45\nratio: 1.5\ntags: [a, b]\n"))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	if got := resolveFlag(t, r, "timeout"); got != "45" {
		t.Errorf("timeout = %#v, want \"45\"", got)
	}

	if got := resolveFlag(t, r, "ratio"); got != "1.5" {
		t.Errorf("ratio = %#v, want \"1.5\"", got)
	}

	if got := resolveFlag(t, r, "tags"); got != "a,b" {
		t.Errorf("tags = %#v, want \"a,b\"", got)
	}
}

func TestResolve_InvalidDocument(t *testing.T) {
	for _, doc := range []string{"", "- a\n- b\n", "config: [unterminated\n"} {
		r, err := resolve("config")(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("resolve(%q) error = %v", doc, err)
		}

		if got := resolveFlag(t, r, "log-level"); got != nil {
			t.Errorf("resolve(%q) log-level = %v, want nil", doc, got)
		}

		if err := r.Validate(nil); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	}
}

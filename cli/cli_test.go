package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/scribe/log"
)

func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "scribe-cli-test-*")
	if err != nil {
		panic(err)
	}

	os.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	code := m.Run()

	os.RemoveAll(home)
	os.Exit(code)
}

const cliManifest = `
files:
  - file: hello.txt
    items:
      - "hello "
      - declare: world
`

func noExit(t *testing.T) func(int) {
	return func(code int) {
		t.Helper()
		t.Fatalf("unexpected exit(%d)", code)
	}
}

func TestRun_Render(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	dir := t.TempDir()
	src := filepath.Join(dir, "scribe.yaml")
	out := filepath.Join(dir, "out")

	if err := os.WriteFile(src, []byte(cliManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	err := run(context.Background(), noExit(t), filepath.Join(dir, "none.yaml"),
		"render", "--out", out, src)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(out, "hello.txt"))
	if err != nil {
		t.Fatal(err)
	}

	if string(got) != "hello world" {
		t.Errorf("hello.txt = %q, want %q", got, "hello world")
	}
}

func TestRun_ConfigFile(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	src := filepath.Join(dir, "scribe.yaml")

	if err := os.WriteFile(cfg, []byte("config:\n  log_level: debug\n  log_format: json\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(src, []byte(cliManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run(context.Background(), noExit(t), cfg, "check", src); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if got := log.Default().Level(); got != log.LevelDebug {
		t.Errorf("Level() = %v, want debug from config file", got)
	}

	if got := log.Default().Format(); got != log.FormatJSON {
		t.Errorf("Format() = %v, want json from config file", got)
	}

	if err := run(context.Background(), noExit(t), cfg, "--log-level=warn", "check", src); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if got := log.Default().Level(); got != log.LevelWarn {
		t.Errorf("Level() = %v, want flag to override config file", got)
	}
}

func TestRun_Init(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	cfg := filepath.Join(t.TempDir(), "config.yaml")

	if err := run(context.Background(), noExit(t), cfg, "--log-format=json", "init"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	r, err := os.Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	res, err := resolve(baseConfig)(r)
	if err != nil {
		t.Fatal(err)
	}

	if got := resolveFlag(t, res, "log-format"); got != "json" {
		t.Errorf("log-format = %v, want json", got)
	}
}

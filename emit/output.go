package emit

import (
	"context"
	"log/slog"

	"github.com/ardnew/scribe/bind"
	"github.com/ardnew/scribe/log"
	"github.com/ardnew/scribe/render"
)

// File is a materialized output file.
type File struct {
	Path    string
	Content string
}

var (
	// BinderContext carries the binder of the enclosing [Output].
	BinderContext = render.NewContext[*bind.Binder]("binder")

	// KeyerContext carries the refkey issuer of the enclosing [Output].
	KeyerContext = render.NewContext[*bind.Keyer]("keyer")

	scopeContext     = render.NewContextDefault("scope", bind.GlobalScope)
	directoryContext = render.NewContextDefault("directory", "")
	outputContext    = render.NewContext[*output]("output")
	fileContext      = render.NewContext[*sourceFile]("source-file")
)

type output struct {
	log   log.Logger
	keyer *bind.Keyer
	files []*sourceFile
	paths map[string]bool
}

func newOutput(l log.Logger, keyer *bind.Keyer) *output {
	if keyer == nil {
		keyer = &bind.Keyer{}
	}

	return &output{log: l, keyer: keyer, paths: make(map[string]bool)}
}

func (o *output) register(f *sourceFile) error {
	if o.paths[f.path] {
		return ErrDuplicateFile.With(slog.String("path", f.path))
	}

	o.paths[f.path] = true
	o.files = append(o.files, f)

	return nil
}

// Output is the root of an output tree. It creates the binder that every
// scope, declaration and reference beneath it shares.
//
// [Render] supplies an Output automatically. Render one directly with
// [render.Render] to obtain the concatenated text of all files instead.
type Output struct {
	Children []any

	state *output
}

func (o Output) Render(f *render.Frame) (any, error) {
	st := o.state
	if st == nil {
		st = newOutput(f.Logger(), nil)
	}

	binder := bind.New(bind.WithLogger(st.log))

	return outputContext.Provider(st,
		BinderContext.Provider(binder,
			KeyerContext.Provider(st.keyer,
				scopeContext.Provider(bind.GlobalScope,
					directoryContext.Provider("",
						fileContext.Provider(nil, o.Children...)))))), nil
}

type config struct {
	log    log.Logger
	keyer  *bind.Keyer
	policy NamePolicy
}

// Option configures [Render].
type Option func(*config)

// WithLogger sets the logger for the render session and binder.
func WithLogger(l log.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithKeyer supplies the refkey issuer published through [KeyerContext], so
// that keys created before rendering can be shared with the tree.
func WithKeyer(k *bind.Keyer) Option {
	return func(c *config) { c.keyer = k }
}

// WithNamePolicy sets the name policy applied to declarations that have no
// enclosing [NamePolicyContext] provider.
func WithNamePolicy(p NamePolicy) Option {
	return func(c *config) { c.policy = p }
}

// Render renders tree beneath a fresh [Output] and returns the files it
// describes, in the order they appear in the tree.
func Render(ctx context.Context, tree any, opts ...Option) ([]File, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	st := newOutput(cfg.log, cfg.keyer)

	var root any = Output{Children: []any{tree}, state: st}
	if cfg.policy != nil {
		root = Output{Children: []any{NamePolicyContext.Provider(cfg.policy, tree)}, state: st}
	}

	if _, err := render.Render(ctx, root, render.WithLogger(cfg.log)); err != nil {
		return nil, err
	}

	files := make([]File, 0, len(st.files))
	for _, sf := range st.files {
		files = append(files, File{Path: sf.path, Content: sf.node.Text()})
	}

	cfg.log.DebugContext(ctx, "output rendered", slog.Int("files", len(files)))

	return files, nil
}

package manifest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/scribe/bind"
	"github.com/ardnew/scribe/emit"
	"github.com/ardnew/scribe/log"
)

// Manifest is a decoded manifest document.
type Manifest struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Naming selects the policy applied to declared names: camel, pascal,
	// snake, screaming-snake, kebab or none.
	Naming string `json:"naming,omitempty" yaml:"naming,omitempty"`

	// Data is the environment of every expression in the manifest. Its
	// entries are visible by name and as fields of "data".
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`

	Files []Item `json:"files" yaml:"files"`

	// Digest is the xxh3 hash of the source the manifest was decoded from.
	Digest uint64 `json:"-" yaml:"-"`

	keyer *bind.Keyer
	log   log.Logger
	progs map[program]*vm.Program
}

// Option configures a [Manifest] at load time.
type Option func(*Manifest)

// WithLogger sets the logger used while loading and rendering.
func WithLogger(l log.Logger) Option {
	return func(m *Manifest) { m.log = l }
}

// Load decodes a manifest from r.
func Load(ctx context.Context, r io.Reader, opts ...Option) (*Manifest, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Parse(ctx, data, opts...)
}

// LoadFile decodes the manifest stored at path.
func LoadFile(ctx context.Context, path string, opts ...Option) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	m, err := Load(ctx, f, opts...)
	if err != nil {
		return nil, err
	}

	if m.Name == "" {
		m.Name = path
	}

	return m, nil
}

// Parse decodes a manifest from data.
func Parse(ctx context.Context, data []byte, opts ...Option) (*Manifest, error) {
	m := new(Manifest)

	if err := yaml.UnmarshalContext(ctx, data, m, yaml.DisallowUnknownField()); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	for _, opt := range opts {
		opt(m)
	}

	m.Digest = xxh3.Hash(data)
	m.keyer = new(bind.Keyer)

	m.log.TraceContext(ctx, "manifest decoded",
		slog.Int("source_bytes", len(data)),
		slog.String("digest", strconv.FormatUint(m.Digest, 16)),
		slog.Int("files", len(m.Files)),
	)

	return m, nil
}

// Keyer returns the issuer of the manifest's refkeys.
func (m *Manifest) Keyer() *bind.Keyer {
	if m.keyer == nil {
		m.keyer = new(bind.Keyer)
	}

	return m.keyer
}

// Refkey returns the refkey that key names throughout the manifest.
func (m *Manifest) Refkey(key string) bind.Refkey {
	return m.Keyer().For(key, "")
}

// NamePolicy returns the policy selected by Naming.
func (m *Manifest) NamePolicy() (emit.NamePolicy, error) {
	if m.Naming == "" {
		return nil, nil
	}

	p, ok := emit.ParseNamePolicy(m.Naming)
	if !ok {
		return nil, ErrUnknownNaming.With(slog.String("naming", m.Naming))
	}

	return p, nil
}

// Render renders the manifest and returns the files it describes.
func (m *Manifest) Render(ctx context.Context) ([]emit.File, error) {
	policy, err := m.NamePolicy()
	if err != nil {
		return nil, err
	}

	tree, err := m.Tree()
	if err != nil {
		return nil, err
	}

	return emit.Render(ctx, tree,
		emit.WithLogger(m.log),
		emit.WithKeyer(m.Keyer()),
		emit.WithNamePolicy(policy),
	)
}

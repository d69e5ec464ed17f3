package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/scribe/log"
	"github.com/ardnew/scribe/manifest"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer kong was configured with, or [os.Stdout].
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stdinSource names standard input as a manifest source.
const stdinSource = "-"

// loadManifest decodes the manifest at source, or from stdin when source is
// "-".
func loadManifest(ctx context.Context, source string) (*manifest.Manifest, error) {
	opt := manifest.WithLogger(log.Default())

	if source == stdinSource {
		return manifest.Load(ctx, os.Stdin, opt)
	}

	return manifest.LoadFile(ctx, source, opt)
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/scribe/emit"
	"github.com/ardnew/scribe/log"
)

// defaultFileMode is the permission mode of written output files.
const defaultFileMode os.FileMode = 0o644

// defaultDirMode is the permission mode of created output directories.
const defaultDirMode os.FileMode = 0o755

// Render renders a manifest and writes the files it describes.
type Render struct {
	Out     string        `default:"."   help:"Output root directory."                         short:"o" type:"path"`
	DryRun  bool          `help:"Report what would be written without writing." short:"n"`
	Force   bool          `help:"Rewrite files whose content is unchanged."     short:"f"`
	Timeout time.Duration `default:"30s" help:"Abandon rendering when references stay unresolved."`

	Manifest string `arg:"" default:"-" help:"Manifest file or '-' for stdin." name:"manifest"`
}

// outcome is what happened to one output file.
type outcome string

const (
	outcomeWritten   outcome = "written"
	outcomeUnchanged outcome = "unchanged"
	outcomePlanned   outcome = "would write"
)

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := loadManifest(ctx, r.Manifest)
	if err != nil {
		return err
	}

	rctx := ctx
	if r.Timeout > 0 {
		var stop context.CancelFunc

		rctx, stop = context.WithTimeout(ctx, r.Timeout)
		defer stop()
	}

	files, err := m.Render(rctx)
	if err != nil {
		return err
	}

	w := stdout(ctx)
	st := newStyles(w)

	var written int

	for _, f := range files {
		res, err := r.write(f)
		if err != nil {
			return err
		}

		if res == outcomeWritten {
			written++
		}

		log.DebugContext(ctx, "output file",
			slog.String("path", f.Path),
			slog.String("outcome", string(res)),
		)

		style := st.ok
		if res == outcomeUnchanged {
			style = st.skipped
		}

		fmt.Fprintf(w, "%s %s\n", style.Render(string(res)), st.path.Render(f.Path))
	}

	log.InfoContext(ctx, "rendered",
		slog.String("manifest", m.Name),
		slog.Int("files", len(files)),
		slog.Int("written", written),
		slog.Bool("dry_run", r.DryRun),
	)

	return nil
}

// write stores f beneath the output root unless the file already holds
// the same content.
func (r *Render) write(f emit.File) (outcome, error) {
	dest := filepath.Join(r.Out, filepath.FromSlash(f.Path))

	same, err := sameContent(dest, f.Content)
	if err != nil {
		return "", ErrWriteOutput.Wrap(err).With(slog.String("path", dest))
	}

	if same && !r.Force {
		return outcomeUnchanged, nil
	}

	if r.DryRun {
		return outcomePlanned, nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), defaultDirMode); err != nil {
		return "", ErrWriteOutput.Wrap(err).With(slog.String("path", dest))
	}

	if err := os.WriteFile(dest, []byte(f.Content), defaultFileMode); err != nil {
		return "", ErrWriteOutput.Wrap(err).With(slog.String("path", dest))
	}

	return outcomeWritten, nil
}

// sameContent reports whether the file at path exists with the given
// content, comparing xxh3 digests.
func sameContent(path, content string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	have, want := xxh3.Hash(data), xxh3.HashString(content)

	log.Trace("digest compared",
		slog.String("path", path),
		slog.String("have", strconv.FormatUint(have, 16)),
		slog.String("want", strconv.FormatUint(want, 16)),
	)

	return have == want, nil
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Check reports problems in a manifest without rendering it.
type Check struct {
	Manifest string `arg:"" default:"-" help:"Manifest file or '-' for stdin." name:"manifest"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := loadManifest(ctx, c.Manifest)
	if err != nil {
		return err
	}

	w := stdout(ctx)
	st := newStyles(w)

	diags := m.Check()
	if len(diags) == 0 {
		fmt.Fprintf(w, "%s %s\n", st.ok.Render("ok"), st.path.Render(m.Name))

		return nil
	}

	for _, d := range diags {
		line := st.err.Render("error") + " " + st.item.Render(d.Item) + ": " + d.Message

		if len(d.Suggestions) > 0 {
			quoted := make([]string, len(d.Suggestions))
			for i, s := range d.Suggestions {
				quoted[i] = strconv.Quote(s)
			}

			line += " " + st.hint.Render("(did you mean "+strings.Join(quoted, ", ")+"?)")
		}

		fmt.Fprintln(w, line)
	}

	return ErrCheckFailed.With(
		slog.String("manifest", m.Name),
		slog.Int("problems", len(diags)),
	)
}

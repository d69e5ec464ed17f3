package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/scribe/manifest"
)

// List prints the directories, files and declarations of a manifest.
type List struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format."                          short:"F"`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML output." short:"i"`

	Manifest string `arg:"" default:"-" help:"Manifest file or '-' for stdin." name:"manifest"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := loadManifest(ctx, l.Manifest)
	if err != nil {
		return err
	}

	entries, err := m.Outline()
	if err != nil {
		return err
	}

	w := stdout(ctx)

	switch l.Format {
	case "json":
		var data []byte
		if l.Indent > 0 {
			data, err = json.MarshalIndent(entries, "", strings.Repeat(" ", l.Indent))
		} else {
			data, err = json.Marshal(entries)
		}

		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		fmt.Fprintln(w, string(data))

	case "yaml":
		var opts []yaml.EncodeOption
		if l.Indent > 0 {
			opts = append(opts, yaml.Indent(l.Indent))
		} else {
			opts = append(opts, yaml.Flow(true))
		}

		data, err := yaml.MarshalContext(ctx, entries, opts...)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		fmt.Fprint(w, string(data))

	default:
		writeOutline(w, newStyles(w), entries)
	}

	return nil
}

func writeOutline(w io.Writer, st styles, entries []manifest.Entry) {
	for _, e := range entries {
		var b strings.Builder

		b.WriteString(st.kind.Render(string(e.Kind)))
		b.WriteByte(' ')
		b.WriteString(st.path.Render(e.Path))

		if e.Kind == manifest.KindDeclare {
			b.WriteByte(' ')
			b.WriteString(st.item.Render(e.Name))

			if e.Key != e.Name {
				b.WriteByte(' ')
				b.WriteString(st.hint.Render("(" + e.Key + ")"))
			}
		}

		fmt.Fprintln(w, b.String())
	}
}

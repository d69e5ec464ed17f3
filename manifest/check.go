package manifest

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/scribe/pkg"
)

// maxSuggestions bounds the keys offered for an undeclared reference.
const maxSuggestions = 3

// Diagnostic is a problem found in a manifest. Item locates it, for example
// "files[0].items[2]".
type Diagnostic struct {
	Item        string   `json:"item"                  yaml:"item"`
	Message     string   `json:"message"               yaml:"message"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`

	Err error `json:"-" yaml:"-"`
}

func (d Diagnostic) String() string {
	var b strings.Builder

	b.WriteString(d.Item)
	b.WriteString(": ")
	b.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		quoted := make([]string, len(d.Suggestions))
		for i, s := range d.Suggestions {
			quoted[i] = strconv.Quote(s)
		}

		b.WriteString(" (did you mean ")
		b.WriteString(strings.Join(quoted, ", "))
		b.WriteString("?)")
	}

	return b.String()
}

// describe renders err with its attributes, except the item location.
func describe(err error) string {
	var b strings.Builder

	b.WriteString(err.Error())

	var pe *pkg.Error
	if errors.As(err, &pe) {
		for _, a := range pe.Attrs() {
			if a.Key == "item" {
				continue
			}

			b.WriteByte(' ')
			b.WriteString(a.String())
		}
	}

	return b.String()
}

// resolve reports every reference to a key no included item declares.
func (b *builder) resolve() {
	keys := slices.Sorted(maps.Keys(b.declared))

	for _, use := range b.refs {
		if _, ok := b.declared[use.key]; ok {
			continue
		}

		var suggest []string
		for _, match := range fuzzy.Find(use.key, keys) {
			if len(suggest) == maxSuggestions {
				break
			}

			suggest = append(suggest, match.Str)
		}

		b.diags = append(b.diags, Diagnostic{
			Item:        use.at,
			Suggestions: suggest,
			Err: ErrUndeclared.With(
				slog.String("key", use.key),
				slog.String("item", use.at),
			),
		})
	}

	for i := range b.diags {
		b.diags[i].Message = describe(b.diags[i].Err)
	}
}

// Check reports every problem that would prevent the manifest from
// rendering, in the order the items appear, followed by references to
// undeclared keys.
func (m *Manifest) Check() []Diagnostic {
	b := m.build()
	b.items("files", m.Files, state{})
	b.resolve()

	m.log.Debug("manifest checked",
		slog.String("manifest", m.Name),
		slog.Int("declared", len(b.declared)),
		slog.Int("references", len(b.refs)),
		slog.Int("problems", len(b.diags)),
	)

	return b.diags
}

// Entry is one directory, file or declaration of a manifest. Path is the
// output path of a directory or file, or of the file holding a declaration.
type Entry struct {
	Kind Kind   `json:"kind"           yaml:"kind"`
	Path string `json:"path"           yaml:"path"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Key  string `json:"key,omitempty"  yaml:"key,omitempty"`
}

// Outline lists the directories, files and declarations the manifest
// describes, in the order they appear.
func (m *Manifest) Outline() ([]Entry, error) {
	b := m.build()
	b.items("files", m.Files, state{})

	if len(b.diags) > 0 {
		return nil, b.diags[0].Err
	}

	return b.entries, nil
}

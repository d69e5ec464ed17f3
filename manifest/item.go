package manifest

import (
	"log/slog"
	"strings"
)

// Item is one node of a manifest tree. Exactly one of the kind fields (Dir,
// File, Declare, Ref, Import, Text, Code, Indent, Scope, Expr, Br) is set.
// A plain YAML string is shorthand for a Text item.
type Item struct {
	Dir  string `json:"dir,omitempty"  yaml:"dir,omitempty"`
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Language and Module apply to File items. Module is the import path of
	// the output root for Go files.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Module   string `json:"module,omitempty"   yaml:"module,omitempty"`

	// Key applies to Declare items and defaults to the declared name.
	Declare string `json:"declare,omitempty" yaml:"declare,omitempty"`
	Key     string `json:"key,omitempty"     yaml:"key,omitempty"`

	Ref    string  `json:"ref,omitempty"    yaml:"ref,omitempty"`
	Import *Import `json:"import,omitempty" yaml:"import,omitempty"`
	Text   string  `json:"text,omitempty"   yaml:"text,omitempty"`
	Code   string  `json:"code,omitempty"   yaml:"code,omitempty"`
	Indent *Indent `json:"indent,omitempty" yaml:"indent,omitempty"`
	Scope  string  `json:"scope,omitempty"  yaml:"scope,omitempty"`
	Expr   string  `json:"expr,omitempty"   yaml:"expr,omitempty"`
	Br     bool    `json:"br,omitempty"     yaml:"br,omitempty"`

	When  string `json:"when,omitempty"  yaml:"when,omitempty"`
	Items []Item `json:"items,omitempty" yaml:"items,omitempty"`
}

// Import names a symbol provided outside the output tree, such as a
// standard library package.
type Import struct {
	From string `json:"from" yaml:"from"`
	Name string `json:"name" yaml:"name"`
}

// Indent indents the output of Items by Unit, or by the enclosing unit when
// Unit is empty.
type Indent struct {
	Unit  string `json:"unit,omitempty"  yaml:"unit,omitempty"`
	Items []Item `json:"items,omitempty" yaml:"items,omitempty"`
}

// Kind names the kind of an item.
type Kind string

const (
	KindDir     Kind = "dir"
	KindFile    Kind = "file"
	KindDeclare Kind = "declare"
	KindRef     Kind = "ref"
	KindImport  Kind = "import"
	KindText    Kind = "text"
	KindCode    Kind = "code"
	KindIndent  Kind = "indent"
	KindScope   Kind = "scope"
	KindExpr    Kind = "expr"
	KindBr      Kind = "br"
)

// UnmarshalYAML accepts either a mapping or a string, the latter decoding
// to a Text item.
func (it *Item) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}

	if s, ok := raw.(string); ok {
		*it = Item{Text: s}

		return nil
	}

	type plain Item

	return unmarshal((*plain)(it))
}

// Kind returns the kind of the item, or an error unless exactly one kind
// field is set.
func (it Item) Kind() (Kind, error) {
	set := make([]Kind, 0, 1)

	for _, k := range []struct {
		kind Kind
		ok   bool
	}{
		{KindDir, it.Dir != ""},
		{KindFile, it.File != ""},
		{KindDeclare, it.Declare != ""},
		{KindRef, it.Ref != ""},
		{KindImport, it.Import != nil},
		{KindText, it.Text != ""},
		{KindCode, it.Code != ""},
		{KindIndent, it.Indent != nil},
		{KindScope, it.Scope != ""},
		{KindExpr, it.Expr != ""},
		{KindBr, it.Br},
	} {
		if k.ok {
			set = append(set, k.kind)
		}
	}

	if len(set) != 1 {
		names := make([]string, len(set))
		for i, k := range set {
			names[i] = string(k)
		}

		return "", ErrItemKind.With(slog.String("kinds", strings.Join(names, ",")))
	}

	kind := set[0]

	if kind != KindFile {
		switch {
		case it.Language != "":
			return "", ErrItemField.With(slog.String("field", "language"), slog.String("kind", string(kind)))
		case it.Module != "":
			return "", ErrItemField.With(slog.String("field", "module"), slog.String("kind", string(kind)))
		}
	}

	if it.Key != "" && kind != KindDeclare {
		return "", ErrItemField.With(slog.String("field", "key"), slog.String("kind", string(kind)))
	}

	if len(it.Items) > 0 {
		switch kind {
		case KindDir, KindFile, KindDeclare, KindScope:
		default:
			return "", ErrItemField.With(slog.String("field", "items"), slog.String("kind", string(kind)))
		}
	}

	return kind, nil
}

// RefKey returns the key a Declare item registers under.
func (it Item) RefKey() string {
	if it.Key != "" {
		return it.Key
	}

	return it.Declare
}

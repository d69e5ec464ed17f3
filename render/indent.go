package render

import "strings"

// DefaultIndentUnit is the unit used when no enclosing [Indent] sets one.
const DefaultIndentUnit = "  "

// IndentState is the indentation in effect at a point in the tree.
type IndentState struct {
	Level int
	Unit  string
}

// IndentContext carries the enclosing [IndentState]. Outside any [Indent] it
// yields level 0 with [DefaultIndentUnit].
var IndentContext = NewContextDefault("indent", IndentState{Unit: DefaultIndentUnit})

// Indent prefixes every non-blank line of its children's output with Unit,
// or with the enclosing unit when Unit is empty. Lines holding only spaces
// and tabs are left as they are.
type Indent struct {
	Unit     string
	Children []any
}

func (in Indent) Render(f *Frame) (any, error) {
	cur, _ := IndentContext.Use(f)

	unit := in.Unit
	if unit == "" {
		unit = cur.Unit
	}

	f.Transform(func(s string) string { return IndentLines(s, unit) })

	return IndentContext.Provider(
		IndentState{Level: cur.Level + 1, Unit: unit},
		in.Children...,
	), nil
}

// IndentLines prefixes each line of s that contains something other than
// spaces and tabs.
func IndentLines(s, prefix string) string {
	if s == "" || prefix == "" {
		return s
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.Trim(line, " \t\r") != "" {
			lines[i] = prefix + line
		}
	}

	return strings.Join(lines, "\n")
}

package render

import (
	"log/slog"
	"strings"
)

// Marker separates literal segments in a [Template] source.
const Marker = "{{}}"

// Code interleaves literal text with substitutions, in the manner of a
// tagged template literal.
//
// The first literal must begin with a line break, which is dropped. The
// leading spaces and tabs of the first line that follows become the
// baseline, and the baseline is removed from the start of every line of
// every literal. When a literal ends in a line of only spaces and tabs, that
// trailing run is removed and the following substitution is wrapped in an
// [Indent] using it as the unit, so multi-line substitutions line up with
// the surrounding text. A whitespace-only last line of the final literal is
// dropped, keeping its line break.
func Code(lits []string, subs ...any) ([]any, error) {
	if len(lits) != len(subs)+1 {
		return nil, ErrTemplateArity.With(
			slog.Int("literals", len(lits)),
			slog.Int("substitutions", len(subs)),
		)
	}

	if !strings.HasPrefix(lits[0], "\n") {
		return nil, ErrTemplateStart
	}

	first := lits[0][1:]
	base := baseline(first)

	out := make([]any, 0, 2*len(lits))

	for i, lit := range lits {
		if i == 0 {
			lit = first
		}

		lit = dedent(lit, base)

		if i == len(lits)-1 {
			out = append(out, trimLastLine(lit))

			break
		}

		text, unit := splitIndent(lit)
		out = append(out, text)

		if unit == "" {
			out = append(out, subs[i])
		} else {
			out = append(out, Indent{Unit: unit, Children: []any{subs[i]}})
		}
	}

	return out, nil
}

// MustCode is like [Code] but panics on error. It is intended for templates
// fixed at compile time.
func MustCode(lits []string, subs ...any) []any {
	out, err := Code(lits, subs...)
	if err != nil {
		panic(err)
	}

	return out
}

// Template splits src at each [Marker] and passes the pieces to [Code].
func Template(src string, subs ...any) ([]any, error) {
	return Code(strings.Split(src, Marker), subs...)
}

func baseline(s string) string {
	line, _, _ := strings.Cut(s, "\n")

	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func dedent(s, base string) string {
	if base == "" {
		return s
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, base)
	}

	return strings.Join(lines, "\n")
}

// splitIndent removes a trailing line of spaces and tabs from s and returns
// it separately. s is returned unchanged when its last line has other
// content or when s has no line break.
func splitIndent(s string) (string, string) {
	i := strings.LastIndexByte(s, '\n')
	if i < 0 {
		return s, ""
	}

	tail := s[i+1:]
	if strings.Trim(tail, " \t") != "" {
		return s, ""
	}

	return s[:i+1], tail
}

func trimLastLine(s string) string {
	i := strings.LastIndexByte(s, '\n')
	if i < 0 {
		return s
	}

	if strings.Trim(s[i+1:], " \t") != "" {
		return s
	}

	return s[:i+1]
}

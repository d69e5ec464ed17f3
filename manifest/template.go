package manifest

import (
	"log/slog"
	"strings"
)

const (
	placeholderOpen  = "{{"
	placeholderClose = "}}"
)

type placeholder struct {
	kind string
	arg  string
}

// splitCode cuts src at each placeholder, returning the literal text
// around them.
func splitCode(src string) ([]string, []placeholder, error) {
	var (
		lits []string
		subs []placeholder
	)

	for {
		i := strings.Index(src, placeholderOpen)
		if i < 0 {
			return append(lits, src), subs, nil
		}

		rest := src[i+len(placeholderOpen):]

		j := strings.Index(rest, placeholderClose)
		if j < 0 {
			return nil, nil, ErrPlaceholder.With(slog.String("text", src[i:]))
		}

		body := strings.TrimSpace(rest[:j])
		kind, arg, _ := strings.Cut(body, ":")
		ph := placeholder{kind: strings.TrimSpace(kind), arg: strings.TrimSpace(arg)}

		switch {
		case (ph.kind == "ref" || ph.kind == "expr") && ph.arg != "":
		case ph.kind == "name" && ph.arg == "":
		default:
			return nil, nil, ErrPlaceholder.With(slog.String("placeholder", body))
		}

		lits = append(lits, src[:i])
		subs = append(subs, ph)
		src = rest[j+len(placeholderClose):]
	}
}

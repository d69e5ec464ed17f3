package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
)

const (
	ansiReset   = "\033[0m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
	ansiGray    = "\033[90m"
)

// colorHandler writes key=value records like [slog.TextHandler], with ANSI
// colors and without quoting.
type colorHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	prefix string // group path for attrs added later, with trailing dot
	preset []byte // attrs added by WithAttrs, already encoded
}

func newColorHandler(w io.Writer, opts *slog.HandlerOptions) *colorHandler {
	return &colorHandler{opts: *opts, mu: &sync.Mutex{}, w: w}
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	sep := func() {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
	}

	if !r.Time.IsZero() {
		if a := h.replace(nil, slog.Time(slog.TimeKey, r.Time)); a.Key != "" {
			buf.WriteString(ansiGray)
			buf.WriteString(a.Value.String())
			buf.WriteString(ansiReset)
		}
	}

	sep()
	buf.WriteString(levelColor(r.Level))
	buf.WriteString(h.replace(nil, slog.Any(slog.LevelKey, r.Level)).Value.String())
	buf.WriteString(ansiReset)

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			sep()
			buf.WriteString(ansiGray)
			buf.WriteString(src.File)
			buf.WriteByte(':')
			buf.WriteString(strconv.Itoa(src.Line))
			buf.WriteString(ansiReset)
		}
	}

	sep()
	buf.WriteString(r.Message)

	if len(h.preset) > 0 {
		buf.Write(h.preset)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	buf := bytes.NewBuffer(bytes.Clone(h.preset))

	for _, a := range attrs {
		c.writeAttr(buf, h.prefix, a)
	}

	c.preset = buf.Bytes()

	return &c
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *colorHandler) replace(groups []string, a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(groups, a)
}

func (h *colorHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, inner, ga)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(ansiGray)
	buf.WriteString(prefix)
	buf.WriteString(a.Key)
	buf.WriteString(ansiReset)
	buf.WriteByte('=')
	writeValue(buf, a.Value)
}

func writeValue(buf *bytes.Buffer, v slog.Value) {
	color := ansiCyan

	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		color = ansiYellow
	case slog.KindBool:
		color = ansiRed
		if v.Bool() {
			color = ansiGreen
		}
	case slog.KindDuration:
		color = ansiMagenta
	case slog.KindTime:
		color = ansiBlue
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			buf.WriteString(ansiRed)
			buf.WriteString(err.Error())
			buf.WriteString(ansiReset)

			return
		}
	}

	buf.WriteString(color)
	fmt.Fprint(buf, v)
	buf.WriteString(ansiReset)
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	case level >= slog.LevelInfo:
		return ansiGreen
	case level >= slog.LevelDebug:
		return ansiBlue
	default:
		return ansiMagenta
	}
}

package manifest

import (
	"log/slog"
	"maps"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type program struct {
	source string
	guard  bool
}

// env returns the environment expressions are compiled and run against.
func (m *Manifest) env() map[string]any {
	data := m.Data
	if data == nil {
		data = map[string]any{}
	}

	env := make(map[string]any, len(data)+1)
	maps.Copy(env, data)
	env["data"] = data

	return env
}

func (m *Manifest) compile(source string, guard bool) (*vm.Program, error) {
	key := program{source: source, guard: guard}
	if p, ok := m.progs[key]; ok {
		return p, nil
	}

	opts := []expr.Option{expr.Env(m.env())}
	if guard {
		opts = append(opts, expr.AsBool())
	}

	p, err := expr.Compile(source, opts...)
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).With(slog.String("source", source))
	}

	if m.progs == nil {
		m.progs = make(map[program]*vm.Program)
	}

	m.progs[key] = p

	return p, nil
}

// eval evaluates source against the manifest data.
func (m *Manifest) eval(source string) (any, error) {
	p, err := m.compile(source, false)
	if err != nil {
		return nil, err
	}

	out, err := expr.Run(p, m.env())
	if err != nil {
		return nil, ErrExprEval.Wrap(err).With(slog.String("source", source))
	}

	if out != nil {
		switch reflect.TypeOf(out).Kind() {
		case reflect.Map, reflect.Struct, reflect.Func, reflect.Chan:
			return nil, ErrExprResult.With(
				slog.String("source", source),
				slog.String("type", reflect.TypeOf(out).String()),
			)
		}
	}

	return out, nil
}

// holds reports whether the guard source evaluates to true. An empty guard
// always holds.
func (m *Manifest) holds(source string) (bool, error) {
	if source == "" {
		return true, nil
	}

	p, err := m.compile(source, true)
	if err != nil {
		return false, err
	}

	out, err := expr.Run(p, m.env())
	if err != nil {
		return false, ErrExprEval.Wrap(err).With(slog.String("source", source))
	}

	ok, _ := out.(bool)

	return ok, nil
}

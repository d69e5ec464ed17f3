package bind

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/scribe/log"
)

// ScopeID names a scope within its [Binder].
type ScopeID int

// GlobalScope is the root of every binder's scope tree.
const GlobalScope ScopeID = 0

// DeclID names a declaration within its [Binder].
type DeclID int

// Kind classifies a scope.
type Kind uint8

const (
	KindGlobal Kind = iota
	KindModule
	KindLocal
)

func (k Kind) String() string {
	switch k {
	case KindGlobal:
		return "global"
	case KindModule:
		return "module"
	case KindLocal:
		return "local"
	default:
		return "unknown"
	}
}

// ScopeInfo describes a scope.
type ScopeInfo struct {
	ID     ScopeID
	Kind   Kind
	Name   string  // module path, local name, or "<global>"
	Parent ScopeID // meaningless for the global scope
}

// Declaration is a named entity registered in a scope.
type Declaration struct {
	ID     DeclID
	Name   string
	Scope  ScopeID
	Refkey Refkey
}

// Resolution locates a declaration relative to the scope that asked for it.
//
// PathUp lists the scopes from just below Common down to the requesting
// scope; PathDown lists the scopes from just below Common down to the
// declaring scope. Both are empty when the two scopes coincide.
type Resolution struct {
	Resolved bool
	Target   Declaration
	PathUp   []ScopeID
	PathDown []ScopeID
	Common   ScopeID
}

type scope struct {
	ScopeInfo

	names    map[string]DeclID
	keys     map[Refkey]DeclID
	children map[string]ScopeID
}

type waiter struct {
	scope ScopeID
	fn    func(Resolution)
}

// Binder owns a scope tree and the declarations registered in it.
type Binder struct {
	log     log.Logger
	scopes  []*scope
	decls   []Declaration
	byKey   map[Refkey]DeclID
	waiters map[Refkey][]waiter
}

// Option configures a [Binder].
type Option func(*Binder)

// WithLogger sets the logger used for binder diagnostics.
func WithLogger(l log.Logger) Option {
	return func(b *Binder) { b.log = l }
}

// New returns a binder holding only the global scope.
func New(opts ...Option) *Binder {
	b := &Binder{
		byKey:   make(map[Refkey]DeclID),
		waiters: make(map[Refkey][]waiter),
	}

	for _, opt := range opts {
		opt(b)
	}

	b.scopes = append(b.scopes, newScope(ScopeInfo{
		ID:     GlobalScope,
		Kind:   KindGlobal,
		Name:   "<global>",
		Parent: GlobalScope,
	}))

	return b
}

func newScope(info ScopeInfo) *scope {
	return &scope{
		ScopeInfo: info,
		names:     make(map[string]DeclID),
		keys:      make(map[Refkey]DeclID),
		children:  make(map[string]ScopeID),
	}
}

// Global returns the root scope.
func (b *Binder) Global() ScopeID { return GlobalScope }

func (b *Binder) scope(id ScopeID) (*scope, error) {
	if id < 0 || int(id) >= len(b.scopes) {
		return nil, ErrUnknownScope.With(slog.Int("scope", int(id)))
	}

	return b.scopes[id], nil
}

// CreateModuleScope adds a module scope named by path beneath parent, which
// must be the global scope or another module.
func (b *Binder) CreateModuleScope(path string, parent ScopeID) (ScopeID, error) {
	p, err := b.scope(parent)
	if err != nil {
		return 0, err
	}

	if p.Kind == KindLocal {
		return 0, ErrInvalidParent.With(
			slog.String("module", path),
			slog.String("parent", p.Name),
			slog.String("kind", p.Kind.String()),
		)
	}

	return b.addScope(KindModule, path, p), nil
}

// CreateLocalScope adds a local scope beneath parent, which may be of any
// kind. Pass [GlobalScope] for a scope outside every module.
func (b *Binder) CreateLocalScope(name string, parent ScopeID) (ScopeID, error) {
	p, err := b.scope(parent)
	if err != nil {
		return 0, err
	}

	return b.addScope(KindLocal, name, p), nil
}

func (b *Binder) addScope(kind Kind, name string, parent *scope) ScopeID {
	id := ScopeID(len(b.scopes))
	b.scopes = append(b.scopes, newScope(ScopeInfo{
		ID:     id,
		Kind:   kind,
		Name:   name,
		Parent: parent.ID,
	}))
	parent.children[name] = id

	b.log.Trace("scope created",
		slog.Int("scope", int(id)),
		slog.String("kind", kind.String()),
		slog.String("name", name),
		slog.Int("parent", int(parent.ID)))

	return id
}

// CreateDeclaration registers name in scope under key, then runs every
// callback waiting on key in the order they were queued. A zero key
// registers the name only.
//
// Declaring a key that is already registered replaces the earlier
// declaration for all later resolutions.
func (b *Binder) CreateDeclaration(name string, scope ScopeID, key Refkey) (DeclID, error) {
	s, err := b.scope(scope)
	if err != nil {
		return 0, err
	}

	id := DeclID(len(b.decls))
	b.decls = append(b.decls, Declaration{ID: id, Name: name, Scope: scope, Refkey: key})
	s.names[name] = id

	b.log.Debug("declaration created",
		slog.String("name", name),
		slog.String("scope", s.Name),
		slog.Uint64("refkey", uint64(key)))

	if key == 0 {
		return id, nil
	}

	if prev, ok := b.byKey[key]; ok {
		b.log.Debug("refkey redeclared",
			slog.Uint64("refkey", uint64(key)),
			slog.String("previous", b.decls[prev].Name),
			slog.String("name", name))
	}

	s.keys[key] = id
	b.byKey[key] = id

	ws := b.waiters[key]
	delete(b.waiters, key)

	for _, w := range ws {
		b.log.Trace("waiter woken",
			slog.Uint64("refkey", uint64(key)),
			slog.Int("scope", int(w.scope)))
		w.fn(b.ResolveByKey(w.scope, key))
	}

	return id, nil
}

// ResolveByKey locates the declaration registered under key as seen from
// scope. The result is unresolved if key is not declared.
func (b *Binder) ResolveByKey(scope ScopeID, key Refkey) Resolution {
	id, ok := b.byKey[key]
	if !ok {
		return Resolution{Common: GlobalScope}
	}

	target := b.decls[id]
	from := b.Chain(scope)
	to := b.Chain(target.Scope)

	n := 0
	for n < len(from) && n < len(to) && from[n] == to[n] {
		n++
	}

	common := GlobalScope
	if n > 0 {
		common = from[n-1]
	}

	return Resolution{
		Resolved: true,
		Target:   target,
		PathUp:   from[n:],
		PathDown: to[n:],
		Common:   common,
	}
}

// ResolveOrWait calls fn with the resolution of key from scope. If key is
// not yet declared, fn is queued and runs once, when key is first declared.
func (b *Binder) ResolveOrWait(scope ScopeID, key Refkey, fn func(Resolution)) {
	if _, ok := b.byKey[key]; ok {
		fn(b.ResolveByKey(scope, key))

		return
	}

	b.waiters[key] = append(b.waiters[key], waiter{scope: scope, fn: fn})
}

// Await is [Binder.ResolveOrWait] delivering to a channel. The channel is
// buffered and receives exactly one value.
func (b *Binder) Await(scope ScopeID, key Refkey) <-chan Resolution {
	ch := make(chan Resolution, 1)
	b.ResolveOrWait(scope, key, func(r Resolution) { ch <- r })

	return ch
}

// Scope describes the scope id.
func (b *Binder) Scope(id ScopeID) (ScopeInfo, bool) {
	s, err := b.scope(id)
	if err != nil {
		return ScopeInfo{}, false
	}

	return s.ScopeInfo, true
}

// Declaration returns the declaration id.
func (b *Binder) Declaration(id DeclID) (Declaration, bool) {
	if id < 0 || int(id) >= len(b.decls) {
		return Declaration{}, false
	}

	return b.decls[id], true
}

// Declarations returns the declarations currently visible by name in scope,
// sorted by name.
func (b *Binder) Declarations(scope ScopeID) []Declaration {
	s, err := b.scope(scope)
	if err != nil {
		return nil
	}

	out := make([]Declaration, 0, len(s.names))
	for _, name := range slices.Sorted(maps.Keys(s.names)) {
		out = append(out, b.decls[s.names[name]])
	}

	return out
}

// Chain returns the scopes from the global scope down to id, inclusive.
func (b *Binder) Chain(id ScopeID) []ScopeID {
	var rev []ScopeID

	for cur := id; ; {
		s, err := b.scope(cur)
		if err != nil {
			return nil
		}

		rev = append(rev, cur)
		if s.Kind == KindGlobal {
			break
		}

		cur = s.Parent
	}

	slices.Reverse(rev)

	return rev
}

// Lookup finds name in scope or, failing that, in the nearest enclosing
// scope that declares it.
func (b *Binder) Lookup(scope ScopeID, name string) (Declaration, bool) {
	for cur := scope; ; {
		s, err := b.scope(cur)
		if err != nil {
			return Declaration{}, false
		}

		if id, ok := s.names[name]; ok {
			return b.decls[id], true
		}

		if s.Kind == KindGlobal {
			return Declaration{}, false
		}

		cur = s.Parent
	}
}

// Pending returns the refkeys that have queued waiters, in ascending order.
func (b *Binder) Pending() []Refkey {
	return slices.Sorted(maps.Keys(b.waiters))
}

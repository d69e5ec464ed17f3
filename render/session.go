package render

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ardnew/scribe/log"
)

// Session holds the state of a single [Render] call: the output tree, the
// deferred slots not yet run, and the pending values not yet placed.
//
// A Session is confined to the render goroutine, except for the settle
// functions returned by [Session.NewPending].
type Session struct {
	ctx  context.Context
	log  log.Logger
	root *Node

	slots   []*Slot
	waiting int // pendings with at least one unfilled placeholder
	rounds  int

	mu    sync.Mutex
	ready []*Pending
	wake  chan struct{}
}

func newSession(ctx context.Context, opts ...Option) *Session {
	if ctx == nil {
		ctx = context.Background()
	}

	s := &Session{
		ctx:  ctx,
		root: newNode(nil),
		wake: make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Pending is a value that becomes available after it is placed in the tree.
// Each place it is rendered receives a placeholder node that is filled once
// the value settles.
type Pending struct {
	session *Session

	mu      sync.Mutex
	settled bool
	value   any
	err     error

	// placeholders is only touched by the render goroutine.
	placeholders []*Node
}

// SettleFunc delivers the value of a [Pending]. Only the first call has any
// effect. It may be called from any goroutine.
type SettleFunc func(value any, err error)

// NewPending returns an unsettled value and the function that settles it.
// A non-nil err settles the value as a failure, which aborts the render
// when the value is placed.
func (s *Session) NewPending() (*Pending, SettleFunc) {
	p := &Pending{session: s}

	return p, func(value any, err error) {
		p.mu.Lock()
		if p.settled {
			p.mu.Unlock()

			return
		}

		p.settled, p.value, p.err = true, value, err
		p.mu.Unlock()

		s.mu.Lock()
		s.ready = append(s.ready, p)
		s.mu.Unlock()

		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
}

// Settled reports whether p has a value.
func (p *Pending) Settled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.settled
}

func (p *Pending) result() (bool, any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.settled, p.value, p.err
}

func (s *Session) place(parent *Node, p *Pending) error {
	if p.session != s {
		return ErrForeignPending
	}

	n := newNode(parent)

	settled, value, err := p.result()
	if settled {
		return s.fill(n, value, err)
	}

	if len(p.placeholders) == 0 {
		s.waiting++
	}

	p.placeholders = append(p.placeholders, n)

	return nil
}

func (s *Session) fill(n *Node, value any, err error) error {
	if err != nil {
		return ErrComponent.Wrap(err)
	}

	return s.render(n, value)
}

// Slot reserves a position in the output that is filled after the
// synchronous pass. Render the Slot where the content belongs; its Children
// render immediately and the deferred content is appended after them.
type Slot struct {
	Children []any

	factory func() (any, error)
	node    *Node
}

// Defer registers factory to produce content for the returned slot once the
// synchronous pass and all settled pending values have been rendered.
func (s *Session) Defer(factory func() (any, error), children ...any) *Slot {
	sl := &Slot{Children: children, factory: factory}
	s.slots = append(s.slots, sl)

	return sl
}

func (sl *Slot) Render(f *Frame) (any, error) {
	if sl.node != nil {
		return nil, ErrSlotReused
	}

	sl.node = f.node

	return sl.Children, nil
}

// drive runs after the synchronous pass until no work remains.
func (s *Session) drive() error {
	for {
		if err := s.drain(); err != nil {
			return err
		}

		ran, err := s.runSlots()
		if err != nil {
			return err
		}

		if ran {
			continue
		}

		if s.waiting == 0 {
			if len(s.slots) > 0 {
				return ErrSlotUnplaced.With(slog.Int("slots", len(s.slots)))
			}

			return nil
		}

		s.log.TraceContext(s.ctx, "render waiting on pending values",
			slog.Int("pending", s.waiting))

		select {
		case <-s.wake:
		case <-s.ctx.Done():
			return ErrStalled.Wrap(s.ctx.Err()).With(slog.Int("pending", s.waiting))
		}
	}
}

// drain fills placeholders of settled values in settle order, including
// values settled while draining.
func (s *Session) drain() error {
	for {
		s.mu.Lock()
		ready := s.ready
		s.ready = nil
		s.mu.Unlock()

		if len(ready) == 0 {
			return nil
		}

		for _, p := range ready {
			holders := p.placeholders
			if len(holders) == 0 {
				continue
			}

			p.placeholders = nil
			s.waiting--

			_, value, err := p.result()
			for _, n := range holders {
				if err := s.fill(n, value, err); err != nil {
					return err
				}
			}
		}
	}
}

// runSlots runs one round of the placed slots registered so far. Slots
// registered during the round run in the next one. Slots not yet placed are
// kept, since their reservation may sit inside content that is still
// pending.
func (s *Session) runSlots() (bool, error) {
	round := s.slots
	s.slots = nil

	var kept []*Slot

	ran := false

	for _, sl := range round {
		if sl.node == nil {
			kept = append(kept, sl)

			continue
		}

		if !ran {
			ran = true
			s.rounds++

			s.log.TraceContext(s.ctx, "render running deferred slots",
				slog.Int("round", s.rounds), slog.Int("slots", len(round)))
		}

		if sl.factory == nil {
			continue
		}

		out, err := sl.factory()
		if err != nil {
			return ran, ErrComponent.Wrap(err)
		}

		if err := s.render(sl.node, out); err != nil {
			return ran, err
		}
	}

	s.slots = append(kept, s.slots...)

	return ran, nil
}

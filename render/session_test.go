package render

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestPending_SettledBeforePlacement(t *testing.T) {
	root := Func(func(f *Frame) (any, error) {
		p, settle := f.Session().NewPending()
		settle("now", nil)
		settle("ignored", nil)

		if !p.Settled() {
			t.Error("Settled() = false after settle")
		}

		return []any{"<", p, ">"}, nil
	})

	got, err := RenderText(context.Background(), root)
	if err != nil || got != "<now>" {
		t.Errorf("RenderText() = %q, %v, want \"<now>\"", got, err)
	}
}

func TestPending_SettledFromGoroutine(t *testing.T) {
	var wg sync.WaitGroup

	root := Func(func(f *Frame) (any, error) {
		var out []any

		for _, word := range []string{"a", "b", "c"} {
			p, settle := f.Session().NewPending()
			out = append(out, p, ";")

			wg.Add(1)

			go func() {
				defer wg.Done()
				time.Sleep(time.Millisecond)
				settle(Fragment(word, word), nil)
			}()
		}

		return out, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := RenderText(ctx, root)
	wg.Wait()

	if err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}

	if want := "aa;bb;cc;"; got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}
}

func TestPending_PlacedTwice(t *testing.T) {
	root := Func(func(f *Frame) (any, error) {
		p, settle := f.Session().NewPending()
		slot := f.Session().Defer(func() (any, error) {
			settle("v", nil)
			return nil, nil
		})

		return []any{p, "-", p, slot}, nil
	})

	got, err := RenderText(context.Background(), root)
	if err != nil || got != "v-v" {
		t.Errorf("RenderText() = %q, %v, want \"v-v\"", got, err)
	}
}

func TestPending_FillOrderFollowsSettleOrder(t *testing.T) {
	var order []string

	record := func(s string) Component {
		return Func(func(*Frame) (any, error) {
			order = append(order, s)
			return s, nil
		})
	}

	root := Func(func(f *Frame) (any, error) {
		p1, s1 := f.Session().NewPending()
		p2, s2 := f.Session().NewPending()
		p3, s3 := f.Session().NewPending()

		slot := f.Session().Defer(func() (any, error) {
			s3(record("3"), nil)
			s1(record("1"), nil)
			s2(record("2"), nil)

			return nil, nil
		})

		return []any{p1, p2, p3, slot}, nil
	})

	got, err := RenderText(context.Background(), root)
	if err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}

	if got != "123" {
		t.Errorf("RenderText() = %q, want document order %q", got, "123")
	}

	if strings.Join(order, "") != "312" {
		t.Errorf("fill order = %v, want settle order [3 1 2]", order)
	}
}

func TestPending_Failure(t *testing.T) {
	boom := errors.New("boom")

	root := Func(func(f *Frame) (any, error) {
		p, settle := f.Session().NewPending()
		settle(nil, boom)

		return p, nil
	})

	if _, err := Render(context.Background(), root); !errors.Is(err, boom) {
		t.Errorf("Render() error = %v, want %v", err, boom)
	}
}

func TestPending_Foreign(t *testing.T) {
	var leaked *Pending

	_, err := Render(context.Background(), Func(func(f *Frame) (any, error) {
		leaked, _ = f.Session().NewPending()
		return nil, nil
	}))
	if err != nil {
		t.Fatalf("first Render() error = %v", err)
	}

	if _, err := Render(context.Background(), leaked); !errors.Is(err, ErrForeignPending) {
		t.Errorf("Render() error = %v, want ErrForeignPending", err)
	}
}

func TestRender_Stalled(t *testing.T) {
	root := Func(func(f *Frame) (any, error) {
		p, _ := f.Session().NewPending()
		return []any{"x", p}, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := Render(ctx, root)

	if !errors.Is(err, ErrStalled) {
		t.Fatalf("Render() error = %v, want ErrStalled", err)
	}

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Render() error = %v, want it to wrap the context error", err)
	}
}

func TestSlot_AppendsAfterChildren(t *testing.T) {
	root := Func(func(f *Frame) (any, error) {
		var items []string

		header := f.Session().Defer(func() (any, error) {
			return strings.Join(items, ","), nil
		}, "items: ")

		add := func(s string) Component {
			return Func(func(*Frame) (any, error) {
				items = append(items, s)
				return nil, nil
			})
		}

		return []any{header, "\n", add("a"), add("b"), "body"}, nil
	})

	got, err := RenderText(context.Background(), root)
	if err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}

	if want := "items: a,b\nbody"; got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}
}

func TestSlot_Chained(t *testing.T) {
	root := Func(func(f *Frame) (any, error) {
		s := f.Session()

		var third *Slot

		second := s.Defer(func() (any, error) {
			third = s.Defer(func() (any, error) { return "3", nil })
			return []any{"2", third}, nil
		})

		first := s.Defer(func() (any, error) { return []any{"1", second}, nil })

		return first, nil
	})

	got, err := RenderText(context.Background(), root)
	if err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}

	if got != "123" {
		t.Errorf("RenderText() = %q, want %q", got, "123")
	}
}

func TestSlot_Unplaced(t *testing.T) {
	root := Func(func(f *Frame) (any, error) {
		f.Session().Defer(func() (any, error) { return "lost", nil })
		return "x", nil
	})

	if _, err := Render(context.Background(), root); !errors.Is(err, ErrSlotUnplaced) {
		t.Errorf("Render() error = %v, want ErrSlotUnplaced", err)
	}
}

func TestSlot_Reused(t *testing.T) {
	root := Func(func(f *Frame) (any, error) {
		sl := f.Session().Defer(func() (any, error) { return nil, nil })
		return []any{sl, sl}, nil
	})

	if _, err := Render(context.Background(), root); !errors.Is(err, ErrSlotReused) {
		t.Errorf("Render() error = %v, want ErrSlotReused", err)
	}
}

func TestSlot_FactoryError(t *testing.T) {
	boom := errors.New("boom")

	root := Func(func(f *Frame) (any, error) {
		return f.Session().Defer(func() (any, error) { return nil, boom }), nil
	})

	if _, err := Render(context.Background(), root); !errors.Is(err, boom) {
		t.Errorf("Render() error = %v, want %v", err, boom)
	}
}

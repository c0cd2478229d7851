package lisp_test

import (
	"testing"

	"github.com/adamnemecek/lispkit/lisp"
)

func TestPoolReclaimsUnreachable(t *testing.T) {
	pool := lisp.NewManagedObjectPool()
	root := lisp.NewBox(lisp.Fixnum(1))
	garbage := lisp.NewBox(lisp.Fixnum(2))
	pool.Register(root)
	pool.Register(garbage)

	reclaimed := pool.Collect(nil, func(epoch uint8, mark func(lisp.Value)) {
		mark(root)
	})
	if reclaimed != 1 {
		t.Errorf("Collect() reclaimed %d, want 1", reclaimed)
	}
	stats := pool.Stats()
	if stats.Tracked != 1 {
		t.Errorf("Stats().Tracked = %d, want 1", stats.Tracked)
	}
	if stats.LastReachable != 1 {
		t.Errorf("Stats().LastReachable = %d, want 1", stats.LastReachable)
	}
}

func TestPoolBreaksCycles(t *testing.T) {
	pool := lisp.NewManagedObjectPool()
	a := lisp.NewMPair(lisp.Fixnum(1), lisp.Null)
	b := lisp.NewMPair(lisp.Fixnum(2), lisp.Null)
	a.SetCdr(b)
	b.SetCdr(a) // a <-> b cycle, unreachable from any root
	pool.Register(a)
	pool.Register(b)

	reclaimed := pool.Collect(nil, func(epoch uint8, mark func(lisp.Value)) {
		// no roots: the whole a<->b cycle is garbage
	})
	if reclaimed != 2 {
		t.Errorf("Collect() reclaimed %d, want 2 (the whole cycle)", reclaimed)
	}
	if a.Car != nil || a.Cdr != nil {
		t.Errorf("a's fields were not cleared by cleanup(): Car=%v Cdr=%v", a.Car, a.Cdr)
	}
}

func TestPoolMarkIsIdempotentAcrossEpochs(t *testing.T) {
	pool := lisp.NewManagedObjectPool()
	root := lisp.NewVector(nil, true)
	pool.Register(root)

	for i := 0; i < 3; i++ {
		reclaimed := pool.Collect(nil, func(epoch uint8, mark func(lisp.Value)) {
			mark(root)
		})
		if reclaimed != 0 {
			t.Errorf("iteration %d: Collect() reclaimed %d, want 0", i, reclaimed)
		}
	}
}

func TestPoolRegisterIsIdempotent(t *testing.T) {
	pool := lisp.NewManagedObjectPool()
	root := lisp.NewBox(lisp.Fixnum(1))
	pool.Register(root)
	pool.Register(root)

	reclaimed := pool.Collect(nil, func(epoch uint8, mark func(lisp.Value)) {
		mark(root)
	})
	if reclaimed != 0 {
		t.Errorf("Collect() reclaimed %d, want 0", reclaimed)
	}
	if got := pool.Stats().Tracked; got != 1 {
		t.Errorf("Stats().Tracked = %d, want 1 (double Register must not double-count)", got)
	}
}

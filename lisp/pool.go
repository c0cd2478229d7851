package lisp

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// ManagedObjectPool is the mark/sweep cycle breaker every (H) handle
// is expected to register with. This core relies on Go's own garbage
// collector for ordinary acyclic memory; the pool exists only to find
// and break reference cycles among handles that a language-level
// value graph can form (mutable pairs, boxes, vectors) which would
// otherwise keep each other artificially alive.
//
// Collection is cooperative and synchronous: Collect walks exactly
// once from a caller-supplied root set, recolouring every reachable
// handle with the current epoch, then sweeps anything left at a stale
// epoch.
type ManagedObjectPool struct {
	epoch         uint8
	objects       map[uint64]managed
	lastReachable *roaring64.Bitmap
	lastReclaimed int
}

// NewManagedObjectPool returns an empty pool.
func NewManagedObjectPool() *ManagedObjectPool {
	return &ManagedObjectPool{objects: make(map[uint64]managed)}
}

// Register begins tracking v. Registering an already-tracked handle
// is a no-op.
func (p *ManagedObjectPool) Register(v managed) {
	h := v.handle()
	if h.managed {
		return
	}
	h.managed = true
	p.objects[h.id] = v
}

// Tracked reports whether v is currently registered with the pool.
func (p *ManagedObjectPool) Tracked(v managed) bool {
	return v.handle().managed
}

// nextEpoch advances the pool's epoch tag, wrapping 255 -> 1 so 0
// stays reserved as "never marked".
func (p *ManagedObjectPool) nextEpoch() uint8 {
	p.epoch++
	if p.epoch == 0 {
		p.epoch = 1
	}
	return p.epoch
}

// Collect performs one mark/sweep cycle. markRoots is called once
// with the new epoch and a mark function; it must call mark on every
// root Value reachable from outside the pool. Every handle mark
// reaches, directly or through pair/tagged/syntax/values composites,
// is recoloured to epoch.
// Anything left at a stale epoch afterwards is unreachable:
// cleanupHandle runs on it to break any cycle it anchors, and it is
// dropped from the registry so Go's collector reclaims the rest.
// If th's abort probe fires during marking, Collect returns 0 without
// sweeping anything and leaves Stats unchanged.
//
// Collect is idempotent with respect to already-broken cycles:
// calling it again after a cycle has been cleaned finds nothing new
// to sweep for that cycle.
func (p *ManagedObjectPool) Collect(th *Thread, markRoots func(epoch uint8, mark func(Value))) (reclaimed int) {
	epoch := p.nextEpoch()
	reached := roaring64.New()

	stopped := false
	var mark func(Value)
	mark = func(v Value) {
		if v == nil || stopped {
			return
		}
		if aborted(th) {
			stopped = true
			return
		}
		switch x := v.(type) {
		case Pair:
			mark(x.Car)
			mark(x.Cdr)
			return
		case Tagged:
			mark(x.Tag)
			mark(x.Payload)
			return
		case Syntax:
			mark(x.Datum)
			return
		case Values:
			for _, e := range x {
				mark(e)
			}
			return
		}
		m, ok := v.(managed)
		if !ok {
			return
		}
		h := m.handle()
		if h.tag == epoch {
			return
		}
		h.tag = epoch
		reached.Add(h.id)
		markChildren(v, mark)
	}

	markRoots(epoch, mark)
	if stopped {
		return 0
	}

	for id, obj := range p.objects {
		if obj.handle().tag == epoch {
			continue
		}
		cleanupHandle(obj)
		obj.handle().managed = false
		delete(p.objects, id)
		reclaimed++
	}

	p.lastReachable = reached
	p.lastReclaimed = reclaimed
	return reclaimed
}

// PoolStats summarises a pool's state as of its last Collect, backed
// by the Roaring bitmap of reachable ids Collect builds during
// marking.
type PoolStats struct {
	Tracked       int
	LastReachable int
	LastReclaimed int
}

func (p *ManagedObjectPool) Stats() PoolStats {
	reachable := 0
	if p.lastReachable != nil {
		reachable = int(p.lastReachable.GetCardinality())
	}
	return PoolStats{Tracked: len(p.objects), LastReachable: reachable, LastReclaimed: p.lastReclaimed}
}

// markChildren visits every Value directly reachable from v's fields,
// calling visit on each. Handle types with no outgoing references
// (the opaque runtime handles, strings, byte vectors) have nothing to
// do here.
func markChildren(v Value, visit func(Value)) {
	switch x := v.(type) {
	case *MPair:
		visit(x.Car)
		visit(x.Cdr)
	case *Box:
		visit(x.Slot)
	case *Vector:
		for _, e := range x.Elems {
			visit(e)
		}
	case *Array:
		for _, e := range x.Elems {
			visit(e)
		}
	case *Record:
		for _, f := range x.Fields {
			visit(f)
		}
	case *HashTable:
		x.mark(visit)
	case *Promise:
		if x.Forced {
			visit(x.Result)
		}
	case *ErrorObj:
		for _, e := range x.Irritants {
			visit(e)
		}
	}
}

// cleanupHandle breaks v's outgoing references so the cycle v
// participates in can be reclaimed once the pool drops its own
// reference. Idempotent: sweeping an already-cleaned handle again
// (e.g. after a second Collect finds it still unreachable) is a
// no-op.
func cleanupHandle(v managed) {
	switch x := v.(type) {
	case *String:
		x.Data = nil
	case *Bytes:
		x.Data = nil
	case *MPair:
		x.Car, x.Cdr = nil, nil
	case *Box:
		x.Slot = nil
	case *Vector:
		x.Elems = nil
	case *Array:
		x.Elems = nil
	case *Record:
		x.Fields = nil
	case *HashTable:
		x.cleanup()
	case *Promise:
		x.Result = nil
	case *ErrorObj:
		x.Irritants = nil
	// Procedure, Special, Env, Port, Object carry no outgoing
	// references to break.
	default:
	}
}

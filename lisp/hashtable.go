package lisp

// DefaultTableCapacity is the bucket count a table starts with when no
// explicit capacity is requested. The table never resizes
// itself; only Clear(cap) changes the bucket count.
const DefaultTableCapacity = 499

// Equiv selects which equivalence relation a HashTable's get/set/has/
// delete path dispatches through.
type Equiv uint8

const (
	EqEquiv Equiv = iota
	EqvEquiv
	EqualEquiv
	CustomEquiv
)

// CustomProcs holds the seven embedder-supplied procedures a Custom
// table dispatches every mutation and lookup through. The
// core never calls these itself; it only stores, marks, and compares
// their handle identity (for Equal's table-compatibility check).
type CustomProcs struct {
	Eql *Procedure // key equivalence
	Hsh *Procedure // key hash
	Has *Procedure // membership test
	Get *Procedure // lookup
	Set *Procedure // insertion/update
	Upd *Procedure // update-or-insert-with-default
	Del *Procedure // removal
}

// cell is the mutable value slot an entry owns. It exists as its own
// type, rather than a bare Value field on entry, so external code
// (e.g. an upd procedure) can hold a stable reference to a mapping's
// value slot across a rehash-free Set.
type cell struct {
	v Value
}

// entry is one chained-bucket node. Insertion always prepends, which
// gives bucket traversal a newest-first order within each chain
// without needing a separate insertion-order list.
type entry struct {
	key  Value
	cell *cell
	next *entry
}

// HashTable is the table (H) Value variant: a
// chained-bucket hash table with a pluggable equivalence relation.
type HashTable struct {
	ManagedObject
	buckets []*entry
	count   uint32
	mutable bool
	equiv   Equiv
	custom  CustomProcs
}

func (*HashTable) Kind() Kind { return KindTable }

// NewHashTable returns a fresh mutable table with equiv as its
// dispatch relation. capacity <= 0 uses DefaultTableCapacity. custom
// is ignored unless equiv is CustomEquiv.
func NewHashTable(equiv Equiv, capacity int, custom CustomProcs) *HashTable {
	if capacity <= 0 {
		capacity = DefaultTableCapacity
	}
	ht := &HashTable{
		ManagedObject: newManagedObject(),
		buckets:       make([]*entry, capacity),
		mutable:       true,
		equiv:         equiv,
	}
	if equiv == CustomEquiv {
		ht.custom = custom
	}
	return ht
}

// Mutable reports whether the table currently accepts mutation.
func (ht *HashTable) Mutable() bool { return ht.mutable }

// SetMutable toggles the table's mutability; immutability is a
// runtime-togglable flag, not a distinct type.
func (ht *HashTable) SetMutable(m bool) { ht.mutable = m }

// BucketCount returns the current number of buckets.
func (ht *HashTable) BucketCount() int { return len(ht.buckets) }

// Count returns the number of mappings currently stored.
func (ht *HashTable) Count() uint32 { return ht.count }

// EquivKind reports which relation the table dispatches through.
func (ht *HashTable) EquivKind() Equiv { return ht.equiv }

// Custom returns the table's dispatch procedures. Only meaningful when
// EquivKind() is CustomEquiv.
func (ht *HashTable) Custom() CustomProcs { return ht.custom }

func (ht *HashTable) indexFor(h uint32) int {
	return int(h % uint32(len(ht.buckets)))
}

// eqlFor returns the equivalence test the identity get/set/has/delete
// path uses to compare keys. A Custom table has no Go-callable
// equivalence test (Eql is an opaque embedder procedure) — calling
// this on a Custom table is an internal invariant breach, since
// Custom dispatch must go through the raw AddRaw/RemoveRaw hooks
// instead.
func (ht *HashTable) eqlFor() func(a, b Value) bool {
	switch ht.equiv {
	case EqEquiv:
		return Eq
	case EqvEquiv:
		return Eqv
	case EqualEquiv:
		return func(a, b Value) bool {
			eq, _ := Equal(nil, a, b)
			return eq
		}
	default:
		panicInvariant("HashTable.eqlFor", "Custom-equivalence table reached the identity dispatch path")
		return nil
	}
}

func (ht *HashTable) hashFor(v Value) uint32 {
	switch ht.equiv {
	case EqEquiv:
		return HashEq(v)
	case EqvEquiv:
		return HashEqv(v)
	case EqualEquiv:
		return HashEqual(nil, v)
	default:
		panicInvariant("HashTable.hashFor", "Custom-equivalence table reached the identity dispatch path")
		return 0
	}
}

// Get returns the mapped value for key and reports whether it was
// present. Panics with InternalInvariantError if the table is Custom,
// as do Has, Set and Delete; a Custom table's mappings are changed
// only through AddRaw/RemoveRaw.
func (ht *HashTable) Get(key Value) (Value, bool) {
	eql := ht.eqlFor()
	idx := ht.indexFor(ht.hashFor(key))
	for e := ht.buckets[idx]; e != nil; e = e.next {
		if eql(e.key, key) {
			return e.cell.v, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (ht *HashTable) Has(key Value) bool {
	_, ok := ht.Get(key)
	return ok
}

// Set inserts or updates the mapping for key. Returns false without
// mutating if the table is currently immutable.
func (ht *HashTable) Set(key, value Value) bool {
	if !ht.mutable {
		return false
	}
	eql := ht.eqlFor()
	idx := ht.indexFor(ht.hashFor(key))
	for e := ht.buckets[idx]; e != nil; e = e.next {
		if eql(e.key, key) {
			e.cell.v = value
			return true
		}
	}
	ht.buckets[idx] = &entry{key: key, cell: &cell{v: value}, next: ht.buckets[idx]}
	ht.count++
	return true
}

// Delete removes the mapping for key, returning whether anything was
// removed. An attempt on an immutable table always returns false, even
// when key is absent — a delete is a mutation attempt regardless of
// outcome (see DESIGN.md).
func (ht *HashTable) Delete(key Value) bool {
	if !ht.mutable {
		return false
	}
	eql := ht.eqlFor()
	idx := ht.indexFor(ht.hashFor(key))
	var prev *entry
	for e := ht.buckets[idx]; e != nil; e = e.next {
		if eql(e.key, key) {
			if prev == nil {
				ht.buckets[idx] = e.next
			} else {
				prev.next = e.next
			}
			ht.count--
			return true
		}
		prev = e
	}
	return false
}

// Clear empties the table. newCapacity <= 0 preserves the current
// bucket count, since the table otherwise never resizes itself.
func (ht *HashTable) Clear(newCapacity int) {
	if newCapacity <= 0 {
		newCapacity = len(ht.buckets)
	}
	ht.buckets = make([]*entry, newCapacity)
	ht.count = 0
}

// Clone returns a shallow copy: same equivalence relation and
// capacity, independent buckets, keys/values shared by reference.
func (ht *HashTable) Clone() *HashTable {
	clone := &HashTable{
		ManagedObject: newManagedObject(),
		buckets:       make([]*entry, len(ht.buckets)),
		mutable:       ht.mutable,
		equiv:         ht.equiv,
		custom:        ht.custom,
	}
	for i, e := range ht.buckets {
		var head, tail *entry
		for n := e; n != nil; n = n.next {
			ne := &entry{key: n.key, cell: &cell{v: n.cell.v}}
			if head == nil {
				head = ne
			} else {
				tail.next = ne
			}
			tail = ne
		}
		clone.buckets[i] = head
	}
	clone.count = ht.count
	return clone
}

// BucketAt returns the keys and values of bucket i, in the chain's
// newest-first order.
func (ht *HashTable) BucketAt(i int) (keys, values []Value) {
	for e := ht.buckets[i]; e != nil; e = e.next {
		keys = append(keys, e.key)
		values = append(values, e.cell.v)
	}
	return keys, values
}

// tableEntry is a read-only snapshot of one mapping, used by equiv.go
// and hash.go so they need not reach into bucket chain internals
// directly.
type tableEntry struct {
	key  Value
	cell *cell
}

// snapshotEntries returns every mapping in the table, in
// bucket-ascending, chain-newest-first order.
func (ht *HashTable) snapshotEntries() []tableEntry {
	out := make([]tableEntry, 0, ht.count)
	for _, head := range ht.buckets {
		for e := head; e != nil; e = e.next {
			out = append(out, tableEntry{key: e.key, cell: e.cell})
		}
	}
	return out
}

// Keys returns every key, in snapshotEntries order.
func (ht *HashTable) Keys() []Value {
	entries := ht.snapshotEntries()
	out := make([]Value, len(entries))
	for i, e := range entries {
		out[i] = e.key
	}
	return out
}

// Values returns every mapped value, in snapshotEntries order.
func (ht *HashTable) Values() []Value {
	entries := ht.snapshotEntries()
	out := make([]Value, len(entries))
	for i, e := range entries {
		out[i] = e.cell.v
	}
	return out
}

// AddRaw inserts a mapping without consulting eqlFor/hashFor — the
// path a Custom table's embedder-side `set` procedure uses once it
// has already resolved key equivalence itself. h is the caller-
// supplied hash (from the table's Hsh procedure). AddRaw does not
// check for an existing mapping; callers that must update-in-place
// are expected to call RemoveRaw first, matching the semantics of the
// embedder's own set/upd procedures.
func (ht *HashTable) AddRaw(h uint32, key, value Value) bool {
	if !ht.mutable {
		return false
	}
	idx := ht.indexFor(h)
	ht.buckets[idx] = &entry{key: key, cell: &cell{v: value}, next: ht.buckets[idx]}
	ht.count++
	return true
}

// RemoveRaw removes the first mapping in bucket h's chain for which
// match reports true, the raw counterpart to AddRaw for a Custom
// table's `del` procedure.
func (ht *HashTable) RemoveRaw(h uint32, match func(key Value) bool) bool {
	if !ht.mutable {
		return false
	}
	idx := ht.indexFor(h)
	var prev *entry
	for e := ht.buckets[idx]; e != nil; e = e.next {
		if match(e.key) {
			if prev == nil {
				ht.buckets[idx] = e.next
			} else {
				prev.next = e.next
			}
			ht.count--
			return true
		}
		prev = e
	}
	return false
}

// mark visits every Value reachable from the table's mappings,
// including the Custom dispatch procedures, calling fn on each. Used
// by the pool's mark phase.
func (ht *HashTable) mark(fn func(Value)) {
	for _, head := range ht.buckets {
		for e := head; e != nil; e = e.next {
			fn(e.key)
			fn(e.cell.v)
		}
	}
	if ht.equiv == CustomEquiv {
		for _, p := range []*Procedure{ht.custom.Eql, ht.custom.Hsh, ht.custom.Has, ht.custom.Get, ht.custom.Set, ht.custom.Upd, ht.custom.Del} {
			if p != nil {
				fn(p)
			}
		}
	}
}

// cleanup breaks the table's outgoing references, the cycle-breaking
// step the pool's sweep phase performs on an unreachable table so
// everything it pointed to can be reclaimed. A stale weak reference
// may still observe the table briefly after this runs, so its result
// must satisfy every HashTable invariant rather than just drop
// pointers: buckets is replaced with a single empty bucket (buckets
// is never empty), and equiv resets to EqEquiv so a post-cleanup
// Get/Set/Delete behaves like an ordinary empty table instead of
// hitting the Custom-dispatch panic. Idempotent: calling it again
// finds the same empty state and leaves it unchanged.
func (ht *HashTable) cleanup() {
	ht.buckets = make([]*entry, 1)
	ht.count = 0
	ht.equiv = EqEquiv
	ht.custom = CustomProcs{}
}

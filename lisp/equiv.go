package lisp

import (
	"math"
	"unsafe"

	mapset "github.com/deckarep/golang-set/v2"
)

// identity returns the ManagedObject pointer of v's handle, as a
// uintptr, for use as an unordered-pair key in the cycle-terminating
// visited set equal maintains. Non-handle variants
// (pair/tagged/syntax, which recurse structurally and are always
// finite since they can only be built from already-built values) have
// no identity and are never looked up this way.
func identity(v Value) uintptr {
	if m, ok := v.(managed); ok {
		return uintptr(unsafe.Pointer(m.handle()))
	}
	return 0
}

// pairKey is an unordered pair of handle identities. Canonicalising
// the order makes the set's membership test commutative regardless
// of which of x/y a caller passes first.
type pairKey struct{ a, b uintptr }

func mkPairKey(a, b uintptr) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Eq reports whether x and y are eq (identity equivalence). eq never
// recurses into a mutable aggregate's contents, so it needs no cycle
// protection: pairs/tagged/syntax are the only variants it recurses
// into structurally, and those are always finite by construction.
func Eq(x, y Value) bool {
	x, y = Normalized(x), Normalized(y)
	if x.Kind() != y.Kind() {
		return false
	}
	switch a := x.(type) {
	case undefType, voidType, eofType, nullType, trueType, falseType:
		return true // singleton kinds; Kind() match is sufficient
	case Symbol:
		return a == y.(Symbol)
	case Uninit:
		return a.Sym == y.(Uninit).Sym
	case Char:
		return a == y.(Char)
	case Fixnum:
		return a == y.(Fixnum)
	case Bignum:
		return a.V.Cmp(y.(Bignum).V) == 0
	case Rational:
		return a.R.Cmp(y.(Rational).R) == 0
	case Flonum:
		b := y.(Flonum)
		if a != a || b != b { // either is NaN
			return false
		}
		return math.Float64bits(float64(a)) == math.Float64bits(float64(b))
	case Complex:
		b := y.(Complex)
		return bitwiseSignedEqual(a.Re, b.Re) && bitwiseSignedEqual(a.Im, b.Im)
	case Pair:
		b := y.(Pair)
		return Eq(a.Car, b.Car) && Eq(a.Cdr, b.Cdr)
	case Tagged:
		b := y.(Tagged)
		return Eqv(a.Tag, b.Tag) && Eq(a.Payload, b.Payload)
	case Syntax:
		b := y.(Syntax)
		return a.Pos == b.Pos && Eq(a.Datum, b.Datum)
	default:
		// Every remaining variant is an (H) handle: eq iff the same handle.
		return identity(x) == identity(y)
	}
}

func bitwiseSignedEqual(x, y float64) bool {
	if x != x || y != y { // NaN never eq to anything
		return false
	}
	return math.Float64bits(x) == math.Float64bits(y)
}

// Eqv reports whether x and y are eqv. It is identical to eq for
// every variant here: the cross-representation numeric promotion
// some Schemes perform (treating 2 and 2.0 as eqv) is deliberately
// not implemented, since numeric Values are assumed already
// normalized before comparison.
func Eqv(x, y Value) bool { return Eq(x, y) }

// Equal reports whether x and y are equal (structural equivalence).
// Extends Eqv by recursing into mutable/aggregate (H) variants,
// terminating on cyclic/shared structure via an unordered
// handle-pair visited set. Because a handle pair already assumed
// equal short-circuits to equal without recursing again, two cyclic
// structures compare equal whenever they have the same infinite
// unfolding, even if they are realized by a different number of
// distinct handles (a coinductive, not merely finite-shape, notion of
// equality).
func Equal(th *Thread, x, y Value) (bool, error) {
	st := &equalState{visited: mapset.NewThreadUnsafeSet[pairKey](), thread: th}
	return st.equal(x, y)
}

type equalState struct {
	visited mapset.Set[pairKey]
	thread  *Thread
}

func (st *equalState) equal(x, y Value) (bool, error) {
	if aborted(st.thread) {
		return false, ErrAborted
	}
	x, y = Normalized(x), Normalized(y)
	if x.Kind() != y.Kind() {
		return false, nil
	}
	switch a := x.(type) {
	case *String:
		b := y.(*String)
		if len(a.Data) != len(b.Data) {
			return false, nil
		}
		for i := range a.Data {
			if a.Data[i] != b.Data[i] {
				return false, nil
			}
		}
		return true, nil
	case *Bytes:
		b := y.(*Bytes)
		if len(a.Data) != len(b.Data) {
			return false, nil
		}
		for i := range a.Data {
			if a.Data[i] != b.Data[i] {
				return false, nil
			}
		}
		return true, nil
	case *MPair:
		return st.equalAggregate(x, y, func() (bool, error) {
			b := y.(*MPair)
			carEq, err := st.equal(a.Car, b.Car)
			if err != nil || !carEq {
				return false, err
			}
			return st.equal(a.Cdr, b.Cdr)
		})
	case *Box:
		return st.equalAggregate(x, y, func() (bool, error) {
			b := y.(*Box)
			return st.equal(a.Slot, b.Slot)
		})
	case *Vector:
		return st.equalAggregate(x, y, func() (bool, error) {
			b := y.(*Vector)
			if a.Growable != b.Growable || len(a.Elems) != len(b.Elems) {
				return false, nil
			}
			return st.equalSlice(a.Elems, b.Elems)
		})
	case *Array:
		return st.equalAggregate(x, y, func() (bool, error) {
			b := y.(*Array)
			if len(a.Elems) != len(b.Elems) {
				return false, nil
			}
			return st.equalSlice(a.Elems, b.Elems)
		})
	case *Record:
		return st.equalAggregate(x, y, func() (bool, error) {
			b := y.(*Record)
			if a.KindID != b.KindID || len(a.Fields) != len(b.Fields) {
				return false, nil
			}
			return st.equalSlice(a.Fields, b.Fields)
		})
	case *HashTable:
		return st.equalAggregate(x, y, func() (bool, error) {
			b := y.(*HashTable)
			return st.equalTables(a, b)
		})
	default:
		return Eqv(x, y), nil
	}
}

func (st *equalState) equalSlice(a, b []Value) (bool, error) {
	for i := range a {
		eq, err := st.equal(a[i], b[i])
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

// equalAggregate applies the visited-pair-set cycle rule common to
// every mutable/aggregate (H) comparison: a pair of handles already
// assumed equal in this comparison is reported equal without
// recursing again.
func (st *equalState) equalAggregate(x, y Value, recurse func() (bool, error)) (bool, error) {
	key := mkPairKey(identity(x), identity(y))
	if st.visited.Contains(key) {
		return true, nil
	}
	st.visited.Add(key)
	ok, err := recurse()
	if err != nil || !ok {
		st.visited.Remove(key) // not equal after all: drop the tentative assumption
		return false, err
	}
	return true, nil
}

// equalTables implements an O(n*m) mapping match: for every mapping
// of b, scan a's mappings for a structural match, checkpointing and
// restoring the visited set around each candidate so a failed
// candidate's tentative assumptions don't leak into the next one.
func (st *equalState) equalTables(a, b *HashTable) (bool, error) {
	if !compatibleEquiv(a, b) {
		return false, nil
	}
	if a.count != b.count {
		return false, nil
	}
	bEntries := b.snapshotEntries()
	aEntries := a.snapshotEntries()
	matched := make([]bool, len(aEntries))
	for _, be := range bEntries {
		found := false
		checkpoint := st.visited.Clone()
		for i, ae := range aEntries {
			if matched[i] {
				continue
			}
			keq, err := st.equal(ae.key, be.key)
			if err != nil {
				return false, err
			}
			if !keq {
				st.visited = checkpoint.Clone()
				continue
			}
			veq, err := st.equal(ae.cell.v, be.cell.v)
			if err != nil {
				return false, err
			}
			if !veq {
				st.visited = checkpoint.Clone()
				continue
			}
			matched[i] = true
			found = true
			break
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}

func compatibleEquiv(a, b *HashTable) bool {
	if a.equiv == CustomEquiv || b.equiv == CustomEquiv {
		if a.equiv != CustomEquiv || b.equiv != CustomEquiv {
			return false
		}
		return a.custom.Eql == b.custom.Eql && a.custom.Hsh == b.custom.Hsh
	}
	return true
}

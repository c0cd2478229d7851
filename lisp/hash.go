package lisp

import "math"

// fnvMix is one step of FNV-1a, byte-at-a-time mixing.
func fnvMix(h uint32, b byte) uint32 {
	h ^= uint32(b)
	h *= 16777619
	return h
}

func hashBytes(b []byte) uint32 {
	var h uint32 = 2166136261
	for _, c := range b {
		h = fnvMix(h, c)
	}
	return h
}

func combine(h1, h2 uint32) uint32 {
	return (h1 * 1000003) ^ h2
}

// HashEq returns a hash consistent with Eq: equal values
// under Eq always hash identically under HashEq.
func HashEq(v Value) uint32 {
	v = Normalized(v)
	switch x := v.(type) {
	case undefType:
		return 1
	case voidType:
		return 2
	case eofType:
		return 3
	case nullType:
		return 4
	case trueType:
		return 5
	case falseType:
		return 6
	case Symbol:
		return combine(10, uint32(x))
	case Uninit:
		return combine(11, uint32(x.Sym))
	case Char:
		return combine(12, uint32(x))
	case Fixnum:
		return combine(13, uint32(x)^uint32(uint64(x)>>32))
	case Bignum:
		return combine(14, hashBytes(x.V.Bytes())^uint32(x.V.Sign()))
	case Rational:
		return combine(15, hashBytes(x.R.Num().Bytes())^hashBytes(x.R.Denom().Bytes()))
	case Flonum:
		bits := math.Float64bits(float64(x))
		return combine(16, uint32(bits)^uint32(bits>>32))
	case Complex:
		rb := math.Float64bits(x.Re)
		ib := math.Float64bits(x.Im)
		return combine(17, combine(uint32(rb)^uint32(rb>>32), uint32(ib)^uint32(ib>>32)))
	case Pair:
		return combine(18, combine(HashEq(x.Car), HashEq(x.Cdr)))
	case Tagged:
		return combine(19, combine(HashEq(x.Tag), HashEq(x.Payload)))
	case Syntax:
		return combine(20, combine(uint32(x.Pos.Line), uint32(x.Pos.Col))^HashEq(x.Datum))
	default:
		if m, ok := v.(managed); ok {
			id := m.handle().id
			return combine(21, uint32(id)^uint32(id>>32))
		}
		return 0
	}
}

// HashEqv is identical to HashEq: eqv and eq coincide in this core
// (see Eqv), so their consistent hashes coincide too.
func HashEqv(v Value) uint32 { return HashEq(v) }

// HashEqual returns a hash consistent with Equal: equal-structured
// values always hash identically, recursing into mutable/aggregate
// content the way Equal does. Cyclic structure is handled by a
// per-call visited set; a handle revisited mid-hash contributes 0,
// so hashing terminates instead of diverging on a cycle.
func HashEqual(th *Thread, v Value) uint32 {
	st := &hashState{visited: make(map[uintptr]struct{}), thread: th}
	return st.hash(v)
}

type hashState struct {
	visited map[uintptr]struct{}
	thread  *Thread
}

func (st *hashState) hash(v Value) uint32 {
	if aborted(st.thread) {
		return 0
	}
	v = Normalized(v)
	switch x := v.(type) {
	case *String:
		return combine(30, hashBytes(charBytes(x.Data)))
	case *Bytes:
		return combine(31, hashBytes(x.Data))
	case *MPair:
		return st.hashAggregate(x, func() uint32 {
			return combine(32, combine(st.hash(x.Car), st.hash(x.Cdr)))
		})
	case *Box:
		return st.hashAggregate(x, func() uint32 {
			return combine(33, st.hash(x.Slot))
		})
	case *Vector:
		return st.hashAggregate(x, func() uint32 {
			h := uint32(34)
			if x.Growable {
				h = combine(h, 1)
			}
			for _, e := range x.Elems {
				h = combine(h, st.hash(e))
			}
			return h
		})
	case *Array:
		return st.hashAggregate(x, func() uint32 {
			h := uint32(35)
			for _, e := range x.Elems {
				h = combine(h, st.hash(e))
			}
			return h
		})
	case *Record:
		return st.hashAggregate(x, func() uint32 {
			h := combine(36, uint32(x.KindID))
			for _, f := range x.Fields {
				h = combine(h, st.hash(f))
			}
			return h
		})
	case *HashTable:
		return st.hashAggregate(x, func() uint32 {
			// Order-independent: every mapping contributes by XOR so
			// hash_equal agrees across differently-ordered but
			// mapping-equal tables, matching Equal's unordered match.
			h := uint32(37)
			for _, e := range x.snapshotEntries() {
				h ^= combine(st.hash(e.key), st.hash(e.cell.v))
			}
			return h
		})
	default:
		return HashEqv(v)
	}
}

func (st *hashState) hashAggregate(v managed, compute func() uint32) uint32 {
	id := uintptr(v.handle().id)
	if _, ok := st.visited[id]; ok {
		return 0
	}
	st.visited[id] = struct{}{}
	h := compute()
	delete(st.visited, id)
	return h
}

func charBytes(data []Char) []byte {
	b := make([]byte, len(data)*2)
	for i, c := range data {
		b[2*i] = byte(c)
		b[2*i+1] = byte(c >> 8)
	}
	return b
}

package lisp

// List returns a proper list (a Pair chain terminated by Null)
// containing elems in order, so an embedding host can hand the core a
// root value without building Pair chains by hand at every call site.
func List(elems ...Value) Value {
	var tail Value = Null
	for i := len(elems) - 1; i >= 0; i-- {
		tail = Cons(elems[i], tail)
	}
	return tail
}

// ListToSlice walks a proper list back into a slice, reporting false
// if v is not Null-terminated (a dotted pair, or not a list at all).
func ListToSlice(v Value) ([]Value, bool) {
	var out []Value
	for {
		switch x := v.(type) {
		case nullType:
			return out, true
		case Pair:
			out = append(out, x.Car)
			v = x.Cdr
		default:
			return nil, false
		}
	}
}

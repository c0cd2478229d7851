package lisp

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	lsyntax "github.com/adamnemecek/lispkit/lisp/syntax"
)

// Render produces the textual form of v. quoted selects write (true:
// strings/chars are escaped/named-literal) versus display (false: raw
// contents). Shared or cyclic (H) structure is detected in a first
// pass and printed with #N=/#N# datum-label back-references, so a
// cyclic structure renders finitely with the sharing made explicit
// rather than looping forever or silently flattening it away.
func Render(th *Thread, v Value, quoted bool) (string, error) {
	r := &renderer{
		counts: make(map[uint64]int),
		labels: make(map[uint64]int),
		buf:    new(bytes.Buffer),
		quoted: quoted,
		thread: th,
	}
	r.count(v, make(map[uint64]bool))
	if err := r.emit(v); err != nil {
		return "", err
	}
	return r.buf.String(), nil
}

// Write renders v in write form (strings/chars escaped and
// named-literal).
func Write(th *Thread, v Value) (string, error) { return Render(th, v, true) }

// Display renders v in display form (strings/chars printed raw).
func Display(th *Thread, v Value) (string, error) { return Render(th, v, false) }

type renderer struct {
	counts map[uint64]int
	labels map[uint64]int
	buf    *bytes.Buffer
	quoted bool
	thread *Thread
}

// count is the first pass: it walks every reachable handle, counting
// visits so a second visit (whether from DAG-sharing or from a cycle)
// is known before the emit pass begins. stack holds the ids currently
// being walked, so a cycle stops recursion without needing to bound
// depth.
func (r *renderer) count(v Value, stack map[uint64]bool) {
	switch x := v.(type) {
	case Pair:
		r.count(x.Car, stack)
		r.count(x.Cdr, stack)
		return
	case Tagged:
		r.count(x.Tag, stack)
		r.count(x.Payload, stack)
		return
	case Syntax:
		r.count(x.Datum, stack)
		return
	case Values:
		for _, e := range x {
			r.count(e, stack)
		}
		return
	}
	m, ok := v.(managed)
	if !ok {
		return
	}
	id := m.handle().id
	r.counts[id]++
	if stack[id] || r.counts[id] > 1 {
		return
	}
	stack[id] = true
	markChildren(v, func(c Value) { r.count(c, stack) })
	delete(stack, id)
}

func (r *renderer) emit(v Value) error {
	if aborted(r.thread) {
		return ErrAborted
	}
	switch x := v.(type) {
	case Pair:
		return r.emitList(x.Car, x.Cdr)
	case Tagged:
		r.buf.WriteString("#tagged(")
		if err := r.emit(x.Tag); err != nil {
			return err
		}
		r.buf.WriteString(" . ")
		if err := r.emit(x.Payload); err != nil {
			return err
		}
		r.buf.WriteByte(')')
		return nil
	case Syntax:
		return r.emit(x.Datum)
	case Values:
		for i, e := range x {
			if i > 0 {
				r.buf.WriteByte(' ')
			}
			if err := r.emit(e); err != nil {
				return err
			}
		}
		return nil
	}

	m, ok := v.(managed)
	if !ok {
		return r.emitAtom(v)
	}
	id := m.handle().id
	if label, seen := r.labels[id]; seen {
		fmt.Fprintf(r.buf, "#%d#", label)
		return nil
	}
	if r.counts[id] > 1 {
		label := len(r.labels)
		r.labels[id] = label
		fmt.Fprintf(r.buf, "#%d=", label)
	}
	return r.emitHandle(v)
}

// emitList prints a Pair/MPair chain in list notation, switching to
// dotted notation at the first cdr that isn't itself flattenable. A
// plain Pair is always flattened (it has no identity to label). An
// MPair is flattened only if it needs no #N= label of its own — a
// shared or cyclic MPair stops the flattening and is emitted through
// the normal labeled path instead, so its back-reference prints
// correctly.
func (r *renderer) emitList(car, cdr Value) error {
	r.buf.WriteByte('(')
	if err := r.emit(car); err != nil {
		return err
	}
	for {
		if _, isNull := cdr.(nullType); isNull {
			r.buf.WriteByte(')')
			return nil
		}
		if nextCar, nextCdr, ok := r.chainStep(cdr); ok {
			r.buf.WriteByte(' ')
			if err := r.emit(nextCar); err != nil {
				return err
			}
			cdr = nextCdr
			continue
		}
		r.buf.WriteString(" . ")
		if err := r.emit(cdr); err != nil {
			return err
		}
		r.buf.WriteByte(')')
		return nil
	}
}

// chainStep reports whether v can be flattened as the next link of a
// list under construction, returning its car/cdr if so.
func (r *renderer) chainStep(v Value) (car, cdr Value, ok bool) {
	switch x := v.(type) {
	case Pair:
		return x.Car, x.Cdr, true
	case *MPair:
		id := x.handle().id
		if _, labeled := r.labels[id]; labeled {
			return nil, nil, false
		}
		if r.counts[id] > 1 {
			return nil, nil, false
		}
		return x.Car, x.Cdr, true
	default:
		return nil, nil, false
	}
}

func (r *renderer) emitAtom(v Value) error {
	switch x := v.(type) {
	case undefType:
		r.buf.WriteString("#!undef")
	case voidType:
		// nothing: void prints as the empty token, matching a REPL
		// that suppresses output for (void).
	case eofType:
		r.buf.WriteString("#!eof")
	case nullType:
		r.buf.WriteString("()")
	case trueType:
		r.buf.WriteString("#t")
	case falseType:
		r.buf.WriteString("#f")
	case Symbol:
		r.buf.WriteString(x.Name())
	case Uninit:
		fmt.Fprintf(r.buf, "#[unassigned %s]", x.Sym.Name())
	case Char:
		if r.quoted {
			r.buf.WriteString(lsyntax.CharLiteral(rune(x)))
		} else {
			r.buf.WriteRune(rune(x))
		}
	case Fixnum:
		fmt.Fprintf(r.buf, "%d", int64(x))
	case Bignum:
		r.buf.WriteString(x.V.String())
	case Rational:
		r.buf.WriteString(x.R.RatString())
	case Flonum:
		r.buf.WriteString(formatFlonum(float64(x)))
	case Complex:
		r.buf.WriteString(formatFlonum(x.Re))
		if x.Im >= 0 || math.IsNaN(x.Im) {
			r.buf.WriteByte('+')
		}
		r.buf.WriteString(formatFlonum(x.Im))
		r.buf.WriteByte('i')
	default:
		return unrenderableAtom(v)
	}
	return nil
}

func unrenderableAtom(v Value) error {
	return NewContractError("render", fmt.Errorf("unrenderable atom of kind %s", v.Kind()))
}

// formatFlonum renders a flonum the Scheme way: infinities and NaN
// get the named spellings, everything else gets a decimal point so it
// is never misread as an exact integer.
func formatFlonum(f float64) string {
	switch {
	case math.IsNaN(f):
		return "+nan.0"
	case math.IsInf(f, 1):
		return "+inf.0"
	case math.IsInf(f, -1):
		return "-inf.0"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' || s[i] == 'e' || s[i] == 'E' {
			return s
		}
	}
	return s + "."
}

func (r *renderer) emitHandle(v Value) error {
	switch x := v.(type) {
	case *String:
		if r.quoted {
			r.buf.WriteByte('"')
			for _, c := range x.Data {
				r.buf.WriteString(lsyntax.EscapeRune(rune(c)))
			}
			r.buf.WriteByte('"')
		} else {
			for _, c := range x.Data {
				r.buf.WriteRune(rune(c))
			}
		}
		return nil
	case *Bytes:
		r.buf.WriteString("#u8(")
		for i, b := range x.Data {
			if i > 0 {
				r.buf.WriteByte(' ')
			}
			fmt.Fprintf(r.buf, "%d", b)
		}
		r.buf.WriteByte(')')
		return nil
	case *MPair:
		return r.emitList(x.Car, x.Cdr)
	case *Box:
		r.buf.WriteString("#&")
		return r.emit(x.Slot)
	case *Vector:
		r.buf.WriteString("#(")
		for i, e := range x.Elems {
			if i > 0 {
				r.buf.WriteByte(' ')
			}
			if err := r.emit(e); err != nil {
				return err
			}
		}
		r.buf.WriteByte(')')
		return nil
	case *Array:
		r.buf.WriteString("#[")
		for i, e := range x.Elems {
			if i > 0 {
				r.buf.WriteByte(' ')
			}
			if err := r.emit(e); err != nil {
				return err
			}
		}
		r.buf.WriteByte(']')
		return nil
	case *Record:
		fmt.Fprintf(r.buf, "#<%s", x.KindID.Name())
		for _, f := range x.Fields {
			r.buf.WriteByte(' ')
			if err := r.emit(f); err != nil {
				return err
			}
		}
		r.buf.WriteByte('>')
		return nil
	case *HashTable:
		fmt.Fprintf(r.buf, "#<table %d/%d>", x.count, len(x.buckets))
		return nil
	case *Procedure:
		fmt.Fprintf(r.buf, "#<procedure %s>", x.Name)
	case *Special:
		fmt.Fprintf(r.buf, "#<special %s>", x.Name)
	case *Env:
		fmt.Fprintf(r.buf, "#<environment %s>", x.Name)
	case *Port:
		fmt.Fprintf(r.buf, "#<port %s>", x.Name)
	case *Object:
		fmt.Fprintf(r.buf, "#<object %s>", x.Name)
	case *Promise:
		if x.Forced {
			r.buf.WriteString("#<promise forced: ")
			if err := r.emit(x.Result); err != nil {
				return err
			}
			r.buf.WriteByte('>')
		} else {
			fmt.Fprintf(r.buf, "#<promise %s>", x.Name)
		}
	case *ErrorObj:
		fmt.Fprintf(r.buf, "#<error %q>", x.Message)
	default:
		return unrenderableAtom(v)
	}
	return nil
}

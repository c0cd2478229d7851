package lisp_test

import (
	"math/big"
	"testing"

	"github.com/adamnemecek/lispkit/lisp"
)

func TestKindString(t *testing.T) {
	for _, test := range []struct {
		k    lisp.Kind
		want string
	}{
		{lisp.KindFixnum, "fixnum"},
		{lisp.KindTable, "table"},
		{lisp.KindTrue, "boolean"},
		{lisp.Kind(255), "unknown"},
	} {
		if got := test.k.String(); got != test.want {
			t.Errorf("Kind(%d).String() = %q, want %q", test.k, got, test.want)
		}
	}
}

func TestIsTruthy(t *testing.T) {
	for _, test := range []struct {
		v    lisp.Value
		want bool
	}{
		{lisp.False, false},
		{lisp.True, true},
		{lisp.Null, true},
		{lisp.Fixnum(0), true},
	} {
		if got := lisp.IsTruthy(test.v); got != test.want {
			t.Errorf("IsTruthy(%v) = %v, want %v", test.v, got, test.want)
		}
	}
}

func TestInternIsStable(t *testing.T) {
	a := lisp.Intern("foo")
	b := lisp.Intern("foo")
	c := lisp.Intern("bar")
	if a != b {
		t.Errorf("Intern(\"foo\") not stable: %d != %d", a, b)
	}
	if a == c {
		t.Errorf("Intern(\"foo\") == Intern(\"bar\"): %d", a)
	}
	if got := a.Name(); got != "foo" {
		t.Errorf("a.Name() = %q, want %q", got, "foo")
	}
}

func TestNewBignumNormalizesToFixnum(t *testing.T) {
	small := big.NewInt(42)
	got := lisp.NewBignum(small)
	if fx, ok := got.(lisp.Fixnum); !ok || fx != 42 {
		t.Errorf("NewBignum(42) = %#v, want Fixnum(42)", got)
	}

	big64 := new(big.Int).Lsh(big.NewInt(1), 100)
	got = lisp.NewBignum(big64)
	if _, ok := got.(lisp.Bignum); !ok {
		t.Errorf("NewBignum(2^100) = %#v, want Bignum", got)
	}
}

func TestNewRationalNormalizesToInteger(t *testing.T) {
	got := lisp.NewRational(big.NewInt(6), big.NewInt(3))
	if fx, ok := got.(lisp.Fixnum); !ok || fx != 2 {
		t.Errorf("NewRational(6,3) = %#v, want Fixnum(2)", got)
	}

	got = lisp.NewRational(big.NewInt(1), big.NewInt(3))
	if _, ok := got.(lisp.Rational); !ok {
		t.Errorf("NewRational(1,3) = %#v, want Rational", got)
	}
}

func TestNewComplexNormalizesToFlonum(t *testing.T) {
	got := lisp.NewComplex(3, 0)
	if fl, ok := got.(lisp.Flonum); !ok || fl != 3 {
		t.Errorf("NewComplex(3,0) = %#v, want Flonum(3)", got)
	}

	got = lisp.NewComplex(3, 4)
	if _, ok := got.(lisp.Complex); !ok {
		t.Errorf("NewComplex(3,4) = %#v, want Complex", got)
	}
}

func TestListRoundTrip(t *testing.T) {
	elems := []lisp.Value{lisp.Fixnum(1), lisp.Fixnum(2), lisp.Fixnum(3)}
	l := lisp.List(elems...)
	got, ok := lisp.ListToSlice(l)
	if !ok {
		t.Fatalf("ListToSlice(List(...)) reported not a proper list")
	}
	if len(got) != len(elems) {
		t.Fatalf("ListToSlice length = %d, want %d", len(got), len(elems))
	}
	for i := range elems {
		if !lisp.Eq(got[i], elems[i]) {
			t.Errorf("element %d: got %v, want %v", i, got[i], elems[i])
		}
	}
}

func TestListToSliceRejectsDotted(t *testing.T) {
	dotted := lisp.Cons(lisp.Fixnum(1), lisp.Fixnum(2))
	if _, ok := lisp.ListToSlice(dotted); ok {
		t.Errorf("ListToSlice(dotted pair) reported a proper list")
	}
}

func TestRequiresTracking(t *testing.T) {
	if lisp.RequiresTracking(lisp.Fixnum(1)) {
		t.Errorf("RequiresTracking(Fixnum) = true, want false")
	}
	v := lisp.NewVector(nil, true)
	if !lisp.RequiresTracking(v) {
		t.Errorf("RequiresTracking(*Vector) = false, want true")
	}
	if !lisp.RequiresTracking(lisp.Cons(v, lisp.Null)) {
		t.Errorf("RequiresTracking(pair containing vector) = false, want true")
	}
}

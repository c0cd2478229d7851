package lisp_test

import (
	"math/big"
	"testing"

	"github.com/adamnemecek/lispkit/lisp"
)

func TestIsExact(t *testing.T) {
	cases := []struct {
		name string
		v    lisp.Value
		want bool
	}{
		{"fixnum", lisp.Fixnum(3), true},
		{"bignum", lisp.Bignum{V: new(big.Int).Lsh(big.NewInt(1), 100)}, true},
		{"rational", lisp.Rational{R: big.NewRat(1, 3)}, true},
		{"flonum", lisp.Flonum(3.0), false},
		{"complex", lisp.Complex{Re: 1, Im: 2}, false},
		{"string", lisp.NewString("3"), false},
	}
	for _, c := range cases {
		if got := lisp.IsExact(c.v); got != c.want {
			t.Errorf("IsExact(%s) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestSign(t *testing.T) {
	cases := []struct {
		name string
		v    lisp.Value
		want int
	}{
		{"negative fixnum", lisp.Fixnum(-5), -1},
		{"zero fixnum", lisp.Fixnum(0), 0},
		{"positive fixnum", lisp.Fixnum(5), 1},
		{"negative bignum", lisp.Bignum{V: big.NewInt(-1)}, -1},
		{"negative rational", lisp.Rational{R: big.NewRat(-1, 2)}, -1},
		{"negative flonum", lisp.Flonum(-2.5), -1},
		{"positive flonum", lisp.Flonum(2.5), 1},
	}
	for _, c := range cases {
		if got := lisp.Sign(c.v); got != c.want {
			t.Errorf("Sign(%s) = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestSignPanicsOnComplex(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Sign(complex) did not panic")
		}
		if _, ok := r.(*lisp.InternalInvariantError); !ok {
			t.Fatalf("Sign(complex) panicked with %T, want *lisp.InternalInvariantError", r)
		}
	}()
	lisp.Sign(lisp.Complex{Re: 1, Im: 1})
}

func TestNormalizedIsIdempotent(t *testing.T) {
	v := lisp.NewRational(big.NewInt(6), big.NewInt(4))
	once := lisp.Normalized(v)
	twice := lisp.Normalized(once)
	if eq, _ := lisp.Equal(nil, once, twice); !eq {
		t.Fatalf("Normalized is not idempotent: %v != %v", once, twice)
	}
}

package lisp_test

import (
	"testing"

	"github.com/adamnemecek/lispkit/lisp"
	"github.com/google/go-cmp/cmp"
)

func TestHashTableDefaultCapacity(t *testing.T) {
	ht := lisp.NewHashTable(lisp.EqEquiv, 0, lisp.CustomProcs{})
	if got := ht.BucketCount(); got != lisp.DefaultTableCapacity {
		t.Errorf("BucketCount() = %d, want %d", got, lisp.DefaultTableCapacity)
	}
}

func TestHashTableSetGetDelete(t *testing.T) {
	ht := lisp.NewHashTable(lisp.EqvEquiv, 17, lisp.CustomProcs{})
	k := lisp.Fixnum(5)

	if _, ok := ht.Get(k); ok {
		t.Fatalf("Get on empty table reported present")
	}
	if !ht.Set(k, lisp.NewString("five")) {
		t.Fatalf("Set reported failure on a mutable table")
	}
	if got, ok := ht.Get(k); !ok || got.(*lisp.String).Go() != "five" {
		t.Errorf("Get after Set = (%v, %v), want (\"five\", true)", got, ok)
	}
	if got := ht.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
	if !ht.Set(k, lisp.NewString("FIVE")) {
		t.Fatalf("Set (update) reported failure")
	}
	if got := ht.Count(); got != 1 {
		t.Errorf("Count() after update = %d, want 1 (update, not insert)", got)
	}
	if !ht.Delete(k) {
		t.Errorf("Delete(present key) = false, want true")
	}
	if ht.Delete(k) {
		t.Errorf("Delete(absent key) = true, want false")
	}
}

func TestHashTableBucketOrderNewestFirst(t *testing.T) {
	ht := lisp.NewHashTable(lisp.EqEquiv, 1, lisp.CustomProcs{}) // force every key into bucket 0
	ht.Set(lisp.Fixnum(1), lisp.Fixnum(10))
	ht.Set(lisp.Fixnum(2), lisp.Fixnum(20))
	ht.Set(lisp.Fixnum(3), lisp.Fixnum(30))

	keys, _ := ht.BucketAt(0)
	want := []lisp.Value{lisp.Fixnum(3), lisp.Fixnum(2), lisp.Fixnum(1)}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("bucket order mismatch (-want +got):\n%s", diff)
	}
}

func TestHashTableImmutableRejectsMutation(t *testing.T) {
	ht := lisp.NewHashTable(lisp.EqEquiv, 0, lisp.CustomProcs{})
	ht.Set(lisp.Fixnum(1), lisp.Fixnum(1))
	ht.SetMutable(false)

	if ht.Set(lisp.Fixnum(2), lisp.Fixnum(2)) {
		t.Errorf("Set on immutable table reported success")
	}
	if ht.Delete(lisp.Fixnum(1)) {
		t.Errorf("Delete(present key) on immutable table reported success")
	}
	// Deleting an absent key is still a mutation attempt: also false.
	if ht.Delete(lisp.Fixnum(99)) {
		t.Errorf("Delete(absent key) on immutable table reported success")
	}
}

func TestHashTableClearPreservesCapacityByDefault(t *testing.T) {
	ht := lisp.NewHashTable(lisp.EqEquiv, 31, lisp.CustomProcs{})
	ht.Set(lisp.Fixnum(1), lisp.Fixnum(1))
	ht.Clear(0)
	if got := ht.BucketCount(); got != 31 {
		t.Errorf("BucketCount() after Clear(0) = %d, want 31 (preserved)", got)
	}
	if got := ht.Count(); got != 0 {
		t.Errorf("Count() after Clear = %d, want 0", got)
	}
	ht.Clear(64)
	if got := ht.BucketCount(); got != 64 {
		t.Errorf("BucketCount() after Clear(64) = %d, want 64", got)
	}
}

func TestHashTableCustomEquivPanicsOnIdentityPath(t *testing.T) {
	custom := lisp.CustomProcs{
		Eql: lisp.NewProcedure("eql"),
		Hsh: lisp.NewProcedure("hsh"),
	}
	ht := lisp.NewHashTable(lisp.CustomEquiv, 0, custom)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("Get on a Custom-equivalence table did not panic")
		}
		if _, ok := r.(*lisp.InternalInvariantError); !ok {
			t.Fatalf("recovered value is %T, want *lisp.InternalInvariantError", r)
		}
	}()
	ht.Get(lisp.Fixnum(1))
}

func TestHashTableAddRawRemoveRaw(t *testing.T) {
	custom := lisp.CustomProcs{
		Eql: lisp.NewProcedure("eql"),
		Hsh: lisp.NewProcedure("hsh"),
	}
	ht := lisp.NewHashTable(lisp.CustomEquiv, 4, custom)
	h := lisp.HashEq(lisp.Fixnum(7))
	if !ht.AddRaw(h, lisp.Fixnum(7), lisp.NewString("seven")) {
		t.Fatalf("AddRaw reported failure")
	}
	if got := ht.Count(); got != 1 {
		t.Errorf("Count() after AddRaw = %d, want 1", got)
	}
	if !ht.RemoveRaw(h, func(key lisp.Value) bool { return lisp.Eq(key, lisp.Fixnum(7)) }) {
		t.Errorf("RemoveRaw reported failure for a present raw mapping")
	}
	if got := ht.Count(); got != 0 {
		t.Errorf("Count() after RemoveRaw = %d, want 0", got)
	}
}

func TestHashTableCloneIsIndependent(t *testing.T) {
	ht := lisp.NewHashTable(lisp.EqEquiv, 0, lisp.CustomProcs{})
	ht.Set(lisp.Fixnum(1), lisp.Fixnum(100))
	clone := ht.Clone()
	clone.Set(lisp.Fixnum(2), lisp.Fixnum(200))

	if ht.Has(lisp.Fixnum(2)) {
		t.Errorf("mutating the clone mutated the original")
	}
	if !clone.Has(lisp.Fixnum(1)) {
		t.Errorf("clone is missing a mapping present at clone time")
	}
}

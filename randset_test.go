package randset

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func checkBijection[T comparable](t *testing.T, s *Set[T]) {
	t.Helper()
	if len(s.index) != len(s.elems) {
		t.Fatalf("index and elems diverge: %v != %v", len(s.index), len(s.elems))
	}
	for v, i := range s.index {
		if i < 0 || i >= len(s.elems) || s.elems[i] != v {
			t.Fatalf("index entry %v -> %v does not point back to the value", v, i)
		}
	}
	for i, v := range s.elems {
		if got, ok := s.index[v]; !ok || got != i {
			t.Fatalf("element %v at %v is indexed at %v (present = %v)", v, i, got, ok)
		}
	}
}

func TestSetStress(t *testing.T) {
	s := NewWithSource[int64](rand.NewPCG(42, 1))
	rnd := rand.New(rand.NewPCG(7, 7))
	actual := make(map[int64]struct{})
	const iters = 50_000
	const numbers = 20
	for range iters {
		v := rnd.Int64N(numbers)
		switch rnd.IntN(2) {
		case 0:
			_, ok := actual[v]
			actual[v] = struct{}{}
			ok = !ok
			ok2 := s.Add(v)
			if ok != ok2 {
				t.Fatalf("insert %v yields different results: expected = %v, got = %v", v, ok, ok2)
			}
		case 1:
			_, ok := actual[v]
			delete(actual, v)
			ok2 := s.Del(v)
			if ok != ok2 {
				t.Fatalf("delete %v yields different results: expected = %v, got = %v", v, ok, ok2)
			}
		default:
			panic("must not happen")
		}
		if len(actual) != s.Len() {
			t.Fatalf("length differs: expected = %v, got = %v", len(actual), s.Len())
		}
		checkBijection(t, s)
	}

	// Every live element must eventually come out of Rand.
	gather := make(map[int64]struct{}, len(actual))
	for v := range actual {
		gather[v] = struct{}{}
	}
	draws := 0
	for len(gather) != 0 {
		v, ok := s.Rand()
		if !ok {
			t.Fatalf("Rand failed on a non-empty set")
		}
		if _, ok := actual[v]; !ok {
			t.Fatalf("unexpected element from Rand: %v", v)
		}
		delete(gather, v)
		draws++
		if draws > len(actual)*numbers*1_000 {
			t.Fatalf("cannot collect all the numbers for too long")
		}
	}
}

func TestRandUniform(t *testing.T) {
	s := NewWithSource[int](rand.NewPCG(1, 2))
	s.Add(1)
	s.Add(2)

	const n = 10_000
	gots := map[int]int{1: 0, 2: 0}
	for range n {
		v, ok := s.Rand()
		if !ok {
			t.Fatalf("Rand failed on a non-empty set")
		}
		gots[v]++
	}
	if gots[1]+gots[2] != n {
		t.Fatalf("Rand returned a value outside the set: %v", gots)
	}
	d := gots[1] - gots[2]
	if d < 0 {
		d = -d
	}
	if d > n/10 {
		t.Fatalf("draws vary by more than 10%% of %v: %v", n, gots)
	}
}

func TestAddDel(t *testing.T) {
	s := New[int]()
	s.Add(23)
	s.Add(40)
	s.Add(15)
	s.Add(17)
	if !s.Has(23) {
		t.Fatalf("expected 23 in the set")
	}
	if s.Len() != 4 {
		t.Fatalf("length: expected = 4, got = %v", s.Len())
	}
	if s.Add(23) {
		t.Fatalf("inserting 23 twice must be a no-op")
	}
	if s.Len() != 4 {
		t.Fatalf("length after duplicate insert: expected = 4, got = %v", s.Len())
	}

	if !s.Del(23) {
		t.Fatalf("deleting present 23 must succeed")
	}
	if s.Has(23) || s.Len() != 3 {
		t.Fatalf("23 must be gone, length 3, got Has = %v, Len = %v", s.Has(23), s.Len())
	}
	if s.Del(23) {
		t.Fatalf("deleting absent 23 must fail")
	}
	if !s.Add(23) || s.Len() != 4 {
		t.Fatalf("reinserting 23 must succeed and restore length 4")
	}
	checkBijection(t, s)
}

func TestDelSwapsWithLast(t *testing.T) {
	s := Of(1, 2, 3)
	if !s.Del(1) {
		t.Fatalf("deleting 1 must succeed")
	}
	want := []int{3, 2}
	if got := s.Elems(); !slices.Equal(got, want) {
		t.Fatalf("positional order after swap: expected = %v, got = %v", want, got)
	}
	checkBijection(t, s)

	// Deleting the single remaining element skips the swap.
	s = Of(5)
	if !s.Del(5) || !s.Empty() {
		t.Fatalf("deleting the last element must leave the set empty")
	}
	checkBijection(t, s)
}

func TestRand(t *testing.T) {
	s := New[int]()
	if _, ok := s.Rand(); ok {
		t.Fatalf("Rand on an empty set must fail")
	}

	s.Add(23)
	s.Add(40)
	for range 50 {
		v, ok := s.Rand()
		if !ok || !s.Has(v) {
			t.Fatalf("Rand must return a contained element, got %v (ok = %v)", v, ok)
		}
	}

	s.Del(23)
	for range 50 {
		if v, ok := s.Rand(); !ok || v != 40 {
			t.Fatalf("Rand on {40}: expected = 40, got = %v (ok = %v)", v, ok)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	s := New[int]()
	for i := range 10 {
		s.Add(i)
	}
	before := s.Elems()
	slices.Sort(before)

	if !s.Add(100) || !s.Del(100) {
		t.Fatalf("insert + delete of a fresh value must both succeed")
	}
	after := s.Elems()
	slices.Sort(after)
	if !slices.Equal(before, after) {
		t.Fatalf("membership changed: expected = %v, got = %v", before, after)
	}
	checkBijection(t, s)
}

func TestEqual(t *testing.T) {
	s := New[int]()
	s.Add(23)
	s.Add(40)
	s.Add(80)
	s.Del(80)
	s.Del(23)

	other := NewWithSource[int](rand.NewPCG(9, 9))
	other.Add(40)
	if !s.Equal(other) || !other.Equal(s) {
		t.Fatalf("sets with the same members must be equal")
	}

	other.Add(23)
	if s.Equal(other) || other.Equal(s) {
		t.Fatalf("sets with different members must not be equal")
	}

	// Same surviving members through different insertion and removal orders.
	a := Of(1, 2, 3, 4)
	a.Del(2)
	b := Of(4, 3, 1, 2, 1)
	b.Del(2)
	if !a.Equal(b) {
		t.Fatalf("equality must not depend on positions: %v vs %v", a, b)
	}
}

func TestIsEmpty(t *testing.T) {
	s := New[int]()
	if !s.Empty() {
		t.Fatalf("new set must be empty")
	}
	s.Add(23)
	s.Add(40)
	if s.Empty() {
		t.Fatalf("set with elements must not be empty")
	}
	s.Del(23)
	s.Del(40)
	if !s.Empty() || s.Len() != 0 {
		t.Fatalf("set must be empty again, got Len = %v", s.Len())
	}
}

func TestClear(t *testing.T) {
	s := Of(1, 2, 3)
	s.Clear()
	if !s.Empty() {
		t.Fatalf("set must be empty after Clear")
	}
	if _, ok := s.Rand(); ok {
		t.Fatalf("Rand must fail after Clear")
	}
	if !s.Add(7) || !s.Has(7) || s.Len() != 1 {
		t.Fatalf("set must be usable after Clear")
	}
	checkBijection(t, s)
}

func TestOfAndCollect(t *testing.T) {
	s := Of(1, 2, 2, 3)
	if s.Len() != 3 {
		t.Fatalf("Of must dedup: expected length 3, got %v", s.Len())
	}

	c := Collect(slices.Values([]string{"a", "b", "a"}))
	if c.Len() != 2 || !c.Has("a") || !c.Has("b") {
		t.Fatalf("Collect must dedup, got %v", c)
	}
}

func TestGet(t *testing.T) {
	s := Of(23, 40)
	if v, ok := s.Get(23); !ok || v != 23 {
		t.Fatalf("Get(23): expected = 23, got = %v (ok = %v)", v, ok)
	}
	if _, ok := s.Get(99); ok {
		t.Fatalf("Get of an absent value must fail")
	}
}

func TestZeroValue(t *testing.T) {
	var s Set[string]
	if s.Has("x") || s.Del("x") || s.Len() != 0 {
		t.Fatalf("zero value must behave as an empty set")
	}
	if _, ok := s.Rand(); ok {
		t.Fatalf("Rand on the zero value must fail")
	}
	if !s.Add("x") || !s.Has("x") {
		t.Fatalf("zero value must accept inserts")
	}
}

func TestClone(t *testing.T) {
	s := Of(1, 2, 3)
	c := s.Clone()
	if !s.Equal(c) {
		t.Fatalf("clone must equal the original")
	}
	c.Del(1)
	c.Add(9)
	if !s.Has(1) || s.Has(9) {
		t.Fatalf("mutating the clone must not affect the original")
	}
	checkBijection(t, c)
}

func TestIteration(t *testing.T) {
	s := Of(1, 2, 3)
	var got []int
	for v := range s.All() {
		got = append(got, v)
	}
	if !slices.Equal(got, s.Elems()) {
		t.Fatalf("All and Elems disagree: %v vs %v", got, s.Elems())
	}

	// Restartable.
	var again []int
	for v := range s.All() {
		again = append(again, v)
	}
	if !slices.Equal(got, again) {
		t.Fatalf("second iteration differs: %v vs %v", got, again)
	}

	// Early break.
	count := 0
	for range s.All() {
		count++
		break
	}
	if count != 1 {
		t.Fatalf("break must stop the iteration, yielded %v", count)
	}
}

func TestString(t *testing.T) {
	if got := New[int]().String(); got != "{}" {
		t.Fatalf("empty set: expected = {}, got = %v", got)
	}
	if got := Of(1, 2, 3).String(); got != "{1, 2, 3}" {
		t.Fatalf("expected = {1, 2, 3}, got = %v", got)
	}
}

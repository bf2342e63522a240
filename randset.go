// Package randset provides a hash set with O(1) uniform random sampling.
//
// A plain map cannot return a uniformly random element in constant time,
// because its buckets are neither contiguous nor index-addressable. Set
// keeps a dense slice of the elements alongside the map and stores each
// element's slice position as the map value, so membership tests,
// insertion, removal and random sampling are all O(1). The price is that
// the relative order of elements is not preserved once removals happen.
//
// Set is not safe for concurrent use. Callers that need concurrency must
// guard the whole set with their own lock.
package randset

import (
	"fmt"
	"iter"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"
)

// Set is a hash set over T supporting uniform random sampling via Rand.
//
// The zero value is an empty set drawing from the process-global random
// source.
type Set[T comparable] struct {
	index map[T]int
	elems []T
	rnd   *rand.Rand
}

// New returns an empty set.
func New[T comparable]() *Set[T] {
	return &Set[T]{}
}

// NewWithCapacity returns an empty set pre-sized for n elements. The
// capacity is a hint, not a limit.
func NewWithCapacity[T comparable](n int) *Set[T] {
	return &Set[T]{
		index: make(map[T]int, n),
		elems: make([]T, 0, n),
	}
}

// NewWithSource returns an empty set whose Rand draws from src instead of
// the process-global source. Use it to make sampling reproducible.
func NewWithSource[T comparable](src rand.Source) *Set[T] {
	return &Set[T]{rnd: rand.New(src)}
}

// Of returns a set of the given values. Duplicates are silently dropped.
func Of[T comparable](vals ...T) *Set[T] {
	s := NewWithCapacity[T](len(vals))
	for _, v := range vals {
		s.Add(v)
	}
	return s
}

// Collect returns a set of the values from seq. Duplicates are silently
// dropped.
func Collect[T comparable](seq iter.Seq[T]) *Set[T] {
	s := New[T]()
	for v := range seq {
		s.Add(v)
	}
	return s
}

func (s *Set[T]) makeIndex() {
	if s.index == nil {
		s.index = make(map[T]int)
	}
}

// Add inserts val and reports whether it was not already present.
func (s *Set[T]) Add(val T) bool {
	s.makeIndex()
	if _, ok := s.index[val]; ok {
		return false
	}
	s.index[val] = len(s.elems)
	s.elems = append(s.elems, val)
	return true
}

// Del removes val and reports whether it was present. Removal swaps val
// with the last element and shrinks the slice, so it runs in O(1) but does
// not keep the relative order of the remaining elements.
func (s *Set[T]) Del(val T) bool {
	idx, ok := s.index[val]
	if !ok {
		return false
	}
	last := len(s.elems) - 1
	if idx != last {
		s.elems[idx], s.elems[last] = s.elems[last], s.elems[idx]
		s.index[s.elems[idx]] = idx
	}
	s.elems = s.elems[:last]
	delete(s.index, val)
	return true
}

// Has reports whether val is in the set.
func (s *Set[T]) Has(val T) bool {
	_, ok := s.index[val]
	return ok
}

// Get returns the stored copy equal to val, if any.
func (s *Set[T]) Get(val T) (T, bool) {
	if idx, ok := s.index[val]; ok {
		return s.elems[idx], true
	}
	return *new(T), false
}

// Rand returns a uniformly random element of the set, or false if the set
// is empty. Each element is returned with probability 1/Len(), and calls
// are independent.
func (s *Set[T]) Rand() (T, bool) {
	if len(s.elems) == 0 {
		return *new(T), false
	}
	var idx int
	if s.rnd != nil {
		idx = s.rnd.IntN(len(s.elems))
	} else {
		idx = rand.IntN(len(s.elems))
	}
	return s.elems[idx], true
}

// Len returns the number of elements in the set.
func (s *Set[T]) Len() int {
	return len(s.elems)
}

// Empty reports whether the set has no elements.
func (s *Set[T]) Empty() bool {
	return len(s.elems) == 0
}

// Clear removes all elements, keeping the allocated storage.
func (s *Set[T]) Clear() {
	clear(s.index)
	clear(s.elems)
	s.elems = s.elems[:0]
}

// All returns an iterator over the elements in their current positional
// order, which is not the insertion order once removals have happened. The
// sequence is restartable. The set must not be mutated during iteration.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s.elems {
			if !yield(v) {
				return
			}
		}
	}
}

// Elems returns a copy of the elements in their current positional order.
func (s *Set[T]) Elems() []T {
	return slices.Clone(s.elems)
}

// Clone returns a deep copy of the set. The copy draws from the
// process-global random source regardless of how s was created.
func (s *Set[T]) Clone() *Set[T] {
	return &Set[T]{
		index: maps.Clone(s.index),
		elems: slices.Clone(s.elems),
	}
}

// Equal reports whether the two sets contain the same elements. Element
// positions and random sources do not participate in the comparison.
func (s *Set[T]) Equal(other *Set[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, v := range s.elems {
		if !other.Has(v) {
			return false
		}
	}
	return true
}

// String renders the elements in positional order. It is meant for
// diagnostics, not as a stable format.
func (s *Set[T]) String() string {
	var b strings.Builder
	_ = b.WriteByte('{')
	for i, v := range s.elems {
		if i != 0 {
			_, _ = b.WriteString(", ")
		}
		_, _ = fmt.Fprintf(&b, "%v", v)
	}
	_ = b.WriteByte('}')
	return b.String()
}

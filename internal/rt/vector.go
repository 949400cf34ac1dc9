package rt

import "iter"

// Vector is a growable ordered sequence. Elements that hold references
// (handles and Values) are owned by the vector: retained when stored and
// released when overwritten, popped or torn down.
type Vector[T any] struct {
	Base
	elems []T
}

// NewVector allocates a Vector holding copies of elems. The caller keeps its
// own references.
func NewVector[T any](elems ...T) *Vector[T] {
	v := &Vector[T]{elems: make([]T, 0, max(len(elems), 4))}
	for _, e := range elems {
		v.elems = append(v.elems, retainElem(e))
	}
	return v
}

// VectorOf returns a handle to a new Vector holding elems.
func VectorOf[T any](elems ...T) Ptr[*Vector[T]] {
	return New(NewVector(elems...))
}

// TypeName implements Named.
func (*Vector[T]) TypeName() string { return "Vector" }

// Size returns the element count.
func (v *Vector[T]) Size() Int { return Int(len(v.elems)) }

// At returns the element at i as a borrow. i outside [0, Size) is a fatal
// IndexError.
func (v *Vector[T]) At(i Int) T {
	return v.elems[checkIndex(i, len(v.elems))]
}

// Set replaces the element at i. The new element is retained before the old
// one is released.
func (v *Vector[T]) Set(i Int, x T) {
	idx := checkIndex(i, len(v.elems))
	next := retainElem(x)
	old := v.elems[idx]
	v.elems[idx] = next
	releaseElem(old)
}

// Push appends x.
func (v *Vector[T]) Push(x T) {
	v.elems = append(v.elems, retainElem(x))
}

// Pop removes the last element and hands its reference to the caller. Popping
// an empty vector is a fatal IndexError.
func (v *Vector[T]) Pop() T {
	n := len(v.elems)
	if n == 0 {
		outOfBounds(-1, 0)
	}
	x := v.elems[n-1]
	var zero T
	v.elems[n-1] = zero
	v.elems = v.elems[:n-1]
	return x
}

// Iter ranges over the elements as borrows.
func (v *Vector[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range v.elems {
			if !yield(e) {
				return
			}
		}
	}
}

// Equal implements Equatable: same length and elementwise equal.
func (v *Vector[T]) Equal(other *Vector[T]) bool {
	if len(v.elems) != len(other.elems) {
		return false
	}
	for i := range v.elems {
		if !equalElems(v.elems[i], other.elems[i]) {
			return false
		}
	}
	return true
}

// Compare implements Orderable with lexicographic ordering; a proper prefix
// sorts first.
func (v *Vector[T]) Compare(other *Vector[T]) int {
	n := min(len(v.elems), len(other.elems))
	for i := 0; i < n; i++ {
		if c := compareElems(v.elems[i], other.elems[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(v.elems) < len(other.elems):
		return -1
	case len(v.elems) > len(other.elems):
		return 1
	default:
		return 0
	}
}

// Str implements Stringifier: [e1, e2, ...] with element reprs.
func (v *Vector[T]) Str() string {
	return joinRepr("[", v.elems, "]")
}

// Teardown releases every element.
func (v *Vector[T]) Teardown() {
	elems := v.elems
	v.elems = nil
	for _, e := range elems {
		releaseElem(e)
	}
}

// EqualObject implements DynEquatable.
func (v *Vector[T]) EqualObject(other Object) bool {
	o, ok := other.(*Vector[T])
	return ok && v.Equal(o)
}

// CompareObject implements DynOrderable.
func (v *Vector[T]) CompareObject(other Object) int {
	o, ok := other.(*Vector[T])
	if !ok {
		typeMismatch(typeName(v), typeName(other))
	}
	return v.Compare(o)
}

// retainElem returns x with its own reference when x holds one.
func retainElem[T any](x T) T {
	if c, ok := any(x).(interface{ Clone() T }); ok {
		return c.Clone()
	}
	return x
}

func releaseElem[T any](x T) {
	if r, ok := any(x).(interface{ releaseRef() }); ok {
		r.releaseRef()
	}
}

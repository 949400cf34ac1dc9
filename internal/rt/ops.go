package rt

import "iter"

// Handle operators. Each forwards to the capability method on the pointee:
// a OP b becomes a.Get().Method(b.Get()). Results of arithmetic are wrapped
// in a fresh handle.

// Eq reports a == b.
func Eq[T interface {
	Object
	Equatable[T]
}](a, b Ptr[T]) bool {
	return a.Get().Equal(b.Get())
}

// Ne reports a != b.
func Ne[T interface {
	Object
	Equatable[T]
}](a, b Ptr[T]) bool {
	return !a.Get().Equal(b.Get())
}

// Lt reports a < b.
func Lt[T interface {
	Object
	Orderable[T]
}](a, b Ptr[T]) bool {
	return a.Get().Compare(b.Get()) < 0
}

// Le reports a <= b.
func Le[T interface {
	Object
	Orderable[T]
}](a, b Ptr[T]) bool {
	return a.Get().Compare(b.Get()) <= 0
}

// Gt reports a > b.
func Gt[T interface {
	Object
	Orderable[T]
}](a, b Ptr[T]) bool {
	return a.Get().Compare(b.Get()) > 0
}

// Ge reports a >= b.
func Ge[T interface {
	Object
	Orderable[T]
}](a, b Ptr[T]) bool {
	return a.Get().Compare(b.Get()) >= 0
}

// Add returns a + b.
func Add[T interface {
	Object
	Adder[T]
}](a, b Ptr[T]) Ptr[T] {
	return New(a.Get().Add(b.Get()))
}

// Sub returns a - b.
func Sub[T interface {
	Object
	Subtracter[T]
}](a, b Ptr[T]) Ptr[T] {
	return New(a.Get().Sub(b.Get()))
}

// Mul returns a * b.
func Mul[T interface {
	Object
	Multiplier[T]
}](a, b Ptr[T]) Ptr[T] {
	return New(a.Get().Mul(b.Get()))
}

// Div returns a / b.
func Div[T interface {
	Object
	Divider[T]
}](a, b Ptr[T]) Ptr[T] {
	return New(a.Get().Div(b.Get()))
}

// Mod returns a % b.
func Mod[T interface {
	Object
	Modder[T]
}](a, b Ptr[T]) Ptr[T] {
	return New(a.Get().Mod(b.Get()))
}

// Incr applies prefix ++ and returns a handle to the result.
func Incr[T interface {
	Object
	Incrementer[T]
}](a Ptr[T]) Ptr[T] {
	return New(a.Get().Incr())
}

// Deref applies unary *. E must be given explicitly: Deref[rt.Value](p).
func Deref[E any, T interface {
	Object
	Dereferencer[E]
}](a Ptr[T]) E {
	return a.Get().Deref()
}

// Each ranges over the pointee. The handle is held for the whole loop.
func Each[E any, T interface {
	Object
	Iterable[E]
}](a Ptr[T]) iter.Seq[E] {
	seq := a.Get().Iter()
	return func(yield func(E) bool) {
		hold := a.Clone()
		defer hold.Clear()
		seq(yield)
	}
}

// Size returns the pointee's element count.
func Size[T interface {
	Object
	Sizer
}](a Ptr[T]) Int {
	return a.Get().Size()
}

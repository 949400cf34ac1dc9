package rt

import "iter"

// Capability interfaces. A heap type opts into an operator by implementing the
// matching method; the handle forwards in ops.go resolve at compile time, so
// applying an operator the pointee lacks is a build error. T is normally the
// implementing pointer type itself, e.g. *String implements Adder[*String].

// Equatable objects support == and !=.
type Equatable[T any] interface {
	Equal(other T) bool
}

// Orderable objects support <, <=, > and >=. Compare must be a total order
// consistent with Equal: negative, zero or positive.
type Orderable[T any] interface {
	Equatable[T]
	Compare(other T) int
}

// Adder objects support +.
type Adder[T any] interface {
	Add(other T) T
}

// Subtracter objects support -.
type Subtracter[T any] interface {
	Sub(other T) T
}

// Multiplier objects support *.
type Multiplier[T any] interface {
	Mul(other T) T
}

// Divider objects support /.
type Divider[T any] interface {
	Div(other T) T
}

// Modder objects support %.
type Modder[T any] interface {
	Mod(other T) T
}

// Incrementer objects support prefix ++.
type Incrementer[T any] interface {
	Incr() T
}

// Dereferencer objects support unary *.
type Dereferencer[E any] interface {
	Deref() E
}

// Iterable objects can be ranged over; Iter replaces a begin/end pair.
type Iterable[E any] interface {
	Iter() iter.Seq[E]
}

// Sizer objects report their element count.
type Sizer interface {
	Size() Int
}

// Stringifier objects have a printable form, used by print and str().
type Stringifier interface {
	Str() string
}

// Representer objects have a source-like form, used by repr() and inside
// container renderings. Without it Str is used.
type Representer interface {
	Repr() string
}

// Dynamic capabilities. When operands are only known as Values the runtime
// looks these up on the pointee; a missing one is a fatal
// UnsupportedOperationError.

// DynEquatable is the dynamic form of Equatable.
type DynEquatable interface {
	EqualObject(other Object) bool
}

// DynOrderable is the dynamic form of Orderable.
type DynOrderable interface {
	DynEquatable
	CompareObject(other Object) int
}

// DynArith is the dynamic form of the arithmetic capabilities. ok is false
// when the object does not provide op for that operand.
type DynArith interface {
	ArithObject(op Op, other Object) (result Object, ok bool)
}

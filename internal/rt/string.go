package rt

import (
	"iter"
	"strings"

	"fortio.org/safecast"
)

// String is the immutable byte string object.
type String struct {
	Base
	s string
}

// NewString allocates a String holding s.
func NewString(s string) *String {
	return &String{s: s}
}

// StringOf returns a handle to a new String holding s.
func StringOf(s string) Ptr[*String] {
	return New(NewString(s))
}

// TypeName implements Named.
func (*String) TypeName() string { return "String" }

// Value returns the Go string.
func (s *String) Value() string { return s.s }

// Size returns the length in bytes.
func (s *String) Size() Int { return Int(len(s.s)) }

// At returns the byte at i. i outside [0, Size) is a fatal IndexError.
func (s *String) At(i Int) Char {
	return s.s[checkIndex(i, len(s.s))]
}

// Iter ranges over the bytes.
func (s *String) Iter() iter.Seq[Char] {
	return func(yield func(Char) bool) {
		for i := 0; i < len(s.s); i++ {
			if !yield(s.s[i]) {
				return
			}
		}
	}
}

// Equal implements Equatable.
func (s *String) Equal(other *String) bool { return s.s == other.s }

// Compare implements Orderable with bytewise ordering.
func (s *String) Compare(other *String) int { return strings.Compare(s.s, other.s) }

// Add implements Adder: concatenation into a new String.
func (s *String) Add(other *String) *String { return NewString(s.s + other.s) }

// Str implements Stringifier.
func (s *String) Str() string { return s.s }

// Repr implements Representer.
func (s *String) Repr() string { return quote(s.s) }

// EqualObject implements DynEquatable.
func (s *String) EqualObject(other Object) bool {
	o, ok := other.(*String)
	return ok && s.s == o.s
}

// CompareObject implements DynOrderable.
func (s *String) CompareObject(other Object) int {
	o, ok := other.(*String)
	if !ok {
		typeMismatch("String", typeName(other))
	}
	return strings.Compare(s.s, o.s)
}

// ArithObject implements DynArith for +.
func (s *String) ArithObject(op Op, other Object) (Object, bool) {
	o, ok := other.(*String)
	if !ok || op != OpAdd {
		return nil, false
	}
	return s.Add(o), true
}

// checkIndex validates i against length and returns it as an int.
func checkIndex(i Int, length int) int {
	idx, err := safecast.Conv[int](i)
	if err != nil || idx < 0 || idx >= length {
		outOfBounds(i, length)
	}
	return idx
}

package rt

import (
	"fmt"

	"fortio.org/safecast"
)

// Primitive kinds as generated code spells them.
type (
	Bool  = bool
	Char  = byte
	Int   = int64
	Float = float64
)

// Kind identifies the active alternative of a Value.
type Kind uint8

const (
	// KindPointer holds a (possibly null) object handle. It is the zero kind.
	KindPointer Kind = iota
	// KindBool holds a boolean.
	KindBool
	// KindChar holds a single byte character.
	KindChar
	// KindInt holds a 64-bit signed integer.
	KindInt
	// KindFloat holds a 64-bit float.
	KindFloat
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPointer:
		return "pointer"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Value is a tagged variant holding exactly one of an object handle or an
// inline primitive. The zero Value is a null pointer. A Value holding a
// handle owns one reference to it; release it with Clear.
type Value struct {
	kind Kind
	ptr  Ptr[Object]
	b    Bool
	c    Char
	i    Int
	f    Float
}

// MakeBool creates a boolean value.
func MakeBool(b Bool) Value {
	return Value{kind: KindBool, b: b}
}

// MakeChar creates a char value.
func MakeChar(c Char) Value {
	return Value{kind: KindChar, c: c}
}

// MakeInt creates an integer value.
func MakeInt(i Int) Value {
	return Value{kind: KindInt, i: i}
}

// MakeFloat creates a float value.
func MakeFloat(f Float) Value {
	return Value{kind: KindFloat, f: f}
}

// MakePtr creates a pointer value, retaining p's referent.
func MakePtr[T Object](p Ptr[T]) Value {
	return Value{kind: KindPointer, ptr: Upcast(p)}
}

// Kind returns the active alternative.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNil reports whether v is a null pointer.
func (v Value) IsNil() bool {
	return v.kind == KindPointer && v.ptr.IsNil()
}

func (v Value) expect(k Kind) {
	if v.kind != k {
		typeMismatch(k.String(), v.kind.String())
	}
}

// AsBool returns the boolean payload; any other kind is a fatal TypeError.
func (v Value) AsBool() Bool {
	v.expect(KindBool)
	return v.b
}

// AsChar returns the char payload; any other kind is a fatal TypeError.
func (v Value) AsChar() Char {
	v.expect(KindChar)
	return v.c
}

// AsInt returns the integer payload; any other kind is a fatal TypeError.
func (v Value) AsInt() Int {
	v.expect(KindInt)
	return v.i
}

// AsFloat returns the float payload; any other kind is a fatal TypeError.
func (v Value) AsFloat() Float {
	v.expect(KindFloat)
	return v.f
}

// AsPtr returns the held handle as a borrow; Clone it to keep it beyond v.
func (v Value) AsPtr() Ptr[Object] {
	v.expect(KindPointer)
	return v.ptr
}

// AsObject returns the pointee, failing on null like Ptr.Get.
func (v Value) AsObject() Object {
	v.expect(KindPointer)
	return v.ptr.Get()
}

// PtrOf returns a retained typed handle to v's referent. Non-pointer kinds and
// referents of another type are fatal TypeErrors; null stays null.
func PtrOf[T Object](v Value) Ptr[T] {
	if v.kind != KindPointer {
		typeMismatch(staticTypeName[T](), v.kind.String())
	}
	return Cast[T](v.ptr)
}

// Clone returns a copy of v holding its own reference.
func (v Value) Clone() Value {
	if v.kind == KindPointer {
		v.ptr = v.ptr.Clone()
	}
	return v
}

// Set replaces v's kind and payload with w's in one step. w stays owned by
// the caller; a referent in w is retained before v's old referent is released.
func (v *Value) Set(w Value) {
	next := w.Clone()
	old := *v
	*v = next
	old.releaseRef()
}

// Clear releases a held referent and resets v to the null pointer.
func (v *Value) Clear() {
	old := *v
	*v = Value{}
	old.releaseRef()
}

func (v Value) releaseRef() {
	if v.kind == KindPointer {
		v.ptr.releaseRef()
	}
}

// String renders v through Repr.
func (v Value) String() string {
	return Repr(v)
}

// ValueOf converts a raw Go primitive or an existing handle into a Value.
// Handles and Values pass through (retained); bool, byte, integers and floats
// become inline primitives; a Go string is boxed into a String object. Any
// other type is a fatal TypeError.
func ValueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return Value{}
	case Value:
		return v.Clone()
	case handle:
		return valueOfObject(v.ref())
	case bool:
		return MakeBool(v)
	case byte:
		return MakeChar(v)
	case int:
		return MakeInt(Int(v))
	case int8:
		return MakeInt(Int(v))
	case int16:
		return MakeInt(Int(v))
	case int32:
		return MakeInt(Int(v))
	case int64:
		return MakeInt(v)
	case uint:
		return MakeInt(convInt(v))
	case uint16:
		return MakeInt(Int(v))
	case uint32:
		return MakeInt(Int(v))
	case uint64:
		return MakeInt(convInt(v))
	case float32:
		return MakeFloat(Float(v))
	case float64:
		return MakeFloat(v)
	case string:
		return valueOfObject(NewString(v))
	case Object:
		return valueOfObject(v)
	default:
		typeMismatch("bool, char, int, float or object", fmt.Sprintf("%T", x))
		return Value{}
	}
}

func convInt[N uint | uint64](n N) Int {
	i, err := safecast.Conv[Int](n)
	if err != nil {
		fatalf(CodeTypeMismatch, "integer %d does not fit in int: %v", n, err)
	}
	return i
}

// valueOfObject wraps o (which may be nil) in a pointer Value holding one
// reference.
func valueOfObject(o Object) Value {
	if o == nil {
		return Value{}
	}
	retain(o)
	return Value{kind: KindPointer, ptr: Ptr[Object]{obj: o, base: o.objectBase()}}
}

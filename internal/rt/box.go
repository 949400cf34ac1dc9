package rt

// Box is a heap cell holding a single Value. It lets a primitive travel where
// an object handle is expected, e.g. in a Vector[Ptr[Object]].
type Box struct {
	Base
	v Value
}

// NewBox allocates a Box holding a copy of v.
func NewBox(v Value) *Box {
	return &Box{v: v.Clone()}
}

// Objectify boxes x (converted with ValueOf) and returns a handle to the box.
// A value that already references an object is returned as that object's
// handle instead of being boxed again.
func Objectify(x any) Ptr[Object] {
	v := ValueOf(x)
	if v.kind == KindPointer {
		return v.ptr
	}
	b := New(NewBox(v))
	defer b.Clear()
	return Upcast(b)
}

// TypeName implements Named.
func (*Box) TypeName() string { return "Box" }

// Deref implements Dereferencer; the result is a borrow.
func (b *Box) Deref() Value { return b.v }

// Store replaces the boxed value.
func (b *Box) Store(v Value) { b.v.Set(v) }

// Incr implements Incrementer: the box is incremented in place and returned.
func (b *Box) Incr() *Box {
	next := Increment(b.v)
	b.v.Set(next)
	next.Clear()
	return b
}

// Equal implements Equatable.
func (b *Box) Equal(other *Box) bool { return Equal(b.v, other.v) }

// Compare implements Orderable.
func (b *Box) Compare(other *Box) int { return Compare(b.v, other.v) }

// Str implements Stringifier.
func (b *Box) Str() string { return Str(b.v) }

// Repr implements Representer.
func (b *Box) Repr() string { return Repr(b.v) }

// Teardown releases the boxed value.
func (b *Box) Teardown() { b.v.Clear() }

// EqualObject implements DynEquatable.
func (b *Box) EqualObject(other Object) bool {
	o, ok := other.(*Box)
	return ok && Equal(b.v, o.v)
}

// CompareObject implements DynOrderable.
func (b *Box) CompareObject(other Object) int {
	o, ok := other.(*Box)
	if !ok {
		typeMismatch("Box", typeName(other))
	}
	return Compare(b.v, o.v)
}

// ArithObject implements DynArith over the boxed values.
func (b *Box) ArithObject(op Op, other Object) (Object, bool) {
	o, ok := other.(*Box)
	if !ok {
		return nil, false
	}
	res := Arith(op, b.v, o.v)
	defer res.Clear()
	return NewBox(res), true
}

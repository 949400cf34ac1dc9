package rt

// Tuple is a fixed-arity heterogeneous sequence, immutable after
// construction. Elements are stored as Values.
type Tuple struct {
	Base
	elems []Value
}

// NewTuple allocates a Tuple from raw elements, converting each with ValueOf.
// Handles and Values are retained; the caller keeps its references.
func NewTuple(elems ...any) *Tuple {
	t := &Tuple{elems: make([]Value, len(elems))}
	for i, e := range elems {
		t.elems[i] = ValueOf(e)
	}
	return t
}

// TupleOf returns a handle to a new Tuple.
func TupleOf(elems ...any) Ptr[*Tuple] {
	return New(NewTuple(elems...))
}

// TypeName implements Named.
func (*Tuple) TypeName() string { return "Tuple" }

// Len returns the arity.
func (t *Tuple) Len() int { return len(t.elems) }

// At returns element i as a borrow. i outside [0, Len) is a fatal IndexError.
func (t *Tuple) At(i Int) Value {
	return t.elems[checkIndex(i, len(t.elems))]
}

// Str implements Stringifier: T[e1, e2, ...] in declared order.
func (t *Tuple) Str() string {
	return joinRepr("T[", t.elems, "]")
}

// Teardown releases every element.
func (t *Tuple) Teardown() {
	for i := range t.elems {
		t.elems[i].Clear()
	}
}

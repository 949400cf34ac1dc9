package rt

import "fmt"

// Object is any heap value managed through Ptr. Implementations embed Base.
type Object interface {
	objectBase() *Base
}

type objectState uint8

const (
	stateFresh objectState = iota // allocated, never retained
	stateLive                     // at least one handle
	stateFreed                    // torn down
)

// Base carries the reference count every runtime object shares. The count is
// a plain int: objects are never shared between goroutines.
type Base struct {
	refs  int
	state objectState
	id    uint64
	heap  *Heap
}

func (b *Base) objectBase() *Base { return b }

// RefCount reports how many handles currently reference the object.
func (b *Base) RefCount() int { return b.refs }

// ObjectID is the heap-assigned id, 0 until the first retain.
func (b *Base) ObjectID() uint64 { return b.id }

// Finalizer is implemented by objects that own handles. Teardown runs exactly
// once, synchronously, when the last handle is released, and must release
// every handle the object holds.
type Finalizer interface {
	Teardown()
}

// Named overrides the type name used in diagnostics and default reprs.
type Named interface {
	TypeName() string
}

func typeName(o Object) string {
	if o == nil {
		return "nil"
	}
	if n, ok := o.(Named); ok {
		return n.TypeName()
	}
	return fmt.Sprintf("%T", o)
}

// staticTypeName names T without needing a value; TypeName implementations
// must not read their receiver.
func staticTypeName[T any]() string {
	var zero T
	if n, ok := any(zero).(Named); ok {
		return n.TypeName()
	}
	return fmt.Sprintf("%T", zero)
}

func objectLabel(o Object) string {
	return fmt.Sprintf("%s#%d", typeName(o), o.objectBase().id)
}

func retain(o Object) {
	b := o.objectBase()
	switch b.state {
	case stateFreed:
		fatalf(CodeUseAfterFree, "use after free: %s", objectLabel(o))
	case stateFresh:
		b.state = stateLive
		currentHeap.track(o)
	}
	b.refs++
}

func release(o Object) {
	b := o.objectBase()
	if b.state != stateLive || b.refs <= 0 {
		fatalf(CodeDoubleFree, "double free: %s", objectLabel(o))
	}
	b.refs--
	if b.refs > 0 {
		return
	}
	// Mark first so a cascade that reaches this object again fails loudly.
	b.state = stateFreed
	b.heap.untrack(o)
	if f, ok := o.(Finalizer); ok {
		f.Teardown()
	}
}

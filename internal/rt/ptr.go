package rt

// Ptr is a counted handle to an Object. The zero Ptr is null and may be
// copied, compared and cleared freely.
//
// Go assignment does not run code, so copies that must keep the object alive
// are made with Clone, and every handle that is done with is Cleared. A handle
// copied with plain assignment is a borrow: valid while the original lives.
type Ptr[T Object] struct {
	obj  T
	base *Base
}

// New returns the first handle to obj. obj must not be nil.
func New[T Object](obj T) Ptr[T] {
	retain(obj)
	return Ptr[T]{obj: obj, base: obj.objectBase()}
}

// IsNil reports whether p is the null handle.
func (p Ptr[T]) IsNil() bool {
	return p.base == nil
}

// Get returns the pointee for method calls. The result is a borrow: it stays
// valid only while some handle to the object lives. Get on a null handle is a
// fatal NullReferenceError.
func (p Ptr[T]) Get() T {
	if p.base == nil {
		fatalf(CodeNullDeref, "null dereference of %s handle", staticTypeName[T]())
	}
	if p.base.state == stateFreed {
		fatalf(CodeUseAfterFree, "use after free: %s", objectLabel(p.obj))
	}
	return p.obj
}

// Clone returns another handle to the same object, retaining it.
func (p Ptr[T]) Clone() Ptr[T] {
	if p.base != nil {
		retain(p.obj)
	}
	return p
}

// Assign makes p reference q's object. The new referent is retained before
// the old one is released, so self-assignment and aliasing are safe.
func (p *Ptr[T]) Assign(q Ptr[T]) {
	if q.base != nil {
		retain(q.obj)
	}
	old := *p
	*p = q
	if old.base != nil {
		release(old.obj)
	}
}

// Clear releases the referent and nulls p.
func (p *Ptr[T]) Clear() {
	old := *p
	*p = Ptr[T]{}
	if old.base != nil {
		release(old.obj)
	}
}

// Same reports whether p and q reference the same object (or are both null).
func (p Ptr[T]) Same(q Ptr[T]) bool {
	return p.base == q.base
}

// RefCount reports the referent's count, 0 for null.
func (p Ptr[T]) RefCount() int {
	if p.base == nil {
		return 0
	}
	return p.base.refs
}

// String renders the pointee through Repr.
func (p Ptr[T]) String() string {
	return Repr(p)
}

// releaseRef drops the reference held by a stored copy of p without touching
// the copy. Containers use it from Teardown, where the storage is discarded.
func (p Ptr[T]) releaseRef() {
	if p.base != nil {
		release(p.obj)
	}
}

// ref exposes the pointee as an Object (nil for null) to dynamic dispatch.
func (p Ptr[T]) ref() Object {
	if p.base == nil {
		return nil
	}
	return p.obj
}

// handle is implemented by every Ptr instantiation.
type handle interface {
	ref() Object
	releaseRef()
}

// Upcast returns a retained Ptr[Object] to p's referent.
func Upcast[T Object](p Ptr[T]) Ptr[Object] {
	if p.base == nil {
		return Ptr[Object]{}
	}
	retain(p.obj)
	return Ptr[Object]{obj: p.obj, base: p.base}
}

// Cast returns a retained handle of type T to p's referent. A null handle
// casts to null; a referent of another type is a fatal TypeError.
func Cast[T Object, S Object](p Ptr[S]) Ptr[T] {
	if p.base == nil {
		return Ptr[T]{}
	}
	obj, ok := Object(p.obj).(T)
	if !ok {
		typeMismatch(staticTypeName[T](), typeName(p.obj))
	}
	retain(obj)
	return Ptr[T]{obj: obj, base: p.base}
}

package rt

import (
	"fmt"
	"sort"
	"strings"

	"xcrt/internal/trace"
)

// Heap accounts for live runtime objects. It does not own memory; it records
// which objects are alive so a clean exit can be checked for leaks.
// Ids are monotonically increasing and never reused within a heap.
type Heap struct {
	nextID uint64
	live   map[uint64]Object
	allocs uint64
	frees  uint64
	tracer trace.Tracer
}

// HeapStats is a snapshot of heap counters.
type HeapStats struct {
	Allocs uint64 `json:"allocs" msgpack:"allocs"`
	Frees  uint64 `json:"frees" msgpack:"frees"`
	Live   int    `json:"live" msgpack:"live"`
}

// NewHeap creates an empty heap that reports alloc/free points to tr.
func NewHeap(tr trace.Tracer) *Heap {
	if tr == nil {
		tr = trace.Nop
	}
	return &Heap{
		nextID: 1,
		live:   make(map[uint64]Object, 128),
		tracer: tr,
	}
}

// currentHeap is where objects bind on their first retain. The runtime is
// single-threaded; UseHeap swaps it for the duration of a run.
var currentHeap = NewHeap(nil)

// UseHeap makes h the heap new objects bind to and returns a function that
// restores the previous one.
func UseHeap(h *Heap) (restore func()) {
	prev := currentHeap
	currentHeap = h
	return func() { currentHeap = prev }
}

// CurrentHeap returns the heap new objects bind to.
func CurrentHeap() *Heap {
	return currentHeap
}

func (h *Heap) track(o Object) {
	b := o.objectBase()
	if h == nil {
		return
	}
	b.heap = h
	b.id = h.nextID
	h.nextID++
	h.allocs++
	h.live[b.id] = o
	if h.tracer.Enabled() {
		trace.Point(h.tracer, trace.ScopeHeap, "alloc", objectLabel(o))
	}
}

func (h *Heap) untrack(o Object) {
	if h == nil {
		return
	}
	id := o.objectBase().id
	if _, ok := h.live[id]; !ok {
		return
	}
	delete(h.live, id)
	h.frees++
	if h.tracer.Enabled() {
		trace.Point(h.tracer, trace.ScopeHeap, "free", objectLabel(o))
	}
}

// Live returns the number of objects that still have handles.
func (h *Heap) Live() int {
	if h == nil {
		return 0
	}
	return len(h.live)
}

// Stats returns a snapshot of the heap counters.
func (h *Heap) Stats() HeapStats {
	if h == nil {
		return HeapStats{}
	}
	return HeapStats{Allocs: h.allocs, Frees: h.frees, Live: len(h.live)}
}

// CheckLeaks returns a HeapLeak error describing the objects still alive, or
// nil. Reference cycles are never collected and show up here.
func (h *Heap) CheckLeaks() error {
	if h == nil || len(h.live) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(h.live))
	kindCounts := make(map[string]int, 8)
	for id, o := range h.live {
		ids = append(ids, id)
		kindCounts[typeName(o)]++
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	msg := fmt.Sprintf("heap leak detected: %d objects still alive", len(ids))
	kindList := make([]string, 0, len(kindCounts))
	for kind, n := range kindCounts {
		kindList = append(kindList, fmt.Sprintf("%s=%d", kind, n))
	}
	sort.Strings(kindList)
	msg += " (" + strings.Join(kindList, ", ") + ")"

	const maxList = 8
	list := make([]string, 0, maxList)
	for _, id := range ids {
		if len(list) == maxList {
			break
		}
		o := h.live[id]
		list = append(list, fmt.Sprintf("%s(rc=%d)", objectLabel(o), o.objectBase().refs))
	}
	msg += ": " + strings.Join(list, ", ")
	return &Error{Code: CodeHeapLeak, Message: msg, Traced: true}
}

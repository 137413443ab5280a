package eval

import (
	"fmt"

	"github.com/paiml/ruchy-sub009/value"
)

// charge accounts n bytes against the evaluator's cumulative heap estimate
// and raises a resource error once the configured working-set bound is
// exceeded (spec's resource-bounds section: "heap allocation, default
// 10 MiB working set"). The estimate is never decremented — Ruchy values
// are immutable once built and the spec bounds a run's total working set,
// not a live/garbage distinction a tree-walking evaluator has no way to
// observe anyway.
func (ev *Evaluator) charge(n int64) *RuntimeError {
	ev.heapUsed += n
	if ev.limits.MaxHeapBytes > 0 && ev.heapUsed > ev.limits.MaxHeapBytes {
		return &RuntimeError{
			Kind:    KindResourceExceeded,
			Message: fmt.Sprintf("heap allocation exceeded its bound (max %d bytes, used %d)", ev.limits.MaxHeapBytes, ev.heapUsed),
		}
	}

	return nil
}

// approxSize estimates the bytes a freshly built collection or string value
// adds to the working set. It charges only the collection's own spine (its
// header plus one word per element/entry) rather than recursing into
// element values, which were already charged individually when they were
// themselves constructed — charging them again here would double-count a
// nested list's elements every time it's wrapped in another collection.
func approxSize(v value.Value) int64 {
	const header = 24
	const word = 8

	switch x := v.(type) {
	case value.Str:
		return int64(len(string(x))) + word
	case *value.List:
		return header + int64(len(x.Elems))*word
	case *value.Tuple:
		return header + int64(len(x.Elems))*word
	case *value.Set:
		return header + int64(x.Len())*word
	case *value.Mapping:
		return header + int64(x.Len())*(word*2)
	case *value.Record:
		return header + int64(x.Fields.Len())*(word*2)
	default:
		return word
	}
}

package opus

import (
	"runtime"
	"unsafe"
)

// handle owns one native codec state and guarantees it is freed exactly
// once: on close, or by the finalizer if the owner leaks without closing.
// The native destroy calls return void, so release cannot fail.
type handle struct {
	ptr  unsafe.Pointer
	free func(unsafe.Pointer)
}

func newHandle(ptr unsafe.Pointer, free func(unsafe.Pointer)) *handle {
	h := &handle{ptr: ptr, free: free}
	runtime.SetFinalizer(h, (*handle).close)
	return h
}

func (h *handle) closed() bool { return h.ptr == nil }

// close is idempotent; repeated calls are no-ops.
func (h *handle) close() {
	if h.ptr == nil {
		return
	}
	h.free(h.ptr)
	h.ptr = nil
	runtime.SetFinalizer(h, nil)
}

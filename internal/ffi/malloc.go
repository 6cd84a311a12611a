//go:build cgo

package ffi

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// CAllocator hands off buffers in C heap memory, so callers may release
// them from any thread without involving the Go runtime's collector.
type CAllocator struct{}

// Alloc returns size bytes from malloc.
func (CAllocator) Alloc(size uintptr) unsafe.Pointer {
	return C.malloc(C.size_t(size))
}

// Free releases memory obtained from Alloc.
func (CAllocator) Free(p unsafe.Pointer, _ uintptr) {
	C.free(p)
}

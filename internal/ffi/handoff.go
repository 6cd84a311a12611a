package ffi

import "unsafe"

// tokenSize is the size in bytes of one token in a handed-off buffer.
const tokenSize = unsafe.Sizeof(uint32(0))

// Allocator provides the memory token buffers are handed off in.
//
// Memory returned by Alloc must not be managed by the Go garbage collector
// once it is visible to foreign code. Free receives the size that was passed
// to Alloc. Implementations must be safe for concurrent use.
type Allocator interface {
	// Alloc returns size bytes of memory, or nil if none is available.
	Alloc(size uintptr) unsafe.Pointer

	// Free releases memory previously returned by Alloc.
	Free(p unsafe.Pointer, size uintptr)
}

// handoff copies tokens into a block from a and writes its address and
// element count into the caller's output slots.
//
// outTokens points at a uint32_t* slot and outLen at a size_t slot. Nothing
// is written unless the whole handoff succeeds. An empty buffer is handed off
// as (nil, 0).
func handoff(a Allocator, tokens []uint32, outTokens, outLen unsafe.Pointer) error {
	n := len(tokens)

	var block unsafe.Pointer
	if n > 0 {
		block = a.Alloc(uintptr(n) * tokenSize)
		if block == nil {
			return ErrOutOfMemory
		}
		copy(unsafe.Slice((*uint32)(block), n), tokens)
	}

	*(*unsafe.Pointer)(outTokens) = block
	*(*uintptr)(outLen) = uintptr(n)

	return nil
}

// reclaim releases a block produced by handoff. A nil block is a no-op.
func reclaim(a Allocator, block unsafe.Pointer, n uintptr) {
	if block == nil {
		return
	}
	a.Free(block, n*tokenSize)
}

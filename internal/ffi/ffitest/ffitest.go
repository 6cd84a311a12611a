// Package ffitest provides instrumented memory and C-string fixtures for
// exercising the ffi boundary from Go tests, without cgo.
package ffitest

import (
	"fmt"
	"sync"
	"unsafe"
)

// Allocator is an ffi.Allocator over Go memory that records every block it
// hands out and flags frees that break the handoff contract: double frees,
// frees of addresses it never produced, and frees with a size that differs
// from the allocation.
type Allocator struct {
	mu         sync.Mutex
	live       map[unsafe.Pointer][]byte
	freed      map[unsafe.Pointer]uintptr
	violations []string
	allocs     int
	frees      int

	// FailAfter makes Alloc return nil once this many allocations have
	// succeeded. Zero disables failure injection.
	FailAfter int
}

// NewAllocator creates an empty tracking allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		live:  make(map[unsafe.Pointer][]byte),
		freed: make(map[unsafe.Pointer]uintptr),
	}
}

// Alloc returns size bytes of zeroed memory.
func (a *Allocator) Alloc(size uintptr) unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.FailAfter > 0 && a.allocs >= a.FailAfter {
		return nil
	}
	if size == 0 {
		a.violations = append(a.violations, "zero-size allocation")
		return nil
	}

	// uint32 backing keeps blocks aligned for token access.
	words := make([]uint32, (size+3)/4)
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size)
	p := unsafe.Pointer(&buf[0])

	a.live[p] = buf
	delete(a.freed, p)
	a.allocs++

	return p
}

// Free releases a block, recording any contract violation.
func (a *Allocator) Free(p unsafe.Pointer, size uintptr) {
	a.mu.Lock()
	defer a.mu.Unlock()

	buf, ok := a.live[p]
	if !ok {
		if _, wasFreed := a.freed[p]; wasFreed {
			a.violations = append(a.violations, fmt.Sprintf("double free of %p", p))
		} else {
			a.violations = append(a.violations, fmt.Sprintf("free of unknown block %p", p))
		}
		return
	}
	if uintptr(len(buf)) != size {
		a.violations = append(a.violations,
			fmt.Sprintf("free of %p with size %d, allocated %d", p, size, len(buf)))
	}

	delete(a.live, p)
	a.freed[p] = size
	a.frees++
}

// Live returns the number of blocks not yet freed.
func (a *Allocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// Allocs returns the number of successful allocations.
func (a *Allocator) Allocs() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocs
}

// Frees returns the number of valid frees.
func (a *Allocator) Frees() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frees
}

// Violations returns the contract violations observed so far.
func (a *Allocator) Violations() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.violations...)
}

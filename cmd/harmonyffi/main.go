// Command harmonyffi builds the Harmony renderer as a C shared library.
//
//	go build -buildmode=c-shared -o libharmony_ffi.so ./cmd/harmonyffi
//
// The exported functions are declared in include/harmony_ffi.h. Every buffer
// returned through out_tokens/out_len must be released with
// harmony_tokens_free using the same pointer and length.
package main

/*
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/born-ml/harmonyffi/internal/ffi"
	"github.com/born-ml/harmonyffi/internal/library"
)

func boundary() *ffi.Boundary {
	return library.Boundary(ffi.CAllocator{})
}

//export harmony_render_system_tokens
func harmony_render_system_tokens(instructions *C.char, outTokens **C.uint32_t, outLen *C.size_t) C.int {
	code := boundary().RenderSystem(
		unsafe.Pointer(instructions),
		unsafe.Pointer(outTokens),
		unsafe.Pointer(outLen),
	)
	return C.int(code)
}

//export harmony_render_system_user_tokens
func harmony_render_system_user_tokens(
	systemInstructions *C.char,
	userParts **C.char,
	userLen C.size_t,
	outTokens **C.uint32_t,
	outLen *C.size_t,
) C.int {
	code := boundary().RenderSystemUser(
		unsafe.Pointer(systemInstructions),
		unsafe.Pointer(userParts),
		uintptr(userLen),
		unsafe.Pointer(outTokens),
		unsafe.Pointer(outLen),
	)
	return C.int(code)
}

//export harmony_stop_tokens
func harmony_stop_tokens(outTokens **C.uint32_t, outLen *C.size_t) C.int {
	return C.int(boundary().StopTokens(unsafe.Pointer(outTokens), unsafe.Pointer(outLen)))
}

//export harmony_tokens_free
func harmony_tokens_free(tokens *C.uint32_t, n C.size_t) {
	boundary().Free(unsafe.Pointer(tokens), uintptr(n))
}

func main() {}

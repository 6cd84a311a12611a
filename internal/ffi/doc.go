// Package ffi implements the C call boundary of the Harmony renderer.
//
// Every entry point follows the same pipeline, each stage returning its own
// status code on failure:
//   - adapt: validate foreign pointers, copy C strings into Go strings
//   - build: assemble the conversation (system first, then user parts)
//   - render: acquire the encoding and render for an assistant completion
//   - handoff: copy the tokens into allocator memory owned by the caller
//
// Memory handed to the caller must be released with Boundary.Free using the
// exact (address, length) pair that was returned. Nothing else may free it,
// and it must not be freed twice.
//
// The package never retains a foreign pointer past the call that received it.
package ffi

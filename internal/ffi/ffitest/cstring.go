package ffitest

import "unsafe"

// CString is a nul-terminated byte string in Go memory, used in place of a
// caller-owned char*.
type CString struct {
	buf []byte
}

// NewCString copies s and appends the terminating NUL.
func NewCString(s string) *CString {
	return NewCBytes([]byte(s))
}

// NewCBytes copies raw bytes, which need not be valid UTF-8, and appends the
// terminating NUL.
func NewCBytes(b []byte) *CString {
	buf := make([]byte, len(b)+1)
	copy(buf, b)
	return &CString{buf: buf}
}

// Ptr returns the address of the first byte. A nil CString yields nil.
func (c *CString) Ptr() unsafe.Pointer {
	if c == nil {
		return nil
	}
	return unsafe.Pointer(&c.buf[0])
}

// Scribble overwrites the string contents in place, keeping the NUL. Tests
// use it to show adapted text does not alias caller memory.
func (c *CString) Scribble(b byte) {
	for i := 0; i < len(c.buf)-1; i++ {
		c.buf[i] = b
	}
}

// CStringArray is a const char* const* array. Nil elements stay null.
type CStringArray struct {
	strs []*CString
	ptrs []unsafe.Pointer
}

// NewCStringArray builds a pointer array over strs.
func NewCStringArray(strs ...*CString) *CStringArray {
	ptrs := make([]unsafe.Pointer, len(strs))
	for i, s := range strs {
		ptrs[i] = s.Ptr()
	}
	return &CStringArray{strs: strs, ptrs: ptrs}
}

// Ptr returns the address of the first element, or nil for an empty array.
func (a *CStringArray) Ptr() unsafe.Pointer {
	if a == nil || len(a.ptrs) == 0 {
		return nil
	}
	return unsafe.Pointer(&a.ptrs[0])
}

// Len returns the element count as a size_t.
func (a *CStringArray) Len() uintptr {
	if a == nil {
		return 0
	}
	return uintptr(len(a.ptrs))
}

// Out holds the uint32_t* and size_t output slots of an entry point.
type Out struct {
	Tokens unsafe.Pointer
	Len    uintptr
}

// NewOut returns output slots pre-filled with a sentinel, so tests can tell
// whether an entry point wrote them.
func NewOut() *Out {
	return &Out{Tokens: unsafe.Pointer(&sentinel), Len: SentinelLen}
}

// SentinelLen is the Len value of untouched output slots.
const SentinelLen = ^uintptr(0)

var sentinel uint32

// TokensSlot returns the address of the token pointer slot.
func (o *Out) TokensSlot() unsafe.Pointer {
	return unsafe.Pointer(&o.Tokens)
}

// LenSlot returns the address of the length slot.
func (o *Out) LenSlot() unsafe.Pointer {
	return unsafe.Pointer(&o.Len)
}

// Untouched reports whether neither slot has been written.
func (o *Out) Untouched() bool {
	return o.Tokens == unsafe.Pointer(&sentinel) && o.Len == SentinelLen
}

// Slice copies the handed-off buffer into a Go slice.
func (o *Out) Slice() []uint32 {
	if o.Tokens == nil || o.Len == 0 {
		return []uint32{}
	}
	return append([]uint32(nil), unsafe.Slice((*uint32)(o.Tokens), o.Len)...)
}

package ffi

import (
	"unicode/utf8"
	"unsafe"
)

// cStringLen returns the number of bytes before the terminating NUL of p.
func cStringLen(p unsafe.Pointer) int {
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return n
}

// adaptText copies the nul-terminated string at p into an owned Go string.
//
// p must be non-nil. The returned string never aliases p.
func adaptText(p unsafe.Pointer) (string, error) {
	n := cStringLen(p)
	if n == 0 {
		return "", nil
	}

	// string([]byte) copies.
	s := string(unsafe.Slice((*byte)(p), n))
	if !utf8.ValidString(s) {
		return "", ErrInvalidUTF8
	}
	return s, nil
}

// adaptOptionalText is adaptText for arguments where nil means "empty".
func adaptOptionalText(p unsafe.Pointer) (string, error) {
	if p == nil {
		return "", nil
	}
	return adaptText(p)
}

// adaptUserParts copies count C strings from the pointer array at parts.
//
// Nil entries are skipped. On failure no adapted string is returned.
func adaptUserParts(parts unsafe.Pointer, count uintptr) ([]string, error) {
	if count == 0 {
		return nil, nil
	}
	if parts == nil {
		return nil, ErrMissingUserParts
	}

	entries := unsafe.Slice((*unsafe.Pointer)(parts), count)

	var out []string
	for i, entry := range entries {
		if entry == nil {
			continue
		}
		s, err := adaptText(entry)
		if err != nil {
			return nil, &TextError{Field: FieldUserPart, Index: i, Err: err}
		}
		out = append(out, s)
	}

	return out, nil
}

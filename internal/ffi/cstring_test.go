package ffi

import (
	"testing"

	"github.com/born-ml/harmonyffi/internal/ffi/ffitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdaptText(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		want    string
		wantErr bool
	}{
		{name: "ascii", in: []byte("hello"), want: "hello"},
		{name: "empty", in: []byte{}, want: ""},
		{name: "multibyte", in: []byte("日本語 ✓"), want: "日本語 ✓"},
		{name: "truncated sequence", in: []byte{0xe6, 0x97}, wantErr: true},
		{name: "invalid byte", in: []byte{'a', 0xff}, wantErr: true},
		{name: "surrogate half", in: []byte{0xed, 0xa0, 0x80}, wantErr: true},
		{name: "overlong encoding", in: []byte{0xc0, 0xaf}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := adaptText(ffitest.NewCBytes(tt.in).Ptr())
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidUTF8)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdaptText_StopsAtNUL(t *testing.T) {
	got, err := adaptText(ffitest.NewCBytes([]byte("abc\x00def")).Ptr())
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestAdaptOptionalText(t *testing.T) {
	got, err := adaptOptionalText(nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestAdaptUserParts(t *testing.T) {
	t.Run("zero count ignores array", func(t *testing.T) {
		parts, err := adaptUserParts(nil, 0)
		require.NoError(t, err)
		assert.Empty(t, parts)
	})

	t.Run("count without array", func(t *testing.T) {
		parts, err := adaptUserParts(nil, 3)
		require.ErrorIs(t, err, ErrMissingUserParts)
		assert.Nil(t, parts)
	})

	t.Run("count limits the read", func(t *testing.T) {
		arr := ffitest.NewCStringArray(ffitest.NewCString("a"), ffitest.NewCString("b"), ffitest.NewCString("c"))
		parts, err := adaptUserParts(arr.Ptr(), 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, parts)
	})

	t.Run("invalid entry discards earlier parts", func(t *testing.T) {
		arr := ffitest.NewCStringArray(
			ffitest.NewCString("ok"),
			nil,
			ffitest.NewCBytes([]byte{0xff}),
		)
		parts, err := adaptUserParts(arr.Ptr(), arr.Len())
		require.ErrorIs(t, err, ErrInvalidUTF8)
		assert.Nil(t, parts)

		var textErr *TextError
		require.ErrorAs(t, err, &textErr)
		assert.Equal(t, FieldUserPart, textErr.Field)
		assert.Equal(t, 2, textErr.Index)
		assert.Equal(t, "user_parts[2]: string is not valid UTF-8", textErr.Error())
	})
}

func TestCodeTables(t *testing.T) {
	systemUser := []Status{
		SystemUserNullPointer,
		SystemUserInvalidSystem,
		SystemUserMissingUserParts,
		SystemUserInvalidUserPart,
		SystemUserEncodingUnavailable,
		SystemUserRenderFailed,
		SystemUserOutOfMemory,
	}
	system := []Status{
		SystemNullPointer,
		SystemInvalidInstructions,
		SystemEncodingUnavailable,
		SystemRenderFailed,
		SystemOutOfMemory,
	}

	for _, codes := range [][]Status{system, systemUser} {
		seen := make(map[Status]bool)
		for _, c := range codes {
			assert.Less(t, int32(c), int32(0))
			assert.False(t, seen[c], "duplicate code %d", c)
			seen[c] = true
		}
	}

	assert.Equal(t, StatusOK, systemCodes.status(nil))
	assert.Equal(t, SystemRenderFailed, systemCodes.status(assert.AnError))
	assert.Equal(t, StopEncodingUnavailable, stopCodes.status(assert.AnError))
}

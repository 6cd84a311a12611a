package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/harmonyffi/internal/config"
	"github.com/born-ml/harmonyffi/internal/ffi"
	"github.com/born-ml/harmonyffi/internal/ffi/ffitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestNew_InvalidConfigIsEnvironmentError(t *testing.T) {
	alloc := ffitest.NewAllocator()
	b := New(alloc, envFrom(map[string]string{config.EnvLogLevel: "loud"}))

	in := ffitest.NewCString("hi")
	out := ffitest.NewOut()

	assert.Equal(t, ffi.SystemEncodingUnavailable, b.RenderSystem(in.Ptr(), out.TokensSlot(), out.LenSlot()))
	assert.Equal(t, ffi.SystemUserEncodingUnavailable, b.RenderSystemUser(nil, nil, 0, out.TokensSlot(), out.LenSlot()))
	assert.Equal(t, ffi.StopEncodingUnavailable, b.StopTokens(out.TokensSlot(), out.LenSlot()))
	assert.True(t, out.Untouched())

	// Usage errors are still reported before the environment is consulted.
	assert.Equal(t, ffi.SystemNullPointer, b.RenderSystem(nil, out.TokensSlot(), out.LenSlot()))
}

func TestNew_MissingConfigFile(t *testing.T) {
	b := New(ffitest.NewAllocator(), envFrom(map[string]string{
		config.EnvConfigFile: filepath.Join(t.TempDir(), "absent.yaml"),
	}))

	out := ffitest.NewOut()
	assert.Equal(t, ffi.StopEncodingUnavailable, b.StopTokens(out.TokensSlot(), out.LenSlot()))
}

func TestVocabularyLoader(t *testing.T) {
	t.Run("disabled without dir", func(t *testing.T) {
		l, err := vocabularyLoader(config.Default())
		require.NoError(t, err)
		assert.Nil(t, l)
	})

	t.Run("reads from dir", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "o200k_base.tiktoken"), []byte("YQ== 0\n"), 0o600))

		l, err := vocabularyLoader(&config.Config{Vocab: config.VocabConfig{Dir: dir}})
		require.NoError(t, err)
		require.NotNil(t, l)

		ranks, err := l.LoadTiktokenBpe("https://example.invalid/encodings/o200k_base.tiktoken")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"a": 0}, ranks)
	})

	t.Run("bad digest", func(t *testing.T) {
		_, err := vocabularyLoader(&config.Config{Vocab: config.VocabConfig{
			Dir:    t.TempDir(),
			BLAKE3: map[string]string{"o200k_base.tiktoken": "00"},
		}})
		assert.Error(t, err)
	})
}

func TestBoundary_RendersWithDefaultEnvironment(t *testing.T) {
	if testing.Short() {
		t.Skip("downloads the o200k_base vocabulary")
	}

	alloc := ffitest.NewAllocator()
	b := New(alloc, envFrom(nil))

	in := ffitest.NewCString("You are helpful.")
	out := ffitest.NewOut()
	require.Equal(t, ffi.StatusOK, b.RenderSystem(in.Ptr(), out.TokensSlot(), out.LenSlot()))
	assert.NotZero(t, out.Len)

	b.Free(out.Tokens, out.Len)
	assert.Empty(t, alloc.Violations())
	assert.Zero(t, alloc.Live())
}

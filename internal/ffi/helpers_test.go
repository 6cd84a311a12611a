package ffi

import (
	"errors"
	"sync"
	"testing"

	"github.com/born-ml/harmonyffi/internal/ffi/ffitest"
	"github.com/born-ml/harmonyffi/internal/harmony"
	"github.com/stretchr/testify/require"
)

// byteVocab maps every byte of the input to its own token ID.
type byteVocab struct{}

func (byteVocab) EncodeOrdinary(text string) []int {
	out := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		out[i] = int(text[i])
	}
	return out
}

func (byteVocab) Decode(tokens []int) string {
	buf := make([]byte, len(tokens))
	for i, tok := range tokens {
		buf[i] = byte(tok)
	}
	return string(buf)
}

func byteEncoding(t testing.TB) *harmony.Encoding {
	t.Helper()
	enc, err := harmony.LoadEncodingWith(harmony.HarmonyGptOss, func(string) (harmony.Vocabulary, error) {
		return byteVocab{}, nil
	})
	require.NoError(t, err)
	return enc
}

// recordingRenderer captures the conversations it is asked to render.
type recordingRenderer struct {
	mu        sync.Mutex
	convs     []harmony.Conversation
	tokens    []uint32
	err       error
	panicWith any
}

func (r *recordingRenderer) RenderConversationForCompletion(conv harmony.Conversation, nextRole harmony.Role, opts *harmony.RenderOptions) ([]uint32, error) {
	r.mu.Lock()
	r.convs = append(r.convs, conv)
	r.mu.Unlock()

	if r.panicWith != nil {
		panic(r.panicWith)
	}
	if nextRole != harmony.RoleAssistant || opts != nil {
		return nil, errors.New("unexpected completion target")
	}
	if r.err != nil {
		return nil, r.err
	}
	return r.tokens, nil
}

func (r *recordingRenderer) StopTokensForAssistantActions() []uint32 {
	return []uint32{harmony.TokenReturn, harmony.TokenCall}
}

func (r *recordingRenderer) last(t *testing.T) harmony.Conversation {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.convs, "renderer was not called")
	return r.convs[len(r.convs)-1]
}

func loaderFor(r Renderer) EncodingLoader {
	return func() (Renderer, error) { return r, nil }
}

func failingLoader() (Renderer, error) {
	return nil, errors.New("o200k_base.tiktoken: no such file")
}

func panickingLoader() (Renderer, error) {
	panic("tiktoken: corrupt rank file")
}

// newTestBoundary returns a boundary over a tracking allocator and the
// byte-level Harmony encoding.
func newTestBoundary(t *testing.T) (*Boundary, *ffitest.Allocator) {
	t.Helper()
	alloc := ffitest.NewAllocator()
	return New(alloc, loaderFor(byteEncoding(t))), alloc
}

// requireClean asserts every handed-off block was reclaimed correctly.
func requireClean(t *testing.T, alloc *ffitest.Allocator) {
	t.Helper()
	require.Empty(t, alloc.Violations())
	require.Zero(t, alloc.Live(), "leaked token buffers")
}

// roles lists the message roles of conv.
func roles(conv harmony.Conversation) []harmony.Role {
	out := make([]harmony.Role, 0, conv.Len())
	for _, m := range conv.Messages {
		out = append(out, m.Author.Role)
	}
	return out
}

// texts lists the message texts of conv.
func texts(conv harmony.Conversation) []string {
	out := make([]string, 0, conv.Len())
	for _, m := range conv.Messages {
		out = append(out, m.Text())
	}
	return out
}

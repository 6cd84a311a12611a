package harmony

import (
	"errors"
	"testing"

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

func byteLoader(string) (Vocabulary, error) {
	return byteVocab{}, nil
}

func failingLoader(string) (Vocabulary, error) {
	return nil, errors.New("vocabulary unavailable")
}

func newTestEncoding(t *testing.T) *Encoding {
	t.Helper()
	enc, err := LoadEncodingWith(HarmonyGptOss, byteLoader)
	require.NoError(t, err)
	return enc
}

// textTokens returns the byte tokens of s.
func textTokens(s string) []uint32 {
	out := make([]uint32, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = uint32(s[i])
	}
	return out
}

// seq concatenates token groups.
func seq(groups ...[]uint32) []uint32 {
	var out []uint32
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func tok(ids ...uint32) []uint32 {
	return ids
}

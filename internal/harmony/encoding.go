package harmony

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// EncodingName identifies a Harmony encoding variant.
type EncodingName string

// HarmonyGptOss is the encoding used by the gpt-oss models.
const HarmonyGptOss EncodingName = "HarmonyGptOss"

// encodingO200kBase is the BPE vocabulary the gpt-oss encoding builds on.
const encodingO200kBase = "o200k_base"

// Harmony special token IDs in the o200k_harmony vocabulary.
const (
	TokenStartOfText uint32 = 199998
	TokenEndOfText   uint32 = 199999
	TokenReturn      uint32 = 200002
	TokenConstrain   uint32 = 200003
	TokenChannel     uint32 = 200005
	TokenStart       uint32 = 200006
	TokenEnd         uint32 = 200007
	TokenMessage     uint32 = 200008
	TokenCall        uint32 = 200012
)

var harmonySpecialTokens = map[string]uint32{
	"<|startoftext|>": TokenStartOfText,
	"<|endoftext|>":   TokenEndOfText,
	"<|return|>":      TokenReturn,
	"<|constrain|>":   TokenConstrain,
	"<|channel|>":     TokenChannel,
	"<|start|>":       TokenStart,
	"<|end|>":         TokenEnd,
	"<|message|>":     TokenMessage,
	"<|call|>":        TokenCall,
}

// baseEncodings maps each Harmony variant to its BPE vocabulary.
var baseEncodings = map[EncodingName]string{
	HarmonyGptOss: encodingO200kBase,
}

// Vocabulary is the ordinary-text BPE an Encoding renders with.
//
// *tiktoken.Tiktoken implements this interface.
type Vocabulary interface {
	// EncodeOrdinary converts text to token IDs, treating special token
	// markup as plain text.
	EncodeOrdinary(text string) []int

	// Decode converts ordinary token IDs back to text.
	Decode(tokens []int) string
}

// VocabularyLoader loads a BPE vocabulary by its tiktoken encoding name.
type VocabularyLoader func(baseEncoding string) (Vocabulary, error)

// TikTokenLoader loads vocabularies through tiktoken-go.
//
// Vocabulary files are fetched by the loader registered with
// tiktoken.SetBpeLoader and cached by tiktoken-go per process.
func TikTokenLoader(baseEncoding string) (Vocabulary, error) {
	tk, err := tiktoken.GetEncoding(baseEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", baseEncoding, err)
	}
	return tk, nil
}

// Encoding renders Harmony conversations into tokens.
//
// An Encoding is immutable and safe for concurrent use.
type Encoding struct {
	name        EncodingName
	vocab       Vocabulary
	specialByID map[uint32]string
}

// LoadEncoding loads a Harmony encoding with the tiktoken-go vocabulary.
func LoadEncoding(name EncodingName) (*Encoding, error) {
	return LoadEncodingWith(name, TikTokenLoader)
}

// LoadEncodingWith loads a Harmony encoding using the given vocabulary loader.
func LoadEncodingWith(name EncodingName, load VocabularyLoader) (*Encoding, error) {
	base, ok := baseEncodings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}

	vocab, err := load(base)
	if err != nil {
		return nil, fmt.Errorf("load %s vocabulary: %w", name, err)
	}
	if vocab == nil {
		return nil, fmt.Errorf("load %s vocabulary: loader returned no vocabulary", name)
	}

	specialByID := make(map[uint32]string, len(harmonySpecialTokens))
	for text, id := range harmonySpecialTokens {
		specialByID[id] = text
	}

	return &Encoding{
		name:        name,
		vocab:       vocab,
		specialByID: specialByID,
	}, nil
}

// Name returns the encoding name.
func (e *Encoding) Name() EncodingName {
	return e.name
}

// IsSpecialToken reports whether token is a Harmony formatting token.
func (e *Encoding) IsSpecialToken(token uint32) bool {
	_, ok := e.specialByID[token]
	return ok
}

// SpecialToken returns the ID of a Harmony special token such as "<|start|>".
func (e *Encoding) SpecialToken(text string) (uint32, bool) {
	id, ok := harmonySpecialTokens[text]
	return id, ok
}

// StopTokensForAssistantActions returns the tokens that end an assistant
// action: <|return|> and <|call|>.
func (e *Encoding) StopTokensForAssistantActions() []uint32 {
	return []uint32{TokenReturn, TokenCall}
}

// Decode converts tokens back to text, rendering special tokens as markup.
func (e *Encoding) Decode(tokens []uint32) string {
	var sb strings.Builder
	run := make([]int, 0, len(tokens))

	flush := func() {
		if len(run) > 0 {
			sb.WriteString(e.vocab.Decode(run))
			run = run[:0]
		}
	}

	for _, tok := range tokens {
		if text, ok := e.specialByID[tok]; ok {
			flush()
			sb.WriteString(text)
			continue
		}
		run = append(run, int(tok))
	}
	flush()

	return sb.String()
}

// encodeText appends the ordinary BPE tokens of text to out.
func (e *Encoding) encodeText(text string, out []uint32) []uint32 {
	if text == "" {
		return out
	}
	for _, tok := range e.vocab.EncodeOrdinary(text) {
		out = append(out, uint32(tok)) //nolint:gosec // G115: Token ID fits in uint32 - vocab size < 2^32.
	}
	return out
}

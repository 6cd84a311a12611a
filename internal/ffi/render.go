package ffi

import (
	"fmt"

	"github.com/born-ml/harmonyffi/internal/harmony"
)

// Renderer is the part of a Harmony encoding the boundary uses.
//
// *harmony.Encoding implements this interface.
type Renderer interface {
	RenderConversationForCompletion(conv harmony.Conversation, nextRole harmony.Role, opts *harmony.RenderOptions) ([]uint32, error)
	StopTokensForAssistantActions() []uint32
}

// EncodingLoader acquires the encoding used by every entry point.
type EncodingLoader func() (Renderer, error)

// LoadGptOss acquires the HarmonyGptOss encoding through tiktoken-go.
func LoadGptOss() (Renderer, error) {
	enc, err := harmony.LoadEncoding(harmony.HarmonyGptOss)
	if err != nil {
		return nil, err
	}
	return enc, nil
}

// acquire runs load, reporting both errors and panics as ErrEncodingUnavailable.
func acquire(load EncodingLoader) (r Renderer, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("%w: panic: %v", ErrEncodingUnavailable, p)
		}
	}()

	r, err = load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingUnavailable, err)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: loader returned no encoding", ErrEncodingUnavailable)
	}
	return r, nil
}

// renderForAssistant renders conv for an assistant completion with the
// engine's default options. Panics are reported as ErrRenderFailed.
func renderForAssistant(r Renderer, conv harmony.Conversation) (tokens []uint32, err error) {
	defer func() {
		if p := recover(); p != nil {
			tokens, err = nil, fmt.Errorf("%w: panic: %v", ErrRenderFailed, p)
		}
	}()

	tokens, err = r.RenderConversationForCompletion(conv, harmony.RoleAssistant, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	return tokens, nil
}

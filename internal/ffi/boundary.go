package ffi

import (
	"unsafe"

	"go.uber.org/zap"
)

// Boundary implements the C entry points on top of an allocator and an
// encoding loader.
//
// A Boundary holds no per-call state and is safe for concurrent use.
type Boundary struct {
	alloc Allocator
	load  EncodingLoader
}

// New creates a Boundary handing off buffers from alloc and rendering with
// the encoding returned by load.
func New(alloc Allocator, load EncodingLoader) *Boundary {
	return &Boundary{
		alloc: alloc,
		load:  load,
	}
}

// RenderSystem implements harmony_render_system_tokens.
//
// It renders a conversation holding one system message with the given
// instructions. All three pointers are required.
func (b *Boundary) RenderSystem(instructions, outTokens, outLen unsafe.Pointer) Status {
	return b.finish("render_system", systemCodes, b.renderSystem(instructions, outTokens, outLen))
}

func (b *Boundary) renderSystem(instructions, outTokens, outLen unsafe.Pointer) error {
	if instructions == nil || outTokens == nil || outLen == nil {
		return ErrNullPointer
	}

	text, err := adaptText(instructions)
	if err != nil {
		return &TextError{Field: FieldInstructions, Index: -1, Err: err}
	}

	enc, err := acquire(b.load)
	if err != nil {
		return err
	}

	tokens, err := renderForAssistant(enc, systemConversation(text))
	if err != nil {
		return err
	}

	return handoff(b.alloc, tokens, outTokens, outLen)
}

// RenderSystemUser implements harmony_render_system_user_tokens.
//
// system may be nil, meaning no system message. userParts points at userLen
// C string pointers; nil entries are skipped.
func (b *Boundary) RenderSystemUser(system, userParts unsafe.Pointer, userLen uintptr, outTokens, outLen unsafe.Pointer) Status {
	return b.finish("render_system_user", systemUserCodes,
		b.renderSystemUser(system, userParts, userLen, outTokens, outLen))
}

func (b *Boundary) renderSystemUser(system, userParts unsafe.Pointer, userLen uintptr, outTokens, outLen unsafe.Pointer) error {
	if outTokens == nil || outLen == nil {
		return ErrNullPointer
	}

	sys, err := adaptOptionalText(system)
	if err != nil {
		return &TextError{Field: FieldSystemInstructions, Index: -1, Err: err}
	}

	users, err := adaptUserParts(userParts, userLen)
	if err != nil {
		return err
	}

	enc, err := acquire(b.load)
	if err != nil {
		return err
	}

	tokens, err := renderForAssistant(enc, systemUserConversation(sys, users))
	if err != nil {
		return err
	}

	return handoff(b.alloc, tokens, outTokens, outLen)
}

// StopTokens implements harmony_stop_tokens: the tokens that end an
// assistant action, handed off like a rendered buffer.
func (b *Boundary) StopTokens(outTokens, outLen unsafe.Pointer) Status {
	return b.finish("stop_tokens", stopCodes, b.stopTokens(outTokens, outLen))
}

func (b *Boundary) stopTokens(outTokens, outLen unsafe.Pointer) error {
	if outTokens == nil || outLen == nil {
		return ErrNullPointer
	}

	enc, err := acquire(b.load)
	if err != nil {
		return err
	}

	return handoff(b.alloc, enc.StopTokensForAssistantActions(), outTokens, outLen)
}

// Free implements harmony_tokens_free.
//
// tokens and n must be exactly a pair written by one of the render entry
// points. A nil tokens pointer is a no-op for any n. Freeing the same
// non-nil pointer twice is undefined behavior.
func (b *Boundary) Free(tokens unsafe.Pointer, n uintptr) {
	reclaim(b.alloc, tokens, n)
}

// finish converts the result of an entry point into its status code.
func (b *Boundary) finish(op string, codes codeTable, err error) Status {
	if err == nil {
		return StatusOK
	}

	code := codes.status(err)
	Logger().Debug("harmony entry point failed",
		zap.String("op", op),
		zap.Int32("code", int32(code)),
		zap.Error(err),
	)
	return code
}

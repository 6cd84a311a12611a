// Package harmony provides Harmony conversation rendering for Go callers.
//
// This package wraps the internal engine used by the harmonyffi shared
// library, so Go programs can render the same token sequences without cgo.
//
// Example usage:
//
//	import "github.com/born-ml/harmonyffi/harmony"
//
//	enc, err := harmony.LoadEncoding(harmony.HarmonyGptOss)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conv := harmony.NewConversation(
//	    harmony.NewMessage(harmony.RoleSystem, "You are helpful."),
//	    harmony.NewMessage(harmony.RoleUser, "Hi!"),
//	)
//	tokens, err := enc.RenderConversationForCompletion(conv, harmony.RoleAssistant, nil)
package harmony

import (
	"github.com/born-ml/harmonyffi/internal/harmony"
)

// Encoding renders conversations into tokens.
type Encoding = harmony.Encoding

// EncodingName identifies an encoding variant.
type EncodingName = harmony.EncodingName

// Role identifies the author of a message.
type Role = harmony.Role

// Author describes who wrote a message.
type Author = harmony.Author

// Content is a single piece of message content.
type Content = harmony.Content

// Message is a single turn of a conversation.
type Message = harmony.Message

// Conversation is an ordered sequence of messages.
type Conversation = harmony.Conversation

// RenderOptions control conversation rendering.
type RenderOptions = harmony.RenderOptions

// RenderError reports which message could not be rendered.
type RenderError = harmony.RenderError

// Vocabulary is the ordinary-text BPE an Encoding renders with.
type Vocabulary = harmony.Vocabulary

// HarmonyGptOss is the encoding used by the gpt-oss models.
const HarmonyGptOss = harmony.HarmonyGptOss

// Roles.
const (
	RoleSystem    = harmony.RoleSystem
	RoleDeveloper = harmony.RoleDeveloper
	RoleUser      = harmony.RoleUser
	RoleAssistant = harmony.RoleAssistant
	RoleTool      = harmony.RoleTool
)

// Errors.
var (
	ErrUnknownEncoding = harmony.ErrUnknownEncoding
	ErrInvalidRole     = harmony.ErrInvalidRole
)

// LoadEncoding loads an encoding with the tiktoken-go vocabulary.
func LoadEncoding(name EncodingName) (*Encoding, error) {
	return harmony.LoadEncoding(name)
}

// LoadEncodingWith loads an encoding over a caller-supplied vocabulary.
func LoadEncodingWith(name EncodingName, load func(baseEncoding string) (Vocabulary, error)) (*Encoding, error) {
	return harmony.LoadEncodingWith(name, load)
}

// NewMessage creates a message with a single text content.
func NewMessage(role Role, text string) Message {
	return harmony.NewMessage(role, text)
}

// NewConversation creates a conversation from messages in order.
func NewConversation(messages ...Message) Conversation {
	return harmony.NewConversation(messages...)
}

// ParseRole converts a role name into a Role.
func ParseRole(name string) (Role, error) {
	return harmony.ParseRole(name)
}

// DefaultRenderOptions returns the option set used when nil is passed.
func DefaultRenderOptions() RenderOptions {
	return harmony.DefaultRenderOptions()
}

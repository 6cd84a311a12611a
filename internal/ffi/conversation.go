package ffi

import "github.com/born-ml/harmonyffi/internal/harmony"

// systemConversation builds the single-message conversation of
// harmony_render_system_tokens. The system message is kept even when empty.
func systemConversation(instructions string) harmony.Conversation {
	return harmony.NewConversation(harmony.NewMessage(harmony.RoleSystem, instructions))
}

// systemUserConversation builds an optional system message followed by one
// user message per part, in order.
func systemUserConversation(system string, users []string) harmony.Conversation {
	messages := make([]harmony.Message, 0, len(users)+1)
	if system != "" {
		messages = append(messages, harmony.NewMessage(harmony.RoleSystem, system))
	}
	for _, u := range users {
		messages = append(messages, harmony.NewMessage(harmony.RoleUser, u))
	}
	return harmony.NewConversation(messages...)
}

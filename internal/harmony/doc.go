// Package harmony renders conversations into token sequences using the
// Harmony chat format of the gpt-oss models.
//
// The package layers the Harmony special tokens over the o200k_base BPE
// vocabulary provided by tiktoken-go:
//   - Roles: system, developer, user, assistant, tool
//   - Messages: <|start|>role<|channel|>channel to=recipient<|message|>text<|end|>
//   - Completion: every message, then <|start|> followed by the next role
//
// Example usage:
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
//
//	tokens, err := enc.RenderConversationForCompletion(conv, harmony.RoleAssistant, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
package harmony

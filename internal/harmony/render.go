package harmony

import "strings"

// Channel names used by the gpt-oss models.
const (
	ChannelAnalysis   = "analysis"
	ChannelCommentary = "commentary"
	ChannelFinal      = "final"
)

// RenderOptions control conversation rendering.
type RenderOptions struct {
	// AutoDropAnalysis drops assistant analysis-channel messages that come
	// before the last final-channel assistant message.
	AutoDropAnalysis bool
}

// DefaultRenderOptions returns the option set used when nil is passed.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{AutoDropAnalysis: true}
}

// Render converts a single message into tokens.
func (e *Encoding) Render(msg Message) ([]uint32, error) {
	out, err := e.renderMessage(msg, nil)
	if err != nil {
		return nil, &RenderError{Index: 0, Role: msg.Author.Role, Err: err}
	}
	return out, nil
}

// RenderConversation converts every message of conv into tokens.
func (e *Encoding) RenderConversation(conv Conversation, opts *RenderOptions) ([]uint32, error) {
	return e.renderConversation(conv, opts, nil)
}

// RenderConversationForCompletion renders conv followed by the header that
// primes a new message from nextRole: <|start|>nextRole.
func (e *Encoding) RenderConversationForCompletion(conv Conversation, nextRole Role, opts *RenderOptions) ([]uint32, error) {
	if !nextRole.Valid() {
		return nil, &RenderError{Index: -1, Role: nextRole, Err: ErrInvalidRole}
	}

	out, err := e.renderConversation(conv, opts, nil)
	if err != nil {
		return nil, err
	}

	out = append(out, TokenStart)
	out = e.encodeText(nextRole.String(), out)

	return out, nil
}

func (e *Encoding) renderConversation(conv Conversation, opts *RenderOptions, out []uint32) ([]uint32, error) {
	o := DefaultRenderOptions()
	if opts != nil {
		o = *opts
	}

	dropBefore := -1
	if o.AutoDropAnalysis {
		dropBefore = lastFinalIndex(conv.Messages)
	}

	for i, msg := range conv.Messages {
		if i < dropBefore && msg.Author.Role == RoleAssistant && msg.Channel == ChannelAnalysis {
			continue
		}

		var err error
		out, err = e.renderMessage(msg, out)
		if err != nil {
			return nil, &RenderError{Index: i, Role: msg.Author.Role, Err: err}
		}
	}

	return out, nil
}

// renderMessage appends the tokens of a single message to out.
func (e *Encoding) renderMessage(msg Message, out []uint32) ([]uint32, error) {
	role := msg.Author.Role
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if len(msg.Content) == 0 {
		return nil, ErrEmptyContent
	}

	out = append(out, TokenStart)

	// Tool messages are headed by the tool name instead of the role.
	switch {
	case role == RoleTool:
		if msg.Author.Name == "" {
			return nil, ErrMissingToolName
		}
		out = e.encodeText(msg.Author.Name, out)
	case msg.Author.Name != "":
		out = e.encodeText(role.String()+":"+msg.Author.Name, out)
	default:
		out = e.encodeText(role.String(), out)
	}

	if msg.Channel != "" {
		out = append(out, TokenChannel)
		out = e.encodeText(msg.Channel, out)
	}

	if msg.Recipient != "" && msg.Recipient != "all" {
		out = e.encodeText(" to="+msg.Recipient, out)
	}

	if msg.ContentType != "" {
		out = e.renderContentType(msg.ContentType, out)
	}

	out = append(out, TokenMessage)
	out = e.encodeText(msg.Text(), out)

	// Assistant messages addressed to a tool end with a call.
	if role == RoleAssistant && msg.Recipient != "" && msg.Recipient != "all" {
		out = append(out, TokenCall)
	} else {
		out = append(out, TokenEnd)
	}

	return out, nil
}

// renderContentType writes " <content-type>", keeping a leading
// <|constrain|> marker as its special token.
func (e *Encoding) renderContentType(contentType string, out []uint32) []uint32 {
	const constrain = "<|constrain|>"

	if rest, ok := strings.CutPrefix(contentType, constrain); ok {
		out = e.encodeText(" ", out)
		out = append(out, TokenConstrain)
		return e.encodeText(rest, out)
	}
	return e.encodeText(" "+contentType, out)
}

// lastFinalIndex returns the index of the last final-channel assistant
// message, or -1.
func lastFinalIndex(messages []Message) int {
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if m.Author.Role == RoleAssistant && m.Channel == ChannelFinal {
			return i
		}
	}
	return -1
}

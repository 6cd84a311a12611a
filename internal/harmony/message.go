package harmony

// ContentType classifies a piece of message content.
type ContentType string

// ContentText is plain text content.
const ContentText ContentType = "text"

// Author describes who wrote a message.
type Author struct {
	// Role of the author.
	Role Role

	// Name is optional for most roles. Tool messages carry the tool name
	// (e.g. "functions.get_weather") here.
	Name string
}

// Content is a single piece of message content.
type Content struct {
	Type ContentType
	Text string
}

// Message is a single turn of a conversation.
type Message struct {
	Author  Author
	Content []Content

	// Channel routes assistant output ("analysis", "commentary", "final").
	Channel string

	// Recipient addresses a tool ("functions.get_weather"). Empty or "all"
	// means no recipient.
	Recipient string

	// ContentType describes the payload format ("json", "<|constrain|>json").
	ContentType string
}

// NewMessage creates a message with a single text content.
func NewMessage(role Role, text string) Message {
	return Message{
		Author:  Author{Role: role},
		Content: []Content{{Type: ContentText, Text: text}},
	}
}

// WithChannel returns a copy of m routed to the given channel.
func (m Message) WithChannel(channel string) Message {
	m.Channel = channel
	return m
}

// WithRecipient returns a copy of m addressed to recipient.
func (m Message) WithRecipient(recipient string) Message {
	m.Recipient = recipient
	return m
}

// Text returns the concatenated text of all content items.
func (m Message) Text() string {
	if len(m.Content) == 1 {
		return m.Content[0].Text
	}
	var n int
	for _, c := range m.Content {
		n += len(c.Text)
	}
	buf := make([]byte, 0, n)
	for _, c := range m.Content {
		buf = append(buf, c.Text...)
	}
	return string(buf)
}

// Conversation is an ordered sequence of messages.
type Conversation struct {
	Messages []Message
}

// NewConversation creates a conversation from messages in order.
func NewConversation(messages ...Message) Conversation {
	return Conversation{Messages: messages}
}

// Len returns the number of messages.
func (c Conversation) Len() int {
	return len(c.Messages)
}

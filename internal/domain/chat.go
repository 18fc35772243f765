package domain

// ChatSender identifies who authored a chat message.
type ChatSender string

const (
	ChatSenderUser ChatSender = "USER"
	ChatSenderAI   ChatSender = "AI"
)

// ChatMessage is one turn in a product advisory conversation.
type ChatMessage struct {
	Sender ChatSender `json:"sender"`
	Text   string     `json:"text"`
}

package models

// Chat is the broadcast channel created with the signal flag.
type Chat struct {
	ID     string `json:"_id"`
	Signal bool   `json:"signal"`
}

// ChatAttachment references a file shared alongside a signal message.
type ChatAttachment struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// ChatMessage is a single message in the signal channel.
type ChatMessage struct {
	ID        string          `json:"_id"`
	ChatID    string          `json:"chatId"`
	Content   string          `json:"content"`
	File      *ChatAttachment `json:"file,omitempty"`
	Sender    string          `json:"sender"`
	CreatedAt string          `json:"createdAt"`
}

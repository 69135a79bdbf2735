package chat

import (
	"strings"
	"time"
)

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAdmin Sender = "admin"
)

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageFile  MessageType = "file"
)

const timestampLayout = "15:04"

type Message struct {
	Sender    Sender      `json:"sender"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	Timestamp string      `json:"timestamp"`
	FileName  string      `json:"fileName,omitempty"`
}

type Chat struct {
	ID          string    `json:"id"`
	UserName    string    `json:"userName"`
	UserAvatar  string    `json:"userAvatar"`
	Messages    []Message `json:"messages"`
	UnreadCount int       `json:"unreadCount"`
}

func (c Chat) Clone() Chat {
	cp := c
	cp.Messages = append([]Message(nil), c.Messages...)
	return cp
}

// LastMessage returns the preview shown in the chat list.
func (c Chat) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// Preview is the text for the chat list: the content of text messages, the
// file name for attachments.
func (m Message) Preview() string {
	if m.Type == MessageText {
		return m.Content
	}
	return "Archivo: " + m.FileName
}

// attachmentType classifies an upload by the major part of its MIME type.
func attachmentType(mimeType string) MessageType {
	major, _, _ := strings.Cut(mimeType, "/")
	if major == "image" {
		return MessageImage
	}
	return MessageFile
}

func stamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// Seed returns the conversations the dashboard opens with.
func Seed() []Chat {
	return []Chat{
		{
			ID:          "chat-1",
			UserName:    "Juan Perez",
			UserAvatar:  "https://avatar.vercel.sh/juan.png",
			UnreadCount: 2,
			Messages: []Message{
				{Sender: SenderUser, Type: MessageText, Content: "Hola, ¿sigue disponible el Smartphone X-Pro?", Timestamp: "10:45 AM"},
				{Sender: SenderAdmin, Type: MessageText, Content: "Hola Juan, sí, todavía tenemos stock. ¿Te gustaría que te ayude con algo más?", Timestamp: "10:46 AM"},
				{Sender: SenderUser, Type: MessageText, Content: "Genial. ¿El envío es gratuito?", Timestamp: "10:47 AM"},
				{Sender: SenderUser, Type: MessageText, Content: "Y viene con cargador?", Timestamp: "10:47 AM"},
			},
		},
		{
			ID:          "chat-2",
			UserName:    "Maria Rodriguez",
			UserAvatar:  "https://avatar.vercel.sh/maria.png",
			UnreadCount: 0,
			Messages: []Message{
				{Sender: SenderAdmin, Type: MessageText, Content: "Hola Maria, el envío demora 48hs hábiles.", Timestamp: "Ayer"},
				{Sender: SenderUser, Type: MessageText, Content: "Perfecto, ya mismo realizo la compra.", Timestamp: "Ayer"},
			},
		},
	}
}

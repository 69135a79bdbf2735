package chat

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/frahmantamala/marketplace-storefront/internal"
)

// Service is the admin inbox. It lives in memory only; a restart brings
// back the seeded conversations.
type Service struct {
	mu     sync.RWMutex
	chats  []Chat
	now    func() time.Time
	logger *slog.Logger
}

func NewService(logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		chats:  Seed(),
		now:    now,
		logger: logger,
	}
}

func (s *Service) List() []Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Chat, len(s.chats))
	for i, c := range s.chats {
		out[i] = c.Clone()
	}
	return out
}

func (s *Service) Get(chatID string) (Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.find(chatID); i >= 0 {
		return s.chats[i].Clone(), nil
	}
	return Chat{}, internal.ErrChatNotFound
}

// SendText appends an admin reply. Blank messages are ignored.
func (s *Service) SendText(chatID, content string) (Chat, error) {
	if strings.TrimSpace(content) == "" {
		return s.Get(chatID)
	}
	return s.append(chatID, Message{
		Sender:  SenderAdmin,
		Type:    MessageText,
		Content: content,
	})
}

// SendAttachment appends an uploaded file; image MIME types render inline.
func (s *Service) SendAttachment(chatID, fileName, mimeType, content string) (Chat, error) {
	return s.append(chatID, Message{
		Sender:   SenderAdmin,
		Type:     attachmentType(mimeType),
		Content:  content,
		FileName: fileName,
	})
}

func (s *Service) MarkRead(chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(chatID)
	if i < 0 {
		return internal.ErrChatNotFound
	}
	s.chats[i].UnreadCount = 0
	return nil
}

// Delete removes a conversation; unknown ids are ignored.
func (s *Service) Delete(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(chatID)
	if i < 0 {
		return
	}
	s.chats = append(s.chats[:i:i], s.chats[i+1:]...)
	s.logger.Info("chat deleted", "chat_id", chatID)
}

func (s *Service) append(chatID string, msg Message) (Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(chatID)
	if i < 0 {
		return Chat{}, internal.ErrChatNotFound
	}
	msg.Timestamp = stamp(s.now())
	s.chats[i].Messages = append(s.chats[i].Messages, msg)
	return s.chats[i].Clone(), nil
}

func (s *Service) find(chatID string) int {
	for i := range s.chats {
		if s.chats[i].ID == chatID {
			return i
		}
	}
	return -1
}

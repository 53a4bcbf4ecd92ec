// Package conversation keeps the bounded chat history fed to the model.
package conversation

import (
	"strings"
	"sync"

	"raind/pkg/types"
)

// DefaultMaxLength is the number of messages retained when no cap is given.
const DefaultMaxLength = 20

// Store is an ordered message log capped at a fixed length. When an append
// pushes it over the cap the oldest messages are dropped.
type Store struct {
	mu       sync.Mutex
	max      int
	messages []types.ConversationMessage
}

// New returns an empty store. maxLen <= 0 selects DefaultMaxLength.
func New(maxLen int) *Store {
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}
	return &Store{max: maxLen}
}

// MaxLength returns the cap.
func (s *Store) MaxLength() int { return s.max }

// Append adds a message and trims the oldest entries past the cap.
func (s *Store) Append(role types.Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, types.ConversationMessage{Role: role, Content: content})
	if over := len(s.messages) - s.max; over > 0 {
		// copy down so the backing array doesn't grow without bound
		n := copy(s.messages, s.messages[over:])
		clear(s.messages[n:])
		s.messages = s.messages[:n]
	}
}

// Messages returns a copy of the history, oldest first.
func (s *Store) Messages() []types.ConversationMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.ConversationMessage(nil), s.messages...)
}

// Len returns the number of stored messages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Clear drops every message.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// BuildPrompt renders the history in ChatML and leaves an open assistant turn.
func (s *Store) BuildPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FormatChatML(s.messages)
}

// FormatChatML renders user and assistant turns followed by "<|im_start|>assistant\n".
// Turns with any other role are skipped.
func FormatChatML(msgs []types.ConversationMessage) string {
	var b strings.Builder
	for _, m := range msgs {
		switch m.Role {
		case types.RoleUser, types.RoleAssistant:
			b.WriteString("<|im_start|>")
			b.WriteString(string(m.Role))
			b.WriteString("\n")
			b.WriteString(m.Content)
			b.WriteString("<|im_end|>\n")
		}
	}
	b.WriteString("<|im_start|>assistant\n")
	return b.String()
}

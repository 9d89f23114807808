package services

import (
	"sync"
	"time"

	"portfolio/models"
)

// Conversation is one visitor's transcript. It starts with the system
// turn and only ever grows, in user/assistant pairs.
type Conversation struct {
	// submitMu serializes submissions so each user turn is followed by its
	// own reply before the next user turn is appended.
	submitMu sync.Mutex

	mu         sync.RWMutex
	turns      []models.ConversationTurn
	createdAt  time.Time
	lastActive time.Time
}

// NewConversation seeds a transcript with the system turn
func NewConversation(systemPrompt string) *Conversation {
	now := time.Now()
	return &Conversation{
		turns: []models.ConversationTurn{
			{Role: models.RoleSystem, Content: systemPrompt},
		},
		createdAt:  now,
		lastActive: now,
	}
}

// Turns returns a snapshot of the transcript
func (c *Conversation) Turns() []models.ConversationTurn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.ConversationTurn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns, including the system turn
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.turns)
}

// LastActive returns when the transcript last changed
func (c *Conversation) LastActive() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastActive
}

func (c *Conversation) append(turn models.ConversationTurn) []models.ConversationTurn {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, turn)
	c.lastActive = time.Now()
	out := make([]models.ConversationTurn, len(c.turns))
	copy(out, c.turns)
	return out
}

package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"portfolio/metrics"
	"portfolio/models"

	"go.uber.org/zap"
)

const (
	// DefaultSystemPrompt seeds every conversation
	DefaultSystemPrompt = "You are a friendly assistant on a personal portfolio website. " +
		"Answer questions about the site owner's skills, projects, experience and how to get in touch. " +
		"Keep answers short and suggest the relevant page section when it helps."

	// DefaultFallbackMessage is shown when the completion endpoint fails
	DefaultFallbackMessage = "Sorry, the assistant is temporarily unavailable. Please try again later."
)

// Reply is the outcome of one submission
type Reply struct {
	// Turn is the assistant turn to display. On failure it carries the
	// fallback text and is not part of the transcript.
	Turn models.ConversationTurn
	// History is the transcript after the submission.
	History []models.ConversationTurn
	Failed  bool
	Err     error
}

// ChatbotConfig configures a Chatbot
type ChatbotConfig struct {
	Preferred       models.LLMProvider
	SystemPrompt    string
	FallbackMessage string
	Logger          *zap.Logger
}

// Chatbot forwards transcripts to the selected completion provider
type Chatbot struct {
	startTime         time.Time
	completers        map[models.LLMProvider]Completer
	mu                sync.RWMutex
	currentProvider   models.LLMProvider
	preferredProvider models.LLMProvider
	systemPrompt      string
	fallback          string
	logger            *zap.Logger
}

// NewChatbot creates a chatbot, picking the preferred provider when it is
// available and otherwise falling back (local and chatgpt to each other,
// then dummy). A dummy completer is always registered.
func NewChatbot(ctx context.Context, cfg ChatbotConfig, completers ...Completer) *Chatbot {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.FallbackMessage == "" {
		cfg.FallbackMessage = DefaultFallbackMessage
	}
	if cfg.Preferred == "" {
		cfg.Preferred = models.ProviderAuto
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	byName := map[models.LLMProvider]Completer{
		models.ProviderDummy: NewDummyCompleter(),
	}
	for _, c := range completers {
		byName[models.LLMProvider(c.Name())] = c
	}

	b := &Chatbot{
		startTime:         time.Now(),
		completers:        byName,
		preferredProvider: cfg.Preferred,
		systemPrompt:      cfg.SystemPrompt,
		fallback:          cfg.FallbackMessage,
		logger:            cfg.Logger,
	}
	b.currentProvider = b.selectProvider(ctx)

	b.logger.Info("chatbot initialized",
		zap.String("provider", string(b.currentProvider)),
		zap.String("preferred", string(b.preferredProvider)),
	)
	return b
}

// selectProvider resolves the preference against what is reachable
func (b *Chatbot) selectProvider(ctx context.Context) models.LLMProvider {
	var order []models.LLMProvider
	switch b.preferredProvider {
	case models.ProviderChatGPT:
		order = []models.LLMProvider{models.ProviderChatGPT, models.ProviderLocal}
	case models.ProviderLocal:
		order = []models.LLMProvider{models.ProviderLocal, models.ProviderChatGPT}
	case models.ProviderDummy:
		order = nil
	default:
		// Auto-detect best available (prefer local, then ChatGPT)
		order = []models.LLMProvider{models.ProviderLocal, models.ProviderChatGPT}
	}

	for _, p := range order {
		c, ok := b.completers[p]
		if !ok {
			continue
		}
		if c.Available(ctx) {
			return p
		}
		b.logger.Info("completion provider not available", zap.String("provider", string(p)))
	}
	return models.ProviderDummy
}

// RefreshProviders re-checks availability and updates the current provider
func (b *Chatbot) RefreshProviders(ctx context.Context) models.LLMProvider {
	provider := b.selectProvider(ctx)

	b.mu.Lock()
	b.currentProvider = provider
	b.mu.Unlock()

	b.logger.Info("provider refreshed", zap.String("provider", string(provider)))
	return provider
}

// NewConversation starts a transcript seeded with the system turn
func (b *Chatbot) NewConversation() *Conversation {
	return NewConversation(b.systemPrompt)
}

// Submit appends the user's message to conv, sends the whole transcript to
// the completion endpoint and appends the reply. A blank message is
// ignored and reported with ok=false. When the call fails the visitor sees
// the fallback message but only the user turn stays in the transcript.
func (b *Chatbot) Submit(ctx context.Context, conv *Conversation, text string) (reply Reply, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, false
	}

	conv.submitMu.Lock()
	defer conv.submitMu.Unlock()
	return b.submitLocked(ctx, conv, text), true
}

// TrySubmit is Submit for callers that must not queue behind another
// submission on the same conversation. It returns ErrSubmitInFlight
// instead of waiting.
func (b *Chatbot) TrySubmit(ctx context.Context, conv *Conversation, text string) (Reply, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, false, nil
	}

	if !conv.submitMu.TryLock() {
		return Reply{}, false, ErrSubmitInFlight
	}
	defer conv.submitMu.Unlock()
	return b.submitLocked(ctx, conv, text), true, nil
}

// submitLocked runs one request/response exchange; conv.submitMu must be held.
func (b *Chatbot) submitLocked(ctx context.Context, conv *Conversation, text string) Reply {
	history := conv.append(models.ConversationTurn{Role: models.RoleUser, Content: text})

	completer := b.completers[b.GetCurrentProvider()]
	start := time.Now()
	content, err := completer.Complete(ctx, history)
	elapsed := time.Since(start)

	if err != nil {
		metrics.ObserveCompletion(completer.Name(), metrics.OutcomeFailure, elapsed)
		b.logger.Warn("completion failed, showing fallback",
			zap.String("provider", completer.Name()),
			zap.Int("turns", len(history)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return Reply{
			Turn:    models.ConversationTurn{Role: models.RoleAssistant, Content: b.fallback},
			History: history,
			Failed:  true,
			Err:     err,
		}
	}

	metrics.ObserveCompletion(completer.Name(), metrics.OutcomeSuccess, elapsed)
	turn := models.ConversationTurn{Role: models.RoleAssistant, Content: content}
	history = conv.append(turn)

	b.logger.Debug("completion succeeded",
		zap.String("provider", completer.Name()),
		zap.Int("turns", len(history)),
		zap.Duration("elapsed", elapsed),
	)
	return Reply{Turn: turn, History: history}
}

// FallbackMessage returns the text shown when a completion fails
func (b *Chatbot) FallbackMessage() string {
	return b.fallback
}

// GetCurrentProvider returns the currently active provider
func (b *Chatbot) GetCurrentProvider() models.LLMProvider {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.currentProvider
}

// GetStatus returns the current status of the chatbot
func (b *Chatbot) GetStatus() map[string]interface{} {
	providers := map[string]interface{}{}
	for name, c := range b.completers {
		if s, ok := c.(interface{ GetStatus() map[string]interface{} }); ok {
			providers[string(name)] = s.GetStatus()
		} else {
			providers[string(name)] = map[string]interface{}{"status": "available"}
		}
	}

	return map[string]interface{}{
		"status":             "active",
		"uptime":             time.Since(b.startTime).String(),
		"current_provider":   string(b.GetCurrentProvider()),
		"preferred_provider": string(b.preferredProvider),
		"providers":          providers,
	}
}

// DummyCompleter answers from canned text when no model is reachable
type DummyCompleter struct{}

// NewDummyCompleter creates the offline backend
func NewDummyCompleter() *DummyCompleter {
	return &DummyCompleter{}
}

// Name implements Completer
func (d *DummyCompleter) Name() string { return string(models.ProviderDummy) }

// Available implements Completer
func (d *DummyCompleter) Available(context.Context) bool { return true }

// Complete implements Completer by answering the last user turn
func (d *DummyCompleter) Complete(_ context.Context, turns []models.ConversationTurn) (string, error) {
	var message string
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == models.RoleUser {
			message = turns[i].Content
			break
		}
	}
	return dummyResponse(message), nil
}

// dummyResponse creates a canned reply based on the user message
func dummyResponse(message string) string {
	message = strings.ToLower(message)

	switch {
	case containsAny(message, "hello", "hi", "hey"):
		greetings := []string{
			"Hello! Ask me anything about the projects or skills on this page.",
			"Hi there! I can point you to the right section of the portfolio.",
			"Hey! The assistant is running in offline mode, but I can still help you find things.",
		}
		return greetings[rand.Intn(len(greetings))]
	case containsAny(message, "skill", "stack", "language"):
		return "Take a look at the Skills section for the languages and tools used day to day."
	case containsAny(message, "project", "portfolio", "built"):
		return "The Projects section lists recent work with short descriptions."
	case containsAny(message, "contact", "email", "hire", "reach"):
		return "You can find email and social links in the Contact section."
	case containsAny(message, "experience", "job", "work"):
		return "The Experience section covers previous roles and freelance work."
	}

	return fmt.Sprintf("I received: %q. The assistant is running in offline mode right now.", message)
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

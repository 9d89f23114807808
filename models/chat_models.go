package models

// Role tags the speaker of a conversation turn
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn represents a single message in a conversation
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents an incoming chat request
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// ChatResponse represents the reply shown to the visitor.
// Status is "success" or "fallback" when the completion endpoint failed.
type ChatResponse struct {
	BaseResponse
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	HTML      string `json:"html,omitempty"`
}

// HistoryResponse lists a session's transcript
type HistoryResponse struct {
	BaseResponse
	SessionID string             `json:"session_id"`
	Turns     []ConversationTurn `json:"turns"`
}

// LLMProvider represents the type of LLM provider
type LLMProvider string

const (
	ProviderAuto    LLMProvider = "auto"
	ProviderLocal   LLMProvider = "local"
	ProviderChatGPT LLMProvider = "chatgpt"
	ProviderDummy   LLMProvider = "dummy"
)

package ai

import (
	"chat-powered-ecommerce/backend/internal/models"
)

// Turn is a single role-tagged unit of text within a context window
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Roles understood by the completion service
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultSystemPrompt is the guidance used when no prompt is configured.
// Going without a system turn would change the assistant's register, so a
// missing prompt degrades to this default instead of failing the request.
const DefaultSystemPrompt = "You are a helpful assistant."

// DefaultHistoryDepth is the number of prior messages included per window
const DefaultHistoryDepth = 3

// BuildWindow assembles the context window for one completion call: a system
// turn, the prior messages in chronological order, then the new user turn.
//
// history must be ordered oldest first. Each prior message contributes its
// user turn and, when a response is present, an assistant turn; a nil or
// blank response never produces an assistant turn. For K prior messages the
// window therefore holds at most 2K+2 turns.
func BuildWindow(systemPrompt string, history []models.ChatMessage, userText string) []Turn {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	turns := make([]Turn, 0, 2*len(history)+2)
	turns = append(turns, Turn{Role: RoleSystem, Content: systemPrompt})

	for _, msg := range history {
		turns = append(turns, Turn{Role: RoleUser, Content: msg.Message})
		if msg.Response != nil && *msg.Response != "" {
			turns = append(turns, Turn{Role: RoleAssistant, Content: *msg.Response})
		}
	}

	turns = append(turns, Turn{Role: RoleUser, Content: userText})
	return turns
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chat-powered-ecommerce/backend/ai"
	"chat-powered-ecommerce/backend/internal/models"
	"chat-powered-ecommerce/backend/internal/repository"
	"chat-powered-ecommerce/backend/pkg/logger"
)

var (
	// ErrEmptyMessage is returned when the submitted message text is blank
	ErrEmptyMessage = errors.New("message text must not be blank")
	// ErrNoConversation is returned when a user has never chatted
	ErrNoConversation = errors.New("no conversation found for user")
	// ErrGenerationFailed wraps a completion-service failure; no message row
	// exists for the attempt.
	ErrGenerationFailed = errors.New("response generation failed")
)

// CompletionClient is the surface of the external text completion service
type CompletionClient interface {
	Complete(ctx context.Context, turns []ai.Turn) (string, error)
}

// ChatConfig tunes context assembly for the chat service
type ChatConfig struct {
	// HistoryDepth is the number of prior messages per context window
	HistoryDepth int
	// SystemPrompt overrides the default guidance turn when non-empty
	SystemPrompt string
}

// ChatResult is the outcome of one successful send-receive-persist cycle
type ChatResult struct {
	Message   string `json:"message"`
	Response  string `json:"response"`
	SessionID *uint  `json:"session_id,omitempty"`
}

// ChatService drives the full chat cycle: resolve the open session, assemble
// the context window, call the completion service, persist the exchange.
type ChatService struct {
	messages   repository.MessageRepository
	sessions   *SessionService
	completion CompletionClient
	config     ChatConfig
	log        *logger.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	messages repository.MessageRepository,
	sessions *SessionService,
	completion CompletionClient,
	config ChatConfig,
	log *logger.Logger,
) *ChatService {
	if config.HistoryDepth <= 0 {
		config.HistoryDepth = ai.DefaultHistoryDepth
	}
	if log == nil {
		log = logger.GetGlobal()
	}
	return &ChatService{
		messages:   messages,
		sessions:   sessions,
		completion: completion,
		config:     config,
		log:        log,
	}
}

// SendMessage runs one exchange for the user. The message row is written only
// after generation succeeds, as a single insert carrying both the user text
// and the response; a failed generation leaves no row behind.
func (s *ChatService) SendMessage(ctx context.Context, userID uint, text string) (*ChatResult, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}

	// A missing open session is accepted; the message is stored orphaned.
	var sessionID *uint
	session, err := s.sessions.GetOpen(userID)
	switch {
	case err == nil:
		sessionID = &session.ID
	case errors.Is(err, repository.ErrNoOpenSession):
		s.log.Debug("sending message with no open session", "user_id", userID)
	default:
		return nil, err
	}

	window, err := s.buildContext(userID, text)
	if err != nil {
		return nil, err
	}

	response, err := s.completion.Complete(ctx, window)
	if err != nil {
		s.log.Warn("completion call failed",
			"user_id", userID,
			"error", err.Error(),
		)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	message := &models.ChatMessage{
		UserID:    userID,
		SessionID: sessionID,
		Message:   text,
		Response:  &response,
		Timestamp: time.Now(),
	}
	if err := s.messages.Create(message); err != nil {
		return nil, err
	}

	return &ChatResult{
		Message:   message.Message,
		Response:  response,
		SessionID: sessionID,
	}, nil
}

// buildContext fetches the most recent history and assembles the window sent
// to the completion service.
func (s *ChatService) buildContext(userID uint, text string) ([]ai.Turn, error) {
	recent, err := s.messages.RecentByUser(userID, s.config.HistoryDepth)
	if err != nil {
		return nil, err
	}

	// RecentByUser returns newest first; the window needs chronological order.
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}

	return ai.BuildWindow(s.config.SystemPrompt, recent, text), nil
}

// LastConversation reconstructs the transcript of the user's most recent
// session for display after reconnection. The transcript covers exactly one
// session: the one the newest message belongs to, including the orphaned
// group when that message has no session.
func (s *ChatService) LastConversation(userID uint) (*models.Conversation, error) {
	latest, err := s.messages.LatestByUser(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNoMessages) {
			return nil, ErrNoConversation
		}
		return nil, err
	}

	history, err := s.messages.BySession(userID, latest.SessionID)
	if err != nil {
		return nil, err
	}

	turns := make([]models.TranscriptTurn, 0, 2*len(history))
	for _, msg := range history {
		turns = append(turns, models.TranscriptTurn{Sender: "user", Text: msg.Message})
		if msg.Response != nil && *msg.Response != "" {
			turns = append(turns, models.TranscriptTurn{Sender: "bot", Text: *msg.Response})
		}
	}

	return &models.Conversation{
		SessionID: latest.SessionID,
		Turns:     turns,
	}, nil
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"chat-powered-ecommerce/backend/ai"
	"chat-powered-ecommerce/backend/internal/models"
	"chat-powered-ecommerce/backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeCompletion records the window it was called with and returns a canned
// reply or error.
type fakeCompletion struct {
	reply string
	err   error
	turns []ai.Turn
	calls int
}

func (f *fakeCompletion) Complete(_ context.Context, turns []ai.Turn) (string, error) {
	f.calls++
	f.turns = turns
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type chatFixture struct {
	db       *gorm.DB
	sessions *SessionService
	fake     *fakeCompletion
	svc      *ChatService
}

func newChatFixture(t *testing.T, config ChatConfig) *chatFixture {
	t.Helper()
	db := testDB(t)
	log := testLogger()
	sessions := NewSessionService(repository.NewGormSessionRepository(db), log)
	fake := &fakeCompletion{reply: "generated reply"}
	svc := NewChatService(repository.NewGormMessageRepository(db), sessions, fake, config, log)
	return &chatFixture{db: db, sessions: sessions, fake: fake, svc: svc}
}

func (f *chatFixture) seedMessage(t *testing.T, userID uint, sessionID *uint, text, response string, ts time.Time) {
	t.Helper()
	msg := &models.ChatMessage{UserID: userID, SessionID: sessionID, Message: text, Timestamp: ts}
	if response != "" {
		msg.Response = &response
	}
	require.NoError(t, f.db.Create(msg).Error)
}

func TestSendMessageRejectsEmptyText(t *testing.T) {
	f := newChatFixture(t, ChatConfig{})

	_, err := f.svc.SendMessage(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Zero(t, f.fake.calls)
}

func TestSendMessageWithOpenSession(t *testing.T) {
	f := newChatFixture(t, ChatConfig{})

	session, err := f.sessions.Open(1)
	require.NoError(t, err)

	result, err := f.svc.SendMessage(context.Background(), 1, "what do you sell?")
	require.NoError(t, err)
	assert.Equal(t, "what do you sell?", result.Message)
	assert.Equal(t, "generated reply", result.Response)
	require.NotNil(t, result.SessionID)
	assert.Equal(t, session.ID, *result.SessionID)

	// One row holds both sides of the exchange.
	var rows []models.ChatMessage
	require.NoError(t, f.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "what do you sell?", rows[0].Message)
	require.NotNil(t, rows[0].Response)
	assert.Equal(t, "generated reply", *rows[0].Response)
	require.NotNil(t, rows[0].SessionID)
	assert.Equal(t, session.ID, *rows[0].SessionID)
}

func TestSendMessageWithoutSessionStoresOrphan(t *testing.T) {
	f := newChatFixture(t, ChatConfig{})

	result, err := f.svc.SendMessage(context.Background(), 1, "hello")
	require.NoError(t, err)
	assert.Nil(t, result.SessionID)

	var row models.ChatMessage
	require.NoError(t, f.db.First(&row).Error)
	assert.Nil(t, row.SessionID)
}

func TestSendMessageBuildsWindowFromRecentHistory(t *testing.T) {
	f := newChatFixture(t, ChatConfig{HistoryDepth: 3})

	base := time.Now().Add(-time.Hour)
	f.seedMessage(t, 1, nil, "first", "r1", base)
	f.seedMessage(t, 1, nil, "second", "r2", base.Add(time.Minute))
	f.seedMessage(t, 1, nil, "third", "r3", base.Add(2*time.Minute))
	f.seedMessage(t, 1, nil, "fourth", "r4", base.Add(3*time.Minute))
	f.seedMessage(t, 2, nil, "someone else", "r", base.Add(4*time.Minute))

	_, err := f.svc.SendMessage(context.Background(), 1, "fifth")
	require.NoError(t, err)

	// Only the newest three prior messages appear, oldest first, capped at
	// 2*3+2 turns.
	expected := []ai.Turn{
		{Role: ai.RoleSystem, Content: ai.DefaultSystemPrompt},
		{Role: ai.RoleUser, Content: "second"},
		{Role: ai.RoleAssistant, Content: "r2"},
		{Role: ai.RoleUser, Content: "third"},
		{Role: ai.RoleAssistant, Content: "r3"},
		{Role: ai.RoleUser, Content: "fourth"},
		{Role: ai.RoleAssistant, Content: "r4"},
		{Role: ai.RoleUser, Content: "fifth"},
	}
	assert.Equal(t, expected, f.fake.turns)
}

func TestSendMessageUsesConfiguredSystemPrompt(t *testing.T) {
	f := newChatFixture(t, ChatConfig{SystemPrompt: "You are a shop assistant."})

	_, err := f.svc.SendMessage(context.Background(), 1, "hi")
	require.NoError(t, err)

	require.NotEmpty(t, f.fake.turns)
	assert.Equal(t, ai.Turn{Role: ai.RoleSystem, Content: "You are a shop assistant."}, f.fake.turns[0])
}

func TestSendMessageGenerationFailureLeavesNoRow(t *testing.T) {
	f := newChatFixture(t, ChatConfig{})
	f.fake.err = errors.New("upstream timeout")

	_, err := f.svc.SendMessage(context.Background(), 1, "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)

	// A single failure is surfaced directly, with no retry.
	assert.Equal(t, 1, f.fake.calls)

	var count int64
	require.NoError(t, f.db.Model(&models.ChatMessage{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLastConversationNoHistory(t *testing.T) {
	f := newChatFixture(t, ChatConfig{})

	_, err := f.svc.LastConversation(1)
	assert.ErrorIs(t, err, ErrNoConversation)
}

func TestLastConversationCoversOneSession(t *testing.T) {
	f := newChatFixture(t, ChatConfig{})

	oldSession := uint(10)
	newSession := uint(11)
	base := time.Now().Add(-time.Hour)
	f.seedMessage(t, 1, &oldSession, "old question", "old answer", base)
	f.seedMessage(t, 1, &newSession, "new question", "new answer", base.Add(time.Minute))
	f.seedMessage(t, 1, &newSession, "followup", "followup answer", base.Add(2*time.Minute))

	conv, err := f.svc.LastConversation(1)
	require.NoError(t, err)
	require.NotNil(t, conv.SessionID)
	assert.Equal(t, newSession, *conv.SessionID)

	expected := []models.TranscriptTurn{
		{Sender: "user", Text: "new question"},
		{Sender: "bot", Text: "new answer"},
		{Sender: "user", Text: "followup"},
		{Sender: "bot", Text: "followup answer"},
	}
	assert.Equal(t, expected, conv.Turns)
}

func TestLastConversationOrphanedGroup(t *testing.T) {
	f := newChatFixture(t, ChatConfig{})

	session := uint(10)
	base := time.Now().Add(-time.Hour)
	f.seedMessage(t, 1, &session, "in session", "answer", base)
	f.seedMessage(t, 1, nil, "orphan question", "orphan answer", base.Add(time.Minute))

	// The newest message has no session, so the transcript is the orphaned
	// group, not the session's.
	conv, err := f.svc.LastConversation(1)
	require.NoError(t, err)
	assert.Nil(t, conv.SessionID)
	assert.Equal(t, []models.TranscriptTurn{
		{Sender: "user", Text: "orphan question"},
		{Sender: "bot", Text: "orphan answer"},
	}, conv.Turns)
}

func TestLastConversationSkipsMissingResponses(t *testing.T) {
	f := newChatFixture(t, ChatConfig{})

	session := uint(10)
	base := time.Now().Add(-time.Hour)
	f.seedMessage(t, 1, &session, "answered", "the answer", base)
	f.seedMessage(t, 1, &session, "never answered", "", base.Add(time.Minute))

	conv, err := f.svc.LastConversation(1)
	require.NoError(t, err)
	assert.Equal(t, []models.TranscriptTurn{
		{Sender: "user", Text: "answered"},
		{Sender: "bot", Text: "the answer"},
		{Sender: "user", Text: "never answered"},
	}, conv.Turns)
}

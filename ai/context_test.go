package ai

import (
	"testing"

	"chat-powered-ecommerce/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildWindowEmptyHistory(t *testing.T) {
	turns := BuildWindow("", nil, "hello")

	require.Len(t, turns, 2)
	assert.Equal(t, Turn{Role: RoleSystem, Content: DefaultSystemPrompt}, turns[0])
	assert.Equal(t, Turn{Role: RoleUser, Content: "hello"}, turns[1])
}

func TestBuildWindowCustomSystemPrompt(t *testing.T) {
	turns := BuildWindow("You sell shoes.", nil, "hi")

	require.Len(t, turns, 2)
	assert.Equal(t, "You sell shoes.", turns[0].Content)
}

func TestBuildWindowFullHistory(t *testing.T) {
	history := []models.ChatMessage{
		{Message: "first", Response: strPtr("first reply")},
		{Message: "second", Response: strPtr("second reply")},
		{Message: "third", Response: strPtr("third reply")},
	}

	turns := BuildWindow("", history, "fourth")

	// 3 prior messages with responses give the maximum window size.
	require.Len(t, turns, 2*len(history)+2)
	assert.Equal(t, RoleSystem, turns[0].Role)

	expected := []Turn{
		{Role: RoleUser, Content: "first"},
		{Role: RoleAssistant, Content: "first reply"},
		{Role: RoleUser, Content: "second"},
		{Role: RoleAssistant, Content: "second reply"},
		{Role: RoleUser, Content: "third"},
		{Role: RoleAssistant, Content: "third reply"},
		{Role: RoleUser, Content: "fourth"},
	}
	assert.Equal(t, expected, turns[1:])
}

func TestBuildWindowSkipsMissingResponses(t *testing.T) {
	history := []models.ChatMessage{
		{Message: "no reply yet", Response: nil},
		{Message: "blank reply", Response: strPtr("")},
		{Message: "answered", Response: strPtr("here")},
	}

	turns := BuildWindow("", history, "next")

	expected := []Turn{
		{Role: RoleSystem, Content: DefaultSystemPrompt},
		{Role: RoleUser, Content: "no reply yet"},
		{Role: RoleUser, Content: "blank reply"},
		{Role: RoleUser, Content: "answered"},
		{Role: RoleAssistant, Content: "here"},
		{Role: RoleUser, Content: "next"},
	}
	assert.Equal(t, expected, turns)
}

package services

import (
	"aihub-backend/models"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply string
	err   error
	got   CompletionRequest
	calls int
}

func (f *fakeCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	f.calls++
	f.got = req
	return f.reply, f.err
}

func chatBot() *models.AIBot {
	return &models.AIBot{
		ID:     "bot-1",
		Name:   "Clinic Helper",
		Status: models.BotStatusActive,
		TrainingData: models.TrainingData{
			BusinessInfo: models.BotBusinessInfo{
				Name:     "Sharma Dental",
				Services: []string{"Cleaning", "Braces"},
				Hours:    "9-5",
			},
			FAQs: []models.FAQ{{Question: "Do you take walk-ins?", Answer: "Yes, before noon."}},
			CustomResponses: []models.CustomResponse{
				{Trigger: "parking", Response: "Free parking is behind the clinic."},
			},
		},
		Configuration: models.BotConfiguration{
			Escalation: models.Escalation{Enabled: true, Keywords: []string{"human", "complaint"}},
		},
		AIModel: models.AIModelSettings{Model: "gpt-4o-mini", Temperature: 0.2},
	}
}

func newChatService(c ChatCompleter) *ChatService {
	cfg := &models.Config{OpenAIModel: "gpt-3.5-turbo", ExternalCallTimeout: time.Second}
	return NewChatService(c, cfg, newQuietLogger())
}

func TestRespondUsesCompletion(t *testing.T) {
	completer := &fakeCompleter{reply: "We open at 9."}
	svc := newChatService(completer)

	reply := svc.Respond(context.Background(), "When do you open?", chatBot(), map[string]string{"channel": "website"})

	assert.Equal(t, "We open at 9.", reply.Response)
	assert.Equal(t, 0.8, reply.Confidence)
	assert.True(t, reply.Resolved)
	assert.False(t, reply.EscalationRequested)
	assert.Equal(t, "gpt-4o-mini", completer.got.Model)
	assert.Equal(t, models.DefaultBotMaxTokens, completer.got.MaxTokens)
	assert.Contains(t, completer.got.SystemPrompt, "channel: website")
}

func TestRespondCustomResponseGoesThroughCompletion(t *testing.T) {
	completer := &fakeCompleter{reply: "Parking is free, right behind the clinic."}
	svc := newChatService(completer)

	reply := svc.Respond(context.Background(), "is there parking?", chatBot(), nil)

	assert.Equal(t, 1, completer.calls)
	assert.Equal(t, "Parking is free, right behind the clinic.", reply.Response)
	assert.Equal(t, 0.8, reply.Confidence)
	assert.True(t, reply.Resolved)
	assert.Contains(t, completer.got.SystemPrompt, `If the customer mentions "parking", reply along the lines of: Free parking is behind the clinic.`)
}

func TestRespondCustomResponseFallsBackWithoutCompleter(t *testing.T) {
	svc := newChatService(nil)

	reply := svc.Respond(context.Background(), "is there parking?", chatBot(), nil)

	assert.Equal(t, "Thanks for your question about Clinic Helper. Our team will follow up shortly.", reply.Response)
	assert.Equal(t, 0.5, reply.Confidence)
	assert.False(t, reply.Resolved)
}

func TestRespondFallback(t *testing.T) {
	tests := []struct {
		name      string
		completer ChatCompleter
	}{
		{"no completer configured", nil},
		{"completion error", &fakeCompleter{err: errors.New("status 429")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newChatService(tc.completer)

			reply := svc.Respond(context.Background(), "I want to talk to a human", chatBot(), nil)

			assert.Equal(t, "Thanks for your question about Clinic Helper. Our team will follow up shortly.", reply.Response)
			assert.Equal(t, 0.5, reply.Confidence)
			assert.False(t, reply.Resolved)
			assert.True(t, reply.EscalationRequested)
			assert.Equal(t, []string{"Would you like to book a demo?", "Can I share our pricing plans?"}, reply.Suggestions)
		})
	}
}

func TestRespondEmptyCompletion(t *testing.T) {
	svc := newChatService(&fakeCompleter{reply: "  "})

	reply := svc.Respond(context.Background(), "hello", chatBot(), nil)

	assert.Equal(t, "I am sorry, I could not generate a response.", reply.Response)
	assert.True(t, reply.Resolved)
}

func TestBuildSystemPromptLimitsFAQs(t *testing.T) {
	bot := chatBot()
	bot.TrainingData.FAQs = nil
	for i := 0; i < 25; i++ {
		bot.TrainingData.FAQs = append(bot.TrainingData.FAQs, models.FAQ{
			Question: fmt.Sprintf("question %d?", i),
			Answer:   fmt.Sprintf("answer %d", i),
		})
	}

	prompt := BuildSystemPrompt(bot, map[string]string{"b": "2", "a": "1"})

	require.True(t, strings.HasPrefix(prompt, "You are an AI customer support assistant for Sharma Dental."))
	assert.Contains(t, prompt, "Services: Cleaning, Braces\n")
	assert.Equal(t, 20, strings.Count(prompt, "Q: "))
	assert.Contains(t, prompt, "Q: question 19?")
	assert.NotContains(t, prompt, "question 20?")
	assert.Less(t, strings.Index(prompt, "a: 1"), strings.Index(prompt, "b: 2"))
}

func TestBuildSystemPromptDefaultName(t *testing.T) {
	prompt := BuildSystemPrompt(&models.AIBot{}, nil)

	assert.Contains(t, prompt, "for a small business.")
	assert.NotContains(t, prompt, "Conversation context")
}

func TestNewCompleterWithoutKey(t *testing.T) {
	assert.Nil(t, NewCompleter(&models.Config{}))
	assert.NotNil(t, NewCompleter(&models.Config{OpenAIAPIKey: "sk-test"}))
}

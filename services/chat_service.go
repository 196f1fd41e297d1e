package services

import (
	"aihub-backend/models"
	"aihub-backend/utils/logger"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	maxPromptFAQs      = 20
	successConfidence  = 0.8
	fallbackConfidence = 0.5
	emptyCompletion    = "I am sorry, I could not generate a response."
)

var fallbackSuggestions = []string{
	"Would you like to book a demo?",
	"Can I share our pricing plans?",
}

// errNoCompleter is returned when no completion API credential is configured
var errNoCompleter = errors.New("chat completion is not configured")

type CompletionRequest struct {
	SystemPrompt string
	Message      string
	Model        string
	Temperature  float32
	MaxTokens    int
}

// ChatCompleter sends a single prompt to an external completion API
type ChatCompleter interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type OpenAICompleter struct {
	client *openai.Client
}

// NewOpenAICompleter returns nil when no API key is configured
func NewOpenAICompleter(cfg *models.Config) *OpenAICompleter {
	if cfg.OpenAIAPIKey == "" {
		return nil
	}
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	return &OpenAICompleter{client: openai.NewClientWithConfig(clientCfg)}
}

// NewCompleter returns the configured ChatCompleter, or a nil interface when no API key is set
func NewCompleter(cfg *models.Config) ChatCompleter {
	if c := NewOpenAICompleter(cfg); c != nil {
		return c
	}
	return nil
}

func (o *OpenAICompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.Message},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatService answers bot chat messages through the completion API with a canned fallback
type ChatService struct {
	completer    ChatCompleter
	defaultModel string
	timeout      time.Duration
	logger       logger.Logger
}

// NewChatService accepts a nil completer, in which case every reply is the fallback
func NewChatService(completer ChatCompleter, cfg *models.Config, logger logger.Logger) *ChatService {
	model := cfg.OpenAIModel
	if model == "" {
		model = models.DefaultBotModel
	}
	return &ChatService{
		completer:    completer,
		defaultModel: model,
		timeout:      cfg.ExternalCallTimeout,
		logger:       logger,
	}
}

// Respond produces a reply for message. It never fails: any completion error yields the fallback reply.
func (s *ChatService) Respond(ctx context.Context, message string, bot *models.AIBot, convContext map[string]string) models.ChatReply {
	escalate := wantsEscalation(message, bot)

	start := time.Now()
	text, err := s.complete(ctx, message, bot, convContext)
	chatDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if !errors.Is(err, errNoCompleter) {
			s.logger.Warnf("Chat completion failed for bot %s: %v", bot.ID, err)
		}
		chatRequests.WithLabelValues("fallback").Inc()
		return fallbackReply(bot, escalate)
	}

	chatRequests.WithLabelValues("completed").Inc()
	if strings.TrimSpace(text) == "" {
		text = emptyCompletion
	}
	return models.ChatReply{
		Response:            text,
		Confidence:          successConfidence,
		Resolved:            true,
		EscalationRequested: escalate,
	}
}

func (s *ChatService) complete(ctx context.Context, message string, bot *models.AIBot, convContext map[string]string) (string, error) {
	if s.completer == nil {
		return "", errNoCompleter
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	model := bot.AIModel.Model
	if model == "" {
		model = s.defaultModel
	}
	maxTokens := bot.AIModel.MaxTokens
	if maxTokens <= 0 {
		maxTokens = models.DefaultBotMaxTokens
	}

	return s.completer.Complete(ctx, CompletionRequest{
		SystemPrompt: BuildSystemPrompt(bot, convContext),
		Message:      message,
		Model:        model,
		Temperature:  float32(bot.AIModel.Temperature),
		MaxTokens:    maxTokens,
	})
}

// BuildSystemPrompt describes the business and lists up to 20 stored FAQ pairs
func BuildSystemPrompt(bot *models.AIBot, convContext map[string]string) string {
	info := bot.TrainingData.BusinessInfo
	name := info.Name
	if name == "" {
		name = "a small business"
	}

	var b strings.Builder
	b.WriteString("You are an AI customer support assistant for " + name + ". Be concise, friendly, and helpful.\n")
	if info.Description != "" {
		b.WriteString(info.Description + "\n")
	}
	if len(info.Services) > 0 {
		b.WriteString("Services: " + strings.Join(info.Services, ", ") + "\n")
	}
	if info.Hours != "" {
		b.WriteString("Hours: " + info.Hours + "\n")
	}
	if info.Location != "" {
		b.WriteString("Location: " + info.Location + "\n")
	}

	b.WriteString("Use the following FAQs when relevant:\n")
	faqs := bot.TrainingData.FAQs
	if len(faqs) > maxPromptFAQs {
		faqs = faqs[:maxPromptFAQs]
	}
	for _, faq := range faqs {
		b.WriteString("Q: " + faq.Question + "\nA: " + faq.Answer + "\n")
	}

	var custom []string
	for _, cr := range bot.TrainingData.CustomResponses {
		trigger := strings.TrimSpace(cr.Trigger)
		if trigger == "" || strings.TrimSpace(cr.Response) == "" {
			continue
		}
		custom = append(custom, "If the customer mentions \""+trigger+"\", reply along the lines of: "+cr.Response+"\n")
	}
	if len(custom) > 0 {
		b.WriteString("Preferred replies:\n")
		for _, line := range custom {
			b.WriteString(line)
		}
	}

	if len(convContext) > 0 {
		keys := make([]string, 0, len(convContext))
		for k := range convContext {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("Conversation context:\n")
		for _, k := range keys {
			b.WriteString(k + ": " + convContext[k] + "\n")
		}
	}
	return b.String()
}

func fallbackReply(bot *models.AIBot, escalate bool) models.ChatReply {
	name := bot.Name
	if name == "" {
		name = "our services"
	}
	return models.ChatReply{
		Response:            "Thanks for your question about " + name + ". Our team will follow up shortly.",
		Confidence:          fallbackConfidence,
		Resolved:            false,
		Suggestions:         append([]string(nil), fallbackSuggestions...),
		EscalationRequested: escalate,
	}
}

func wantsEscalation(message string, bot *models.AIBot) bool {
	esc := bot.Configuration.Escalation
	if !esc.Enabled {
		return false
	}
	lower := strings.ToLower(message)
	for _, kw := range esc.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

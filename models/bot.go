package models

import "time"

type BotStatus string

const (
	BotStatusDraft    BotStatus = "draft"
	BotStatusTraining BotStatus = "training"
	BotStatusActive   BotStatus = "active"
	BotStatusPaused   BotStatus = "paused"
	BotStatusArchived BotStatus = "archived"
)

type BotType string

const (
	BotTypeCustomerSupport BotType = "customer-support"
	BotTypeSales           BotType = "sales"
	BotTypeAppointment     BotType = "appointment"
	BotTypeGeneral         BotType = "general"
	BotTypeCustom          BotType = "custom"
)

const (
	DefaultBotModel       = "gpt-3.5-turbo"
	DefaultBotProvider    = "openai"
	DefaultBotTemperature = 0.7
	DefaultBotMaxTokens   = 150
	DefaultBusinessID     = "demo-business"
	DefaultBotLanguage    = "en"
)

type FAQ struct {
	Question string `json:"question" dynamodbav:"question" validate:"required,max=500"`
	Answer   string `json:"answer" dynamodbav:"answer" validate:"required,max=2000"`
	Category string `json:"category,omitempty" dynamodbav:"category,omitempty" validate:"omitempty,max=100"`
}

type CustomResponse struct {
	Trigger  string `json:"trigger" dynamodbav:"trigger" validate:"required,max=200"`
	Response string `json:"response" dynamodbav:"response" validate:"required,max=2000"`
}

type BotBusinessInfo struct {
	Name        string   `json:"name,omitempty" dynamodbav:"name,omitempty" validate:"omitempty,max=100"`
	Description string   `json:"description,omitempty" dynamodbav:"description,omitempty" validate:"omitempty,max=1000"`
	Services    []string `json:"services,omitempty" dynamodbav:"services,omitempty"`
	Hours       string   `json:"hours,omitempty" dynamodbav:"hours,omitempty"`
	Location    string   `json:"location,omitempty" dynamodbav:"location,omitempty"`
	Contact     string   `json:"contact,omitempty" dynamodbav:"contact,omitempty"`
}

type TrainingData struct {
	FAQs            []FAQ            `json:"faqs" dynamodbav:"faqs" validate:"omitempty,dive"`
	BusinessInfo    BotBusinessInfo  `json:"businessInfo" dynamodbav:"businessInfo"`
	CustomResponses []CustomResponse `json:"customResponses" dynamodbav:"customResponses" validate:"omitempty,dive"`
}

type AutoReply struct {
	Enabled bool   `json:"enabled" dynamodbav:"enabled"`
	Message string `json:"message,omitempty" dynamodbav:"message,omitempty" validate:"omitempty,max=500"`
}

type Escalation struct {
	Enabled  bool     `json:"enabled" dynamodbav:"enabled"`
	Keywords []string `json:"keywords,omitempty" dynamodbav:"keywords,omitempty"`
	Email    string   `json:"email,omitempty" dynamodbav:"email,omitempty" validate:"omitempty,email"`
}

type BotConfiguration struct {
	Language      string        `json:"language" dynamodbav:"language" validate:"omitempty,oneof=en hi gu ta te kn ml bn pa"`
	Timezone      string        `json:"timezone" dynamodbav:"timezone"`
	BusinessHours BusinessHours `json:"businessHours" dynamodbav:"businessHours"`
	AutoReply     AutoReply     `json:"autoReply" dynamodbav:"autoReply"`
	Escalation    Escalation    `json:"escalation" dynamodbav:"escalation"`
}

type AIModelSettings struct {
	Provider    string  `json:"provider" dynamodbav:"provider" validate:"omitempty,oneof=openai"`
	Model       string  `json:"model" dynamodbav:"model" validate:"omitempty,max=100"`
	Temperature float64 `json:"temperature" dynamodbav:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `json:"maxTokens" dynamodbav:"maxTokens" validate:"gte=0,lte=4000"`
}

type BotPerformance struct {
	TotalConversations    int       `json:"totalConversations" dynamodbav:"totalConversations"`
	SuccessfulResolutions int       `json:"successfulResolutions" dynamodbav:"successfulResolutions"`
	EscalationRate        float64   `json:"escalationRate" dynamodbav:"escalationRate"`
	AverageResponseTime   float64   `json:"averageResponseTime" dynamodbav:"averageResponseTime"` // milliseconds
	CustomerSatisfaction  float64   `json:"customerSatisfaction" dynamodbav:"customerSatisfaction"`
	LastUpdated           time.Time `json:"lastUpdated" dynamodbav:"lastUpdated"`
}

type UserFeedback struct {
	Rating         int       `json:"rating" dynamodbav:"rating"`
	Comment        string    `json:"comment,omitempty" dynamodbav:"comment,omitempty"`
	ConversationID string    `json:"conversationId,omitempty" dynamodbav:"conversationId,omitempty"`
	CreatedAt      time.Time `json:"createdAt" dynamodbav:"createdAt"`
}

type BotAnalytics struct {
	UserFeedback []UserFeedback `json:"userFeedback" dynamodbav:"userFeedback"`
}

type AIBot struct {
	ID            string           `json:"id" dynamodbav:"id"`
	BusinessID    string           `json:"businessId" dynamodbav:"businessId"`
	Name          string           `json:"name" dynamodbav:"name"`
	Description   string           `json:"description,omitempty" dynamodbav:"description,omitempty"`
	Status        BotStatus        `json:"status" dynamodbav:"status"`
	Type          BotType          `json:"type" dynamodbav:"type"`
	Channels      []string         `json:"channels" dynamodbav:"channels"`
	Configuration BotConfiguration `json:"configuration" dynamodbav:"configuration"`
	TrainingData  TrainingData     `json:"trainingData" dynamodbav:"trainingData"`
	AIModel       AIModelSettings  `json:"aiModel" dynamodbav:"aiModel"`
	Performance   BotPerformance   `json:"performance" dynamodbav:"performance"`
	Analytics     BotAnalytics     `json:"analytics" dynamodbav:"analytics"`
	CreatedAt     time.Time        `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt" dynamodbav:"updatedAt"`
}

type CreateBotRequest struct {
	BusinessID    string            `json:"businessId,omitempty" validate:"omitempty,max=100"`
	Name          string            `json:"name" validate:"required,min=2,max=100"`
	Description   string            `json:"description,omitempty" validate:"omitempty,max=500"`
	Type          BotType           `json:"type" validate:"required,oneof=customer-support sales appointment general custom"`
	Channels      []string          `json:"channels" validate:"required,min=1,dive,oneof=whatsapp website email instagram facebook telegram"`
	Configuration *BotConfiguration `json:"configuration,omitempty"`
	TrainingData  *TrainingData     `json:"trainingData,omitempty"`
	AIModel       *AIModelSettings  `json:"aiModel,omitempty"`
}

type UpdateBotRequest struct {
	Name          string            `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description   *string           `json:"description,omitempty" validate:"omitempty,max=500"`
	Status        BotStatus         `json:"status,omitempty" validate:"omitempty,oneof=draft training active paused archived"`
	Type          BotType           `json:"type,omitempty" validate:"omitempty,oneof=customer-support sales appointment general custom"`
	Channels      []string          `json:"channels,omitempty" validate:"omitempty,min=1,dive,oneof=whatsapp website email instagram facebook telegram"`
	Configuration *BotConfiguration `json:"configuration,omitempty"`
	TrainingData  *TrainingData     `json:"trainingData,omitempty"`
	AIModel       *AIModelSettings  `json:"aiModel,omitempty"`
}

type TrainBotRequest struct {
	FAQs            []FAQ            `json:"faqs,omitempty" validate:"omitempty,dive"`
	BusinessInfo    *BotBusinessInfo `json:"businessInfo,omitempty"`
	CustomResponses []CustomResponse `json:"customResponses,omitempty" validate:"omitempty,dive"`
}

type ChatRequest struct {
	Message        string            `json:"message" validate:"required,max=2000"`
	ConversationID string            `json:"conversationId,omitempty" validate:"omitempty,max=100"`
	Context        map[string]string `json:"context,omitempty"`
}

type FeedbackRequest struct {
	Rating         int    `json:"rating" validate:"required,min=1,max=5"`
	Comment        string `json:"comment,omitempty" validate:"omitempty,max=1000"`
	ConversationID string `json:"conversationId,omitempty" validate:"omitempty,max=100"`
}

type BotFilter struct {
	ListQuery
	Status     BotStatus
	Type       BotType
	BusinessID string
}

// ChatReply is what the chat proxy returns for a single message
type ChatReply struct {
	Response            string   `json:"response"`
	Confidence          float64  `json:"confidence"`
	Resolved            bool     `json:"resolved"`
	Suggestions         []string `json:"suggestions,omitempty"`
	EscalationRequested bool     `json:"escalationRequested"`
}

type ChatResult struct {
	ChatReply
	BotID          string `json:"botId"`
	ConversationID string `json:"conversationId"`
	ResponseTimeMs int64  `json:"responseTime"`
}

type BotPerformanceView struct {
	BotID          string         `json:"botId"`
	Name           string         `json:"name"`
	Status         BotStatus      `json:"status"`
	Performance    BotPerformance `json:"performance"`
	ResolutionRate float64        `json:"resolutionRate"` // percent
	FeedbackCount  int            `json:"feedbackCount"`
	RecentFeedback []UserFeedback `json:"recentFeedback"`
}

type TrainResult struct {
	ID             string    `json:"id"`
	Status         BotStatus `json:"status"`
	TotalFAQs      int       `json:"totalFaqs"`
	TotalResponses int       `json:"totalResponses"`
}

type FeedbackResult struct {
	AverageRating float64 `json:"averageRating"`
	TotalFeedback int     `json:"totalFeedback"`
}

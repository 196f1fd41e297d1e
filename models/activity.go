package models

import "time"

const (
	ActivityContactSubmitted   = "contact_submitted"
	ActivityContactUpdated     = "contact_updated"
	ActivityContactArchived    = "contact_archived"
	ActivityDemoBooked         = "demo_booked"
	ActivityDemoRescheduled    = "demo_rescheduled"
	ActivityDemoReminderSent   = "demo_reminder_sent"
	ActivityBotCreated         = "ai_bot_created"
	ActivityBotUpdated         = "ai_bot_updated"
	ActivityBotTrainingStarted = "ai_bot_training_started"
	ActivityBotChat            = "ai_bot_chat"
	ActivityBotFeedback        = "ai_bot_feedback_submitted"
	ActivityBotArchived        = "ai_bot_archived"
	ActivityAdminLogin         = "admin_login"
)

// Activity is one entry of the in-process activity log
type Activity struct {
	Event     string                 `json:"event"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

type LogActivityRequest struct {
	Event   string                 `json:"event" validate:"required,max=100"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

type ActivityStats struct {
	Total   int            `json:"total"`
	ByEvent map[string]int `json:"byEvent"`
	Last24h int            `json:"last24h"`
}

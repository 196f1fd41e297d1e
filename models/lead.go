package models

import (
	"encoding/json"
	"strings"
	"time"
)

type LeadStatus string

const (
	LeadStatusPending   LeadStatus = "pending"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusClosed    LeadStatus = "closed"
	LeadStatusArchived  LeadStatus = "archived"
)

// IsActive reports whether a lead with this status occupies its demo slot
func (s LeadStatus) IsActive() bool {
	return s == LeadStatusPending || s == LeadStatusContacted || s == LeadStatusQualified
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type BusinessType string

const (
	BusinessTypeRetail     BusinessType = "retail"
	BusinessTypeClinic     BusinessType = "clinic"
	BusinessTypeRestaurant BusinessType = "restaurant"
	BusinessTypeGym        BusinessType = "gym"
	BusinessTypeEcommerce  BusinessType = "ecommerce"
	BusinessTypeService    BusinessType = "service"
	BusinessTypeOther      BusinessType = "other"
)

type InquiryType string

const (
	InquiryTypeDemo    InquiryType = "demo"
	InquiryTypePricing InquiryType = "pricing"
	InquiryTypeCustom  InquiryType = "custom"
	InquiryTypeSupport InquiryType = "support"
	InquiryTypeOther   InquiryType = "other"
)

type DemoType string

const (
	DemoTypeSupportBot DemoType = "ai-support-bot"
	DemoTypeAutomation DemoType = "ai-automation"
	DemoTypeAnalytics  DemoType = "ai-analytics"
	DemoTypeCustom     DemoType = "custom"
)

// TimeSlots is the fixed, ordered set of bookable demo times
var TimeSlots = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00", "17:00"}

const (
	DefaultTimezone       = "Asia/Kolkata"
	DateLayout            = "2006-01-02"
	SourceWebsite         = "website"
	NoteStatusRescheduled = "rescheduled"
)

type DemoDetails struct {
	PreferredDate     time.Time `json:"preferredDate" dynamodbav:"preferredDate"`
	PreferredTime     string    `json:"preferredTime" dynamodbav:"preferredTime"`
	DemoType          DemoType  `json:"demoType" dynamodbav:"demoType"`
	TeamSize          int       `json:"teamSize,omitempty" dynamodbav:"teamSize,omitempty"`
	CurrentChallenges string    `json:"currentChallenges,omitempty" dynamodbav:"currentChallenges,omitempty"`
	Timezone          string    `json:"timezone" dynamodbav:"timezone"`
}

// Note is one audit-trail entry. Status is free text since reschedules record "rescheduled".
type Note struct {
	Status    string    `json:"status" dynamodbav:"status"`
	Note      string    `json:"note" dynamodbav:"note"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
}

type UTMData struct {
	Source   string `json:"source,omitempty" dynamodbav:"source,omitempty"`
	Medium   string `json:"medium,omitempty" dynamodbav:"medium,omitempty"`
	Campaign string `json:"campaign,omitempty" dynamodbav:"campaign,omitempty"`
	Term     string `json:"term,omitempty" dynamodbav:"term,omitempty"`
	Content  string `json:"content,omitempty" dynamodbav:"content,omitempty"`
}

// IsEmpty reports whether no UTM parameter was captured
func (u UTMData) IsEmpty() bool {
	return u == UTMData{}
}

type Lead struct {
	ID             string       `json:"id" dynamodbav:"id"`
	FirstName      string       `json:"firstName" dynamodbav:"firstName"`
	LastName       string       `json:"lastName" dynamodbav:"lastName"`
	Email          string       `json:"email" dynamodbav:"email"`
	Phone          string       `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	BusinessName   string       `json:"businessName" dynamodbav:"businessName"`
	BusinessType   BusinessType `json:"businessType" dynamodbav:"businessType"`
	InquiryType    InquiryType  `json:"inquiryType" dynamodbav:"inquiryType"`
	Message        string       `json:"message,omitempty" dynamodbav:"message,omitempty"`
	Status         LeadStatus   `json:"status" dynamodbav:"status"`
	Priority       Priority     `json:"priority" dynamodbav:"priority"`
	AssignedTo     string       `json:"assignedTo,omitempty" dynamodbav:"assignedTo,omitempty"`
	Tags           []string     `json:"tags" dynamodbav:"tags"`
	Notes          []Note       `json:"notes" dynamodbav:"notes"`
	DemoDetails    *DemoDetails `json:"demoDetails,omitempty" dynamodbav:"demoDetails,omitempty"`
	SlotDate       string       `json:"-" dynamodbav:"slotDate,omitempty"` // slotDate-index partition key
	Source         string       `json:"source" dynamodbav:"source"`
	UTMData        *UTMData     `json:"utmData,omitempty" dynamodbav:"utmData,omitempty"`
	IPAddress      string       `json:"ipAddress,omitempty" dynamodbav:"ipAddress,omitempty"`
	UserAgent      string       `json:"userAgent,omitempty" dynamodbav:"userAgent,omitempty"`
	ReminderSentAt *time.Time   `json:"reminderSentAt,omitempty" dynamodbav:"reminderSentAt,omitempty"`
	CreatedAt      time.Time    `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt" dynamodbav:"updatedAt"`
}

func (l *Lead) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}

func (l *Lead) BusinessInfo() string {
	return l.BusinessName + " (" + string(l.BusinessType) + ")"
}

// IsDemo reports whether the lead carries a demo booking
func (l *Lead) IsDemo() bool {
	return l.InquiryType == InquiryTypeDemo && l.DemoDetails != nil
}

// SlotKey identifies the demo slot held by the lead, empty for non-demo leads
func (l *Lead) SlotKey() string {
	if !l.IsDemo() {
		return ""
	}
	return BuildSlotKey(l.DemoDetails.PreferredDate, l.DemoDetails.PreferredTime)
}

// HoldsSlot reports whether the lead currently occupies its demo slot
func (l *Lead) HoldsSlot() bool {
	return l.IsDemo() && l.Status.IsActive()
}

// SlotStart is the wall-clock start of the booked demo in the lead's timezone
func (l *Lead) SlotStart() (time.Time, bool) {
	if !l.IsDemo() {
		return time.Time{}, false
	}
	loc, err := time.LoadLocation(l.DemoDetails.Timezone)
	if err != nil {
		loc = time.UTC
	}
	clock, err := time.Parse("15:04", l.DemoDetails.PreferredTime)
	if err != nil {
		return time.Time{}, false
	}
	d := l.DemoDetails.PreferredDate
	return time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), true
}

func (l Lead) MarshalJSON() ([]byte, error) {
	type alias Lead
	return json.Marshal(struct {
		alias
		FullName     string `json:"fullName"`
		BusinessInfo string `json:"businessInfo"`
	}{
		alias:        alias(l),
		FullName:     l.FullName(),
		BusinessInfo: l.BusinessInfo(),
	})
}

// BuildSlotKey returns the slots-table key for a calendar date and time label
func BuildSlotKey(date time.Time, slot string) string {
	return date.UTC().Format(DateLayout) + "#" + slot
}

// SlotClaim is the uniqueness record held in the slots table
type SlotClaim struct {
	SlotKey   string    `json:"slotKey" dynamodbav:"slotKey"`
	LeadID    string    `json:"leadId" dynamodbav:"leadId"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
}

type CreateContactRequest struct {
	FirstName    string       `json:"firstName" validate:"required,min=2,max=50"`
	LastName     string       `json:"lastName" validate:"required,min=2,max=50"`
	Email        string       `json:"email" validate:"required,email"`
	Phone        string       `json:"phone,omitempty" validate:"omitempty,min=10,max=20"`
	BusinessName string       `json:"businessName" validate:"required,min=2,max=100"`
	BusinessType BusinessType `json:"businessType" validate:"required,oneof=retail clinic restaurant gym ecommerce service other"`
	InquiryType  InquiryType  `json:"inquiryType" validate:"required,oneof=demo pricing custom support other"`
	Message      string       `json:"message,omitempty" validate:"omitempty,max=1000"`
}

type BookDemoRequest struct {
	FirstName         string       `json:"firstName" validate:"required,min=2,max=50"`
	LastName          string       `json:"lastName" validate:"required,min=2,max=50"`
	Email             string       `json:"email" validate:"required,email"`
	Phone             string       `json:"phone" validate:"required,min=10,max=20"`
	BusinessName      string       `json:"businessName" validate:"required,min=2,max=100"`
	BusinessType      BusinessType `json:"businessType" validate:"required,oneof=retail clinic restaurant gym ecommerce service other"`
	PreferredDate     string       `json:"preferredDate" validate:"required,calendardate"`
	PreferredTime     string       `json:"preferredTime" validate:"required,oneof=09:00 10:00 11:00 14:00 15:00 16:00 17:00"`
	DemoType          DemoType     `json:"demoType" validate:"required,oneof=ai-support-bot ai-automation ai-analytics custom"`
	TeamSize          int          `json:"teamSize,omitempty" validate:"omitempty,min=1,max=1000"`
	CurrentChallenges string       `json:"currentChallenges,omitempty" validate:"omitempty,max=500"`
	Timezone          string       `json:"timezone,omitempty" validate:"omitempty,max=64"`
}

// UpdateLeadRequest is a partial update; absent fields are left untouched
type UpdateLeadRequest struct {
	Status     LeadStatus `json:"status,omitempty" validate:"omitempty,oneof=pending contacted qualified converted closed archived"`
	Priority   Priority   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	AssignedTo *string    `json:"assignedTo,omitempty" validate:"omitempty,max=100"`
	Tags       []string   `json:"tags,omitempty" validate:"omitempty,dive,max=50"`
	Notes      string     `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type RescheduleRequest struct {
	NewDate string `json:"newDate" validate:"required,calendardate"`
	NewTime string `json:"newTime" validate:"required,oneof=09:00 10:00 11:00 14:00 15:00 16:00 17:00"`
	Reason  string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// RequestContext is the provenance captured when a lead is created
type RequestContext struct {
	IPAddress string
	UserAgent string
	UTM       UTMData
}

type LeadFilter struct {
	ListQuery
	Status       LeadStatus
	BusinessType BusinessType
	InquiryType  InquiryType
}

type DemoSlotFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    LeadStatus
}

type ContactResult struct {
	ID                    string     `json:"id"`
	Status                LeadStatus `json:"status"`
	Priority              Priority   `json:"priority"`
	EstimatedResponseTime string     `json:"estimatedResponseTime"`
}

type BookingResult struct {
	ID                string   `json:"id"`
	DemoDate          string   `json:"demoDate"`
	DemoTime          string   `json:"demoTime"`
	DemoType          DemoType `json:"demoType"`
	ConfirmationEmail string   `json:"confirmationEmail"`
	NextSteps         []string `json:"nextSteps"`
}

type RescheduleResult struct {
	ID      string `json:"id"`
	NewDate string `json:"newDate"`
	NewTime string `json:"newTime"`
	OldDate string `json:"oldDate"`
	OldTime string `json:"oldTime"`
}

type BusinessHours struct {
	Start    string `json:"start" dynamodbav:"start"`
	End      string `json:"end" dynamodbav:"end"`
	Timezone string `json:"timezone" dynamodbav:"timezone"`
}

type Availability struct {
	Date           string        `json:"date"`
	AvailableSlots []string      `json:"availableSlots"`
	BusinessHours  BusinessHours `json:"businessHours"`
	Note           string        `json:"note"`
}

type CountBucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type LeadStats struct {
	Total             int            `json:"total"`
	Pending           int            `json:"pending"`
	Contacted         int            `json:"contacted"`
	Converted         int            `json:"converted"`
	ByStatus          map[string]int `json:"byStatus"`
	BusinessTypeStats []CountBucket  `json:"businessTypeStats"`
	InquiryTypeStats  []CountBucket  `json:"inquiryTypeStats"`
	RecentContacts    []*Lead        `json:"recentContacts"`
}

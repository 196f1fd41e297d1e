package services

import (
	"aihub-backend/models"
	"aihub-backend/repository"
	"aihub-backend/utils"
	"aihub-backend/utils/logger"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	defaultDemoMessage    = "Demo booking request"
	defaultRescheduleNote = "Not specified"
	estimatedResponseTime = "24 hours"
	recentLeadsInStats    = 5
	noteDateLayout        = "Mon Jan 02 2006"
)

var demoNextSteps = []string{
	"Check your email for confirmation details",
	"Add the demo to your calendar",
	"Prepare any specific questions you have",
	"We'll send a reminder 1 hour before the demo",
}

var csvHeader = []string{
	"firstName", "lastName", "email", "phone", "businessName",
	"businessType", "inquiryType", "message", "status", "createdAt",
}

type LeadService struct {
	repo      repository.LeadRepositoryInterface
	notifier  Notifier
	activity  ActivityServiceInterface
	validator *validator.Validate
	config    *models.Config
	logger    logger.Logger
	now       func() time.Time
}

func NewLeadService(repo repository.LeadRepositoryInterface, notifier Notifier, activity ActivityServiceInterface, cfg *models.Config, logger logger.Logger) *LeadService {
	return &LeadService{
		repo:      repo,
		notifier:  notifier,
		activity:  activity,
		validator: NewValidator(),
		config:    cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *LeadService) CreateContactLead(ctx context.Context, req *models.CreateContactRequest, rc models.RequestContext) (*models.ContactResult, error) {
	if req == nil {
		return nil, newValidationError("body", "is required")
	}
	trimContactFields(&req.FirstName, &req.LastName, &req.Email, &req.Phone, &req.BusinessName)
	req.Message = strings.TrimSpace(req.Message)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	lead := &models.Lead{
		ID:           utils.GenerateUUID(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		BusinessName: req.BusinessName,
		BusinessType: req.BusinessType,
		InquiryType:  req.InquiryType,
		Message:      req.Message,
		Status:       models.LeadStatusPending,
		Priority:     models.PriorityMedium,
		Tags:         []string{},
		Notes:        []models.Note{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyProvenance(lead, rc)

	if err := s.repo.CreateLead(ctx, lead); err != nil {
		return nil, s.persistenceError("create lead", err)
	}
	leadsCreated.WithLabelValues(string(lead.InquiryType)).Inc()

	s.notifier.Enqueue(Notification{Kind: NotificationContact, Lead: *lead})
	s.activity.Append(models.ActivityContactSubmitted, map[string]interface{}{
		"contactId":    lead.ID,
		"businessType": lead.BusinessType,
		"inquiryType":  lead.InquiryType,
	})

	return &models.ContactResult{
		ID:                    lead.ID,
		Status:                lead.Status,
		Priority:              lead.Priority,
		EstimatedResponseTime: estimatedResponseTime,
	}, nil
}

// BookDemo creates a high-priority demo lead for a free slot strictly in the future
func (s *LeadService) BookDemo(ctx context.Context, req *models.BookDemoRequest, rc models.RequestContext) (*models.BookingResult, error) {
	if req == nil {
		return nil, newValidationError("body", "is required")
	}
	trimContactFields(&req.FirstName, &req.LastName, &req.Email, &req.Phone, &req.BusinessName)
	req.CurrentChallenges = strings.TrimSpace(req.CurrentChallenges)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	date, err := ParseCalendarDate(req.PreferredDate)
	if err != nil {
		return nil, newValidationError("preferredDate", err.Error())
	}
	if !date.After(s.now()) {
		return nil, &InvalidSlotError{Reason: "Demo date must be in the future"}
	}

	available, err := s.AvailableSlots(ctx, date)
	if err != nil {
		return nil, err
	}
	if !containsSlot(available, req.PreferredTime) {
		RecordSlotConflict("check")
		return nil, s.slotConflict(date, req.PreferredTime, available)
	}

	message := req.CurrentChallenges
	if message == "" {
		message = defaultDemoMessage
	}
	timezone := strings.TrimSpace(req.Timezone)
	if timezone == "" {
		timezone = models.DefaultTimezone
	}

	now := s.now().UTC()
	lead := &models.Lead{
		ID:           utils.GenerateUUID(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		BusinessName: req.BusinessName,
		BusinessType: req.BusinessType,
		InquiryType:  models.InquiryTypeDemo,
		Message:      message,
		Status:       models.LeadStatusPending,
		Priority:     models.PriorityHigh,
		Tags:         []string{},
		Notes:        []models.Note{},
		DemoDetails: &models.DemoDetails{
			PreferredDate:     date,
			PreferredTime:     req.PreferredTime,
			DemoType:          req.DemoType,
			TeamSize:          req.TeamSize,
			CurrentChallenges: req.CurrentChallenges,
			Timezone:          timezone,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyProvenance(lead, rc)

	if err := s.repo.CreateLead(ctx, lead); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			RecordSlotConflict("write")
			return nil, s.slotConflictAfterWrite(ctx, date, req.PreferredTime)
		}
		return nil, s.persistenceError("book demo", err)
	}
	leadsCreated.WithLabelValues(string(lead.InquiryType)).Inc()

	s.notifier.Enqueue(Notification{Kind: NotificationDemoConfirmed, Lead: *lead})
	s.activity.Append(models.ActivityDemoBooked, map[string]interface{}{
		"contactId":    lead.ID,
		"demoType":     req.DemoType,
		"demoDate":     date.Format(models.DateLayout),
		"businessType": req.BusinessType,
	})

	return &models.BookingResult{
		ID:                lead.ID,
		DemoDate:          date.Format(models.DateLayout),
		DemoTime:          req.PreferredTime,
		DemoType:          req.DemoType,
		ConfirmationEmail: lead.Email,
		NextSteps:         append([]string(nil), demoNextSteps...),
	}, nil
}

func (s *LeadService) GetLead(ctx context.Context, id string) (*models.Lead, error) {
	lead, err := s.repo.GetLead(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return nil, &NotFoundError{Resource: "contact", ID: id}
		}
		return nil, s.persistenceError("get lead", err)
	}
	return lead, nil
}

func (s *LeadService) ListLeads(ctx context.Context, filter models.LeadFilter) ([]*models.Lead, *models.Pagination, error) {
	q := normalizeListQuery(filter.ListQuery)

	all, err := s.repo.ListLeads(ctx)
	if err != nil {
		return nil, nil, s.persistenceError("list leads", err)
	}

	matched := make([]*models.Lead, 0, len(all))
	for _, lead := range all {
		if filter.Status != "" && lead.Status != filter.Status {
			continue
		}
		if filter.BusinessType != "" && lead.BusinessType != filter.BusinessType {
			continue
		}
		if filter.InquiryType != "" && lead.InquiryType != filter.InquiryType {
			continue
		}
		if q.Search != "" && !leadMatches(lead, q.Search) {
			continue
		}
		matched = append(matched, lead)
	}

	sortLeads(matched, q.SortBy, q.SortOrder == "desc")
	page, pagination := paginate(matched, q.Page, q.Limit)
	return page, pagination, nil
}

// UpdateLead applies a partial patch. A note is stamped with the status after the patch.
func (s *LeadService) UpdateLead(ctx context.Context, id string, req *models.UpdateLeadRequest) (*models.Lead, error) {
	if req == nil {
		return nil, newValidationError("body", "is required")
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	lead, err := s.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := cloneLead(lead)

	if req.Status != "" {
		lead.Status = req.Status
	}
	if req.Priority != "" {
		lead.Priority = req.Priority
	}
	if req.AssignedTo != nil {
		lead.AssignedTo = strings.TrimSpace(*req.AssignedTo)
	}
	if req.Tags != nil {
		lead.Tags = req.Tags
	}
	now := s.now().UTC()
	if note := strings.TrimSpace(req.Notes); note != "" {
		lead.Notes = append(lead.Notes, models.Note{
			Status:    string(lead.Status),
			Note:      note,
			CreatedAt: now,
		})
	}
	lead.UpdatedAt = now

	if err := s.repo.SaveLead(ctx, lead, previous); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			RecordSlotConflict("write")
			return nil, s.slotConflictAfterWrite(ctx, lead.DemoDetails.PreferredDate, lead.DemoDetails.PreferredTime)
		}
		return nil, s.persistenceError("update lead", err)
	}

	s.activity.Append(models.ActivityContactUpdated, map[string]interface{}{
		"contactId": lead.ID,
		"status":    lead.Status,
		"priority":  lead.Priority,
	})
	return lead, nil
}

// RescheduleDemo moves a demo lead to a new slot, marking it contacted and recording the move in its notes
func (s *LeadService) RescheduleDemo(ctx context.Context, id string, req *models.RescheduleRequest) (*models.RescheduleResult, error) {
	if req == nil {
		return nil, newValidationError("body", "is required")
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	newDate, err := ParseCalendarDate(req.NewDate)
	if err != nil {
		return nil, newValidationError("newDate", err.Error())
	}

	lead, err := s.repo.GetLead(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return nil, &NotFoundError{Resource: "demo", ID: id}
		}
		return nil, s.persistenceError("get lead", err)
	}
	if !lead.IsDemo() {
		return nil, &NotFoundError{Resource: "demo", ID: id}
	}

	available, err := s.availableSlotsExcluding(ctx, newDate, lead.ID)
	if err != nil {
		return nil, err
	}
	if !containsSlot(available, req.NewTime) {
		RecordSlotConflict("check")
		return nil, s.slotConflict(newDate, req.NewTime, available)
	}

	previous := cloneLead(lead)
	oldDate := lead.DemoDetails.PreferredDate
	oldTime := lead.DemoDetails.PreferredTime

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = defaultRescheduleNote
	}

	now := s.now().UTC()
	lead.DemoDetails.PreferredDate = newDate
	lead.DemoDetails.PreferredTime = req.NewTime
	lead.Status = models.LeadStatusContacted
	lead.ReminderSentAt = nil
	lead.Notes = append(lead.Notes, models.Note{
		Status: models.NoteStatusRescheduled,
		Note: "Demo rescheduled from " + oldDate.UTC().Format(noteDateLayout) + " " + oldTime +
			" to " + newDate.Format(noteDateLayout) + " " + req.NewTime + ". Reason: " + reason,
		CreatedAt: now,
	})
	lead.UpdatedAt = now

	if err := s.repo.SaveLead(ctx, lead, previous); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			RecordSlotConflict("write")
			return nil, s.slotConflictAfterWrite(ctx, newDate, req.NewTime)
		}
		return nil, s.persistenceError("reschedule demo", err)
	}

	s.notifier.Enqueue(Notification{
		Kind:    NotificationDemoRescheduled,
		Lead:    *lead,
		OldDate: oldDate.UTC().Format(models.DateLayout),
		OldTime: oldTime,
		Reason:  strings.TrimSpace(req.Reason),
	})
	s.activity.Append(models.ActivityDemoRescheduled, map[string]interface{}{
		"contactId": lead.ID,
		"oldDate":   oldDate.UTC().Format(models.DateLayout),
		"newDate":   newDate.Format(models.DateLayout),
		"reason":    strings.TrimSpace(req.Reason),
	})

	return &models.RescheduleResult{
		ID:      lead.ID,
		NewDate: newDate.Format(models.DateLayout),
		NewTime: req.NewTime,
		OldDate: oldDate.UTC().Format(models.DateLayout),
		OldTime: oldTime,
	}, nil
}

// ArchiveLead soft-deletes a lead. Archiving an archived lead succeeds.
func (s *LeadService) ArchiveLead(ctx context.Context, id string) error {
	lead, err := s.GetLead(ctx, id)
	if err != nil {
		return err
	}
	previous := cloneLead(lead)

	lead.Status = models.LeadStatusArchived
	lead.UpdatedAt = s.now().UTC()
	if err := s.repo.SaveLead(ctx, lead, previous); err != nil {
		return s.persistenceError("archive lead", err)
	}

	s.activity.Append(models.ActivityContactArchived, map[string]interface{}{
		"contactId": lead.ID,
	})
	return nil
}

func (s *LeadService) Statistics(ctx context.Context) (*models.LeadStats, error) {
	all, err := s.repo.ListLeads(ctx)
	if err != nil {
		return nil, s.persistenceError("lead statistics", err)
	}

	stats := &models.LeadStats{
		Total:    len(all),
		ByStatus: make(map[string]int),
	}
	byBusiness := make(map[string]int)
	byInquiry := make(map[string]int)
	for _, lead := range all {
		stats.ByStatus[string(lead.Status)]++
		byBusiness[string(lead.BusinessType)]++
		byInquiry[string(lead.InquiryType)]++
	}
	stats.Pending = stats.ByStatus[string(models.LeadStatusPending)]
	stats.Contacted = stats.ByStatus[string(models.LeadStatusContacted)]
	stats.Converted = stats.ByStatus[string(models.LeadStatusConverted)]
	stats.BusinessTypeStats = countBuckets(byBusiness)
	stats.InquiryTypeStats = countBuckets(byInquiry)

	recent := append([]*models.Lead(nil), all...)
	sortLeads(recent, "createdAt", true)
	if len(recent) > recentLeadsInStats {
		recent = recent[:recentLeadsInStats]
	}
	stats.RecentContacts = recent
	return stats, nil
}

// Availability reports the free demo slots for a YYYY-MM-DD date
func (s *LeadService) Availability(ctx context.Context, date string) (*models.Availability, error) {
	if strings.TrimSpace(date) == "" {
		return nil, newValidationError("date", "is required")
	}
	day, err := ParseCalendarDate(date)
	if err != nil {
		return nil, newValidationError("date", "must be a valid date (YYYY-MM-DD)")
	}

	slots, err := s.AvailableSlots(ctx, day)
	if err != nil {
		return nil, err
	}
	return &models.Availability{
		Date:           day.Format(models.DateLayout),
		AvailableSlots: slots,
		BusinessHours: models.BusinessHours{
			Start:    models.TimeSlots[0],
			End:      models.TimeSlots[len(models.TimeSlots)-1],
			Timezone: models.DefaultTimezone,
		},
		Note: "All times are in Indian Standard Time (IST)",
	}, nil
}

// AvailableSlots returns the fixed slots not held by an active demo lead on the date
func (s *LeadService) AvailableSlots(ctx context.Context, date time.Time) ([]string, error) {
	return s.availableSlotsExcluding(ctx, date, "")
}

func (s *LeadService) availableSlotsExcluding(ctx context.Context, date time.Time, excludeID string) ([]string, error) {
	leads, err := s.repo.ListDemoLeadsByDate(ctx, date)
	if err != nil {
		return nil, s.persistenceError("check availability", err)
	}
	return FreeSlots(leads, date, excludeID), nil
}

// DemoSlots lists demo leads ordered by date then time. The date range applies only when both ends are set.
func (s *LeadService) DemoSlots(ctx context.Context, filter models.DemoSlotFilter) ([]*models.Lead, error) {
	all, err := s.repo.ListLeads(ctx)
	if err != nil {
		return nil, s.persistenceError("list demo slots", err)
	}

	demos := make([]*models.Lead, 0)
	for _, lead := range all {
		if !lead.IsDemo() {
			continue
		}
		if filter.Status != "" && lead.Status != filter.Status {
			continue
		}
		if filter.StartDate != nil && filter.EndDate != nil {
			d := lead.DemoDetails.PreferredDate
			if d.Before(*filter.StartDate) || d.After(*filter.EndDate) {
				continue
			}
		}
		demos = append(demos, lead)
	}

	sort.SliceStable(demos, func(i, j int) bool {
		a, b := demos[i].DemoDetails, demos[j].DemoDetails
		if !a.PreferredDate.Equal(b.PreferredDate) {
			return a.PreferredDate.Before(b.PreferredDate)
		}
		return a.PreferredTime < b.PreferredTime
	})
	return demos, nil
}

// ExportCSV renders every lead's flat fields as CSV, oldest first
func (s *LeadService) ExportCSV(ctx context.Context) ([]byte, error) {
	all, err := s.repo.ListLeads(ctx)
	if err != nil {
		return nil, s.persistenceError("export leads", err)
	}
	if len(all) == 0 {
		return nil, &NotFoundError{Resource: "contacts"}
	}
	sortLeads(all, "createdAt", false)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, lead := range all {
		record := []string{
			lead.FirstName,
			lead.LastName,
			lead.Email,
			lead.Phone,
			lead.BusinessName,
			string(lead.BusinessType),
			string(lead.InquiryType),
			lead.Message,
			string(lead.Status),
			lead.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SendDueReminders queues a reminder for every active demo starting within the configured lead time
// that has not been reminded yet, and returns how many were queued.
func (s *LeadService) SendDueReminders(ctx context.Context) (int, error) {
	now := s.now().UTC()
	horizon := now.Add(s.config.ReminderLeadTime)

	// slot dates are calendar days in the lead's timezone, so look one day either side
	sent := 0
	for offset := -1; offset <= 1; offset++ {
		day := time.Date(now.Year(), now.Month(), now.Day()+offset, 0, 0, 0, 0, time.UTC)
		leads, err := s.repo.ListDemoLeadsByDate(ctx, day)
		if err != nil {
			return sent, s.persistenceError("list reminders", err)
		}

		for _, lead := range leads {
			if !lead.HoldsSlot() || lead.ReminderSentAt != nil {
				continue
			}
			start, ok := lead.SlotStart()
			if !ok || !start.After(now) || start.After(horizon) {
				continue
			}

			if !s.notifier.Enqueue(Notification{Kind: NotificationDemoReminder, Lead: *lead}) {
				continue
			}
			if err := s.repo.MarkReminderSent(ctx, lead.ID, now); err != nil {
				s.logger.Errorf("Reminder queued for lead %s but not recorded: %v", lead.ID, err)
				continue
			}
			sent++
			s.activity.Append(models.ActivityDemoReminderSent, map[string]interface{}{
				"contactId": lead.ID,
				"demoDate":  lead.DemoDetails.PreferredDate.UTC().Format(models.DateLayout),
				"demoTime":  lead.DemoDetails.PreferredTime,
			})
		}
	}
	return sent, nil
}

func (s *LeadService) slotConflict(date time.Time, slot string, available []string) error {
	return &SlotConflictError{
		Date:           date.UTC().Format(models.DateLayout),
		Time:           slot,
		AvailableSlots: available,
	}
}

// slotConflictAfterWrite re-reads availability once the write-time claim lost the race
func (s *LeadService) slotConflictAfterWrite(ctx context.Context, date time.Time, slot string) error {
	available, err := s.AvailableSlots(ctx, date)
	if err != nil {
		s.logger.Warnf("Could not refresh availability after slot conflict: %v", err)
		available = []string{}
	}
	// the winner may not be visible to the index yet
	filtered := available[:0]
	for _, a := range available {
		if a != slot {
			filtered = append(filtered, a)
		}
	}
	return s.slotConflict(date, slot, filtered)
}

func (s *LeadService) persistenceError(op string, err error) error {
	s.logger.Errorf("Failed to %s: %v", op, err)
	return &PersistenceError{Op: op, Err: err}
}

func trimContactFields(first, last, email, phone, business *string) {
	*first = strings.TrimSpace(*first)
	*last = strings.TrimSpace(*last)
	*email = strings.ToLower(strings.TrimSpace(*email))
	*phone = strings.TrimSpace(*phone)
	*business = strings.TrimSpace(*business)
}

func applyProvenance(lead *models.Lead, rc models.RequestContext) {
	lead.Source = models.SourceWebsite
	lead.IPAddress = rc.IPAddress
	lead.UserAgent = rc.UserAgent
	if !rc.UTM.IsEmpty() {
		utm := rc.UTM
		lead.UTMData = &utm
	}
}

func cloneLead(lead *models.Lead) *models.Lead {
	c := *lead
	if lead.DemoDetails != nil {
		d := *lead.DemoDetails
		c.DemoDetails = &d
	}
	c.Tags = append([]string(nil), lead.Tags...)
	c.Notes = append([]models.Note(nil), lead.Notes...)
	return &c
}

func leadMatches(lead *models.Lead, search string) bool {
	return containsFold(lead.FirstName, search) ||
		containsFold(lead.LastName, search) ||
		containsFold(lead.BusinessName, search) ||
		containsFold(lead.Email, search)
}

func sortLeads(leads []*models.Lead, sortBy string, desc bool) {
	less := func(a, b *models.Lead) bool {
		switch sortBy {
		case "updatedAt":
			return a.UpdatedAt.Before(b.UpdatedAt)
		case "firstName":
			return strings.ToLower(a.FirstName) < strings.ToLower(b.FirstName)
		case "lastName":
			return strings.ToLower(a.LastName) < strings.ToLower(b.LastName)
		case "email":
			return a.Email < b.Email
		case "businessName":
			return strings.ToLower(a.BusinessName) < strings.ToLower(b.BusinessName)
		case "status":
			return a.Status < b.Status
		case "priority":
			return a.Priority < b.Priority
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(leads, func(i, j int) bool {
		if desc {
			return less(leads[j], leads[i])
		}
		return less(leads[i], leads[j])
	})
}

func countBuckets(counts map[string]int) []models.CountBucket {
	buckets := make([]models.CountBucket, 0, len(counts))
	for name, count := range counts {
		buckets = append(buckets, models.CountBucket{Name: name, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Name < buckets[j].Name
	})
	return buckets
}

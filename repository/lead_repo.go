package repository

import (
	"aihub-backend/dal"
	"aihub-backend/models"
	"aihub-backend/utils/logger"
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	claimIfFree      = "attribute_not_exists(slotKey)"
	claimIfFreeOrOwn = "attribute_not_exists(slotKey) OR #lead = :lead"
)

type LeadRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewLeadRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *LeadRepository {
	return &LeadRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *LeadRepository) leadsTable() string {
	return r.config.TableName(collectionLeads)
}

func (r *LeadRepository) slotsTable() string {
	return r.config.TableName(collectionSlots)
}

// syncSlotDate keeps the top-level index attribute in step with the demo sub-record
func syncSlotDate(lead *models.Lead) {
	if lead.IsDemo() {
		lead.SlotDate = lead.DemoDetails.PreferredDate.UTC().Format(models.DateLayout)
	} else {
		lead.SlotDate = ""
	}
}

// CreateLead stores a new lead. With slot uniqueness enforced, an active demo lead is written together
// with its slot claim and fails with ErrSlotTaken when the claim already exists.
func (r *LeadRepository) CreateLead(ctx context.Context, lead *models.Lead) error {
	syncSlotDate(lead)
	r.logger.Infof("Creating lead: %s (%s)", lead.ID, lead.InquiryType)

	if !r.config.EnforceSlotUniqueness || !lead.HoldsSlot() {
		if err := r.db.PutItem(ctx, r.leadsTable(), lead); err != nil {
			r.logger.Errorf("Failed to create lead: %v", err)
			return err
		}
		return nil
	}

	ops := []dal.WriteOp{
		{Kind: dal.WritePut, TableName: r.leadsTable(), Item: lead},
		r.claimOp(lead, claimIfFree),
	}
	if err := r.db.TransactWrite(ctx, ops); err != nil {
		if errors.Is(err, dal.ErrConditionFailed) {
			r.logger.Warnf("Slot %s already claimed, rejecting lead %s", lead.SlotKey(), lead.ID)
			return ErrSlotTaken
		}
		r.logger.Errorf("Failed to create lead with slot claim: %v", err)
		return err
	}

	r.logger.Infof("Lead created with slot claim %s: %s", lead.SlotKey(), lead.ID)
	return nil
}

func (r *LeadRepository) GetLead(ctx context.Context, id string) (*models.Lead, error) {
	if id == "" {
		return nil, ErrLeadNotFound
	}

	lead := models.Lead{}
	if err := r.db.GetItem(ctx, r.leadsTable(), "id", id, &lead); err != nil {
		r.logger.Errorf("Failed to get lead %s: %v", id, err)
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	if lead.ID == "" {
		return nil, ErrLeadNotFound
	}
	return &lead, nil
}

// SaveLead writes the lead and, with slot uniqueness enforced, moves its slot claim when the held slot changed:
// a new claim is taken for the new slot and the old claim is released only if it belongs to this lead.
func (r *LeadRepository) SaveLead(ctx context.Context, lead *models.Lead, previous *models.Lead) error {
	syncSlotDate(lead)

	oldKey, newKey := "", ""
	if previous != nil && previous.HoldsSlot() {
		oldKey = previous.SlotKey()
	}
	if lead.HoldsSlot() {
		newKey = lead.SlotKey()
	}

	if !r.config.EnforceSlotUniqueness || oldKey == newKey {
		if err := r.db.PutItem(ctx, r.leadsTable(), lead); err != nil {
			r.logger.Errorf("Failed to save lead %s: %v", lead.ID, err)
			return err
		}
		return nil
	}

	ops := []dal.WriteOp{{Kind: dal.WritePut, TableName: r.leadsTable(), Item: lead}}
	if newKey != "" {
		ops = append(ops, r.claimOp(lead, claimIfFreeOrOwn))
	}
	if oldKey != "" {
		ops = append(ops, dal.WriteOp{
			Kind:            dal.WriteDelete,
			TableName:       r.slotsTable(),
			KeyName:         "slotKey",
			KeyValue:        oldKey,
			Condition:       claimIfFreeOrOwn,
			ConditionNames:  map[string]string{"#lead": "leadId"},
			ConditionValues: map[string]interface{}{":lead": lead.ID},
		})
	}

	if err := r.db.TransactWrite(ctx, ops); err != nil {
		if errors.Is(err, dal.ErrConditionFailed) {
			r.logger.Warnf("Slot %s already claimed, rejecting update of lead %s", newKey, lead.ID)
			return ErrSlotTaken
		}
		r.logger.Errorf("Failed to save lead %s with slot move: %v", lead.ID, err)
		return err
	}

	r.logger.Infof("Lead %s saved, slot claim moved %q -> %q", lead.ID, oldKey, newKey)
	return nil
}

func (r *LeadRepository) claimOp(lead *models.Lead, condition string) dal.WriteOp {
	op := dal.WriteOp{
		Kind:      dal.WritePut,
		TableName: r.slotsTable(),
		Item: models.SlotClaim{
			SlotKey:   lead.SlotKey(),
			LeadID:    lead.ID,
			CreatedAt: time.Now().UTC(),
		},
		Condition: condition,
	}
	if condition == claimIfFreeOrOwn {
		op.ConditionNames = map[string]string{"#lead": "leadId"}
		op.ConditionValues = map[string]interface{}{":lead": lead.ID}
	}
	return op
}

func (r *LeadRepository) ListLeads(ctx context.Context) ([]*models.Lead, error) {
	var leads []*models.Lead
	if err := r.db.Scan(ctx, r.leadsTable(), &leads); err != nil {
		r.logger.Errorf("Failed to scan leads: %v", err)
		return nil, err
	}
	r.logger.Debugf("Scanned %d leads", len(leads))
	return leads, nil
}

// ListDemoLeadsByDate returns every demo lead booked on the calendar date, regardless of status
func (r *LeadRepository) ListDemoLeadsByDate(ctx context.Context, date time.Time) ([]*models.Lead, error) {
	var leads []*models.Lead
	day := date.UTC().Format(models.DateLayout)
	if err := r.db.QueryByIndex(ctx, r.leadsTable(), slotDateIndex, "slotDate", day, &leads); err != nil {
		r.logger.Errorf("Failed to query demo leads for %s: %v", day, err)
		return nil, err
	}
	return leads, nil
}

func (r *LeadRepository) MarkReminderSent(ctx context.Context, id string, at time.Time) error {
	err := r.db.UpdateItem(ctx, r.leadsTable(), "id", id, map[string]interface{}{
		"reminderSentAt": at.UTC(),
		"updatedAt":      at.UTC(),
	})
	if err != nil {
		r.logger.Errorf("Failed to stamp reminder on lead %s: %v", id, err)
	}
	return err
}

package services

import (
	"aihub-backend/models"
	"time"
)

// FreeSlots returns the fixed time slots not held by an active demo lead on date, in their fixed order.
// The lead with excludeID is ignored so a lead never conflicts with itself.
func FreeSlots(leads []*models.Lead, date time.Time, excludeID string) []string {
	day := date.UTC().Format(models.DateLayout)

	booked := make(map[string]struct{})
	for _, lead := range leads {
		if lead == nil || lead.ID == excludeID || !lead.HoldsSlot() {
			continue
		}
		if lead.DemoDetails.PreferredDate.UTC().Format(models.DateLayout) != day {
			continue
		}
		booked[lead.DemoDetails.PreferredTime] = struct{}{}
	}

	free := make([]string, 0, len(models.TimeSlots))
	for _, slot := range models.TimeSlots {
		if _, taken := booked[slot]; !taken {
			free = append(free, slot)
		}
	}
	return free
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

package services

import (
	"aihub-backend/models"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRecentNewestFirst(t *testing.T) {
	svc := NewActivityService(newQuietLogger())
	svc.Append("first", nil)
	svc.Append("second", map[string]interface{}{"n": 2})

	recent := svc.Recent(10)

	require.Len(t, recent, 2)
	assert.Equal(t, "second", recent[0].Event)
	assert.Equal(t, "first", recent[1].Event)
}

func TestActivityEvictsOldest(t *testing.T) {
	svc := NewActivityService(newQuietLogger())
	for i := 0; i <= ActivityCapacity; i++ {
		svc.Append(fmt.Sprintf("event-%d", i), nil)
	}

	stats := svc.Stats()
	assert.Equal(t, ActivityCapacity, stats.Total)
	assert.Zero(t, stats.ByEvent["event-0"])

	recent := svc.Recent(5)
	require.Len(t, recent, 5)
	assert.Equal(t, "event-1000", recent[0].Event)
	assert.Equal(t, "event-996", recent[4].Event)
}

func TestActivityRecentDefaultLimit(t *testing.T) {
	svc := NewActivityService(newQuietLogger())
	for i := 0; i < 30; i++ {
		svc.Append("tick", nil)
	}

	assert.Len(t, svc.Recent(0), 20)
}

func TestActivityStatsLast24h(t *testing.T) {
	svc := NewActivityService(newQuietLogger())
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return now.Add(-48 * time.Hour) }
	svc.Append("demo_booked", nil)
	svc.now = func() time.Time { return now.Add(-time.Hour) }
	svc.Append("demo_booked", nil)
	svc.Append("contact_submitted", nil)
	svc.now = func() time.Time { return now }

	stats := svc.Stats()

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Last24h)
	assert.Equal(t, map[string]int{"demo_booked": 2, "contact_submitted": 1}, stats.ByEvent)
}

func TestActivityConcurrentAppend(t *testing.T) {
	svc := NewActivityService(newQuietLogger())
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				svc.Append("tick", nil)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, ActivityCapacity, svc.Stats().Total)
}

func TestActivityLogValidates(t *testing.T) {
	svc := NewActivityService(newQuietLogger())

	err := svc.Log(&models.LogActivityRequest{Event: "  "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "event", verr.Fields[0].Field)

	require.NoError(t, svc.Log(&models.LogActivityRequest{
		Event:   " pricing_viewed ",
		Payload: map[string]interface{}{"plan": "growth"},
	}))
	recent := svc.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, "pricing_viewed", recent[0].Event)
	assert.Equal(t, "growth", recent[0].Payload["plan"])
}

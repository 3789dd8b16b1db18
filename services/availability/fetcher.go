package availability

import (
	"context"
	"time"

	"citaflow/models"
	"citaflow/services/scheduling"
	"citaflow/utils"

	"go.uber.org/zap"
)

// SlotFetcher retrieves availability snapshots from the scheduling API,
// normalizing the wire payload and keeping the slot cache warm. Cache hits
// short-circuit without a network call.
type SlotFetcher struct {
	client scheduling.Client
	cache  SlotCache
	clock  Clock
}

// NewSlotFetcher builds a fetcher over the given client and cache.
func NewSlotFetcher(client scheduling.Client, cache SlotCache) *SlotFetcher {
	return &SlotFetcher{client: client, cache: cache, clock: realClock{}}
}

// Fetch returns the snapshot for one (sede, modality, date) key, serving from
// cache when possible. Any missing key component yields an empty snapshot
// without network access. Transport failures surface as *scheduling.NetworkError.
func (f *SlotFetcher) Fetch(ctx context.Context, sedeID, modalityID, date string) (*models.AvailabilitySnapshot, error) {
	if sedeID == "" || modalityID == "" || date == "" {
		return f.emptySnapshot(sedeID, modalityID, date), nil
	}

	key := SnapshotKey(sedeID, modalityID, date)
	if snapshot, ok := f.cache.Get(ctx, key); ok {
		return snapshot, nil
	}
	return f.refresh(ctx, key, sedeID, modalityID, date)
}

// Refresh bypasses the cache read and fetches a fresh snapshot, still storing
// it for later hits. The pre-submit capacity re-check uses this path so a
// competing booking made since the last fetch is observed.
func (f *SlotFetcher) Refresh(ctx context.Context, sedeID, modalityID, date string) (*models.AvailabilitySnapshot, error) {
	if sedeID == "" || modalityID == "" || date == "" {
		return f.emptySnapshot(sedeID, modalityID, date), nil
	}
	key := SnapshotKey(sedeID, modalityID, date)
	return f.refresh(ctx, key, sedeID, modalityID, date)
}

func (f *SlotFetcher) refresh(ctx context.Context, key, sedeID, modalityID, date string) (*models.AvailabilitySnapshot, error) {
	payload, err := f.client.AvailableSchedules(ctx, sedeID, modalityID, date)
	if err != nil {
		return nil, err
	}

	snapshot := f.normalize(sedeID, modalityID, date, payload)
	f.cache.Put(ctx, key, snapshot)
	return snapshot, nil
}

// normalize converts the wire payload into the validated snapshot shape.
// Malformed templates or slots are dropped with a log line instead of
// propagating half-formed entries into the validation pipeline.
func (f *SlotFetcher) normalize(sedeID, modalityID, date string, payload []scheduling.SchedulePayload) *models.AvailabilitySnapshot {
	logger := utils.GetLogger()
	entries := make([]models.TemplateSlots, 0, len(payload))

	for _, schedule := range payload {
		template, err := models.NewTimeTemplate(
			schedule.Template.ID,
			schedule.Template.Name,
			schedule.Template.StartTime,
			schedule.Template.EndTime,
		)
		if err != nil {
			logger.Warn("dropping malformed time template", zap.Error(err))
			continue
		}

		slots := make([]models.Slot, 0, len(schedule.Slots))
		for _, raw := range schedule.Slots {
			slot, err := models.NewSlot(raw.StartTime, raw.EndTime, raw.AvailableCapacity, raw.TotalCapacity)
			if err != nil {
				logger.Warn("dropping malformed slot", zap.String("template", template.ID), zap.Error(err))
				continue
			}
			slots = append(slots, slot)
		}
		entries = append(entries, models.TemplateSlots{Template: template, Slots: slots})
	}

	return &models.AvailabilitySnapshot{
		SedeID:     sedeID,
		ModalityID: modalityID,
		Date:       date,
		Entries:    entries,
		FetchedAt:  f.clock.Now(),
	}
}

func (f *SlotFetcher) emptySnapshot(sedeID, modalityID, date string) *models.AvailabilitySnapshot {
	return &models.AvailabilitySnapshot{
		SedeID:     sedeID,
		ModalityID: modalityID,
		Date:       date,
		Entries:    []models.TemplateSlots{},
		FetchedAt:  f.clock.Now(),
	}
}

// Clock abstracts time.Now so date-sensitive rules and snapshots are testable
// with a frozen clock.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

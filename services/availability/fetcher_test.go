package availability

import (
	"context"
	"testing"
	"time"

	"citaflow/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchEmptyKeyComponentSkipsNetwork(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{schedules: morningPayload(3, 5)}
	fetcher := NewSlotFetcher(client, NewMemorySlotCache())

	for _, args := range [][3]string{
		{"", "2", "2026-08-31"},
		{"10", "", "2026-08-31"},
		{"10", "2", ""},
	} {
		snapshot, err := fetcher.Fetch(ctx, args[0], args[1], args[2])
		require.NoError(t, err)
		assert.Empty(t, snapshot.Entries)
	}

	schedules, _ := client.calls()
	assert.Zero(t, schedules, "incomplete keys must not hit the network")
}

func TestFetchCachesAndShortCircuits(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{schedules: morningPayload(3, 5)}
	fetcher := NewSlotFetcher(client, NewMemorySlotCache())

	first, err := fetcher.Fetch(ctx, "10", "2", "2026-08-31")
	require.NoError(t, err)
	require.Len(t, first.Entries, 1)

	second, err := fetcher.Fetch(ctx, "10", "2", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, first, second, "cache hit must return identical data")

	schedules, _ := client.calls()
	assert.Equal(t, 1, schedules, "second fetch for the same key must be served from cache")
}

func TestFetchDistinctKeysFetchSeparately(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{schedules: morningPayload(3, 5)}
	fetcher := NewSlotFetcher(client, NewMemorySlotCache())

	_, err := fetcher.Fetch(ctx, "10", "2", "2026-08-31")
	require.NoError(t, err)
	_, err = fetcher.Fetch(ctx, "10", "2", "2026-09-01")
	require.NoError(t, err)

	schedules, _ := client.calls()
	assert.Equal(t, 2, schedules)
}

func TestRefreshBypassesCacheRead(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{schedules: morningPayload(3, 5)}
	fetcher := NewSlotFetcher(client, NewMemorySlotCache())

	_, err := fetcher.Fetch(ctx, "10", "2", "2026-08-31")
	require.NoError(t, err)

	// A competing agent books the slot out from under the cache.
	client.mu.Lock()
	client.schedules = morningPayload(0, 5)
	client.mu.Unlock()

	refreshed, err := fetcher.Refresh(ctx, "10", "2", "2026-08-31")
	require.NoError(t, err)
	slot, found := refreshed.FindSlot("09:00")
	require.True(t, found)
	assert.Zero(t, slot.AvailableCapacity)

	// The refreshed snapshot replaces the cached entry.
	cached, err := fetcher.Fetch(ctx, "10", "2", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, refreshed, cached)
}

func TestFetchPropagatesNetworkError(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{schedulesErr: &scheduling.NetworkError{Op: "schedules/available", Status: 503}}
	fetcher := NewSlotFetcher(client, NewMemorySlotCache())

	_, err := fetcher.Fetch(ctx, "10", "2", "2026-08-31")
	var netErr *scheduling.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, 503, netErr.Status)
}

func TestNormalizeRejectsMalformedEntries(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{
		schedules: []scheduling.SchedulePayload{
			{
				Template: scheduling.TemplatePayload{ID: "", Name: "Broken", StartTime: "08:00", EndTime: "12:00"},
				Slots:    []scheduling.SlotPayload{{StartTime: "09:00", EndTime: "09:30", AvailableCapacity: 1, TotalCapacity: 2}},
			},
			{
				Template: scheduling.TemplatePayload{ID: "tpl-2", Name: "Afternoon", StartTime: "13:00", EndTime: "17:00"},
				Slots: []scheduling.SlotPayload{
					{StartTime: "25:99", EndTime: "14:30", AvailableCapacity: 1, TotalCapacity: 2},
					{StartTime: "14:00", EndTime: "14:30", AvailableCapacity: 9, TotalCapacity: 2},
					{StartTime: "15:00", EndTime: "15:30", AvailableCapacity: 2, TotalCapacity: 2},
				},
			},
		},
	}
	fetcher := NewSlotFetcher(client, NewMemorySlotCache())
	fetcher.clock = fixedClock{t: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)}

	snapshot, err := fetcher.Fetch(ctx, "10", "2", "2026-08-31")
	require.NoError(t, err)

	require.Len(t, snapshot.Entries, 1, "template without id must be dropped")
	assert.Equal(t, "tpl-2", snapshot.Entries[0].Template.ID)
	require.Len(t, snapshot.Entries[0].Slots, 1, "malformed slots must be dropped")
	assert.Equal(t, "15:00", snapshot.Entries[0].Slots[0].StartTime)
	assert.Equal(t, fetcher.clock.Now(), snapshot.FetchedAt)
}

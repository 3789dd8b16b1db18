package availability

import (
	"context"
	"testing"

	"citaflow/models"
	"citaflow/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineFullSelectionValid(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{
		schedules: morningPayload(3, 5),
		sedes:     []scheduling.SedePayload{{ID: "10"}},
	}
	p := newTestPipeline(client)

	state, err := p.Run(ctx, fullSelection("09:00"))
	require.NoError(t, err)
	assert.True(t, state.IsValid)
	assert.Empty(t, state.Errors)
	assert.Empty(t, state.Warnings)
	assert.False(t, state.Unavailable)
}

func TestPipelineNoCapacityPublishesSlotError(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{
		schedules: morningPayload(0, 5),
		sedes:     []scheduling.SedePayload{{ID: "10"}},
	}
	p := newTestPipeline(client)

	state, err := p.Run(ctx, fullSelection("09:00"))
	require.NoError(t, err)
	assert.False(t, state.IsValid)
	assert.Equal(t, map[string]string{RuleSlot: "No hay capacidad disponible"}, state.Errors)
}

func TestPipelineAggregatesIndependentFailures(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{
		schedules: morningPayload(3, 5),
		sedes:     []scheduling.SedePayload{{ID: "77"}},
	}
	p := newTestPipeline(client)

	sel := fullSelection("10:00")
	sel.Date = "2026-01-01" // past
	state, err := p.Run(ctx, sel)
	require.NoError(t, err)
	assert.False(t, state.IsValid)
	assert.Contains(t, state.Errors, RuleDate)
	assert.Contains(t, state.Errors, RuleModality)
	assert.Contains(t, state.Errors, RuleSlot)
}

func TestPipelineIncompleteSelectionAbstains(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{sedes: []scheduling.SedePayload{{ID: "10"}}}
	p := newTestPipeline(client)

	// Only the date is set: date rule passes, the other rules abstain.
	state, err := p.Run(ctx, models.Selection{Date: "2026-08-31"})
	require.NoError(t, err)
	assert.True(t, state.IsValid)
	assert.Empty(t, state.Errors)
}

func TestPipelineLastSlotWarningDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{
		schedules: morningPayload(1, 5),
		sedes:     []scheduling.SedePayload{{ID: "10"}},
	}
	p := newTestPipeline(client)

	state, err := p.Run(ctx, fullSelection("09:00"))
	require.NoError(t, err)
	assert.True(t, state.IsValid)
	assert.Equal(t, msgLastSlotWarning, state.Warnings[RuleSlot])
}

func TestPipelineRebuildsMapsWholesale(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{
		schedules: morningPayload(0, 5),
		sedes:     []scheduling.SedePayload{{ID: "10"}},
	}
	p := newTestPipeline(client)

	state, err := p.Run(ctx, fullSelection("09:00"))
	require.NoError(t, err)
	require.Contains(t, state.Errors, RuleSlot)

	// Capacity recovers; the stale slot error must not survive the next run.
	client.mu.Lock()
	client.schedules = morningPayload(4, 5)
	client.mu.Unlock()

	state, err = p.RunPreSubmit(ctx, fullSelection("09:00"))
	require.NoError(t, err)
	assert.True(t, state.IsValid)
	assert.Empty(t, state.Errors)
}

func TestPipelinePropagatesNetworkError(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{sedesErr: &scheduling.NetworkError{Op: "available-sedes", Status: 500}}
	p := newTestPipeline(client)

	_, err := p.Run(ctx, fullSelection("09:00"))
	var netErr *scheduling.NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestPipelinePreSubmitSeesFreshCapacity(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{
		schedules: morningPayload(1, 5),
		sedes:     []scheduling.SedePayload{{ID: "10"}},
	}
	p := newTestPipeline(client)

	state, err := p.Run(ctx, fullSelection("09:00"))
	require.NoError(t, err)
	require.True(t, state.IsValid)

	// Another agent books the last unit; the cached snapshot is now a lie.
	client.mu.Lock()
	client.schedules = morningPayload(0, 5)
	client.mu.Unlock()

	state, err = p.Run(ctx, fullSelection("09:00"))
	require.NoError(t, err)
	assert.True(t, state.IsValid, "cached run cannot see the remote change")

	state, err = p.RunPreSubmit(ctx, fullSelection("09:00"))
	require.NoError(t, err)
	assert.False(t, state.IsValid)
	assert.Equal(t, msgNoCapacity, state.Errors[RuleSlot])
}

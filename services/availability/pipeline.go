package availability

import (
	"context"

	"citaflow/models"
	"citaflow/services/scheduling"
)

// Pipeline composes the three validation rules into one aggregate result.
// Rule failures never escape as Go errors; only a *scheduling.NetworkError
// from a remote rule aborts the run, for the coordinator to translate into
// the "can't determine availability" state.
type Pipeline struct {
	client  scheduling.Client
	fetcher *SlotFetcher
	clock   Clock
}

// NewPipeline builds a pipeline over the scheduling client and slot fetcher.
func NewPipeline(client scheduling.Client, fetcher *SlotFetcher) *Pipeline {
	return &Pipeline{client: client, fetcher: fetcher, clock: realClock{}}
}

// Run evaluates all rules against the selection, serving capacity data from
// cache when warm.
func (p *Pipeline) Run(ctx context.Context, sel models.Selection) (models.ValidationState, error) {
	return p.run(ctx, sel, false)
}

// RunPreSubmit evaluates all rules with a forced capacity refresh. It narrows
// (without eliminating) the window in which another agent books the same slot
// between validation and submission.
func (p *Pipeline) RunPreSubmit(ctx context.Context, sel models.Selection) (models.ValidationState, error) {
	return p.run(ctx, sel, true)
}

func (p *Pipeline) run(ctx context.Context, sel models.Selection, refresh bool) (models.ValidationState, error) {
	state := models.NewValidationState()

	date := EvaluateDate(sel.Date, p.clock.Now())

	compatibility, err := p.evaluateCompatibility(ctx, sel)
	if err != nil {
		return state, err
	}

	capacity, err := p.evaluateCapacity(ctx, sel, refresh)
	if err != nil {
		return state, err
	}

	// Errors and warnings are rebuilt wholesale on every pass so no stale
	// entry survives a rule becoming inapplicable.
	valid := true
	for key, result := range map[string]RuleResult{
		RuleDate:     date,
		RuleModality: compatibility,
		RuleSlot:     capacity,
	} {
		if !result.Applicable {
			continue
		}
		if result.Err != nil {
			state.Errors[key] = result.Err.Message
			valid = false
		}
		if result.Warning != "" {
			state.Warnings[key] = result.Warning
		}
	}

	state.IsValid = valid
	return state, nil
}

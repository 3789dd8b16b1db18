package availability

import (
	"context"
	"time"

	"citaflow/models"
)

// farDateWarningDays is the horizon beyond which a selectable date earns a
// non-blocking warning.
const farDateWarningDays = 30

// RuleResult is the outcome of one rule evaluation. A rule with incomplete
// inputs abstains (Applicable=false): it neither blocks validity nor counts
// as passing.
type RuleResult struct {
	Applicable bool
	Valid      bool
	Err        *ValidationError
	Warning    string
}

func abstained() RuleResult {
	return RuleResult{}
}

func passed(warning string) RuleResult {
	return RuleResult{Applicable: true, Valid: true, Warning: warning}
}

func failed(err *ValidationError) RuleResult {
	return RuleResult{Applicable: true, Err: err}
}

// EvaluateDate checks that the selected date is not in the past and warns,
// without blocking, when it is more than 30 calendar days out. A date that
// passes the minimum check always clears any previous date error, whatever
// the warning status.
func EvaluateDate(date string, now time.Time) RuleResult {
	if date == "" {
		return abstained()
	}

	parsed, err := time.ParseInLocation(models.DateLayout, date, now.Location())
	if err != nil {
		return failed(newValidationError(CodeInvalidDate, msgInvalidDate))
	}

	today := midnight(now)
	if parsed.Before(today) {
		return failed(newValidationError(CodePastDate, msgPastDate))
	}

	if parsed.After(today.AddDate(0, 0, farDateWarningDays)) {
		return passed(msgFarDateWarning)
	}
	return passed("")
}

// evaluateCompatibility checks that the modality is offered at the sede,
// per the scheduling API's available-sedes listing. Missing ids mean an
// incomplete selection, not a bad one, so the rule abstains.
func (p *Pipeline) evaluateCompatibility(ctx context.Context, sel models.Selection) (RuleResult, error) {
	if sel.SedeID == "" || sel.ModalityID == "" {
		return abstained(), nil
	}

	sedes, err := p.client.AvailableSedes(ctx, sel.ModalityID)
	if err != nil {
		return abstained(), err
	}

	for _, sede := range sedes {
		if sede.ID == sel.SedeID {
			return passed(""), nil
		}
	}
	return failed(newValidationError(CodeIncompatibleModality, msgIncompatibleModality)), nil
}

// evaluateCapacity checks that the selected time matches a slot with
// remaining capacity. This is the only rule a remote actor can invalidate
// between validation and submission, so the pre-submit path re-runs it
// against a refreshed snapshot.
func (p *Pipeline) evaluateCapacity(ctx context.Context, sel models.Selection, refresh bool) (RuleResult, error) {
	if !sel.Complete() {
		return abstained(), nil
	}

	var snapshot *models.AvailabilitySnapshot
	var err error
	if refresh {
		snapshot, err = p.fetcher.Refresh(ctx, sel.SedeID, sel.ModalityID, sel.Date)
	} else {
		snapshot, err = p.fetcher.Fetch(ctx, sel.SedeID, sel.ModalityID, sel.Date)
	}
	if err != nil {
		return abstained(), err
	}

	slot, found := snapshot.FindSlot(sel.Time)
	if !found {
		return failed(newValidationError(CodeSlotNotFound, msgSlotNotFound)), nil
	}
	if slot.AvailableCapacity <= 0 {
		return failed(newValidationError(CodeNoCapacity, msgNoCapacity)), nil
	}
	if slot.AvailableCapacity == 1 {
		return passed(msgLastSlotWarning), nil
	}
	return passed(""), nil
}

package lifecycle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vfxworks_backend/pkg/apperrors"
)

func TestJobTransitions(t *testing.T) {
	allowed := [][2]string{
		{"draft", "open"},
		{"draft", "cancelled"},
		{"open", "under_review"},
		{"open", "cancelled"},
		{"under_review", "awarded"},
		{"under_review", "open"},
		{"under_review", "cancelled"},
		{"awarded", "in_progress"},
		{"awarded", "cancelled"},
		{"in_progress", "completed"},
		{"in_progress", "cancelled"},
	}
	for _, pair := range allowed {
		assert.NoError(t, Transition(JobTransitions, "job", pair[0], pair[1]),
			"%s -> %s should be allowed", pair[0], pair[1])
	}

	denied := [][2]string{
		{"draft", "under_review"},
		{"draft", "awarded"},
		{"open", "awarded"},
		{"open", "draft"},
		{"awarded", "open"},
		{"awarded", "completed"},
		{"in_progress", "open"},
		{"completed", "open"},
		{"completed", "cancelled"},
		{"cancelled", "draft"},
		{"open", "open"},
	}
	for _, pair := range denied {
		assert.Error(t, Transition(JobTransitions, "job", pair[0], pair[1]),
			"%s -> %s should be rejected", pair[0], pair[1])
	}
}

func TestBidTransitions(t *testing.T) {
	assert.NoError(t, Transition(BidTransitions, "bid", "pending", "shortlisted"))
	assert.NoError(t, Transition(BidTransitions, "bid", "pending", "accepted"))
	assert.NoError(t, Transition(BidTransitions, "bid", "shortlisted", "pending"))
	assert.NoError(t, Transition(BidTransitions, "bid", "shortlisted", "accepted"))

	assert.Error(t, Transition(BidTransitions, "bid", "accepted", "rejected"))
	assert.Error(t, Transition(BidTransitions, "bid", "rejected", "pending"))
}

func TestContractTransitions(t *testing.T) {
	assert.NoError(t, Transition(ContractTransitions, "contract", "active", "disputed"))
	assert.NoError(t, Transition(ContractTransitions, "contract", "disputed", "active"))
	assert.NoError(t, Transition(ContractTransitions, "contract", "disputed", "terminated"))

	assert.Error(t, Transition(ContractTransitions, "contract", "completed", "active"))
	assert.Error(t, Transition(ContractTransitions, "contract", "terminated", "disputed"))
}

func TestMilestoneTransitionsAreLinear(t *testing.T) {
	assert.NoError(t, Transition(MilestoneTransitions, "milestone", "pending", "in_review"))
	assert.NoError(t, Transition(MilestoneTransitions, "milestone", "in_review", "approved"))
	assert.NoError(t, Transition(MilestoneTransitions, "milestone", "approved", "paid"))

	assert.Error(t, Transition(MilestoneTransitions, "milestone", "pending", "approved"))
	assert.Error(t, Transition(MilestoneTransitions, "milestone", "approved", "in_review"))
	assert.Error(t, Transition(MilestoneTransitions, "milestone", "paid", "pending"))
}

func TestDeliverableTransitions(t *testing.T) {
	assert.NoError(t, Transition(DeliverableTransitions, "deliverable", "submitted", "approved"))
	assert.NoError(t, Transition(DeliverableTransitions, "deliverable", "changes_requested", "submitted"))
	assert.NoError(t, Transition(DeliverableTransitions, "deliverable", "changes_requested", "approved"))

	assert.Error(t, Transition(DeliverableTransitions, "deliverable", "approved", "submitted"))
	assert.Error(t, Transition(DeliverableTransitions, "deliverable", "approved", "changes_requested"))
}

func TestTransitionErrorShape(t *testing.T) {
	err := Transition(JobTransitions, "job", "awarded", "open")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Contains(t, appErr.Message, `"awarded"`)
	assert.Contains(t, appErr.Message, `"open"`)
}

func TestTerminal(t *testing.T) {
	assert.True(t, Terminal(JobTransitions, "completed"))
	assert.True(t, Terminal(JobTransitions, "cancelled"))
	assert.False(t, Terminal(JobTransitions, "awarded"))

	assert.True(t, Terminal(BidTransitions, "accepted"))
	assert.True(t, Terminal(ContractTransitions, "terminated"))
	assert.True(t, Terminal(DeliverableTransitions, "approved"))
}

func TestUnknownStatusIsTerminalAndUnreachable(t *testing.T) {
	assert.True(t, Terminal(JobTransitions, "bogus"))
	assert.Error(t, Transition(JobTransitions, "job", "bogus", "open"))
	assert.False(t, CanTransition(JobTransitions, "draft", "bogus"))
}

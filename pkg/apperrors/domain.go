package apperrors

import (
	"fmt"
	"net/http"
)

// Factories and predefined variables for the lifecycle domains.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound) into a 404.
func ErrNotFound(err error, domain string) *AppError {
	return Wrap(err, CodeNotFound, domain, fmt.Sprintf("%s not found", domain), http.StatusNotFound)
}

// ErrInvalidTransition names the rejected current/target status pair.
func ErrInvalidTransition(domain, from, to string) *AppError {
	return New(
		CodeInvalidTransition,
		domain,
		fmt.Sprintf("invalid %s status transition from %q to %q", domain, from, to),
		http.StatusBadRequest,
	)
}

// ErrImmutableState reports a mutation attempted on a terminal or locked record.
func ErrImmutableState(domain, message string) *AppError {
	return New(CodeImmutableState, domain, message, http.StatusBadRequest)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"insufficient permissions",
	http.StatusForbidden,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"auth",
	"operation is not available for this role",
	http.StatusBadRequest,
)

// --- Jobs ---

var ErrJobNotOpen = New(
	CodeInvalidOperation,
	"job",
	"job is not open for bidding",
	http.StatusBadRequest,
)

var ErrBidDeadlineRequired = New(
	CodeValidationFailed,
	"job",
	"freelance open-bid jobs require a bid deadline before publishing",
	http.StatusBadRequest,
)

var ErrAssigneeRequired = New(
	CodeValidationFailed,
	"job",
	"direct-assignment jobs require at least one assignee",
	http.StatusBadRequest,
)

var ErrJobLocked = New(
	CodeImmutableState,
	"job",
	"job can no longer be modified in its current status",
	http.StatusBadRequest,
)

// --- Bids ---

var ErrDuplicateBid = New(
	CodeAlreadyExists,
	"bid",
	"a bid from this user already exists for this job",
	http.StatusBadRequest,
)

var ErrBidDeadlinePassed = New(
	CodeInvalidOperation,
	"bid",
	"the bid deadline for this job has passed",
	http.StatusBadRequest,
)

var ErrBidAccepted = New(
	CodeImmutableState,
	"bid",
	"an accepted bid cannot be modified",
	http.StatusBadRequest,
)

var ErrBidNotPending = New(
	CodeInvalidOperation,
	"bid",
	"only pending bids can be edited or withdrawn",
	http.StatusBadRequest,
)

var ErrJobAlreadyAwarded = New(
	CodeImmutableState,
	"bid",
	"another bid has already been accepted for this job",
	http.StatusBadRequest,
)

// --- Contracts & milestones ---

var ErrContractClosed = New(
	CodeImmutableState,
	"contract",
	"contract is in a terminal status and cannot change",
	http.StatusBadRequest,
)

var ErrContractNotActive = New(
	CodeInvalidOperation,
	"contract",
	"contract is not active",
	http.StatusBadRequest,
)

var ErrMilestoneNotPending = New(
	CodeInvalidOperation,
	"milestone",
	"only pending milestones can be deleted",
	http.StatusBadRequest,
)

// --- Reviews ---

var ErrDuplicateReview = New(
	CodeAlreadyExists,
	"review",
	"a review already exists for this contract",
	http.StatusBadRequest,
)

var ErrContractNotCompleted = New(
	CodeInvalidOperation,
	"review",
	"reviews can only be created for completed contracts",
	http.StatusBadRequest,
)

package validator

import (
	"log"
	"regexp"

	"github.com/go-playground/validator/v10"

	"vfxworks_backend/internal/models"
)

var frameRangePattern = regexp.MustCompile(`^\d+-\d+$`)
var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup bug, not a
			// runtime condition.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-job-status", validateJobStatus)
	mustRegister("is-job-type", validateJobType)
	mustRegister("is-payment-type", validatePaymentType)
	mustRegister("is-bid-status", validateBidStatus)
	mustRegister("is-contract-status", validateContractStatus)
	mustRegister("is-currency", validateCurrency)
	mustRegister("is-frame-range", validateFrameRange)
}

// Empty values pass every rule below; 'required' is a separate concern.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleArtist, models.UserRoleStudio, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateJobStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.JobStatus(value) {
	case models.JobStatusDraft, models.JobStatusOpen, models.JobStatusUnderReview,
		models.JobStatusAwarded, models.JobStatusInProgress,
		models.JobStatusCompleted, models.JobStatusCancelled:
		return true
	default:
		return false
	}
}

func validateJobType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.JobType(value) {
	case models.JobTypeStudioSalaried, models.JobTypeFreelance:
		return true
	default:
		return false
	}
}

func validatePaymentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PaymentType(value) {
	case models.PaymentTypeFixed, models.PaymentTypePerShot,
		models.PaymentTypePerFrame, models.PaymentTypeHourly:
		return true
	default:
		return false
	}
}

func validateBidStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.BidStatus(value) {
	case models.BidStatusPending, models.BidStatusShortlisted,
		models.BidStatusRejected, models.BidStatusAccepted:
		return true
	default:
		return false
	}
}

func validateContractStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ContractStatus(value) {
	case models.ContractStatusActive, models.ContractStatusCompleted,
		models.ContractStatusTerminated, models.ContractStatusDisputed:
		return true
	default:
		return false
	}
}

func validateCurrency(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return currencyPattern.MatchString(value)
}

func validateFrameRange(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return frameRangePattern.MatchString(value)
}

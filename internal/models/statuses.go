package models

type UserRole string
type JobStatus string
type JobType string
type AssignmentMode string
type PaymentType string
type BidStatus string
type ContractStatus string
type MilestoneStatus string
type DeliverableStatus string
type DeliverablesState string

const (
	UserRoleArtist UserRole = "artist"
	UserRoleStudio UserRole = "studio"
	UserRoleAdmin  UserRole = "admin"

	JobStatusDraft       JobStatus = "draft"
	JobStatusOpen        JobStatus = "open"
	JobStatusUnderReview JobStatus = "under_review"
	JobStatusAwarded     JobStatus = "awarded"
	JobStatusInProgress  JobStatus = "in_progress"
	JobStatusCompleted   JobStatus = "completed"
	JobStatusCancelled   JobStatus = "cancelled"

	JobTypeStudioSalaried JobType = "studio_salaried"
	JobTypeFreelance      JobType = "freelance"

	AssignmentModeDirect AssignmentMode = "direct"
	AssignmentModeOpen   AssignmentMode = "open"

	PaymentTypeFixed    PaymentType = "fixed"
	PaymentTypePerShot  PaymentType = "per_shot"
	PaymentTypePerFrame PaymentType = "per_frame"
	PaymentTypeHourly   PaymentType = "hourly"

	BidStatusPending     BidStatus = "pending"
	BidStatusShortlisted BidStatus = "shortlisted"
	BidStatusRejected    BidStatus = "rejected"
	BidStatusAccepted    BidStatus = "accepted"

	ContractStatusActive     ContractStatus = "active"
	ContractStatusCompleted  ContractStatus = "completed"
	ContractStatusTerminated ContractStatus = "terminated"
	ContractStatusDisputed   ContractStatus = "disputed"

	MilestoneStatusPending  MilestoneStatus = "pending"
	MilestoneStatusInReview MilestoneStatus = "in_review"
	MilestoneStatusApproved MilestoneStatus = "approved"
	MilestoneStatusPaid     MilestoneStatus = "paid"

	DeliverableStatusSubmitted        DeliverableStatus = "submitted"
	DeliverableStatusApproved         DeliverableStatus = "approved"
	DeliverableStatusChangesRequested DeliverableStatus = "changes_requested"

	DeliverablesStatePending          DeliverablesState = "pending"
	DeliverablesStateApproved         DeliverablesState = "approved"
	DeliverablesStateChangesRequested DeliverablesState = "changes_requested"
)

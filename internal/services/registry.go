package services

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	JobService          JobService
	BidService          BidService
	ContractService     ContractService
	DeliverableService  DeliverableService
	ReviewService       ReviewService
	NotificationService NotificationService
}

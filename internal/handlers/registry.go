package handlers

// AppHandlers holds every route handler the router mounts.
type AppHandlers struct {
	JobHandler          *JobHandler
	BidHandler          *BidHandler
	ContractHandler     *ContractHandler
	DeliverableHandler  *DeliverableHandler
	ReviewHandler       *ReviewHandler
	NotificationHandler *NotificationHandler
}

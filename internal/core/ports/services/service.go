package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User          UserSvcFacade
	Token         TokenSvcFacade
	GoogleOAuth   GoogleOAuthSvcFacade
	Client        ClientSvcFacade
	Platform      PlatformSvcFacade
	Collaboration CollaborationSvcFacade
	Project       ProjectSvcFacade
	Transaction   TransactionSvcFacade
	Expense       ExpenseSvcFacade
	Dashboard     DashboardSvcFacade
}

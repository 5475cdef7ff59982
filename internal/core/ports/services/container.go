package services

// ServiceContainer holds instances of all the application services. This is
// the entry point for accessing use-case functionality from the handlers.
type ServiceContainer struct {
	Asset      AssetSvcFacade
	AssetAdmin AssetAdminSvcFacade
	System     SystemSvcFacade
	Auth       AuthSvcFacade
}

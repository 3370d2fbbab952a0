package services

// ServiceContainer holds instances of all the application services.
// It is built once in main and handed to the handlers and tools.
type ServiceContainer struct {
	FinancialReport FinancialReportSvcFacade
	DataImport      DataImportSvcFacade
	PNT11           PNT11SvcFacade
}

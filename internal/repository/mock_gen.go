// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./organization.go -destination=../mocks/mock_organization_repository.go -package=mocks OrganizationRepositoryIface
//go:generate mockgen -source=./profile.go -destination=../mocks/mock_profile_repository.go -package=mocks ProfileRepositoryIface
//go:generate mockgen -source=./subscription.go -destination=../mocks/mock_subscription_repository.go -package=mocks SubscriptionRepositoryIface
//go:generate mockgen -source=./seat_allocation.go -destination=../mocks/mock_seat_allocation_repository.go -package=mocks SeatAllocationRepositoryIface
//go:generate mockgen -source=./invoice.go -destination=../mocks/mock_invoice_repository.go -package=mocks InvoiceRepositoryIface
//go:generate mockgen -source=./audit_log.go -destination=../mocks/mock_audit_log_repository.go -package=mocks AuditLogRepositoryIface
//go:generate mockgen -source=./legacy.go -destination=../mocks/mock_legacy_repository.go -package=mocks LegacyRepositoryIface
//go:generate mockgen -source=./purge.go -destination=../mocks/mock_purge_repository.go -package=mocks PurgeRepositoryIface

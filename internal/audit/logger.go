// internal/audit/logger.go
package audit

import (
	"context"

	"github.com/google/uuid"
)

// Entry is the write-side shape of one audit record. The logger collaborator
// is fire-and-forget from the caller's perspective: implementations may fail,
// but callers never abort a business operation because an audit write failed.
type Entry struct {
	OrganizationID *uuid.UUID
	Action         string
	ActorUserID    *uuid.UUID
	ResourceType   string
	ResourceID     string
	Details        map[string]interface{}
	IPAddress      string
	Compliance     bool
	Sensitive      bool
}

// Logger defines the interface for audit trail writes.
type Logger interface {
	// LogAdminAction records an administrative action against an organization.
	LogAdminAction(ctx context.Context, entry Entry) error
}

// NoOpLogger is a logger that does nothing.
type NoOpLogger struct{}

// LogAdminAction implements Logger.LogAdminAction.
func (l *NoOpLogger) LogAdminAction(ctx context.Context, entry Entry) error {
	return nil
}

package repositories

import (
	"context"

	"github.com/carelinkhq/patient-portal/internal/domain/entities"
)

// SessionRepository persists authenticated sessions across portal restarts.
// Implementations keep the bearer token under its own key so the route guard
// can check presence without deserializing the whole session record.
type SessionRepository interface {
	// Save stores the session record and mirrors its token.
	Save(ctx context.Context, session *entities.Session) error

	// FindByID returns the session record, or nil when absent.
	FindByID(ctx context.Context, id string) (*entities.Session, error)

	// Token returns the stored bearer token for the session, or "" when absent.
	Token(ctx context.Context, id string) (string, error)

	// Delete removes the session record and its token.
	Delete(ctx context.Context, id string) error
}

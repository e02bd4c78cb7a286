package session

import (
	"context"

	"clearcare/models"
)

// Store is the session context contract. Sessions are keyed by an opaque
// client-supplied token; the store never infers identity from it.
//
// Get on an unknown token returns a zero context with IsReturning=false
// and no error. Put overwrites whole records (last writer wins); no
// cross-token interference is permitted. Delete is idempotent.
type Store interface {
	Get(ctx context.Context, sessionID string) (*models.SessionContext, error)
	Put(ctx context.Context, sessionID string, sc *models.SessionContext) error
	Delete(ctx context.Context, sessionID string) error
}

package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/phu024/elearning-rag-platform/internal/domain"
)

type identityKey struct{}

// Identity is the authenticated caller resolved from the bearer token.
// It is attached per request; there is no process-wide session state.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   domain.Role
}

func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == domain.RoleAdmin
}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func GetIdentity(ctx context.Context) *Identity {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	if !ok {
		return nil
	}
	return id
}

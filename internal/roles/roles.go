package roles

import (
	"errors"
	"log/slog"

	"github.com/rekabarchive/memorial-service/internal/storage"
	"github.com/rekabarchive/memorial-service/internal/types"
)

// Resolver looks up the role attached to an authenticated user.
type Resolver struct {
	storage storage.Storage
}

func NewResolver(storage storage.Storage) *Resolver {
	return &Resolver{storage: storage}
}

// Resolve returns the role for userID. An empty userID resolves to no role
// without touching storage. A missing role row is the baseline role, and so
// is any lookup failure: the site prefers hiding admin controls over failing
// the page when the role table is unreachable.
func (r *Resolver) Resolve(userID string) types.Role {
	if userID == "" {
		return ""
	}

	role, err := r.storage.GetUserRole(userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNoRow) {
			slog.Error("Failed to fetch user role, defaulting to baseline",
				slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return types.RoleUser
	}

	return role
}

// IsAdmin reports whether the resolved role grants upload access.
func (r *Resolver) IsAdmin(userID string) bool {
	return r.Resolve(userID) == types.RoleAdmin
}

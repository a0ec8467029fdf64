package storage

import (
	"errors"

	"github.com/rekabarchive/memorial-service/internal/types"
)

// The backend's error surface is translated once, here, into a closed set.
// Callers branch on these sentinels instead of re-inspecting driver errors.
var (
	// ErrNoRow means a single-row lookup matched nothing. Not a failure for
	// role resolution: absence of a role row is the baseline role.
	ErrNoRow = errors.New("no matching row")

	// ErrAuthRequired means the backend refused the operation for lack of
	// credentials or privileges. List handlers map it to a sign-in prompt
	// rather than a generic failure.
	ErrAuthRequired = errors.New("authentication required")
)

type Storage interface {
	CreateUser(email, hashedPassword string) (string, error)
	GetUserByEmail(email string) (string, string, error)

	// GetUserRole returns ErrNoRow when no role row exists for the user.
	GetUserRole(userID string) (types.Role, error)

	// List operations return the full collection ordered newest-first.
	ListGalleryImages() ([]types.GalleryImage, error)
	CreateGalleryImage(image types.GalleryImage) (string, error)

	ListMusicTracks() ([]types.MusicTrack, error)
	CreateMusicTrack(track types.MusicTrack) (string, error)

	// ListApprovedTributes only ever surfaces rows with the approval flag set.
	ListApprovedTributes() ([]types.Tribute, error)
	// CreateTribute inserts with the approval flag forced false.
	CreateTribute(name, message string) (string, error)
}

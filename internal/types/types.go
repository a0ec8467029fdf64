package types

import "time"

// Role is the access level attached to an authenticated user.
type Role string

const (
	RoleAdmin Role = "admin"
	// RoleUser is the baseline role assumed when no role row exists.
	RoleUser Role = "user"
)

// GalleryImage is a stored photograph and its display metadata. Records are
// insert-only: nothing in the service updates or deletes them after creation.
type GalleryImage struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Year        *int      `json:"year"`
	FilePath    string    `json:"file_path"`
	FileSize    int64     `json:"file_size"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i GalleryImage) FacetValue() string { return i.Category }

func (i GalleryImage) SearchText() (string, string) { return i.Title, i.Description }

// MusicTrack is a stored audio file and its display metadata.
type MusicTrack struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Genre       string    `json:"genre"`
	Year        *int      `json:"year"`
	FilePath    string    `json:"file_path"`
	FileSize    int64     `json:"file_size"`
	CreatedAt   time.Time `json:"created_at"`
}

func (t MusicTrack) FacetValue() string { return t.Genre }

func (t MusicTrack) SearchText() (string, string) { return t.Title, t.Description }

// Tribute is a visitor-submitted memory. Submissions always enter unapproved;
// the approval flag is only ever flipped by out-of-band moderation, and the
// public read path surfaces approved rows exclusively.
type Tribute struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

// ContentUploadRequest carries the metadata fields of a gallery or music
// upload. Year bounds match the form the site has always shipped.
type ContentUploadRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
	Year        *int   `json:"year" validate:"omitempty,gte=1900,lte=2030"`
}

// TrackUploadRequest mirrors ContentUploadRequest for the music page, where
// the facet field is a genre.
type TrackUploadRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Genre       string `json:"genre" validate:"required"`
	Year        *int   `json:"year" validate:"omitempty,gte=1900,lte=2030"`
}

// TributeRequest is a public tribute submission. Any approval value a caller
// sends is ignored.
type TributeRequest struct {
	Name    string `json:"name" validate:"required"`
	Message string `json:"message" validate:"required"`
}

package music

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rekabarchive/memorial-service/internal/content"
	"github.com/rekabarchive/memorial-service/internal/mixcloud"
	"github.com/rekabarchive/memorial-service/internal/services/media"
	"github.com/rekabarchive/memorial-service/internal/storage"
	"github.com/rekabarchive/memorial-service/internal/types"
	"github.com/rekabarchive/memorial-service/internal/utils/response"
)

// ObjectStore is the slice of the media service the music handlers use.
type ObjectStore interface {
	Upload(ctx context.Context, objectKey string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, objectKey string) error
	PublicURL(objectKey string) string
}

// CloudcastLister fetches the artist's published mixes.
type CloudcastLister interface {
	Cloudcasts(ctx context.Context) ([]mixcloud.Cloudcast, error)
}

// TrackView is a music record with its resolved public URL.
type TrackView struct {
	types.MusicTrack
	URL string `json:"url"`
}

type ListResponse struct {
	Tracks []TrackView `json:"tracks"`
	Genres []string    `json:"genres"`
}

// List returns the track collection newest-first with derived genre facets
// @Summary List music tracks
// @Description List all tracks newest-first, optionally filtered by genre and search term
// @Tags music
// @Produce json
// @Param genre query string false "Genre facet, All matches everything"
// @Param q query string false "Case-insensitive search over title and description"
// @Success 200 {object} response.Response "Tracks with derived facets"
// @Failure 401 {object} response.Response "Sign in required"
// @Failure 500 {object} response.Response "Internal server error"
// @Router /music [get]
func List(store storage.Storage, objects ObjectStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracks, err := store.ListMusicTracks()
		if err != nil {
			if errors.Is(err, storage.ErrAuthRequired) {
				response.WriteJSON(w, http.StatusUnauthorized, response.SignInRequired(ListResponse{
					Tracks: []TrackView{},
					Genres: []string{content.AllFacet},
				}))
				return
			}
			slog.Error("Failed to list music tracks", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New("failed to fetch tracks")))
			return
		}

		facets := content.Facets(tracks)
		filtered := content.Filter(tracks, r.URL.Query().Get("q"), r.URL.Query().Get("genre"))

		views := make([]TrackView, 0, len(filtered))
		for _, track := range filtered {
			views = append(views, TrackView{MusicTrack: track, URL: objects.PublicURL(track.FilePath)})
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Tracks fetched successfully", ListResponse{
			Tracks: views,
			Genres: facets,
		}))
	}
}

// Upload handles an admin music track upload
// @Summary Upload a music track
// @Description Upload an audio file with metadata; admin role required
// @Tags music
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Track title"
// @Param description formData string false "Track description"
// @Param genre formData string true "Track genre"
// @Param year formData int false "Year, 1900-2030"
// @Param file formData file true "Audio file"
// @Success 201 {object} response.Response "Track uploaded successfully"
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 403 {object} response.Response "Admin role required"
// @Failure 500 {object} response.Response "Internal server error"
// @Security BearerAuth
// @Router /music [post]
func Upload(store storage.Storage, objects ObjectStore, maxUploadSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("invalid multipart form")))
			return
		}

		req := types.TrackUploadRequest{
			Title:       strings.TrimSpace(r.FormValue("title")),
			Description: strings.TrimSpace(r.FormValue("description")),
			Genre:       strings.TrimSpace(r.FormValue("genre")),
		}
		if yearValue := r.FormValue("year"); yearValue != "" {
			year, err := strconv.Atoi(yearValue)
			if err != nil {
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("year must be an integer")))
				return
			}
			req.Year = &year
		}

		// Validate request
		validate := validator.New()
		if err := validate.Struct(req); err != nil {
			if ve, ok := err.(validator.ValidationErrors); ok {
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(ve))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("file is required")))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		objectKey := media.BuildObjectKey("music", header.Filename)

		if err := objects.Upload(r.Context(), objectKey, file, header.Size, contentType); err != nil {
			slog.Error("Failed to upload track to storage", slog.String("error", err.Error()), slog.String("object_key", objectKey))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New("failed to upload track")))
			return
		}

		id, err := store.CreateMusicTrack(types.MusicTrack{
			Title:       req.Title,
			Description: req.Description,
			Genre:       req.Genre,
			Year:        req.Year,
			FilePath:    objectKey,
			FileSize:    header.Size,
		})
		if err != nil {
			if removeErr := objects.Remove(r.Context(), objectKey); removeErr != nil {
				slog.Error("Failed to remove orphaned object after insert failure",
					slog.String("error", removeErr.Error()), slog.String("object_key", objectKey))
			}
			slog.Error("Failed to insert music track", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New("failed to save track")))
			return
		}

		slog.Info("Music track uploaded", slog.String("id", id), slog.String("object_key", objectKey))

		response.WriteJSON(w, http.StatusCreated, response.RequestOK("Track uploaded successfully", map[string]string{
			"id":        id,
			"file_path": objectKey,
			"url":       objects.PublicURL(objectKey),
		}))
	}
}

// Cloudcasts relays the artist's Mixcloud listing
// @Summary List Mixcloud cloudcasts
// @Description Relay the artist's 50 most recent Mixcloud mixes
// @Tags music
// @Produce json
// @Success 200 {object} response.Response "Cloudcast listing"
// @Failure 502 {object} response.Response "Upstream failure"
// @Router /music/cloudcasts [get]
func Cloudcasts(lister CloudcastLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		casts, err := lister.Cloudcasts(r.Context())
		if err != nil {
			slog.Error("Failed to fetch cloudcasts", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadGateway, response.GeneralError(errors.New("failed to fetch cloudcasts")))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Cloudcasts fetched successfully", casts))
	}
}

package gallery

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
	"github.com/rekabarchive/memorial-service/internal/services/media"
	"github.com/rekabarchive/memorial-service/internal/storage"
	"github.com/rekabarchive/memorial-service/internal/types"
	"github.com/rekabarchive/memorial-service/internal/utils/response"
)

// ObjectStore is the slice of the media service the gallery handlers use.
type ObjectStore interface {
	Upload(ctx context.Context, objectKey string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, objectKey string) error
	PublicURL(objectKey string) string
}

// ImageView is a gallery record with its resolved public URL.
type ImageView struct {
	types.GalleryImage
	URL string `json:"url"`
}

type ListResponse struct {
	Images     []ImageView `json:"images"`
	Categories []string    `json:"categories"`
}

// List returns the gallery collection newest-first with derived category facets
// @Summary List gallery images
// @Description List all gallery images newest-first, optionally filtered by category and search term
// @Tags gallery
// @Produce json
// @Param category query string false "Category facet, All matches everything"
// @Param q query string false "Case-insensitive search over title and description"
// @Success 200 {object} response.Response "Images with derived facets"
// @Failure 401 {object} response.Response "Sign in required"
// @Failure 500 {object} response.Response "Internal server error"
// @Router /gallery [get]
func List(store storage.Storage, objects ObjectStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		images, err := store.ListGalleryImages()
		if err != nil {
			if errors.Is(err, storage.ErrAuthRequired) {
				// Content behind sign-in renders as an empty collection with a
				// sign-in prompt, not a generic failure.
				response.WriteJSON(w, http.StatusUnauthorized, response.SignInRequired(ListResponse{
					Images:     []ImageView{},
					Categories: []string{content.AllFacet},
				}))
				return
			}
			slog.Error("Failed to list gallery images", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New("failed to fetch images")))
			return
		}

		// Facets always derive from the full collection, filters never shrink them.
		facets := content.Facets(images)
		filtered := content.Filter(images, r.URL.Query().Get("q"), r.URL.Query().Get("category"))

		views := make([]ImageView, 0, len(filtered))
		for _, img := range filtered {
			views = append(views, ImageView{GalleryImage: img, URL: objects.PublicURL(img.FilePath)})
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Images fetched successfully", ListResponse{
			Images:     views,
			Categories: facets,
		}))
	}
}

// Upload handles an admin gallery image upload
// @Summary Upload a gallery image
// @Description Upload an image file with metadata; admin role required
// @Tags gallery
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Image title"
// @Param description formData string false "Image description"
// @Param category formData string true "Image category"
// @Param year formData int false "Year, 1900-2030"
// @Param file formData file true "Image file"
// @Success 201 {object} response.Response "Image uploaded successfully"
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 403 {object} response.Response "Admin role required"
// @Failure 500 {object} response.Response "Internal server error"
// @Security BearerAuth
// @Router /gallery [post]
func Upload(store storage.Storage, objects ObjectStore, maxUploadSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("invalid multipart form")))
			return
		}

		req := types.ContentUploadRequest{
			Title:       strings.TrimSpace(r.FormValue("title")),
			Description: strings.TrimSpace(r.FormValue("description")),
			Category:    strings.TrimSpace(r.FormValue("category")),
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

		// Gallery uploads must declare an image media type. Rejected before
		// any storage interaction.
		contentType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("file must be an image")))
			return
		}

		objectKey := media.BuildObjectKey("gallery", header.Filename)

		if err := objects.Upload(r.Context(), objectKey, file, header.Size, contentType); err != nil {
			slog.Error("Failed to upload image to storage", slog.String("error", err.Error()), slog.String("object_key", objectKey))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New("failed to upload image")))
			return
		}

		id, err := store.CreateGalleryImage(types.GalleryImage{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Year:        req.Year,
			FilePath:    objectKey,
			FileSize:    header.Size,
		})
		if err != nil {
			// The object is already stored; remove it so the insert failure
			// doesn't leave an orphan with no referencing record.
			if removeErr := objects.Remove(r.Context(), objectKey); removeErr != nil {
				slog.Error("Failed to remove orphaned object after insert failure",
					slog.String("error", removeErr.Error()), slog.String("object_key", objectKey))
			}
			slog.Error("Failed to insert gallery image", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New("failed to save image")))
			return
		}

		slog.Info("Gallery image uploaded", slog.String("id", id), slog.String("object_key", objectKey))

		response.WriteJSON(w, http.StatusCreated, response.RequestOK("Image uploaded successfully", map[string]string{
			"id":        id,
			"file_path": objectKey,
			"url":       objects.PublicURL(objectKey),
		}))
	}
}

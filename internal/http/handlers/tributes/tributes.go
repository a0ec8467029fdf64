package tributes

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rekabarchive/memorial-service/internal/storage"
	"github.com/rekabarchive/memorial-service/internal/types"
	"github.com/rekabarchive/memorial-service/internal/utils/response"
)

// List returns published tributes
// @Summary List approved tributes
// @Description List tributes that moderation has approved, newest-first
// @Tags tributes
// @Produce json
// @Success 200 {object} response.Response "Approved tributes"
// @Failure 500 {object} response.Response "Internal server error"
// @Router /tributes [get]
func List(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tributes, err := store.ListApprovedTributes()
		if err != nil {
			slog.Error("Failed to list tributes", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New("failed to fetch tributes")))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Tributes fetched successfully", tributes))
	}
}

// Submit accepts a public tribute submission
// @Summary Submit a tribute
// @Description Submit a tribute for moderation; it is not listed until approved
// @Tags tributes
// @Accept json
// @Produce json
// @Param tribute body types.TributeRequest true "Tribute submission"
// @Success 201 {object} response.Response "Tribute submitted successfully"
// @Failure 400 {object} response.Response "Bad request"
// @Failure 429 {object} response.Response "Rate limit exceeded"
// @Failure 500 {object} response.Response "Internal server error"
// @Router /tributes [post]
func Submit(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.TributeRequest

		err := json.NewDecoder(r.Body).Decode(&req)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("request body cannot be empty")))
			return
		} else if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// Whitespace-only names and messages are empty.
		req.Name = strings.TrimSpace(req.Name)
		req.Message = strings.TrimSpace(req.Message)

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

		// The insert forces the approval flag false; nothing a caller sends
		// can publish a tribute directly.
		id, err := store.CreateTribute(req.Name, req.Message)
		if err != nil {
			slog.Error("Failed to insert tribute", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New("failed to submit tribute")))
			return
		}
		slog.Info("Tribute submitted", slog.String("id", id))

		response.WriteJSON(w, http.StatusCreated, response.RequestOK(
			"Your message has been submitted and will be reviewed before being published",
			map[string]string{"id": id}))
	}
}

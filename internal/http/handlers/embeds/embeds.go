package embeds

import (
	"net/http"

	"github.com/rekabarchive/memorial-service/internal/config"
	"github.com/rekabarchive/memorial-service/internal/utils/response"
)

// Get returns the fixed third-party embed URLs
// @Summary Third-party embed URLs
// @Description Return the Bandcamp, SoundCloud, Mixcloud and Discogs URLs rendered by the shell
// @Tags embeds
// @Produce json
// @Success 200 {object} response.Response "Embed URLs"
// @Router /embeds [get]
func Get(cfg config.Embeds) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, response.RequestOK("Embeds fetched successfully", map[string]string{
			"bandcamp":   cfg.Bandcamp,
			"soundcloud": cfg.SoundCloud,
			"mixcloud":   cfg.Mixcloud,
			"discogs":    cfg.Discogs,
		}))
	}
}

package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pass-vault/internal/leaks"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

// getRange writes every known suffix for the prefix. An unknown prefix gets
// an empty 200 response, like the real service.
func (h *Handler) getRange(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	prefix := strings.ToUpper(chi.URLParam(r, "prefix"))
	if len(prefix) != leaks.PrefixLength || !isHex(prefix) {
		log.Debug().Str("prefix", prefix).Str("func", "Handler.getRange").Msg("invalid prefix")
		_, _ = utils.WriteText(w, "the hash prefix was not in a valid format", http.StatusBadRequest)
		return
	}

	body := h.ranges.Body(prefix)
	if _, err := utils.WriteText(w, body, http.StatusOK); err != nil {
		log.Err(err).Str("func", "Handler.getRange").Msg("error writing range")
	}
}

package http

import (
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

type versionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	_, err := utils.WriteJSON(w, versionResponse{
		Version: h.buildInfo.BuildVersion(),
		Date:    h.buildInfo.BuildDate(),
		Commit:  h.buildInfo.BuildCommit(),
	}, http.StatusOK)
	if err != nil {
		h.logger.Err(err).Str("func", "Handler.getVersion").Msg("error writing version")
	}
}

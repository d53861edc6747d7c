package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ctrl-sk/qr-gen-pro/utils"
)

// ShortenHandler mints a short URL without persisting anything; the record
// is stored later through the create endpoint once the dashboard has a
// rendered image to go with it.
func ShortenHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		URL string `json:"url"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	shortID := utils.GenerateShortID(shortIDLength)

	writeJSON(w, http.StatusOK, map[string]string{
		"shortUrl":    composeShortURL(shortID),
		"shortId":     shortID,
		"originalUrl": request.URL,
	})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/ctrl-sk/qr-gen-pro/config"
	"github.com/ctrl-sk/qr-gen-pro/models"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

// QRImageHandler renders a plain PNG of the record's short URL. The styled
// rendering (gradients, logos, corner shapes) happens in the dashboard;
// this is the unstyled server-side fallback.
func QRImageHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var record models.QRCode
	if err := config.DB.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "QR code not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch QR code")
		return
	}

	png, err := qrcode.Encode(record.ShortURL, qrcode.Medium, 256)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

package handlers

import (
	"context"
	"net/http"

	"github.com/ctrl-sk/qr-gen-pro/config"
	"github.com/ctrl-sk/qr-gen-pro/middlewares"
	"github.com/ctrl-sk/qr-gen-pro/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// RedirectHandler resolves a short link: record a scan, bump the counter,
// send the visitor on. Every miss and every failure ends in a redirect to
// the application root; someone following a QR code never sees an error
// page, and inactive or unknown codes are indistinguishable from each
// other.
func RedirectHandler(w http.ResponseWriter, r *http.Request) {
	shortID := mux.Vars(r)["shortId"]
	if shortID == "" {
		redirectHome(w, r)
		return
	}

	record, ok := lookupRecord(shortID)
	if !ok {
		redirectHome(w, r)
		return
	}
	if !record.IsActive {
		// Paused codes resolve home without leaving a scan.
		redirectHome(w, r)
		return
	}

	var userAgent *string
	if ua := r.UserAgent(); ua != "" {
		userAgent = &ua
	}
	ip := middlewares.ClientIP(r)

	// Detached from the request context: a visitor disconnecting must not
	// leave a scan row without its counter increment.
	err := config.DB.WithContext(context.Background()).Transaction(func(tx *gorm.DB) error {
		scan := models.Scan{
			ID:        uuid.NewString(),
			QRCodeID:  record.ID,
			UserAgent: userAgent,
			IPAddress: &ip,
		}
		if err := tx.Create(&scan).Error; err != nil {
			return err
		}

		result := tx.Model(&models.QRCode{}).Where("id = ?", record.ID).
			Update("scan_count", gorm.Expr("scan_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Deleted between lookup and increment.
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		middlewares.ErrorLogger.Printf("recording scan for %s: %v", shortID, err)
		redirectHome(w, r)
		return
	}

	http.Redirect(w, r, record.OriginalURL, http.StatusFound)
}

// lookupRecord finds the record for a short code, cache first. Lookup is an
// exact match on the dedicated short_code column; the full short URL is
// never suffix-matched.
func lookupRecord(shortID string) (models.QRCode, bool) {
	if RecordCache != nil {
		if record, err := RecordCache.Get(shortID); err == nil {
			return record, true
		}
	}

	var record models.QRCode
	if err := config.DB.First(&record, "short_code = ?", shortID).Error; err != nil {
		return models.QRCode{}, false
	}

	if RecordCache != nil {
		RecordCache.Set(shortID, record)
	}
	return record, true
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ctrl-sk/qr-gen-pro/cache"
	"github.com/ctrl-sk/qr-gen-pro/config"
	"github.com/ctrl-sk/qr-gen-pro/models"
	"github.com/ctrl-sk/qr-gen-pro/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// RecordCache is assigned at startup. The resolver reads through it; the
// lifecycle handlers invalidate it on every mutation.
var RecordCache cache.RecordCache

const shortIDLength = 8

// Attempts at minting a short code before giving up on unique-index
// collisions.
const maxCreateAttempts = 5

func composeShortURL(code string) string {
	return strings.TrimSuffix(config.App.BaseURL, "/") + "/r/" + code
}

func shortCodeFromURL(shortURL string) string {
	if i := strings.LastIndex(shortURL, "/"); i >= 0 {
		return shortURL[i+1:]
	}
	return shortURL
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// ListQRCodesHandler returns every record, newest first.
func ListQRCodesHandler(w http.ResponseWriter, r *http.Request) {
	var records []models.QRCode
	result := config.DB.Order("created_at DESC").Find(&records)
	if result.Error != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch QR codes")
		return
	}
	if records == nil {
		records = []models.QRCode{}
	}
	writeJSON(w, http.StatusOK, records)
}

// CreateQRCodeHandler persists a new record. Destination URL and rendered
// image payload are required; style attributes fall back to the documented
// defaults; a short URL is minted unless the caller supplies one.
func CreateQRCodeHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		OriginalURL       string  `json:"originalUrl"`
		ShortURL          string  `json:"shortUrl"`
		QRData            string  `json:"qrData"`
		GradientColors    *string `json:"gradientColors"`
		LogoData          *string `json:"logoData"`
		DotType           string  `json:"dotType"`
		CornerEyeType     string  `json:"cornerEyeType"`
		CornerEyeColor    string  `json:"cornerEyeColor"`
		DotColor          string  `json:"dotColor"`
		CornerSquareColor string  `json:"cornerSquareColor"`
		CornerSquareType  string  `json:"cornerSquareType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if request.OriginalURL == "" || request.QRData == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	record := models.QRCode{
		ID:                uuid.NewString(),
		OriginalURL:       request.OriginalURL,
		QRData:            request.QRData,
		GradientColors:    request.GradientColors,
		LogoData:          request.LogoData,
		DotType:           defaultString(request.DotType, models.DefaultDotType),
		CornerEyeType:     defaultString(request.CornerEyeType, models.DefaultCornerEyeType),
		CornerEyeColor:    defaultString(request.CornerEyeColor, models.DefaultCornerEyeColor),
		DotColor:          defaultString(request.DotColor, models.DefaultDotColor),
		CornerSquareColor: defaultString(request.CornerSquareColor, models.DefaultCornerSquareColor),
		CornerSquareType:  defaultString(request.CornerSquareType, models.DefaultCornerSquareType),
		IsActive:          true,
	}

	// Uniqueness of the short code lives in the database index; on a
	// collision we mint a fresh code and try again.
	var result *gorm.DB
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		if request.ShortURL != "" {
			record.ShortURL = request.ShortURL
			record.ShortCode = shortCodeFromURL(request.ShortURL)
		} else {
			record.ShortCode = utils.GenerateShortID(shortIDLength)
			record.ShortURL = composeShortURL(record.ShortCode)
		}

		result = config.DB.Create(&record)
		if result.Error == nil {
			break
		}
		if request.ShortURL != "" {
			// Caller-chosen link, nothing to regenerate.
			break
		}
	}
	if result.Error != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "Failed to create QR code", result.Error.Error())
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// UpdateQRCodeHandler applies a partial update. The body is validated
// against an explicit allow-list of mutable fields; unknown keys are
// rejected rather than forwarded to the store.
func UpdateQRCodeHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	updates := map[string]interface{}{}
	for key, raw := range body {
		switch key {
		case "originalUrl", "qrData", "dotType", "cornerEyeType", "cornerEyeColor",
			"dotColor", "cornerSquareColor", "cornerSquareType":
			var value string
			if err := json.Unmarshal(raw, &value); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid value for field: "+key)
				return
			}
			updates[columnFor(key)] = value
		case "isActive":
			var value bool
			if err := json.Unmarshal(raw, &value); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid value for field: "+key)
				return
			}
			updates["is_active"] = value
		case "gradientColors", "logoData":
			var value *string
			if err := json.Unmarshal(raw, &value); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid value for field: "+key)
				return
			}
			updates[columnFor(key)] = value
		default:
			writeError(w, http.StatusBadRequest, "Unknown field: "+key)
			return
		}
	}

	result := config.DB.Model(&models.QRCode{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update QR code")
		return
	}
	if result.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "QR code not found")
		return
	}

	var record models.QRCode
	if err := config.DB.First(&record, "id = ?", id).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update QR code")
		return
	}
	if RecordCache != nil {
		RecordCache.Delete(record.ShortCode)
	}

	writeJSON(w, http.StatusOK, record)
}

func columnFor(field string) string {
	switch field {
	case "originalUrl":
		return "original_url"
	case "qrData":
		return "qr_data"
	case "gradientColors":
		return "gradient_colors"
	case "logoData":
		return "logo_data"
	case "dotType":
		return "dot_type"
	case "cornerEyeType":
		return "corner_eye_type"
	case "cornerEyeColor":
		return "corner_eye_color"
	case "dotColor":
		return "dot_color"
	case "cornerSquareColor":
		return "corner_square_color"
	case "cornerSquareType":
		return "corner_square_type"
	}
	return field
}

// DeleteQRCodeHandler removes a record together with its scan log. The scan
// rows go inside the same transaction so no orphans survive a failure.
func DeleteQRCodeHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var record models.QRCode
	if err := config.DB.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "QR code not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete QR code")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("qr_code_id = ?", record.ID).Delete(&models.Scan{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.QRCode{}, "id = ?", record.ID).Error
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete QR code")
		return
	}

	if RecordCache != nil {
		RecordCache.Delete(record.ShortCode)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "QR code deleted successfully"})
}

// ListScansHandler returns the scan log for one record, newest first.
func ListScansHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var record models.QRCode
	if err := config.DB.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "QR code not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch scans")
		return
	}

	var scans []models.Scan
	result := config.DB.Where("qr_code_id = ?", record.ID).Order("created_at DESC").Find(&scans)
	if result.Error != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch scans")
		return
	}
	if scans == nil {
		scans = []models.Scan{}
	}
	writeJSON(w, http.StatusOK, scans)
}

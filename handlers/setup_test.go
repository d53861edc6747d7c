package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ctrl-sk/qr-gen-pro/cache"
	"github.com/ctrl-sk/qr-gen-pro/config"
	"github.com/ctrl-sk/qr-gen-pro/models"

	"github.com/gorilla/mux"
)

// newTestRouter wires a fresh in-memory database, a BigCache record cache
// and the full route table for one test.
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	t.Setenv("DATABASE_PATH", ":memory:")
	t.Setenv("BASE_URL", "http://localhost:8080")
	config.Load()

	if err := config.InitDB(); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}

	store, err := cache.NewBigCacheStore()
	if err != nil {
		t.Fatalf("failed to initialize cache: %v", err)
	}
	RecordCache = store

	r := mux.NewRouter()
	r.HandleFunc("/api/qr-codes", ListQRCodesHandler).Methods("GET")
	r.HandleFunc("/api/qr-codes", CreateQRCodeHandler).Methods("POST")
	r.HandleFunc("/api/qr-codes/{id}", UpdateQRCodeHandler).Methods("PATCH")
	r.HandleFunc("/api/qr-codes/{id}", DeleteQRCodeHandler).Methods("DELETE")
	r.HandleFunc("/api/qr-codes/{id}/scans", ListScansHandler).Methods("GET")
	r.HandleFunc("/api/qr-codes/{id}/image", QRImageHandler).Methods("GET")
	r.HandleFunc("/api/shorten", ShortenHandler).Methods("POST")
	r.HandleFunc("/r/{shortId}", RedirectHandler).Methods("GET")
	r.HandleFunc("/health", HealthHandler).Methods("GET")
	return r
}

// createTestRecord posts a record through the create endpoint and returns
// the decoded response.
func createTestRecord(t *testing.T, r *mux.Router, originalURL string) models.QRCode {
	t.Helper()

	payload := map[string]string{
		"originalUrl": originalURL,
		"qrData":      "data:image/png;base64,AA==",
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/qr-codes", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var record models.QRCode
	if err := json.Unmarshal(resp.Body.Bytes(), &record); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return record
}

func countScans(t *testing.T, qrCodeID string) int64 {
	t.Helper()
	var n int64
	if err := config.DB.Model(&models.Scan{}).Where("qr_code_id = ?", qrCodeID).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count scans: %v", err)
	}
	return n
}

func loadScans(qrCodeID string, out *[]models.Scan) error {
	return config.DB.Where("qr_code_id = ?", qrCodeID).Find(out).Error
}

func countAllScans(out *int64) error {
	return config.DB.Model(&models.Scan{}).Count(out).Error
}

func reloadRecord(t *testing.T, id string) models.QRCode {
	t.Helper()
	var record models.QRCode
	if err := config.DB.First(&record, "id = ?", id).Error; err != nil {
		t.Fatalf("Failed to reload record: %v", err)
	}
	return record
}

package handlers

import (
	"net/http"

	"github.com/ctrl-sk/qr-gen-pro/config"
)

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	sqliteDB, dbErr := config.DB.DB()
	if dbErr != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":  "unhealthy",
			"message": "Database connectivity failed",
			"error":   dbErr.Error(),
		})
		return
	}

	if err := sqliteDB.Ping(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":  "unhealthy",
			"message": "Database connectivity failed",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Server and database are up and running",
	})
}

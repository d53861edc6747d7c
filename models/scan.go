package models

import "time"

// Scan is one recorded resolution of a short link. Rows are append-only:
// the resolver creates them and cascade deletion is the only way they go.
type Scan struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	QRCodeID  string    `gorm:"size:36;index;not null" json:"qrCodeId"`
	UserAgent *string   `gorm:"type:text" json:"userAgent"`
	IPAddress *string   `gorm:"size:64" json:"ipAddress"`
	CreatedAt time.Time `json:"createdAt"`
}

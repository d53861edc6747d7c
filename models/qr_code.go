package models

import "time"

// Style defaults applied when the create payload omits an attribute.
const (
	DefaultDotType           = "dots"
	DefaultCornerEyeType     = "extra-rounded"
	DefaultCornerSquareType  = "extra-rounded"
	DefaultDotColor          = "#141413"
	DefaultCornerEyeColor    = "#CF4500"
	DefaultCornerSquareColor = "#323231"
)

// QRCode is one generated code: the destination it redirects to, the short
// link minted for it, the rendered image payload and the styling that
// produced it. ShortCode is the dedicated lookup column for the resolver;
// ShortURL is the composed public link and is never suffix-matched.
type QRCode struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	OriginalURL       string    `gorm:"size:2083;not null" json:"originalUrl"`
	ShortCode         string    `gorm:"uniqueIndex;size:32;not null" json:"shortCode"`
	ShortURL          string    `gorm:"uniqueIndex;not null" json:"shortUrl"`
	QRData            string    `gorm:"type:text;not null" json:"qrData"`
	GradientColors    *string   `gorm:"type:text" json:"gradientColors"`
	LogoData          *string   `gorm:"type:text" json:"logoData"`
	DotType           string    `gorm:"size:40" json:"dotType"`
	CornerEyeType     string    `gorm:"size:40" json:"cornerEyeType"`
	CornerEyeColor    string    `gorm:"size:20" json:"cornerEyeColor"`
	DotColor          string    `gorm:"size:20" json:"dotColor"`
	CornerSquareColor string    `gorm:"size:20" json:"cornerSquareColor"`
	CornerSquareType  string    `gorm:"size:40" json:"cornerSquareType"`
	ScanCount         uint      `gorm:"default:0" json:"scanCount"`
	IsActive          bool      `gorm:"default:true" json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	Scans []Scan `gorm:"foreignKey:QRCodeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

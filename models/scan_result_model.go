package models

import (
	"time"

	"github.com/google/uuid"
)

// ScanResult is one uploaded scan image with its simulated analysis outcome.
// Biomarkers holds a JSON object, Recommendations a JSON string array.
type ScanResult struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Reference       string    `gorm:"size:20;unique;not null" json:"reference"`
	ImageName       string    `gorm:"size:255" json:"image_name"`
	ImageURL        string    `gorm:"size:512" json:"image_url"`
	DetectionResult string    `gorm:"size:20;not null" json:"detection_result"`
	Confidence      string    `gorm:"size:10" json:"confidence"`
	Biomarkers      string    `gorm:"type:text" json:"biomarkers"`
	Recommendations string    `gorm:"type:text" json:"recommendations"`
	Timestamp       time.Time `gorm:"not null;index" json:"timestamp"`

	User User `gorm:"foreignkey:UserID" json:"-"`
}

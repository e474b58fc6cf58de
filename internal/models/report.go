package models

import "time"

// ReportStatus is the triage state of a report.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportReviewed ReportStatus = "reviewed"
	ReportResolved ReportStatus = "resolved"
)

// Valid reports whether s is a known report status.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportReviewed, ReportResolved:
		return true
	}
	return false
}

// UserReport is filed by one user against another.
type UserReport struct {
	ID                 uint         `gorm:"primaryKey" json:"report_id"`
	ReporterID         uint         `gorm:"not null;index" json:"reporter_id"`
	ReportedUserID     uint         `gorm:"not null;index" json:"reported_user_id"`
	Reason             string       `gorm:"size:255;not null" json:"reason"`
	AdditionalComments string       `gorm:"type:text" json:"additional_comments"`
	Status             ReportStatus `gorm:"size:16;not null;default:'pending';index" json:"status"`
	CreatedAt          time.Time    `json:"created_at"`
}

// ListingReport flags a product listing for moderator review.
type ListingReport struct {
	ID         uint         `gorm:"primaryKey" json:"report_id"`
	ProductID  uint         `gorm:"not null;index" json:"product_id"`
	ReporterID uint         `gorm:"not null;index" json:"reporter_id"`
	Reason     string       `gorm:"size:255;not null" json:"reason"`
	Details    string       `gorm:"type:text" json:"details"`
	Status     ReportStatus `gorm:"size:16;not null;default:'pending';index" json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "Pending"
	ApplicationUnderReview ApplicationStatus = "UnderReview"
	ApplicationForwarded   ApplicationStatus = "Forwarded"
	ApplicationRejected    ApplicationStatus = "Rejected"
)

// ParseApplicationStatus validates an admin-supplied status string against
// the closed status set. Arbitrary strings are not accepted.
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	switch ApplicationStatus(s) {
	case ApplicationPending, ApplicationUnderReview, ApplicationForwarded, ApplicationRejected:
		return ApplicationStatus(s), true
	}
	return "", false
}

// Application is a talent submission reviewed by an admin. Its lifecycle is
// independent of Account: AccountID is recorded when the submitter was
// authenticated, older rows are linked by AthleteName only.
type Application struct {
	ID uint `json:"id" gorm:"primaryKey"`

	AthleteName string `json:"athlete_name" gorm:"not null;index;size:100"`
	AccountID   *uint  `json:"account_id" gorm:"index"`

	Age             int    `json:"age"`
	Gender          string `json:"gender" gorm:"size:20"`
	Sport           string `json:"sport" gorm:"size:100"`
	Location        string `json:"location" gorm:"size:100"`
	ApplicationType string `json:"application_type" gorm:"size:50"`

	Achievements   string         `json:"achievements" gorm:"type:text"`
	Motivation     string         `json:"motivation" gorm:"type:text"`
	Goals          string         `json:"goals" gorm:"type:text"`
	SupportingDocs datatypes.JSON `json:"supporting_docs" gorm:"type:jsonb"` // []string of document URLs

	Status         ApplicationStatus `json:"status" gorm:"default:Pending;index;size:20"`
	SubmissionDate time.Time         `json:"submission_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}

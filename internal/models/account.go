package models

import (
	"strings"
	"time"
)

type AccountRole string

const (
	RoleAthlete AccountRole = "athlete"
	RoleCoach   AccountRole = "coach"
	RoleSponsor AccountRole = "sponsor"

	// RoleAdmin is a session-only role. It is never stored in accounts and
	// ParseRole deliberately rejects it, so it cannot be self-registered.
	RoleAdmin AccountRole = "admin"
)

// ParseRole normalizes a user-supplied role string. It is case-insensitive
// and tolerates the plural forms the registration form historically sent.
func ParseRole(s string) (AccountRole, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "athlete", "athletes":
		return RoleAthlete, true
	case "coach", "coaches":
		return RoleCoach, true
	case "sponsor", "sponsors":
		return RoleSponsor, true
	}
	return "", false
}

// Account is the single credential record shared by all roles. The unique
// index on email makes cross-role email uniqueness a store-level invariant
// rather than an application-level check-then-insert.
type Account struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	Email        string      `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string      `json:"-" gorm:"not null;size:255"`
	Role         AccountRole `json:"role" gorm:"not null;index;size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// AthleteProfile holds the athlete-specific fields, one row per athlete account.
type AthleteProfile struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	AccountID uint `json:"account_id" gorm:"uniqueIndex;not null"`

	FullName        string `json:"full_name" gorm:"size:100"`
	Age             int    `json:"age"`
	Gender          string `json:"gender" gorm:"size:20"`
	Sport           string `json:"sport" gorm:"size:100"`
	Achievements    string `json:"achievements" gorm:"type:text"`
	Ranking         string `json:"ranking" gorm:"size:100"`
	ExperienceYears int    `json:"experience_years"`
	ContactNumber   string `json:"contact_number" gorm:"size:30"`
	Location        string `json:"location" gorm:"size:100"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AthleteProfile) TableName() string {
	return "athlete_profiles"
}

type CoachProfile struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	AccountID uint `json:"account_id" gorm:"uniqueIndex;not null"`

	FullName        string `json:"full_name" gorm:"size:100"`
	Specialization  string `json:"specialization" gorm:"size:100"`
	Certifications  string `json:"certifications" gorm:"type:text"`
	ExperienceYears int    `json:"experience_years"`
	ContactNumber   string `json:"contact_number" gorm:"size:30"`
	Location        string `json:"location" gorm:"size:100"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CoachProfile) TableName() string {
	return "coach_profiles"
}

type SponsorProfile struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	AccountID uint `json:"account_id" gorm:"uniqueIndex;not null"`

	Name          string `json:"name" gorm:"size:100"`
	ContactPerson string `json:"contact_person" gorm:"size:100"`
	Sport         string `json:"sport" gorm:"size:100"`
	ContactNumber string `json:"contact_number" gorm:"size:30"`
	Location      string `json:"location" gorm:"size:100"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SponsorProfile) TableName() string {
	return "sponsor_profiles"
}

// DisplayName returns the human-facing name for an account: the role-specific
// name field when present, otherwise the local part of the email.
func DisplayName(account *Account, roleName string) string {
	if roleName != "" {
		return roleName
	}
	if i := strings.Index(account.Email, "@"); i > 0 {
		return account.Email[:i]
	}
	return account.Email
}

package validator

// RegisterRequest represents the request structure for account registration.
// The wire field is "type" for compatibility with the original clients.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Type     string `json:"type" validate:"required,account_role"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
}

// LoginRequest represents the login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateAthleteProfileRequest carries the mutable athlete fields. Every field
// is optional; only the supplied ones are written.
type UpdateAthleteProfileRequest struct {
	FullName        *string `json:"full_name" form:"full_name" validate:"omitempty,max=100"`
	Age             *int    `json:"age" form:"age" validate:"omitempty,min=0,max=120"`
	Gender          *string `json:"gender" form:"gender" validate:"omitempty,max=20"`
	Sport           *string `json:"sport" form:"sport" validate:"omitempty,max=100"`
	Achievements    *string `json:"achievements" form:"achievements"`
	Ranking         *string `json:"ranking" form:"ranking" validate:"omitempty,max=100"`
	ExperienceYears *int    `json:"experience_years" form:"experience_years" validate:"omitempty,min=0,max=80"`
	ContactNumber   *string `json:"contact_number" form:"contact_number" validate:"omitempty,contact_number"`
	Location        *string `json:"location" form:"location" validate:"omitempty,max=100"`
}

// UpdateCoachProfileRequest carries the mutable coach fields.
type UpdateCoachProfileRequest struct {
	FullName        *string `json:"full_name" form:"full_name" validate:"omitempty,max=100"`
	Specialization  *string `json:"specialization" form:"specialization" validate:"omitempty,max=100"`
	Certifications  *string `json:"certifications" form:"certifications"`
	ExperienceYears *int    `json:"experience_years" form:"experience_years" validate:"omitempty,min=0,max=80"`
	ContactNumber   *string `json:"contact_number" form:"contact_number" validate:"omitempty,contact_number"`
	Location        *string `json:"location" form:"location" validate:"omitempty,max=100"`
}

// UpdateSponsorProfileRequest carries the mutable sponsor fields.
type UpdateSponsorProfileRequest struct {
	Name          *string `json:"name" form:"name" validate:"omitempty,max=100"`
	ContactPerson *string `json:"contact_person" form:"contact_person" validate:"omitempty,max=100"`
	Sport         *string `json:"sport" form:"sport" validate:"omitempty,max=100"`
	ContactNumber *string `json:"contact_number" form:"contact_number" validate:"omitempty,contact_number"`
	Location      *string `json:"location" form:"location" validate:"omitempty,max=100"`
}

// SubmitApplicationRequest represents a talent submission.
type SubmitApplicationRequest struct {
	AthleteName     string   `json:"athlete_name" validate:"required,max=100"`
	Age             int      `json:"age" validate:"omitempty,min=0,max=120"`
	Gender          string   `json:"gender" validate:"omitempty,max=20"`
	Sport           string   `json:"sport" validate:"required,max=100"`
	Location        string   `json:"location" validate:"omitempty,max=100"`
	ApplicationType string   `json:"application_type" validate:"required,max=50"`
	Achievements    string   `json:"achievements"`
	Motivation      string   `json:"motivation"`
	Goals           string   `json:"goals"`
	SupportingDocs  []string `json:"supporting_docs" validate:"omitempty,max=10,dive,max=500"`
}

// UpdateApplicationStatusRequest represents an admin status transition.
// Type names the role table the application should be forwarded to.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,application_status"`
	Type   string `json:"type" validate:"omitempty,account_role"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Available roles for the platform.
var (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// User is the base account record shared by admins and students.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username string    `gorm:"uniqueIndex" json:"username"`
	Password string    `json:"-"`
	GoogleID string    `json:"google_id"`
	Email    *string   `json:"email"`
	Role     string    `json:"role"`
	Picture  string    `json:"picture"`
}

// StudentProfile links a user account to the student's personal information
// collected when they first apply to a program.
type StudentProfile struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID" json:"user"`

	StudentBio `gorm:"embedded" json:",inline"`
}

// FillGoogleInfo populates the base account from a Google userinfo payload.
func (p *StudentProfile) FillGoogleInfo(info GoogleUserInfo) {
	p.User.GoogleID = info.GID
	p.User.Username = info.Email
	p.User.Email = &info.Email
	p.User.Picture = info.Picture
	p.User.Role = RoleStudent
	if p.FirstNameTH == "" && p.LastNameTH == "" {
		p.FirstNameTH = info.Name
	}
}

// StudentBio holds the per-student personal fields. It is embedded both in
// StudentProfile (the account-level copy) and in Applicant (the snapshot taken
// at application time).
type StudentBio struct {
	PrefixTH    string     `json:"prefix_th"`
	FirstNameTH string     `json:"first_name_th"`
	LastNameTH  string     `json:"last_name_th"`
	PrefixEN    string     `json:"prefix_en"`
	FirstNameEN string     `json:"first_name_en"`
	LastNameEN  string     `json:"last_name_en"`
	Nickname    string     `json:"nickname"`
	BirthDate   *time.Time `json:"birth_date"`
	WeightKG    float64    `json:"weight_kg"`
	HeightCM    float64    `json:"height_cm"`

	NationalID     string  `json:"national_id"`
	PassportNumber *string `json:"passport_number"`

	Phone  string `json:"phone"`
	Email  string `json:"email"`
	LineID string `json:"line_id"`

	School string   `json:"school"`
	Grade  int      `json:"grade"`
	Room   int      `json:"room"`
	GPA    *float64 `json:"gpa"`

	Allergies         string `json:"allergies"`
	MedicalConditions string `json:"medical_conditions"`

	ParentName  string `json:"parent_name"`
	ParentPhone string `json:"parent_phone"`
}

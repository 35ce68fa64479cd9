package model

import (
	"time"

	"github.com/lib/pq"
)

var (
	// ProgramStatusOpen indicates the program is accepting applications
	ProgramStatusOpen = "open"
	// ProgramStatusUpcoming indicates registration has not opened yet
	ProgramStatusUpcoming = "upcoming"
	// ProgramStatusClosed indicates the application window has ended
	ProgramStatusClosed = "closed"
	// ProgramStatusArchived indicates the program is hidden from every listing
	ProgramStatusArchived = "archived"
)

var (
	// AdmissionFirstCome admits applicants by capacity only
	AdmissionFirstCome = "first-come"
	// AdmissionInterview requires a passed interview before payment
	AdmissionInterview = "interview"
)

// EditableProgramInfo is the part of a program an administrator can edit
// through the program form.
type EditableProgramInfo struct {
	Title            string         `gorm:"type:text" json:"title"`
	ShortDescription string         `gorm:"type:text" json:"short_description"`
	Description      string         `gorm:"type:text" json:"description"`
	Highlights       pq.StringArray `gorm:"type:text[]" json:"highlights"`
	Requirements     pq.StringArray `gorm:"type:text[]" json:"requirements"`

	Status        string `gorm:"type:text" json:"status"`
	AdmissionType string `gorm:"type:text" json:"admission_type"`

	Continent   string `gorm:"type:text" json:"continent"`
	City        string `gorm:"type:text" json:"city"`
	Country     string `gorm:"type:text" json:"country"`
	CountryCode string `gorm:"type:text" json:"country_code"`

	StartDate           time.Time `gorm:"type:timestamp" json:"start_date"`
	EndDate             time.Time `gorm:"type:timestamp" json:"end_date"`
	ApplicationDeadline time.Time `gorm:"type:timestamp" json:"application_deadline"`
	RegistrationOpen    time.Time `gorm:"type:timestamp" json:"registration_open"`

	MaxParticipants     int `json:"max_participants"`
	CurrentParticipants int `json:"current_participants"`

	PriceAmount   int64          `json:"price_amount"`
	PriceCurrency string         `gorm:"type:text" json:"price_currency"`
	DisplayPrice  string         `gorm:"type:text" json:"display_price"`
	PriceIncludes pq.StringArray `gorm:"type:text[]" json:"price_includes"`
	PriceExcludes pq.StringArray `gorm:"type:text[]" json:"price_excludes"`

	CoverImageURL string         `gorm:"type:text" json:"cover_image_url"`
	Tags          pq.StringArray `gorm:"type:text[]" json:"tags"`

	CoordinatorName  string `gorm:"type:text" json:"coordinator_name"`
	CoordinatorEmail string `gorm:"type:text" json:"coordinator_email"`

	EligibleGrades pq.Int64Array  `gorm:"type:integer[]" json:"eligible_grades"`
	Terms          pq.StringArray `gorm:"type:text[]" json:"terms"`
}

// Program is gorm model for an exchange program offering.
type Program struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`
	EditableProgramInfo
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Documents  []DocumentRequirement `gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE" json:"documents"`
	Itinerary  []ItineraryEntry      `gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE" json:"itinerary"`
	Applicants []Applicant           `gorm:"foreignKey:ProgramID" json:"-"`
}

// DocumentRequirement is a program-defined document the applicant must
// supply. Its ID is the join key document uploads point back to, so
// completeness can be derived per requirement.
type DocumentRequirement struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProgramID  uint   `gorm:"not null;index" json:"program_id"`
	Name       string `gorm:"type:text" json:"name"`
	IsRequired bool   `gorm:"type:boolean;default:true" json:"is_required"`

	// TemplateFileID points to a downloadable blank form, when one exists.
	TemplateFileID *int `json:"template_file_id,omitempty"`
	TemplateFile   File `gorm:"foreignKey:TemplateFileID;references:ID" json:"-"`
}

// ItineraryEntry is one day of a program's published schedule.
type ItineraryEntry struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProgramID   uint   `gorm:"not null;index" json:"program_id"`
	Day         int    `json:"day"`
	Title       string `gorm:"type:text" json:"title"`
	Description string `gorm:"type:text" json:"description"`
}

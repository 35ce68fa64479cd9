package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// DocumentStatusPending indicates the upload is waiting for review
	DocumentStatusPending = "pending"
	// DocumentStatusApproved indicates the upload passed review
	DocumentStatusApproved = "approved"
	// DocumentStatusRejected indicates the upload was rejected and must be re-uploaded
	DocumentStatusRejected = "rejected"
)

var (
	// PaymentMethodCash is recorded by an admin when money changes hands in person
	PaymentMethodCash = "cash"
	// PaymentMethodTransfer is submitted by the student together with a slip
	PaymentMethodTransfer = "transfer"
)

var (
	// InterviewResultPending indicates the interview has no outcome yet
	InterviewResultPending = "pending"
	// InterviewResultPassed indicates the applicant passed the interview
	InterviewResultPassed = "passed"
	// InterviewResultFailed indicates the applicant failed the interview
	InterviewResultFailed = "failed"
)

// Applicant represents one application of one student to one program.
type Applicant struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`

	// ProgramID references Program.ID
	ProgramID uint    `gorm:"not null;index" json:"program_id"`
	Program   Program `gorm:"foreignKey:ProgramID;references:ID" json:"-"`

	// UserID references the student account that submitted the application
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"-"`

	// Student is a snapshot taken at submission time; later profile edits
	// never rewrite it.
	Student StudentBio `gorm:"embedded;embeddedPrefix:student_" json:"student"`

	AppliedAt time.Time `gorm:"type:timestamp;<-:create" json:"applied_at"`

	Documents []DocumentUpload `gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE" json:"documents"`
	Payment   Payment          `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	Interview Interview        `gorm:"embedded;embeddedPrefix:interview_" json:"interview"`
}

// DocumentUpload is a student's uploaded file for one document requirement.
type DocumentUpload struct {
	ID          uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicantID uint `gorm:"not null;index" json:"applicant_id"`

	// DocumentID references DocumentRequirement.ID
	DocumentID  uint                `gorm:"not null;index" json:"document_id"`
	Requirement DocumentRequirement `gorm:"foreignKey:DocumentID;references:ID" json:"-"`

	UploadedAt time.Time  `gorm:"type:timestamp" json:"uploaded_at"`
	FileURL    string     `gorm:"type:text" json:"file_url"`
	Status     string     `gorm:"type:text;default:pending" json:"status"`
	ReviewedAt *time.Time `gorm:"type:timestamp" json:"reviewed_at,omitempty"`
	ReviewNote string     `gorm:"type:text" json:"review_note,omitempty"`
}

// Payment is the applicant's participation fee record. Method is empty until
// a payment is recorded. A transfer needs a slip as evidence; cash is written
// by an admin who received the money in person.
type Payment struct {
	Method  string     `gorm:"type:text" json:"method"`
	PaidAt  *time.Time `gorm:"type:timestamp" json:"paid_at,omitempty"`
	Amount  int64      `json:"amount"`
	SlipURL string     `gorm:"type:text" json:"slip_url,omitempty"`
	Note    string     `gorm:"type:text" json:"note,omitempty"`
}

// Interview is the interview outcome block. It only carries meaning when the
// program's admission type is interview.
type Interview struct {
	Score         *float64   `json:"score,omitempty"`
	MaxScore      float64    `gorm:"default:100" json:"max_score"`
	Result        string     `gorm:"type:text" json:"result"`
	InterviewDate *time.Time `gorm:"type:timestamp" json:"interview_date,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
}

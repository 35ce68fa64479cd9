package admission

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nateekarni/dsu-intensive-global/internal/model"
)

// NewApplicant builds the application record for a student submitting to a
// program. The program must be open, inside its registration window, not at
// capacity, and the student's grade must be eligible when the program limits
// grades. Duplicate detection against existing applications is left to the
// caller, which owns the database lookup.
func NewApplicant(program *model.Program, userID uuid.UUID, bio model.StudentBio, now time.Time) (model.Applicant, error) {
	var a model.Applicant

	if program.Status != model.ProgramStatusOpen {
		return a, fmt.Errorf("%w: program is not open for applications", ErrValidation)
	}
	if now.Before(program.RegistrationOpen) {
		return a, fmt.Errorf("%w: registration has not opened yet", ErrValidation)
	}
	if now.After(program.ApplicationDeadline) {
		return a, fmt.Errorf("%w: application deadline has passed", ErrValidation)
	}
	if program.MaxParticipants > 0 && program.CurrentParticipants >= program.MaxParticipants {
		return a, fmt.Errorf("%w: program is full", ErrConflict)
	}
	if len(program.EligibleGrades) > 0 {
		eligible := false
		for _, g := range program.EligibleGrades {
			if int(g) == bio.Grade {
				eligible = true
				break
			}
		}
		if !eligible {
			return a, fmt.Errorf("%w: grade %d is not eligible for this program", ErrValidation, bio.Grade)
		}
	}

	a = model.Applicant{
		ProgramID: program.ID,
		UserID:    userID,
		Student:   bio,
		AppliedAt: now,
	}
	return a, nil
}

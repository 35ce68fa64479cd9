// Package admission holds the state-transition commands of the application
// workflow. Each command mutates one Applicant in memory and returns an
// error without touching it when validation fails; persistence and event
// publication are the caller's job, wrapped around a stage comparison via
// the eligibility engine.
package admission

import (
	"fmt"
	"time"

	"github.com/nateekarni/dsu-intensive-global/internal/model"
)

// ReviewDocument records an admin decision on one uploaded document. The
// documentID must match an existing upload on the applicant. A rejection may
// carry a note telling the student what to fix; the note is optional.
func ReviewDocument(a *model.Applicant, documentID uint, decision string, note string, now time.Time) error {
	if decision != model.DocumentStatusApproved && decision != model.DocumentStatusRejected {
		return fmt.Errorf("%w: decision must be approved or rejected", ErrValidation)
	}

	for i := range a.Documents {
		if a.Documents[i].DocumentID != documentID {
			continue
		}
		a.Documents[i].Status = decision
		a.Documents[i].ReviewedAt = &now
		a.Documents[i].ReviewNote = note
		return nil
	}

	return fmt.Errorf("%w: no upload for document %d", ErrNotFound, documentID)
}

// UploadDocument attaches a student's file to a requirement. Re-uploading
// replaces the previous upload for the same requirement and resets its
// status to pending, which is how a rejected document gets another review.
func UploadDocument(a *model.Applicant, requirementID uint, fileURL string, now time.Time) error {
	if fileURL == "" {
		return fmt.Errorf("%w: file url is required", ErrValidation)
	}

	for i := range a.Documents {
		if a.Documents[i].DocumentID != requirementID {
			continue
		}
		a.Documents[i].FileURL = fileURL
		a.Documents[i].UploadedAt = now
		a.Documents[i].Status = model.DocumentStatusPending
		a.Documents[i].ReviewedAt = nil
		a.Documents[i].ReviewNote = ""
		return nil
	}

	a.Documents = append(a.Documents, model.DocumentUpload{
		ApplicantID: a.ID,
		DocumentID:  requirementID,
		UploadedAt:  now,
		FileURL:     fileURL,
		Status:      model.DocumentStatusPending,
	})
	return nil
}

// RecordCashPayment writes a cash payment at the program's listed price.
// Calling it again overwrites the previous record; cash corrections are an
// admin-driven rarity and keep last-write-wins semantics.
func RecordCashPayment(a *model.Applicant, program *model.Program, now time.Time) {
	a.Payment = model.Payment{
		Method: model.PaymentMethodCash,
		PaidAt: &now,
		Amount: program.PriceAmount,
	}
}

// RecordTransferPayment writes a transfer payment submitted with a slip as
// evidence. The slip is mandatory; an unverifiable transfer is not a payment.
// The amount is recorded as given, matching it against the program price is
// advisory only.
func RecordTransferPayment(a *model.Applicant, slipURL string, amount int64, now time.Time) error {
	if slipURL == "" {
		return fmt.Errorf("%w: transfer payment requires a slip", ErrValidation)
	}
	a.Payment = model.Payment{
		Method:  model.PaymentMethodTransfer,
		PaidAt:  &now,
		Amount:  amount,
		SlipURL: slipURL,
	}
	return nil
}

// RecordInterviewResult writes the interview outcome. The score must fall
// inside [0, maxScore]; out-of-range input leaves the applicant unchanged.
func RecordInterviewResult(a *model.Applicant, result string, score float64, notes string, now time.Time) error {
	if result != model.InterviewResultPassed && result != model.InterviewResultFailed {
		return fmt.Errorf("%w: result must be passed or failed", ErrValidation)
	}

	maxScore := a.Interview.MaxScore
	if maxScore == 0 {
		maxScore = 100
	}
	if score < 0 || score > maxScore {
		return fmt.Errorf("%w: score %.2f out of range 0-%.0f", ErrValidation, score, maxScore)
	}

	a.Interview.Score = &score
	a.Interview.MaxScore = maxScore
	a.Interview.Result = result
	a.Interview.Notes = notes
	if a.Interview.InterviewDate == nil {
		a.Interview.InterviewDate = &now
	}
	return nil
}

// ResetInterviewToPending reopens a decided interview. It is the explicit
// admin escape hatch out of the rejected branch and has no precondition.
func ResetInterviewToPending(a *model.Applicant) {
	a.Interview.Result = model.InterviewResultPending
}

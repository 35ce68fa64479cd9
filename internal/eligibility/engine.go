// Package eligibility derives an application's completion state from a
// program's configuration and the applicant's accumulated record. It is the
// single place the requirement/upload join and the stage derivation live;
// every view and handler renders status through this package instead of
// re-checking document, interview, and payment fields inline.
package eligibility

import (
	"github.com/nateekarni/dsu-intensive-global/internal/model"
)

// Stage is the applicant's position in the admission pipeline. Values are
// ordered; a later stage means every earlier gate is satisfied. StageRejected
// sits outside the forward order: it is the terminal branch entered when an
// interview result is failed.
type Stage int

const (
	// StageApplied is the submitted-but-nothing-reviewed baseline.
	StageApplied Stage = iota
	// StageDocumentsPending means at least one required document lacks an approved upload.
	StageDocumentsPending
	// StageInterviewPending means documents are complete but the interview has no passed result yet.
	StageInterviewPending
	// StagePaymentPending means every selection gate passed and only payment remains.
	StagePaymentPending
	// StageComplete means documents, interview (when applicable), and payment are all satisfied.
	StageComplete
	// StageRejected is the terminal branch after a failed interview.
	StageRejected
)

// String returns the stage's wire name.
func (s Stage) String() string {
	switch s {
	case StageApplied:
		return "applied"
	case StageDocumentsPending:
		return "documents_pending"
	case StageInterviewPending:
		return "interview_pending"
	case StagePaymentPending:
		return "payment_pending"
	case StageComplete:
		return "complete"
	case StageRejected:
		return "rejected"
	}
	return "unknown"
}

// RequiredDocumentIDs extracts the ids of the program's required documents.
// Optional documents never block completeness.
func RequiredDocumentIDs(program *model.Program) []uint {
	ids := make([]uint, 0, len(program.Documents))
	for _, req := range program.Documents {
		if req.IsRequired {
			ids = append(ids, req.ID)
		}
	}
	return ids
}

// DocumentsComplete reports whether every required document id has at least
// one upload with approved status. Pending or rejected uploads never satisfy
// a requirement. An empty requirement list is vacuously complete. Uploads
// whose id matches no requirement are simply ignored.
func DocumentsComplete(requiredDocumentIDs []uint, uploads []model.DocumentUpload) bool {
	for _, id := range requiredDocumentIDs {
		satisfied := false
		for _, up := range uploads {
			if up.DocumentID == id && up.Status == model.DocumentStatusApproved {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// ApprovedCount counts uploads in approved status. Together with the number
// of required documents it backs the roster's "n/m approved" column.
func ApprovedCount(uploads []model.DocumentUpload) int {
	n := 0
	for _, up := range uploads {
		if up.Status == model.DocumentStatusApproved {
			n++
		}
	}
	return n
}

// InterviewGatePassed reports whether the interview gate is open. The gate
// does not exist for first-come programs, so it is always passed there.
func InterviewGatePassed(program *model.Program, applicant *model.Applicant) bool {
	if program.AdmissionType != model.AdmissionInterview {
		return true
	}
	return applicant.Interview.Result == model.InterviewResultPassed
}

// PaymentRecorded reports whether the participation fee is settled. Transfer
// payments are only counted once a slip is attached; a cash payment recorded
// by an admin needs no further evidence.
func PaymentRecorded(applicant *model.Applicant) bool {
	switch applicant.Payment.Method {
	case model.PaymentMethodCash:
		return true
	case model.PaymentMethodTransfer:
		return applicant.Payment.SlipURL != ""
	}
	return false
}

// StageOf computes the applicant's current stage from the three gates. A
// failed interview is the terminal StageRejected branch regardless of any
// later payment; the only way out of it is an explicit interview reset.
func StageOf(program *model.Program, applicant *model.Applicant) Stage {
	if !DocumentsComplete(RequiredDocumentIDs(program), applicant.Documents) {
		return StageDocumentsPending
	}

	if program.AdmissionType == model.AdmissionInterview &&
		applicant.Interview.Result == model.InterviewResultFailed {
		return StageRejected
	}

	if !InterviewGatePassed(program, applicant) {
		return StageInterviewPending
	}

	if !PaymentRecorded(applicant) {
		return StagePaymentPending
	}

	return StageComplete
}

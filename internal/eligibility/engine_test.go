package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nateekarni/dsu-intensive-global/internal/model"
)

func interviewProgram() model.Program {
	return model.Program{
		ID: 1,
		EditableProgramInfo: model.EditableProgramInfo{
			AdmissionType: model.AdmissionInterview,
			Status:        model.ProgramStatusOpen,
			PriceAmount:   185000,
		},
		Documents: []model.DocumentRequirement{
			{ID: 11, ProgramID: 1, Name: "สำเนาพาสปอร์ต", IsRequired: true},
			{ID: 12, ProgramID: 1, Name: "หนังสือยินยอมผู้ปกครอง", IsRequired: true},
		},
	}
}

func firstComeProgram() model.Program {
	return model.Program{
		ID: 2,
		EditableProgramInfo: model.EditableProgramInfo{
			AdmissionType: model.AdmissionFirstCome,
			Status:        model.ProgramStatusOpen,
			PriceAmount:   89000,
		},
	}
}

func upload(docID uint, status string) model.DocumentUpload {
	return model.DocumentUpload{DocumentID: docID, Status: status, UploadedAt: time.Now()}
}

func TestDocumentsComplete_EmptyRequirements(t *testing.T) {
	// A program with no required documents is always document-complete.
	assert.True(t, DocumentsComplete(nil, nil))
	assert.True(t, DocumentsComplete([]uint{}, []model.DocumentUpload{
		upload(99, model.DocumentStatusRejected),
	}))
}

func TestDocumentsComplete_PendingAndRejectedDoNotCount(t *testing.T) {
	required := []uint{11, 12}

	assert.False(t, DocumentsComplete(required, []model.DocumentUpload{
		upload(11, model.DocumentStatusApproved),
		upload(12, model.DocumentStatusPending),
	}))
	assert.False(t, DocumentsComplete(required, []model.DocumentUpload{
		upload(11, model.DocumentStatusApproved),
		upload(12, model.DocumentStatusRejected),
	}))
	assert.True(t, DocumentsComplete(required, []model.DocumentUpload{
		upload(11, model.DocumentStatusApproved),
		upload(12, model.DocumentStatusApproved),
	}))
}

func TestDocumentsComplete_UnknownUploadIgnored(t *testing.T) {
	// An upload pointing at no requirement neither helps nor hurts.
	required := []uint{11}
	assert.True(t, DocumentsComplete(required, []model.DocumentUpload{
		upload(11, model.DocumentStatusApproved),
		upload(999, model.DocumentStatusApproved),
	}))
	assert.False(t, DocumentsComplete(required, []model.DocumentUpload{
		upload(999, model.DocumentStatusApproved),
	}))
}

func TestDocumentsComplete_DuplicateUploadsAnyApproved(t *testing.T) {
	required := []uint{11}
	assert.True(t, DocumentsComplete(required, []model.DocumentUpload{
		upload(11, model.DocumentStatusRejected),
		upload(11, model.DocumentStatusApproved),
	}))
}

func TestRequiredDocumentIDs_SkipsOptional(t *testing.T) {
	p := interviewProgram()
	p.Documents = append(p.Documents, model.DocumentRequirement{ID: 13, ProgramID: 1, Name: "ผลสอบภาษา", IsRequired: false})
	assert.Equal(t, []uint{11, 12}, RequiredDocumentIDs(&p))
}

func TestInterviewGatePassed_FirstComeAlwaysTrue(t *testing.T) {
	p := firstComeProgram()
	a := model.Applicant{}

	assert.True(t, InterviewGatePassed(&p, &a))

	// Stray interview data on a first-come application changes nothing.
	a.Interview.Result = model.InterviewResultFailed
	assert.True(t, InterviewGatePassed(&p, &a))
}

func TestInterviewGatePassed_InterviewProgram(t *testing.T) {
	p := interviewProgram()
	a := model.Applicant{}

	assert.False(t, InterviewGatePassed(&p, &a))

	a.Interview.Result = model.InterviewResultPending
	assert.False(t, InterviewGatePassed(&p, &a))

	a.Interview.Result = model.InterviewResultFailed
	assert.False(t, InterviewGatePassed(&p, &a))

	a.Interview.Result = model.InterviewResultPassed
	assert.True(t, InterviewGatePassed(&p, &a))
}

func TestPaymentRecorded(t *testing.T) {
	now := time.Now()
	a := model.Applicant{}

	assert.False(t, PaymentRecorded(&a))

	// Transfer without a slip is not evidence, even with date and amount set.
	a.Payment = model.Payment{Method: model.PaymentMethodTransfer, PaidAt: &now, Amount: 185000}
	assert.False(t, PaymentRecorded(&a))

	a.Payment.SlipURL = "/api/v1/file/42"
	assert.True(t, PaymentRecorded(&a))

	// Cash needs nothing beyond the record itself.
	a.Payment = model.Payment{Method: model.PaymentMethodCash, PaidAt: &now, Amount: 185000}
	assert.True(t, PaymentRecorded(&a))
}

func TestStageOf_DocumentsPending(t *testing.T) {
	// Scenario: one approved, one pending upload on an interview program.
	p := interviewProgram()
	a := model.Applicant{Documents: []model.DocumentUpload{
		upload(11, model.DocumentStatusApproved),
		upload(12, model.DocumentStatusPending),
	}}

	assert.Equal(t, StageDocumentsPending, StageOf(&p, &a))
}

func TestStageOf_InterviewPending(t *testing.T) {
	p := interviewProgram()
	a := model.Applicant{Documents: []model.DocumentUpload{
		upload(11, model.DocumentStatusApproved),
		upload(12, model.DocumentStatusApproved),
	}}

	assert.Equal(t, StageInterviewPending, StageOf(&p, &a))
}

func TestStageOf_PaymentPending(t *testing.T) {
	p := interviewProgram()
	a := model.Applicant{Documents: []model.DocumentUpload{
		upload(11, model.DocumentStatusApproved),
		upload(12, model.DocumentStatusApproved),
	}}
	a.Interview.Result = model.InterviewResultPassed

	assert.Equal(t, StagePaymentPending, StageOf(&p, &a))
}

func TestStageOf_RejectedIsTerminal(t *testing.T) {
	p := interviewProgram()
	now := time.Now()
	a := model.Applicant{Documents: []model.DocumentUpload{
		upload(11, model.DocumentStatusApproved),
		upload(12, model.DocumentStatusApproved),
	}}
	a.Interview.Result = model.InterviewResultFailed

	assert.Equal(t, StageRejected, StageOf(&p, &a))

	// A payment recorded afterwards must not resurrect the application.
	a.Payment = model.Payment{Method: model.PaymentMethodCash, PaidAt: &now, Amount: 185000}
	assert.Equal(t, StageRejected, StageOf(&p, &a))
}

func TestStageOf_FirstComeCompleteAfterCashPayment(t *testing.T) {
	// No document requirements, no interview step: payment is the only gate.
	p := firstComeProgram()
	now := time.Now()
	a := model.Applicant{}

	assert.Equal(t, StagePaymentPending, StageOf(&p, &a))

	a.Payment = model.Payment{Method: model.PaymentMethodCash, PaidAt: &now, Amount: 89000}
	assert.Equal(t, StageComplete, StageOf(&p, &a))

	// Whatever sits in the interview block is irrelevant for first-come.
	a.Interview.Result = model.InterviewResultFailed
	assert.Equal(t, StageComplete, StageOf(&p, &a))
}

func TestStageOf_ApprovalMonotonic(t *testing.T) {
	p := interviewProgram()
	a := model.Applicant{Documents: []model.DocumentUpload{
		upload(11, model.DocumentStatusApproved),
		upload(12, model.DocumentStatusPending),
	}}

	before := StageOf(&p, &a)
	a.Documents[1].Status = model.DocumentStatusApproved
	after := StageOf(&p, &a)
	assert.GreaterOrEqual(t, int(after), int(before))

	// Rejecting a previously approved upload may move the stage backwards
	// but never forwards.
	a.Documents[0].Status = model.DocumentStatusRejected
	reverted := StageOf(&p, &a)
	assert.LessOrEqual(t, int(reverted), int(after))
}

func TestStageOf_Pure(t *testing.T) {
	p := interviewProgram()
	a := model.Applicant{Documents: []model.DocumentUpload{
		upload(11, model.DocumentStatusApproved),
		upload(12, model.DocumentStatusApproved),
	}}
	a.Interview.Result = model.InterviewResultPassed

	first := StageOf(&p, &a)
	second := StageOf(&p, &a)
	assert.Equal(t, first, second)
}

func TestApprovedCount(t *testing.T) {
	uploads := []model.DocumentUpload{
		upload(11, model.DocumentStatusApproved),
		upload(12, model.DocumentStatusPending),
		upload(13, model.DocumentStatusApproved),
	}
	assert.Equal(t, 2, ApprovedCount(uploads))
	assert.Equal(t, 0, ApprovedCount(nil))
}

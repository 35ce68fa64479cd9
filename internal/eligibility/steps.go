package eligibility

import (
	"github.com/nateekarni/dsu-intensive-global/internal/model"
)

// Step statuses used by the application tracker stepper.
var (
	StepComplete = "complete"
	StepCurrent  = "current"
	StepUpcoming = "upcoming"
	StepError    = "error"
)

// Step is one entry of the student tracker's progress stepper.
type Step struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Desc   string `json:"desc"`
	Status string `json:"status"`
}

// Steps builds the tracker stepper for an application. The interview step is
// only present for interview-admission programs. All step statuses derive
// from the same gates StageOf uses, so the stepper can never disagree with
// the stage badge rendered next to it.
func Steps(program *model.Program, applicant *model.Applicant) []Step {
	docsDone := DocumentsComplete(RequiredDocumentIDs(program), applicant.Documents)
	interviewDone := InterviewGatePassed(program, applicant)
	paid := PaymentRecorded(applicant)

	steps := []Step{{
		Key:    "apply",
		Title:  "ส่งใบสมัคร",
		Desc:   applicant.AppliedAt.Format("2 Jan 2006 15:04"),
		Status: StepComplete,
	}}

	docStep := Step{Key: "docs", Title: "ตรวจสอบเอกสาร", Desc: "กำลังรอเอกสารเพิ่มเติม", Status: StepCurrent}
	if docsDone {
		docStep.Desc = "เอกสารครบถ้วน"
		docStep.Status = StepComplete
	}
	steps = append(steps, docStep)

	if program.AdmissionType == model.AdmissionInterview {
		iv := Step{Key: "interview", Title: "สอบสัมภาษณ์"}
		switch applicant.Interview.Result {
		case model.InterviewResultPassed:
			iv.Desc = "ผ่านเกณฑ์"
			iv.Status = StepComplete
		case model.InterviewResultFailed:
			iv.Desc = "ไม่ผ่านเกณฑ์"
			iv.Status = StepError
		default:
			iv.Desc = "รอประกาศผล/นัดหมาย"
			if applicant.Interview.InterviewDate != nil {
				iv.Desc = "นัดหมาย: " + applicant.Interview.InterviewDate.Format("2 Jan 2006 15:04")
			}
			iv.Status = StepUpcoming
			if docsDone {
				iv.Status = StepCurrent
			}
		}
		steps = append(steps, iv)
	}

	pay := Step{Key: "payment", Title: "ชำระค่าเข้าร่วม", Desc: "รอการชำระเงิน", Status: StepUpcoming}
	if paid {
		pay.Desc = "ชำระเงินแล้ว"
		pay.Status = StepComplete
	} else if docsDone && interviewDone {
		pay.Status = StepCurrent
	}
	steps = append(steps, pay)

	return steps
}

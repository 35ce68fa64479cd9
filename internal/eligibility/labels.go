package eligibility

// StatusBadge is a presentation label plus the color token the frontend maps
// to its badge variants.
type StatusBadge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// listLabels is the label set the student-facing application list uses. A
// passed interview already reads as "ผ่านการคัดเลือก" there even while
// payment is still outstanding.
var listLabels = map[Stage]StatusBadge{
	StageApplied:          {Label: "กำลังดำเนินการ", Color: "default"},
	StageDocumentsPending: {Label: "รอเอกสาร", Color: "warning"},
	StageInterviewPending: {Label: "รอสัมภาษณ์", Color: "warning"},
	StagePaymentPending:   {Label: "ผ่านการคัดเลือก", Color: "success"},
	StageComplete:         {Label: "ผ่านการคัดเลือก", Color: "success"},
	StageRejected:         {Label: "ไม่ผ่านการคัดเลือก", Color: "destructive"},
}

// detailLabels is the label set the admin roster and applicant detail use;
// it only distinguishes finished from unfinished applications.
var detailLabels = map[Stage]StatusBadge{
	StageApplied:          {Label: "ไม่สมบูรณ์", Color: "warning"},
	StageDocumentsPending: {Label: "ไม่สมบูรณ์", Color: "warning"},
	StageInterviewPending: {Label: "ไม่สมบูรณ์", Color: "warning"},
	StagePaymentPending:   {Label: "ไม่สมบูรณ์", Color: "warning"},
	StageComplete:         {Label: "สมบูรณ์", Color: "success"},
	StageRejected:         {Label: "ไม่ผ่านการคัดเลือก", Color: "destructive"},
}

// ListLabel returns the student list-view badge for a stage.
func ListLabel(stage Stage) StatusBadge {
	if b, ok := listLabels[stage]; ok {
		return b
	}
	return StatusBadge{Label: "กำลังดำเนินการ", Color: "default"}
}

// DetailLabel returns the admin detail/roster badge for a stage.
func DetailLabel(stage Stage) StatusBadge {
	if b, ok := detailLabels[stage]; ok {
		return b
	}
	return StatusBadge{Label: "ไม่สมบูรณ์", Color: "warning"}
}

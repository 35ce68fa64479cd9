package notification

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nateekarni/dsu-intensive-global/internal/database"
	"github.com/nateekarni/dsu-intensive-global/internal/eligibility"
	"github.com/nateekarni/dsu-intensive-global/internal/messaging"
	"github.com/nateekarni/dsu-intensive-global/internal/model"
)

// StageChangeSubscriber writes a notification for the student on every stage
// transition of their application, and an admin-wide entry when an
// application completes.
func StageChangeSubscriber(db *database.DBinstanceStruct) messaging.Handler {
	return func(event messaging.StageChanged) error {
		userID, err := uuid.Parse(event.UserID)
		if err != nil {
			return fmt.Errorf("invalid user id on stage event: %w", err)
		}

		entry := model.Notification{
			UserID: &userID,
			Link:   fmt.Sprintf("/application/%d", event.ApplicantID),
		}

		switch event.To {
		case eligibility.StageComplete:
			entry.Type = model.NotificationSuccess
			entry.Title = "การสมัครสมบูรณ์"
			entry.Message = "ใบสมัครของคุณผ่านทุกขั้นตอนแล้ว"
		case eligibility.StageRejected:
			entry.Type = model.NotificationError
			entry.Title = "ไม่ผ่านการคัดเลือก"
			entry.Message = "ขออภัย คุณไม่ผ่านการสัมภาษณ์ของโปรแกรมนี้"
		case eligibility.StageInterviewPending:
			entry.Type = model.NotificationWarning
			entry.Title = "รอสัมภาษณ์"
			entry.Message = "เอกสารของคุณครบถ้วนแล้ว โปรดรอการนัดหมายสัมภาษณ์"
		case eligibility.StagePaymentPending:
			entry.Type = model.NotificationInfo
			entry.Title = "รอชำระเงิน"
			entry.Message = "โปรดชำระค่าเข้าร่วมโปรแกรมเพื่อยืนยันสิทธิ์"
		default:
			entry.Type = model.NotificationInfo
			entry.Title = "สถานะใบสมัครเปลี่ยนแปลง"
			entry.Message = fmt.Sprintf("สถานะใบสมัครของคุณเปลี่ยนเป็น %s", event.To.String())
		}

		if err := db.Create(&entry).Error; err != nil {
			return err
		}

		if event.To == eligibility.StageComplete {
			adminEntry := model.Notification{
				Type:    model.NotificationSuccess,
				Title:   "มีผู้สมัครสถานะสมบูรณ์",
				Message: fmt.Sprintf("ใบสมัครหมายเลข %d ผ่านทุกขั้นตอนแล้ว", event.ApplicantID),
				Link:    fmt.Sprintf("/admin/applicant/%d", event.ApplicantID),
			}
			if err := db.Create(&adminEntry).Error; err != nil {
				return err
			}
		}

		return nil
	}
}

package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// NotificationSuccess marks good news (selection passed, payment confirmed)
	NotificationSuccess = "success"
	// NotificationWarning marks time-sensitive reminders (interview date, deadline)
	NotificationWarning = "warning"
	// NotificationError marks something the receiver must fix (rejected document)
	NotificationError = "error"
	// NotificationInfo marks neutral announcements
	NotificationInfo = "info"
)

// Notification is one entry in a user's in-app notification feed. Admin-wide
// notifications have a nil UserID and are visible to every admin account.
type Notification struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Title     string     `gorm:"type:text" json:"title"`
	Message   string     `gorm:"type:text" json:"message"`
	Type      string     `gorm:"type:text;default:info" json:"type"`
	IsRead    bool       `gorm:"type:boolean;default:false" json:"is_read"`
	CreatedAt time.Time  `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	Link      string     `gorm:"type:text" json:"link,omitempty"`
}

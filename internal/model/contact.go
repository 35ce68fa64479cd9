package model

import "time"

var (
	// ContactStatusNew is the initial status of an incoming message
	ContactStatusNew = "new"
	// ContactStatusRead indicates an admin opened the message
	ContactStatusRead = "read"
	// ContactStatusReplied indicates an admin answered the sender
	ContactStatusReplied = "replied"
)

// ContactMessage is an inquiry sent through the public contact form.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:text" json:"name"`
	Email     string    `gorm:"type:text" json:"email"`
	Subject   string    `gorm:"type:text" json:"subject"`
	Body      string    `gorm:"type:text" json:"body"`
	Status    string    `gorm:"type:text;default:new" json:"status"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

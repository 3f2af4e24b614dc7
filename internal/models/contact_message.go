package models

import "time"

// ContactMessage is a message submitted through the public contact form.
// Rows are created only by the submission pipeline and are immutable
// afterwards; retention is an operator concern, not the application's.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:320;not null" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

// Post is a piece of content owned by a user. The owner never changes after
// creation and Date is always stamped server-side.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:80" json:"title"`
	Description string    `gorm:"size:150" json:"description"`
	Body        string    `gorm:"size:2200" json:"body"`
	Date        time.Time `gorm:"not null" json:"date"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
}

package models

// User represents an account. Passwords are stored as bcrypt hashes only;
// deactivation flips IsActive instead of deleting the row.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	IsActive     bool    `gorm:"not null;default:true" json:"is_active"`
	IsAdmin      bool    `gorm:"not null;default:false" json:"is_admin"`
	FirstName    *string `gorm:"size:80" json:"first_name"`
	LastName     *string `gorm:"size:80" json:"last_name"`
}

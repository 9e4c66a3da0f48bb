package model

import "time"

// DefaultRole is assigned when signup omits a role.
const DefaultRole = "student"

// User represents a registered portal user.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Role         string    `json:"role" gorm:"size:50;not null;default:'student'"`
	RollNo       string    `json:"rollNo" gorm:"column:roll_no;uniqueIndex;size:64;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

// IsStudent reports whether the user carries the student role.
func (u *User) IsStudent() bool {
	return u.Role == DefaultRole
}

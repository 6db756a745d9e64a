package models

import "time"

// Employee is the requester record. EmployeeCode is the business key
// (format YYYY-NNN, e.g. 2025-322); ID is the surrogate primary key.
type Employee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployeeCode string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"employee_code"`
	FullName     string    `gorm:"type:varchar(100);not null" json:"full_name"`
	Branch       string    `gorm:"type:varchar(100);not null" json:"branch"`
	Email        *string   `gorm:"type:varchar(255)" json:"email,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

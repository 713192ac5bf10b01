package models

import (
	"time"
)

// Attendance holds one check-in per employee per calendar day. Day is stored
// as "2006-01-02" so the uniqueness constraint works across database drivers.
type Attendance struct {
	ID         uint64     `gorm:"primarykey" json:"id"`
	EmployeeID uint64     `gorm:"not null;uniqueIndex:idx_attendance_employee_day" json:"employee_id"`
	Day        string     `gorm:"type:varchar(10);not null;uniqueIndex:idx_attendance_employee_day" json:"day"`
	CheckInAt  time.Time  `gorm:"not null" json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relations
	Employee Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleTeacher = "Teacher"
	RoleStudent = "Student"
)

type User struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password  string         `gorm:"type:varchar(255);not null" json:"-"`
	FullName  string         `gorm:"type:varchar(100)" json:"full_name"`
	Role      string         `gorm:"type:varchar(20);not null;default:Student;index" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

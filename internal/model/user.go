package model

import "time"

type UserRole string

const (
	Admin   UserRole = "admin"
	Teacher UserRole = "teacher"
	Student UserRole = "student"
)

type User struct {
	BaseModel
	Name       string     `gorm:"size:100;not null" json:"name"`
	Email      string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"size:255;not null" json:"-"`
	Role       UserRole   `gorm:"size:20;not null;default:student" json:"role"`
	SchoolID   uint       `gorm:"index" json:"schoolId"`
	IsActive   bool       `gorm:"default:true" json:"isActive"`
	LastSeenAt *time.Time `json:"lastSeenAt,omitempty"`
}

func (User) TableName() string {
	return "users"
}

package models

import (
	"time"
)

// User là danh tính do hệ thống auth bên ngoài cấp, ở đây chỉ đọc
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name        string    `gorm:"default:New User" json:"name"`
	Email       string    `gorm:"unique" json:"email"`
	PhoneNumber string    `gorm:"type:varchar(11)" json:"phoneNumber"`
	Role        int       `gorm:"default:0" json:"role"`
	Status      int       `gorm:"default:1" json:"status"`
}

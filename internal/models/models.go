package models

import (
	"time"
)

const (
	EmailStatusQueued  = "queued"
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
	EmailStatusDropped = "dropped"
)

// ContactInquiry represents a contact form submission
type ContactInquiry struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UUID            string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Email           string    `gorm:"type:varchar(255);not null;index" json:"email"`
	Production      string    `gorm:"type:varchar(255)" json:"production"`
	Role            string    `gorm:"type:varchar(255)" json:"role"`
	Timeline        string    `gorm:"type:varchar(255)" json:"timeline"`
	Message         string    `gorm:"type:text" json:"message"`
	ResumeRequested bool      `gorm:"default:false" json:"resume_requested"`
	ClientIP        string    `gorm:"type:varchar(64)" json:"client_ip"`
	EmailStatus     string    `gorm:"type:varchar(20);default:'queued'" json:"email_status"`
	EmailError      string    `gorm:"type:text" json:"email_error"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ContactInquiry) TableName() string {
	return "contact_inquiries"
}

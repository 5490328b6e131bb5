package database

import (
	"context"

	"actor-portfolio/internal/models"

	"gorm.io/gorm"
)

// InquiryStore persists contact form submissions.
type InquiryStore struct {
	DB *gorm.DB
}

func NewInquiryStore(db *gorm.DB) *InquiryStore {
	return &InquiryStore{DB: db}
}

func (s *InquiryStore) Create(ctx context.Context, inquiry *models.ContactInquiry) error {
	return s.DB.WithContext(ctx).Create(inquiry).Error
}

// UpdateEmailStatus records the delivery outcome of the notification email.
func (s *InquiryStore) UpdateEmailStatus(ctx context.Context, uuid, status, errMsg string) error {
	return s.DB.WithContext(ctx).
		Model(&models.ContactInquiry{}).
		Where("uuid = ?", uuid).
		Updates(map[string]interface{}{
			"email_status": status,
			"email_error":  errMsg,
		}).Error
}

func (s *InquiryStore) FindByUUID(ctx context.Context, uuid string) (*models.ContactInquiry, error) {
	var inquiry models.ContactInquiry
	if err := s.DB.WithContext(ctx).Where("uuid = ?", uuid).First(&inquiry).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// ListByStatus returns inquiries whose email is in one of the given states, oldest first.
func (s *InquiryStore) ListByStatus(ctx context.Context, statuses ...string) ([]models.ContactInquiry, error) {
	var inquiries []models.ContactInquiry
	err := s.DB.WithContext(ctx).
		Where("email_status IN ?", statuses).
		Order("created_at asc").
		Find(&inquiries).Error
	return inquiries, err
}

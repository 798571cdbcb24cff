package repository

import (
	"errors"

	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"gorm.io/gorm"
)

type AffiliateRepository interface {
	Create(affiliate *model.Affiliate) error
	// FindByHandle returns (nil, nil) when no affiliate matches; an unknown
	// handle is not an error, the attempt is just unattributed.
	FindByHandle(handle string) (*model.Affiliate, error)
}

type affiliateRepository struct {
	db *gorm.DB
}

func NewAffiliateRepository(db *gorm.DB) AffiliateRepository {
	return &affiliateRepository{db: db}
}

func (r *affiliateRepository) Create(affiliate *model.Affiliate) error {
	return r.db.Create(affiliate).Error
}

func (r *affiliateRepository) FindByHandle(handle string) (*model.Affiliate, error) {
	var affiliate model.Affiliate
	err := r.db.Where("handle = ?", handle).First(&affiliate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &affiliate, nil
}

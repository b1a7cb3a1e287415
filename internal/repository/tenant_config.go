package repository

import (
	"errors"

	"github.com/groomly/pet-services/notifygateway/internal/model"
	"gorm.io/gorm"
)

var ErrConfigNotFound = errors.New("CONFIG_NOT_FOUND")

type TenantConfigRepository interface {
	GetByTenantID(tenantID string) (*model.TenantNotificationConfig, error)
}

type TenantConfig struct {
	db *gorm.DB
}

func NewTenantConfigRepository(db *gorm.DB) TenantConfigRepository {
	return &TenantConfig{db: db}
}

func (r *TenantConfig) GetByTenantID(tenantID string) (*model.TenantNotificationConfig, error) {
	var cfg model.TenantNotificationConfig

	err := r.db.Where("tenant_id = ?", tenantID).First(&cfg).Error
	if err == nil {
		return &cfg, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConfigNotFound
	}

	return nil, err
}

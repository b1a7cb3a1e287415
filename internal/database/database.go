package database

import (
	"context"

	"github.com/groomly/pet-services/notifygateway/internal/config"
	"github.com/groomly/pet-services/notifygateway/pkg/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewConnection(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

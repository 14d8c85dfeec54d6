package repository

import (
	"context"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"

	"gorm.io/gorm"
)

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

func (r *AuditLogGormRepository) Create(ctx context.Context, entry model.AuditLog) error {
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *AuditLogGormRepository) ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var entries []model.AuditLog
	err := r.db.WithContext(ctx).
		Order("id desc").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

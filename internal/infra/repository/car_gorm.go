package repository

import (
	"context"
	"errors"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
	repo "github.com/SafatUddin/CAR-Hub/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CarGormRepository struct {
	db *gorm.DB
}

func NewCarGormRepository(db *gorm.DB) *CarGormRepository {
	return &CarGormRepository{db: db}
}

func (r *CarGormRepository) FindByID(ctx context.Context, carID int64) (model.Car, error) {
	var c model.Car
	err := r.db.WithContext(ctx).Preload("Images").Where("id = ?", carID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Car{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Car{}, err
	}
	return c, nil
}

func (r *CarGormRepository) FindByIDForUpdate(ctx context.Context, carID int64) (model.Car, error) {
	var c model.Car
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", carID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Car{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Car{}, err
	}
	return c, nil
}

func (r *CarGormRepository) OwnerOf(ctx context.Context, carID int64) (int64, error) {
	var ownerID int64
	err := r.db.WithContext(ctx).Model(&model.Car{}).
		Where("id = ?", carID).
		Pluck("owner_id", &ownerID).Error
	if err != nil {
		return 0, err
	}
	if ownerID == 0 {
		return 0, repo.ErrNotFound
	}
	return ownerID, nil
}

func (r *CarGormRepository) Create(ctx context.Context, car model.Car) (model.Car, error) {
	if err := r.db.WithContext(ctx).Create(&car).Error; err != nil {
		return model.Car{}, err
	}
	return car, nil
}

func (r *CarGormRepository) Update(ctx context.Context, car model.Car) error {
	res := r.db.WithContext(ctx).Model(&model.Car{}).
		Where("id = ?", car.ID).
		Updates(map[string]interface{}{
			"make":             car.Make,
			"model":            car.Model,
			"year":             car.Year,
			"mileage":          car.Mileage,
			"car_type":         car.CarType,
			"description":      car.Description,
			"contact_email":    car.ContactEmail,
			"contact_whats_app":    car.ContactWhatsApp,
			"registration_doc_url": car.RegistrationDocURL,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CarGormRepository) UpdatePrice(ctx context.Context, carID int64, priceBDT float64) error {
	return r.updateColumn(ctx, carID, "price", priceBDT)
}

func (r *CarGormRepository) UpdateStatus(ctx context.Context, carID int64, status model.CarStatus) error {
	return r.updateColumn(ctx, carID, "status", status)
}

func (r *CarGormRepository) UpdateApproval(ctx context.Context, carID int64, status model.ApprovalStatus) error {
	return r.updateColumn(ctx, carID, "approval_status", status)
}

func (r *CarGormRepository) updateColumn(ctx context.Context, carID int64, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Car{}).
		Where("id = ?", carID).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CarGormRepository) Delete(ctx context.Context, carID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", carID).Delete(&model.Car{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CarGormRepository) ListApproved(ctx context.Context) ([]model.Car, error) {
	var cars []model.Car
	err := r.db.WithContext(ctx).Preload("Images").
		Where("approval_status = ?", model.ApprovalApproved).
		Order("id desc").
		Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *CarGormRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Car, error) {
	var cars []model.Car
	err := r.db.WithContext(ctx).Preload("Images").
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *CarGormRepository) ListByApproval(ctx context.Context, status model.ApprovalStatus) ([]model.Car, error) {
	var cars []model.Car
	err := r.db.WithContext(ctx).Preload("Images").
		Where("approval_status = ?", status).
		Order("created_at asc").
		Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *CarGormRepository) AddImages(ctx context.Context, carID int64, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	images := make([]model.CarImage, 0, len(urls))
	for _, u := range urls {
		images = append(images, model.CarImage{CarID: carID, URL: u})
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

func (r *CarGormRepository) FollowerIDs(ctx context.Context, carID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Table("car_followers").
		Where("car_id = ?", carID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *CarGormRepository) IsFollower(ctx context.Context, carID int64, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("car_followers").
		Where("car_id = ? AND user_id = ?", carID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CarGormRepository) AddFollower(ctx context.Context, carID int64, userID int64) error {
	return r.db.WithContext(ctx).
		Exec("INSERT INTO car_followers (car_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING", carID, userID).
		Error
}

func (r *CarGormRepository) RemoveFollower(ctx context.Context, carID int64, userID int64) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM car_followers WHERE car_id = ? AND user_id = ?", carID, userID).
		Error
}

func (r *CarGormRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Car{}).Count(&count).Error
	return count, err
}

func (r *CarGormRepository) CountByApproval(ctx context.Context, status model.ApprovalStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Car{}).
		Where("approval_status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *CarGormRepository) CountByStatus(ctx context.Context, status model.CarStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Car{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

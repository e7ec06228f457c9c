package repository

import (
	"context"

	"github.com/serenica/retreat-backoffice/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RetreatRepository interface {
	Create(ctx context.Context, retreat *models.Retreat) error
	FindByID(ctx context.Context, id uint) (*models.Retreat, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Retreat, error)
	FindAll(ctx context.Context) ([]models.Retreat, error)
}

type retreatRepository struct {
	db *gorm.DB
}

func NewRetreatRepository(db *gorm.DB) RetreatRepository {
	return &retreatRepository{db: db}
}

func (r *retreatRepository) Create(ctx context.Context, retreat *models.Retreat) error {
	return r.db.WithContext(ctx).Create(retreat).Error
}

func (r *retreatRepository) FindByID(ctx context.Context, id uint) (*models.Retreat, error) {
	var retreat models.Retreat
	if err := r.db.WithContext(ctx).First(&retreat, id).Error; err != nil {
		return nil, err
	}
	return &retreat, nil
}

// FindByIDForUpdate acquires a row-level lock on the retreat within the given
// transaction. All capacity check-then-act paths go through this lock.
func (r *retreatRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Retreat, error) {
	var retreat models.Retreat
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&retreat, id).Error; err != nil {
		return nil, err
	}
	return &retreat, nil
}

func (r *retreatRepository) FindAll(ctx context.Context) ([]models.Retreat, error) {
	var retreats []models.Retreat
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&retreats).Error; err != nil {
		return nil, err
	}
	return retreats, nil
}

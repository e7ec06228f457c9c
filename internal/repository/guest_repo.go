package repository

import (
	"context"

	"github.com/serenica/retreat-backoffice/internal/models"
	"gorm.io/gorm"
)

type GuestRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Guest, error)
	FindOrCreate(ctx context.Context, tx *gorm.DB, guest *models.Guest) error
}

type guestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) GuestRepository {
	return &guestRepository{db: db}
}

func (r *guestRepository) FindByEmail(ctx context.Context, email string) (*models.Guest, error) {
	var guest models.Guest
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&guest).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}

// FindOrCreate looks a guest up by email and creates the row when absent,
// filling guest.ID either way. Email is the unique key for guests.
func (r *guestRepository) FindOrCreate(ctx context.Context, tx *gorm.DB, guest *models.Guest) error {
	return tx.WithContext(ctx).
		Where("email = ?", guest.Email).
		FirstOrCreate(guest).Error
}

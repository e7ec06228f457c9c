package repository

import (
	"context"
	"time"

	"github.com/serenica/retreat-backoffice/internal/models"
	"gorm.io/gorm"
)

const waitlistPattern = "WAITLIST:%"

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	FindAll(ctx context.Context, retreatID *uint, status *models.BookingStatus) ([]models.Booking, error)
	FindWaitlisted(ctx context.Context, retreatID *uint, offset, limit int) ([]models.Booking, int64, error)
	FindWaitlistedTx(ctx context.Context, tx *gorm.DB, retreatID uint) ([]models.Booking, error)
	SumOverlappingGuests(ctx context.Context, tx *gorm.DB, retreatID uint, checkIn, checkOut time.Time) (int64, error)
	SumActiveGuests(ctx context.Context, tx *gorm.DB, retreatID uint) (int64, error)
	UpdateStatusAndNotes(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus, notes string) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus) error
	Delete(ctx context.Context, id uint) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDTx re-fetches a booking inside the given transaction so promotion
// decisions are made against the row's current state.
func (r *bookingRepository) FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, retreatID *uint, status *models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx)
	if retreatID != nil {
		q = q.Where("retreat_id = ?", *retreatID)
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindWaitlisted returns one page of waitlist entries ordered first-come
// first-served, plus the total count for pagination.
func (r *bookingRepository) FindWaitlisted(ctx context.Context, retreatID *uint, offset, limit int) ([]models.Booking, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ? AND notes LIKE ?", models.StatusCancelled, waitlistPattern)
	if retreatID != nil {
		q = q.Where("retreat_id = ?", *retreatID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	if err := q.Order("created_at ASC").Offset(offset).Limit(limit).Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) FindWaitlistedTx(ctx context.Context, tx *gorm.DB, retreatID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := tx.WithContext(ctx).
		Where("retreat_id = ? AND status = ? AND notes LIKE ?", retreatID, models.StatusCancelled, waitlistPattern).
		Order("created_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// SumOverlappingGuests totals party sizes of confirmed and completed bookings
// whose stay overlaps [checkIn, checkOut]. The overlap test is inclusive on
// both ends: existing.check_in <= checkOut AND existing.check_out >= checkIn.
func (r *bookingRepository) SumOverlappingGuests(ctx context.Context, tx *gorm.DB, retreatID uint, checkIn, checkOut time.Time) (int64, error) {
	var occupied int64
	err := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Select("COALESCE(SUM(number_of_guests), 0)").
		Where("retreat_id = ? AND status IN ?", retreatID, []models.BookingStatus{models.StatusConfirmed, models.StatusCompleted}).
		Where("check_in_date <= ? AND check_out_date >= ?", checkOut, checkIn).
		Scan(&occupied).Error
	return occupied, err
}

// SumActiveGuests totals party sizes of confirmed and completed bookings for
// the whole retreat, regardless of stay interval.
func (r *bookingRepository) SumActiveGuests(ctx context.Context, tx *gorm.DB, retreatID uint) (int64, error) {
	var occupied int64
	err := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Select("COALESCE(SUM(number_of_guests), 0)").
		Where("retreat_id = ? AND status IN ?", retreatID, []models.BookingStatus{models.StatusConfirmed, models.StatusCompleted}).
		Scan(&occupied).Error
	return occupied, err
}

func (r *bookingRepository) UpdateStatusAndNotes(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus, notes string) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "notes": notes}).Error
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

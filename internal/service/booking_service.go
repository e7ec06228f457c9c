package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/serenica/retreat-backoffice/internal/models"
	"github.com/serenica/retreat-backoffice/internal/repository"
	"github.com/serenica/retreat-backoffice/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrOutsideRetreatDates  = errors.New("stay dates fall outside the retreat schedule")
	ErrInsufficientCapacity = errors.New("insufficient capacity for the requested stay")
	ErrAlreadyCancelled     = errors.New("booking is already cancelled")
)

type CreateBookingInput struct {
	RetreatID    uint
	Guest        models.Guest
	CheckInDate  time.Time
	CheckOutDate time.Time
	GuestCount   int
	Notes        string
}

type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID uint) (*models.Booking, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, retreatID *uint, status *models.BookingStatus) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	retreatRepo repository.RetreatRepository
	guestRepo   repository.GuestRepository
	publisher   *rabbitmq.Publisher
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	retreatRepo repository.RetreatRepository,
	guestRepo repository.GuestRepository,
	publisher *rabbitmq.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		retreatRepo: retreatRepo,
		guestRepo:   guestRepo,
		publisher:   publisher,
	}
}

// CreateBooking makes a direct confirmed booking. The retreat row lock
// serializes concurrent capacity checks against the same retreat.
func (s *bookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		retreat, err := s.retreatRepo.FindByIDForUpdate(ctx, tx, input.RetreatID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRetreatNotFound
			}
			return err
		}

		if input.CheckInDate.Before(retreat.StartDate) || input.CheckOutDate.After(retreat.EndDate) {
			return ErrOutsideRetreatDates
		}

		occupied, err := s.bookingRepo.SumOverlappingGuests(ctx, tx, retreat.ID, input.CheckInDate, input.CheckOutDate)
		if err != nil {
			return err
		}
		if retreat.Capacity-int(occupied) < input.GuestCount {
			return ErrInsufficientCapacity
		}

		guest := input.Guest
		if err := s.guestRepo.FindOrCreate(ctx, tx, &guest); err != nil {
			return fmt.Errorf("find or create guest: %w", err)
		}

		booking := &models.Booking{
			ReferenceCode:  uuid.NewString(),
			RetreatID:      retreat.ID,
			GuestID:        guest.ID,
			CheckInDate:    input.CheckInDate,
			CheckOutDate:   input.CheckOutDate,
			NumberOfGuests: input.GuestCount,
			TotalAmount:    retreat.Price * float64(input.GuestCount),
			PaymentStatus:  models.PaymentPending,
			Status:         models.StatusConfirmed,
			Notes:          input.Notes,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}

		booking.Guest = &guest
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyBookingConfirmed, result)
	}
	return result, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking %d: %w", bookingID, err)
	}
	if booking.Status == models.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	if err := s.bookingRepo.UpdateStatus(ctx, s.bookingRepo.GetDB(), bookingID, models.StatusCancelled); err != nil {
		return nil, err
	}
	booking.Status = models.StatusCancelled

	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyBookingCancelled, booking)
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking %d: %w", id, err)
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, retreatID *uint, status *models.BookingStatus) ([]models.Booking, error) {
	return s.bookingRepo.FindAll(ctx, retreatID, status)
}

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
	ErrRetreatNotFound = errors.New("retreat not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotWaitlisted   = errors.New("booking is not a waitlist entry")
	ErrInvalidPriority = errors.New("invalid waitlist priority")
)

// CapacitySnapshot reports the capacity arithmetic for one retreat/interval.
// AvailableSpots is signed: negative values mean the retreat is over-booked
// (possible after manual data edits) and are reported as-is, never clamped.
type CapacitySnapshot struct {
	Capacity       int `json:"capacity"`
	Occupied       int `json:"occupied"`
	AvailableSpots int `json:"availableSpots"`
}

// WaitlistEntry is a waitlist booking annotated with recomputed capacity.
type WaitlistEntry struct {
	Booking        models.Booking
	Priority       models.WaitlistPriority
	QueuedAt       time.Time
	AvailableSpots int
	CanBePromoted  bool
}

type JoinWaitlistInput struct {
	RetreatID    uint
	Guest        models.Guest
	CheckInDate  time.Time
	CheckOutDate time.Time
	GuestCount   int
	Priority     models.WaitlistPriority
	Notes        string
}

// PromotionResult carries the outcome of a batch promotion. Partial success
// is the normal case: per-booking failures land in Errors, never abort the
// batch.
type PromotionResult struct {
	Promoted []uint   `json:"promoted"`
	Errors   []string `json:"errors"`
}

type WaitlistService interface {
	Join(ctx context.Context, input JoinWaitlistInput) (*models.Booking, error)
	List(ctx context.Context, retreatID *uint, page, limit int) ([]WaitlistEntry, int64, error)
	Remove(ctx context.Context, bookingID uint) error
	Promote(ctx context.Context, bookingIDs []uint) (*PromotionResult, error)
	AutoPromote(ctx context.Context, retreatID uint) (*PromotionResult, error)
	AvailableSpots(ctx context.Context, retreatID uint, checkIn, checkOut time.Time) (*CapacitySnapshot, error)
}

type waitlistService struct {
	bookingRepo repository.BookingRepository
	retreatRepo repository.RetreatRepository
	guestRepo   repository.GuestRepository
	publisher   *rabbitmq.Publisher
}

func NewWaitlistService(
	bookingRepo repository.BookingRepository,
	retreatRepo repository.RetreatRepository,
	guestRepo repository.GuestRepository,
	publisher *rabbitmq.Publisher,
) WaitlistService {
	return &waitlistService{
		bookingRepo: bookingRepo,
		retreatRepo: retreatRepo,
		guestRepo:   guestRepo,
		publisher:   publisher,
	}
}

func (s *waitlistService) Join(ctx context.Context, input JoinWaitlistInput) (*models.Booking, error) {
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	if !models.ValidPriority(priority) {
		return nil, ErrInvalidPriority
	}

	retreat, err := s.retreatRepo.FindByID(ctx, input.RetreatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRetreatNotFound
		}
		return nil, fmt.Errorf("load retreat %d: %w", input.RetreatID, err)
	}

	guest := input.Guest
	if err := s.guestRepo.FindOrCreate(ctx, s.bookingRepo.GetDB(), &guest); err != nil {
		return nil, fmt.Errorf("find or create guest: %w", err)
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
		Status:         models.StatusCancelled,
		Notes:          models.FormatWaitlistTag(priority, time.Now().UTC(), input.Notes),
	}
	if err := s.bookingRepo.Create(ctx, s.bookingRepo.GetDB(), booking); err != nil {
		return nil, fmt.Errorf("create waitlist entry: %w", err)
	}

	booking.Guest = &guest
	return booking, nil
}

func (s *waitlistService) List(ctx context.Context, retreatID *uint, page, limit int) ([]WaitlistEntry, int64, error) {
	offset := (page - 1) * limit
	bookings, total, err := s.bookingRepo.FindWaitlisted(ctx, retreatID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	retreats := make(map[uint]*models.Retreat)
	entries := make([]WaitlistEntry, 0, len(bookings))
	for _, b := range bookings {
		retreat, ok := retreats[b.RetreatID]
		if !ok {
			retreat, err = s.retreatRepo.FindByID(ctx, b.RetreatID)
			if err != nil {
				return nil, 0, fmt.Errorf("load retreat %d: %w", b.RetreatID, err)
			}
			retreats[b.RetreatID] = retreat
		}

		occupied, err := s.bookingRepo.SumOverlappingGuests(ctx, s.bookingRepo.GetDB(), b.RetreatID, b.CheckInDate, b.CheckOutDate)
		if err != nil {
			return nil, 0, err
		}
		available := retreat.Capacity - int(occupied)

		entry := WaitlistEntry{
			Booking:        b,
			AvailableSpots: available,
			CanBePromoted:  available >= b.NumberOfGuests,
		}
		if tag, ok := models.ParseWaitlistTag(b.Notes); ok {
			entry.Priority = tag.Priority
			entry.QueuedAt = tag.QueuedAt
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}

func (s *waitlistService) Remove(ctx context.Context, bookingID uint) error {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("load booking %d: %w", bookingID, err)
	}
	// A row that lost its waitlist shape is not deletable through here.
	if !booking.IsWaitlisted() {
		return ErrBookingNotFound
	}
	return s.bookingRepo.Delete(ctx, bookingID)
}

func (s *waitlistService) AvailableSpots(ctx context.Context, retreatID uint, checkIn, checkOut time.Time) (*CapacitySnapshot, error) {
	retreat, err := s.retreatRepo.FindByID(ctx, retreatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRetreatNotFound
		}
		return nil, fmt.Errorf("load retreat %d: %w", retreatID, err)
	}

	occupied, err := s.bookingRepo.SumOverlappingGuests(ctx, s.bookingRepo.GetDB(), retreatID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	return &CapacitySnapshot{
		Capacity:       retreat.Capacity,
		Occupied:       int(occupied),
		AvailableSpots: retreat.Capacity - int(occupied),
	}, nil
}

// Promote attempts each booking id independently. Every id gets its own
// transaction so one failure cannot undo another id's promotion.
func (s *waitlistService) Promote(ctx context.Context, bookingIDs []uint) (*PromotionResult, error) {
	result := &PromotionResult{
		Promoted: []uint{},
		Errors:   []string{},
	}

	for _, id := range bookingIDs {
		booking, err := s.promoteOne(ctx, id)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("booking %d: %v", id, err))
			continue
		}
		result.Promoted = append(result.Promoted, id)
		if s.publisher != nil {
			_ = s.publisher.Publish(rabbitmq.KeyBookingPromoted, booking)
		}
	}

	return result, nil
}

// promoteOne re-checks the booking and the retreat's interval-scoped
// occupancy under a retreat row lock, then flips the entry to confirmed.
func (s *waitlistService) promoteOne(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var promoted *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDTx(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if !booking.IsWaitlisted() {
			return ErrNotWaitlisted
		}

		retreat, err := s.retreatRepo.FindByIDForUpdate(ctx, tx, booking.RetreatID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRetreatNotFound
			}
			return err
		}

		occupied, err := s.bookingRepo.SumOverlappingGuests(ctx, tx, retreat.ID, booking.CheckInDate, booking.CheckOutDate)
		if err != nil {
			return err
		}
		available := retreat.Capacity - int(occupied)
		if available < booking.NumberOfGuests {
			return fmt.Errorf("insufficient capacity: %d available, %d requested", available, booking.NumberOfGuests)
		}

		notes := models.PromoteWaitlistTag(booking.Notes)
		if err := s.bookingRepo.UpdateStatusAndNotes(ctx, tx, booking.ID, models.StatusConfirmed, notes); err != nil {
			return err
		}

		booking.Status = models.StatusConfirmed
		booking.Notes = notes
		promoted = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return promoted, nil
}

// AutoPromote walks the retreat's waitlist first-come first-served and
// promotes every entry that fits the remaining retreat-wide capacity. The
// whole walk runs in one transaction under the retreat row lock, so two
// concurrent calls cannot both spend the same spots.
func (s *waitlistService) AutoPromote(ctx context.Context, retreatID uint) (*PromotionResult, error) {
	var promoted []models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		retreat, err := s.retreatRepo.FindByIDForUpdate(ctx, tx, retreatID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRetreatNotFound
			}
			return err
		}

		occupied, err := s.bookingRepo.SumActiveGuests(ctx, tx, retreatID)
		if err != nil {
			return err
		}
		remaining := retreat.Capacity - int(occupied)

		entries, err := s.bookingRepo.FindWaitlistedTx(ctx, tx, retreatID)
		if err != nil {
			return err
		}

		for _, booking := range planPromotions(entries, remaining) {
			notes := models.PromoteWaitlistTag(booking.Notes)
			if err := s.bookingRepo.UpdateStatusAndNotes(ctx, tx, booking.ID, models.StatusConfirmed, notes); err != nil {
				return err
			}
			booking.Status = models.StatusConfirmed
			booking.Notes = notes
			promoted = append(promoted, booking)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &PromotionResult{
		Promoted: make([]uint, 0, len(promoted)),
		Errors:   []string{},
	}
	for _, booking := range promoted {
		result.Promoted = append(result.Promoted, booking.ID)
		if s.publisher != nil {
			_ = s.publisher.Publish(rabbitmq.KeyBookingPromoted, booking)
		}
	}
	return result, nil
}

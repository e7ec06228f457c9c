package dto

import (
	"time"

	"github.com/serenica/retreat-backoffice/internal/models"
	"github.com/serenica/retreat-backoffice/internal/service"
)

type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(page, limit int, total int64) PaginationResponse {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return PaginationResponse{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

type BookingResponse struct {
	ID             uint                 `json:"id"`
	ReferenceCode  string               `json:"referenceCode"`
	RetreatID      uint                 `json:"retreatId"`
	GuestID        uint                 `json:"guestId"`
	CheckInDate    time.Time            `json:"checkInDate"`
	CheckOutDate   time.Time            `json:"checkOutDate"`
	NumberOfGuests int                  `json:"numberOfGuests"`
	TotalAmount    float64              `json:"totalAmount"`
	PaidAmount     float64              `json:"paidAmount"`
	PaymentStatus  models.PaymentStatus `json:"paymentStatus"`
	Status         models.BookingStatus `json:"status"`
	Notes          string               `json:"notes"`
	CreatedAt      time.Time            `json:"createdAt"`
	Guest          *models.Guest        `json:"guest,omitempty"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		ReferenceCode:  b.ReferenceCode,
		RetreatID:      b.RetreatID,
		GuestID:        b.GuestID,
		CheckInDate:    b.CheckInDate,
		CheckOutDate:   b.CheckOutDate,
		NumberOfGuests: b.NumberOfGuests,
		TotalAmount:    b.TotalAmount,
		PaidAmount:     b.PaidAmount,
		PaymentStatus:  b.PaymentStatus,
		Status:         b.Status,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
		Guest:          b.Guest,
	}
}

// WaitlistEntryResponse is a booking annotated with the recomputed capacity
// snapshot and the parsed tag metadata.
type WaitlistEntryResponse struct {
	BookingResponse
	Priority       models.WaitlistPriority `json:"priority"`
	QueuedAt       time.Time               `json:"queuedAt"`
	AvailableSpots int                     `json:"availableSpots"`
	CanBePromoted  bool                    `json:"canBePromoted"`
}

func ToWaitlistEntryResponse(e *service.WaitlistEntry) WaitlistEntryResponse {
	return WaitlistEntryResponse{
		BookingResponse: ToBookingResponse(&e.Booking),
		Priority:        e.Priority,
		QueuedAt:        e.QueuedAt,
		AvailableSpots:  e.AvailableSpots,
		CanBePromoted:   e.CanBePromoted,
	}
}

type WaitlistListResponse struct {
	Waitlist   []WaitlistEntryResponse `json:"waitlist"`
	Pagination PaginationResponse      `json:"pagination"`
}

type AvailabilityResponse struct {
	RetreatID uint `json:"retreatId"`
	service.CapacitySnapshot
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPartial  PaymentStatus = "PARTIAL"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

type Booking struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	ReferenceCode  string        `gorm:"size:36;uniqueIndex" json:"referenceCode"`
	RetreatID      uint          `gorm:"not null;index" json:"retreatId"`
	GuestID        uint          `gorm:"not null;index" json:"guestId"`
	CheckInDate    time.Time     `gorm:"not null" json:"checkInDate"`
	CheckOutDate   time.Time     `gorm:"not null" json:"checkOutDate"`
	NumberOfGuests int           `gorm:"not null" json:"numberOfGuests"`
	TotalAmount    float64       `json:"totalAmount"`
	PaidAmount     float64       `json:"paidAmount"`
	PaymentStatus  PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"paymentStatus"`
	Status         BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Notes          string        `json:"notes"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`

	Retreat *Retreat `gorm:"foreignKey:RetreatID" json:"retreat,omitempty"`
	Guest   *Guest   `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
}

// IsWaitlisted reports whether the booking is a live waitlist entry: a
// cancelled row whose notes carry the WAITLIST tag. The tag in notes is the
// sole source of truth, there is no dedicated column.
func (b *Booking) IsWaitlisted() bool {
	return b.Status == StatusCancelled && HasWaitlistTag(b.Notes)
}

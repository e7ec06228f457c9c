package dto

import "encoding/json"

// GuestData identifies a guest on create requests; email is the unique key
// used to find-or-create the guest row.
type GuestData struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type CreateWaitlistRequest struct {
	RetreatID    uint      `json:"retreatId"`
	GuestData    GuestData `json:"guestData"`
	CheckInDate  string    `json:"checkInDate"`
	CheckOutDate string    `json:"checkOutDate"`
	GuestCount   int       `json:"guestCount"`
	Priority     string    `json:"priority"`
	Notes        string    `json:"notes"`
}

// WaitlistActionRequest is the PATCH body; Action selects the promotion mode.
type WaitlistActionRequest struct {
	Action     string `json:"action"`
	BookingIDs []uint `json:"bookingIds"`
	RetreatID  uint   `json:"retreatId"`
}

type CreateBookingRequest struct {
	GuestData    GuestData `json:"guestData"`
	CheckInDate  string    `json:"checkInDate"`
	CheckOutDate string    `json:"checkOutDate"`
	GuestCount   int       `json:"guestCount"`
	Notes        string    `json:"notes"`
}

type CreateRetreatRequest struct {
	Title     string          `json:"title"`
	Capacity  int             `json:"capacity"`
	Price     float64         `json:"price"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Location  string          `json:"location"`
	Type      string          `json:"type"`
	Amenities json.RawMessage `json:"amenities"`
}

type CreateTransactionRequest struct {
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

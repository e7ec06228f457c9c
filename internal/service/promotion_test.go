package service

import (
	"testing"

	"github.com/serenica/retreat-backoffice/internal/models"
	"github.com/stretchr/testify/assert"
)

func entry(id uint, guests int) models.Booking {
	return models.Booking{ID: id, NumberOfGuests: guests}
}

func ids(bookings []models.Booking) []uint {
	out := make([]uint, len(bookings))
	for i, b := range bookings {
		out[i] = b.ID
	}
	return out
}

func TestPlanPromotions_StrictFIFO(t *testing.T) {
	// A=3 fits (remaining→2), B=5 skipped (5>2), C=2 fits (remaining→0).
	// B is skipped permanently even though promoting B alone would fill
	// capacity better; order-preserving greedy, not bin packing.
	entries := []models.Booking{entry(1, 3), entry(2, 5), entry(3, 2)}

	fits := planPromotions(entries, 5)

	assert.Equal(t, []uint{1, 3}, ids(fits))
}

func TestPlanPromotions_NothingFits(t *testing.T) {
	entries := []models.Booking{entry(1, 4), entry(2, 6)}

	assert.Empty(t, planPromotions(entries, 3))
}

func TestPlanPromotions_NoCapacity(t *testing.T) {
	entries := []models.Booking{entry(1, 1)}

	assert.Empty(t, planPromotions(entries, 0))
	assert.Empty(t, planPromotions(entries, -2))
}

func TestPlanPromotions_AllFit(t *testing.T) {
	entries := []models.Booking{entry(1, 2), entry(2, 3), entry(3, 5)}

	fits := planPromotions(entries, 10)

	assert.Equal(t, []uint{1, 2, 3}, ids(fits))
}

func TestPlanPromotions_Empty(t *testing.T) {
	assert.Empty(t, planPromotions(nil, 8))
}

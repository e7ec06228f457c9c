package service

import "github.com/serenica/retreat-backoffice/internal/models"

// planPromotions selects which waitlist entries fit into the remaining
// capacity. Entries must already be ordered created_at ascending; the walk is
// a strict first-come first-served greedy fill: an entry that does not fit is
// skipped permanently, even when a later smaller entry leaves room it could
// have used. This is intentional business policy, not bin packing.
func planPromotions(entries []models.Booking, remaining int) []models.Booking {
	var fits []models.Booking
	for _, e := range entries {
		if e.NumberOfGuests > remaining {
			continue
		}
		fits = append(fits, e)
		remaining -= e.NumberOfGuests
	}
	return fits
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWaitlistTag(t *testing.T) {
	queuedAt := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	tag := FormatWaitlistTag(PriorityVIP, queuedAt, "")
	assert.Equal(t, "WAITLIST:VIP:2026-03-15T09:30:00Z", tag)

	tag = FormatWaitlistTag(PriorityNormal, queuedAt, "prefers garden view")
	assert.Equal(t, "WAITLIST:NORMAL:2026-03-15T09:30:00Z prefers garden view", tag)
}

func TestParseWaitlistTag_RoundTrip(t *testing.T) {
	queuedAt := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	notes := FormatWaitlistTag(PriorityVIP, queuedAt, "early arrival")

	tag, ok := ParseWaitlistTag(notes)
	require.True(t, ok)
	assert.Equal(t, PriorityVIP, tag.Priority)
	assert.Equal(t, queuedAt, tag.QueuedAt)
	assert.Equal(t, "early arrival", tag.Remainder)
	assert.False(t, tag.Promoted)
}

func TestPromoteWaitlistTag_PreservesPriorityAndTimestamp(t *testing.T) {
	queuedAt := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	notes := FormatWaitlistTag(PriorityVIP, queuedAt, "")

	promoted := PromoteWaitlistTag(notes)
	assert.Equal(t, "PROMOTED:VIP:2026-03-15T09:30:00Z", promoted)

	tag, ok := ParseWaitlistTag(promoted)
	require.True(t, ok)
	assert.True(t, tag.Promoted)
	assert.Equal(t, PriorityVIP, tag.Priority)
	assert.Equal(t, queuedAt, tag.QueuedAt)
}

func TestParseWaitlistTag_Malformed(t *testing.T) {
	cases := []string{
		"",
		"just a plain note",
		"WAITLIST:",
		"WAITLIST:URGENT:2026-03-15T09:30:00Z", // unknown priority
		"WAITLIST:VIP:not-a-timestamp",
	}
	for _, notes := range cases {
		_, ok := ParseWaitlistTag(notes)
		assert.False(t, ok, "notes %q should not parse", notes)
	}
}

func TestIsWaitlisted(t *testing.T) {
	notes := FormatWaitlistTag(PriorityNormal, time.Now(), "")

	b := &Booking{Status: StatusCancelled, Notes: notes}
	assert.True(t, b.IsWaitlisted())

	// Promoted entries are no longer on the waitlist.
	b = &Booking{Status: StatusConfirmed, Notes: PromoteWaitlistTag(notes)}
	assert.False(t, b.IsWaitlisted())

	// A plain cancelled booking is not a waitlist entry.
	b = &Booking{Status: StatusCancelled, Notes: "guest cancelled by phone"}
	assert.False(t, b.IsWaitlisted())

	// Stripping the tag silently removes the row from the waitlist.
	b = &Booking{Status: StatusCancelled, Notes: ""}
	assert.False(t, b.IsWaitlisted())
}

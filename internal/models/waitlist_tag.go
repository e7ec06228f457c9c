package models

import (
	"fmt"
	"strings"
	"time"
)

type WaitlistPriority string

const (
	PriorityNormal WaitlistPriority = "NORMAL"
	PriorityHigh   WaitlistPriority = "HIGH"
	PriorityVIP    WaitlistPriority = "VIP"
)

const (
	waitlistPrefix = "WAITLIST:"
	promotedPrefix = "PROMOTED:"
)

// ValidPriority reports whether s is one of the recognised waitlist
// priorities. Priority is advisory metadata only, it never affects
// promotion order.
func ValidPriority(s WaitlistPriority) bool {
	switch s {
	case PriorityNormal, PriorityHigh, PriorityVIP:
		return true
	}
	return false
}

// WaitlistTag is the parsed form of the notes convention
// "WAITLIST:<priority>:<RFC3339 ts>" (or "PROMOTED:..." once promoted).
// Free text after the timestamp is preserved in Remainder.
type WaitlistTag struct {
	Priority  WaitlistPriority
	QueuedAt  time.Time
	Promoted  bool
	Remainder string
}

// FormatWaitlistTag renders the notes value for a new waitlist entry.
// extra, when non-empty, is appended after the timestamp.
func FormatWaitlistTag(p WaitlistPriority, queuedAt time.Time, extra string) string {
	tag := fmt.Sprintf("%s%s:%s", waitlistPrefix, p, queuedAt.UTC().Format(time.RFC3339))
	if extra != "" {
		tag += " " + extra
	}
	return tag
}

// HasWaitlistTag reports whether notes still carry the un-promoted tag.
func HasWaitlistTag(notes string) bool {
	return strings.HasPrefix(notes, waitlistPrefix)
}

// ParseWaitlistTag decodes a tagged notes value. ok is false when notes do
// not start with either prefix or the tag is malformed.
func ParseWaitlistTag(notes string) (tag WaitlistTag, ok bool) {
	switch {
	case strings.HasPrefix(notes, waitlistPrefix):
		notes = strings.TrimPrefix(notes, waitlistPrefix)
	case strings.HasPrefix(notes, promotedPrefix):
		notes = strings.TrimPrefix(notes, promotedPrefix)
		tag.Promoted = true
	default:
		return WaitlistTag{}, false
	}

	parts := strings.SplitN(notes, ":", 2)
	if len(parts) != 2 {
		return WaitlistTag{}, false
	}
	tag.Priority = WaitlistPriority(parts[0])
	if !ValidPriority(tag.Priority) {
		return WaitlistTag{}, false
	}

	ts := parts[1]
	if i := strings.IndexByte(ts, ' '); i >= 0 {
		tag.Remainder = strings.TrimSpace(ts[i+1:])
		ts = ts[:i]
	}
	queuedAt, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return WaitlistTag{}, false
	}
	tag.QueuedAt = queuedAt
	return tag, true
}

// PromoteWaitlistTag rewrites WAITLIST: to PROMOTED: in place, preserving
// priority, timestamp and any trailing free text.
func PromoteWaitlistTag(notes string) string {
	return promotedPrefix + strings.TrimPrefix(notes, waitlistPrefix)
}

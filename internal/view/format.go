package view

import (
	"fmt"
	"math"
	"time"
)

func minutesBetween(from, to time.Time) int {
	return int(math.Floor(float64(to.Sub(from)) / float64(time.Minute)))
}

// FormatTimeAgo labels a past contact time relative to now.
func FormatTimeAgo(t, now time.Time) string {
	mins := minutesBetween(t, now)
	switch {
	case mins < 1:
		return "just now"
	case mins == 1:
		return "1 minute ago"
	case mins < 60:
		return fmt.Sprintf("%d minutes ago", mins)
	}
	hours := mins / 60
	if hours == 1 {
		return "1 hour ago"
	}
	return fmt.Sprintf("%d hours ago", hours)
}

// FormatTimeUntil labels a scheduled contact time relative to now.
func FormatTimeUntil(t, now time.Time) string {
	mins := minutesBetween(now, t)
	switch {
	case mins < 0:
		return "contacting now"
	case mins < 1:
		return "in less than a minute"
	case mins == 1:
		return "in 1 minute"
	case mins < 60:
		return fmt.Sprintf("in %d minutes", mins)
	}
	hours := mins / 60
	if hours == 1 {
		return "in 1 hour"
	}
	return fmt.Sprintf("in %d hours", hours)
}

// SlotRange renders "Sat 22 Nov, 09:00 – 11:00".
func SlotRange(start, end time.Time, loc *time.Location) string {
	return start.In(loc).Format("Mon 2 Jan, 15:04") + " – " + end.In(loc).Format("15:04")
}

func Clock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}

// MessageTime renders "22 Nov, 14:00".
func MessageTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2 Jan, 15:04")
}

func DiscountHint(discount int) string {
	if discount > 0 {
		return fmt.Sprintf("%d%% discount for quick response", discount)
	}
	return "No discount"
}

func WaitHint(minutes int) string {
	if minutes == 1 {
		return "1 minute waiting period"
	}
	return fmt.Sprintf("%d minutes waiting period", minutes)
}

// StatusClass maps any screen status to its pill colour.
func StatusClass(status string) string {
	switch status {
	case "cancelled":
		return "pill-warning"
	case "filling", "running":
		return "pill-info"
	case "filled", "succeeded", "accepted":
		return "pill-success"
	case "failed", "declined":
		return "pill-danger"
	case "not_needed":
		return "pill-faded"
	default:
		return "pill-muted"
	}
}

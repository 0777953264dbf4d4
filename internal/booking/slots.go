package booking

import "time"

// DateLayout is the wire format for appointment dates.
const DateLayout = "2006-01-02"

// SlotTemplate is the clinic's fixed daily schedule. Order matters:
// availability responses list open slots in this order.
var SlotTemplate = []string{"10:00 AM", "11:00 AM", "02:00 PM", "04:00 PM"}

// ValidSlot reports whether t is one of the template values.
func ValidSlot(t string) bool {
	for _, s := range SlotTemplate {
		if s == t {
			return true
		}
	}
	return false
}

// openSlots subtracts the reserved set from the template, preserving
// template order. A fully booked day yields an empty (non-nil) slice.
func openSlots(reserved []string) []string {
	taken := make(map[string]struct{}, len(reserved))
	for _, r := range reserved {
		taken[r] = struct{}{}
	}

	open := make([]string, 0, len(SlotTemplate))
	for _, s := range SlotTemplate {
		if _, ok := taken[s]; !ok {
			open = append(open, s)
		}
	}
	return open
}

// windowDates returns the ISO dates for each of the next days calendar
// days starting at from.
func windowDates(from time.Time, days int) []string {
	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, from.AddDate(0, 0, i).Format(DateLayout))
	}
	return dates
}

package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidSlot(t *testing.T) {
	for _, s := range SlotTemplate {
		assert.True(t, ValidSlot(s), s)
	}

	assert.False(t, ValidSlot("03:00 PM"))
	assert.False(t, ValidSlot("10:00 am"))
	assert.False(t, ValidSlot(""))
}

func TestOpenSlotsPreservesTemplateOrder(t *testing.T) {
	open := openSlots([]string{"11:00 AM"})
	assert.Equal(t, []string{"10:00 AM", "02:00 PM", "04:00 PM"}, open)

	// Unknown reserved values are ignored.
	open = openSlots([]string{"03:00 PM"})
	assert.Equal(t, SlotTemplate, open)
}

func TestOpenSlotsFullyBooked(t *testing.T) {
	open := openSlots(SlotTemplate)
	assert.NotNil(t, open)
	assert.Empty(t, open)
}

func TestOpenSlotsNothingReserved(t *testing.T) {
	assert.Equal(t, SlotTemplate, openSlots(nil))
}

func TestWindowDates(t *testing.T) {
	from := time.Date(2026, 1, 30, 15, 0, 0, 0, time.UTC)

	dates := windowDates(from, 3)
	assert.Equal(t, []string{"2026-01-30", "2026-01-31", "2026-02-01"}, dates)
}

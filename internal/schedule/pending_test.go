package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleTwiceUnstages(t *testing.T) {
	p := NewPendingSelection()
	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local)
	slot := TimeOfDay{Hour: 10}

	assert.True(t, p.Toggle(1, date, slot))
	assert.True(t, p.IsSelected(1, date, slot))

	assert.False(t, p.Toggle(1, date, slot))
	assert.False(t, p.IsSelected(1, date, slot))
	assert.Empty(t, p.Selected(1, date))
}

func TestSelectedSortedAscending(t *testing.T) {
	p := NewPendingSelection()
	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local)

	p.Toggle(1, date, TimeOfDay{Hour: 16})
	p.Toggle(1, date, TimeOfDay{Hour: 9, Minute: 30})
	p.Toggle(1, date, TimeOfDay{Hour: 12})

	sel := p.Selected(1, date)
	require.Len(t, sel, 3)
	assert.Equal(t, "09:30", sel[0].String())
	assert.Equal(t, "12:00", sel[1].String())
	assert.Equal(t, "16:00", sel[2].String())
}

func TestSelectionsIsolatedByDateAndAdmin(t *testing.T) {
	p := NewPendingSelection()
	day1 := time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, 1)
	slot := TimeOfDay{Hour: 10}

	p.Toggle(1, day1, slot)

	assert.False(t, p.IsSelected(1, day2, slot), "другая дата не задета")
	assert.False(t, p.IsSelected(2, day1, slot), "другой админ не задет")
}

func TestClearDropsOnlyThatDate(t *testing.T) {
	p := NewPendingSelection()
	day1 := time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, 1)
	slot := TimeOfDay{Hour: 10}

	p.Toggle(1, day1, slot)
	p.Toggle(1, day2, slot)

	p.Clear(1, day1)

	assert.Empty(t, p.Selected(1, day1))
	assert.True(t, p.IsSelected(1, day2, slot))
}

package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplate() Template {
	return Template{StartHour: 9, EndHour: 18, StepMinutes: 30}
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
}

func TestTemplateTimes(t *testing.T) {
	times := testTemplate().Times()

	require.Len(t, times, 18)
	assert.Equal(t, "09:00", times[0].String())
	assert.Equal(t, "17:30", times[len(times)-1].String())
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid morning", "09:30", "09:30", false},
		{"valid midnight", "00:00", "00:00", false},
		{"no leading zero", "9:30", "09:30", false},
		{"hour out of range", "25:00", "", true},
		{"minute out of range", "10:61", "", true},
		{"garbage", "abc", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewDateStartsFullyLocked(t *testing.T) {
	store := NewStore(testTemplate(), WithNow(fixedNow))
	date := fixedNow().AddDate(0, 0, 1)

	store.EnsureDate(date)

	assert.Empty(t, store.AvailableTimes(date))
	assert.Len(t, store.LockedTimes(date), 18)
	assert.False(t, store.IsAvailable(date, TimeOfDay{Hour: 9}))
}

func TestEnsureDateKeepsExistingState(t *testing.T) {
	store := NewStore(testTemplate(), WithNow(fixedNow))
	date := fixedNow().AddDate(0, 0, 1)
	slot := TimeOfDay{Hour: 10, Minute: 30}

	store.Unlock(date, slot)
	require.True(t, store.IsAvailable(date, slot))

	// Повторный EnsureDate не перетирает открытые слоты
	store.EnsureDate(date)
	assert.True(t, store.IsAvailable(date, slot))
}

func TestLockUnlockRoundTrip(t *testing.T) {
	store := NewStore(testTemplate(), WithNow(fixedNow))
	date := fixedNow().AddDate(0, 0, 2)
	slot := TimeOfDay{Hour: 14}

	assert.False(t, store.IsAvailable(date, slot), "дата до EnsureDate закрыта целиком")

	store.Unlock(date, slot)
	assert.True(t, store.IsAvailable(date, slot))

	store.Lock(date, slot)
	assert.False(t, store.IsAvailable(date, slot))
}

func TestBookableDatesCoverHorizonFromToday(t *testing.T) {
	store := NewStore(testTemplate(), WithNow(fixedNow))
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)

	dates := store.BookableDates(7)
	require.Len(t, dates, 7)
	for i, d := range dates {
		assert.Equal(t,
			today.AddDate(0, 0, i).Format("2006-01-02"),
			d.Format("2006-01-02"))
	}
}

func TestAvailableTimesSorted(t *testing.T) {
	store := NewStore(testTemplate(), WithNow(fixedNow))
	date := fixedNow().AddDate(0, 0, 1)

	store.Unlock(date, TimeOfDay{Hour: 15})
	store.Unlock(date, TimeOfDay{Hour: 9, Minute: 30})
	store.Unlock(date, TimeOfDay{Hour: 12})

	times := store.AvailableTimes(date)
	require.Len(t, times, 3)
	assert.Equal(t, "09:30", times[0].String())
	assert.Equal(t, "12:00", times[1].String())
	assert.Equal(t, "15:00", times[2].String())
}

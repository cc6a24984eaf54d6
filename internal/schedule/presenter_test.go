package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenTimesIntervalFilter(t *testing.T) {
	store := NewStore(testTemplate(), WithNow(fixedNow))
	p := NewPresenter(store)
	date := fixedNow().AddDate(0, 0, 1)

	store.Unlock(date, TimeOfDay{Hour: 9})
	store.Unlock(date, TimeOfDay{Hour: 9, Minute: 30})
	store.Unlock(date, TimeOfDay{Hour: 10})
	store.Unlock(date, TimeOfDay{Hour: 10, Minute: 30})

	tests := []struct {
		name     string
		interval int
		want     []string
	}{
		{"часовая сетка прячет получасовые", 60, []string{"09:00", "10:00"}},
		{"получасовая сетка видит всё", 30, []string{"09:00", "09:30", "10:00", "10:30"}},
		{"нулевой интервал берёт шаг шаблона", 0, []string{"09:00", "09:30", "10:00", "10:30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			times := p.OpenTimes(date, tt.interval)
			require.Len(t, times, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want, times[i].String())
			}
		})
	}
}

func TestOpenTimesEmptyIsNotAnError(t *testing.T) {
	store := NewStore(testTemplate(), WithNow(fixedNow))
	p := NewPresenter(store)

	times := p.OpenTimes(fixedNow().AddDate(0, 0, 1), 30)
	assert.Empty(t, times)
}

func TestIsOpenTracksSlotState(t *testing.T) {
	store := NewStore(testTemplate(), WithNow(fixedNow))
	p := NewPresenter(store)
	date := fixedNow().AddDate(0, 0, 1)
	slot := TimeOfDay{Hour: 11}

	assert.False(t, p.IsOpen(date, slot))

	store.Unlock(date, slot)
	assert.True(t, p.IsOpen(date, slot))

	store.Lock(date, slot)
	assert.False(t, p.IsOpen(date, slot))
}

func TestOpenDatesMatchHorizon(t *testing.T) {
	store := NewStore(testTemplate(), WithNow(fixedNow))
	p := NewPresenter(store)

	assert.Len(t, p.OpenDates(7), 7)
	assert.Len(t, p.OpenDates(21), 21)
}

// Сквозной сценарий: слот открыт админом, забронирован клиентом
// и исчез из выдачи.
func TestSlotLifecycle(t *testing.T) {
	store := NewStore(testTemplate(), WithNow(fixedNow))
	p := NewPresenter(store)
	date := fixedNow().AddDate(0, 0, 3)
	slot := TimeOfDay{Hour: 11}

	require.Empty(t, p.OpenTimes(date, 30), "до разблокировки пусто")

	store.Unlock(date, slot)
	times := p.OpenTimes(date, 30)
	require.Len(t, times, 1)
	assert.Equal(t, slot, times[0])

	store.Lock(date, slot)
	assert.Empty(t, p.OpenTimes(date, 30), "после брони слот недоступен")
}

func TestBookingRemovesOnlyTakenSlot(t *testing.T) {
	store := NewStore(testTemplate(), WithNow(fixedNow))
	p := NewPresenter(store)
	date := fixedNow().AddDate(0, 0, 2)

	store.Unlock(date, TimeOfDay{Hour: 10})
	store.Unlock(date, TimeOfDay{Hour: 10, Minute: 30})

	times := p.OpenTimes(date, 30)
	require.Len(t, times, 2)

	store.Lock(date, TimeOfDay{Hour: 10})

	times = p.OpenTimes(date, 30)
	require.Len(t, times, 1)
	assert.Equal(t, "10:30", times[0].String())
}

func TestDoubleBookSameSlot(t *testing.T) {
	store := NewStore(testTemplate(), WithNow(fixedNow))
	date := fixedNow().AddDate(0, 0, 1)
	slot := TimeOfDay{Hour: 13, Minute: 30}

	store.Unlock(date, slot)
	require.True(t, store.IsAvailable(date, slot))

	store.Lock(date, slot)
	assert.False(t, store.IsAvailable(date, slot), "второй клиент видит слот занятым")
}

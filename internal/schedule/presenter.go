package schedule

import "time"

// Presenter превращает сетку слотов в данные для двухуровневого меню:
// сначала даты, затем времена с учётом сетки процедуры.
type Presenter struct {
	store *Store
}

func NewPresenter(store *Store) *Presenter {
	return &Presenter{store: store}
}

// OpenDates возвращает все даты горизонта; по одной кнопке на дату.
func (p *Presenter) OpenDates(horizonDays int) []time.Time {
	return p.store.BookableDates(horizonDays)
}

// IsOpen сообщает, свободен ли конкретный слот. Проверка перед
// сохранением времени, введённого вручную: кнопки предлагают только
// открытые слоты, а свободный ввод — любые.
func (p *Presenter) IsOpen(d time.Time, t TimeOfDay) bool {
	return p.store.IsAvailable(d, t)
}

// OpenTimes возвращает открытые слоты даты, минуты которых кратны
// intervalMinutes. Пустой срез не ошибка: вызывающий обязан показать
// сообщение "нет свободных слотов".
func (p *Presenter) OpenTimes(d time.Time, intervalMinutes int) []TimeOfDay {
	if intervalMinutes <= 0 {
		intervalMinutes = p.store.Template().StepMinutes
	}

	var times []TimeOfDay
	for _, t := range p.store.AvailableTimes(d) {
		if t.Minute%intervalMinutes != 0 {
			continue
		}
		times = append(times, t)
	}
	return times
}

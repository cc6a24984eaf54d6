package schedule

import (
	"sort"
	"sync"
	"time"
)

// PendingSelection накапливает слоты, отмеченные админом к разблокировке,
// но ещё не подтверждённые. Ключ — пара (админ, дата). Брошенный без
// подтверждения выбор просто остаётся до следующего захода; это
// промежуточное состояние меню, не долговечные данные.
type PendingSelection struct {
	mu  sync.Mutex
	sel map[int64]map[string]map[TimeOfDay]struct{}
}

func NewPendingSelection() *PendingSelection {
	return &PendingSelection{
		sel: make(map[int64]map[string]map[TimeOfDay]struct{}),
	}
}

// Toggle переключает слот в выборе и возвращает true, если после
// переключения слот выбран.
func (p *PendingSelection) Toggle(adminID int64, d time.Time, t TimeOfDay) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	day := p.dayLocked(adminID, d)
	if _, ok := day[t]; ok {
		delete(day, t)
		return false
	}
	day[t] = struct{}{}
	return true
}

// IsSelected проверяет, отмечен ли слот.
func (p *PendingSelection) IsSelected(adminID int64, d time.Time, t TimeOfDay) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	byDate, ok := p.sel[adminID]
	if !ok {
		return false
	}
	day, ok := byDate[dateKey(d)]
	if !ok {
		return false
	}
	_, ok = day[t]
	return ok
}

// Selected возвращает отмеченные слоты даты в порядке возрастания.
func (p *PendingSelection) Selected(adminID int64, d time.Time) []TimeOfDay {
	p.mu.Lock()
	byDate, ok := p.sel[adminID]
	var times []TimeOfDay
	if ok {
		for t := range byDate[dateKey(d)] {
			times = append(times, t)
		}
	}
	p.mu.Unlock()

	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

// Clear сбрасывает выбор по дате после подтверждения.
func (p *PendingSelection) Clear(adminID int64, d time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if byDate, ok := p.sel[adminID]; ok {
		delete(byDate, dateKey(d))
	}
}

func (p *PendingSelection) dayLocked(adminID int64, d time.Time) map[TimeOfDay]struct{} {
	byDate, ok := p.sel[adminID]
	if !ok {
		byDate = make(map[string]map[TimeOfDay]struct{})
		p.sel[adminID] = byDate
	}
	key := dateKey(d)
	day, ok := byDate[key]
	if !ok {
		day = make(map[TimeOfDay]struct{})
		byDate[key] = day
	}
	return day
}

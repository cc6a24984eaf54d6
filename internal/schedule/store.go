// Package schedule хранит сетку доступности слотов и отдаёт её в виде,
// пригодном для построения меню записи.
package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// TimeOfDay время слота внутри дня.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Before упорядочивает слоты внутри дня.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

// ParseTimeOfDay разбирает время в 24-часовом формате ЧЧ:ММ.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time format: %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour: %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute: %q", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Template шаблон рабочего дня: слоты [StartHour, EndHour) с шагом StepMinutes.
type Template struct {
	StartHour   int
	EndHour     int
	StepMinutes int
}

// Times возвращает все слоты шаблона в порядке возрастания.
func (tm Template) Times() []TimeOfDay {
	step := tm.StepMinutes
	if step <= 0 {
		step = 30
	}
	var times []TimeOfDay
	for hour := tm.StartHour; hour < tm.EndHour; hour++ {
		for minute := 0; minute < 60; minute += step {
			times = append(times, TimeOfDay{Hour: hour, Minute: minute})
		}
	}
	return times
}

// Store сетка доступности: дата → время → можно ли записаться.
// Единственный владелец состояния; все чтения и изменения только через его методы.
type Store struct {
	mu   sync.RWMutex
	days map[string]map[TimeOfDay]bool
	tmpl Template
	now  func() time.Time
}

type Option func(*Store)

// WithNow подменяет источник текущего времени (для тестов).
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(tmpl Template, opts ...Option) *Store {
	s := &Store{
		days: make(map[string]map[TimeOfDay]bool),
		tmpl: tmpl,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Template возвращает шаблон рабочего дня.
func (s *Store) Template() Template {
	return s.tmpl
}

func dateKey(d time.Time) string {
	return d.Format("2006-01-02")
}

// EnsureDate инициализирует дату шаблонными слотами, все заблокированы.
// Идемпотентна.
func (s *Store) EnsureDate(d time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureDateLocked(d)
}

func (s *Store) ensureDateLocked(d time.Time) map[TimeOfDay]bool {
	key := dateKey(d)
	day, ok := s.days[key]
	if ok {
		return day
	}
	day = make(map[TimeOfDay]bool)
	for _, t := range s.tmpl.Times() {
		day[t] = false
	}
	s.days[key] = day
	return day
}

// IsAvailable возвращает false для отсутствующих даты или времени:
// неизвестный слот считается заблокированным, а не ошибкой.
func (s *Store) IsAvailable(d time.Time, t TimeOfDay) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day, ok := s.days[dateKey(d)]
	if !ok {
		return false
	}
	return day[t]
}

// Lock помечает слот занятым. Отсутствующий слот создаётся заблокированным.
func (s *Store) Lock(d time.Time, t TimeOfDay) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.ensureDateLocked(d)
	day[t] = false
}

// Unlock открывает слот под запись.
func (s *Store) Unlock(d time.Time, t TimeOfDay) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.ensureDateLocked(d)
	day[t] = true
}

// BookableDates возвращает даты в [сегодня, сегодня+horizonDays),
// независимо от того, инициализированы ли они.
func (s *Store) BookableDates(horizonDays int) []time.Time {
	today := s.today()
	dates := make([]time.Time, 0, horizonDays)
	for i := 0; i < horizonDays; i++ {
		dates = append(dates, today.AddDate(0, 0, i))
	}
	return dates
}

// AvailableTimes возвращает открытые слоты даты в порядке возрастания.
func (s *Store) AvailableTimes(d time.Time) []TimeOfDay {
	return s.timesWhere(d, true)
}

// LockedTimes возвращает закрытые слоты даты в порядке возрастания.
// Используется в меню разблокировки: показывать есть смысл только их.
func (s *Store) LockedTimes(d time.Time) []TimeOfDay {
	return s.timesWhere(d, false)
}

func (s *Store) timesWhere(d time.Time, available bool) []TimeOfDay {
	s.mu.Lock()
	day := s.ensureDateLocked(d)
	times := make([]TimeOfDay, 0, len(day))
	for t, avail := range day {
		if avail == available {
			times = append(times, t)
		}
	}
	s.mu.Unlock()

	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

func (s *Store) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

package timetable

import (
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// occurrenceKey — составной ключ идентичности занятия. Два занятия с одинаковым
// ключом считаются дубликатами независимо от того, какой фазой они порождены.
type occurrenceKey struct {
	scheduleID  int64
	date        time.Time // нормализована к полуночи UTC
	typ         model.OccurrenceType
	status      model.OccurrenceStatus
	startLesson int
}

// canonicalDay приводит дату к сравнимому каноническому значению.
// Ключ строится по значению даты, а не по её строковому представлению.
func canonicalDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Accumulator собирает занятия из материализатора и фазы наложения исключений,
// молча отбрасывая дубликаты по ключу идентичности. Каждый вызов разрешения
// создаёт свой аккумулятор - разделяемого состояния между запросами нет.
type Accumulator struct {
	seen        map[occurrenceKey]struct{}
	occurrences []model.Occurrence
}

// NewAccumulator создаёт пустой аккумулятор.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		seen: make(map[occurrenceKey]struct{}),
	}
}

// Add добавляет занятие, если его ключ ещё не встречался.
// Возвращает false для отброшенного дубликата.
func (a *Accumulator) Add(occ model.Occurrence) bool {
	key := occurrenceKey{
		scheduleID:  occ.ScheduleID,
		date:        canonicalDay(occ.Date),
		typ:         occ.Type,
		status:      occ.Status,
		startLesson: occ.StartLesson,
	}

	if _, ok := a.seen[key]; ok {
		return false
	}

	a.seen[key] = struct{}{}
	a.occurrences = append(a.occurrences, occ)
	return true
}

// Occurrences возвращает накопленные занятия в порядке добавления.
func (a *Accumulator) Occurrences() []model.Occurrence {
	return a.occurrences
}

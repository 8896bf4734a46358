package timetable

import (
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// ExceptionDates строит по списку исключений множество дат с исключениями
// для каждого расписания. Даты канонизированы (см. canonicalDay) - сравнение
// не зависит от часового пояса и форматирования.
func ExceptionDates(exceptions []model.ScheduleException) map[int64]map[time.Time]struct{} {
	dates := make(map[int64]map[time.Time]struct{})
	for _, exc := range exceptions {
		byDate, ok := dates[exc.ScheduleID]
		if !ok {
			byDate = make(map[time.Time]struct{})
			dates[exc.ScheduleID] = byDate
		}
		byDate[canonicalDay(exc.OriginalDate)] = struct{}{}
	}
	return dates
}

// Materialize разворачивает базовые расписания в конкретные занятия недели.
// Даты, присутствующие в skip, полностью отдаются фазе наложения исключений
// и здесь не порождаются.
func Materialize(bases []*model.BaseSchedule, week Week, skip map[int64]map[time.Time]struct{}, acc *Accumulator) {
	for _, base := range bases {
		materializeBase(base, week, skip[base.ID], acc)
	}
}

func materializeBase(base *model.BaseSchedule, week Week, skip map[time.Time]struct{}, acc *Accumulator) {
	if base.IsExam {
		if base.ExamDate == nil {
			return
		}
		date := *base.ExamDate
		if !week.Contains(date) {
			return
		}
		if _, excepted := skip[canonicalDay(date)]; excepted {
			return
		}
		acc.Add(baseOccurrence(base, date, model.OccurrenceExam, baseStatus(base)))
		return
	}

	for _, day := range week.Days() {
		if !base.OccursOn(day) {
			continue
		}
		if _, excepted := skip[canonicalDay(day)]; excepted {
			continue
		}
		acc.Add(baseOccurrence(base, day, model.OccurrenceRegular, baseStatus(base)))
	}
}

func baseStatus(base *model.BaseSchedule) model.OccurrenceStatus {
	if base.IsCompleted {
		return model.StatusCompleted
	}
	return model.StatusScheduled
}

// baseOccurrence строит занятие с атрибутами базового расписания.
func baseOccurrence(base *model.BaseSchedule, date time.Time, typ model.OccurrenceType, status model.OccurrenceStatus) model.Occurrence {
	return model.Occurrence{
		ScheduleID:  base.ID,
		Type:        typ,
		Status:      status,
		Date:        dayStart(date),
		DayOfWeek:   model.ISOWeekday(date),
		Room:        base.Room,
		StartLesson: base.StartLesson,
		EndLesson:   base.EndLesson,
		SectionID:   base.SectionID,
	}
}

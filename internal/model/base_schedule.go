package model

import (
	"time"

	"github.com/google/uuid"
)

// BaseSchedule представляет базовое расписание занятия: либо еженедельно
// повторяющийся слот, либо разовый экзамен с фиксированной датой.
// Заполнено ровно одно из двух: DayOfWeek (для регулярных) или ExamDate (для экзаменов).
type BaseSchedule struct {
	ID          int64      `json:"id"`
	GroupID     uuid.UUID  `json:"group_id"` // идентификатор группы расписаний, созданных одним импортом секции
	UserID      string     `json:"user_id"`  // владелец расписания (школьный идентификатор)
	SectionID   int64      `json:"section_id"`
	IsExam      bool       `json:"is_exam"`
	DayOfWeek   int        `json:"day_of_week"` // 1 = понедельник .. 7 = воскресенье, 0 для экзаменов
	ExamDate    *time.Time `json:"exam_date"`   // только для экзаменов
	Room        string     `json:"room"`
	StartLesson int        `json:"start_lesson"` // номер пары, с 1
	EndLesson   int        `json:"end_lesson"`   // StartLesson <= EndLesson
	StartDate   *time.Time `json:"start_date"`   // период действия, только для регулярных
	EndDate     *time.Time `json:"end_date"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
}

// OccursOn сообщает, приходится ли на дату естественное занятие этого расписания:
// для экзамена — совпадение с ExamDate, для регулярного — совпадение дня недели
// в пределах периода действия.
func (s *BaseSchedule) OccursOn(date time.Time) bool {
	if s.IsExam {
		return s.ExamDate != nil && sameDay(*s.ExamDate, date)
	}
	if ISOWeekday(date) != s.DayOfWeek {
		return false
	}
	if s.StartDate != nil && date.Before(dayStart(*s.StartDate)) {
		return false
	}
	if s.EndDate != nil && dayStart(*s.EndDate).Before(dayStart(date)) {
		return false
	}
	return true
}

// ISOWeekday возвращает день недели в нумерации ISO: 1 = понедельник .. 7 = воскресенье.
func ISOWeekday(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int(t.Weekday())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

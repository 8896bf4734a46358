package model

import "time"

type OccurrenceType string

const (
	OccurrenceRegular OccurrenceType = "regular"
	OccurrenceExam    OccurrenceType = "exam"
	OccurrenceMakeup  OccurrenceType = "makeup"
)

type OccurrenceStatus string

const (
	StatusScheduled       OccurrenceStatus = "scheduled"
	StatusCompleted       OccurrenceStatus = "completed"
	StatusCanceled        OccurrenceStatus = "canceled"
	StatusRoomChanged     OccurrenceStatus = "room_changed"
	StatusLecturerChanged OccurrenceStatus = "lecturer_changed"
)

// Occurrence — одно конкретное занятие в разрешённой неделе. Строится заново
// на каждый запрос и никогда не сохраняется.
type Occurrence struct {
	ScheduleID   int64            `json:"schedule_id"`
	Type         OccurrenceType   `json:"type"`
	Status       OccurrenceStatus `json:"status"`
	Date         time.Time        `json:"date"`
	DayOfWeek    int              `json:"day_of_week"` // 1 = понедельник .. 7 = воскресенье
	Room         string           `json:"room"`
	StartLesson  int              `json:"start_lesson"`
	EndLesson    int              `json:"end_lesson"`
	SectionID    int64            `json:"section_id"`
	LecturerID   *int64           `json:"lecturer_id,omitempty"` // заполнен при замене преподавателя
	SubjectName  string           `json:"subject_name"`
	ClassName    string           `json:"class_name"`
	LecturerName string           `json:"lecturer_name"`
}

// Timetable — итог разрешения недели: занятия плюс навигационные курсоры
// на соседние недели (в текстовом формате dd-MM-yyyy).
type Timetable struct {
	Occurrences []Occurrence `json:"occurrences"`
	WeekStart   string       `json:"week_start"`
	WeekEnd     string       `json:"week_end"`
	PrevWeekRef string       `json:"prev_week_ref"`
	NextWeekRef string       `json:"next_week_ref"`
}

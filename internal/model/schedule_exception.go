package model

import "time"

type ExceptionType string

const (
	ExceptionCanceled        ExceptionType = "canceled"
	ExceptionMakeup          ExceptionType = "makeup"
	ExceptionRoomChanged     ExceptionType = "room_changed"
	ExceptionLecturerChanged ExceptionType = "lecturer_changed"
)

// ScheduleException описывает точечное отклонение от базового расписания:
// отмена занятия, смена аудитории или преподавателя, либо перенос (makeup).
// OriginalDate всегда указывает на дату естественного занятия; для переноса
// дополнительно задаётся NewDate — дата, на которую занятие переносится,
// никак не связанная с собственным паттерном расписания.
type ScheduleException struct {
	ID             int64         `json:"id"`
	ScheduleID     int64         `json:"schedule_id"`
	ExceptionType  ExceptionType `json:"exception_type"`
	OriginalDate   time.Time     `json:"original_date"`
	NewDate        *time.Time    `json:"new_date"`        // только для makeup
	NewRoom        *string       `json:"new_room"`        // указатель - поле опционально
	NewStartLesson *int          `json:"new_start_lesson"`
	NewEndLesson   *int          `json:"new_end_lesson"`
	NewLecturerID  *int64        `json:"new_lecturer_id"`
	CreatedAt      time.Time     `json:"created_at"`
}

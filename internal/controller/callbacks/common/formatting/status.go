package formatting

import (
	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// StatusDisplay содержит emoji и текст для отображения статуса занятия
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetStatusDisplay возвращает emoji и текст для статуса занятия
func GetStatusDisplay(status model.OccurrenceStatus) StatusDisplay {
	switch status {
	case model.StatusScheduled:
		return StatusDisplay{Emoji: "📘", Text: "По расписанию"}
	case model.StatusCompleted:
		return StatusDisplay{Emoji: "✅", Text: "Завершено"}
	case model.StatusCanceled:
		return StatusDisplay{Emoji: "❌", Text: "Отменено"}
	case model.StatusRoomChanged:
		return StatusDisplay{Emoji: "🚪", Text: "Замена кабинета"}
	case model.StatusLecturerChanged:
		return StatusDisplay{Emoji: "👤", Text: "Замена преподавателя"}
	default:
		return StatusDisplay{Emoji: "❓", Text: string(status)}
	}
}

// GetTypeDisplay возвращает emoji для типа занятия
func GetTypeDisplay(typ model.OccurrenceType) string {
	switch typ {
	case model.OccurrenceExam:
		return "📝"
	case model.OccurrenceMakeup:
		return "🔁"
	default:
		return ""
	}
}

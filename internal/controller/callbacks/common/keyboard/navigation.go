package keyboard

import (
	"github.com/go-telegram/bot/models"
)

// WeekNavRow создаёт ряд навигации по неделям
func WeekNavRow(prevData, todayData, nextData string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("⬅️", prevData),
		Button("Сегодня", todayData),
		Button("➡️", nextData),
	}
}

// ImageButton создаёт кнопку показа расписания картинкой
func ImageButton(callbackData string) models.InlineKeyboardButton {
	return Button("🖼 Картинкой", callbackData)
}

// TimetableKeyboard создаёт клавиатуру недельного расписания
func TimetableKeyboard(prevData, todayData, nextData, imageData string) *models.InlineKeyboardMarkup {
	return NewBuilder().
		AddRow(WeekNavRow(prevData, todayData, nextData)).
		Row(ImageButton(imageData)).
		Build()
}

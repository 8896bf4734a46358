package formatting

import (
	"fmt"
	"time"
)

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateShort форматирует дату без года
func FormatDateShort(t time.Time) string {
	return t.Format("02.01")
}

// GetWeekdayName возвращает название дня недели на русском
// для номера дня в диапазоне 1 (понедельник) - 7 (воскресенье)
func GetWeekdayName(weekday int) string {
	names := []string{
		"Понедельник",
		"Вторник",
		"Среда",
		"Четверг",
		"Пятница",
		"Суббота",
		"Воскресенье",
	}
	if weekday >= 1 && weekday <= len(names) {
		return names[weekday-1]
	}
	return "Неизвестно"
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday int) string {
	names := []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}
	if weekday >= 1 && weekday <= len(names) {
		return names[weekday-1]
	}
	return "?"
}

// GetMonthName возвращает название месяца на русском
func GetMonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "Январь",
		time.February:  "Февраль",
		time.March:     "Март",
		time.April:     "Апрель",
		time.May:       "Май",
		time.June:      "Июнь",
		time.July:      "Июль",
		time.August:    "Август",
		time.September: "Сентябрь",
		time.October:   "Октябрь",
		time.November:  "Ноябрь",
		time.December:  "Декабрь",
	}
	return names[month]
}

// FormatLessonRange форматирует диапазон уроков
func FormatLessonRange(startLesson, endLesson int) string {
	if startLesson == endLesson {
		return fmt.Sprintf("%d урок", startLesson)
	}
	return fmt.Sprintf("%d-%d уроки", startLesson, endLesson)
}

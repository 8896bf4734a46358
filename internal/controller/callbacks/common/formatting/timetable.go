package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// FormatTimetable форматирует расписание на неделю для отправки в чат
func FormatTimetable(tt *model.Timetable) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📅 <b>Расписание на неделю %s - %s</b>\n", tt.WeekStart, tt.WeekEnd))

	if len(tt.Occurrences) == 0 {
		sb.WriteString("\nНа этой неделе занятий нет 🎉")
		return sb.String()
	}

	currentDay := 0
	for _, occ := range tt.Occurrences {
		if occ.DayOfWeek != currentDay {
			currentDay = occ.DayOfWeek
			sb.WriteString(fmt.Sprintf("\n<b>%s, %s</b>\n",
				GetWeekdayName(occ.DayOfWeek),
				FormatDateShort(occ.Date)))
		}
		sb.WriteString(formatOccurrenceLine(occ))
	}

	return sb.String()
}

// FormatDailyDigest форматирует занятия одного дня для утренней сводки
func FormatDailyDigest(tt *model.Timetable, date time.Time) string {
	var lines []string
	for _, occ := range tt.Occurrences {
		if occ.Date.Year() == date.Year() && occ.Date.YearDay() == date.YearDay() {
			lines = append(lines, formatOccurrenceLine(occ))
		}
	}

	header := fmt.Sprintf("🌅 <b>Занятия на сегодня, %s</b>\n", FormatDate(date))
	if len(lines) == 0 {
		return header + "\nСегодня занятий нет 🎉"
	}

	return header + "\n" + strings.Join(lines, "")
}

func formatOccurrenceLine(occ model.Occurrence) string {
	display := GetStatusDisplay(occ.Status)

	var sb strings.Builder
	sb.WriteString(display.Emoji)
	if typeMark := GetTypeDisplay(occ.Type); typeMark != "" {
		sb.WriteString(typeMark)
	}
	sb.WriteString(" ")
	sb.WriteString(FormatLessonRange(occ.StartLesson, occ.EndLesson))
	sb.WriteString(" · ")
	sb.WriteString(occ.SubjectName)

	if occ.Room != "" {
		sb.WriteString(fmt.Sprintf(" (каб. %s)", occ.Room))
	}
	if occ.LecturerName != "" {
		sb.WriteString(" · ")
		sb.WriteString(occ.LecturerName)
	}
	if occ.Status != model.StatusScheduled {
		sb.WriteString(fmt.Sprintf(" [%s]", display.Text))
	}
	sb.WriteString("\n")

	return sb.String()
}

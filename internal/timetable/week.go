package timetable

import (
	"errors"
	"time"
)

// ErrInvalidDate возвращается при пустой или нераспознанной текстовой дате.
var ErrInvalidDate = errors.New("invalid date format")

// RefDateLayout — канонический текстовый формат дат в ответах и курсорах навигации.
const RefDateLayout = "02-01-2006"

// refDateLayouts — принимаемые форматы опорной даты запроса.
var refDateLayouts = []string{"02/01/2006", "02-01-2006"}

// Week — окно понедельник..воскресенье. Start и End нормализованы к началу дня,
// End указывает на воскресенье той же недели (обе границы включительно).
type Week struct {
	Start time.Time
	End   time.Time
}

// ParseRefDate разбирает текстовую дату в форматах dd/MM/yyyy или dd-MM-yyyy.
func ParseRefDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range refDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// FormatRefDate форматирует дату в канонический текстовый вид.
func FormatRefDate(t time.Time) string {
	return t.Format(RefDateLayout)
}

// WeekFor возвращает неделю, содержащую дату. Неделя начинается с понедельника;
// воскресенье считается последним днём своей недели, а не первым следующей.
func WeekFor(date time.Time) Week {
	day := dayStart(date)

	daysSinceMonday := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}

	start := day.AddDate(0, 0, -daysSinceMonday)
	return Week{
		Start: start,
		End:   start.AddDate(0, 0, 6),
	}
}

// Shift сдвигает неделю на указанное число недель (отрицательное — назад).
func (w Week) Shift(weeks int) Week {
	return WeekFor(w.Start.AddDate(0, 0, weeks*7))
}

// Contains сообщает, попадает ли дата в окно недели.
func (w Week) Contains(date time.Time) bool {
	day := dayStart(date)
	return !day.Before(w.Start) && !day.After(w.End)
}

// Days возвращает все семь дней недели по порядку.
func (w Week) Days() []time.Time {
	days := make([]time.Time, 0, 7)
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

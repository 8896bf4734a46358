package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// Офлайн-генератор изображения недели для проверки отрисовки без бота.
func main() {
	now := time.Now()
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Начинаем с понедельника текущей недели
	for weekStart.Weekday() != time.Monday {
		weekStart = weekStart.AddDate(0, 0, -1)
	}

	occurrences := []model.Occurrence{
		// Понедельник
		{
			ScheduleID:  1,
			Type:        model.OccurrenceRegular,
			Status:      model.StatusScheduled,
			Date:        weekStart,
			DayOfWeek:   1,
			Room:        "204",
			StartLesson: 1,
			EndLesson:   2,
			SubjectName: "Математика",
		},
		{
			ScheduleID:  2,
			Type:        model.OccurrenceRegular,
			Status:      model.StatusRoomChanged,
			Date:        weekStart,
			DayOfWeek:   1,
			Room:        "311",
			StartLesson: 4,
			EndLesson:   5,
			SubjectName: "Физика",
		},
		// Вторник
		{
			ScheduleID:  3,
			Type:        model.OccurrenceRegular,
			Status:      model.StatusCanceled,
			Date:        weekStart.AddDate(0, 0, 1),
			DayOfWeek:   2,
			Room:        "101",
			StartLesson: 2,
			EndLesson:   3,
			SubjectName: "История",
		},
		// Среда
		{
			ScheduleID:  4,
			Type:        model.OccurrenceExam,
			Status:      model.StatusScheduled,
			Date:        weekStart.AddDate(0, 0, 2),
			DayOfWeek:   3,
			Room:        "Актовый зал",
			StartLesson: 1,
			EndLesson:   3,
			SubjectName: "Экзамен по химии",
		},
		// Суббота
		{
			ScheduleID:  3,
			Type:        model.OccurrenceMakeup,
			Status:      model.StatusScheduled,
			Date:        weekStart.AddDate(0, 0, 5),
			DayOfWeek:   6,
			Room:        "101",
			StartLesson: 6,
			EndLesson:   7,
			SubjectName: "История",
		},
	}

	imageData, err := common.GenerateWeekImage(weekStart, occurrences)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate week image: %v\n", err)
		os.Exit(1)
	}

	outPath := "week.png"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, imageData, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Week image written to %s (%d bytes)\n", outPath, len(imageData))
}

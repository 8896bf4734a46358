package timetable

import (
	"sort"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// typeOrder задаёт детерминированный порядок типов при совпадении дня и пары:
// сначала обычные занятия и экзамены, затем переносы.
var typeOrder = map[model.OccurrenceType]int{
	model.OccurrenceRegular: 0,
	model.OccurrenceExam:    1,
	model.OccurrenceMakeup:  2,
}

// Assemble сортирует накопленные занятия в итоговый список недели.
// Основной порядок - (день недели, начальная пара); равные ключи упорядочены
// по типу, затем по статусу, чтобы результат не зависел от порядка накопления.
func Assemble(acc *Accumulator) []model.Occurrence {
	occurrences := acc.Occurrences()
	sorted := make([]model.Occurrence, len(occurrences))
	copy(sorted, occurrences)

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.DayOfWeek != b.DayOfWeek {
			return a.DayOfWeek < b.DayOfWeek
		}
		if a.StartLesson != b.StartLesson {
			return a.StartLesson < b.StartLesson
		}
		if typeOrder[a.Type] != typeOrder[b.Type] {
			return typeOrder[a.Type] < typeOrder[b.Type]
		}
		return a.Status < b.Status
	})

	return sorted
}

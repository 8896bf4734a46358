package timetable

import (
	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// BasesByID индексирует базовые расписания по идентификатору.
func BasesByID(bases []*model.BaseSchedule) map[int64]*model.BaseSchedule {
	byID := make(map[int64]*model.BaseSchedule, len(bases))
	for _, base := range bases {
		byID[base.ID] = base
	}
	return byID
}

// ApplyExceptions накладывает исключения на неделю: отмены, смены аудитории и
// преподавателя, а для переносов - маркер отмены на исходной дате. Само
// перенесённое занятие порождается отдельно в InjectMakeups по запросу
// "переносы с новой датой в окне", а не этим циклом.
//
// Исключения, ссылающиеся на отсутствующее в bases расписание, не прерывают
// разрешение: они возвращаются вызывающему для логирования и пропускаются.
func ApplyExceptions(bases map[int64]*model.BaseSchedule, exceptions []model.ScheduleException, week Week, acc *Accumulator) []model.ScheduleException {
	var orphaned []model.ScheduleException

	for _, exc := range exceptions {
		base, ok := bases[exc.ScheduleID]
		if !ok {
			orphaned = append(orphaned, exc)
			continue
		}
		if !week.Contains(exc.OriginalDate) {
			continue
		}

		switch exc.ExceptionType {
		case model.ExceptionCanceled, model.ExceptionMakeup:
			// Исторический маркер того, что было отменено: обычные атрибуты
			// расписания, статус canceled.
			acc.Add(baseOccurrence(base, exc.OriginalDate, baseType(base), model.StatusCanceled))

		case model.ExceptionRoomChanged:
			occ := baseOccurrence(base, exc.OriginalDate, baseType(base), model.StatusRoomChanged)
			if exc.NewRoom != nil {
				occ.Room = *exc.NewRoom
			}
			occ.LecturerID = exc.NewLecturerID
			acc.Add(occ)

		case model.ExceptionLecturerChanged:
			occ := baseOccurrence(base, exc.OriginalDate, baseType(base), model.StatusLecturerChanged)
			if exc.NewRoom != nil {
				occ.Room = *exc.NewRoom
			}
			occ.LecturerID = exc.NewLecturerID
			acc.Add(occ)
		}
	}

	return orphaned
}

// InjectMakeups добавляет перенесённые занятия по их новой дате. Перенос виден
// в неделе назначения независимо от того, в какую неделю попадает исходная
// дата - поэтому makeups запрашиваются по new_date, а не по окну источника.
func InjectMakeups(bases map[int64]*model.BaseSchedule, makeups []model.ScheduleException, week Week, acc *Accumulator) []model.ScheduleException {
	var orphaned []model.ScheduleException

	for _, exc := range makeups {
		if exc.ExceptionType != model.ExceptionMakeup || exc.NewDate == nil {
			continue
		}

		base, ok := bases[exc.ScheduleID]
		if !ok {
			orphaned = append(orphaned, exc)
			continue
		}
		if !week.Contains(*exc.NewDate) {
			continue
		}

		occ := baseOccurrence(base, *exc.NewDate, model.OccurrenceMakeup, model.StatusScheduled)
		if exc.NewRoom != nil {
			occ.Room = *exc.NewRoom
		}
		if exc.NewStartLesson != nil {
			occ.StartLesson = *exc.NewStartLesson
		}
		if exc.NewEndLesson != nil {
			occ.EndLesson = *exc.NewEndLesson
		}
		occ.LecturerID = exc.NewLecturerID
		acc.Add(occ)
	}

	return orphaned
}

func baseType(base *model.BaseSchedule) model.OccurrenceType {
	if base.IsExam {
		return model.OccurrenceExam
	}
	return model.OccurrenceRegular
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/timetable"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ScheduleSource - источник базовых расписаний (только чтение).
type ScheduleSource interface {
	GetForUserInWindow(ctx context.Context, userID string, weekStart, weekEnd time.Time) ([]*model.BaseSchedule, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*model.BaseSchedule, error)
}

// ExceptionSource - источник исключений расписаний (только чтение).
type ExceptionSource interface {
	GetForSchedulesInWindow(ctx context.Context, scheduleIDs []int64, weekStart, weekEnd time.Time) ([]model.ScheduleException, error)
	GetIncomingMakeups(ctx context.Context, userID string, weekStart, weekEnd time.Time) ([]model.ScheduleException, error)
}

// Directory разрешает идентификаторы секций и преподавателей в отображаемые названия.
type Directory interface {
	GetSectionInfos(ctx context.Context, sectionIDs []int64) (map[int64]model.SectionInfo, error)
	GetLecturerNames(ctx context.Context, lecturerIDs []int64) (map[int64]string, error)
}

// TimetableService разрешает неделю расписания для пользователя:
// материализует повторения, накладывает исключения и собирает итоговый список.
type TimetableService struct {
	schedules  ScheduleSource
	exceptions ExceptionSource
	directory  Directory
	logger     *zap.Logger
}

func NewTimetableService(schedules ScheduleSource, exceptions ExceptionSource, directory Directory, logger *zap.Logger) *TimetableService {
	return &TimetableService{
		schedules:  schedules,
		exceptions: exceptions,
		directory:  directory,
		logger:     logger,
	}
}

// ResolveTimetable возвращает все занятия пользователя за неделю, содержащую
// опорную дату (dd/MM/yyyy или dd-MM-yyyy), вместе с курсорами навигации.
// Неизвестный пользователь - не ошибка: результат с пустым списком занятий.
func (s *TimetableService) ResolveTimetable(ctx context.Context, userID string, referenceDate string) (*model.Timetable, error) {
	refDate, err := timetable.ParseRefDate(referenceDate)
	if err != nil {
		return nil, fmt.Errorf("parse reference date %q: %w", referenceDate, err)
	}

	week := timetable.WeekFor(refDate)

	s.logger.Debug("Resolving timetable",
		zap.String("user_id", userID),
		zap.String("reference_date", referenceDate),
		zap.Time("week_start", week.Start),
		zap.Time("week_end", week.End))

	var (
		bases      []*model.BaseSchedule
		exceptions []model.ScheduleException
		makeups    []model.ScheduleException
	)

	// Запрос базовых расписаний и входящих переносов независимы и идут
	// параллельно; запрос исключений требует идентификаторы расписаний и
	// выполняется следом за первым.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		bases, err = s.schedules.GetForUserInWindow(gctx, userID, week.Start, week.End)
		if err != nil {
			return fmt.Errorf("fetch base schedules: %w", err)
		}

		ids := make([]int64, 0, len(bases))
		for _, base := range bases {
			ids = append(ids, base.ID)
		}

		exceptions, err = s.exceptions.GetForSchedulesInWindow(gctx, ids, week.Start, week.End)
		if err != nil {
			return fmt.Errorf("fetch exceptions: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		makeups, err = s.exceptions.GetIncomingMakeups(gctx, userID, week.Start, week.End)
		if err != nil {
			return fmt.Errorf("fetch incoming makeups: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to fetch timetable data",
			zap.String("user_id", userID),
			zap.String("reference_date", referenceDate),
			zap.Error(err))
		return nil, err
	}

	// Перенос может ссылаться на расписание, не пересекающее запрошенное окно -
	// его атрибуты нужны для подстановки, поэтому догружаем недостающие.
	overlayBases, err := s.loadMakeupBases(ctx, bases, makeups)
	if err != nil {
		s.logger.Error("Failed to fetch makeup source schedules",
			zap.String("user_id", userID),
			zap.String("reference_date", referenceDate),
			zap.Error(err))
		return nil, err
	}

	acc := timetable.NewAccumulator()
	windowBases := timetable.BasesByID(bases)

	timetable.Materialize(bases, week, timetable.ExceptionDates(exceptions), acc)
	orphaned := timetable.ApplyExceptions(windowBases, exceptions, week, acc)
	orphaned = append(orphaned, timetable.InjectMakeups(overlayBases, makeups, week, acc)...)

	for _, exc := range orphaned {
		// Расписание могли удалить после записи исключения - пропускаем
		// исключение, не прерывая разрешение всей недели.
		s.logger.Warn("Skipping exception referencing unknown schedule",
			zap.String("user_id", userID),
			zap.String("reference_date", referenceDate),
			zap.Int64("exception_id", exc.ID),
			zap.Int64("schedule_id", exc.ScheduleID))
	}

	occurrences := timetable.Assemble(acc)

	if err := s.enrichNames(ctx, occurrences); err != nil {
		s.logger.Error("Failed to resolve display names",
			zap.String("user_id", userID),
			zap.String("reference_date", referenceDate),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Timetable resolved",
		zap.String("user_id", userID),
		zap.String("reference_date", referenceDate),
		zap.Int("base_schedules", len(bases)),
		zap.Int("exceptions", len(exceptions)),
		zap.Int("incoming_makeups", len(makeups)),
		zap.Int("occurrences", len(occurrences)))

	return &model.Timetable{
		Occurrences: occurrences,
		WeekStart:   timetable.FormatRefDate(week.Start),
		WeekEnd:     timetable.FormatRefDate(week.End),
		PrevWeekRef: timetable.FormatRefDate(week.Shift(-1).Start),
		NextWeekRef: timetable.FormatRefDate(week.Shift(1).Start),
	}, nil
}

// loadMakeupBases строит индекс расписаний для фазы наложения: расписания окна
// плюс источники переносов, не попавшие в окно.
func (s *TimetableService) loadMakeupBases(ctx context.Context, bases []*model.BaseSchedule, makeups []model.ScheduleException) (map[int64]*model.BaseSchedule, error) {
	byID := timetable.BasesByID(bases)

	var missing []int64
	seen := make(map[int64]struct{})
	for _, exc := range makeups {
		if _, ok := byID[exc.ScheduleID]; ok {
			continue
		}
		if _, dup := seen[exc.ScheduleID]; dup {
			continue
		}
		seen[exc.ScheduleID] = struct{}{}
		missing = append(missing, exc.ScheduleID)
	}

	if len(missing) == 0 {
		return byID, nil
	}

	extra, err := s.schedules.GetByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("fetch makeup source schedules: %w", err)
	}
	for _, base := range extra {
		byID[base.ID] = base
	}

	return byID, nil
}

// enrichNames заполняет отображаемые названия предмета, класса и преподавателя.
func (s *TimetableService) enrichNames(ctx context.Context, occurrences []model.Occurrence) error {
	if len(occurrences) == 0 {
		return nil
	}

	sectionSet := make(map[int64]struct{})
	lecturerSet := make(map[int64]struct{})
	for _, occ := range occurrences {
		sectionSet[occ.SectionID] = struct{}{}
		if occ.LecturerID != nil {
			lecturerSet[*occ.LecturerID] = struct{}{}
		}
	}

	sectionIDs := make([]int64, 0, len(sectionSet))
	for id := range sectionSet {
		sectionIDs = append(sectionIDs, id)
	}
	lecturerIDs := make([]int64, 0, len(lecturerSet))
	for id := range lecturerSet {
		lecturerIDs = append(lecturerIDs, id)
	}

	infos, err := s.directory.GetSectionInfos(ctx, sectionIDs)
	if err != nil {
		return fmt.Errorf("resolve section names: %w", err)
	}

	lecturerNames, err := s.directory.GetLecturerNames(ctx, lecturerIDs)
	if err != nil {
		return fmt.Errorf("resolve lecturer names: %w", err)
	}

	for i := range occurrences {
		occ := &occurrences[i]
		if info, ok := infos[occ.SectionID]; ok {
			occ.SubjectName = info.SubjectName
			occ.ClassName = info.ClassName
			occ.LecturerName = info.LecturerName
		}
		if occ.LecturerID != nil {
			if name, ok := lecturerNames[*occ.LecturerID]; ok {
				occ.LecturerName = name
			}
		}
	}

	return nil
}

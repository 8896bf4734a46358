package timetable

import (
	"testing"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

func ptr[T any](v T) *T { return &v }

// weeklyBase возвращает регулярное расписание: среда, пары 1-3, аудитория A1,
// действует весь июнь 2024.
func weeklyBase(id int64) *model.BaseSchedule {
	return &model.BaseSchedule{
		ID:          id,
		UserID:      "u1",
		SectionID:   10,
		DayOfWeek:   3,
		Room:        "A1",
		StartLesson: 1,
		EndLesson:   3,
		StartDate:   ptr(date(2024, time.June, 3)),
		EndDate:     ptr(date(2024, time.June, 30)),
	}
}

func examBase(id int64, examDate time.Time) *model.BaseSchedule {
	return &model.BaseSchedule{
		ID:          id,
		UserID:      "u1",
		SectionID:   11,
		IsExam:      true,
		ExamDate:    ptr(examDate),
		Room:        "E1",
		StartLesson: 4,
		EndLesson:   5,
	}
}

func resolveWeek(week Week, bases []*model.BaseSchedule, exceptions, makeups []model.ScheduleException) []model.Occurrence {
	acc := NewAccumulator()
	byID := BasesByID(bases)

	Materialize(bases, week, ExceptionDates(exceptions), acc)
	ApplyExceptions(byID, exceptions, week, acc)
	InjectMakeups(byID, makeups, week, acc)

	return Assemble(acc)
}

func TestMaterialize_WeeklyRecurrence(t *testing.T) {
	t.Parallel()

	week := WeekFor(date(2024, time.June, 10))
	got := resolveWeek(week, []*model.BaseSchedule{weeklyBase(1)}, nil, nil)

	if len(got) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(got))
	}
	occ := got[0]
	if !occ.Date.Equal(date(2024, time.June, 12)) {
		t.Fatalf("expected occurrence on 2024-06-12, got %v", occ.Date)
	}
	if occ.Type != model.OccurrenceRegular || occ.Status != model.StatusScheduled {
		t.Fatalf("expected regular/scheduled, got %s/%s", occ.Type, occ.Status)
	}
	if occ.DayOfWeek != 3 {
		t.Fatalf("expected day of week 3, got %d", occ.DayOfWeek)
	}
	if occ.Room != "A1" || occ.StartLesson != 1 || occ.EndLesson != 3 {
		t.Fatalf("expected base attributes to carry over, got %+v", occ)
	}
}

func TestMaterialize_CompletedStatus(t *testing.T) {
	t.Parallel()

	base := weeklyBase(1)
	base.IsCompleted = true

	week := WeekFor(date(2024, time.June, 10))
	got := resolveWeek(week, []*model.BaseSchedule{base}, nil, nil)

	if len(got) != 1 || got[0].Status != model.StatusCompleted {
		t.Fatalf("expected one completed occurrence, got %+v", got)
	}
}

func TestMaterialize_ValidityRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		startDate time.Time
		endDate   time.Time
		refDate   time.Time
		wantCount int
	}{
		{
			name:      "week inside validity",
			startDate: date(2024, time.June, 3),
			endDate:   date(2024, time.June, 30),
			refDate:   date(2024, time.June, 10),
			wantCount: 1,
		},
		{
			name:      "validity starts after the weekday in an intersecting week",
			startDate: date(2024, time.June, 13), // четверг, среда 12-го ещё вне периода
			endDate:   date(2024, time.June, 30),
			refDate:   date(2024, time.June, 10),
			wantCount: 0,
		},
		{
			name:      "validity ends before the weekday in an intersecting week",
			startDate: date(2024, time.June, 3),
			endDate:   date(2024, time.June, 11), // вторник, среда 12-го уже вне периода
			refDate:   date(2024, time.June, 10),
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := weeklyBase(1)
			base.StartDate = ptr(tt.startDate)
			base.EndDate = ptr(tt.endDate)

			got := resolveWeek(WeekFor(tt.refDate), []*model.BaseSchedule{base}, nil, nil)
			if len(got) != tt.wantCount {
				t.Fatalf("expected %d occurrences, got %d (%+v)", tt.wantCount, len(got), got)
			}
		})
	}
}

func TestMaterialize_UnboundedValidity(t *testing.T) {
	t.Parallel()

	// Отсутствующая граница периода означает отсутствие ограничения.
	base := weeklyBase(1)
	base.StartDate = nil
	base.EndDate = nil

	got := resolveWeek(WeekFor(date(2030, time.January, 7)), []*model.BaseSchedule{base}, nil, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 occurrence for unbounded schedule, got %d", len(got))
	}
	if want := date(2030, time.January, 9); !got[0].Date.Equal(want) {
		t.Fatalf("expected occurrence on %v, got %v", want, got[0].Date)
	}
}

func TestMaterialize_Exam(t *testing.T) {
	t.Parallel()

	exam := examBase(2, date(2024, time.June, 14))

	week := WeekFor(date(2024, time.June, 10))
	got := resolveWeek(week, []*model.BaseSchedule{exam}, nil, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(got))
	}
	if got[0].Type != model.OccurrenceExam || got[0].DayOfWeek != 5 {
		t.Fatalf("expected exam on Friday, got %+v", got[0])
	}

	otherWeek := WeekFor(date(2024, time.June, 17))
	if got := resolveWeek(otherWeek, []*model.BaseSchedule{exam}, nil, nil); len(got) != 0 {
		t.Fatalf("expected no occurrences outside the exam week, got %+v", got)
	}
}

func TestOverlay_CanceledSuppressesRegular(t *testing.T) {
	t.Parallel()

	base := weeklyBase(1)
	canceled := model.ScheduleException{
		ID:            100,
		ScheduleID:    1,
		ExceptionType: model.ExceptionCanceled,
		OriginalDate:  date(2024, time.June, 12),
	}

	week := WeekFor(date(2024, time.June, 10))
	got := resolveWeek(week, []*model.BaseSchedule{base}, []model.ScheduleException{canceled}, nil)

	if len(got) != 1 {
		t.Fatalf("expected exactly one entry for the canceled date, got %d (%+v)", len(got), got)
	}
	occ := got[0]
	if occ.Status != model.StatusCanceled {
		t.Fatalf("expected canceled status, got %s", occ.Status)
	}
	if occ.Room != "A1" {
		t.Fatalf("expected canceled marker to keep the original room, got %q", occ.Room)
	}
	if occ.Type != model.OccurrenceRegular {
		t.Fatalf("expected canceled marker to mirror the base type, got %s", occ.Type)
	}
}

func TestOverlay_RoomChanged(t *testing.T) {
	t.Parallel()

	exc := model.ScheduleException{
		ID:            101,
		ScheduleID:    1,
		ExceptionType: model.ExceptionRoomChanged,
		OriginalDate:  date(2024, time.June, 12),
		NewRoom:       ptr("B7"),
	}

	week := WeekFor(date(2024, time.June, 10))
	got := resolveWeek(week, []*model.BaseSchedule{weeklyBase(1)}, []model.ScheduleException{exc}, nil)

	if len(got) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(got))
	}
	occ := got[0]
	if occ.Status != model.StatusRoomChanged {
		t.Fatalf("expected room_changed status, got %s", occ.Status)
	}
	if occ.Room != "B7" {
		t.Fatalf("expected overridden room B7, got %q", occ.Room)
	}
	if occ.StartLesson != 1 || occ.EndLesson != 3 {
		t.Fatalf("expected lesson range unchanged, got %d-%d", occ.StartLesson, occ.EndLesson)
	}
}

func TestOverlay_RoomChangedWithoutNewRoomFallsBack(t *testing.T) {
	t.Parallel()

	exc := model.ScheduleException{
		ID:            102,
		ScheduleID:    1,
		ExceptionType: model.ExceptionRoomChanged,
		OriginalDate:  date(2024, time.June, 12),
	}

	week := WeekFor(date(2024, time.June, 10))
	got := resolveWeek(week, []*model.BaseSchedule{weeklyBase(1)}, []model.ScheduleException{exc}, nil)

	if len(got) != 1 || got[0].Room != "A1" {
		t.Fatalf("expected fallback to base room A1, got %+v", got)
	}
}

func TestOverlay_LecturerChanged(t *testing.T) {
	t.Parallel()

	exc := model.ScheduleException{
		ID:            103,
		ScheduleID:    1,
		ExceptionType: model.ExceptionLecturerChanged,
		OriginalDate:  date(2024, time.June, 12),
		NewLecturerID: ptr(int64(55)),
	}

	week := WeekFor(date(2024, time.June, 10))
	got := resolveWeek(week, []*model.BaseSchedule{weeklyBase(1)}, []model.ScheduleException{exc}, nil)

	if len(got) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(got))
	}
	occ := got[0]
	if occ.Status != model.StatusLecturerChanged {
		t.Fatalf("expected lecturer_changed status, got %s", occ.Status)
	}
	if occ.LecturerID == nil || *occ.LecturerID != 55 {
		t.Fatalf("expected substituted lecturer 55, got %v", occ.LecturerID)
	}
	if occ.Room != "A1" {
		t.Fatalf("expected base room to be kept, got %q", occ.Room)
	}
}

// TestMakeup_AcrossWeeks проигрывает сквозной пример: среда, пары 1-3, A1;
// отмена 12.06, перенос 19.06 -> 22.06 (суббота, B2). Три запрошенные недели
// дают ровно те занятия, которые должен увидеть пользователь.
func TestMakeup_AcrossWeeks(t *testing.T) {
	t.Parallel()

	base := weeklyBase(1)
	canceled := model.ScheduleException{
		ID:            100,
		ScheduleID:    1,
		ExceptionType: model.ExceptionCanceled,
		OriginalDate:  date(2024, time.June, 12),
	}
	makeup := model.ScheduleException{
		ID:            101,
		ScheduleID:    1,
		ExceptionType: model.ExceptionMakeup,
		OriginalDate:  date(2024, time.June, 19),
		NewDate:       ptr(date(2024, time.June, 22)),
		NewRoom:       ptr("B2"),
	}

	t.Run("week of the cancellation", func(t *testing.T) {
		week := WeekFor(date(2024, time.June, 10))
		got := resolveWeek(week, []*model.BaseSchedule{base}, []model.ScheduleException{canceled}, nil)

		if len(got) != 1 {
			t.Fatalf("expected 1 occurrence, got %d (%+v)", len(got), got)
		}
		if got[0].Status != model.StatusCanceled || got[0].Room != "A1" {
			t.Fatalf("expected canceled in A1, got %+v", got[0])
		}
		if !got[0].Date.Equal(date(2024, time.June, 12)) {
			t.Fatalf("expected date 2024-06-12, got %v", got[0].Date)
		}
	})

	t.Run("week of the makeup source", func(t *testing.T) {
		// Перенос виден здесь только как отмена исходного занятия 19.06.
		week := WeekFor(date(2024, time.June, 17))
		got := resolveWeek(week, []*model.BaseSchedule{base}, []model.ScheduleException{makeup}, nil)

		if len(got) != 1 {
			t.Fatalf("expected 1 occurrence, got %d (%+v)", len(got), got)
		}
		if got[0].Status != model.StatusCanceled || got[0].Room != "A1" {
			t.Fatalf("expected canceled marker in A1, not a plain regular, got %+v", got[0])
		}
		if !got[0].Date.Equal(date(2024, time.June, 19)) {
			t.Fatalf("expected date 2024-06-19, got %v", got[0].Date)
		}
	})

	t.Run("week of the makeup destination", func(t *testing.T) {
		// Суббота 22.06: у расписания нет естественного занятия в эту неделю,
		// перенос приходит только через запрос по новой дате.
		week := WeekFor(date(2024, time.June, 22))
		got := resolveWeek(week, []*model.BaseSchedule{base}, nil, []model.ScheduleException{makeup})

		var makeupOccs []model.Occurrence
		for _, occ := range got {
			if occ.Type == model.OccurrenceMakeup {
				makeupOccs = append(makeupOccs, occ)
			}
		}
		if len(makeupOccs) != 1 {
			t.Fatalf("expected 1 makeup occurrence, got %d (%+v)", len(makeupOccs), got)
		}
		occ := makeupOccs[0]
		if !occ.Date.Equal(date(2024, time.June, 22)) || occ.DayOfWeek != 6 {
			t.Fatalf("expected Saturday 2024-06-22, got %v (day %d)", occ.Date, occ.DayOfWeek)
		}
		if occ.Status != model.StatusScheduled || occ.Room != "B2" {
			t.Fatalf("expected scheduled in B2, got %+v", occ)
		}
	})
}

func TestMakeup_SameWeekProducesBothEntries(t *testing.T) {
	t.Parallel()

	base := weeklyBase(1)
	makeup := model.ScheduleException{
		ID:             110,
		ScheduleID:     1,
		ExceptionType:  model.ExceptionMakeup,
		OriginalDate:   date(2024, time.June, 12),
		NewDate:        ptr(date(2024, time.June, 15)),
		NewRoom:        ptr("B2"),
		NewStartLesson: ptr(6),
		NewEndLesson:   ptr(8),
	}

	week := WeekFor(date(2024, time.June, 10))
	got := resolveWeek(week, []*model.BaseSchedule{base}, []model.ScheduleException{makeup}, []model.ScheduleException{makeup})

	if len(got) != 2 {
		t.Fatalf("expected canceled marker plus makeup, got %d (%+v)", len(got), got)
	}

	if got[0].Status != model.StatusCanceled || !got[0].Date.Equal(date(2024, time.June, 12)) {
		t.Fatalf("expected first entry to be the canceled source, got %+v", got[0])
	}
	if got[1].Type != model.OccurrenceMakeup || !got[1].Date.Equal(date(2024, time.June, 15)) {
		t.Fatalf("expected second entry to be the makeup, got %+v", got[1])
	}
	if got[1].StartLesson != 6 || got[1].EndLesson != 8 {
		t.Fatalf("expected overridden lesson range 6-8, got %d-%d", got[1].StartLesson, got[1].EndLesson)
	}
}

func TestMakeup_FallsBackToBaseAttributes(t *testing.T) {
	t.Parallel()

	base := weeklyBase(1)
	makeup := model.ScheduleException{
		ID:            111,
		ScheduleID:    1,
		ExceptionType: model.ExceptionMakeup,
		OriginalDate:  date(2024, time.June, 12),
		NewDate:       ptr(date(2024, time.June, 15)),
	}

	week := WeekFor(date(2024, time.June, 10))
	acc := NewAccumulator()
	InjectMakeups(BasesByID([]*model.BaseSchedule{base}), []model.ScheduleException{makeup}, week, acc)

	got := acc.Occurrences()
	if len(got) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(got))
	}
	if got[0].Room != "A1" || got[0].StartLesson != 1 || got[0].EndLesson != 3 {
		t.Fatalf("expected base attributes as fallback, got %+v", got[0])
	}
}

func TestAccumulator_DropsDuplicates(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	occ := model.Occurrence{
		ScheduleID:  1,
		Type:        model.OccurrenceMakeup,
		Status:      model.StatusScheduled,
		Date:        date(2024, time.June, 22),
		DayOfWeek:   6,
		StartLesson: 1,
		EndLesson:   3,
	}

	if !acc.Add(occ) {
		t.Fatal("expected first add to succeed")
	}
	if acc.Add(occ) {
		t.Fatal("expected duplicate to be dropped")
	}

	// Тот же слот с другим статусом - другой ключ идентичности.
	occ.Status = model.StatusCanceled
	if !acc.Add(occ) {
		t.Fatal("expected occurrence with a different status to be kept")
	}

	if len(acc.Occurrences()) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(acc.Occurrences()))
	}
}

func TestResolve_NoDuplicateIdentityKeys(t *testing.T) {
	t.Parallel()

	base := weeklyBase(1)
	exam := examBase(2, date(2024, time.June, 14))
	makeup := model.ScheduleException{
		ID:            120,
		ScheduleID:    1,
		ExceptionType: model.ExceptionMakeup,
		OriginalDate:  date(2024, time.June, 12),
		NewDate:       ptr(date(2024, time.June, 14)),
	}

	week := WeekFor(date(2024, time.June, 10))
	got := resolveWeek(week, []*model.BaseSchedule{base, exam}, []model.ScheduleException{makeup}, []model.ScheduleException{makeup})

	type key struct {
		scheduleID  int64
		date        time.Time
		typ         model.OccurrenceType
		status      model.OccurrenceStatus
		startLesson int
	}
	seen := make(map[key]struct{})
	for _, occ := range got {
		k := key{occ.ScheduleID, occ.Date, occ.Type, occ.Status, occ.StartLesson}
		if _, dup := seen[k]; dup {
			t.Fatalf("duplicate identity key %+v", k)
		}
		seen[k] = struct{}{}
	}
}

func TestApplyExceptions_ReturnsOrphans(t *testing.T) {
	t.Parallel()

	orphan := model.ScheduleException{
		ID:            130,
		ScheduleID:    999, // расписание удалено после создания исключения
		ExceptionType: model.ExceptionCanceled,
		OriginalDate:  date(2024, time.June, 12),
	}

	week := WeekFor(date(2024, time.June, 10))
	acc := NewAccumulator()
	orphans := ApplyExceptions(BasesByID(nil), []model.ScheduleException{orphan}, week, acc)

	if len(orphans) != 1 || orphans[0].ID != 130 {
		t.Fatalf("expected the orphaned exception back, got %+v", orphans)
	}
	if len(acc.Occurrences()) != 0 {
		t.Fatalf("expected no occurrences, got %+v", acc.Occurrences())
	}
}

func TestAssemble_SortOrder(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	add := func(day, lesson int, typ model.OccurrenceType, status model.OccurrenceStatus, id int64) {
		acc.Add(model.Occurrence{
			ScheduleID:  id,
			Type:        typ,
			Status:      status,
			Date:        date(2024, time.June, 9+day),
			DayOfWeek:   day,
			StartLesson: lesson,
			EndLesson:   lesson + 1,
		})
	}

	add(6, 1, model.OccurrenceMakeup, model.StatusScheduled, 1) // суббота, перенос
	add(3, 4, model.OccurrenceRegular, model.StatusScheduled, 2)
	add(3, 1, model.OccurrenceRegular, model.StatusCanceled, 1) // среда, отменённое
	add(1, 2, model.OccurrenceExam, model.StatusScheduled, 3)

	got := Assemble(acc)

	wantOrder := []int64{3, 1, 2, 1}
	for i, occ := range got {
		if occ.ScheduleID != wantOrder[i] {
			t.Fatalf("unexpected order at %d: %+v", i, got)
		}
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if prev.DayOfWeek > cur.DayOfWeek {
			t.Fatalf("expected ascending day order, got %+v", got)
		}
		if prev.DayOfWeek == cur.DayOfWeek && prev.StartLesson > cur.StartLesson {
			t.Fatalf("expected ascending lesson order within a day, got %+v", got)
		}
	}
}

func TestAssemble_TieBreakIsDeterministic(t *testing.T) {
	t.Parallel()

	// Отменённый источник и перенос попадают в один (день, пара) - порядок
	// между ними не должен зависеть от порядка накопления.
	canceled := model.Occurrence{
		ScheduleID:  1,
		Type:        model.OccurrenceRegular,
		Status:      model.StatusCanceled,
		Date:        date(2024, time.June, 12),
		DayOfWeek:   3,
		StartLesson: 1,
		EndLesson:   3,
	}
	makeup := model.Occurrence{
		ScheduleID:  1,
		Type:        model.OccurrenceMakeup,
		Status:      model.StatusScheduled,
		Date:        date(2024, time.June, 12),
		DayOfWeek:   3,
		StartLesson: 1,
		EndLesson:   3,
	}

	first := NewAccumulator()
	first.Add(canceled)
	first.Add(makeup)

	second := NewAccumulator()
	second.Add(makeup)
	second.Add(canceled)

	a, b := Assemble(first), Assemble(second)
	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("expected 2 occurrences in both, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].Status != b[i].Status {
			t.Fatalf("expected identical order regardless of insertion, got %+v vs %+v", a, b)
		}
	}
	if a[0].Type != model.OccurrenceRegular {
		t.Fatalf("expected the regular marker before the makeup, got %+v", a)
	}
}

func TestDayOfWeekMatchesDate(t *testing.T) {
	t.Parallel()

	base := weeklyBase(1)
	exam := examBase(2, date(2024, time.June, 16)) // воскресенье

	week := WeekFor(date(2024, time.June, 10))
	got := resolveWeek(week, []*model.BaseSchedule{base, exam}, nil, nil)

	for _, occ := range got {
		if occ.DayOfWeek != model.ISOWeekday(occ.Date) {
			t.Fatalf("day of week %d does not match date %v", occ.DayOfWeek, occ.Date)
		}
	}
}

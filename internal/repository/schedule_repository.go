package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScheduleRepository управляет базовыми расписаниями в базе данных.
// Расписания создаются административным импортом; здесь только чтение.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository создаёт новый репозиторий
func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

const baseScheduleColumns = `id, group_id, user_id, section_id, is_exam, day_of_week, exam_date, room, start_lesson, end_lesson, start_date, end_date, is_completed, created_at`

// GetForUserInWindow получает базовые расписания пользователя, пересекающие окно недели:
// регулярные - по пересечению периода действия, экзамены - по попаданию даты в окно.
// NULL в границах периода означает отсутствие границы, как в BaseSchedule.OccursOn.
func (r *ScheduleRepository) GetForUserInWindow(ctx context.Context, userID string, weekStart, weekEnd time.Time) ([]*model.BaseSchedule, error) {
	query := `
		SELECT ` + baseScheduleColumns + `
		FROM base_schedules
		WHERE user_id = $1
		  AND (
		    (is_exam = false AND COALESCE(start_date, '-infinity'::date) <= $3 AND COALESCE(end_date, 'infinity'::date) >= $2)
		    OR
		    (is_exam = true AND exam_date >= $2 AND exam_date <= $3)
		  )
		ORDER BY day_of_week, start_lesson
	`

	rows, err := r.pool.Query(ctx, query, userID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("get base schedules for user in window: %w", err)
	}
	defer rows.Close()

	return scanBaseSchedules(rows)
}

// GetByIDs получает базовые расписания по списку идентификаторов.
// Нужен для переносов, чьё исходное расписание не попадает в запрошенное окно.
func (r *ScheduleRepository) GetByIDs(ctx context.Context, ids []int64) ([]*model.BaseSchedule, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + baseScheduleColumns + `
		FROM base_schedules
		WHERE id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get base schedules by ids: %w", err)
	}
	defer rows.Close()

	return scanBaseSchedules(rows)
}

func scanBaseSchedules(rows pgx.Rows) ([]*model.BaseSchedule, error) {
	var schedules []*model.BaseSchedule
	for rows.Next() {
		schedule := &model.BaseSchedule{}
		err := rows.Scan(
			&schedule.ID,
			&schedule.GroupID,
			&schedule.UserID,
			&schedule.SectionID,
			&schedule.IsExam,
			&schedule.DayOfWeek,
			&schedule.ExamDate,
			&schedule.Room,
			&schedule.StartLesson,
			&schedule.EndLesson,
			&schedule.StartDate,
			&schedule.EndDate,
			&schedule.IsCompleted,
			&schedule.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan base schedule: %w", err)
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate base schedules: %w", err)
	}

	return schedules, nil
}

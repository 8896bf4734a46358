package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExceptionRepository читает исключения расписаний. Два независимых предиката:
// исключения по исходной дате в окне и переносы по новой дате в окне -
// неделя назначения переноса не зависит от недели источника, поэтому единым
// запросом их не достать.
type ExceptionRepository struct {
	pool *pgxpool.Pool
}

// NewExceptionRepository создаёт новый репозиторий
func NewExceptionRepository(pool *pgxpool.Pool) *ExceptionRepository {
	return &ExceptionRepository{pool: pool}
}

const exceptionColumns = `id, schedule_id, exception_type, original_date, new_date, new_room, new_start_lesson, new_end_lesson, new_lecturer_id, created_at`

// GetForSchedulesInWindow получает исключения указанных расписаний,
// чья исходная дата попадает в окно недели.
func (r *ExceptionRepository) GetForSchedulesInWindow(ctx context.Context, scheduleIDs []int64, weekStart, weekEnd time.Time) ([]model.ScheduleException, error) {
	if len(scheduleIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + exceptionColumns + `
		FROM schedule_exceptions
		WHERE schedule_id = ANY($1)
		  AND original_date >= $2
		  AND original_date <= $3
		ORDER BY original_date
	`

	rows, err := r.pool.Query(ctx, query, scheduleIDs, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("get exceptions for schedules in window: %w", err)
	}
	defer rows.Close()

	return scanExceptions(rows)
}

// GetIncomingMakeups получает все переносы с новой датой в окне недели,
// чьё расписание принадлежит пользователю - независимо от того, попадает ли
// само расписание в это окно.
func (r *ExceptionRepository) GetIncomingMakeups(ctx context.Context, userID string, weekStart, weekEnd time.Time) ([]model.ScheduleException, error) {
	query := `
		SELECT e.id, e.schedule_id, e.exception_type, e.original_date, e.new_date, e.new_room, e.new_start_lesson, e.new_end_lesson, e.new_lecturer_id, e.created_at
		FROM schedule_exceptions e
		JOIN base_schedules s ON s.id = e.schedule_id
		WHERE e.exception_type = 'makeup'
		  AND e.new_date >= $2
		  AND e.new_date <= $3
		  AND s.user_id = $1
		ORDER BY e.new_date
	`

	rows, err := r.pool.Query(ctx, query, userID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("get incoming makeups: %w", err)
	}
	defer rows.Close()

	return scanExceptions(rows)
}

func scanExceptions(rows pgx.Rows) ([]model.ScheduleException, error) {
	var exceptions []model.ScheduleException
	for rows.Next() {
		var exc model.ScheduleException
		err := rows.Scan(
			&exc.ID,
			&exc.ScheduleID,
			&exc.ExceptionType,
			&exc.OriginalDate,
			&exc.NewDate,
			&exc.NewRoom,
			&exc.NewStartLesson,
			&exc.NewEndLesson,
			&exc.NewLecturerID,
			&exc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan schedule exception: %w", err)
		}
		exceptions = append(exceptions, exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule exceptions: %w", err)
	}

	return exceptions, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DirectoryRepository разрешает непрозрачные идентификаторы в отображаемые
// названия: секция курса -> предмет/класс/преподаватель, преподаватель -> имя.
type DirectoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository создаёт новый репозиторий
func NewDirectoryRepository(pool *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{pool: pool}
}

// GetSectionInfos получает отображаемые названия для набора секций.
func (r *DirectoryRepository) GetSectionInfos(ctx context.Context, sectionIDs []int64) (map[int64]model.SectionInfo, error) {
	if len(sectionIDs) == 0 {
		return make(map[int64]model.SectionInfo), nil
	}

	query := `
		SELECT cs.id, cs.subject_name, cs.class_name, cs.lecturer_id, l.full_name
		FROM class_sections cs
		JOIN lecturers l ON l.id = cs.lecturer_id
		WHERE cs.id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, sectionIDs)
	if err != nil {
		return nil, fmt.Errorf("get section infos: %w", err)
	}
	defer rows.Close()

	return scanSectionInfos(rows)
}

// GetLecturerNames получает имена преподавателей по идентификаторам.
// Используется для занятий с заменой преподавателя.
func (r *DirectoryRepository) GetLecturerNames(ctx context.Context, lecturerIDs []int64) (map[int64]string, error) {
	if len(lecturerIDs) == 0 {
		return make(map[int64]string), nil
	}

	query := `
		SELECT id, full_name
		FROM lecturers
		WHERE id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, lecturerIDs)
	if err != nil {
		return nil, fmt.Errorf("get lecturer names: %w", err)
	}
	defer rows.Close()

	return scanLecturerNames(rows)
}

func scanSectionInfos(rows pgx.Rows) (map[int64]model.SectionInfo, error) {
	infos := make(map[int64]model.SectionInfo)
	for rows.Next() {
		var info model.SectionInfo
		err := rows.Scan(
			&info.SectionID,
			&info.SubjectName,
			&info.ClassName,
			&info.LecturerID,
			&info.LecturerName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan section info: %w", err)
		}
		infos[info.SectionID] = info
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate section infos: %w", err)
	}

	return infos, nil
}

func scanLecturerNames(rows pgx.Rows) (map[int64]string, error) {
	names := make(map[int64]string)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan lecturer name: %w", err)
		}
		names[id] = name
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lecturer names: %w", err)
	}

	return names, nil
}

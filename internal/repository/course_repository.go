package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const courseColumns = `id, name, teacher_name, teacher_phone, price, rating, sample_ref, status, created_at`

type CourseRepository struct {
	*base.Repository
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{Repository: base.NewRepository(pool)}
}

func scanCourse(row pgx.Row) (*model.Course, error) {
	var course model.Course
	err := row.Scan(
		&course.ID,
		&course.Name,
		&course.TeacherName,
		&course.TeacherPhone,
		&course.Price,
		&course.Rating,
		&course.SampleRef,
		&course.Status,
		&course.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) queryCourses(ctx context.Context, query string, args ...any) ([]*model.Course, error) {
	rows, err := r.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*model.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}

	return courses, nil
}

// Create создаёт курс
func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	query := `
		INSERT INTO courses (name, teacher_name, teacher_phone, price, rating, sample_ref, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.Pool().QueryRow(
		ctx, query,
		course.Name,
		course.TeacherName,
		course.TeacherPhone,
		course.Price,
		course.Rating,
		course.SampleRef,
		string(course.Status),
	).Scan(&course.ID, &course.CreatedAt)

	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

// GetByID получает курс по ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	course, err := scanCourse(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	return course, nil
}

// ListByStatus получает курсы по статусу
func (r *CourseRepository) ListByStatus(ctx context.Context, status model.Status) ([]*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE status = $1 ORDER BY id`

	courses, err := r.queryCourses(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("list courses by status: %w", err)
	}

	return courses, nil
}

// ListByTeacherPhone получает курсы учителя
func (r *CourseRepository) ListByTeacherPhone(ctx context.Context, phone string) ([]*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE teacher_phone = $1 ORDER BY id`

	courses, err := r.queryCourses(ctx, query, phone)
	if err != nil {
		return nil, fmt.Errorf("list teacher courses: %w", err)
	}

	return courses, nil
}

// UpdateStatus меняет статус только если текущий равен from
func (r *CourseRepository) UpdateStatus(ctx context.Context, id int64, from, to model.Status) (bool, error) {
	query := `
		UPDATE courses
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	result, err := r.Pool().Exec(ctx, query, string(to), id, string(from))
	if err != nil {
		return false, fmt.Errorf("update course status: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

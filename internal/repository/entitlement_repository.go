package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EntitlementRepository struct {
	*base.Repository
}

func NewEntitlementRepository(pool *pgxpool.Pool) *EntitlementRepository {
	return &EntitlementRepository{Repository: base.NewRepository(pool)}
}

// Create добавляет запись о покупке. Повторные покупки не схлопываются
func (r *EntitlementRepository) Create(ctx context.Context, e *model.Entitlement) error {
	query := `
		INSERT INTO entitlements (course_id, course_name, teacher_name, teacher_phone, learner_id, learner_name, learner_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.Pool().QueryRow(
		ctx, query,
		e.CourseID,
		e.CourseName,
		e.TeacherName,
		e.TeacherPhone,
		e.LearnerID,
		e.LearnerName,
		e.LearnerPhone,
	).Scan(&e.ID, &e.CreatedAt)

	if err != nil {
		return fmt.Errorf("create entitlement: %w", err)
	}

	return nil
}

// ListByLearner получает покупки ученика
func (r *EntitlementRepository) ListByLearner(ctx context.Context, learnerID int64) ([]*model.Entitlement, error) {
	query := `
		SELECT id, course_id, course_name, teacher_name, teacher_phone, learner_id, learner_name, learner_phone, created_at
		FROM entitlements
		WHERE learner_id = $1
		ORDER BY id
	`

	rows, err := r.Pool().Query(ctx, query, learnerID)
	if err != nil {
		return nil, fmt.Errorf("list entitlements: %w", err)
	}
	defer rows.Close()

	var entitlements []*model.Entitlement
	for rows.Next() {
		var e model.Entitlement
		err := rows.Scan(
			&e.ID,
			&e.CourseID,
			&e.CourseName,
			&e.TeacherName,
			&e.TeacherPhone,
			&e.LearnerID,
			&e.LearnerName,
			&e.LearnerPhone,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan entitlement: %w", err)
		}
		entitlements = append(entitlements, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entitlements: %w", err)
	}

	return entitlements, nil
}

// Exists проверяет, купил ли ученик курс
func (r *EntitlementRepository) Exists(ctx context.Context, learnerID, courseID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM entitlements
			WHERE learner_id = $1 AND course_id = $2
		)
	`

	var exists bool
	err := r.Pool().QueryRow(ctx, query, learnerID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check entitlement: %w", err)
	}

	return exists, nil
}

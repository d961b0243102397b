package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const teacherRequestColumns = `id, name, phone, sample_ref, status, created_at, approved_at`

type TeacherRequestRepository struct {
	*base.Repository
}

func NewTeacherRequestRepository(pool *pgxpool.Pool) *TeacherRequestRepository {
	return &TeacherRequestRepository{Repository: base.NewRepository(pool)}
}

func scanTeacherRequest(row pgx.Row) (*model.TeacherRequest, error) {
	var req model.TeacherRequest
	err := row.Scan(
		&req.ID,
		&req.Name,
		&req.Phone,
		&req.SampleRef,
		&req.Status,
		&req.CreatedAt,
		&req.ApprovedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create создает заявку
func (r *TeacherRequestRepository) Create(ctx context.Context, req *model.TeacherRequest) error {
	query := `
		INSERT INTO teacher_requests (name, phone, sample_ref, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.Pool().QueryRow(
		ctx, query,
		req.Name,
		req.Phone,
		req.SampleRef,
		string(req.Status),
	).Scan(&req.ID, &req.CreatedAt)

	if err != nil {
		return fmt.Errorf("create teacher request: %w", err)
	}

	return nil
}

// GetByID получает заявку по ID
func (r *TeacherRequestRepository) GetByID(ctx context.Context, id int64) (*model.TeacherRequest, error) {
	query := `SELECT ` + teacherRequestColumns + ` FROM teacher_requests WHERE id = $1`

	req, err := scanTeacherRequest(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher request: %w", err)
	}

	return req, nil
}

// FindApprovedByPhone получает первую одобренную заявку с телефоном
func (r *TeacherRequestRepository) FindApprovedByPhone(ctx context.Context, phone string) (*model.TeacherRequest, error) {
	query := `
		SELECT ` + teacherRequestColumns + `
		FROM teacher_requests
		WHERE phone = $1 AND status = $2
		ORDER BY id
		LIMIT 1
	`

	req, err := scanTeacherRequest(r.Pool().QueryRow(ctx, query, phone, string(model.StatusApproved)))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find approved teacher request: %w", err)
	}

	return req, nil
}

// ListByStatus получает заявки по статусу в порядке создания
func (r *TeacherRequestRepository) ListByStatus(ctx context.Context, status model.Status) ([]*model.TeacherRequest, error) {
	query := `
		SELECT ` + teacherRequestColumns + `
		FROM teacher_requests
		WHERE status = $1
		ORDER BY id ASC
	`

	rows, err := r.Pool().Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("list teacher requests: %w", err)
	}
	defer rows.Close()

	var requests []*model.TeacherRequest
	for rows.Next() {
		req, err := scanTeacherRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan teacher request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teacher requests: %w", err)
	}

	return requests, nil
}

// Approve одобряет pending заявку и повышает identity в одной транзакции.
// Возвращает nil заявку, если она уже не pending (CAS проиграл)
func (r *TeacherRequestRepository) Approve(ctx context.Context, id int64) (*model.TeacherRequest, *model.Identity, error) {
	var (
		approved *model.TeacherRequest
		promoted *model.Identity
	)

	err := r.InTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE teacher_requests
			SET status = $2, approved_at = NOW()
			WHERE id = $1 AND status = $3
			RETURNING ` + teacherRequestColumns

		req, err := scanTeacherRequest(tx.QueryRow(ctx, query, id, string(model.StatusApproved), string(model.StatusPending)))
		if err != nil {
			if base.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("update teacher request status: %w", err)
		}
		approved = req

		promoted, err = promoteFirstByPhone(ctx, tx, req.Phone)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("approve teacher request: %w", err)
	}

	return approved, promoted, nil
}

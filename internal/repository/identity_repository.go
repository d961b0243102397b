package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const identityColumns = `id, phone, name, password_hash, role, created_at`

type IdentityRepository struct {
	*base.Repository
}

func NewIdentityRepository(pool *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{Repository: base.NewRepository(pool)}
}

func scanIdentity(row pgx.Row) (*model.Identity, error) {
	var identity model.Identity
	err := row.Scan(
		&identity.ID,
		&identity.Phone,
		&identity.Name,
		&identity.PasswordHash,
		&identity.Role,
		&identity.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// Create создаёт identity
func (r *IdentityRepository) Create(ctx context.Context, identity *model.Identity) error {
	query := `
		INSERT INTO identities (phone, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.Pool().QueryRow(
		ctx, query,
		identity.Phone,
		identity.Name,
		identity.PasswordHash,
		string(identity.Role),
	).Scan(&identity.ID, &identity.CreatedAt)

	if err != nil {
		return fmt.Errorf("create identity: %w", err)
	}

	return nil
}

// GetByID получает identity по ID
func (r *IdentityRepository) GetByID(ctx context.Context, id int64) (*model.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities WHERE id = $1`

	identity, err := scanIdentity(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity by id: %w", err)
	}

	return identity, nil
}

// FindByPhone возвращает первую (по id) identity с данным телефоном
func (r *IdentityRepository) FindByPhone(ctx context.Context, phone string) (*model.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities WHERE phone = $1 ORDER BY id LIMIT 1`

	identity, err := scanIdentity(r.Pool().QueryRow(ctx, query, phone))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find identity by phone: %w", err)
	}

	return identity, nil
}

// ListByPhoneAndRole получает всех кандидатов для аутентификации в порядке id
func (r *IdentityRepository) ListByPhoneAndRole(ctx context.Context, phone string, role model.Role) ([]*model.Identity, error) {
	query := `
		SELECT ` + identityColumns + `
		FROM identities
		WHERE phone = $1 AND role = $2
		ORDER BY id
	`

	rows, err := r.Pool().Query(ctx, query, phone, string(role))
	if err != nil {
		return nil, fmt.Errorf("list identities by phone: %w", err)
	}
	defer rows.Close()

	var identities []*model.Identity
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan identity: %w", err)
		}
		identities = append(identities, identity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate identities: %w", err)
	}

	return identities, nil
}

// promoteFirstByPhone повышает первую identity с телефоном до teacher.
// Повышается только learner; teacher и admin не меняются
func promoteFirstByPhone(ctx context.Context, q base.Querier, phone string) (*model.Identity, error) {
	query := `
		UPDATE identities
		SET role = $2
		WHERE id = (SELECT id FROM identities WHERE phone = $1 ORDER BY id LIMIT 1)
		  AND role = $3
		RETURNING ` + identityColumns

	identity, err := scanIdentity(q.QueryRow(ctx, query, phone, string(model.RoleTeacher), string(model.RoleLearner)))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("promote identity: %w", err)
	}

	return identity, nil
}

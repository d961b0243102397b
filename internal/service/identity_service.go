package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type IdentityService struct {
	identities IdentityRepository
	bcryptCost int
	logger     *zap.Logger
}

func NewIdentityService(identities IdentityRepository, bcryptCost int, logger *zap.Logger) *IdentityService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &IdentityService{
		identities: identities,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register создаёт learner. Телефон не уникален: дубликаты допускаются
func (s *IdentityService) Register(ctx context.Context, in model.NewIdentity) (*model.Identity, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, newValidationError("invalid input", FieldError{Field: "password", Message: "max=72 bytes"})
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	identity := &model.Identity{
		Phone:        in.Phone,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         model.RoleLearner,
	}

	if err := s.identities.Create(ctx, identity); err != nil {
		return nil, fmt.Errorf("create identity: %w", err)
	}

	s.logger.Info("Identity registered",
		zap.Int64("identity_id", identity.ID),
		zap.String("phone", identity.Phone),
	)

	return identity, nil
}

// Authenticate возвращает первую identity с совпадающими телефоном, ролью и паролем
func (s *IdentityService) Authenticate(ctx context.Context, phone, password string, role model.Role) (*model.Identity, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("identity with role %q: %w", role, ErrNotFound)
	}

	candidates, err := s.identities.ListByPhoneAndRole(ctx, phone, role)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	for _, identity := range candidates {
		err := bcrypt.CompareHashAndPassword(identity.PasswordHash, []byte(password))
		if err == nil {
			return identity, nil
		}
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Warn("Unreadable password hash",
				zap.Int64("identity_id", identity.ID),
				zap.Error(err),
			)
		}
	}

	return nil, fmt.Errorf("identity: %w", ErrNotFound)
}

// GetByID получает identity по ID
func (s *IdentityService) GetByID(ctx context.Context, id int64) (*model.Identity, error) {
	identity, err := s.identities.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get identity: %w", err)
	}
	if identity == nil {
		return nil, fmt.Errorf("identity %d: %w", id, ErrNotFound)
	}
	return identity, nil
}

// FindByPhone получает первую identity с телефоном
func (s *IdentityService) FindByPhone(ctx context.Context, phone string) (*model.Identity, error) {
	identity, err := s.identities.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("find identity: %w", err)
	}
	if identity == nil {
		return nil, fmt.Errorf("identity with phone %s: %w", phone, ErrNotFound)
	}
	return identity, nil
}

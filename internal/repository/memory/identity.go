package memory

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/model"
)

type IdentityRepository struct {
	db *DB
}

func NewIdentityRepository(db *DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

func (r *IdentityRepository) Create(_ context.Context, identity *model.Identity) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	identity.ID = r.db.nextID("identities")
	identity.CreatedAt = r.db.now()
	r.db.identities = append(r.db.identities, cloneIdentity(identity))
	return nil
}

func (r *IdentityRepository) GetByID(_ context.Context, id int64) (*model.Identity, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, identity := range r.db.identities {
		if identity.ID == id {
			return cloneIdentity(identity), nil
		}
	}
	return nil, nil
}

func (r *IdentityRepository) FindByPhone(_ context.Context, phone string) (*model.Identity, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if identity := r.db.firstIdentityByPhone(phone); identity != nil {
		return cloneIdentity(identity), nil
	}
	return nil, nil
}

func (r *IdentityRepository) ListByPhoneAndRole(_ context.Context, phone string, role model.Role) ([]*model.Identity, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var identities []*model.Identity
	for _, identity := range r.db.identities {
		if identity.Phone == phone && identity.Role == role {
			identities = append(identities, cloneIdentity(identity))
		}
	}
	return identities, nil
}

// firstIdentityByPhone must be called with mu held. Rows are kept in id order.
func (db *DB) firstIdentityByPhone(phone string) *model.Identity {
	for _, identity := range db.identities {
		if identity.Phone == phone {
			return identity
		}
	}
	return nil
}

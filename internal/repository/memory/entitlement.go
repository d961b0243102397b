package memory

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/model"
)

type EntitlementRepository struct {
	db *DB
}

func NewEntitlementRepository(db *DB) *EntitlementRepository {
	return &EntitlementRepository{db: db}
}

func (r *EntitlementRepository) Create(_ context.Context, e *model.Entitlement) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	e.ID = r.db.nextID("entitlements")
	e.CreatedAt = r.db.now()
	r.db.entitlements = append(r.db.entitlements, cloneEntitlement(e))
	return nil
}

func (r *EntitlementRepository) ListByLearner(_ context.Context, learnerID int64) ([]*model.Entitlement, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var entitlements []*model.Entitlement
	for _, e := range r.db.entitlements {
		if e.LearnerID == learnerID {
			entitlements = append(entitlements, cloneEntitlement(e))
		}
	}
	return entitlements, nil
}

func (r *EntitlementRepository) Exists(_ context.Context, learnerID, courseID int64) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, e := range r.db.entitlements {
		if e.LearnerID == learnerID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

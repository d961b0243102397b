package memory

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/model"
)

type TeacherRequestRepository struct {
	db *DB
}

func NewTeacherRequestRepository(db *DB) *TeacherRequestRepository {
	return &TeacherRequestRepository{db: db}
}

func (r *TeacherRequestRepository) Create(_ context.Context, req *model.TeacherRequest) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	req.ID = r.db.nextID("teacher_requests")
	req.CreatedAt = r.db.now()
	r.db.teacherRequests = append(r.db.teacherRequests, cloneTeacherRequest(req))
	return nil
}

func (r *TeacherRequestRepository) GetByID(_ context.Context, id int64) (*model.TeacherRequest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if req := r.db.teacherRequest(id); req != nil {
		return cloneTeacherRequest(req), nil
	}
	return nil, nil
}

func (r *TeacherRequestRepository) FindApprovedByPhone(_ context.Context, phone string) (*model.TeacherRequest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, req := range r.db.teacherRequests {
		if req.Phone == phone && req.IsApproved() {
			return cloneTeacherRequest(req), nil
		}
	}
	return nil, nil
}

func (r *TeacherRequestRepository) ListByStatus(_ context.Context, status model.Status) ([]*model.TeacherRequest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var requests []*model.TeacherRequest
	for _, req := range r.db.teacherRequests {
		if req.Status == status {
			requests = append(requests, cloneTeacherRequest(req))
		}
	}
	return requests, nil
}

func (r *TeacherRequestRepository) Approve(_ context.Context, id int64) (*model.TeacherRequest, *model.Identity, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	req := r.db.teacherRequest(id)
	if req == nil || !req.IsPending() {
		return nil, nil, nil
	}

	now := r.db.now()
	req.Status = model.StatusApproved
	req.ApprovedAt = &now

	var promoted *model.Identity
	identity := r.db.firstIdentityByPhone(req.Phone)
	if identity != nil && model.CheckRoleTransition(identity.Role, model.RoleTeacher) == nil {
		identity.Role = model.RoleTeacher
		promoted = cloneIdentity(identity)
	}

	return cloneTeacherRequest(req), promoted, nil
}

// teacherRequest must be called with mu held
func (db *DB) teacherRequest(id int64) *model.TeacherRequest {
	for _, req := range db.teacherRequests {
		if req.ID == id {
			return req
		}
	}
	return nil
}

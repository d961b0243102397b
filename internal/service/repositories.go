package service

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/model"
)

// Repository contracts. Implemented by the pgx repositories and by the in-memory store.
// Getters return (nil, nil) when nothing matches.

type IdentityRepository interface {
	Create(ctx context.Context, identity *model.Identity) error
	GetByID(ctx context.Context, id int64) (*model.Identity, error)
	FindByPhone(ctx context.Context, phone string) (*model.Identity, error)
	ListByPhoneAndRole(ctx context.Context, phone string, role model.Role) ([]*model.Identity, error)
}

type TeacherRequestRepository interface {
	Create(ctx context.Context, req *model.TeacherRequest) error
	GetByID(ctx context.Context, id int64) (*model.TeacherRequest, error)
	FindApprovedByPhone(ctx context.Context, phone string) (*model.TeacherRequest, error)
	ListByStatus(ctx context.Context, status model.Status) ([]*model.TeacherRequest, error)
	// Approve atomically moves a pending request to approved and promotes the first
	// learner with the request phone. Returns a nil request when it was no longer pending.
	Approve(ctx context.Context, id int64) (*model.TeacherRequest, *model.Identity, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	ListByStatus(ctx context.Context, status model.Status) ([]*model.Course, error)
	ListByTeacherPhone(ctx context.Context, phone string) ([]*model.Course, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.Status) (bool, error)
}

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id int64) (*model.Video, error)
	ListByCourse(ctx context.Context, courseName, teacherName string) ([]*model.Video, error)
}

type EntitlementRepository interface {
	Create(ctx context.Context, e *model.Entitlement) error
	ListByLearner(ctx context.Context, learnerID int64) ([]*model.Entitlement, error)
	Exists(ctx context.Context, learnerID, courseID int64) (bool, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, q *model.Question) error
	ListAll(ctx context.Context) ([]*model.Question, error)
	// CountCorrect counts correct answers among answerIDs, restricted to questionIDs unless nil.
	CountCorrect(ctx context.Context, answerIDs, questionIDs []int64) (int, error)
}

package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/metrics"
	"github.com/Freeeeeet/tutor_market/internal/model"
	"go.uber.org/zap"
)

type EntitlementService struct {
	courses      CourseRepository
	entitlements EntitlementRepository
	policy       Policy
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

func NewEntitlementService(
	courses CourseRepository,
	entitlements EntitlementRepository,
	policy Policy,
	m *metrics.Metrics,
	logger *zap.Logger,
) *EntitlementService {
	return &EntitlementService{
		courses:      courses,
		entitlements: entitlements,
		policy:       policy,
		metrics:      m,
		logger:       logger,
	}
}

// Purchase записывает покупку курса.
// Повторные покупки и покупки неопубликованных курсов не запрещены
func (s *EntitlementService) Purchase(ctx context.Context, caller *model.Identity, courseID int64) (*model.Entitlement, error) {
	if err := s.policy.Authorize(caller, ActionPurchase, Target{ID: courseID}); err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, deny(ActionPurchase, "anonymous caller")
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	if course == nil {
		return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
	}

	if !course.IsApproved() {
		s.logger.Warn("Purchase of unpublished course",
			zap.Int64("course_id", courseID),
			zap.String("status", string(course.Status)),
		)
	}

	entitlement := &model.Entitlement{
		CourseID:     course.ID,
		CourseName:   course.Name,
		TeacherName:  course.TeacherName,
		TeacherPhone: course.TeacherPhone,
		LearnerID:    caller.ID,
		LearnerName:  caller.Name,
		LearnerPhone: caller.Phone,
	}

	if err := s.entitlements.Create(ctx, entitlement); err != nil {
		return nil, fmt.Errorf("create entitlement: %w", err)
	}

	s.metrics.Purchase()

	s.logger.Info("Course purchased",
		zap.Int64("entitlement_id", entitlement.ID),
		zap.Int64("course_id", course.ID),
		zap.Int64("learner_id", caller.ID),
	)

	return entitlement, nil
}

// ListEntitlementsFor получает покупки вызывающего ученика
func (s *EntitlementService) ListEntitlementsFor(ctx context.Context, caller *model.Identity) ([]*model.Entitlement, error) {
	if err := s.policy.Authorize(caller, ActionListEntitlements, Target{}); err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, deny(ActionListEntitlements, "anonymous caller")
	}

	entitlements, err := s.entitlements.ListByLearner(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list entitlements: %w", err)
	}

	return entitlements, nil
}

// HasEntitlement проверяет наличие покупки курса учеником
func (s *EntitlementService) HasEntitlement(ctx context.Context, learnerID, courseID int64) (bool, error) {
	ok, err := s.entitlements.Exists(ctx, learnerID, courseID)
	if err != nil {
		return false, fmt.Errorf("check entitlement: %w", err)
	}
	return ok, nil
}

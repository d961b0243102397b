package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/metrics"
	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/notify"
	"go.uber.org/zap"
)

const (
	kindTeacherRequest = "teacher_request"
	kindCourse         = "course"
)

type ApprovalService struct {
	identities IdentityRepository
	requests   TeacherRequestRepository
	courses    CourseRepository
	policy     Policy
	notifier   notify.Notifier
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewApprovalService(
	identities IdentityRepository,
	requests TeacherRequestRepository,
	courses CourseRepository,
	policy Policy,
	notifier notify.Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ApprovalService {
	return &ApprovalService{
		identities: identities,
		requests:   requests,
		courses:    courses,
		policy:     policy,
		notifier:   notifier,
		metrics:    m,
		logger:     logger,
	}
}

// ============ Заявки учителей ============

// SubmitTeacherRequest создаёт pending заявку от первой identity с телефоном
func (s *ApprovalService) SubmitTeacherRequest(ctx context.Context, caller *model.Identity, phone, sampleRef string) (*model.TeacherRequest, error) {
	if err := s.policy.Authorize(caller, ActionSubmitTeacherRequest, Target{Phone: phone}); err != nil {
		return nil, err
	}

	if err := validateStruct(model.NewTeacherRequest{Phone: phone, SampleRef: sampleRef}); err != nil {
		return nil, err
	}

	identity, err := s.identities.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("find identity: %w", err)
	}

	if identity == nil {
		return nil, fmt.Errorf("identity with phone %s: %w", phone, ErrNotFound)
	}

	req := &model.TeacherRequest{
		Name:      identity.Name,
		Phone:     identity.Phone,
		SampleRef: sampleRef,
		Status:    model.StatusPending,
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create teacher request: %w", err)
	}

	s.logger.Info("Teacher request submitted",
		zap.Int64("request_id", req.ID),
		zap.Int64("identity_id", identity.ID),
		zap.String("phone", req.Phone),
	)
	s.metrics.Transition(kindTeacherRequest, string(model.StatusPending))

	s.notifyAdmin(ctx, fmt.Sprintf("🎓 Новая заявка учителя #%d: %s (%s)", req.ID, req.Name, req.Phone))

	return req, nil
}

// ApproveTeacherRequest одобряет заявку и делает пользователя учителем.
// Повторное одобрение ничего не меняет
func (s *ApprovalService) ApproveTeacherRequest(ctx context.Context, caller *model.Identity, requestID int64) (*model.TeacherRequest, error) {
	if err := s.policy.Authorize(caller, ActionApproveTeacherRequest, Target{ID: requestID}); err != nil {
		return nil, err
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get teacher request: %w", err)
	}

	if req == nil {
		return nil, fmt.Errorf("teacher request %d: %w", requestID, ErrNotFound)
	}

	if req.IsApproved() {
		return req, nil
	}

	if err := model.CheckStatusTransition(req.Status, model.StatusApproved); err != nil {
		return nil, err
	}

	approved, promoted, err := s.requests.Approve(ctx, requestID)
	if err != nil {
		return nil, err
	}

	// Заявку одобрили параллельно
	if approved == nil {
		current, err := s.requests.GetByID(ctx, requestID)
		if err != nil {
			return nil, fmt.Errorf("reload teacher request: %w", err)
		}
		return current, nil
	}

	s.metrics.Transition(kindTeacherRequest, string(model.StatusApproved))

	if promoted == nil {
		s.logger.Warn("Teacher request approved without role change",
			zap.Int64("request_id", requestID),
			zap.String("phone", approved.Phone),
		)
		return approved, nil
	}

	s.logger.Info("Teacher request approved",
		zap.Int64("request_id", requestID),
		zap.Int64("identity_id", promoted.ID),
		zap.String("phone", approved.Phone),
	)

	return approved, nil
}

// GetTeacherRequest получает заявку для просмотра образца
func (s *ApprovalService) GetTeacherRequest(ctx context.Context, caller *model.Identity, requestID int64) (*model.TeacherRequest, error) {
	if err := s.policy.Authorize(caller, ActionReviewRequests, Target{ID: requestID}); err != nil {
		return nil, err
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get teacher request: %w", err)
	}

	if req == nil {
		return nil, fmt.Errorf("teacher request %d: %w", requestID, ErrNotFound)
	}

	return req, nil
}

// ListPendingTeacherRequests получает pending заявки (панель администратора)
func (s *ApprovalService) ListPendingTeacherRequests(ctx context.Context, caller *model.Identity) ([]*model.TeacherRequest, error) {
	if err := s.policy.Authorize(caller, ActionReviewRequests, Target{}); err != nil {
		return nil, err
	}

	requests, err := s.requests.ListByStatus(ctx, model.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending teacher requests: %w", err)
	}

	return requests, nil
}

// ============ Курсы ============

// SubmitCourseRequest создаёт курс со статусом pending
func (s *ApprovalService) SubmitCourseRequest(ctx context.Context, caller *model.Identity, in model.NewCourse) (*model.Course, error) {
	if err := s.policy.Authorize(caller, ActionSubmitCourse, Target{Phone: in.TeacherPhone}); err != nil {
		return nil, err
	}

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	course := &model.Course{
		Name:         in.Name,
		TeacherName:  in.TeacherName,
		TeacherPhone: in.TeacherPhone,
		Price:        in.Price,
		Rating:       in.Rating,
		SampleRef:    in.SampleRef,
		Status:       model.StatusPending,
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	s.logger.Info("Course submitted",
		zap.Int64("course_id", course.ID),
		zap.String("course_name", course.Name),
		zap.String("teacher_phone", course.TeacherPhone),
	)
	s.metrics.Transition(kindCourse, string(model.StatusPending))

	s.notifyAdmin(ctx, fmt.Sprintf("📚 Новый курс на модерации #%d: %s (%s)", course.ID, course.Name, course.TeacherName))

	return course, nil
}

// ApproveCourseRequest публикует курс. Повторное одобрение ничего не меняет
func (s *ApprovalService) ApproveCourseRequest(ctx context.Context, caller *model.Identity, courseID int64) (*model.Course, error) {
	if err := s.policy.Authorize(caller, ActionApproveCourse, Target{ID: courseID}); err != nil {
		return nil, err
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	if course == nil {
		return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
	}

	if course.IsApproved() {
		return course, nil
	}

	if err := model.CheckStatusTransition(course.Status, model.StatusApproved); err != nil {
		return nil, err
	}

	updated, err := s.courses.UpdateStatus(ctx, courseID, course.Status, model.StatusApproved)
	if err != nil {
		return nil, err
	}

	if !updated {
		current, err := s.courses.GetByID(ctx, courseID)
		if err != nil {
			return nil, fmt.Errorf("reload course: %w", err)
		}
		return current, nil
	}

	course.Status = model.StatusApproved
	s.metrics.Transition(kindCourse, string(model.StatusApproved))

	s.logger.Info("Course approved",
		zap.Int64("course_id", courseID),
		zap.String("course_name", course.Name),
	)

	return course, nil
}

// ListApprovedCourses получает опубликованные курсы
func (s *ApprovalService) ListApprovedCourses(ctx context.Context) ([]*model.Course, error) {
	courses, err := s.courses.ListByStatus(ctx, model.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("list approved courses: %w", err)
	}

	return courses, nil
}

// ListPendingCourses получает курсы на модерации
func (s *ApprovalService) ListPendingCourses(ctx context.Context, caller *model.Identity) ([]*model.Course, error) {
	if err := s.policy.Authorize(caller, ActionReviewRequests, Target{}); err != nil {
		return nil, err
	}

	courses, err := s.courses.ListByStatus(ctx, model.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending courses: %w", err)
	}

	return courses, nil
}

// GetCourse получает курс по ID
func (s *ApprovalService) GetCourse(ctx context.Context, courseID int64) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	if course == nil {
		return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
	}

	return course, nil
}

// ListTeacherCourses получает курсы учителя по его телефону
func (s *ApprovalService) ListTeacherCourses(ctx context.Context, caller *model.Identity) ([]*model.Course, error) {
	if err := s.policy.Authorize(caller, ActionListOwnCourses, Target{}); err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, deny(ActionListOwnCourses, "anonymous caller")
	}

	courses, err := s.courses.ListByTeacherPhone(ctx, caller.Phone)
	if err != nil {
		return nil, fmt.Errorf("list teacher courses: %w", err)
	}

	return courses, nil
}

// notifyAdmin уведомляет администратора. Ошибка не прерывает операцию
func (s *ApprovalService) notifyAdmin(ctx context.Context, text string) {
	if err := s.notifier.NotifyAdmin(ctx, text); err != nil {
		s.logger.Error("Failed to notify admin", zap.Error(err))
	}
}

package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Freeeeeet/tutor_market/internal/metrics"
	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (n *recordingNotifier) NotifyAdmin(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	return n.err
}

func (n *recordingNotifier) sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type fixture struct {
	ctx          context.Context
	identities   *memory.IdentityRepository
	identity     *IdentityService
	approval     *ApprovalService
	entitlements *EntitlementService
	content      *ContentService
	quiz         *QuizService
	notifier     *recordingNotifier
	logs         *observer.ObservedLogs
	admin        *model.Identity
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithPolicy(t, RolePolicy{})
}

func newFixtureWithPolicy(t *testing.T, policy Policy) *fixture {
	t.Helper()

	db := memory.Open()
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	m := metrics.New(prometheus.NewRegistry())
	notifier := &recordingNotifier{}

	identities := memory.NewIdentityRepository(db)
	requests := memory.NewTeacherRequestRepository(db)
	courses := memory.NewCourseRepository(db)

	entitlements := NewEntitlementService(courses, memory.NewEntitlementRepository(db), policy, m, logger)

	f := &fixture{
		ctx:          context.Background(),
		identities:   identities,
		identity:     NewIdentityService(identities, bcrypt.MinCost, logger),
		approval:     NewApprovalService(identities, requests, courses, policy, notifier, m, logger),
		entitlements: entitlements,
		content:      NewContentService(courses, memory.NewVideoRepository(db), requests, entitlements, policy, logger),
		quiz:         NewQuizService(memory.NewQuestionRepository(db), policy, m, logger),
		notifier:     notifier,
		logs:         logs,
	}

	f.admin = f.seedIdentity(t, "0500000000", "Admin", "root", model.RoleAdmin)
	return f
}

// seedIdentity stores an identity with an explicit role, bypassing Register.
func (f *fixture) seedIdentity(t *testing.T, phone, name, password string, role model.Role) *model.Identity {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	identity := &model.Identity{Phone: phone, Name: name, PasswordHash: hash, Role: role}
	require.NoError(t, f.identities.Create(f.ctx, identity))
	return identity
}

func (f *fixture) register(t *testing.T, phone, name, password string) *model.Identity {
	t.Helper()

	identity, err := f.identity.Register(f.ctx, model.NewIdentity{Phone: phone, Name: name, Password: password})
	require.NoError(t, err)
	return identity
}

// teacher registers a learner and walks it through the teacher approval workflow.
func (f *fixture) teacher(t *testing.T, phone, name string) *model.Identity {
	t.Helper()

	learner := f.register(t, phone, name, "pwd")
	req, err := f.approval.SubmitTeacherRequest(f.ctx, learner, phone, "sample.mp4")
	require.NoError(t, err)
	_, err = f.approval.ApproveTeacherRequest(f.ctx, f.admin, req.ID)
	require.NoError(t, err)

	teacher, err := f.identity.GetByID(f.ctx, learner.ID)
	require.NoError(t, err)
	require.Equal(t, model.RoleTeacher, teacher.Role)
	return teacher
}

func (f *fixture) approvedCourse(t *testing.T, teacher *model.Identity, name string) *model.Course {
	t.Helper()

	course, err := f.approval.SubmitCourseRequest(f.ctx, teacher, model.NewCourse{
		Name:         name,
		TeacherName:  teacher.Name,
		TeacherPhone: teacher.Phone,
		Price:        100,
	})
	require.NoError(t, err)
	course, err = f.approval.ApproveCourseRequest(f.ctx, f.admin, course.ID)
	require.NoError(t, err)
	return course
}

func (f *fixture) video(t *testing.T, teacher *model.Identity, courseName, name string) *model.Video {
	t.Helper()

	video, err := f.content.CreateVideo(f.ctx, teacher, model.NewVideo{
		Name:         name,
		TeacherName:  teacher.Name,
		TeacherPhone: teacher.Phone,
		CourseName:   courseName,
		URL:          "https://cdn.example/" + name + ".mp4",
	})
	require.NoError(t, err)
	return video
}

func requireValidationField(t *testing.T, err error, field string) {
	t.Helper()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	for _, f := range verr.Fields {
		if f.Field == field {
			return
		}
	}
	t.Fatalf("field %q not in %+v", field, verr.Fields)
}

package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/Freeeeeet/tutor_market/internal/app"
	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// openTestPool подключается к TEST_DB_DSN, применяет миграции и очищает таблицы
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator, err := app.NewMigrator(pool, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, migrator.Run(ctx))
	require.NoError(t, migrator.Close())

	_, err = pool.Exec(ctx, `
		TRUNCATE answers, questions, entitlements, videos, courses, teacher_requests, identities
		RESTART IDENTITY CASCADE
	`)
	require.NoError(t, err)

	return pool
}

func TestIdentityRepository(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	repo := repository.NewIdentityRepository(pool)

	first := &model.Identity{Phone: "0501111111", Name: "Ana", PasswordHash: []byte("h1"), Role: model.RoleLearner}
	second := &model.Identity{Phone: "0501111111", Name: "Ana 2", PasswordHash: []byte("h2"), Role: model.RoleLearner}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.Less(t, first.ID, second.ID)
	assert.False(t, first.CreatedAt.IsZero())

	got, err := repo.FindByPhone(ctx, "0501111111")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, []byte("h1"), got.PasswordHash)

	candidates, err := repo.ListByPhoneAndRole(ctx, "0501111111", model.RoleLearner)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, first.ID, candidates[0].ID)

	missing, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTeacherRequestRepository_Approve(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	identities := repository.NewIdentityRepository(pool)
	requests := repository.NewTeacherRequestRepository(pool)

	learner := &model.Identity{Phone: "0502222222", Name: "Bob", PasswordHash: []byte("h"), Role: model.RoleLearner}
	require.NoError(t, identities.Create(ctx, learner))

	req := &model.TeacherRequest{Name: "Bob", Phone: "0502222222", SampleRef: "sample.mp4", Status: model.StatusPending}
	require.NoError(t, requests.Create(ctx, req))

	pending, err := requests.ListByStatus(ctx, model.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			approved, promoted, err := requests.Approve(ctx, req.ID)
			assert.NoError(t, err)
			if approved != nil {
				mu.Lock()
				winners++
				mu.Unlock()
				assert.NotNil(t, promoted)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, winners)

	got, err := identities.GetByID(ctx, learner.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeacher, got.Role)

	approved, err := requests.FindApprovedByPhone(ctx, "0502222222")
	require.NoError(t, err)
	require.NotNil(t, approved)
	assert.NotNil(t, approved.ApprovedAt)
}

func TestTeacherRequestRepository_AdminNotDemoted(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	identities := repository.NewIdentityRepository(pool)
	requests := repository.NewTeacherRequestRepository(pool)

	admin := &model.Identity{Phone: "0500000000", Name: "Admin", PasswordHash: []byte("h"), Role: model.RoleAdmin}
	require.NoError(t, identities.Create(ctx, admin))
	req := &model.TeacherRequest{Name: "Admin", Phone: "0500000000", Status: model.StatusPending}
	require.NoError(t, requests.Create(ctx, req))

	approved, promoted, err := requests.Approve(ctx, req.ID)
	require.NoError(t, err)
	assert.NotNil(t, approved)
	assert.Nil(t, promoted)

	got, err := identities.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, got.Role)
}

func TestCourseVideoEntitlementRepositories(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	identities := repository.NewIdentityRepository(pool)
	courses := repository.NewCourseRepository(pool)
	videos := repository.NewVideoRepository(pool)
	entitlements := repository.NewEntitlementRepository(pool)

	learner := &model.Identity{Phone: "0501111111", Name: "Ana", PasswordHash: []byte("h"), Role: model.RoleLearner}
	require.NoError(t, identities.Create(ctx, learner))

	course := &model.Course{Name: "Algebra", TeacherName: "Mr T", TeacherPhone: "0508888888", Price: 100, Status: model.StatusPending}
	require.NoError(t, courses.Create(ctx, course))

	ok, err := courses.UpdateStatus(ctx, course.ID, model.StatusPending, model.StatusApproved)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = courses.UpdateStatus(ctx, course.ID, model.StatusPending, model.StatusApproved)
	require.NoError(t, err)
	assert.False(t, ok)

	listed, err := courses.ListByStatus(ctx, model.StatusApproved)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, int64(100), listed[0].Price)

	video := &model.Video{Name: "Lesson 1", TeacherName: "Mr T", TeacherPhone: "0508888888", CourseName: "Algebra", URL: "u"}
	require.NoError(t, videos.Create(ctx, video))
	found, err := videos.ListByCourse(ctx, "Algebra", "Mr T")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Nil(t, found[0].TeacherID)

	exists, err := entitlements.Exists(ctx, learner.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	for i := 0; i < 2; i++ {
		require.NoError(t, entitlements.Create(ctx, &model.Entitlement{
			CourseID: course.ID, CourseName: course.Name, TeacherName: course.TeacherName,
			TeacherPhone: course.TeacherPhone, LearnerID: learner.ID, LearnerName: "Ana", LearnerPhone: learner.Phone,
		}))
	}

	owned, err := entitlements.ListByLearner(ctx, learner.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	exists, err = entitlements.Exists(ctx, learner.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestQuestionRepository(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	repo := repository.NewQuestionRepository(pool)

	q1 := &model.Question{Text: "2+2?", Answers: []*model.Answer{{Text: "3"}, {Text: "4", IsCorrect: true}, {Text: "5"}}}
	q2 := &model.Question{Text: "1+1?", Answers: []*model.Answer{{Text: "2", IsCorrect: true}}}
	require.NoError(t, repo.Create(ctx, q1))
	require.NoError(t, repo.Create(ctx, q2))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Len(t, all[0].Answers, 3)
	assert.Equal(t, "4", all[0].Answers[1].Text)
	assert.True(t, all[0].Answers[1].IsCorrect)

	submitted := []int64{q1.Answers[0].ID, q1.Answers[1].ID, q2.Answers[0].ID}

	n, err := repo.CountCorrect(ctx, submitted, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CountCorrect(ctx, submitted, []int64{q1.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.CountCorrect(ctx, []int64{}, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestQuestionRepository_ListAllSeesWholeQuestions(t *testing.T) {
	pool := openTestPool(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	repo := repository.NewQuestionRepository(pool)

	var writers sync.WaitGroup
	defer writers.Wait()
	defer cancel()
	for w := 0; w < 4; w++ {
		writers.Add(1)
		go func() {
			defer writers.Done()
			for ctx.Err() == nil {
				q := &model.Question{Text: "q", Answers: []*model.Answer{{Text: "a", IsCorrect: true}, {Text: "b"}, {Text: "c"}}}
				if err := repo.Create(ctx, q); err != nil && ctx.Err() == nil {
					assert.NoError(t, err)
					return
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		all, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		for _, q := range all {
			require.Len(t, q.Answers, 3, "question %d", q.ID)
		}
	}
}

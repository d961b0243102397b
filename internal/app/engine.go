package app

import (
	"github.com/Freeeeeet/tutor_market/internal/metrics"
	"github.com/Freeeeeet/tutor_market/internal/notify"
	"github.com/Freeeeeet/tutor_market/internal/repository"
	"github.com/Freeeeeet/tutor_market/internal/repository/memory"
	"github.com/Freeeeeet/tutor_market/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Engine собирает все сервисы workflow
type Engine struct {
	Identity     *service.IdentityService
	Approval     *service.ApprovalService
	Entitlements *service.EntitlementService
	Content      *service.ContentService
	Quiz         *service.QuizService
}

// Options настраивает Engine. Нулевые значения: RolePolicy, без уведомлений, без метрик
type Options struct {
	Policy     service.Policy
	Notifier   notify.Notifier
	Metrics    *metrics.Metrics
	BcryptCost int
}

// Stores набор репозиториев для Engine
type Stores struct {
	Identities      service.IdentityRepository
	TeacherRequests service.TeacherRequestRepository
	Courses         service.CourseRepository
	Videos          service.VideoRepository
	Entitlements    service.EntitlementRepository
	Questions       service.QuestionRepository
}

// PostgresStores создаёт pgx репозитории
func PostgresStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Identities:      repository.NewIdentityRepository(pool),
		TeacherRequests: repository.NewTeacherRequestRepository(pool),
		Courses:         repository.NewCourseRepository(pool),
		Videos:          repository.NewVideoRepository(pool),
		Entitlements:    repository.NewEntitlementRepository(pool),
		Questions:       repository.NewQuestionRepository(pool),
	}
}

// MemoryStores создаёт репозитории в памяти
func MemoryStores(db *memory.DB) Stores {
	return Stores{
		Identities:      memory.NewIdentityRepository(db),
		TeacherRequests: memory.NewTeacherRequestRepository(db),
		Courses:         memory.NewCourseRepository(db),
		Videos:          memory.NewVideoRepository(db),
		Entitlements:    memory.NewEntitlementRepository(db),
		Questions:       memory.NewQuestionRepository(db),
	}
}

func NewEngine(stores Stores, opts Options, logger *zap.Logger) *Engine {
	if opts.Policy == nil {
		opts.Policy = service.RolePolicy{}
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}

	entitlements := service.NewEntitlementService(
		stores.Courses,
		stores.Entitlements,
		opts.Policy,
		opts.Metrics,
		logger.Named("entitlements"),
	)

	return &Engine{
		Identity: service.NewIdentityService(stores.Identities, opts.BcryptCost, logger.Named("identity")),
		Approval: service.NewApprovalService(
			stores.Identities,
			stores.TeacherRequests,
			stores.Courses,
			opts.Policy,
			opts.Notifier,
			opts.Metrics,
			logger.Named("approval"),
		),
		Entitlements: entitlements,
		Content: service.NewContentService(
			stores.Courses,
			stores.Videos,
			stores.TeacherRequests,
			entitlements,
			opts.Policy,
			logger.Named("content"),
		),
		Quiz: service.NewQuizService(stores.Questions, opts.Policy, opts.Metrics, logger.Named("quiz")),
	}
}

package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Freeeeeet/tutor_market/internal/metrics"
	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	scoreModeGlobal  = "global"
	scoreModeAttempt = "attempt"
)

type QuizService struct {
	questions QuestionRepository
	policy    Policy
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

func NewQuizService(questions QuestionRepository, policy Policy, m *metrics.Metrics, logger *zap.Logger) *QuizService {
	return &QuizService{
		questions: questions,
		policy:    policy,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// AddQuestion сохраняет вопрос; правильным помечается ответ с индексом CorrectIndex
func (s *QuizService) AddQuestion(ctx context.Context, caller *model.Identity, in model.NewQuestion) (*model.Question, error) {
	if err := s.policy.Authorize(caller, ActionAddQuestion, Target{}); err != nil {
		return nil, err
	}

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	if in.CorrectIndex >= len(in.Answers) {
		return nil, newValidationError("invalid input", FieldError{
			Field:   "correct_index",
			Message: fmt.Sprintf("out of range [0, %d)", len(in.Answers)),
		})
	}

	question := &model.Question{
		Text:       in.Text,
		CourseName: in.CourseName,
		Answers:    make([]*model.Answer, 0, len(in.Answers)),
	}
	for i, text := range in.Answers {
		question.Answers = append(question.Answers, &model.Answer{
			Text:       text,
			IsCorrect:  i == in.CorrectIndex,
			CourseName: in.CourseName,
		})
	}

	if err := s.questions.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	s.logger.Info("Question added",
		zap.Int64("question_id", question.ID),
		zap.Int("answers", len(question.Answers)),
	)

	return question, nil
}

// ListQuestions получает все вопросы с ответами в порядке создания
func (s *QuizService) ListQuestions(ctx context.Context) ([]*model.Question, error) {
	questions, err := s.questions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if questions == nil {
		questions = []*model.Question{}
	}
	return questions, nil
}

// Score считает отмеченные правильные ответы по ВСЕМ вопросам в базе.
// Результат не ограничен одним набором вопросов; для этого есть ScoreAttempt
func (s *QuizService) Score(ctx context.Context, submission map[string]string) (int, error) {
	score, err := s.questions.CountCorrect(ctx, checkedAnswerIDs(submission), nil)
	if err != nil {
		return 0, fmt.Errorf("score submission: %w", err)
	}

	s.metrics.QuizScored(scoreModeGlobal, score)

	return score, nil
}

// StartAttempt фиксирует текущий список вопросов для последующего ScoreAttempt
func (s *QuizService) StartAttempt(ctx context.Context) (*model.QuizAttempt, error) {
	questions, err := s.questions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	attempt := &model.QuizAttempt{
		ID:          uuid.New(),
		QuestionIDs: make([]int64, 0, len(questions)),
		StartedAt:   s.now().UTC(),
	}
	for _, q := range questions {
		attempt.QuestionIDs = append(attempt.QuestionIDs, q.ID)
	}

	return attempt, nil
}

// ScoreAttempt считает правильные ответы только среди вопросов попытки
func (s *QuizService) ScoreAttempt(ctx context.Context, attempt *model.QuizAttempt, submission map[string]string) (int, error) {
	if attempt == nil {
		return 0, newValidationError("invalid input", FieldError{Field: "attempt", Message: "required"})
	}

	questionIDs := attempt.QuestionIDs
	if questionIDs == nil {
		questionIDs = []int64{}
	}

	score, err := s.questions.CountCorrect(ctx, checkedAnswerIDs(submission), questionIDs)
	if err != nil {
		return 0, fmt.Errorf("score attempt: %w", err)
	}

	s.metrics.QuizScored(scoreModeAttempt, score)

	s.logger.Info("Quiz attempt scored",
		zap.String("attempt_id", attempt.ID.String()),
		zap.Int("score", score),
	)

	return score, nil
}

// checkedAnswerIDs извлекает id ответов со значением "on".
// Ключ должен быть десятичным id ровно в том виде, как его печатает FormatInt ("02", "+2" не считаются)
func checkedAnswerIDs(submission map[string]string) []int64 {
	ids := make([]int64, 0, len(submission))
	for key, value := range submission {
		if value != model.SubmissionChecked {
			continue
		}
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || strconv.FormatInt(id, 10) != key {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuestionRepository struct {
	*base.Repository
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет вопрос вместе с ответами в одной транзакции
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO questions (question_text, course_name)
			VALUES ($1, $2)
			RETURNING id, created_at
		`, q.Text, q.CourseName).Scan(&q.ID, &q.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert question: %w", err)
		}

		for _, a := range q.Answers {
			a.QuestionID = q.ID
			err := tx.QueryRow(ctx, `
				INSERT INTO answers (question_id, answer_text, is_correct, course_name)
				VALUES ($1, $2, $3, $4)
				RETURNING id
			`, a.QuestionID, a.Text, a.IsCorrect, a.CourseName).Scan(&a.ID)
			if err != nil {
				return fmt.Errorf("insert answer: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("create question: %w", err)
	}

	return nil
}

// ListAll получает все вопросы с ответами в порядке создания.
// Оба запроса читают один снимок, поэтому параллельный Create не даёт вопрос без ответов
func (r *QuestionRepository) ListAll(ctx context.Context) ([]*model.Question, error) {
	var questions []*model.Question

	err := r.InTxWithOptions(ctx, base.SnapshotRead, func(tx pgx.Tx) error {
		var err error
		questions, err = listQuestions(ctx, tx)
		if err != nil {
			return err
		}
		return attachAnswers(ctx, tx, questions)
	})
	if err != nil {
		return nil, err
	}

	return questions, nil
}

func listQuestions(ctx context.Context, q base.Querier) ([]*model.Question, error) {
	rows, err := q.Query(ctx, `
		SELECT id, question_text, course_name, created_at
		FROM questions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []*model.Question
	for rows.Next() {
		question := &model.Question{Answers: []*model.Answer{}}
		if err := rows.Scan(&question.ID, &question.Text, &question.CourseName, &question.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return questions, nil
}

func attachAnswers(ctx context.Context, q base.Querier, questions []*model.Question) error {
	byID := make(map[int64]*model.Question, len(questions))
	for _, question := range questions {
		byID[question.ID] = question
	}

	rows, err := q.Query(ctx, `
		SELECT id, question_id, answer_text, is_correct, course_name
		FROM answers
		ORDER BY question_id, id
	`)
	if err != nil {
		return fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Text, &a.IsCorrect, &a.CourseName); err != nil {
			return fmt.Errorf("scan answer: %w", err)
		}
		if question, ok := byID[a.QuestionID]; ok {
			question.Answers = append(question.Answers, &a)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate answers: %w", err)
	}

	return nil
}

// CountCorrect считает правильные ответы среди answerIDs.
// Если questionIDs == nil, учитываются ответы всех вопросов
func (r *QuestionRepository) CountCorrect(ctx context.Context, answerIDs, questionIDs []int64) (int, error) {
	if len(answerIDs) == 0 {
		return 0, nil
	}

	query := `
		SELECT COUNT(*)
		FROM answers
		WHERE is_correct AND id = ANY($1)
	`
	args := []any{answerIDs}
	if questionIDs != nil {
		query += ` AND question_id = ANY($2)`
		args = append(args, questionIDs)
	}

	var count int
	if err := r.Pool().QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count correct answers: %w", err)
	}

	return count, nil
}

package memory

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/model"
)

type QuestionRepository struct {
	db *DB
}

func NewQuestionRepository(db *DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) Create(_ context.Context, q *model.Question) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	q.ID = r.db.nextID("questions")
	q.CreatedAt = r.db.now()
	for _, a := range q.Answers {
		a.ID = r.db.nextID("answers")
		a.QuestionID = q.ID
	}
	r.db.questions = append(r.db.questions, cloneQuestion(q))
	return nil
}

func (r *QuestionRepository) ListAll(_ context.Context) ([]*model.Question, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	questions := make([]*model.Question, 0, len(r.db.questions))
	for _, q := range r.db.questions {
		questions = append(questions, cloneQuestion(q))
	}
	return questions, nil
}

func (r *QuestionRepository) CountCorrect(_ context.Context, answerIDs, questionIDs []int64) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	submitted := toSet(answerIDs)
	var scope map[int64]struct{}
	if questionIDs != nil {
		scope = toSet(questionIDs)
	}

	count := 0
	for _, q := range r.db.questions {
		if scope != nil {
			if _, ok := scope[q.ID]; !ok {
				continue
			}
		}
		for _, a := range q.Answers {
			if _, ok := submitted[a.ID]; ok && a.IsCorrect {
				count++
			}
		}
	}
	return count, nil
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

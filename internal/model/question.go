package model

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionChecked is the value a checked answer carries in a quiz submission.
const SubmissionChecked = "on"

type Question struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	CourseName string    `json:"course_name"`
	Answers    []*Answer `json:"answers"`
	CreatedAt  time.Time `json:"created_at"`
}

type Answer struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
	CourseName string `json:"course_name"`
}

// NewQuestion is quiz authoring input. CorrectIndex points into Answers.
type NewQuestion struct {
	Text         string   `json:"text" validate:"max=255"`
	CourseName   string   `json:"course_name" validate:"max=255"`
	Answers      []string `json:"answers" validate:"required,min=1,dive,max=255"`
	CorrectIndex int      `json:"correct_index" validate:"gte=0"`
}

// QuizAttempt pins the question set a submission is scored against
type QuizAttempt struct {
	ID          uuid.UUID `json:"id"`
	QuestionIDs []int64   `json:"question_ids"`
	StartedAt   time.Time `json:"started_at"`
}

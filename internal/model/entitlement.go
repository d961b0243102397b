package model

import "time"

// Entitlement is an append-only purchase record.
// Course and learner fields are snapshots taken at purchase time; access checks use CourseID and LearnerID.
type Entitlement struct {
	ID           int64     `json:"id"`
	CourseID     int64     `json:"course_id"`
	CourseName   string    `json:"course_name"`
	TeacherName  string    `json:"teacher_name"`
	TeacherPhone string    `json:"teacher_phone"`
	LearnerID    int64     `json:"learner_id"`
	LearnerName  string    `json:"learner_name"`
	LearnerPhone string    `json:"learner_phone"`
	CreatedAt    time.Time `json:"created_at"`
}

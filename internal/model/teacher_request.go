package model

import "time"

// TeacherRequest is a learner's application to become a teacher
type TeacherRequest struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	SampleRef  string     `json:"sample_ref"`
	Status     Status     `json:"status"` // 'pending', 'approved'
	CreatedAt  time.Time  `json:"created_at"`
	ApprovedAt *time.Time `json:"approved_at"`
}

// IsPending checks if request is pending
func (r *TeacherRequest) IsPending() bool {
	return r.Status == StatusPending
}

// IsApproved checks if request is approved
func (r *TeacherRequest) IsApproved() bool {
	return r.Status == StatusApproved
}

// NewTeacherRequest holds the fields of an application to teach
type NewTeacherRequest struct {
	Phone     string `json:"phone" validate:"required,max=100"`
	SampleRef string `json:"sample_ref" validate:"max=200"`
}

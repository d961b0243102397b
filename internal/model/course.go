package model

import "time"

type Course struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	TeacherName  string    `json:"teacher_name"`
	TeacherPhone string    `json:"teacher_phone"`
	Price        int64     `json:"price"`
	Rating       string    `json:"rating"`
	SampleRef    string    `json:"sample_ref"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsApproved reports whether the course is publicly listed
func (c *Course) IsApproved() bool {
	return c.Status == StatusApproved
}

// NewCourse holds the fields of a course publication request
type NewCourse struct {
	Name         string `json:"name" validate:"required,max=1000"`
	TeacherName  string `json:"teacher_name" validate:"required,max=100"`
	TeacherPhone string `json:"teacher_phone" validate:"required,max=100"`
	Price        int64  `json:"price" validate:"gte=0"`
	Rating       string `json:"rating" validate:"max=100"`
	SampleRef    string `json:"sample_ref" validate:"max=200"`
}

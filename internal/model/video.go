package model

import "time"

type Video struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Grade        int       `json:"grade"`
	TeacherName  string    `json:"teacher_name"`
	TeacherPhone string    `json:"teacher_phone"`
	CourseName   string    `json:"course_name"`
	URL          string    `json:"url"`
	Checked      bool      `json:"checked"`
	TeacherID    *int64    `json:"teacher_id"` // approved TeacherRequest of the author, if any
	CreatedAt    time.Time `json:"created_at"`
}

type NewVideo struct {
	Name         string `json:"name" validate:"required,max=1000"`
	Description  string `json:"description" validate:"max=100"`
	Grade        int    `json:"grade" validate:"gte=0"`
	TeacherName  string `json:"teacher_name" validate:"required,max=100"`
	TeacherPhone string `json:"teacher_phone" validate:"required,max=100"`
	CourseName   string `json:"course_name" validate:"required,max=100"`
	URL          string `json:"url" validate:"required,max=200"`
	Checked      bool   `json:"checked"`
}

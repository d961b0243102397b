package memory

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/model"
)

type CourseRepository struct {
	db *DB
}

func NewCourseRepository(db *DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(_ context.Context, course *model.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	course.ID = r.db.nextID("courses")
	course.CreatedAt = r.db.now()
	r.db.courses = append(r.db.courses, cloneCourse(course))
	return nil
}

func (r *CourseRepository) GetByID(_ context.Context, id int64) (*model.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if course := r.db.course(id); course != nil {
		return cloneCourse(course), nil
	}
	return nil, nil
}

func (r *CourseRepository) ListByStatus(_ context.Context, status model.Status) ([]*model.Course, error) {
	return r.filter(func(c *model.Course) bool { return c.Status == status }), nil
}

func (r *CourseRepository) ListByTeacherPhone(_ context.Context, phone string) ([]*model.Course, error) {
	return r.filter(func(c *model.Course) bool { return c.TeacherPhone == phone }), nil
}

func (r *CourseRepository) UpdateStatus(_ context.Context, id int64, from, to model.Status) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	course := r.db.course(id)
	if course == nil || course.Status != from {
		return false, nil
	}
	course.Status = to
	return true, nil
}

func (r *CourseRepository) filter(keep func(*model.Course) bool) []*model.Course {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var courses []*model.Course
	for _, course := range r.db.courses {
		if keep(course) {
			courses = append(courses, cloneCourse(course))
		}
	}
	return courses
}

// course must be called with mu held
func (db *DB) course(id int64) *model.Course {
	for _, course := range db.courses {
		if course.ID == id {
			return course
		}
	}
	return nil
}

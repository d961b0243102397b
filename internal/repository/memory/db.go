// Package memory is an in-process store implementing the service repository contracts.
// All tables share one lock, so multi-record operations such as approving a teacher
// request are atomic.
package memory

import (
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_market/internal/model"
)

type DB struct {
	mu  sync.RWMutex
	now func() time.Time

	identities      []*model.Identity
	teacherRequests []*model.TeacherRequest
	courses         []*model.Course
	videos          []*model.Video
	entitlements    []*model.Entitlement
	questions       []*model.Question

	seq map[string]int64
}

func Open() *DB {
	return &DB{
		now: time.Now,
		seq: make(map[string]int64),
	}
}

// nextID must be called with mu held
func (db *DB) nextID(table string) int64 {
	db.seq[table]++
	return db.seq[table]
}

func cloneIdentity(i *model.Identity) *model.Identity {
	c := *i
	c.PasswordHash = append([]byte(nil), i.PasswordHash...)
	return &c
}

func cloneTeacherRequest(r *model.TeacherRequest) *model.TeacherRequest {
	c := *r
	if r.ApprovedAt != nil {
		t := *r.ApprovedAt
		c.ApprovedAt = &t
	}
	return &c
}

func cloneCourse(c *model.Course) *model.Course {
	cc := *c
	return &cc
}

func cloneVideo(v *model.Video) *model.Video {
	c := *v
	if v.TeacherID != nil {
		id := *v.TeacherID
		c.TeacherID = &id
	}
	return &c
}

func cloneEntitlement(e *model.Entitlement) *model.Entitlement {
	c := *e
	return &c
}

func cloneQuestion(q *model.Question) *model.Question {
	c := *q
	c.Answers = make([]*model.Answer, 0, len(q.Answers))
	for _, a := range q.Answers {
		ac := *a
		c.Answers = append(c.Answers, &ac)
	}
	return &c
}

package memory

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/model"
)

type VideoRepository struct {
	db *DB
}

func NewVideoRepository(db *DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(_ context.Context, video *model.Video) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	video.ID = r.db.nextID("videos")
	video.CreatedAt = r.db.now()
	r.db.videos = append(r.db.videos, cloneVideo(video))
	return nil
}

func (r *VideoRepository) GetByID(_ context.Context, id int64) (*model.Video, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, video := range r.db.videos {
		if video.ID == id {
			return cloneVideo(video), nil
		}
	}
	return nil, nil
}

func (r *VideoRepository) ListByCourse(_ context.Context, courseName, teacherName string) ([]*model.Video, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var videos []*model.Video
	for _, video := range r.db.videos {
		if video.CourseName == courseName && video.TeacherName == teacherName {
			videos = append(videos, cloneVideo(video))
		}
	}
	return videos, nil
}

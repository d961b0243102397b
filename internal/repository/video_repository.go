package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const videoColumns = `id, name, description, grade, teacher_name, teacher_phone, course_name, url, is_checked, teacher_id, created_at`

type VideoRepository struct {
	*base.Repository
}

func NewVideoRepository(pool *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{Repository: base.NewRepository(pool)}
}

func scanVideo(row pgx.Row) (*model.Video, error) {
	var video model.Video
	err := row.Scan(
		&video.ID,
		&video.Name,
		&video.Description,
		&video.Grade,
		&video.TeacherName,
		&video.TeacherPhone,
		&video.CourseName,
		&video.URL,
		&video.Checked,
		&video.TeacherID,
		&video.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Create создаёт видео
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	query := `
		INSERT INTO videos (name, description, grade, teacher_name, teacher_phone, course_name, url, is_checked, teacher_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.Pool().QueryRow(
		ctx, query,
		video.Name,
		video.Description,
		video.Grade,
		video.TeacherName,
		video.TeacherPhone,
		video.CourseName,
		video.URL,
		video.Checked,
		video.TeacherID,
	).Scan(&video.ID, &video.CreatedAt)

	if err != nil {
		return fmt.Errorf("create video: %w", err)
	}

	return nil
}

// GetByID получает видео по ID
func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	video, err := scanVideo(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get video: %w", err)
	}

	return video, nil
}

// ListByCourse получает видео курса по названию курса и имени учителя
func (r *VideoRepository) ListByCourse(ctx context.Context, courseName, teacherName string) ([]*model.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE course_name = $1 AND teacher_name = $2
		ORDER BY id
	`

	rows, err := r.Pool().Query(ctx, query, courseName, teacherName)
	if err != nil {
		return nil, fmt.Errorf("list course videos: %w", err)
	}
	defer rows.Close()

	var videos []*model.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}

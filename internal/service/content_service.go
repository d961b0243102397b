package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"go.uber.org/zap"
)

type ContentService struct {
	courses      CourseRepository
	videos       VideoRepository
	requests     TeacherRequestRepository
	entitlements *EntitlementService
	policy       Policy
	logger       *zap.Logger
}

func NewContentService(
	courses CourseRepository,
	videos VideoRepository,
	requests TeacherRequestRepository,
	entitlements *EntitlementService,
	policy Policy,
	logger *zap.Logger,
) *ContentService {
	return &ContentService{
		courses:      courses,
		videos:       videos,
		requests:     requests,
		entitlements: entitlements,
		policy:       policy,
		logger:       logger,
	}
}

// CreateVideo добавляет видео учителя
func (s *ContentService) CreateVideo(ctx context.Context, caller *model.Identity, in model.NewVideo) (*model.Video, error) {
	if err := s.policy.Authorize(caller, ActionCreateVideo, Target{Phone: in.TeacherPhone}); err != nil {
		return nil, err
	}

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	video := &model.Video{
		Name:         in.Name,
		Description:  in.Description,
		Grade:        in.Grade,
		TeacherName:  in.TeacherName,
		TeacherPhone: in.TeacherPhone,
		CourseName:   in.CourseName,
		URL:          in.URL,
		Checked:      in.Checked,
	}

	// Привязываем к одобренной заявке учителя, если она есть
	req, err := s.requests.FindApprovedByPhone(ctx, in.TeacherPhone)
	if err != nil {
		return nil, fmt.Errorf("find teacher: %w", err)
	}
	if req != nil {
		video.TeacherID = &req.ID
	}

	if err := s.videos.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}

	s.logger.Info("Video created",
		zap.Int64("video_id", video.ID),
		zap.String("course_name", video.CourseName),
		zap.String("teacher_phone", video.TeacherPhone),
	)

	return video, nil
}

// GetVideo получает видео по ID
func (s *ContentService) GetVideo(ctx context.Context, videoID int64) (*model.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}

	if video == nil {
		return nil, fmt.Errorf("video %d: %w", videoID, ErrNotFound)
	}

	return video, nil
}

// VideosVisibleFor возвращает видео курса, если вызывающий купил этот курс.
// Без покупки возвращается пустой список, а не ошибка
func (s *ContentService) VideosVisibleFor(ctx context.Context, caller *model.Identity, courseID int64) ([]*model.Video, error) {
	if err := s.policy.Authorize(caller, ActionViewVideos, Target{ID: courseID}); err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, deny(ActionViewVideos, "anonymous caller")
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	if course == nil {
		return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
	}

	entitled, err := s.entitlements.HasEntitlement(ctx, caller.ID, course.ID)
	if err != nil {
		return nil, err
	}

	if !entitled {
		return []*model.Video{}, nil
	}

	videos, err := s.videos.ListByCourse(ctx, course.Name, course.TeacherName)
	if err != nil {
		return nil, fmt.Errorf("list course videos: %w", err)
	}

	if videos == nil {
		videos = []*model.Video{}
	}

	return videos, nil
}

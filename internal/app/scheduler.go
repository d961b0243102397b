package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/notify"
	"github.com/Freeeeeet/tutor_market/internal/service"
	"go.uber.org/zap"
)

// Scheduler периодически напоминает администратору о заявках на модерации
type Scheduler struct {
	approval *service.ApprovalService
	admin    *model.Identity
	notifier notify.Notifier
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewScheduler создаёт новый планировщик. admin используется как вызывающий для чтения очередей
func NewScheduler(
	approval *service.ApprovalService,
	admin *model.Identity,
	notifier notify.Notifier,
	interval time.Duration,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		approval: approval,
		admin:    admin,
		notifier: notifier,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	// time.NewTicker паникует на неположительном интервале
	if s.interval <= 0 {
		s.logger.Warn("Reminder interval is not positive, scheduler disabled", zap.Duration("interval", s.interval))
		return
	}

	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	go s.runReminderTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

func (s *Scheduler) runReminderTask(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.RemindPending(ctx); err != nil {
				s.logger.Error("Failed to send pending reminder", zap.Error(err))
			}
		case <-s.stopChan:
			s.logger.Info("Reminder task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Reminder task cancelled")
			return
		}
	}
}

// RemindPending отправляет сводку pending заявок, если они есть
func (s *Scheduler) RemindPending(ctx context.Context) error {
	requests, err := s.approval.ListPendingTeacherRequests(ctx, s.admin)
	if err != nil {
		return fmt.Errorf("list pending teacher requests: %w", err)
	}

	courses, err := s.approval.ListPendingCourses(ctx, s.admin)
	if err != nil {
		return fmt.Errorf("list pending courses: %w", err)
	}

	if len(requests) == 0 && len(courses) == 0 {
		return nil
	}

	text := fmt.Sprintf("⏳ На модерации: заявок учителей %d, курсов %d", len(requests), len(courses))
	if err := s.notifier.NotifyAdmin(ctx, text); err != nil {
		return err
	}

	s.logger.Info("Pending reminder sent",
		zap.Int("teacher_requests", len(requests)),
		zap.Int("courses", len(courses)),
	)

	return nil
}

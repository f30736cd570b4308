package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_response_system/internal/config"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/notifier"
	"github.com/shenikar/emergency_response_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// ReportRepository определяет контракт для работы с хранилищем отчетов.
// ApplyTransition обязан сериализовать чтение-изменение-дозапись по id
// отчета: два конкурентных действия над одним отчетом оба дописывают
// журнал, не затирая дозапись друг друга.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ApplyTransition(ctx context.Context, id uuid.UUID, apply func(*models.Report) (*models.ResponderAction, error)) (*models.Report, error)
	ListReports(ctx context.Context, page, pageSize int) ([]*models.Report, error)
	GetReporterStats(ctx context.Context, minutes int) (int, error)
	GetReportFromCache(ctx context.Context, id uuid.UUID) (*models.Report, error)
	SetReportCache(ctx context.Context, report *models.Report) error
	InvalidateReportCache(ctx context.Context, id uuid.UUID) error
}

// TransitionNotifier определяет контракт маршрутизатора уведомлений.
// Вызывается только после долговременной записи перехода; сбой доставки
// никогда не откатывает состояние отчета.
type TransitionNotifier interface {
	Route(event notifier.TransitionEvent) notifier.DeliveryReport
	Announce(message string, at time.Time) notifier.DeliveryReport
}

// ReportService определяет контракт бизнес-логики координации отчетов
type ReportService interface {
	CreateReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ListReports(ctx context.Context, page, pageSize int) ([]*models.Report, error)
	GetStats(ctx context.Context) (int, error)
	MarkOnTheWay(ctx context.Context, id uuid.UUID, responder models.ActorIdentity) (*models.Report, notifier.DeliveryReport, error)
	MarkArrived(ctx context.Context, id uuid.UUID, responder models.ActorIdentity) (*models.Report, notifier.DeliveryReport, error)
	MarkResponded(ctx context.Context, id uuid.UUID, responder models.ActorIdentity) (*models.Report, notifier.DeliveryReport, error)
	Decline(ctx context.Context, id uuid.UUID, responder models.ActorIdentity) (*models.Report, notifier.DeliveryReport, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) (*models.Report, notifier.DeliveryReport, error)
	RequestFollowUp(ctx context.Context, id uuid.UUID) (*models.Report, notifier.DeliveryReport, error)
	Announce(ctx context.Context, message string) (notifier.DeliveryReport, error)
}

type reportService struct {
	repo      ReportRepository
	notifier  TransitionNotifier
	publisher webhook.Publisher
	logger    *logrus.Logger
	cfg       *config.Config
}

func NewReportService(repo ReportRepository, transitionNotifier TransitionNotifier, publisher webhook.Publisher, logger *logrus.Logger, cfg *config.Config) ReportService {
	return &reportService{
		repo:      repo,
		notifier:  transitionNotifier,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
}

// CreateReport сохраняет новый отчет об экстренной ситуации со статусом pending
func (s *reportService) CreateReport(ctx context.Context, report *models.Report) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "report",
		"method":   "CreateReport",
		"type":     report.Type,
		"username": report.Username,
	})
	log.Info("Attempting to create a new report")

	report.Status = models.StatusPending
	if err := s.repo.Create(ctx, report); err != nil {
		log.WithError(err).Error("Failed to create report in repository")
		return fmt.Errorf("service: could not create report: %w", err)
	}

	log.WithField("report_id", report.ID).Info("Report created successfully")
	return nil
}

// GetReport получает отчет по ID, сначала пробуя кеш
func (s *reportService) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "GetReport",
		"report_id": id,
	})
	log.Info("Fetching report by ID")

	cached, err := s.repo.GetReportFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read report from cache")
	}
	if cached != nil {
		return cached, nil
	}

	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to get report from repository")
		return nil, fmt.Errorf("service: could not get report: %w", err)
	}

	if err := s.repo.SetReportCache(ctx, report); err != nil {
		log.WithError(err).Warn("Failed to cache report")
	}

	log.Info("Report fetched successfully")
	return report, nil
}

// ListReports возвращает список отчетов с пагинацией, новые первыми
func (s *reportService) ListReports(ctx context.Context, page, pageSize int) ([]*models.Report, error) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "ListReports",
		"page":      page,
		"page_size": pageSize,
	})
	log.Info("Listing reports")

	reports, err := s.repo.ListReports(ctx, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list reports from repository")
		return nil, fmt.Errorf("service: could not list reports: %w", err)
	}

	log.WithField("count", len(reports)).Info("Reports listed successfully")
	return reports, nil
}

// GetStats возвращает количество уникальных заявителей за окно статистики
func (s *reportService) GetStats(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "GetStats",
	})

	count, err := s.repo.GetReporterStats(ctx, s.cfg.StatsTimeWindowMinutes)
	if err != nil {
		log.WithError(err).Error("Failed to get reporter stats from repository")
		return 0, fmt.Errorf("service: could not get stats: %w", err)
	}
	return count, nil
}

// MarkOnTheWay фиксирует, что спасатель выехал. Конкурентные вызовы от
// разных спасателей принимаются оба: эксклюзивной "заявки" на отчет нет,
// система рассчитана на перекрывающиеся выезды.
func (s *reportService) MarkOnTheWay(ctx context.Context, id uuid.UUID, responder models.ActorIdentity) (*models.Report, notifier.DeliveryReport, error) {
	return s.applyAndNotify(ctx, id, models.TransitionOnTheWay, responder, "")
}

// MarkArrived фиксирует прибытие спасателя; статус отчета не меняется
func (s *reportService) MarkArrived(ctx context.Context, id uuid.UUID, responder models.ActorIdentity) (*models.Report, notifier.DeliveryReport, error) {
	return s.applyAndNotify(ctx, id, models.TransitionArrived, responder, "")
}

// MarkResponded фиксирует, что на отчет отреагировали
func (s *reportService) MarkResponded(ctx context.Context, id uuid.UUID, responder models.ActorIdentity) (*models.Report, notifier.DeliveryReport, error) {
	return s.applyAndNotify(ctx, id, models.TransitionResponded, responder, "")
}

// Decline фиксирует отказ спасателя от отчета
func (s *reportService) Decline(ctx context.Context, id uuid.UUID, responder models.ActorIdentity) (*models.Report, notifier.DeliveryReport, error) {
	return s.applyAndNotify(ctx, id, models.TransitionDeclined, responder, "")
}

// Cancel отменяет отчет с указанием причины. Уведомление уходит всем
// привязанным сессиям без исключения себя.
func (s *reportService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*models.Report, notifier.DeliveryReport, error) {
	return s.applyAndNotify(ctx, id, models.TransitionCancelled, models.ActorIdentity{}, reason)
}

// RequestFollowUp состояние не меняет: читает отчет и рассылает запрос
// только спасателям "в пути" без последующего отказа
func (s *reportService) RequestFollowUp(ctx context.Context, id uuid.UUID) (*models.Report, notifier.DeliveryReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "RequestFollowUp",
		"report_id": id,
	})

	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted follow-up for a missing report")
		return nil, notifier.DeliveryReport{}, fmt.Errorf("service: could not get report for follow-up: %w", err)
	}

	delivery := s.notifier.Route(notifier.TransitionEvent{
		Kind:   models.TransitionFollowUp,
		Report: report,
		Time:   time.Now().UTC(),
	})
	log.WithField("broadcast_attempted", delivery.BroadcastAttempted).Info("Follow-up request routed")
	return report, delivery, nil
}

// Announce рассылает публичное объявление всем подключенным
func (s *reportService) Announce(ctx context.Context, message string) (notifier.DeliveryReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "Announce",
	})
	log.Info("Broadcasting public announcement")

	delivery := s.notifier.Announce(message, time.Now().UTC())
	return delivery, nil
}

// applyAndNotify выполняет атомарный переход в хранилище и после фиксации
// передает результат маршрутизатору и очереди вебхуков. Доставка строго
// best-effort: любые ее сбои состояние отчета не трогают.
func (s *reportService) applyAndNotify(ctx context.Context, id uuid.UUID, kind models.TransitionKind, actor models.ActorIdentity, reason string) (*models.Report, notifier.DeliveryReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "applyAndNotify",
		"report_id": id,
		"kind":      kind,
	})

	now := time.Now().UTC()
	updated, err := s.repo.ApplyTransition(ctx, id, func(report *models.Report) (*models.ResponderAction, error) {
		return ApplyTransition(report, kind, actor, reason, now), nil
	})
	if err != nil {
		if errors.Is(err, models.ErrReportNotFound) {
			log.Warn("Attempted transition on a missing report")
		} else {
			log.WithError(err).Error("Failed to apply transition in repository")
		}
		return nil, notifier.DeliveryReport{}, fmt.Errorf("service: could not apply %s transition: %w", kind, err)
	}

	if err := s.repo.InvalidateReportCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate report cache")
	}

	// Состояние зафиксировано, блокировки отпущены - можно доставлять
	delivery := s.notifier.Route(notifier.TransitionEvent{
		Kind:   kind,
		Report: updated,
		Actor:  actor,
		Time:   now,
	})

	if err := s.publisher.Publish(ctx, webhook.ReportEvent{
		ReportID:      updated.ID,
		Kind:          kind,
		Type:          updated.Type,
		Status:        updated.Status,
		ResponderName: actor.DisplayName,
		ResidentName:  updated.ResidentName(),
		Timestamp:     now,
	}); err != nil {
		log.WithError(err).Warn("Failed to publish report event")
	}

	log.WithField("status", updated.Status).Info("Transition applied successfully")
	return updated, delivery, nil
}

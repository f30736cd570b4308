package service

import (
	"time"

	"github.com/shenikar/emergency_response_system/internal/models"
)

const defaultCancellationReason = "No reason provided"

// ApplyTransition - чистая машина состояний жизненного цикла отчета.
// Применяет переход к загруженной записи и возвращает запись журнала для
// дозаписи (nil, если переход журнал не пополняет). Предусловий, кроме
// существования отчета, нет: система предпочитает доступность строгому
// протоколу, поэтому статус перезаписывается по принципу "последний
// пишущий выигрывает", а журнал хранит каждое поданное действие.
func ApplyTransition(report *models.Report, kind models.TransitionKind, actor models.ActorIdentity, reason string, now time.Time) *models.ResponderAction {
	switch kind {
	case models.TransitionOnTheWay:
		report.Status = models.StatusOnTheWay
		return newAction(report, actor, models.ActionOnTheWay, now)

	case models.TransitionArrived:
		// Прибытие статус не меняет: несколько спасателей прибывают
		// независимо, фиксируется только запись в журнале
		return newAction(report, actor, models.ActionArrived, now)

	case models.TransitionResponded:
		report.Status = models.StatusResponded
		markResolved(report, now)
		return newAction(report, actor, models.ActionResponded, now)

	case models.TransitionDeclined:
		report.Status = models.StatusDeclined
		markResolved(report, now)
		return newAction(report, actor, models.ActionDeclined, now)

	case models.TransitionCancelled:
		report.Status = models.StatusCancelled
		if reason == "" {
			reason = defaultCancellationReason
		}
		report.CancellationReason = reason
		if report.CancellationTime == nil {
			cancelledAt := now
			report.CancellationTime = &cancelledAt
		}
		return nil
	}

	// follow-up и неизвестные виды состояние не меняют
	return nil
}

// markResolved устанавливает resolvedAt не более одного раза
func markResolved(report *models.Report, now time.Time) {
	if report.ResolvedAt == nil {
		resolvedAt := now
		report.ResolvedAt = &resolvedAt
	}
}

func newAction(report *models.Report, actor models.ActorIdentity, kind models.ActionKind, now time.Time) *models.ResponderAction {
	return &models.ResponderAction{
		ReportID:    report.ID,
		ResponderID: actor.ID,
		FullName:    actor.DisplayName,
		Action:      kind,
		Timestamp:   now,
	}
}

// Package notifier вычисляет множество получателей для каждого перехода
// жизненного цикла отчета и рассылает события по живым сессиям.
package notifier

import (
	"time"

	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/registry"
	"github.com/sirupsen/logrus"
)

// Имена событий исходного протокола обмена
const (
	EventNotifyResident    = "notify-resident"
	EventResponded         = "responded"
	EventArrived           = "arrived"
	EventDeclined          = "declined"
	EventNotifyOnTheWay    = "notify-on-the-way"
	EventNotifyResponded   = "notify-responded"
	EventNotifyArrived     = "notify-arrived"
	EventResponderDeclined = "responder-declined"
	EventReportCancelled   = "report-cancelled"
	EventResidentFollowUp  = "resident-followup"
	EventAnnouncement      = "public-announcement"
)

// Sender - отправка одного кадра по непрозрачному дескриптору сессии.
// Реализуется транспортным слоем (websocket-хаб).
type Sender interface {
	Send(sessionID, event string, payload any) error
}

// TransitionEvent - результат зафиксированного перехода, передаваемый
// маршрутизатору после записи состояния
type TransitionEvent struct {
	Kind   models.TransitionKind
	Report *models.Report
	Actor  models.ActorIdentity
	Time   time.Time
}

// DeliveryReport фиксирует для наблюдаемости, сколько отправок было
// предпринято и сколько пропущено из-за отсутствия живой привязки
type DeliveryReport struct {
	TargetedAttempted  int `json:"targeted_attempted"`
	TargetedSkipped    int `json:"targeted_skipped"`
	BroadcastAttempted int `json:"broadcast_attempted"`
	BroadcastSkipped   int `json:"broadcast_skipped"`
}

// EventPayload - полезная нагрузка уведомления. Кодировку кадра целиком
// владеет транспорт, здесь только именованные поля.
type EventPayload struct {
	ReportID           string `json:"reportId,omitempty"`
	Type               string `json:"type"`
	ResponderName      string `json:"responderName,omitempty"`
	ResidentName       string `json:"residentName"`
	CancellationReason string `json:"cancellationReason,omitempty"`
	ActiveResponders   int    `json:"activeResponders,omitempty"`
	Time               string `json:"time"`
}

// AnnouncementPayload - полезная нагрузка публичного объявления
type AnnouncementPayload struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Router считает fan-out по реестру соединений и доставляет события
// по принципу "отправил и забыл": без повторов, без блокировки пути
// фиксации перехода, сбой одного получателя не прерывает остальных.
type Router struct {
	registry *registry.Registry
	sender   Sender
	logger   *logrus.Logger
}

func NewRouter(reg *registry.Registry, sender Sender, logger *logrus.Logger) *Router {
	return &Router{
		registry: reg,
		sender:   sender,
		logger:   logger,
	}
}

// Route вычисляет множество получателей для зафиксированного перехода
// и выполняет адресную и широковещательную доставку
func (r *Router) Route(event TransitionEvent) DeliveryReport {
	log := r.logger.WithFields(logrus.Fields{
		"service":   "notifier",
		"kind":      event.Kind,
		"report_id": event.Report.ID,
	})

	var delivery DeliveryReport
	switch event.Kind {
	case models.TransitionFollowUp:
		r.routeFollowUp(event, &delivery, log)
	case models.TransitionCancelled:
		r.routeCancellation(event, &delivery, log)
	default:
		r.routeToResident(event, &delivery, log)
		r.routeToOtherResponders(event, &delivery, log)
	}

	log.WithFields(logrus.Fields{
		"targeted_attempted":  delivery.TargetedAttempted,
		"targeted_skipped":    delivery.TargetedSkipped,
		"broadcast_attempted": delivery.BroadcastAttempted,
		"broadcast_skipped":   delivery.BroadcastSkipped,
	}).Info("Transition event routed")
	return delivery
}

// Announce рассылает публичное объявление всем привязанным сессиям
func (r *Router) Announce(message string, at time.Time) DeliveryReport {
	var delivery DeliveryReport
	payload := AnnouncementPayload{Message: message, CreatedAt: at}
	for _, binding := range r.registry.AllBound() {
		delivery.BroadcastAttempted++
		r.send(binding.SessionID, EventAnnouncement, payload)
	}
	r.logger.WithFields(logrus.Fields{
		"service":             "notifier",
		"broadcast_attempted": delivery.BroadcastAttempted,
	}).Info("Announcement broadcasted")
	return delivery
}

// routeToResident отправляет адресное событие заявителю отчета. Если житель
// оффлайн, отправка молча пропускается - доставка не гарантируется, житель
// восстановит состояние при следующей полной синхронизации.
func (r *Router) routeToResident(event TransitionEvent, delivery *DeliveryReport, log *logrus.Entry) {
	name, ok := residentEventName(event.Kind)
	if !ok {
		return
	}

	sessionID, ok := r.registry.Resolve(event.Report.ReporterIdentity())
	if !ok {
		delivery.TargetedSkipped++
		log.Debug("Resident is offline, targeted delivery skipped")
		return
	}

	delivery.TargetedAttempted++
	payload := r.payloadFor(event)
	// Адресные кадры исходного протокола идут без reportId
	payload.ReportID = ""
	r.send(sessionID, name, payload)
}

// routeToOtherResponders рассылает событие всем привязанным спасателям,
// кроме действующего. Исключение себя идет по лучшему доступному
// дискриминатору: id спасателя, затем запасной id, затем имя.
func (r *Router) routeToOtherResponders(event TransitionEvent, delivery *DeliveryReport, log *logrus.Entry) {
	name, ok := responderEventName(event.Kind)
	if !ok {
		return
	}

	payload := r.payloadFor(event)
	for _, binding := range r.registry.BoundResponders() {
		if models.SameActor(binding.Identity, event.Actor) {
			continue
		}
		delivery.BroadcastAttempted++
		r.send(binding.SessionID, name, payload)
	}
}

// routeCancellation уведомляет об отмене все привязанные сессии без
// исключения: единственной "действующей" стороны у отмены нет
func (r *Router) routeCancellation(event TransitionEvent, delivery *DeliveryReport, log *logrus.Entry) {
	payload := r.payloadFor(event)
	payload.CancellationReason = event.Report.CancellationReason
	payload.ActiveResponders = event.Report.ActiveResponderCount()

	for _, binding := range r.registry.AllBound() {
		delivery.BroadcastAttempted++
		r.send(binding.SessionID, EventReportCancelled, payload)
	}
}

// routeFollowUp выполняет отфильтрованную рассылку: только спасателям,
// которые "в пути" и не отказались, сопоставляя по отображаемому имени
func (r *Router) routeFollowUp(event TransitionEvent, delivery *DeliveryReport, log *logrus.Entry) {
	recipients := event.Report.FollowUpRecipients()
	payload := r.payloadFor(event)

	for _, binding := range r.registry.BoundResponders() {
		if !recipients[binding.Identity.DisplayName] {
			continue
		}
		delivery.BroadcastAttempted++
		r.send(binding.SessionID, EventResidentFollowUp, payload)
	}
}

// send выполняет одну отправку; сбой изолируется на получателе
func (r *Router) send(sessionID, event string, payload any) {
	if err := r.sender.Send(sessionID, event, payload); err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"service":    "notifier",
			"session_id": sessionID,
			"event":      event,
		}).Warn("Failed to deliver event to session")
	}
}

func (r *Router) payloadFor(event TransitionEvent) EventPayload {
	return EventPayload{
		ReportID:      event.Report.ID.String(),
		Type:          event.Report.Type,
		ResponderName: event.Actor.DisplayName,
		ResidentName:  event.Report.ResidentName(),
		Time:          event.Time.UTC().Format(time.RFC3339),
	}
}

func residentEventName(kind models.TransitionKind) (string, bool) {
	switch kind {
	case models.TransitionOnTheWay:
		return EventNotifyResident, true
	case models.TransitionArrived:
		return EventArrived, true
	case models.TransitionResponded:
		return EventResponded, true
	case models.TransitionDeclined:
		return EventDeclined, true
	}
	return "", false
}

func responderEventName(kind models.TransitionKind) (string, bool) {
	switch kind {
	case models.TransitionOnTheWay:
		return EventNotifyOnTheWay, true
	case models.TransitionArrived:
		return EventNotifyArrived, true
	case models.TransitionResponded:
		return EventNotifyResponded, true
	case models.TransitionDeclined:
		return EventResponderDeclined, true
	}
	return "", false
}

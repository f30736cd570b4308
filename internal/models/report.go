package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus - текущий статус экстренного отчета
type ReportStatus string

const (
	StatusPending   ReportStatus = "pending"
	StatusOnTheWay  ReportStatus = "on-the-way"
	StatusResponded ReportStatus = "responded"
	StatusDeclined  ReportStatus = "declined"
	StatusCancelled ReportStatus = "cancelled"
)

// ActionKind - вид действия спасателя в журнале отчета
type ActionKind string

const (
	ActionOnTheWay  ActionKind = "on-the-way"
	ActionArrived   ActionKind = "arrived"
	ActionResponded ActionKind = "responded"
	ActionDeclined  ActionKind = "declined"
)

// TransitionKind - вид перехода жизненного цикла отчета
type TransitionKind string

const (
	TransitionOnTheWay  TransitionKind = "on-the-way"
	TransitionArrived   TransitionKind = "arrived"
	TransitionResponded TransitionKind = "responded"
	TransitionDeclined  TransitionKind = "declined"
	TransitionCancelled TransitionKind = "cancelled"
	TransitionFollowUp  TransitionKind = "follow-up"
)

// ResponderAction - неизменяемая запись журнала действий спасателей.
// Создается только машиной состояний как побочный эффект валидного перехода.
type ResponderAction struct {
	ID          int64      `json:"id"`
	ReportID    uuid.UUID  `json:"report_id"`
	ResponderID string     `json:"responder_id"`
	FullName    string     `json:"full_name"`
	Action      ActionKind `json:"action"`
	Timestamp   time.Time  `json:"timestamp"`
}

// Report - отчет об экстренной ситуации. Поля заявителя денормализованы:
// это снимок на момент подачи, повторно из учетной записи не читаются.
type Report struct {
	ID                 uuid.UUID         `json:"id"`
	Type               string            `json:"type"`
	Description        string            `json:"description,omitempty"`
	Username           string            `json:"username"`
	FirstName          string            `json:"first_name"`
	LastName           string            `json:"last_name"`
	Age                *int              `json:"age,omitempty"`
	ContactNumber      string            `json:"contact_number,omitempty"`
	Latitude           float64           `json:"latitude"`
	Longitude          float64           `json:"longitude"`
	Status             ReportStatus      `json:"status"`
	CancellationReason string            `json:"cancellation_reason,omitempty"`
	CancellationTime   *time.Time        `json:"cancellation_time,omitempty"`
	ResolvedAt         *time.Time        `json:"resolved_at,omitempty"`
	Responders         []ResponderAction `json:"responders"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// ResidentName возвращает отображаемое имя заявителя для уведомлений
func (r *Report) ResidentName() string {
	return r.FirstName + " " + r.LastName
}

// ActiveResponderCount возвращает количество записей "on-the-way" в журнале
func (r *Report) ActiveResponderCount() int {
	count := 0
	for _, action := range r.Responders {
		if action.Action == ActionOnTheWay {
			count++
		}
	}
	return count
}

// FollowUpRecipients возвращает отображаемые имена спасателей, чья последняя
// заявленная позиция - "в пути" и за которыми не числится отказ. Сопоставление
// идет по имени, а не по id: это осознанно слабый ключ, сохраненный ради
// совместимости с клиентским протоколом.
func (r *Report) FollowUpRecipients() map[string]bool {
	onTheWay := make(map[string]bool)
	declined := make(map[string]bool)
	for _, action := range r.Responders {
		switch action.Action {
		case ActionOnTheWay:
			onTheWay[action.FullName] = true
		case ActionDeclined:
			declined[action.FullName] = true
		}
	}

	recipients := make(map[string]bool, len(onTheWay))
	for name := range onTheWay {
		if !declined[name] {
			recipients[name] = true
		}
	}
	return recipients
}

// ReporterIdentity возвращает логическую личность заявителя,
// под которой он регистрируется в реестре соединений
func (r *Report) ReporterIdentity() ActorIdentity {
	return ActorIdentity{
		Role:        RoleResident,
		ID:          r.Username,
		DisplayName: r.ResidentName(),
	}
}

package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_response_system/internal/notifier"
)

// CreateReportRequest DTO для подачи отчета об экстренной ситуации.
// Поля заявителя - снимок на момент подачи.
// @Description DTO для подачи отчета об экстренной ситуации
type CreateReportRequest struct {
	Type          string  `json:"type" validate:"required,min=2,max=100"`
	Description   string  `json:"description,omitempty"`
	Username      string  `json:"username" validate:"required"`
	FirstName     string  `json:"first_name" validate:"required"`
	LastName      string  `json:"last_name" validate:"required"`
	Age           *int    `json:"age,omitempty" validate:"omitempty,gte=7,lte=100"`
	ContactNumber string  `json:"contact_number,omitempty"`
	Latitude      float64 `json:"latitude" validate:"required,latitude"`
	Longitude     float64 `json:"longitude" validate:"required,longitude"`
}

// CancelReportRequest DTO для отмены отчета
// @Description DTO для отмены отчета
type CancelReportRequest struct {
	Reason string `json:"reason,omitempty"`
}

// AnnouncementRequest DTO для публичного объявления
// @Description DTO для публичного объявления
type AnnouncementRequest struct {
	Message string `json:"message" validate:"required"`
}

// ResponderActionResponse DTO записи журнала действий спасателей
// @Description DTO записи журнала действий спасателей
type ResponderActionResponse struct {
	ResponderID string    `json:"responder_id"`
	FullName    string    `json:"full_name"`
	Action      string    `json:"action"`
	Timestamp   time.Time `json:"timestamp"`
}

// ReportResponse DTO для ответа с информацией об отчете
// @Description DTO для ответа с информацией об отчете
type ReportResponse struct {
	ID                 uuid.UUID                 `json:"id"`
	Type               string                    `json:"type"`
	Description        string                    `json:"description,omitempty"`
	Username           string                    `json:"username"`
	FirstName          string                    `json:"first_name"`
	LastName           string                    `json:"last_name"`
	Age                *int                      `json:"age,omitempty"`
	ContactNumber      string                    `json:"contact_number,omitempty"`
	Latitude           float64                   `json:"latitude"`
	Longitude          float64                   `json:"longitude"`
	Status             string                    `json:"status"`
	CancellationReason string                    `json:"cancellation_reason,omitempty"`
	CancellationTime   *time.Time                `json:"cancellation_time,omitempty"`
	ResolvedAt         *time.Time                `json:"resolved_at,omitempty"`
	Responders         []ResponderActionResponse `json:"responders"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}

// TransitionResponse DTO для ответа на переход жизненного цикла
// @Description DTO для ответа на переход жизненного цикла
type TransitionResponse struct {
	Message  string                  `json:"message"`
	ReportID uuid.UUID               `json:"report_id"`
	Status   string                  `json:"status,omitempty"`
	Delivery notifier.DeliveryReport `json:"delivery"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	UserCount int `json:"user_count"`
}

package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_response_system/internal/models"
)

const (
	eventQueueKey = "report_events"
)

// ReportEvent - зафиксированный переход отчета для внешних интеграций
// (диспетчерский центр). Публикуется после записи состояния и никогда
// не стоит на пути фиксации перехода.
type ReportEvent struct {
	ReportID      uuid.UUID             `json:"report_id"`
	Kind          models.TransitionKind `json:"kind"`
	Type          string                `json:"type"`
	Status        models.ReportStatus   `json:"status"`
	ResponderName string                `json:"responder_name,omitempty"`
	ResidentName  string                `json:"resident_name"`
	Timestamp     time.Time             `json:"timestamp"`
}

// Publisher - интерфейс для публикации событий отчетов
type Publisher interface {
	Publish(ctx context.Context, event ReportEvent) error
}

// RedisPublisher - реализация Publisher, использующая очередь в Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие отчета в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, event ReportEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal report event: %w", err)
	}

	// LPUSH добавляет событие в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, eventQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish report event to Redis: %w", err)
	}
	return nil
}

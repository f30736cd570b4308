// Package ws владеет живыми websocket-сессиями. Дескриптор сессии -
// непрозрачный uuid, действительный только до закрытия соединения;
// привязки в реестре создаются исключительно сигналами join из этого
// транспорта и снимаются по disconnect.
package ws

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shenikar/emergency_response_system/internal/config"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/registry"
	"github.com/sirupsen/logrus"
)

// Имена входящих событий присоединения
const (
	eventJoinResident  = "join-resident"
	eventJoinResponder = "join-responder"
	eventHeartbeat     = "h"
)

// Envelope - кадр обмена: имя события плюс полезная нагрузка
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type joinResidentData struct {
	Username string `json:"username"`
}

type joinResponderData struct {
	ResponderID   string `json:"responderId"`
	ResponderName string `json:"responderName"`
}

// session - одно живое соединение. Исходящие кадры идут через буферизованный
// канал и единственную пишущую горутину: gorilla/websocket допускает только
// одного конкурентного писателя.
type session struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (s *session) close() {
	s.once.Do(func() {
		close(s.done)
	})
}

// Hub принимает websocket-соединения, ведет их сессии и реализует
// контракт отправителя для маршрутизатора уведомлений
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
	registry *registry.Registry
	logger   *logrus.Logger
	cfg      *config.Config
	upgrader websocket.Upgrader
}

func NewHub(reg *registry.Registry, logger *logrus.Logger, cfg *config.Config) *Hub {
	return &Hub{
		sessions: make(map[string]*session),
		registry: reg,
		logger:   logger,
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleConnection апгрейдит запрос до websocket и обслуживает сессию
// до разрыва соединения
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upgrade WebSocket connection")
		return
	}

	s := &session{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, h.cfg.WSSendBuffer),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()

	log := h.logger.WithFields(logrus.Fields{
		"service":    "ws",
		"session_id": s.id,
	})
	log.Info("New client connected")

	go h.writePump(s)
	h.readPump(s, log)
}

// Send доставляет один кадр по дескриптору сессии. Переполненный буфер
// означает отброшенный кадр: доставка best-effort, пишущую горутину
// медленный клиент не блокирует.
func (h *Hub) Send(sessionID, event string, payload any) error {
	h.mu.RLock()
	s, ok := h.sessions[sessionID]
	h.mu.RUnlock()
	if !ok {
		return fmt.Errorf("session %s is not connected", sessionID)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal event frame: %w", err)
	}

	select {
	case s.send <- frame:
		return nil
	case <-s.done:
		return fmt.Errorf("session %s is closed", sessionID)
	default:
		return fmt.Errorf("session %s send buffer is full, frame dropped", sessionID)
	}
}

// Shutdown закрывает все живые сессии
func (h *Hub) Shutdown() {
	h.mu.Lock()
	sessions := make([]*session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		s.close()
		s.conn.Close()
	}
}

// readPump читает входящие кадры до разрыва и обрабатывает сигналы join.
// По выходу снимает привязку в реестре обратным поиском по сессии.
func (h *Hub) readPump(s *session, log *logrus.Entry) {
	defer h.cleanup(s, log)

	s.conn.SetReadDeadline(time.Now().Add(h.cfg.WSPongTimeout))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(h.cfg.WSPongTimeout))
		return nil
	})

	for {
		var envelope Envelope
		if err := s.conn.ReadJSON(&envelope); err != nil {
			if closeErr, ok := err.(*websocket.CloseError); ok {
				if closeErr.Code != websocket.CloseNormalClosure && closeErr.Code != websocket.CloseGoingAway {
					log.WithError(closeErr).Debug("WebSocket closed")
				}
			} else {
				log.WithError(err).Debug("Error reading WebSocket message")
			}
			return
		}

		switch envelope.Event {
		case eventJoinResident:
			var data joinResidentData
			if err := json.Unmarshal(envelope.Data, &data); err != nil || data.Username == "" {
				log.Warn("Malformed join-resident payload")
				continue
			}
			h.registry.Bind(models.ActorIdentity{
				Role: models.RoleResident,
				ID:   data.Username,
			}, s.id)
			log.WithField("username", data.Username).Info("Resident joined")

		case eventJoinResponder:
			var data joinResponderData
			if err := json.Unmarshal(envelope.Data, &data); err != nil || data.ResponderID == "" {
				log.Warn("Malformed join-responder payload")
				continue
			}
			h.registry.Bind(models.ActorIdentity{
				Role:        models.RoleResponder,
				ID:          data.ResponderID,
				DisplayName: data.ResponderName,
			}, s.id)
			log.WithFields(logrus.Fields{
				"responder_id":   data.ResponderID,
				"responder_name": data.ResponderName,
			}).Info("Responder joined")

		case eventHeartbeat:
			// ничего не делаем

		default:
			log.WithField("event", envelope.Event).Info("Unknown inbound event")
		}
	}
}

// writePump - единственный писатель соединения: исходящие кадры и пинги
func (h *Hub) writePump(s *session) {
	pingInterval := h.cfg.WSPongTimeout * 9 / 10
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case frame := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(h.cfg.WSWriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(h.cfg.WSWriteTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			s.conn.SetWriteDeadline(time.Now().Add(h.cfg.WSWriteTimeout))
			s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// cleanup убирает сессию из хаба и реестра после разрыва
func (h *Hub) cleanup(s *session, log *logrus.Entry) {
	h.mu.Lock()
	delete(h.sessions, s.id)
	h.mu.Unlock()

	s.close()
	s.conn.Close()

	if identity, ok := h.registry.Unbind(s.id); ok {
		log.WithFields(logrus.Fields{
			"role":     identity.Role,
			"actor_id": identity.ID,
		}).Info("Disconnected actor unbound")
	} else {
		log.Info("Client disconnected")
	}
}

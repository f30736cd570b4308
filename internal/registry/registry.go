// Package registry отслеживает, какие логические акторы сейчас доступны
// и через какую живую сессию транспорта.
package registry

import (
	"sync"

	"github.com/shenikar/emergency_response_system/internal/models"
)

// Binding - живая привязка личности актора к его текущей сессии транспорта
type Binding struct {
	Identity  models.ActorIdentity
	SessionID string
}

// Registry - реестр соединений. Прямая карта (актор -> сессия) нужна для
// адресных отправок, обратная (сессия -> актор) - для O(1) очистки при
// разрыве: сигнал disconnect несет только id сессии, не личность.
type Registry struct {
	mu        sync.RWMutex
	byActor   map[string]Binding
	bySession map[string]models.ActorIdentity
}

func New() *Registry {
	return &Registry{
		byActor:   make(map[string]Binding),
		bySession: make(map[string]models.ActorIdentity),
	}
}

// Bind заменяет любую предыдущую привязку для данной личности (последняя
// привязка выигрывает). Обратная запись вытесненной сессии удаляется,
// иначе ее поздний disconnect снял бы чужую актуальную привязку.
// Если сама сессия уже была привязана к другой личности (повторный join
// в том же соединении), старая прямая запись тоже снимается: сессия
// держит не более одной привязки.
func (r *Registry) Bind(identity models.ActorIdentity, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := identity.Key()
	if old, ok := r.byActor[key]; ok && old.SessionID != sessionID {
		delete(r.bySession, old.SessionID)
	}
	if prev, ok := r.bySession[sessionID]; ok {
		if prevKey := prev.Key(); prevKey != key {
			if current, ok := r.byActor[prevKey]; ok && current.SessionID == sessionID {
				delete(r.byActor, prevKey)
			}
		}
	}
	r.byActor[key] = Binding{Identity: identity, SessionID: sessionID}
	r.bySession[sessionID] = identity
}

// Unbind выполняет обратный поиск по сессии и снимает привязку, если она
// еще актуальна. Возвращает освобожденную личность, либо ok=false, если
// сессия не имела активной привязки (например, уже была вытеснена).
func (r *Registry) Unbind(sessionID string) (models.ActorIdentity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	identity, ok := r.bySession[sessionID]
	if !ok {
		return models.ActorIdentity{}, false
	}
	delete(r.bySession, sessionID)

	key := identity.Key()
	if current, ok := r.byActor[key]; ok && current.SessionID == sessionID {
		delete(r.byActor, key)
	}
	return identity, true
}

// Resolve возвращает сессию, привязанную к личности, для адресной доставки
func (r *Registry) Resolve(identity models.ActorIdentity) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	binding, ok := r.byActor[identity.Key()]
	if !ok {
		return "", false
	}
	return binding.SessionID, true
}

// AllBound возвращает снимок всех текущих привязок на момент вызова.
// Используется для итерации "всем, кроме себя".
func (r *Registry) AllBound() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bindings := make([]Binding, 0, len(r.byActor))
	for _, binding := range r.byActor {
		bindings = append(bindings, binding)
	}
	return bindings
}

// BoundResponders возвращает снимок привязок только спасателей
func (r *Registry) BoundResponders() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bindings := make([]Binding, 0, len(r.byActor))
	for _, binding := range r.byActor {
		if binding.Identity.Role == models.RoleResponder {
			bindings = append(bindings, binding)
		}
	}
	return bindings
}

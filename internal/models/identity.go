package models

// ActorRole - роль логического актора системы
type ActorRole string

const (
	RoleResident  ActorRole = "resident"
	RoleResponder ActorRole = "responder"
)

// ActorIdentity - стабильный логический ключ актора, не зависящий от живого
// соединения. Для жителя ID - это username, для спасателя - непрозрачный id.
// AltID - запасной идентификатор из входящего запроса, когда основной
// недоступен (разный уровень анонимности точек входа).
type ActorIdentity struct {
	Role        ActorRole `json:"role"`
	ID          string    `json:"id"`
	AltID       string    `json:"alt_id,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
}

// Key возвращает ключ актора для прямой карты реестра соединений
func (a ActorIdentity) Key() string {
	return string(a.Role) + ":" + a.ID
}

// ExclusionKey возвращает лучший доступный дискриминатор для исключения
// самого себя из широковещательной рассылки. Порядок предпочтения: id
// спасателя, затем запасной id, затем отображаемое имя. Сравнение по имени
// заведомо слабее - два спасателя могут носить одно имя.
func (a ActorIdentity) ExclusionKey() string {
	switch {
	case a.ID != "":
		return a.ID
	case a.AltID != "":
		return a.AltID
	default:
		return a.DisplayName
	}
}

// SameActor сообщает, указывают ли обе личности на одного актора,
// используя лучший общий дискриминатор
func SameActor(a, b ActorIdentity) bool {
	key := a.ExclusionKey()
	return key != "" && key == b.ExclusionKey()
}

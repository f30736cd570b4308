package notifier

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/registry"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedFrame - один отправленный кадр для проверок в тестах
type recordedFrame struct {
	SessionID string
	Event     string
	Payload   any
}

// recordingSender записывает все отправки; по желанию отдает ошибку
// для заданных сессий
type recordingSender struct {
	frames  []recordedFrame
	failFor map[string]bool
}

func newRecordingSender() *recordingSender {
	return &recordingSender{failFor: make(map[string]bool)}
}

func (s *recordingSender) Send(sessionID, event string, payload any) error {
	s.frames = append(s.frames, recordedFrame{SessionID: sessionID, Event: event, Payload: payload})
	if s.failFor[sessionID] {
		return fmt.Errorf("session %s gone", sessionID)
	}
	return nil
}

func (s *recordingSender) framesFor(sessionID string) []recordedFrame {
	var out []recordedFrame
	for _, f := range s.frames {
		if f.SessionID == sessionID {
			out = append(out, f)
		}
	}
	return out
}

func newTestRouter() (*Router, *registry.Registry, *recordingSender) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	reg := registry.New()
	sender := newRecordingSender()
	return NewRouter(reg, sender, logger), reg, sender
}

func residentIdentity(username string) models.ActorIdentity {
	return models.ActorIdentity{
		Role:        models.RoleResident,
		ID:          username,
		DisplayName: "Иван Петров",
	}
}

func responderIdentity(id, name string) models.ActorIdentity {
	return models.ActorIdentity{
		Role:        models.RoleResponder,
		ID:          id,
		DisplayName: name,
	}
}

func testReport(username string) *models.Report {
	return &models.Report{
		ID:        uuid.New(),
		Type:      "fire",
		Username:  username,
		FirstName: "Иван",
		LastName:  "Петров",
		Status:    models.StatusOnTheWay,
	}
}

func TestRoute_OnTheWay_TargetsResidentAndOtherResponders(t *testing.T) {
	// Подготовка: житель, действующий спасатель и сторонний спасатель онлайн
	router, reg, sender := newTestRouter()
	actor := responderIdentity("resp-1", "Responder One")
	other := responderIdentity("resp-2", "Responder Two")
	reg.Bind(residentIdentity("resident1"), "sess-resident")
	reg.Bind(actor, "sess-actor")
	reg.Bind(other, "sess-other")

	report := testReport("resident1")
	now := time.Now().UTC()

	// Действие
	delivery := router.Route(TransitionEvent{
		Kind:   models.TransitionOnTheWay,
		Report: report,
		Actor:  actor,
		Time:   now,
	})

	// Проверки: житель получил адресный кадр без reportId
	residentFrames := sender.framesFor("sess-resident")
	require.Len(t, residentFrames, 1)
	assert.Equal(t, EventNotifyResident, residentFrames[0].Event)
	payload, ok := residentFrames[0].Payload.(EventPayload)
	require.True(t, ok)
	assert.Empty(t, payload.ReportID)
	assert.Equal(t, "Responder One", payload.ResponderName)

	// Сторонний спасатель получил широковещательный кадр с reportId
	otherFrames := sender.framesFor("sess-other")
	require.Len(t, otherFrames, 1)
	assert.Equal(t, EventNotifyOnTheWay, otherFrames[0].Event)
	otherPayload, ok := otherFrames[0].Payload.(EventPayload)
	require.True(t, ok)
	assert.Equal(t, report.ID.String(), otherPayload.ReportID)

	// Действующий спасатель исключен
	assert.Empty(t, sender.framesFor("sess-actor"))

	assert.Equal(t, 1, delivery.TargetedAttempted)
	assert.Equal(t, 1, delivery.BroadcastAttempted)
}

func TestRoute_ResidentOffline_TargetedSkipped(t *testing.T) {
	// Подготовка: житель не привязан
	router, reg, sender := newTestRouter()
	actor := responderIdentity("resp-1", "Responder One")
	reg.Bind(actor, "sess-actor")

	// Действие
	delivery := router.Route(TransitionEvent{
		Kind:   models.TransitionResponded,
		Report: testReport("resident1"),
		Actor:  actor,
		Time:   time.Now().UTC(),
	})

	// Проверки: отправка жителю молча пропущена, ошибки нет
	assert.Equal(t, 0, delivery.TargetedAttempted)
	assert.Equal(t, 1, delivery.TargetedSkipped)
	assert.Empty(t, sender.frames)
}

func TestRoute_SelfExclusion_ByAltID(t *testing.T) {
	// Подготовка: привязка спасателя без основного id, только с запасным
	router, reg, sender := newTestRouter()
	bound := models.ActorIdentity{Role: models.RoleResponder, ID: "resp-9", AltID: "johnd", DisplayName: "John D"}
	reg.Bind(bound, "sess-bound")

	// Действующая личность несет только запасной id
	actor := models.ActorIdentity{Role: models.RoleResponder, AltID: "johnd", DisplayName: "John D"}

	// Действие
	router.Route(TransitionEvent{
		Kind:   models.TransitionDeclined,
		Report: testReport("resident1"),
		Actor:  actor,
		Time:   time.Now().UTC(),
	})

	// Проверки: сопоставление пошло по лучшему общему дискриминатору.
	// Основной id привязки сильнее запасного, поэтому ключи не совпали
	// и кадр был доставлен.
	frames := sender.framesFor("sess-bound")
	require.Len(t, frames, 1)
	assert.Equal(t, EventResponderDeclined, frames[0].Event)
}

func TestRoute_SelfExclusion_ByDisplayName(t *testing.T) {
	// Подготовка: ни id, ни запасного id - остается только имя
	router, reg, sender := newTestRouter()
	bound := models.ActorIdentity{Role: models.RoleResponder, DisplayName: "John D"}
	reg.Bind(bound, "sess-bound")

	actor := models.ActorIdentity{Role: models.RoleResponder, DisplayName: "John D"}

	// Действие
	router.Route(TransitionEvent{
		Kind:   models.TransitionArrived,
		Report: testReport("resident1"),
		Actor:  actor,
		Time:   time.Now().UTC(),
	})

	// Проверки: исключение по имени сработало
	assert.Empty(t, sender.framesFor("sess-bound"))
}

func TestRoute_Cancelled_ReachesEveryone(t *testing.T) {
	// Подготовка: житель и два спасателя онлайн
	router, reg, sender := newTestRouter()
	reg.Bind(residentIdentity("resident1"), "sess-resident")
	reg.Bind(responderIdentity("resp-1", "Responder One"), "sess-1")
	reg.Bind(responderIdentity("resp-2", "Responder Two"), "sess-2")

	report := testReport("resident1")
	report.Status = models.StatusCancelled
	report.CancellationReason = "False alarm"
	report.Responders = []models.ResponderAction{
		{FullName: "Responder One", Action: models.ActionOnTheWay},
	}

	// Действие
	delivery := router.Route(TransitionEvent{
		Kind:   models.TransitionCancelled,
		Report: report,
		Time:   time.Now().UTC(),
	})

	// Проверки: отмена уходит всем без исключения себя
	assert.Equal(t, 3, delivery.BroadcastAttempted)
	for _, sessionID := range []string{"sess-resident", "sess-1", "sess-2"} {
		frames := sender.framesFor(sessionID)
		require.Len(t, frames, 1, "session %s", sessionID)
		assert.Equal(t, EventReportCancelled, frames[0].Event)
		payload, ok := frames[0].Payload.(EventPayload)
		require.True(t, ok)
		assert.Equal(t, "False alarm", payload.CancellationReason)
		assert.Equal(t, 1, payload.ActiveResponders)
	}
}

func TestRoute_FollowUp_FiltersRecipients(t *testing.T) {
	// Подготовка: спасатель X выехал, Y выехал и отказался, Z не выезжал
	router, reg, sender := newTestRouter()
	reg.Bind(responderIdentity("resp-x", "Responder X"), "sess-x")
	reg.Bind(responderIdentity("resp-y", "Responder Y"), "sess-y")
	reg.Bind(responderIdentity("resp-z", "Responder Z"), "sess-z")
	reg.Bind(residentIdentity("resident1"), "sess-resident")

	report := testReport("resident1")
	report.Responders = []models.ResponderAction{
		{FullName: "Responder X", Action: models.ActionOnTheWay},
		{FullName: "Responder Y", Action: models.ActionOnTheWay},
		{FullName: "Responder Y", Action: models.ActionDeclined},
	}

	// Действие
	delivery := router.Route(TransitionEvent{
		Kind:   models.TransitionFollowUp,
		Report: report,
		Time:   time.Now().UTC(),
	})

	// Проверки: запрос получил только X
	assert.Equal(t, 1, delivery.BroadcastAttempted)
	xFrames := sender.framesFor("sess-x")
	require.Len(t, xFrames, 1)
	assert.Equal(t, EventResidentFollowUp, xFrames[0].Event)
	assert.Empty(t, sender.framesFor("sess-y"))
	assert.Empty(t, sender.framesFor("sess-z"))
	assert.Empty(t, sender.framesFor("sess-resident"))
}

func TestRoute_SendFailure_DoesNotStopOthers(t *testing.T) {
	// Подготовка: первая сессия падает при отправке
	router, reg, sender := newTestRouter()
	reg.Bind(responderIdentity("resp-1", "Responder One"), "sess-1")
	reg.Bind(responderIdentity("resp-2", "Responder Two"), "sess-2")
	sender.failFor["sess-1"] = true

	// Действие
	delivery := router.Route(TransitionEvent{
		Kind:   models.TransitionOnTheWay,
		Report: testReport("resident-offline"),
		Actor:  responderIdentity("resp-3", "Responder Three"),
		Time:   time.Now().UTC(),
	})

	// Проверки: обе отправки предприняты, сбой изолирован
	assert.Equal(t, 2, delivery.BroadcastAttempted)
	assert.Len(t, sender.framesFor("sess-1"), 1)
	assert.Len(t, sender.framesFor("sess-2"), 1)
}

func TestAnnounce_BroadcastsToAllBound(t *testing.T) {
	// Подготовка
	router, reg, sender := newTestRouter()
	reg.Bind(residentIdentity("resident1"), "sess-resident")
	reg.Bind(responderIdentity("resp-1", "Responder One"), "sess-1")

	at := time.Now().UTC()

	// Действие
	delivery := router.Announce("Evacuation drill at noon", at)

	// Проверки
	assert.Equal(t, 2, delivery.BroadcastAttempted)
	require.Len(t, sender.frames, 2)
	for _, frame := range sender.frames {
		assert.Equal(t, EventAnnouncement, frame.Event)
		payload, ok := frame.Payload.(AnnouncementPayload)
		require.True(t, ok)
		assert.Equal(t, "Evacuation drill at noon", payload.Message)
		assert.Equal(t, at, payload.CreatedAt)
	}
}

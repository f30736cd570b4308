package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/emergency_response_system/internal/config"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/notifier"
	"github.com/shenikar/emergency_response_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockReportService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockReportService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys:                []string{"test-api-key"},
		StatsTimeWindowMinutes: 60,
	}

	handler := NewHandler(mockService, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// responderHeaders - заголовки аутентифицированного спасателя
func responderHeaders() map[string]string {
	return map[string]string{
		"X-API-Key":        "test-api-key",
		"X-Responder-Id":   "resp-1",
		"X-Responder-Name": "Responder One",
	}
}

func validCreateRequest() CreateReportRequest {
	return CreateReportRequest{
		Type:      "fire",
		Username:  "resident1",
		FirstName: "Иван",
		LastName:  "Петров",
		Latitude:  55.75,
		Longitude: 37.61,
	}
}

func TestCreateReport_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	reqBody := validCreateRequest()

	mockService.EXPECT().
		CreateReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, report *models.Report) error {
			assert.Equal(t, reqBody.Type, report.Type)
			assert.Equal(t, reqBody.Username, report.Username)
			// Симулируем сохранение
			report.ID = reportID
			report.Status = models.StatusPending
			return nil
		}).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/reports", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp ReportResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, reportID, resp.ID)
	assert.Equal(t, string(models.StatusPending), resp.Status)
}

func TestCreateReport_InvalidJSON(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/reports", bytes.NewBufferString(`{"type": "fire"`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateReport_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := validCreateRequest()
	reqBody.Username = "" // Отсутствует обязательное поле

	mockService.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/reports", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Username' failed on the 'required' tag")
}

func TestCreateReport_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := validCreateRequest()
	serviceError := errors.New("failed to create report in service")

	mockService.EXPECT().
		CreateReport(gomock.Any(), gomock.Any()).
		Return(serviceError).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/reports", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestGetReport_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	expectedReport := &models.Report{
		ID:       reportID,
		Type:     "fire",
		Username: "resident1",
		Status:   models.StatusOnTheWay,
		Responders: []models.ResponderAction{
			{ResponderID: "resp-1", FullName: "Responder One", Action: models.ActionOnTheWay},
		},
	}

	mockService.EXPECT().GetReport(gomock.Any(), reportID).Return(expectedReport, nil).Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/reports/%s", reportID.String()), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ReportResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, reportID, resp.ID)
	require.Len(t, resp.Responders, 1)
	assert.Equal(t, "Responder One", resp.Responders[0].FullName)
}

func TestGetReport_InvalidID(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().GetReport(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "GET", "/api/v1/reports/invalid-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid report ID")
}

func TestGetReport_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	serviceError := fmt.Errorf("service: could not get report: %w", models.ErrReportNotFound)

	mockService.EXPECT().GetReport(gomock.Any(), reportID).Return(nil, serviceError).Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/reports/%s", reportID.String()), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "report not found")
}

func TestListReports_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	expectedReports := []*models.Report{
		{ID: uuid.New(), Type: "fire", Status: models.StatusPending},
		{ID: uuid.New(), Type: "flood", Status: models.StatusResponded},
	}

	mockService.EXPECT().ListReports(gomock.Any(), 1, 10).Return(expectedReports, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/reports?page=1&pageSize=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []ReportResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, expectedReports[0].Type, resp[0].Type)
}

func TestMarkOnTheWay_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	updated := &models.Report{ID: reportID, Status: models.StatusOnTheWay}

	mockService.EXPECT().
		MarkOnTheWay(gomock.Any(), reportID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, responder models.ActorIdentity) (*models.Report, notifier.DeliveryReport, error) {
			assert.Equal(t, models.RoleResponder, responder.Role)
			assert.Equal(t, "resp-1", responder.ID)
			assert.Equal(t, "Responder One", responder.DisplayName)
			return updated, notifier.DeliveryReport{TargetedAttempted: 1}, nil
		}).Times(1)

	w := makeRequest(router, "PATCH", fmt.Sprintf("/api/v1/reports/%s/ontheway", reportID.String()), nil, responderHeaders())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp TransitionResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, reportID, resp.ReportID)
	assert.Equal(t, string(models.StatusOnTheWay), resp.Status)
	assert.Equal(t, 1, resp.Delivery.TargetedAttempted)
}

func TestMarkOnTheWay_MissingIdentity(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()

	mockService.EXPECT().MarkOnTheWay(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Ключ API есть, личности спасателя нет
	w := makeRequest(router, "PATCH", fmt.Sprintf("/api/v1/reports/%s/ontheway", reportID.String()), nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Responder identity required")
}

func TestMarkOnTheWay_NoAPIKey(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()

	mockService.EXPECT().MarkOnTheWay(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "PATCH", fmt.Sprintf("/api/v1/reports/%s/ontheway", reportID.String()), nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestMarkArrived_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	// Прибытие статус не меняет
	updated := &models.Report{ID: reportID, Status: models.StatusOnTheWay}

	mockService.EXPECT().
		MarkArrived(gomock.Any(), reportID, gomock.Any()).
		Return(updated, notifier.DeliveryReport{TargetedAttempted: 1}, nil).
		Times(1)

	w := makeRequest(router, "PATCH", fmt.Sprintf("/api/v1/reports/%s/arrived", reportID.String()), nil, responderHeaders())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp TransitionResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusOnTheWay), resp.Status)
}

func TestMarkResponded_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	serviceError := fmt.Errorf("service: could not apply responded transition: %w", models.ErrReportNotFound)

	mockService.EXPECT().
		MarkResponded(gomock.Any(), reportID, gomock.Any()).
		Return(nil, notifier.DeliveryReport{}, serviceError).
		Times(1)

	w := makeRequest(router, "PATCH", fmt.Sprintf("/api/v1/reports/%s/respond", reportID.String()), nil, responderHeaders())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "report not found")
}

func TestDeclineReport_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	updated := &models.Report{ID: reportID, Status: models.StatusDeclined}

	mockService.EXPECT().
		Decline(gomock.Any(), reportID, gomock.Any()).
		Return(updated, notifier.DeliveryReport{}, nil).
		Times(1)

	w := makeRequest(router, "DELETE", fmt.Sprintf("/api/v1/reports/%s", reportID.String()), nil, responderHeaders())

	// Отчет сохраняется со сменой статуса, поэтому 200, а не 204
	assert.Equal(t, http.StatusOK, w.Code)
	var resp TransitionResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusDeclined), resp.Status)
}

func TestCancelReport_WithReason(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	updated := &models.Report{ID: reportID, Status: models.StatusCancelled, CancellationReason: "False alarm"}

	mockService.EXPECT().
		Cancel(gomock.Any(), reportID, "False alarm").
		Return(updated, notifier.DeliveryReport{BroadcastAttempted: 2}, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(CancelReportRequest{Reason: "False alarm"})
	w := makeRequest(router, "PATCH", fmt.Sprintf("/api/v1/reports/%s/cancel", reportID.String()), bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp TransitionResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusCancelled), resp.Status)
	assert.Equal(t, 2, resp.Delivery.BroadcastAttempted)
}

func TestCancelReport_WithoutBody(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	updated := &models.Report{ID: reportID, Status: models.StatusCancelled}

	// Тело опционально: причина уходит в сервис пустой
	mockService.EXPECT().
		Cancel(gomock.Any(), reportID, "").
		Return(updated, notifier.DeliveryReport{}, nil).
		Times(1)

	w := makeRequest(router, "PATCH", fmt.Sprintf("/api/v1/reports/%s/cancel", reportID.String()), nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestFollowUp_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	report := &models.Report{ID: reportID, Status: models.StatusOnTheWay}

	mockService.EXPECT().
		RequestFollowUp(gomock.Any(), reportID).
		Return(report, notifier.DeliveryReport{BroadcastAttempted: 1}, nil).
		Times(1)

	w := makeRequest(router, "PATCH", fmt.Sprintf("/api/v1/reports/%s/followup", reportID.String()), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp TransitionResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Delivery.BroadcastAttempted)
}

func TestAnnounce_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		Announce(gomock.Any(), "Evacuation drill at noon").
		Return(notifier.DeliveryReport{BroadcastAttempted: 4}, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(AnnouncementRequest{Message: "Evacuation drill at noon"})
	w := makeRequest(router, "POST", "/api/v1/announcement", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestAnnounce_EmptyMessage(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Announce(gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(AnnouncementRequest{})
	w := makeRequest(router, "POST", "/api/v1/announcement", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Message' failed on the 'required' tag")
}

func TestAnnounce_Unauthorized(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Announce(gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(AnnouncementRequest{Message: "hello"})
	w := makeRequest(router, "POST", "/api/v1/announcement", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestGetStats_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	expectedCount := 123

	mockService.EXPECT().GetStats(gomock.Any()).Return(expectedCount, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/reports/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp StatsResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, expectedCount, resp.UserCount)
}

func TestHealthCheck_Success(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAPIKeyAuthMiddleware_BearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"Authorization": "Bearer valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "invalid-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}

func TestResponderIdentityMiddleware_AltIDFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	var captured models.ActorIdentity
	router.Use(ResponderIdentityMiddleware(logger))
	router.GET("/test", func(c *gin.Context) {
		captured = responderIdentity(c)
		c.Status(http.StatusOK)
	})

	// Только запасной идентификатор, имя не передано
	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-Responder-Username": "johnd"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "johnd", captured.AltID)
	assert.Empty(t, captured.ID)
	assert.Equal(t, "Responder", captured.DisplayName)
}

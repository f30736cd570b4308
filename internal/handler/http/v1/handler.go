package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/emergency_response_system/internal/config"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/notifier"
	"github.com/shenikar/emergency_response_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	reportService service.ReportService
	logger        *logrus.Logger
	validate      *validator.Validate
	cfg           *config.Config
}

func NewHandler(reportService service.ReportService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		reportService: reportService,
		logger:        logger,
		validate:      validator.New(),
		cfg:           cfg,
	}
}

// @Summary Submit a new emergency report
// @Description Submit a new emergency report. Reporter fields are captured as a snapshot at submission time.
// @Tags Reports
// @Accept json
// @Produce json
// @Param report body CreateReportRequest true "Report submission request"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [post]
func (h *Handler) createReport(c *gin.Context) {
	var input CreateReportRequest
	log := h.logger.WithField("method", "createReport")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToReportModel(input)
	if err := h.reportService.CreateReport(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to create report in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToReportResponse(model))
}

// @Summary Get a list of reports
// @Description Get a paginated list of all emergency reports, newest first. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(10)
// @Success 200 {array} ReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [get]
func (h *Handler) listReports(c *gin.Context) {
	log := h.logger.WithField("method", "listReports")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	reports, err := h.reportService.ListReports(c.Request.Context(), page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list reports from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToReportResponses(reports))
}

// @Summary Get report by ID
// @Description Get a single emergency report by its ID, including the responder action log.
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 404 {object} map[string]string "Report not found"
// @Router /reports/{id} [get]
func (h *Handler) getReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "getReport").WithField("id", id)

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get report from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary Mark a report as on the way
// @Description Record that the authenticated responder is on the way to the incident. Concurrent calls from different responders are all accepted.
// @Tags Transitions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Success 200 {object} TransitionResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id}/ontheway [patch]
func (h *Handler) markOnTheWay(c *gin.Context) {
	h.applyTransition(c, "markOnTheWay", "Report marked as on the way", h.reportService.MarkOnTheWay)
}

// @Summary Mark a responder as arrived
// @Description Record that the authenticated responder arrived at the incident location. Arrival is log-only and does not change the report status.
// @Tags Transitions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Success 200 {object} TransitionResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id}/arrived [patch]
func (h *Handler) markArrived(c *gin.Context) {
	h.applyTransition(c, "markArrived", "Report marked as arrived", h.reportService.MarkArrived)
}

// @Summary Mark a report as responded
// @Description Record that the authenticated responder handled the incident.
// @Tags Transitions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Success 200 {object} TransitionResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id}/respond [patch]
func (h *Handler) markResponded(c *gin.Context) {
	h.applyTransition(c, "markResponded", "Report marked as responded", h.reportService.MarkResponded)
}

// @Summary Decline a report
// @Description Record that the authenticated responder declined the incident. The report is kept with status updated, not deleted.
// @Tags Transitions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Success 200 {object} TransitionResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id} [delete]
func (h *Handler) declineReport(c *gin.Context) {
	h.applyTransition(c, "declineReport", "Report declined (status updated, not deleted)", h.reportService.Decline)
}

// @Summary Cancel a report
// @Description Cancel a report with an optional reason. The cancellation is broadcast to every bound session with no self-exclusion.
// @Tags Transitions
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param cancellation body CancelReportRequest false "Cancellation reason"
// @Success 200 {object} TransitionResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id}/cancel [patch]
func (h *Handler) cancelReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "cancelReport").WithField("id", id)

	// Тело с причиной опционально
	var input CancelReportRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		input.Reason = ""
	}

	report, delivery, err := h.reportService.Cancel(c.Request.Context(), id, input.Reason)
	if err != nil {
		h.transitionError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, TransitionResponse{
		Message:  "Report cancelled successfully",
		ReportID: report.ID,
		Status:   string(report.Status),
		Delivery: delivery,
	})
}

// @Summary Request a follow-up
// @Description Ask responders who are on the way (and have not declined) for a status follow-up. No state change.
// @Tags Transitions
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} TransitionResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id}/followup [patch]
func (h *Handler) requestFollowUp(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "requestFollowUp").WithField("id", id)

	report, delivery, err := h.reportService.RequestFollowUp(c.Request.Context(), id)
	if err != nil {
		h.transitionError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, TransitionResponse{
		Message:  "Follow-up request sent to responders on the way",
		ReportID: report.ID,
		Status:   string(report.Status),
		Delivery: delivery,
	})
}

// @Summary Broadcast a public announcement
// @Description Broadcast a message to every connected session. Requires API key.
// @Tags Announcements
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param announcement body AnnouncementRequest true "Announcement message"
// @Success 200 {object} map[string]any "Broadcast result"
// @Failure 400 {object} map[string]string "Empty message"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /announcement [post]
func (h *Handler) announce(c *gin.Context) {
	var input AnnouncementRequest
	log := h.logger.WithField("method", "announce")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	delivery, err := h.reportService.Announce(c.Request.Context(), input.Message)
	if err != nil {
		log.WithError(err).Error("Failed to broadcast announcement")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "delivery": delivery})
}

// @Summary Get reporter statistics
// @Description Get the count of distinct reporters within the configured time window. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	userCount, err := h.reportService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{UserCount: userCount})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// transitionFunc - операция перехода, выполняемая от имени спасателя
type transitionFunc func(ctx context.Context, id uuid.UUID, responder models.ActorIdentity) (*models.Report, notifier.DeliveryReport, error)

// applyTransition - общий путь для переходов, выполняемых спасателем
func (h *Handler) applyTransition(c *gin.Context, method, message string, apply transitionFunc) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", method).WithField("id", id)

	report, delivery, err := apply(c.Request.Context(), id, responderIdentity(c))
	if err != nil {
		h.transitionError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, TransitionResponse{
		Message:  message,
		ReportID: report.ID,
		Status:   string(report.Status),
		Delivery: delivery,
	})
}

// transitionError переводит ошибку сервиса в HTTP-ответ: NotFound
// отклоняется как 404, остальное - внутренняя ошибка
func (h *Handler) transitionError(c *gin.Context, log *logrus.Entry, err error) {
	if errors.Is(err, models.ErrReportNotFound) {
		log.WithError(err).Warn("Report not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	log.WithError(err).Error("Failed to apply transition in service")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

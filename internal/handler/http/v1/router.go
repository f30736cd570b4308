package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты жизненного цикла отчетов
	reports := api.Group("/reports")
	{
		reports.POST("", h.createReport)
		reports.GET("", h.listReports)
		reports.GET("/stats", h.getStats)
		reports.GET("/:id", h.getReport)

		// Переходы, выполняемые спасателем: ключ API плюс
		// предаутентифицированная личность из заголовков
		responderOps := reports.Group("", APIKeyAuthMiddleware(h.cfg, h.logger), ResponderIdentityMiddleware(h.logger))
		{
			responderOps.PATCH("/:id/ontheway", h.markOnTheWay)
			responderOps.PATCH("/:id/arrived", h.markArrived)
			responderOps.PATCH("/:id/respond", h.markResponded)
			responderOps.DELETE("/:id", h.declineReport)
		}

		// Операции заявителя: отмена и запрос статуса
		reports.PATCH("/:id/cancel", h.cancelReport)
		reports.PATCH("/:id/followup", h.requestFollowUp)
	}

	// Публичное объявление всем подключенным
	api.POST("/announcement", APIKeyAuthMiddleware(h.cfg, h.logger), h.announce)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}

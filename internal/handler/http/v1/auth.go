package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/emergency_response_system/internal/config"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/sirupsen/logrus"
)

// Заголовки личности спасателя, проставленные вышестоящим шлюзом
// аутентификации. Ядро им доверяет и повторно не проверяет.
const (
	headerResponderID       = "X-Responder-Id"
	headerResponderUsername = "X-Responder-Username"
	headerResponderName     = "X-Responder-Name"
)

const responderIdentityKey = "responderIdentity"

// APIKeyAuthMiddleware - middleware для аутентификации по API-ключу
func APIKeyAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			// Проверяем также заголовок Authorization: Bearer
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				apiKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if apiKey == "" {
			log.Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		isValid := false
		for _, key := range cfg.APIKeys {
			if key == apiKey {
				isValid = true
				break
			}
		}

		if !isValid {
			log.Warnf("Invalid API key provided: %s", apiKey)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Next()
	}
}

// ResponderIdentityMiddleware извлекает из заголовков предаутентифицированную
// личность спасателя и кладет ее в контекст запроса. Запасной username и имя
// по умолчанию сохраняют поведение исходного протокола при неполных данных.
func ResponderIdentityMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := models.ActorIdentity{
			Role:        models.RoleResponder,
			ID:          c.GetHeader(headerResponderID),
			AltID:       c.GetHeader(headerResponderUsername),
			DisplayName: c.GetHeader(headerResponderName),
		}

		if identity.ID == "" && identity.AltID == "" {
			log.Warn("Responder identity missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Responder identity required"})
			return
		}

		if identity.DisplayName == "" {
			identity.DisplayName = "Responder"
		}

		c.Set(responderIdentityKey, identity)
		c.Next()
	}
}

// responderIdentity достает личность спасателя из контекста запроса
func responderIdentity(c *gin.Context) models.ActorIdentity {
	if value, ok := c.Get(responderIdentityKey); ok {
		if identity, ok := value.(models.ActorIdentity); ok {
			return identity
		}
	}
	return models.ActorIdentity{Role: models.RoleResponder, DisplayName: "Responder"}
}

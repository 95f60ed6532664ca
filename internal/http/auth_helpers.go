package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/carrental/internal/auth"
	"github.com/mrlokans/carrental/internal/config"
)

// AuthTemplateData holds authentication info for templates.
type AuthTemplateData struct {
	Enabled   bool
	LoggedIn  bool
	Username  string
	CSRFToken string // Empty when CSRF protection is off
}

// AuthContextMiddleware stores AuthTemplateData for page handlers.
func AuthContextMiddleware(authMode config.AuthMode) gin.HandlerFunc {
	authEnabled := authMode == config.AuthModeLocal

	return func(c *gin.Context) {
		authData := AuthTemplateData{
			Enabled:   authEnabled,
			CSRFToken: auth.GetCSRFToken(c),
		}
		if authEnabled && auth.GetUserID(c) != auth.DefaultUserID {
			authData.LoggedIn = true
			authData.Username = auth.GetUsername(c)
		}

		c.Set("auth_template_data", authData)
		c.Next()
	}
}

// GetAuthTemplateData retrieves auth data from context for use in templates.
func GetAuthTemplateData(c *gin.Context) AuthTemplateData {
	if data, exists := c.Get("auth_template_data"); exists {
		if authData, ok := data.(AuthTemplateData); ok {
			return authData
		}
	}
	return AuthTemplateData{}
}

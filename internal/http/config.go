package http

import (
	"html/template"

	"go.uber.org/zap"

	"github.com/mrlokans/carrental/internal/auth"
	"github.com/mrlokans/carrental/internal/config"
	"github.com/mrlokans/carrental/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Desk     Desk
	Database *database.Database
	Logger   *zap.Logger

	// UI
	TemplatesPath string             // Empty means the embedded templates
	Templates     *template.Template // Overrides TemplatesPath when set
	Currency      string

	// Application info
	Version string

	// Authentication (all optional; nil means AUTH_MODE=none)
	AuthConfig     config.Auth
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool

	// Listing exports (optional)
	ExportQueue  ExportQueue
	ExportStatus ExportStatusReader
}

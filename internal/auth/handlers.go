package auth

import (
	"errors"
	"html/template"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// setupMutex serializes first-run setup so two posts cannot both create an operator.
var setupMutex sync.Mutex

// isLocalPath reports whether path is safe to redirect to.
func isLocalPath(path string) bool {
	if path == "" || !strings.HasPrefix(path, "/") {
		return false
	}
	// Protocol-relative URLs (//evil.com).
	if strings.HasPrefix(path, "//") {
		return false
	}
	if strings.Contains(path, "://") || strings.Contains(path, "\\") {
		return false
	}
	return true
}

// sanitizeRedirectPath returns a safe redirect path, defaulting to "/".
func sanitizeRedirectPath(path string) string {
	if isLocalPath(path) {
		return path
	}
	return "/"
}

// AuthController serves the login, logout and first-run setup pages.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	templates      *template.Template
	logger         *zap.Logger
}

// NewAuthController renders login.html and setup.html from templates.
// A nil template set falls back to JSON responses.
func NewAuthController(service *Service, sessionManager *SessionManager, templates *template.Template, logger *zap.Logger) *AuthController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		templates:      templates,
		logger:         logger.Named("auth"),
	}
}

func (ac *AuthController) RegisterRoutes(router gin.IRouter) {
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.POST("/logout", ac.Logout)
	router.GET("/setup", ac.SetupPage)
	router.POST("/setup", ac.Setup)
}

func (ac *AuthController) LoginPage(c *gin.Context) {
	if ac.sessionManager != nil && ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	hasUsers, _ := ac.service.HasUsers()
	if !hasUsers {
		c.Redirect(http.StatusFound, "/setup")
		return
	}

	ac.render(c, http.StatusOK, "login.html", gin.H{
		"Title":     "Login",
		"Next":      sanitizeRedirectPath(c.Query("next")),
		"CSRFToken": GetCSRFToken(c),
		"Error":     c.Query("error"),
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := sanitizeRedirectPath(c.PostForm("next"))

	user, err := ac.service.Authenticate(username, password)
	if err != nil {
		errorMsg := "Invalid username or password"
		status := http.StatusUnauthorized
		if errors.Is(err, ErrAccountLocked) {
			errorMsg = "Account is locked. Please try again later."
			status = http.StatusTooManyRequests
		}
		ac.logger.Warn("login failed", zap.String("username", username), zap.Error(err))

		ac.render(c, status, "login.html", gin.H{
			"Title":     "Login",
			"Next":      next,
			"Username":  username,
			"CSRFToken": GetCSRFToken(c),
			"Error":     errorMsg,
		})
		return
	}

	if ac.sessionManager != nil {
		if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
			ac.logger.Error("failed to create session", zap.Error(err))
			ac.render(c, http.StatusInternalServerError, "login.html", gin.H{
				"Title":     "Login",
				"Next":      next,
				"Username":  username,
				"CSRFToken": GetCSRFToken(c),
				"Error":     "Failed to create session",
			})
			return
		}
	}

	ac.logger.Info("operator logged in", zap.String("username", user.Username))
	c.Redirect(http.StatusFound, next)
}

func (ac *AuthController) Logout(c *gin.Context) {
	if ac.sessionManager != nil {
		_ = ac.sessionManager.DestroySession(c.Request)
	}
	c.Redirect(http.StatusFound, "/login")
}

// SetupPage renders the operator creation form. Only reachable before the
// account exists.
func (ac *AuthController) SetupPage(c *gin.Context) {
	hasUsers, err := ac.service.HasUsers()
	if err != nil {
		ac.render(c, http.StatusInternalServerError, "setup.html", gin.H{
			"Title":     "Initial Setup",
			"CSRFToken": GetCSRFToken(c),
			"Error":     "Database error. Please try again.",
		})
		return
	}
	if hasUsers {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ac.render(c, http.StatusOK, "setup.html", gin.H{
		"Title":     "Initial Setup",
		"CSRFToken": GetCSRFToken(c),
		"Error":     c.Query("error"),
	})
}

func (ac *AuthController) Setup(c *gin.Context) {
	setupMutex.Lock()
	defer setupMutex.Unlock()

	username := c.PostForm("username")
	password := c.PostForm("password")

	if password != c.PostForm("confirm_password") {
		ac.render(c, http.StatusBadRequest, "setup.html", gin.H{
			"Title":     "Initial Setup",
			"Username":  username,
			"CSRFToken": GetCSRFToken(c),
			"Error":     "Passwords do not match",
		})
		return
	}

	user, err := ac.service.CreateUser(username, password)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			c.Redirect(http.StatusFound, "/login")
			return
		}

		errorMsg := "Failed to create operator"
		switch {
		case errors.Is(err, ErrPasswordTooShort):
			errorMsg = "Password must be at least 12 characters"
		case errors.Is(err, ErrPasswordTooLong):
			errorMsg = "Password exceeds maximum length of 72 characters"
		case errors.Is(err, ErrPasswordRequired):
			errorMsg = "Password is required"
		case errors.Is(err, ErrUsernameRequired):
			errorMsg = "Username is required"
		case errors.Is(err, ErrUsernameInvalid):
			errorMsg = "Username must be 3-64 characters, alphanumeric with underscore/hyphen only"
		default:
			ac.logger.Error("failed to create operator", zap.Error(err))
		}

		ac.render(c, http.StatusBadRequest, "setup.html", gin.H{
			"Title":     "Initial Setup",
			"Username":  username,
			"CSRFToken": GetCSRFToken(c),
			"Error":     errorMsg,
		})
		return
	}

	ac.logger.Info("operator account created", zap.String("username", user.Username))
	if ac.sessionManager != nil {
		_ = ac.sessionManager.CreateSession(c.Request, user)
	}
	c.Redirect(http.StatusFound, "/")
}

func (ac *AuthController) render(c *gin.Context, status int, name string, data gin.H) {
	if ac.templates == nil {
		c.JSON(status, data)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := ac.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		ac.logger.Error("template error", zap.String("template", name), zap.Error(err))
	}
}

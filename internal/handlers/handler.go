package handlers

import (
	"net/http"
	"time"

	"settingshub/internal/logger"
	"settingshub/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options configures the HTTP surface.
type Options struct {
	// LoginURL is the external login origin unauthenticated users are
	// pointed at. There is no local sign-in flow.
	LoginURL string
	// CookieName holds the opaque session id. Defaults to "session_id".
	CookieName string
	// CookieTTL is the cookie max age; zero yields a browser-session
	// cookie.
	CookieTTL time.Duration
	// SecureCookie marks the session cookie Secure.
	SecureCookie bool
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if opts.CookieName == "" {
		opts.CookieName = "session_id"
	}
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Session-gated API endpoints
	h.registerAPIRoutes(router)

	// Decorative starfield stream (HTTP upgrade), not session gated
	router.GET("/ws/starfield", h.wsStarfield)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.sessionGate)
	{
		api.GET("/me", h.me)
		api.GET("/tags", h.tagCatalog)
		api.POST("/logout", h.logout)

		h.registerProfileRoutes(api)
		h.registerProjectRoutes(api)
	}
}

func (h *Handler) registerProfileRoutes(api *gin.RouterGroup) {
	profile := api.Group("/profile")
	{
		profile.GET("", h.getProfile)
		profile.PUT("/bio", h.setBio)
		profile.POST("/tags", h.toggleTag)
		profile.POST("/tags/custom", h.addCustomTag)
		profile.DELETE("/tags/:tag", h.removeTag)
		profile.POST("/save", h.saveProfile)
	}
}

func (h *Handler) registerProjectRoutes(api *gin.RouterGroup) {
	api.GET("/users/search", h.searchUsers)

	projects := api.Group("/projects")
	{
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
		projects.PATCH("/:id", h.renameProject)
		projects.POST("/:id/members", h.addMember)
		projects.DELETE("/:id/members/:did", h.removeMember)
		projects.PATCH("/:id/members/:did", h.changeRole)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

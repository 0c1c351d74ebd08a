package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"project-manager/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	projects service.ProjectService
	store    Pinger
	log      logrus.FieldLogger
}

func NewHandler(users service.UserService, projects service.ProjectService, store Pinger, log logrus.FieldLogger) *Handler {
	return &Handler{
		users:    users,
		projects: projects,
		store:    store,
		log:      log,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.GET("/health", h.health)

	v1 := api.Group("/v1")
	users := v1.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
		users.GET("/:id/projects", h.listUserProjects)
	}

	projects := v1.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
		projects.PUT("/:id", h.updateProject)
		projects.DELETE("/:id", h.deleteProject)
		projects.POST("/:id/users/:userId/add", h.addProjectUser)
		projects.DELETE("/:id/users/:userId/remove", h.removeProjectUser)
	}
}

func (h *Handler) health(c *gin.Context) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.PingContext(ctx); err != nil {
			h.log.WithError(err).Warn("health check: store unreachable")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

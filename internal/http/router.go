package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterOptions tunes the engine built by NewRouter.
type RouterOptions struct {
	AllowOrigins []string
}

// NewRouter builds a gin engine with recovery, request logging, CORS and all
// API routes registered.
func NewRouter(h *Handler, opts RouterOptions) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(h.log))
	router.Use(corsMiddleware(opts.AllowOrigins))
	h.RegisterRoutes(router)
	return router, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}

package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/pbelx/ibm-hackathon/internal/config"
	"github.com/pbelx/ibm-hackathon/internal/http/handlers"
	"github.com/pbelx/ibm-hackathon/internal/http/middleware"

	_ "github.com/pbelx/ibm-hackathon/docs"
)

func Router(cfg config.Config, h *handlers.Handler, gatherer prometheus.Gatherer, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		MaxAge:       12 * time.Hour,
	}
	if cfg.CORSAllowed == "" || cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", h.Healthz)
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	if cfg.RequestTimeout > 0 {
		api.Use(requestTimeout(cfg.RequestTimeout))
	}
	{
		api.POST("/chat", h.Chat)
		api.GET("/leads", h.LeadsList)
		api.GET("/generator/test", h.GeneratorTest)
	}

	skill := api.Group("/skill")
	{
		skill.POST("/triage", h.SkillTriage)
		skill.POST("/resolve_territory", h.SkillResolveTerritory)
		skill.POST("/assign_technician", h.SkillAssignTechnician)
		skill.POST("/calculate_quote", h.SkillCalculateQuote)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Route not found", "details": c.Request.URL.Path}})
	})

	return r
}

// requestTimeout bounds the context seen by handlers and collaborators.
func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

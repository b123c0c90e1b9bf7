package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-description-generator/internal/config"
)

// CORSConfig builds the CORS policy from the configured origins.
func CORSConfig(cfg *config.Config) cors.Config {
	corsConfig := cors.DefaultConfig()
	if cfg.AllowAllOrigins() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	// browsers need this to read the PDF filename
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	return corsConfig
}

// NewRouter registers the routes. jobs may be nil when this server only
// fronts an external generator; POST /generate is then not served.
func NewRouter(jobs *JobHandler, descriptions *DescriptionHandler, corsConfig cors.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig))

	// Generator backend
	if jobs != nil {
		r.POST("/generate", jobs.Generate)
	}

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)

		// Description Routes
		api.POST("/descriptions", descriptions.Create)
		api.GET("/descriptions/:id", descriptions.Get)
		api.POST("/descriptions/:id/regenerate", descriptions.Regenerate)
		api.GET("/descriptions/:id/preview", descriptions.Preview)
		api.GET("/descriptions/:id/pdf", descriptions.PDF)
	}
	return r
}

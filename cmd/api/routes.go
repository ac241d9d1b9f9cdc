package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	if !app.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// simple logger middleware that uses zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "duration", time.Since(start))
	})

	// CORS Middleware
	origins := app.Config.GetCORSOrigins()
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, trusted := range origins {
			if strings.EqualFold(origin, trusted) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	if app.Config.Limiter.Enabled {
		r.Use(app.RateLimitMiddleware())
	}

	v1 := r.Group("/api/v1")
	{
		v1.POST("/signup", app.Handler.SignUp)
		v1.POST("/login", app.Handler.Login)
	}

	protected := v1.Group("/")
	protected.Use(app.AuthMiddleware())
	{
		protected.GET("/me", app.Handler.Me)

		// interview lifecycle routes
		protected.POST("/interviews", app.Handler.CreateInterview)
		protected.GET("/interviews", app.Handler.ListInterviews)
		protected.GET("/interviews/:id", app.Handler.GetInterview)
		protected.POST("/interviews/:id/start", app.Handler.StartInterview)
		protected.GET("/interviews/:id/session", app.Handler.GetInterviewSession)
		protected.POST("/interviews/:id/end", app.Handler.EndInterview)
		protected.DELETE("/interviews/:id", app.Handler.DeleteInterview)
		protected.GET("/interviews/:id/results", app.Handler.GetInterviewResults)

		// analytics routes
		protected.GET("/analytics/progress", app.Handler.GetProgress)
		protected.GET("/analytics/readiness", app.Handler.GetReadiness)
		protected.GET("/leaderboard", app.Handler.GetLeaderboard)

		// career routes
		protected.GET("/resources", app.Handler.ListResources)
		protected.GET("/jobs", app.Handler.ListJobs)
	}

	return r
}

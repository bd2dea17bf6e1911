// Package router assembles the Gin engine and its routes.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	jobhandler "jobnaut/internal/feature/job/transport/handler"
	savedjobhandler "jobnaut/internal/feature/savedjob/transport/handler"
	userhandler "jobnaut/internal/feature/user/transport/handler"
	platformhandler "jobnaut/internal/platform/http/handler"
	jwtmw "jobnaut/internal/platform/jwt"
	"jobnaut/internal/platform/logging"
)

// Handlers are the feature handlers mounted by NewRouter.
type Handlers struct {
	Health    *platformhandler.HealthHandler
	Jobs      *jobhandler.JobHandler
	Profile   *userhandler.ProfileHandler
	SavedJobs *savedjobhandler.SavedJobHandler
}

// Options configures middleware.
type Options struct {
	AllowedOrigins []string
	JWTSecret      string
	Sync           jwtmw.SyncFunc
}

// NewRouter builds the engine. Read-only job routes are public; everything
// else requires a bearer token.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowAllOrigins:  len(opts.AllowedOrigins) == 0,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", logging.HeaderRequestID},
		ExposeHeaders:    []string{logging.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// public
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)

	jobs := r.Group("/jobs")
	jobs.GET("", h.Jobs.ListJobs)
	jobs.GET("/search", h.Jobs.SearchJobs)
	jobs.GET("/by-skills", h.Jobs.JobsBySkills)
	jobs.GET("/:id", h.Jobs.GetJob)

	// protected
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(opts.JWTSecret, opts.Sync))
	{
		auth.POST("/jobs", h.Jobs.CreateJob)
		auth.PUT("/jobs/:id", h.Jobs.UpdateJob)
		auth.DELETE("/jobs/:id", h.Jobs.DeleteJob)

		auth.GET("/user/profile", h.Profile.GetProfile)
		auth.PUT("/user/profile", h.Profile.UpdateProfile)
		auth.POST("/user/skills", h.Profile.AddSkills)
		auth.DELETE("/user/skills", h.Profile.RemoveSkills)

		auth.GET("/saved-jobs", h.SavedJobs.List)
		auth.POST("/saved-jobs", h.SavedJobs.Save)
		auth.GET("/saved-jobs/:jobId", h.SavedJobs.Get)
		auth.PUT("/saved-jobs/:jobId", h.SavedJobs.Update)
		auth.DELETE("/saved-jobs/:jobId", h.SavedJobs.Delete)
	}

	return r
}

package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/config"
	"github.com/princinho/stonevitrine/controllers"
	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/logger"
	"github.com/princinho/stonevitrine/middleware"
	"github.com/princinho/stonevitrine/notify"
	"github.com/princinho/stonevitrine/storage"
	"github.com/princinho/stonevitrine/utils"
)

// Site is the server-rendered front end mounted next to the API.
type Site interface {
	Register(g *gin.RouterGroup)
}

type Deps struct {
	Config     *config.Configuration
	Stores     *database.Stores
	Validator  *storage.ImageValidator
	Uploader   storage.Uploader
	Dispatcher *notify.Dispatcher
	Site       Site
}

func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	utils.RegisterJSONTagNames()

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.Proxies()); err != nil {
		logger.App().WithError(err).Warn("invalid TRUSTED_PROXIES, trusting no proxy")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(logger.RequestID())
	r.Use(logger.AccessLog())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.Origins()))
	r.Use(middleware.AdminPerimeter(cfg.AdminPath, cfg.AdminUser, cfg.AdminPass))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API Site Vitrine en ligne")
	})
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if local, ok := d.Uploader.(*storage.LocalUploader); ok {
		r.Static(local.PublicPath(), local.Dir())
	}
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})

	auth := middleware.AuthMiddleware(cfg.JwtSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JwtSecret)
	limit := middleware.Noop()
	if cfg.RateLimitEnabled {
		limit = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware()
	}
	authCfg := controllers.AuthConfig{
		Secret: cfg.JwtSecret,
		Cookie: utils.CookieOptions{Secure: cfg.CookieSecure, Domain: cfg.CookieDomain, TTL: cfg.SessionTTL()},
	}
	s := d.Stores

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", limit, controllers.Login(s.Users, authCfg))
		authGroup.POST("/logout", controllers.Logout(authCfg))
		authGroup.GET("/profile", auth, controllers.GetProfile(s.Users))
		authGroup.PUT("/profile", auth, controllers.UpdateProfile(s.Users, authCfg))
		authGroup.PUT("/profile/password", auth, controllers.ChangeMyPassword(s.Users))
	}

	collections := api.Group("/collections")
	{
		collections.GET("/active", controllers.GetActiveCollections(s.Collections))
		collections.GET("/:id", optionalAuth, controllers.GetCollection(s.Collections))
		collections.GET("", auth, controllers.GetCollections(s.Collections))
		collections.POST("", auth, controllers.AddCollection(s.Collections))
		collections.PUT("/:id", auth, controllers.UpdateCollection(s.Collections))
		collections.DELETE("/:id", auth, controllers.DeleteCollection(s.Collections))
	}

	projects := api.Group("/projects")
	{
		projects.GET("", controllers.GetProjects(s.Projects))
		projects.GET("/:id", controllers.GetProject(s.Projects))
		projects.PATCH("/:id/like", limit, controllers.LikeProject(s.Projects))
		projects.POST("", auth, controllers.AddProject(s.Projects))
		projects.PUT("/:id", auth, controllers.UpdateProject(s.Projects))
		projects.DELETE("/:id", auth, controllers.DeleteProject(s.Projects))
	}

	team := api.Group("/team")
	{
		team.GET("", controllers.GetTeam(s.Team))
		team.GET("/:id", controllers.GetTeamMember(s.Team))
		team.POST("", auth, controllers.AddTeamMember(s.Team))
		team.PUT("/:id", auth, controllers.UpdateTeamMember(s.Team))
		team.DELETE("/:id", auth, controllers.DeleteTeamMember(s.Team))
	}

	testimonials := api.Group("/testimonials")
	{
		testimonials.GET("/featured", controllers.GetFeaturedTestimonials(s.Testimonials))
		testimonials.GET("/approved", controllers.GetApprovedTestimonials(s.Testimonials))
		testimonials.POST("", limit, controllers.SubmitTestimonial(s.Testimonials))
		testimonials.GET("", auth, controllers.GetTestimonials(s.Testimonials))
		testimonials.GET("/:id", auth, controllers.GetTestimonial(s.Testimonials))
		testimonials.PUT("/:id", auth, controllers.UpdateTestimonial(s.Testimonials))
		testimonials.PATCH("/:id/approve", auth, controllers.ToggleTestimonialApproval(s.Testimonials))
		testimonials.PATCH("/:id/feature", auth, controllers.ToggleTestimonialFeatured(s.Testimonials))
		testimonials.DELETE("/:id", auth, controllers.DeleteTestimonial(s.Testimonials))
	}

	expertise := api.Group("/expertise")
	{
		expertise.GET("", controllers.GetExpertises(s.Expertise))
		expertise.GET("/active", controllers.GetActiveExpertises(s.Expertise))
		expertise.GET("/:id", controllers.GetExpertise(s.Expertise))
		expertise.POST("", auth, controllers.AddExpertise(s.Expertise))
		expertise.PUT("/:id", auth, controllers.UpdateExpertise(s.Expertise))
		expertise.DELETE("/:id", auth, controllers.DeleteExpertise(s.Expertise))
	}

	messages := api.Group("/messages")
	{
		messages.POST("", limit, controllers.CreateMessage(s.Messages, s.Settings, d.Dispatcher))
		messages.GET("", auth, controllers.GetMessages(s.Messages))
		messages.GET("/:id", auth, controllers.GetMessage(s.Messages))
		messages.PUT("/:id/read", auth, controllers.MarkMessageRead(s.Messages))
		messages.DELETE("/:id", auth, controllers.DeleteMessage(s.Messages))
	}

	settings := api.Group("/settings")
	{
		settings.GET("", controllers.GetSettings(s.Settings))
		settings.PUT("", auth, controllers.UpdateSettings(s.Settings))
	}

	if d.Uploader != nil && d.Validator != nil {
		api.POST("/upload", auth, controllers.UploadImage(d.Validator, d.Uploader))
	}

	api.GET("/admin/dashboard", auth, controllers.GetDashboard(s))
	if prefix := strings.TrimRight(cfg.AdminPath, "/"); prefix != "" {
		r.GET(prefix+"/dashboard", auth, controllers.GetDashboard(s))
	}

	if d.Site != nil && cfg.WebEnabled {
		d.Site.Register(r.Group(cfg.WebPrefix))
	}

	return r
}

// corsMiddleware allows the listed origins with credentials. With no list,
// any origin is reflected, which suits local development.
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	logger.App().WithField("origins", origins).Debug("cors configured")

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return len(allowed) == 0 || allowed[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

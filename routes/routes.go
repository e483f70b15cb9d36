package routes

import (
	"net/http"
	"path/filepath"
	"time"

	"vetchat/config"
	"vetchat/handlers"
	"vetchat/middleware"
	"vetchat/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/health", hb.HealthHandler)
}

// RegisterChatRoutes registers the widget's chat endpoints.
func RegisterChatRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	chat := api.Group("/chat")
	{
		chat.POST("/message", hb.SendMessageHandler)
		chat.GET("/history/:sessionId", hb.ChatHistoryHandler)
		chat.POST("/reset-appointment/:sessionId", hb.ResetAppointmentHandler)
	}
}

// RegisterSessionRoutes registers session endpoints.
func RegisterSessionRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	sessions := api.Group("/sessions")
	{
		sessions.POST("", hb.CreateSessionHandler)
		sessions.GET("/user/:userId", hb.GetSessionsByUserHandler)
		sessions.GET("/:sessionId", hb.GetSessionHandler)
		sessions.DELETE("/:sessionId", hb.DeleteSessionHandler)
	}
}

// RegisterAppointmentRoutes registers appointment endpoints. Creation and the
// per-session lookup stay public for the widget; management needs an admin token.
func RegisterAppointmentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	appointments := api.Group("/appointments")
	{
		appointments.POST("", hb.CreateAppointmentHandler)
		appointments.GET("/session/:sessionId", hb.AppointmentsBySessionHandler)

		admin := appointments.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware(hb.AdminJWTSecret))
		admin.GET("", hb.ListAppointmentsHandler)
		admin.GET("/upcoming", hb.UpcomingAppointmentsHandler)
		admin.GET("/phone/:phone", hb.AppointmentsByPhoneHandler)
		admin.GET("/:id", hb.GetAppointmentHandler)
		admin.PATCH("/:id", hb.UpdateAppointmentHandler)
		admin.POST("/:id/cancel", hb.CancelAppointmentHandler)
		admin.DELETE("/:id", hb.DeleteAppointmentHandler)
	}
}

// RegisterWidgetRoutes serves the embeddable widget script and its assets.
func RegisterWidgetRoutes(r *gin.Engine, publicDir string) {
	r.Static("/static", publicDir)
	r.GET("/chatbot.js", func(c *gin.Context) {
		c.File(filepath.Join(publicDir, "chatbot.js"))
	})
}

// corsConfig allows every origin outside production and the configured list in it.
func corsConfig() cors.Config {
	allowed := map[string]bool{}
	for _, o := range config.AllowedOrigins() {
		allowed[o] = true
	}
	production := config.IsProduction()

	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return !production || allowed["*"] || allowed[origin]
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Session-Id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(utils.ErrorHandler())
	r.Use(cors.New(corsConfig()))
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	api := r.Group("/api")
	RegisterHealthRoute(api, hb)
	RegisterChatRoutes(api, hb)
	RegisterSessionRoutes(api, hb)
	RegisterAppointmentRoutes(api, hb)

	RegisterWidgetRoutes(r, config.AppConfig.PublicDir)
	r.NoRoute(utils.NotFoundHandler)
}

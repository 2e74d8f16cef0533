package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugabest/estatedb/internal/data"
	"github.com/nugabest/estatedb/internal/middleware"
	"github.com/nugabest/estatedb/internal/models"
	"go.uber.org/zap"
)

type Deps struct {
	Service   *data.Service
	Assistant Assistant
	JWTSecret string
	Logger    *zap.Logger
}

// NewRouter wires every handler under /v1.
//
// Routes come in three groups: public, authenticated (valid Bearer token)
// and admin (authenticated with the admin role). The maintenance gate sits
// in front of all of them.
func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	authH := NewAuthHandler(d.Service, d.JWTSecret, logger)
	users := NewUserHandler(d.Service, logger)
	props := NewPropertyHandler(d.Service, logger)
	inquiries := NewInquiryHandler(d.Service, logger)
	txs := NewTransactionHandler(d.Service, logger)
	settings := NewSettingsHandler(d.Service, logger)
	appts := NewAppointmentHandler(d.Service, logger)
	msgs := NewMessageHandler(d.Service, logger)
	offers := NewOfferHandler(d.Service, logger)

	v1 := r.Group("/v1")
	v1.Use(middleware.Maintenance(d.Service, d.JWTSecret, logger, "/v1/auth/login"))

	// Public. Load balancers hit /health without a token.
	v1.GET("/health", func(c *gin.Context) {
		if _, err := d.Service.Store().Tables(c.Request.Context()); err != nil {
			logger.Error("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "storage unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1.POST("/auth/signup", authH.Signup)
	v1.POST("/auth/login", authH.Login)
	v1.GET("/properties", props.List)
	v1.GET("/properties/:id", middleware.OptionalAuth(d.JWTSecret), props.Get)
	v1.POST("/inquiries", inquiries.Create)
	v1.GET("/settings", settings.Get)
	if d.Assistant != nil {
		assistantH := NewAssistantHandler(d.Assistant, logger)
		v1.POST("/assistant/chat", assistantH.Chat)
		v1.GET("/assistant/ws", assistantH.Stream)
	}

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(d.JWTSecret))
	authed.GET("/users/me", users.GetMe)
	authed.PATCH("/users/me", users.UpdateMe)
	authed.POST("/properties", props.Create)
	authed.PUT("/properties/:id", props.Upsert)
	authed.GET("/me/properties", props.ListMine)
	authed.GET("/me/saved", props.ListSaved)
	authed.POST("/me/saved", props.ToggleSaved)
	authed.GET("/me/transactions", txs.ListMine)
	authed.GET("/me/appointments", appts.List)
	authed.POST("/me/appointments", appts.Create)
	authed.PATCH("/me/appointments/:id", appts.UpdateStatus)
	authed.GET("/me/messages", msgs.List)
	authed.POST("/me/messages", msgs.Create)
	authed.GET("/me/offers", offers.List)
	authed.POST("/me/offers", offers.Create)
	authed.PATCH("/me/offers/:id", offers.UpdateStatus)

	admin := authed.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.DELETE("/properties/:id", props.Delete)
	admin.GET("/admin/users", users.List)
	admin.PATCH("/admin/users/:id", users.Update)
	admin.GET("/admin/inquiries", inquiries.List)
	admin.GET("/admin/transactions", txs.List)
	admin.POST("/admin/transactions", txs.Create)
	admin.PUT("/admin/settings", settings.Update)
	admin.POST("/admin/properties/:id/approve", props.Moderate)

	return r
}

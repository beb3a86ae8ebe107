package handler

import (
	"context"
	"net/http"

	"donor-finder-api/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Accounts *AccountHandler
	Profiles *ProfileHandler
	Donors   *DonorHandler
	Messages *MessageHandler
	Activity *ActivityHandler
}

// NewRouter builds the gin engine with every API route. Routes under /api,
// except register and login, require a valid token.
func NewRouter(h Handlers, tokens TokenValidator, db Pinger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware())

	r.GET("/health", func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.POST("/register", h.Accounts.Register)
	api.POST("/login", h.Accounts.Login)

	protected := api.Group("", AuthMiddleware(tokens))
	protected.POST("/logout", h.Accounts.Logout)

	protected.GET("/profile", h.Profiles.Get)
	protected.PUT("/profile", h.Profiles.Update)

	protected.GET("/donors", h.Donors.Search)
	protected.GET("/donors/:id", h.Profiles.GetPublic)

	protected.GET("/messages", h.Messages.Conversation)
	protected.POST("/messages", h.Messages.Send)
	protected.GET("/messages/inbox", h.Messages.Inbox)

	protected.POST("/update-activity", h.Activity.Update)

	return r
}

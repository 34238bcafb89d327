package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sergio11/instangular-rest-api/internal/apicodes"
	"github.com/sergio11/instangular-rest-api/internal/config"
	"github.com/sergio11/instangular-rest-api/internal/dto"
	"github.com/sergio11/instangular-rest-api/internal/model"
	"github.com/sergio11/instangular-rest-api/internal/service"
)

type Handler struct {
	services *service.Service
	cfg      *config.Config
}

func New(services *service.Service, cfg *config.Config) *Handler {
	return &Handler{
		services: services,
		cfg:      cfg,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{h.cfg.Client.Origin},
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(apicodes.APINotFound, "API not found"))
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health-check", func(c *gin.Context) {
			c.String(http.StatusOK, "OK")
		})

		accounts := v1.Group("/accounts")
		{
			accounts.POST("/signup", h.accountsSignUp)
			accounts.GET("/confirm/:token", h.accountsConfirm)
			accounts.POST("/signin", h.accountsSignIn)
			accounts.POST("/signin/facebook", h.accountsSignInWithFacebook)
			accounts.POST("/reset-password", h.accountsRequestPasswordReset)
			accounts.POST("/reset-password/:token", h.accountsResetPassword)
		}

		users := v1.Group("/users")
		{
			users.Use(h.authMiddleware)

			users.GET("", h.usersList)
			users.GET("/self", h.usersSelf)
			users.PUT("/self", h.usersUpdate)
			users.DELETE("/self", h.usersDelete)
			users.GET("/self/follows", h.usersFollows)
			users.GET("/self/followed-by", h.usersFollowedBy)
			users.GET("/:id", h.usersGetByID)
			users.PUT("/:id/follow", h.usersFollow)
			users.PUT("/:id/unfollow", h.usersUnfollow)
		}

		media := v1.Group("/media")
		{
			media.Use(h.authMiddleware)

			media.GET("", h.mediaListOwn)
			media.POST("", h.mediaCreate)
			media.GET("/search", h.mediaSearch)
			media.GET("/:id", h.mediaGet)
			media.DELETE("/:id", h.mediaRemove)
			media.GET("/:id/comments", h.mediaComments)
			media.POST("/:id/comments", h.mediaAddComment)
		}
	}

	return r
}

func (h *Handler) getUser(c *gin.Context) *model.User {
	userReq, _ := c.Get("user")

	user, ok := userReq.(model.User)
	if !ok {
		return nil
	}

	return &user
}

package http

import (
	"net/http"
	"time"

	"github.com/Miraines/MoonyAndStarry/blog-service/internal/adapters/transport/http/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

func NewRouter(h *Handler, rc RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(h.log))

	if len(rc.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: rc.AllowedOrigins,
			AllowMethods: []string{
				http.MethodGet, http.MethodPost, http.MethodPut,
				http.MethodPatch, http.MethodDelete, http.MethodOptions,
			},
			AllowHeaders: []string{
				"Origin", "Content-Type", "Accept",
				"Authorization",
				"X-Requested-With",
				middleware.RequestIDHeader,
			},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: rc.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/", h.Index)
	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := router.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/token/refresh", h.Refresh)

	users := router.Group("/users")
	users.GET("/", h.ListUsers)
	users.GET("/:id", h.GetUser)

	requireUser := h.RequireUser()

	articles := router.Group("/articles")
	articles.GET("/", h.ListArticles)
	articles.GET("/:id", h.GetArticle)
	articles.GET("/:id/comments", h.ListArticleComments)
	articles.POST("/", requireUser, h.CreateArticle)
	articles.PUT("/:id", requireUser, h.UpdateArticle)
	articles.DELETE("/:id", requireUser, h.DeleteArticle)

	comments := router.Group("/comments")
	comments.GET("/", h.ListComments)
	comments.GET("/:id", h.GetComment)
	comments.POST("/", requireUser, h.CreateComment)
	comments.PUT("/:id", requireUser, h.UpdateComment)
	comments.DELETE("/:id", requireUser, h.DeleteComment)

	return router
}

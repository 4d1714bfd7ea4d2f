package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Miraines/MoonyAndStarry/blog-service/internal/adapters/transport/http/dto"
	authsvc "github.com/Miraines/MoonyAndStarry/blog-service/internal/app/auth/service"
	blogsvc "github.com/Miraines/MoonyAndStarry/blog-service/internal/app/blog/service"
	customErrors "github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/errors"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthChecker interface {
	Check(ctx context.Context) error
}

type Handler struct {
	auth   authsvc.Service
	blog   blogsvc.Service
	health HealthChecker
	log    *zap.Logger
}

func NewHandler(auth authsvc.Service, blog blogsvc.Service, health HealthChecker, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{auth: auth, blog: blog, health: health, log: log}
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Blog API</title></head>
<body><h1>Blog API</h1><p>See /articles/, /comments/ and /users/.</p></body>
</html>`

func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.health.Check(c.Request.Context()); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

/* ─────────────────────────────── auth ─────────────────────────────── */

func (h *Handler) Register(c *gin.Context) {
	var body dto.RegisterDTO
	if !h.bind(c, &body) {
		return
	}
	user, err := h.auth.Register(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.log.Info("user registered", zap.Int64("user_id", user.ID))
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *Handler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if !h.bind(c, &body) {
		return
	}
	pair, err := h.auth.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTokenResponse(pair))
}

func (h *Handler) Refresh(c *gin.Context) {
	var body dto.RefreshDTO
	if !h.bind(c, &body) {
		return
	}
	pair, err := h.auth.Refresh(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTokenResponse(pair))
}

/* ─────────────────────────────── users ─────────────────────────────── */

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.blog.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponses(users))
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	user, err := h.blog.GetUser(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

/* ────────────────────────────── articles ────────────────────────────── */

func (h *Handler) ListArticles(c *gin.Context) {
	articles, err := h.blog.ListArticles(c.Request.Context(), model.ArticleFilter{
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArticleResponses(articles))
}

func (h *Handler) GetArticle(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	a, err := h.blog.GetArticle(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArticleResponse(a))
}

func (h *Handler) ListArticleComments(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	comments, err := h.blog.ListArticleComments(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponses(comments))
}

func (h *Handler) CreateArticle(c *gin.Context) {
	var body dto.CreateArticleDTO
	if !h.bind(c, &body) {
		return
	}
	user, _ := CurrentUser(c)
	a, err := h.blog.CreateArticle(c.Request.Context(), user, body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArticleResponse(a))
}

func (h *Handler) UpdateArticle(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var body dto.UpdateArticleDTO
	if !h.bind(c, &body) {
		return
	}
	user, _ := CurrentUser(c)
	a, err := h.blog.UpdateArticle(c.Request.Context(), user, id, body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArticleResponse(a))
}

func (h *Handler) DeleteArticle(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	user, _ := CurrentUser(c)
	if err := h.blog.DeleteArticle(c.Request.Context(), user, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}

/* ────────────────────────────── comments ────────────────────────────── */

func (h *Handler) ListComments(c *gin.Context) {
	comments, err := h.blog.ListComments(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponses(comments))
}

func (h *Handler) GetComment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	comment, err := h.blog.GetComment(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponse(comment))
}

func (h *Handler) CreateComment(c *gin.Context) {
	var body dto.CreateCommentDTO
	if !h.bind(c, &body) {
		return
	}
	user, _ := CurrentUser(c)
	comment, err := h.blog.CreateComment(c.Request.Context(), user, body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponse(comment))
}

func (h *Handler) UpdateComment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var body dto.UpdateCommentDTO
	if !h.bind(c, &body) {
		return
	}
	user, _ := CurrentUser(c)
	comment, err := h.blog.UpdateComment(c.Request.Context(), user, id, body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponse(comment))
}

func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	user, _ := CurrentUser(c)
	if err := h.blog.DeleteComment(c.Request.Context(), user, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

/* ────────────────────────────── helpers ────────────────────────────── */

func (h *Handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.handleError(c, customErrors.NewInvalidArgument(err.Error()))
		return false
	}
	return true
}

func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.handleError(c, customErrors.NewInvalidArgument("id must be a positive integer"))
		return 0, false
	}
	return id, true
}

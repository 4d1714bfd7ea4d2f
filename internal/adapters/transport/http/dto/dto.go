package dto

import (
	"time"

	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/model"
)

type RegisterDTO struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=1,max=255"`
}

type LoginDTO struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required,min=1,max=255"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateArticleDTO struct {
	Title    string `json:"title"    validate:"required,min=1,max=200"`
	Content  string `json:"content"  validate:"required,min=1"`
	Category string `json:"category" validate:"required,min=1,max=30"`
}

// UpdateArticleDTO carries a partial update; nil fields are left untouched.
type UpdateArticleDTO struct {
	Title    *string `json:"title"    validate:"omitempty,min=1,max=200"`
	Content  *string `json:"content"  validate:"omitempty,min=1"`
	Category *string `json:"category" validate:"omitempty,min=1,max=30"`
}

type CreateCommentDTO struct {
	Content   string `json:"content"    validate:"required,min=1"`
	ArticleID int64  `json:"article_id" validate:"required,gt=0"`
}

type UpdateCommentDTO struct {
	Content *string `json:"content" validate:"omitempty,min=1"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type ArticleResponse struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Category  string       `json:"category"`
	CreatedAt time.Time    `json:"created_at"`
	Author    UserResponse `json:"author"`
}

type CommentResponse struct {
	ID        int64        `json:"id"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	ArticleID int64        `json:"article_id"`
	Author    UserResponse `json:"author"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}

func NewUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

func NewArticleResponse(a model.Article) ArticleResponse {
	return ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Category:  a.Category,
		CreatedAt: a.CreatedAt,
		Author:    NewUserResponse(a.Author),
	}
}

func NewArticleResponses(articles []model.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, NewArticleResponse(a))
	}
	return out
}

func NewCommentResponse(c model.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		ArticleID: c.ArticleID,
		Author:    NewUserResponse(c.Author),
	}
}

func NewCommentResponses(comments []model.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentResponse(c))
	}
	return out
}

func NewTokenResponse(p model.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
		ExpiresIn:    int64(p.AccessTTL.Seconds()),
	}
}

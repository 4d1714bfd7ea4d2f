package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/model"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)

	GetUserByID(ctx context.Context, id int64) (model.User, error)

	GetUserByUsername(ctx context.Context, username string) (model.User, error)

	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	ListUsers(ctx context.Context) ([]model.User, error)
}

type ArticleRepo interface {
	CreateArticle(ctx context.Context, a model.Article) (model.Article, error)

	GetArticleByID(ctx context.Context, id int64) (model.Article, error)

	ListArticles(ctx context.Context, f model.ArticleFilter) ([]model.Article, error)

	UpdateArticle(ctx context.Context, a model.Article) (model.Article, error)

	DeleteArticle(ctx context.Context, id int64) error
}

type CommentRepo interface {
	CreateComment(ctx context.Context, c model.Comment) (model.Comment, error)

	GetCommentByID(ctx context.Context, id int64) (model.Comment, error)

	ListComments(ctx context.Context) ([]model.Comment, error)

	ListCommentsByArticle(ctx context.Context, articleID int64) ([]model.Comment, error)

	UpdateComment(ctx context.Context, c model.Comment) (model.Comment, error)

	DeleteComment(ctx context.Context, id int64) error
}

// ArticleCache is a best-effort read cache in front of ArticleRepo.
type ArticleCache interface {
	Get(ctx context.Context, id int64) (model.Article, bool, error)

	Set(ctx context.Context, a model.Article) error

	Invalidate(ctx context.Context, id int64) error
}

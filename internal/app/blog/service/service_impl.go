package service

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/blog-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/errors"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/model"
	repo "github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/repo"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Service interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)

	ListArticles(ctx context.Context, f model.ArticleFilter) ([]model.Article, error)
	GetArticle(ctx context.Context, id int64) (model.Article, error)
	CreateArticle(ctx context.Context, author model.User, in dto.CreateArticleDTO) (model.Article, error)
	UpdateArticle(ctx context.Context, caller model.User, id int64, in dto.UpdateArticleDTO) (model.Article, error)
	DeleteArticle(ctx context.Context, caller model.User, id int64) error
	ListArticleComments(ctx context.Context, articleID int64) ([]model.Comment, error)

	ListComments(ctx context.Context) ([]model.Comment, error)
	GetComment(ctx context.Context, id int64) (model.Comment, error)
	CreateComment(ctx context.Context, author model.User, in dto.CreateCommentDTO) (model.Comment, error)
	UpdateComment(ctx context.Context, caller model.User, id int64, in dto.UpdateCommentDTO) (model.Comment, error)
	DeleteComment(ctx context.Context, caller model.User, id int64) error
}

type blogService struct {
	users    repo.UserRepo
	articles repo.ArticleRepo
	comments repo.CommentRepo
	cache    repo.ArticleCache
	v        *validator.Validate
	log      *zap.Logger
}

func New(
	ur repo.UserRepo,
	ar repo.ArticleRepo,
	cr repo.CommentRepo,
	cache repo.ArticleCache,
	v *validator.Validate,
	log *zap.Logger,
) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &blogService{
		users: ur, articles: ar, comments: cr, cache: cache, v: v, log: log,
	}
}

func (s *blogService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *blogService) GetUser(ctx context.Context, id int64) (model.User, error) {
	return s.users.GetUserByID(ctx, id)
}

func (s *blogService) ListArticles(ctx context.Context, f model.ArticleFilter) ([]model.Article, error) {
	if f.Sort != model.SortDateAsc && f.Sort != model.SortDateDesc {
		f.Sort = ""
	}
	return s.articles.ListArticles(ctx, f)
}

func (s *blogService) GetArticle(ctx context.Context, id int64) (model.Article, error) {
	if a, ok, err := s.cache.Get(ctx, id); err != nil {
		s.log.Warn("article cache read failed", zap.Int64("article_id", id), zap.Error(err))
	} else if ok {
		return a, nil
	}

	a, err := s.articles.GetArticleByID(ctx, id)
	if err != nil {
		return model.Article{}, err
	}

	if err := s.cache.Set(ctx, a); err != nil {
		s.log.Warn("article cache write failed", zap.Int64("article_id", id), zap.Error(err))
	}
	return a, nil
}

func (s *blogService) CreateArticle(ctx context.Context, author model.User, in dto.CreateArticleDTO) (model.Article, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Article{}, customErrors.NewInvalidArgument(err.Error())
	}

	return s.articles.CreateArticle(ctx, model.Article{
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		AuthorID: author.ID,
	})
}

func (s *blogService) UpdateArticle(ctx context.Context, caller model.User, id int64, in dto.UpdateArticleDTO) (model.Article, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Article{}, customErrors.NewInvalidArgument(err.Error())
	}

	a, err := s.articles.GetArticleByID(ctx, id)
	if err != nil {
		return model.Article{}, err
	}
	if a.AuthorID != caller.ID {
		return model.Article{}, customErrors.ErrForbidden
	}

	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Content != nil {
		a.Content = *in.Content
	}
	if in.Category != nil {
		a.Category = *in.Category
	}

	updated, err := s.articles.UpdateArticle(ctx, a)
	if err != nil {
		return model.Article{}, err
	}
	s.invalidate(ctx, id)
	return updated, nil
}

func (s *blogService) DeleteArticle(ctx context.Context, caller model.User, id int64) error {
	a, err := s.articles.GetArticleByID(ctx, id)
	if err != nil {
		return err
	}
	if a.AuthorID != caller.ID {
		return customErrors.ErrForbidden
	}

	if err := s.articles.DeleteArticle(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *blogService) ListArticleComments(ctx context.Context, articleID int64) ([]model.Comment, error) {
	if _, err := s.articles.GetArticleByID(ctx, articleID); err != nil {
		return nil, err
	}
	return s.comments.ListCommentsByArticle(ctx, articleID)
}

func (s *blogService) ListComments(ctx context.Context) ([]model.Comment, error) {
	return s.comments.ListComments(ctx)
}

func (s *blogService) GetComment(ctx context.Context, id int64) (model.Comment, error) {
	return s.comments.GetCommentByID(ctx, id)
}

func (s *blogService) CreateComment(ctx context.Context, author model.User, in dto.CreateCommentDTO) (model.Comment, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Comment{}, customErrors.NewInvalidArgument(err.Error())
	}
	if _, err := s.articles.GetArticleByID(ctx, in.ArticleID); err != nil {
		return model.Comment{}, err
	}

	return s.comments.CreateComment(ctx, model.Comment{
		Content:   in.Content,
		AuthorID:  author.ID,
		ArticleID: in.ArticleID,
	})
}

func (s *blogService) UpdateComment(ctx context.Context, caller model.User, id int64, in dto.UpdateCommentDTO) (model.Comment, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Comment{}, customErrors.NewInvalidArgument(err.Error())
	}

	c, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return model.Comment{}, err
	}
	if c.AuthorID != caller.ID {
		return model.Comment{}, customErrors.ErrForbidden
	}

	if in.Content != nil {
		c.Content = *in.Content
	}
	return s.comments.UpdateComment(ctx, c)
}

func (s *blogService) DeleteComment(ctx context.Context, caller model.User, id int64) error {
	c, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return err
	}
	if c.AuthorID != caller.ID {
		return customErrors.ErrForbidden
	}
	return s.comments.DeleteComment(ctx, id)
}

func (s *blogService) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn("article cache invalidation failed", zap.Int64("article_id", id), zap.Error(err))
	}
}

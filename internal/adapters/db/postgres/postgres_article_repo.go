package postgres

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresArticleRepo struct {
	db *gorm.DB
}

func NewPostgresArticleRepo(db *gorm.DB) *PostgresArticleRepo {
	return &PostgresArticleRepo{db: db}
}

func (p *PostgresArticleRepo) CreateArticle(ctx context.Context, a model.Article) (model.Article, error) {
	if err := p.db.WithContext(ctx).Omit(clause.Associations).Create(&a).Error; err != nil {
		return model.Article{}, mapError(err, "article", "CreateArticle")
	}
	return p.GetArticleByID(ctx, a.ID)
}

func (p *PostgresArticleRepo) GetArticleByID(ctx context.Context, id int64) (model.Article, error) {
	var a model.Article
	err := p.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&a).Error
	if err != nil {
		return model.Article{}, mapError(err, "article", "GetArticleByID")
	}
	return a, nil
}

func (p *PostgresArticleRepo) ListArticles(ctx context.Context, f model.ArticleFilter) ([]model.Article, error) {
	q := p.db.WithContext(ctx).Preload("Author")
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	switch f.Sort {
	case model.SortDateDesc:
		q = q.Order("created_at DESC").Order("id DESC")
	case model.SortDateAsc:
		q = q.Order("created_at ASC").Order("id ASC")
	default:
		q = q.Order("id")
	}

	var articles []model.Article
	if err := q.Find(&articles).Error; err != nil {
		return nil, mapError(err, "article", "ListArticles")
	}
	return articles, nil
}

func (p *PostgresArticleRepo) UpdateArticle(ctx context.Context, a model.Article) (model.Article, error) {
	res := p.db.WithContext(ctx).
		Model(&model.Article{ID: a.ID}).
		Select("title", "content", "category").
		Updates(model.Article{Title: a.Title, Content: a.Content, Category: a.Category})
	if err := res.Error; err != nil {
		return model.Article{}, mapError(err, "article", "UpdateArticle")
	}
	return p.GetArticleByID(ctx, a.ID)
}

// DeleteArticle removes the article together with its comments.
func (p *PostgresArticleRepo) DeleteArticle(ctx context.Context, id int64) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return mapError(err, "comment", "DeleteArticle")
		}
		res := tx.Delete(&model.Article{}, id)
		if err := res.Error; err != nil {
			return mapError(err, "article", "DeleteArticle")
		}
		if res.RowsAffected == 0 {
			return mapError(gorm.ErrRecordNotFound, "article", "DeleteArticle")
		}
		return nil
	})
}

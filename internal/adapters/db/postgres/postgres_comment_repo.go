package postgres

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresCommentRepo struct {
	db *gorm.DB
}

func NewPostgresCommentRepo(db *gorm.DB) *PostgresCommentRepo {
	return &PostgresCommentRepo{db: db}
}

func (p *PostgresCommentRepo) CreateComment(ctx context.Context, c model.Comment) (model.Comment, error) {
	if err := p.db.WithContext(ctx).Omit(clause.Associations).Create(&c).Error; err != nil {
		return model.Comment{}, mapError(err, "comment", "CreateComment")
	}
	return p.GetCommentByID(ctx, c.ID)
}

func (p *PostgresCommentRepo) GetCommentByID(ctx context.Context, id int64) (model.Comment, error) {
	var c model.Comment
	if err := p.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&c).Error; err != nil {
		return model.Comment{}, mapError(err, "comment", "GetCommentByID")
	}
	return c, nil
}

func (p *PostgresCommentRepo) ListComments(ctx context.Context) ([]model.Comment, error) {
	var comments []model.Comment
	if err := p.db.WithContext(ctx).Preload("Author").Order("id").Find(&comments).Error; err != nil {
		return nil, mapError(err, "comment", "ListComments")
	}
	return comments, nil
}

func (p *PostgresCommentRepo) ListCommentsByArticle(ctx context.Context, articleID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := p.db.WithContext(ctx).
		Preload("Author").
		Where("article_id = ?", articleID).
		Order("id").
		Find(&comments).Error
	if err != nil {
		return nil, mapError(err, "comment", "ListCommentsByArticle")
	}
	return comments, nil
}

func (p *PostgresCommentRepo) UpdateComment(ctx context.Context, c model.Comment) (model.Comment, error) {
	res := p.db.WithContext(ctx).
		Model(&model.Comment{ID: c.ID}).
		Select("content").
		Updates(model.Comment{Content: c.Content})
	if err := res.Error; err != nil {
		return model.Comment{}, mapError(err, "comment", "UpdateComment")
	}
	return p.GetCommentByID(ctx, c.ID)
}

func (p *PostgresCommentRepo) DeleteComment(ctx context.Context, id int64) error {
	res := p.db.WithContext(ctx).Delete(&model.Comment{}, id)
	if err := res.Error; err != nil {
		return mapError(err, "comment", "DeleteComment")
	}
	if res.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound, "comment", "DeleteComment")
	}
	return nil
}

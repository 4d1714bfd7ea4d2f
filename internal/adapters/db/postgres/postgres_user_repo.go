package postgres

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/model"
	"gorm.io/gorm"
)

type PostgresUserRepo struct {
	db *gorm.DB
}

func NewPostgresUserRepo(db *gorm.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (p *PostgresUserRepo) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	if err := p.db.WithContext(ctx).Create(&user).Error; err != nil {
		return model.User{}, mapError(err, "user", "CreateUser")
	}
	return user, nil
}

func (p *PostgresUserRepo) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	if err := p.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return model.User{}, mapError(err, "user", "GetUserByID")
	}
	return u, nil
}

func (p *PostgresUserRepo) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	if err := p.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return model.User{}, mapError(err, "user", "GetUserByUsername")
	}
	return u, nil
}

func (p *PostgresUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var n int64
	err := p.db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&n).Error
	if err != nil {
		return false, mapError(err, "user", "ExistsByUsernameOrEmail")
	}
	return n > 0, nil
}

func (p *PostgresUserRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := p.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, mapError(err, "user", "ListUsers")
	}
	return users, nil
}

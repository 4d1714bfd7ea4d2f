package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Miraines/MoonyAndStarry/blog-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/errors"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/jwt"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/model"
	repo "github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/repo"
	"github.com/go-playground/validator/v10"
)

const tokenTypeBearer = "bearer"

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, storedHash string) bool
}

type authService struct {
	userRepo repo.UserRepo
	jwtUtil  jwt.JWTUtil
	hasher   PasswordHasher
	v        *validator.Validate

	// verified against when the username is unknown so both login paths
	// cost one hash
	dummyOnce sync.Once
	dummyHash string
}

type Service interface {
	Register(context.Context, dto.RegisterDTO) (model.User, error)
	Login(context.Context, dto.LoginDTO) (model.TokenPair, error)
	Refresh(context.Context, dto.RefreshDTO) (model.TokenPair, error)
	AuthenticateRequest(ctx context.Context, accessToken string) (model.User, error)
}

func New(
	ur repo.UserRepo,
	jm jwt.JWTUtil,
	h PasswordHasher,
	v *validator.Validate,
) Service {
	return &authService{
		userRepo: ur, jwtUtil: jm, hasher: h, v: v,
	}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.User, error) {
	if err := a.v.Struct(in); err != nil {
		return model.User{}, customErrors.NewInvalidArgument(err.Error())
	}

	exists, err := a.userRepo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}
	if exists {
		return model.User{}, customErrors.ErrAlreadyExists
	}

	passwordHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}

	user, err := a.userRepo.CreateUser(ctx, model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.User{}, customErrors.ErrAlreadyExists
		}
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}
	return user, nil
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByUsername(ctx, in.Username)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		a.hasher.Verify(in.Password, a.dummy())
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	if !a.hasher.Verify(in.Password, user.PasswordHash) {
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	return a.issueTokens(user)
}

func (a *authService) Refresh(ctx context.Context, in dto.RefreshDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.resolve(ctx, in.RefreshToken, jwt.TypeRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}

	// The presented refresh token stays valid until it expires.
	return a.issueTokens(user)
}

func (a *authService) AuthenticateRequest(ctx context.Context, accessToken string) (model.User, error) {
	return a.resolve(ctx, accessToken, jwt.TypeAccess)
}

func (a *authService) dummy() string {
	a.dummyOnce.Do(func() {
		a.dummyHash, _ = a.hasher.Hash("no such user")
	})
	return a.dummyHash
}

// resolve decodes raw, checks it is of the expected type and loads the user it
// names.
func (a *authService) resolve(ctx context.Context, raw string, want jwt.TokenType) (model.User, error) {
	claims, err := a.jwtUtil.Decode(raw)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}
	if claims.Type != want {
		return model.User{}, customErrors.ErrInvalidTokenType
	}
	if claims.UserID == nil {
		return model.User{}, customErrors.ErrUnauthenticated
	}

	user, err := a.userRepo.GetUserByID(ctx, *claims.UserID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.User{}, customErrors.ErrUserNotFound
	case err != nil:
		return model.User{}, customErrors.WrapInternal(err, "GetUserByID")
	}
	return user, nil
}

func (a *authService) issueTokens(user model.User) (model.TokenPair, error) {
	id := user.Identity()

	at, err := a.jwtUtil.GenerateAccessToken(id)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	rt, err := a.jwtUtil.GenerateRefreshToken(id)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateRefreshToken")
	}

	return model.TokenPair{
		AccessToken:  at.Token,
		RefreshToken: rt.Token,
		TokenType:    tokenTypeBearer,
		AccessTTL:    at.TTL(),
		RefreshTTL:   rt.TTL(),
		UserID:       user.ID,
	}, nil
}

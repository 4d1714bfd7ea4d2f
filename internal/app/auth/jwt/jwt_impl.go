package jwt

import (
	"errors"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/errors"
	jwt2 "github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/jwt"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/model"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JwtUtilImpl struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	leeway     time.Duration
	issuer     string
	audience   string
	now        func() time.Time
}

type Option func(*JwtUtilImpl)

// WithClock replaces time.Now for both issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(j *JwtUtilImpl) { j.now = now }
}

func NewJWTUtil(cfg *config.Config, opts ...Option) (*JwtUtilImpl, error) {
	if cfg.JWTSecret == "" {
		return nil, customErrors.WrapInternal(errors.New("empty secret"), "NewJWTUtil")
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, customErrors.WrapInternal(errors.New("token TTL must be positive"), "NewJWTUtil")
	}

	j := &JwtUtilImpl{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		leeway:     cfg.JWTLeeway,
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

func (j *JwtUtilImpl) GenerateAccessToken(id model.Identity) (jwt2.Issued, error) {
	return j.generate(id, jwt2.TypeAccess, j.accessTTL)
}

func (j *JwtUtilImpl) GenerateRefreshToken(id model.Identity) (jwt2.Issued, error) {
	return j.generate(id, jwt2.TypeRefresh, j.refreshTTL)
}

func (j *JwtUtilImpl) generate(id model.Identity, typ jwt2.TokenType, ttl time.Duration) (jwt2.Issued, error) {
	now := j.now()
	userID := id.UserID

	claims := jwt2.Claims{
		UserID:   &userID,
		Username: id.Username,
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	if j.audience != "" {
		claims.Audience = jwt.ClaimStrings{j.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return jwt2.Issued{}, customErrors.WrapInternal(err, "sign "+string(typ)+" token")
	}

	return jwt2.Issued{
		Token:     signed,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Decode verifies signature, algorithm and expiry and returns the claims.
// Every failure collapses into ErrInvalidToken. The token type is not checked
// here.
func (j *JwtUtilImpl) Decode(raw string) (jwt2.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(j.leeway),
		jwt.WithTimeFunc(j.now),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}
	if j.audience != "" {
		opts = append(opts, jwt.WithAudience(j.audience))
	}

	token, err := jwt.NewParser(opts...).ParseWithClaims(raw, &jwt2.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, customErrors.ErrInvalidToken
		}
		return j.secret, nil
	})
	if err != nil || !token.Valid {
		return jwt2.Claims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt2.Claims)
	if !ok {
		return jwt2.Claims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}

package jwt

import (
	"time"

	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/model"
	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// Claims is the payload of both token kinds. UserID is a pointer so that a
// token without a subject can be told apart from user id 0.
type Claims struct {
	UserID   *int64    `json:"user_id,omitempty"`
	Username string    `json:"username,omitempty"`
	Type     TokenType `json:"type"`
	jwt.RegisteredClaims
}

// Issued is a signed token together with the iat/exp instants written into it.
type Issued struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (i Issued) TTL() time.Duration { return i.ExpiresAt.Sub(i.IssuedAt) }

type JWTUtil interface {
	GenerateAccessToken(id model.Identity) (Issued, error)
	GenerateRefreshToken(id model.Identity) (Issued, error)
	Decode(token string) (Claims, error)
}

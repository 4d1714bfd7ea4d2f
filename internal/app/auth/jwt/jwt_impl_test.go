package jwt

import (
	"strings"
	"testing"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/errors"
	jwt2 "github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/jwt"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/model"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-test-secret-test-secret"

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       testSecret,
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		JWTLeeway:       5 * time.Second,
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newUtil(t *testing.T, cfg *config.Config) (*JwtUtilImpl, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}
	util, err := NewJWTUtil(cfg, WithClock(clock.Now))
	if err != nil {
		t.Fatal(err)
	}
	return util, clock
}

var alice = model.Identity{UserID: 1, Username: "alice"}

func mustAccess(tb testing.TB, util *JwtUtilImpl) string {
	tb.Helper()
	issued, err := util.GenerateAccessToken(alice)
	if err != nil {
		tb.Fatal(err)
	}
	return issued.Token
}

func TestJWTUtil_AccessRoundTrip(t *testing.T) {
	util, clock := newUtil(t, testConfig())

	issued, err := util.GenerateAccessToken(alice)
	if err != nil {
		t.Fatal(err)
	}
	token := issued.Token
	if want := clock.Now().Add(30 * time.Minute); !issued.ExpiresAt.Equal(want) {
		t.Fatalf("exp want %v got %v", want, issued.ExpiresAt)
	}
	if !issued.IssuedAt.Equal(clock.Now()) || issued.TTL() != 30*time.Minute {
		t.Fatalf("iat/ttl mismatch: %+v", issued)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("token must have three segments: %s", token)
	}

	claims, err := util.Decode(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Type != jwt2.TypeAccess {
		t.Fatalf("want access type, got %q", claims.Type)
	}
	if claims.UserID == nil || *claims.UserID != 1 || claims.Username != "alice" {
		t.Fatalf("identity not preserved: %+v", claims)
	}
	if !claims.ExpiresAt.Time.Equal(clock.Now().Add(30 * time.Minute)) {
		t.Fatalf("exp claim want issuance+30m, got %v", claims.ExpiresAt.Time)
	}
	if claims.ID == "" {
		t.Fatal("jti must be set")
	}
}

func TestJWTUtil_RefreshRoundTrip(t *testing.T) {
	util, clock := newUtil(t, testConfig())

	issued, err := util.GenerateRefreshToken(alice)
	if err != nil {
		t.Fatal(err)
	}
	if want := clock.Now().Add(7 * 24 * time.Hour); !issued.ExpiresAt.Equal(want) {
		t.Fatalf("exp want %v got %v", want, issued.ExpiresAt)
	}
	claims, err := util.Decode(issued.Token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Type != jwt2.TypeRefresh {
		t.Fatalf("want refresh type, got %q", claims.Type)
	}
}

func TestJWTUtil_Expired(t *testing.T) {
	util, clock := newUtil(t, testConfig())

	issued, err := util.GenerateAccessToken(alice)
	if err != nil {
		t.Fatal(err)
	}
	token := issued.Token

	clock.Advance(30*time.Minute + 3*time.Second)
	if _, err := util.Decode(token); err != nil {
		t.Fatalf("token inside the leeway must still decode: %v", err)
	}

	clock.Advance(time.Minute)
	_, err = util.Decode(token)
	if !customErrors.IsInvalidToken(err) {
		t.Fatalf("expired token must fail with invalid token, got %v", err)
	}
}

func TestJWTUtil_ExpiredWithValidSignature(t *testing.T) {
	util, clock := newUtil(t, testConfig())

	claims := jwt.MapClaims{
		"user_id":  1,
		"username": "alice",
		"type":     "access",
		"exp":      clock.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := util.Decode(token); !customErrors.IsInvalidToken(err) {
		t.Fatalf("want invalid token, got %v", err)
	}
}

func TestJWTUtil_MissingExp(t *testing.T) {
	util, _ := newUtil(t, testConfig())

	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1, "type": "access",
	}).SignedString([]byte(testSecret))
	if _, err := util.Decode(token); !customErrors.IsInvalidToken(err) {
		t.Fatalf("token without exp must be rejected, got %v", err)
	}
}

func TestJWTUtil_WrongSecret(t *testing.T) {
	util, _ := newUtil(t, testConfig())

	otherCfg := testConfig()
	otherCfg.JWTSecret = "another-secret-another-secret-xx"
	other, _ := newUtil(t, otherCfg)

	token := mustAccess(t, other)
	if _, err := util.Decode(token); !customErrors.IsInvalidToken(err) {
		t.Fatalf("want invalid token, got %v", err)
	}
}

func TestJWTUtil_Tampered(t *testing.T) {
	util, _ := newUtil(t, testConfig())
	token := mustAccess(t, util)

	parts := strings.Split(token, ".")
	forged, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 2, "username": "mallory", "type": "access", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("x"))
	forgedParts := strings.Split(forged, ".")

	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]
	if _, err := util.Decode(spliced); !customErrors.IsInvalidToken(err) {
		t.Fatalf("payload swap must be rejected, got %v", err)
	}
}

func TestJWTUtil_Malformed(t *testing.T) {
	util, _ := newUtil(t, testConfig())
	for _, raw := range []string{"", "bad", "not.a.jwt", "a.b.c.d"} {
		if _, err := util.Decode(raw); !customErrors.IsInvalidToken(err) {
			t.Fatalf("%q: want invalid token, got %v", raw, err)
		}
	}
}

func TestJWTUtil_InvalidAlg(t *testing.T) {
	util, clock := newUtil(t, testConfig())

	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"user_id": 1, "type": "access", "exp": clock.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if _, err := util.Decode(token); !customErrors.IsInvalidToken(err) {
		t.Fatalf("HS512 must be rejected, got %v", err)
	}

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 1, "type": "access", "exp": clock.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := util.Decode(none); !customErrors.IsInvalidToken(err) {
		t.Fatalf("alg=none must be rejected, got %v", err)
	}
}

func TestJWTUtil_IssuerAudience(t *testing.T) {
	cfg := testConfig()
	cfg.Issuer = "blog"
	cfg.Audience = "blog-web"
	util, _ := newUtil(t, cfg)

	token := mustAccess(t, util)
	if _, err := util.Decode(token); err != nil {
		t.Fatalf("own token must decode: %v", err)
	}

	otherCfg := *cfg
	otherCfg.Audience = "other"
	other, _ := newUtil(t, &otherCfg)
	tok := mustAccess(t, other)
	if _, err := util.Decode(tok); err == nil {
		t.Fatal("expected audience error")
	}

	otherCfg = *cfg
	otherCfg.Issuer = "wrong"
	other, _ = newUtil(t, &otherCfg)
	tok = mustAccess(t, other)
	if _, err := util.Decode(tok); err == nil {
		t.Fatal("expected issuer error")
	}
}

func TestNewJWTUtil_RejectsEmptySecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = ""
	if _, err := NewJWTUtil(cfg); !customErrors.IsInternal(err) {
		t.Fatalf("want internal error, got %v", err)
	}
}

func FuzzDecode(f *testing.F) {
	cfg := testConfig()
	util, err := NewJWTUtil(cfg)
	if err != nil {
		f.Fatal(err)
	}
	valid := mustAccess(f, util)

	f.Add(valid)
	f.Add("")
	f.Add("not.a.jwt")
	f.Add("eyJhbGciOiJub25lIn0.eyJ1c2VyX2lkIjoxfQ.")

	f.Fuzz(func(t *testing.T, input string) {
		claims, err := util.Decode(input)
		if err != nil {
			if !customErrors.IsInvalidToken(err) {
				t.Fatalf("decode failures must be invalid token, got %v", err)
			}
			return
		}
		if claims.ExpiresAt == nil {
			t.Fatal("decoded claims without exp")
		}
	})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"google.golang.org/api/idtoken"

	"github.com/jomadlcrz/class-schedule-backend/internal/config"
)

// ErrInvalidToken covers every credential failure: missing, malformed,
// expired, wrong audience. Callers see it as 401 Unauthorized.
var ErrInvalidToken = errors.New("invalid credential")

// Identity is the verified caller returned by the identity provider.
type Identity struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// TokenVerifier exchanges an opaque bearer credential for the caller's
// identity. The credential itself is never inspected outside the verifier.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// NewVerifier picks the verifier for the configured identity provider:
// Google ID tokens when a client ID is set, dev HS256 tokens otherwise.
func NewVerifier(cfg *config.Config, log zerolog.Logger) TokenVerifier {
	if cfg.GoogleClientID != "" {
		return NewGoogleVerifier(cfg.GoogleClientID, log)
	}
	log.Warn().Msg("GOOGLE_CLIENT_ID not set, accepting dev tokens signed with JWT_SECRET")
	return NewDevVerifier(cfg.JWTSecret)
}

// identityCacheTTL bounds how long a verified credential is trusted
// without re-checking it against the provider.
const identityCacheTTL = 5 * time.Minute

// GoogleVerifier validates Google ID tokens against the OAuth client ID.
// Verification can involve a round-trip to Google's certificate endpoint,
// so verified identities are memoized per credential for a short TTL.
type GoogleVerifier struct {
	audience string
	cache    *gocache.Cache
	log      zerolog.Logger
}

func NewGoogleVerifier(audience string, log zerolog.Logger) *GoogleVerifier {
	return &GoogleVerifier{
		audience: audience,
		cache:    gocache.New(identityCacheTTL, 2*identityCacheTTL),
		log:      log.With().Str("component", "google_verifier").Logger(),
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	cacheKey := config.CacheKey.IdentityKey(token)
	if cached, found := v.cache.Get(cacheKey); found {
		identity := cached.(Identity)
		return &identity, nil
	}

	payload, err := idtoken.Validate(ctx, token, v.audience)
	if err != nil {
		v.log.Debug().Err(err).Msg("ID token validation failed")
		return nil, ErrInvalidToken
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidToken
	}
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	identity := Identity{Email: email, Name: name, Picture: picture}

	// Never trust the memo past the token's own expiry.
	ttl := identityCacheTTL
	if remaining := time.Until(time.Unix(payload.Expires, 0)); remaining < ttl {
		ttl = remaining
	}
	if ttl > 0 {
		v.cache.Set(cacheKey, identity, ttl)
	}

	return &identity, nil
}

// DevClaims is the payload of a dev-mode bearer token, mirroring the
// identity claims of a Google ID token.
type DevClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// DevVerifier accepts HS256 tokens signed with the shared dev secret.
// Used in development and tests where no Google client ID exists.
type DevVerifier struct {
	secret []byte
}

func NewDevVerifier(secret string) *DevVerifier {
	return &DevVerifier{secret: []byte(secret)}
}

func (v *DevVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &DevClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*DevClaims)
	if !ok || !parsed.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{Email: claims.Email, Name: claims.Name, Picture: claims.Picture}, nil
}

// GenerateDevToken mints a dev-mode bearer token for the given identity.
// Used by cmd/dev-token and the e2e suite.
func GenerateDevToken(secret string, identity Identity, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := DevClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email:   identity.Email,
		Name:    identity.Name,
		Picture: identity.Picture,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

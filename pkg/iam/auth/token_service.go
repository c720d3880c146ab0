package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/nerdyjobs/pkg/errx"
	"github.com/Abraxas-365/nerdyjobs/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and checks access tokens
type TokenService interface {
	GenerateAccessToken(actor Actor) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// TokenClaims is the JWT payload
type TokenClaims struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs HS256 tokens with a shared secret
type JWTService struct {
	secret         []byte
	accessTokenTTL time.Duration
	issuer         string
	now            func() time.Time
}

var (
	_ TokenService     = (*JWTService)(nil)
	_ IdentityProvider = (*JWTService)(nil)
)

func NewJWTService(secret string, accessTokenTTL time.Duration, issuer string) *JWTService {
	return &JWTService{
		secret:         []byte(secret),
		accessTokenTTL: accessTokenTTL,
		issuer:         issuer,
		now:            time.Now,
	}
}

// TTL returns the lifetime of issued access tokens
func (s *JWTService) TTL() time.Duration {
	return s.accessTokenTTL
}

func (s *JWTService) GenerateAccessToken(actor Actor) (string, error) {
	now := s.now()
	claims := TokenClaims{
		Email: actor.Email.String(),
		Role:  actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errx.Wrap(err, "failed to sign access token", errx.TypeInternal)
	}
	return token, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrInvalidToken().WithDetail("reason", "expired")
		}
		return nil, ErrInvalidToken()
	}
	if !token.Valid {
		return nil, ErrInvalidToken()
	}
	return claims, nil
}

// Identify turns a valid token into the actor it was issued for
func (s *JWTService) Identify(tokenString string) (*Actor, error) {
	claims, err := s.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &Actor{
		ID:    kernel.UserID(claims.Subject),
		Email: kernel.Email(claims.Email),
		Role:  claims.Role,
	}, nil
}

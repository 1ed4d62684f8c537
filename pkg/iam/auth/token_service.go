package auth

import (
	"errors"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/user"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// TokenClaims is the JWT payload for both token types
type TokenClaims struct {
	UserID    kernel.UserID `json:"user_id"`
	Username  string        `json:"username"`
	Email     kernel.Email  `json:"email"`
	IsStaff   bool          `json:"is_staff"`
	TokenType TokenType     `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is returned by login and refresh
type TokenPair struct {
	AccessToken  string    `json:"access"`
	RefreshToken string    `json:"refresh"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type TokenService interface {
	GeneratePair(u *user.User) (*TokenPair, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// JWTService issues HS256 signed tokens
type JWTService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	now        func() time.Time
}

var _ TokenService = (*JWTService)(nil)

func NewJWTService(secret string, accessTTL, refreshTTL time.Duration, issuer string) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
		now:        time.Now,
	}
}

func (s *JWTService) sign(u *user.User, typ TokenType, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)

	claims := TokenClaims{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsStaff:   u.IsStaff,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errx.Wrap(err, "failed to sign token", errx.TypeInternal)
	}
	return signed, expiresAt, nil
}

func (s *JWTService) GeneratePair(u *user.User) (*TokenPair, error) {
	access, expiresAt, err := s.sign(u, TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.sign(u, TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: expiresAt}, nil
}

func (s *JWTService) parse(tokenString string, want TokenType) (*TokenClaims, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrInvalidToken().WithDetail("reason", "expired")
		}
		return nil, ErrInvalidToken()
	}

	if claims.TokenType != want {
		return nil, ErrWrongTokenType().WithDetail("expected", want)
	}
	return claims, nil
}

func (s *JWTService) ValidateAccessToken(token string) (*TokenClaims, error) {
	return s.parse(token, TokenTypeAccess)
}

func (s *JWTService) ValidateRefreshToken(token string) (*TokenClaims, error) {
	return s.parse(token, TokenTypeRefresh)
}

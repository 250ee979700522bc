// Package jwt issues and validates the signed tokens used for request
// authorization.
//
// Two token types are produced:
//   - Access token:  short-lived (15 min), sent on every API request
//   - Refresh token: long-lived (7 days), used to obtain new access tokens
package jwt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("jwt: invalid token")
	ErrExpiredToken  = errors.New("jwt: token has expired")
	ErrTokenNotFound = errors.New("jwt: token not found")
	ErrInvalidClaims = errors.New("jwt: invalid claims")
)

// Claims carries the account identity inside a token. Subject holds the
// account id as a decimal string.
type Claims struct {
	IsTrainer bool `json:"is_trainer"`
	jwt.RegisteredClaims
}

// AccountID parses the subject back into the numeric account id.
func (c *Claims) AccountID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject %q", ErrInvalidClaims, c.Subject)
	}
	return id, nil
}

// TokenService creates and validates JWT token pairs.
// Construct one at process start and pass it into the handlers.
type TokenService struct {
	accessSecret       []byte
	refreshSecret      []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	issuer             string
	parser             *jwt.Parser
}

// NewTokenService reads its configuration from environment variables:
//
//	JWT_ACCESS_SECRET  secret key for access tokens
//	JWT_REFRESH_SECRET secret key for refresh tokens
//	JWT_ISSUER         token issuer name (default "coaching-service")
func NewTokenService() *TokenService {
	accessSecret := os.Getenv("JWT_ACCESS_SECRET")
	if accessSecret == "" {
		accessSecret = "default-access-secret-change-in-production!"
	}

	refreshSecret := os.Getenv("JWT_REFRESH_SECRET")
	if refreshSecret == "" {
		refreshSecret = "default-refresh-secret-change-in-production"
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "coaching-service"
	}

	parser := jwt.NewParser(
		// Only accept HS256, prevents algorithm confusion attacks.
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithIssuer(issuer),
	)

	return &TokenService{
		accessSecret:       []byte(accessSecret),
		refreshSecret:      []byte(refreshSecret),
		accessTokenExpiry:  15 * time.Minute,
		refreshTokenExpiry: 7 * 24 * time.Hour,
		issuer:             issuer,
		parser:             parser,
	}
}

// GenerateTokens creates a new access and refresh token pair for an account.
// Call this after a successful registration or login.
func (s *TokenService) GenerateTokens(ctx context.Context, accountID int64, isTrainer bool) (accessToken, refreshToken string, err error) {
	now := time.Now()

	accessToken, err = s.createToken(accountID, isTrainer, now.Add(s.accessTokenExpiry), s.accessSecret)
	if err != nil {
		return "", "", fmt.Errorf("creating access token: %w", err)
	}

	refreshToken, err = s.createToken(accountID, isTrainer, now.Add(s.refreshTokenExpiry), s.refreshSecret)
	if err != nil {
		return "", "", fmt.Errorf("creating refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// ParseAccessToken validates an access token and returns its claims.
// This is what the authentication middleware calls on every request.
func (s *TokenService) ParseAccessToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.parseToken(tokenString, s.accessSecret)
}

// ParseRefreshToken validates a refresh token and returns its claims.
func (s *TokenService) ParseRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.parseToken(tokenString, s.refreshSecret)
}

func (s *TokenService) createToken(accountID int64, isTrainer bool, expiresAt time.Time, secret []byte) (string, error) {
	now := time.Now()

	claims := Claims{
		IsTrainer: isTrainer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *TokenService) parseToken(tokenString string, secret []byte) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenNotFound
	}

	claims := &Claims{}

	token, err := s.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return nil, convertError(err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// convertError transforms jwt library errors into our sentinel errors.
func convertError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpiredToken, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: token is malformed", ErrInvalidToken)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: signature is invalid", ErrInvalidToken)
	case errors.Is(err, jwt.ErrTokenInvalidClaims):
		return fmt.Errorf("%w: %v", ErrInvalidClaims, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}

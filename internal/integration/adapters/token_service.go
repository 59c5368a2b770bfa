package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	domainerror "github.com/finsight/backend/internal/domain/error"
	"github.com/finsight/backend/internal/integration/persistence"
)

const (
	// accessTokenDuration is the lifetime of an access token.
	accessTokenDuration = 15 * time.Minute

	// refreshTokenDuration is the lifetime of a refresh token.
	refreshTokenDuration = 7 * 24 * time.Hour

	// tokenIssuer identifies tokens issued by this service.
	tokenIssuer = "finsight"

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// CustomClaims represents the custom JWT claims for the application.
type CustomClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface using JWT.
// Refresh tokens are additionally tracked in the database so they can be
// invalidated before their JWT expiry.
type tokenService struct {
	secret    []byte
	tokenRepo persistence.TokenRepository
}

// NewTokenService creates a new JWT token service instance.
func NewTokenService(secret string, tokenRepo persistence.TokenRepository) adapter.TokenService {
	return &tokenService{
		secret:    []byte(secret),
		tokenRepo: tokenRepo,
	}
}

// GenerateTokenPair generates a new access and refresh token pair.
func (s *tokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	now := time.Now()

	accessToken, err := s.generateToken(userID, email, tokenTypeAccess, now, now.Add(accessTokenDuration))
	if err != nil {
		return nil, err
	}

	refreshExpiry := now.Add(refreshTokenDuration)
	refreshToken, err := s.generateToken(userID, email, tokenTypeRefresh, now, refreshExpiry)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.SaveRefreshToken(ctx, refreshToken, userID, refreshExpiry); err != nil {
		return nil, err
	}

	return &adapter.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *tokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return s.validateToken(token, tokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token and returns its claims.
func (s *tokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return s.validateToken(token, tokenTypeRefresh)
}

// InvalidateRefreshToken invalidates a refresh token.
func (s *tokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	err := s.tokenRepo.InvalidateRefreshToken(ctx, token)
	if err != nil {
		if errors.Is(err, persistence.ErrTokenNotFound) {
			return domainerror.ErrInvalidToken
		}
		return err
	}
	return nil
}

// IsRefreshTokenValid checks if a refresh token is still valid (not invalidated).
func (s *tokenService) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	return s.tokenRepo.IsRefreshTokenValid(ctx, token)
}

func (s *tokenService) generateToken(userID uuid.UUID, email, tokenType string, issuedAt, expiresAt time.Time) (string, error) {
	claims := CustomClaims{
		UserID:    userID.String(),
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *tokenService) validateToken(tokenString, expectedType string) (*adapter.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domainerror.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.ErrExpiredToken
		}
		return nil, domainerror.ErrInvalidToken
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, domainerror.ErrInvalidToken
	}
	if claims.TokenType != expectedType {
		return nil, domainerror.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domainerror.ErrInvalidToken
	}

	return &adapter.TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finsight/backend/internal/integration/persistence/model"
)

// ErrTokenNotFound is returned when a token cannot be found in the database.
var ErrTokenNotFound = errors.New("token not found")

// TokenRepository persists refresh and password reset tokens so they can be
// invalidated server-side. The JWT token service consumes it.
type TokenRepository interface {
	// SaveRefreshToken stores a refresh token in the database.
	SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error

	// IsRefreshTokenValid checks if a refresh token exists and is not invalidated or expired.
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)

	// InvalidateRefreshToken marks a refresh token as invalidated.
	InvalidateRefreshToken(ctx context.Context, token string) error

	// InvalidateAllUserRefreshTokens marks all refresh tokens for a user as invalidated.
	InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error

	// SavePasswordResetToken stores a password reset token in the database.
	SavePasswordResetToken(ctx context.Context, token string, userID uuid.UUID, email string, expiresAt time.Time) error

	// GetPasswordResetToken retrieves an unused password reset token.
	GetPasswordResetToken(ctx context.Context, token string) (*model.PasswordResetTokenModel, error)

	// InvalidatePasswordResetToken marks a password reset token as used.
	InvalidatePasswordResetToken(ctx context.Context, token string) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository instance.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{
		db: db,
	}
}

// SaveRefreshToken stores a refresh token in the database.
func (r *tokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	tokenModel := &model.RefreshTokenModel{
		ID:          uuid.New(),
		Token:       token,
		UserID:      userID,
		Invalidated: false,
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now(),
	}
	result := r.db.WithContext(ctx).Create(tokenModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// IsRefreshTokenValid checks if a refresh token exists and is not invalidated or expired.
func (r *tokenRepository) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	var tokenModel model.RefreshTokenModel
	result := r.db.WithContext(ctx).
		Where("token = ? AND invalidated = ? AND expires_at > ?", token, false, time.Now()).
		First(&tokenModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

// InvalidateRefreshToken marks a refresh token as invalidated.
func (r *tokenRepository) InvalidateRefreshToken(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token = ?", token).
		Update("invalidated", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// InvalidateAllUserRefreshTokens marks all refresh tokens for a user as invalidated.
func (r *tokenRepository) InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND invalidated = ?", userID, false).
		Update("invalidated", true)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// SavePasswordResetToken stores a password reset token in the database.
func (r *tokenRepository) SavePasswordResetToken(ctx context.Context, token string, userID uuid.UUID, email string, expiresAt time.Time) error {
	tokenModel := &model.PasswordResetTokenModel{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		Email:     email,
		Used:      false,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	result := r.db.WithContext(ctx).Create(tokenModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// GetPasswordResetToken retrieves an unused password reset token.
func (r *tokenRepository) GetPasswordResetToken(ctx context.Context, token string) (*model.PasswordResetTokenModel, error) {
	var tokenModel model.PasswordResetTokenModel
	result := r.db.WithContext(ctx).
		Where("token = ? AND used = ?", token, false).
		First(&tokenModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, result.Error
	}
	return &tokenModel, nil
}

// InvalidatePasswordResetToken marks a password reset token as used.
func (r *tokenRepository) InvalidatePasswordResetToken(ctx context.Context, token string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.PasswordResetTokenModel{}).
		Where("token = ? AND used = ?", token, false).
		Updates(map[string]interface{}{
			"used":    true,
			"used_at": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

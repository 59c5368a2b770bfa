package adapters

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	domainerror "github.com/finsight/backend/internal/domain/error"
	"github.com/finsight/backend/internal/integration/persistence"
)

// resetTokenDuration is the lifetime of a password reset token.
const resetTokenDuration = time.Hour

// resetTokenService implements the adapter.PasswordResetTokenService interface.
// Tokens are opaque random values stored in the database, single use.
type resetTokenService struct {
	tokenRepo persistence.TokenRepository
}

// NewResetTokenService creates a new password reset token service instance.
func NewResetTokenService(tokenRepo persistence.TokenRepository) adapter.PasswordResetTokenService {
	return &resetTokenService{
		tokenRepo: tokenRepo,
	}
}

// GenerateResetToken generates a new password reset token.
func (s *resetTokenService) GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*adapter.PasswordResetToken, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, err
	}
	token := hex.EncodeToString(tokenBytes)
	expiresAt := time.Now().Add(resetTokenDuration)

	if err := s.tokenRepo.SavePasswordResetToken(ctx, token, userID, email, expiresAt); err != nil {
		return nil, err
	}

	return &adapter.PasswordResetToken{
		Token:     token,
		UserID:    userID,
		Email:     email,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateResetToken validates a password reset token.
func (s *resetTokenService) ValidateResetToken(ctx context.Context, token string) (*adapter.PasswordResetToken, error) {
	stored, err := s.tokenRepo.GetPasswordResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, persistence.ErrTokenNotFound) {
			return nil, domainerror.ErrInvalidResetToken
		}
		return nil, err
	}

	return &adapter.PasswordResetToken{
		Token:     stored.Token,
		UserID:    stored.UserID,
		Email:     stored.Email,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

// InvalidateResetToken invalidates a password reset token after use.
func (s *resetTokenService) InvalidateResetToken(ctx context.Context, token string) error {
	err := s.tokenRepo.InvalidatePasswordResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, persistence.ErrTokenNotFound) {
			return domainerror.ErrInvalidResetToken
		}
		return err
	}
	return nil
}

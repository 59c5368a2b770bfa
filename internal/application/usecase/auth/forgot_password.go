// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finsight/backend/internal/application/adapter"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// forgotPasswordMessage is returned regardless of whether the email exists,
// to prevent account enumeration.
const forgotPasswordMessage = "If an account with that email exists, we have sent a password reset link"

// ForgotPasswordInput represents the input for forgot password request.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordOutput represents the output of forgot password request.
type ForgotPasswordOutput struct {
	Message string
}

// ForgotPasswordUseCase handles forgot password logic.
type ForgotPasswordUseCase struct {
	userRepo          adapter.UserRepository
	resetTokenService adapter.PasswordResetTokenService
	emailSender       adapter.EmailSender
	appBaseURL        string
}

// NewForgotPasswordUseCase creates a new ForgotPasswordUseCase instance.
// emailSender may be nil; the reset URL is then only logged.
func NewForgotPasswordUseCase(
	userRepo adapter.UserRepository,
	resetTokenService adapter.PasswordResetTokenService,
	emailSender adapter.EmailSender,
	appBaseURL string,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{
		userRepo:          userRepo,
		resetTokenService: resetTokenService,
		emailSender:       emailSender,
		appBaseURL:        appBaseURL,
	}
}

// Execute performs the forgot password request.
// Always returns success to prevent email enumeration.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordOutput, error) {
	// Validate email format
	if !isValidEmail(input.Email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	// Try to find user by email
	user, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		// User not found, but we still return success to prevent enumeration
		slog.Debug("Forgot password requested for non-existent email", "email", input.Email)
		return &ForgotPasswordOutput{Message: forgotPasswordMessage}, nil
	}

	// Generate reset token
	resetToken, err := uc.resetTokenService.GenerateResetToken(ctx, user.ID, user.Email)
	if err != nil {
		// Log error but still return success to prevent enumeration
		slog.Error("Failed to generate reset token", "error", err, "userID", user.ID)
		return &ForgotPasswordOutput{Message: forgotPasswordMessage}, nil
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", uc.appBaseURL, resetToken.Token)

	if uc.emailSender != nil {
		_, err = uc.emailSender.Send(ctx, adapter.SendEmailInput{
			To:      user.Email,
			Name:    user.Name,
			Subject: "Reset your Finsight password",
			HTML:    passwordResetEmailHTML(user.Name, resetURL),
			Text:    passwordResetEmailText(user.Name, resetURL),
		})
		if err != nil {
			// Log error but still return success to prevent enumeration
			slog.Error("Failed to send password reset email", "error", err, "userID", user.ID)
		} else {
			slog.Info("Password reset email sent", "userID", user.ID, "email", user.Email)
		}
	} else {
		// Fallback: log for development when the email sender is not configured
		slog.Info("Password reset token generated (email sender not configured)",
			"userID", user.ID,
			"email", user.Email,
			"resetURL", resetURL,
		)
	}

	return &ForgotPasswordOutput{Message: forgotPasswordMessage}, nil
}

// passwordResetEmailHTML renders the HTML body of the reset email.
func passwordResetEmailHTML(name, resetURL string) string {
	return fmt.Sprintf(
		`<p>Hi %s,</p>
<p>We received a request to reset your Finsight password. Click the link below to choose a new one. The link expires in 1 hour.</p>
<p><a href="%s">Reset password</a></p>
<p>If you did not request this, you can safely ignore this email.</p>`,
		name, resetURL,
	)
}

// passwordResetEmailText renders the plain text body of the reset email.
func passwordResetEmailText(name, resetURL string) string {
	return fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your Finsight password. Open the link below to choose a new one. The link expires in 1 hour.\n\n%s\n\nIf you did not request this, you can safely ignore this email.\n",
		name, resetURL,
	)
}

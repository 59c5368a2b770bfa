package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

type memUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	repo := &memUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return user, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	user, ok := r.users[userID]
	if !ok {
		return domainerror.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	return nil
}

type memCategoryRepo struct {
	categories []*entity.Category
	batchErr   error
}

func (r *memCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	r.categories = append(r.categories, category)
	return nil
}

func (r *memCategoryRepo) CreateBatch(ctx context.Context, categories []*entity.Category) error {
	if r.batchErr != nil {
		return r.batchErr
	}
	r.categories = append(r.categories, categories...)
	return nil
}

func (r *memCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return nil, domainerror.ErrCategoryNotFound
}

func (r *memCategoryRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	return r.categories, nil
}

func (r *memCategoryRepo) Update(ctx context.Context, category *entity.Category) error { return nil }

func (r *memCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *memCategoryRepo) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	return false, nil
}

// fakePasswordService hashes by prefixing; strong enough for use case tests.
type fakePasswordService struct{}

func (s *fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (s *fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return domainerror.ErrInvalidCredentials
	}
	return nil
}

func (s *fakePasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

// fakeTokenService issues predictable tokens and tracks invalidations.
type fakeTokenService struct {
	issued      int
	invalidated map[string]bool
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{invalidated: make(map[string]bool)}
}

func (s *fakeTokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	s.issued++
	return &adapter.TokenPair{
		AccessToken:  "access:" + userID.String(),
		RefreshToken: "refresh:" + userID.String() + ":" + email,
	}, nil
}

func (s *fakeTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return s.claimsFrom(token, "access:")
}

func (s *fakeTokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return s.claimsFrom(token, "refresh:")
}

func (s *fakeTokenService) claimsFrom(token, prefix string) (*adapter.TokenClaims, error) {
	if !strings.HasPrefix(token, prefix) {
		return nil, domainerror.ErrInvalidToken
	}
	parts := strings.Split(strings.TrimPrefix(token, prefix), ":")
	userID, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, domainerror.ErrInvalidToken
	}
	claims := &adapter.TokenClaims{UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}
	if len(parts) > 1 {
		claims.Email = parts[1]
	}
	return claims, nil
}

func (s *fakeTokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	s.invalidated[token] = true
	return nil
}

func (s *fakeTokenService) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	return !s.invalidated[token], nil
}

// fakeResetTokenService maps tokens to reset claims.
type fakeResetTokenService struct {
	tokens map[string]*adapter.PasswordResetToken
}

func newFakeResetTokenService() *fakeResetTokenService {
	return &fakeResetTokenService{tokens: make(map[string]*adapter.PasswordResetToken)}
}

func (s *fakeResetTokenService) GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*adapter.PasswordResetToken, error) {
	token := &adapter.PasswordResetToken{
		Token:     "reset:" + userID.String(),
		UserID:    userID,
		Email:     email,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.tokens[token.Token] = token
	return token, nil
}

func (s *fakeResetTokenService) ValidateResetToken(ctx context.Context, token string) (*adapter.PasswordResetToken, error) {
	resetToken, ok := s.tokens[token]
	if !ok {
		return nil, domainerror.ErrInvalidResetToken
	}
	return resetToken, nil
}

func (s *fakeResetTokenService) InvalidateResetToken(ctx context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

// recordingEmailSender captures the last sent email.
type recordingEmailSender struct {
	sent []adapter.SendEmailInput
}

func (s *recordingEmailSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{ProviderID: "email-1"}, nil
}

func TestRegisterUserUseCase_Execute(t *testing.T) {
	userRepo := newMemUserRepo()
	categoryRepo := &memCategoryRepo{}
	uc := NewRegisterUserUseCase(userRepo, categoryRepo, &fakePasswordService{}, newFakeTokenService())

	output, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.User.Email != "ana@example.com" {
		t.Errorf("Email = %s, want ana@example.com", output.User.Email)
	}
	if output.User.PasswordHash != "hashed:correct-horse" {
		t.Errorf("PasswordHash = %s, password not hashed", output.User.PasswordHash)
	}
	if output.AccessToken == "" || output.RefreshToken == "" {
		t.Error("expected a token pair")
	}
	if len(userRepo.users) != 1 {
		t.Errorf("expected 1 stored user, got %d", len(userRepo.users))
	}
}

func TestRegisterUserUseCase_SeedsDefaultCategories(t *testing.T) {
	categoryRepo := &memCategoryRepo{}
	uc := NewRegisterUserUseCase(newMemUserRepo(), categoryRepo, &fakePasswordService{}, newFakeTokenService())

	output, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seeds := entity.DefaultCategories()
	if len(categoryRepo.categories) != len(seeds) {
		t.Fatalf("expected %d seeded categories, got %d", len(seeds), len(categoryRepo.categories))
	}
	byName := make(map[string]*entity.Category)
	for _, c := range categoryRepo.categories {
		if c.UserID != output.User.ID {
			t.Errorf("category %s seeded for wrong user", c.Name)
		}
		byName[c.Name] = c
	}
	if food := byName["Food"]; food == nil || food.Color != "#ef4444" || food.Type != entity.CategoryTypeExpense {
		t.Errorf("Food seed wrong: %+v", food)
	}
	if salary := byName["Salary"]; salary == nil || salary.Type != entity.CategoryTypeIncome {
		t.Errorf("Salary seed wrong: %+v", salary)
	}
}

func TestRegisterUserUseCase_SeedFailureDoesNotFailRegistration(t *testing.T) {
	categoryRepo := &memCategoryRepo{batchErr: errors.New("db down")}
	uc := NewRegisterUserUseCase(newMemUserRepo(), categoryRepo, &fakePasswordService{}, newFakeTokenService())

	_, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "correct-horse",
	})
	if err != nil {
		t.Errorf("seeding failure must not fail registration: %v", err)
	}
}

func TestRegisterUserUseCase_Validation(t *testing.T) {
	existing := entity.NewUser("taken@example.com", "Existing", "hashed:something1")
	uc := NewRegisterUserUseCase(newMemUserRepo(existing), &memCategoryRepo{}, &fakePasswordService{}, newFakeTokenService())

	tests := []struct {
		name    string
		input   RegisterUserInput
		wantErr error
	}{
		{
			name:    "missing fields",
			input:   RegisterUserInput{Email: "ana@example.com"},
			wantErr: domainerror.ErrInvalidEmail,
		},
		{
			name:    "bad email",
			input:   RegisterUserInput{Email: "not-an-email", Name: "Ana", Password: "correct-horse"},
			wantErr: domainerror.ErrInvalidEmail,
		},
		{
			name:    "weak password",
			input:   RegisterUserInput{Email: "ana@example.com", Name: "Ana", Password: "short"},
			wantErr: domainerror.ErrWeakPassword,
		},
		{
			name:    "duplicate email",
			input:   RegisterUserInput{Email: "taken@example.com", Name: "Ana", Password: "correct-horse"},
			wantErr: domainerror.ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoginUserUseCase_Execute(t *testing.T) {
	user := entity.NewUser("ana@example.com", "Ana", "hashed:correct-horse")
	uc := NewLoginUserUseCase(newMemUserRepo(user), &fakePasswordService{}, newFakeTokenService())

	t.Run("success", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), LoginUserInput{
			Email:    "ana@example.com",
			Password: "correct-horse",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.User.ID != user.ID {
			t.Error("wrong user returned")
		}
		if output.AccessToken == "" {
			t.Error("expected an access token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), LoginUserInput{
			Email:    "ana@example.com",
			Password: "wrong",
		})
		if !errors.Is(err, domainerror.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), LoginUserInput{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		})
		if !errors.Is(err, domainerror.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestRefreshTokenUseCase_Rotation(t *testing.T) {
	tokens := newFakeTokenService()
	userID := uuid.New()
	pair, _ := tokens.GenerateTokenPair(context.Background(), userID, "ana@example.com")

	uc := NewRefreshTokenUseCase(tokens)

	output, err := uc.Execute(context.Background(), RefreshTokenInput{RefreshToken: pair.RefreshToken})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.AccessToken == "" || output.RefreshToken == "" {
		t.Error("expected a new token pair")
	}
	if !tokens.invalidated[pair.RefreshToken] {
		t.Error("the presented refresh token must be invalidated")
	}

	t.Run("reuse is rejected", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), RefreshTokenInput{RefreshToken: pair.RefreshToken})
		if !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken on reuse, got %v", err)
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), RefreshTokenInput{RefreshToken: "garbage"})
		if !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestLogoutUserUseCase_Execute(t *testing.T) {
	tokens := newFakeTokenService()
	uc := NewLogoutUserUseCase(tokens)

	output, err := uc.Execute(context.Background(), LogoutUserInput{RefreshToken: "refresh:whatever"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Message == "" {
		t.Error("expected a confirmation message")
	}
	if !tokens.invalidated["refresh:whatever"] {
		t.Error("the refresh token must be invalidated")
	}
}

func TestForgotPasswordUseCase_Execute(t *testing.T) {
	user := entity.NewUser("ana@example.com", "Ana", "hashed:correct-horse")
	resetTokens := newFakeResetTokenService()
	sender := &recordingEmailSender{}
	uc := NewForgotPasswordUseCase(newMemUserRepo(user), resetTokens, sender, "https://app.finsight.dev")

	output, err := uc.Execute(context.Background(), ForgotPasswordInput{Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Message != forgotPasswordMessage {
		t.Errorf("Message = %q", output.Message)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	email := sender.sent[0]
	if email.To != "ana@example.com" {
		t.Errorf("To = %s", email.To)
	}
	if !strings.Contains(email.HTML, "https://app.finsight.dev/reset-password?token=reset:"+user.ID.String()) {
		t.Error("reset URL missing from email body")
	}
}

func TestForgotPasswordUseCase_UnknownEmailStillSucceeds(t *testing.T) {
	sender := &recordingEmailSender{}
	uc := NewForgotPasswordUseCase(newMemUserRepo(), newFakeResetTokenService(), sender, "https://app.finsight.dev")

	output, err := uc.Execute(context.Background(), ForgotPasswordInput{Email: "nobody@example.com"})
	if err != nil {
		t.Fatalf("unknown email must not error: %v", err)
	}
	if output.Message != forgotPasswordMessage {
		t.Errorf("Message = %q", output.Message)
	}
	if len(sender.sent) != 0 {
		t.Errorf("no email should be sent for unknown addresses, got %d", len(sender.sent))
	}
}

func TestResetPasswordUseCase_Execute(t *testing.T) {
	user := entity.NewUser("ana@example.com", "Ana", "hashed:old-password1")
	userRepo := newMemUserRepo(user)
	resetTokens := newFakeResetTokenService()
	token, _ := resetTokens.GenerateResetToken(context.Background(), user.ID, user.Email)

	uc := NewResetPasswordUseCase(userRepo, &fakePasswordService{}, resetTokens)

	output, err := uc.Execute(context.Background(), ResetPasswordInput{
		Token:       token.Token,
		NewPassword: "new-password-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Message == "" {
		t.Error("expected a confirmation message")
	}
	if userRepo.users[user.ID].PasswordHash != "hashed:new-password-1" {
		t.Errorf("password not updated: %s", userRepo.users[user.ID].PasswordHash)
	}

	t.Run("token is single use", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ResetPasswordInput{
			Token:       token.Token,
			NewPassword: "another-password-1",
		})
		if !errors.Is(err, domainerror.ErrInvalidResetToken) {
			t.Errorf("expected ErrInvalidResetToken, got %v", err)
		}
	})
}

func TestResetPasswordUseCase_Validation(t *testing.T) {
	user := entity.NewUser("ana@example.com", "Ana", "hashed:old-password1")
	resetTokens := newFakeResetTokenService()
	uc := NewResetPasswordUseCase(newMemUserRepo(user), &fakePasswordService{}, resetTokens)

	t.Run("unknown token", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ResetPasswordInput{Token: "nope", NewPassword: "new-password-1"})
		if !errors.Is(err, domainerror.ErrInvalidResetToken) {
			t.Errorf("expected ErrInvalidResetToken, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, _ := resetTokens.GenerateResetToken(context.Background(), user.ID, user.Email)
		resetTokens.tokens[token.Token].ExpiresAt = time.Now().Add(-time.Minute)

		_, err := uc.Execute(context.Background(), ResetPasswordInput{Token: token.Token, NewPassword: "new-password-1"})
		if !errors.Is(err, domainerror.ErrInvalidResetToken) {
			t.Errorf("expected ErrInvalidResetToken, got %v", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		token, _ := resetTokens.GenerateResetToken(context.Background(), user.ID, user.Email)

		_, err := uc.Execute(context.Background(), ResetPasswordInput{Token: token.Token, NewPassword: "short"})
		if !errors.Is(err, domainerror.ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})
}

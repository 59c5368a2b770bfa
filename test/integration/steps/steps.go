// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/finsight/backend/internal/application/usecase/analytics"
	"github.com/finsight/backend/internal/application/usecase/auth"
	"github.com/finsight/backend/internal/application/usecase/category"
	"github.com/finsight/backend/internal/application/usecase/suggestion"
	"github.com/finsight/backend/internal/application/usecase/transaction"
	"github.com/finsight/backend/internal/infra/server/router"
	"github.com/finsight/backend/internal/integration/adapters"
	"github.com/finsight/backend/internal/integration/cache"
	"github.com/finsight/backend/internal/integration/charts"
	"github.com/finsight/backend/internal/integration/entrypoint/controller"
	"github.com/finsight/backend/internal/integration/entrypoint/middleware"
	"github.com/finsight/backend/internal/integration/persistence"
	"github.com/finsight/backend/internal/integration/persistence/model"
	"github.com/finsight/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

type testContext struct {
	uri               string
	headers           map[string]string
	client            *http.Client
	response          *response
	db                *mock.Db
	accessToken       string
	refreshToken      string
	resetToken        string
	expiredToken      string
	currentUserID     uuid.UUID
	currentCategoryID uuid.UUID
	lastTransactionID uuid.UUID
}

type response struct {
	status int
	body   any
	raw    []byte
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:    fmt.Sprintf("http://localhost:%d", testServerPort),
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb(map[string]any{
			"users":                 &model.UserModel{},
			"refresh_tokens":        &model.RefreshTokenModel{},
			"password_reset_tokens": &model.PasswordResetTokenModel{},
			"categories":            &model.CategoryModel{},
			"transactions":          &model.TransactionModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^the user is logged in with valid tokens$`, test.theUserIsLoggedInWithValidTokens)
	ctx.Given(`^a password reset token exists for "([^"]*)"$`, test.aPasswordResetTokenExistsFor)
	ctx.Given(`^an expired password reset token exists$`, test.anExpiredPasswordResetTokenExists)

	// Category setup steps
	ctx.Given(`^a category exists with name "([^"]*)" and type "([^"]*)"$`, test.aCategoryExistsWithNameAndType)

	// Transaction setup steps
	ctx.Given(`^a transaction exists on "([^"]*)" described "([^"]*)" with amount "([^"]*)" and type "([^"]*)"$`, test.aTransactionExists)
	ctx.Given(`^a transaction exists on "([^"]*)" described "([^"]*)" with amount "([^"]*)" and type "([^"]*)" in category "([^"]*)"$`, test.aTransactionExistsInCategory)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response body should include "([^"]*)"$`, test.theResponseBodyShouldInclude)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.resetToken = ""
	t.expiredToken = ""
	t.currentUserID = uuid.Nil
	t.currentCategoryID = uuid.Nil
	t.lastTransactionID = uuid.Nil
	t.response = nil

	if err := t.db.Reset(); err != nil {
		return err
	}
	return mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			// Create repositories
			userRepo := persistence.NewUserRepository(testDB.DbConn)
			tokenRepo := persistence.NewTokenRepository(testDB.DbConn)
			categoryRepo := persistence.NewCategoryRepository(testDB.DbConn)
			transactionRepo := persistence.NewTransactionRepository(testDB.DbConn)

			// Create adapters/services
			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, tokenRepo)
			resetTokenService := adapters.NewResetTokenService(tokenRepo)
			summaryCache := cache.NewRedisSummaryCache(mock.NewRedis())

			// Create auth use cases. No email sender is configured, so
			// forgot-password only records the token.
			registerUseCase := auth.NewRegisterUserUseCase(userRepo, categoryRepo, passwordService, tokenService)
			loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
			refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
			logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
			forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, nil, "http://localhost:5173")
			resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService)

			// Create category use cases
			listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
			createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
			updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
			deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo, summaryCache)

			// Create transaction use cases
			listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
			createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, summaryCache)
			updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, summaryCache)
			deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, summaryCache)

			// Create analytics use cases
			getSummaryUseCase := analytics.NewGetSummaryUseCase(transactionRepo, categoryRepo, summaryCache)
			getBreakdownUseCase := analytics.NewGetBreakdownUseCase(transactionRepo, categoryRepo)
			getInsightsUseCase := analytics.NewGetInsightsUseCase(transactionRepo, categoryRepo)
			getTrendsUseCase := analytics.NewGetTrendsUseCase(transactionRepo, categoryRepo)
			exportUseCase := analytics.NewExportTransactionsUseCase(transactionRepo, categoryRepo)

			// Suggestion use case without an API key reports unavailable
			suggestCategoryUseCase := suggestion.NewSuggestCategoryUseCase(categoryRepo, adapters.NewGeminiService(""))

			// Create controllers
			healthController := controller.NewHealthController(func() bool {
				return testDB != nil && testDB.DbConn != nil
			})

			authController := controller.NewAuthController(
				registerUseCase,
				loginUseCase,
				refreshTokenUseCase,
				logoutUseCase,
				forgotPasswordUseCase,
				resetPasswordUseCase,
			)

			categoryController := controller.NewCategoryController(
				listCategoriesUseCase,
				createCategoryUseCase,
				updateCategoryUseCase,
				deleteCategoryUseCase,
			)

			transactionController := controller.NewTransactionController(
				listTransactionsUseCase,
				createTransactionUseCase,
				updateTransactionUseCase,
				deleteTransactionUseCase,
			)

			dashboardController := controller.NewDashboardController(
				getSummaryUseCase,
				getBreakdownUseCase,
				getInsightsUseCase,
				getTrendsUseCase,
				exportUseCase,
				charts.NewRenderer(),
			)

			suggestionController := controller.NewSuggestionController(suggestCategoryUseCase)

			// Create middleware
			loginRateLimiter := middleware.NewRateLimiterWithConfig(1000, time.Minute)
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(
				healthController,
				authController,
				categoryController,
				transactionController,
				dashboardController,
				suggestionController,
				loginRateLimiter,
				authMiddleware,
			)
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, "DefaultPass123!", "Test User")
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password, "Test User")
}

func (t *testContext) createUser(email, password, name string) error {
	userID := uuid.New()
	t.currentUserID = userID

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           userID,
		Email:        email,
		Name:         name,
		PasswordHash: hashPassword(password),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return t.db.DbConn.Create(user).Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) theUserIsLoggedInWithValidTokens() error {
	now := time.Now().UTC()

	accessToken, err := t.signToken("access", now, now.Add(15*time.Minute))
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = accessToken

	refreshToken, err := t.signToken("refresh", now, now.Add(7*24*time.Hour))
	if err != nil {
		return fmt.Errorf("failed to generate refresh token: %w", err)
	}
	t.refreshToken = refreshToken

	// Refresh tokens must also exist in the database to pass the
	// server-side invalidation check.
	refreshTokenModel := &model.RefreshTokenModel{
		ID:        uuid.New(),
		Token:     t.refreshToken,
		UserID:    t.currentUserID,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
		CreatedAt: now,
	}
	return t.db.DbConn.Create(refreshTokenModel).Error
}

func (t *testContext) signToken(tokenType string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    t.currentUserID.String(),
		"email":      "test@example.com",
		"token_type": tokenType,
		"exp":        jwt.NewNumericDate(expiresAt),
		"iat":        jwt.NewNumericDate(issuedAt),
		"iss":        "finsight",
		"sub":        t.currentUserID.String(),
		"jti":        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(testJWTSecret))
}

func (t *testContext) aPasswordResetTokenExistsFor(email string) error {
	t.resetToken = fmt.Sprintf("test-reset-token-%s", uuid.New().String())

	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	resetTokenModel := &model.PasswordResetTokenModel{
		ID:        uuid.New(),
		Token:     t.resetToken,
		UserID:    user.ID,
		Email:     email,
		ExpiresAt: time.Now().Add(1 * time.Hour),
		CreatedAt: time.Now(),
	}
	return t.db.DbConn.Create(resetTokenModel).Error
}

func (t *testContext) anExpiredPasswordResetTokenExists() error {
	t.expiredToken = fmt.Sprintf("expired-reset-token-%s", uuid.New().String())

	resetTokenModel := &model.PasswordResetTokenModel{
		ID:        uuid.New(),
		Token:     t.expiredToken,
		UserID:    uuid.New(),
		Email:     "expired@example.com",
		ExpiresAt: time.Now().Add(-1 * time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	return t.db.DbConn.Create(resetTokenModel).Error
}

func (t *testContext) aCategoryExistsWithNameAndType(name, categoryType string) error {
	categoryID := uuid.New()
	t.currentCategoryID = categoryID

	now := time.Now().UTC()
	categoryModel := &model.CategoryModel{
		ID:        categoryID,
		UserID:    t.currentUserID,
		Name:      name,
		Color:     "#6366f1",
		Icon:      "tag",
		Type:      categoryType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return t.db.DbConn.Create(categoryModel).Error
}

func (t *testContext) aTransactionExists(date, description, amount, txnType string) error {
	return t.createTransaction(date, description, amount, txnType, nil)
}

func (t *testContext) aTransactionExistsInCategory(date, description, amount, txnType, categoryName string) error {
	var categoryModel model.CategoryModel
	if err := t.db.DbConn.
		Where("name = ? AND user_id = ?", categoryName, t.currentUserID).
		First(&categoryModel).Error; err != nil {
		return fmt.Errorf("category %q not found: %w", categoryName, err)
	}
	return t.createTransaction(date, description, amount, txnType, &categoryModel.ID)
}

func (t *testContext) createTransaction(date, description, amount, txnType string, categoryID *uuid.UUID) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	transactionID := uuid.New()
	t.lastTransactionID = transactionID

	now := time.Now().UTC()
	transactionModel := &model.TransactionModel{
		ID:          transactionID,
		UserID:      t.currentUserID,
		Date:        day,
		Description: description,
		Amount:      value,
		Type:        txnType,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return t.db.DbConn.Create(transactionModel).Error
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{reset_token}}", t.resetToken)
	content = strings.ReplaceAll(content, "{{expired_reset_token}}", t.expiredToken)
	content = strings.ReplaceAll(content, "{{category_id}}", t.currentCategoryID.String())
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode, raw: bodyBytes}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody

		// Capture created IDs so follow-up steps can reference them
		if idStr, ok := responseBody["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				if _, isTxn := responseBody["amount"]; isTxn {
					t.lastTransactionID = id
				} else {
					t.currentCategoryID = id
				}
			}
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field %q: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseBodyShouldInclude(substring string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !strings.Contains(string(t.response.raw), substring) {
		return fmt.Errorf("response body does not include %q: %s", substring, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field %q expected %q, got %q", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *testContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return nil, fmt.Errorf("field %q not found in response: %v", field, body)
	}
	return value, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table %q not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in %q with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	objectMap, ok := object.(map[string]any)
	if !ok {
		return nil
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}

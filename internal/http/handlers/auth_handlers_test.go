package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/you/authsvc/domain"
	"github.com/you/authsvc/internal/http/middleware"
	"github.com/you/authsvc/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires handlers into a bare engine. Authenticated routes
// get a stub that injects the user ID the real middleware would set.
func newTestRouter(h *AuthHandlers, userID string) *gin.Engine {
	r := gin.New()

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/login-2fa", h.LoginWith2FA)

	asUser := func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
		c.Next()
	}
	r.GET("/auth/2fa/generate", asUser, h.Generate2FASecret)
	r.POST("/auth/2fa/enable", asUser, h.Enable2FA)
	r.POST("/auth/2fa/disable", asUser, h.Disable2FA)
	r.POST("/auth/2fa/verify", asUser, h.Verify2FA)
	r.GET("/auth/profile", asUser, h.Profile)

	return r
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func TestAuthHandlers_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
	}{
		{
			name:           "successful registration",
			body:           RegisterRequest{Email: "alice@example.com", Password: "secret123", Name: "Alice"},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate email",
			body: RegisterRequest{Email: "alice@example.com", Password: "secret123"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, email, password, name string) (*domain.AuthResult, error) {
					return nil, domain.ErrUserAlreadyExists
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid email",
			body:           RegisterRequest{Email: "not-an-email", Password: "secret123"},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "password too short",
			body:           RegisterRequest{Email: "alice@example.com", Password: "short"},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)

			r := newTestRouter(NewAuthHandlers(authSvc, mocks.NewMockTwoFactorService()), "user-1")
			w := performJSON(t, r, "POST", "/auth/register", tt.body)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusCreated {
				body := decodeBody(t, w)
				if body["accessToken"] == "" {
					t.Error("expected an access token in the response")
				}
				user, ok := body["user"].(map[string]any)
				if !ok {
					t.Fatal("expected a user object in the response")
				}
				if _, leaked := user["password"]; leaked {
					t.Error("response must not contain the password")
				}
			}
		})
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		validate       func(t *testing.T, body map[string]any)
	}{
		{
			name: "password-only success",
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
					return &domain.AuthResult{
						User:        &domain.User{ID: "user-1", Email: email},
						AccessToken: "token_user-1",
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]any) {
				if body["accessToken"] != "token_user-1" {
					t.Errorf("expected access token, got %v", body["accessToken"])
				}
				if body["requiresTwoFactor"] != false {
					t.Error("expected requiresTwoFactor=false")
				}
			},
		},
		{
			name: "2FA required yields no token",
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
					return &domain.AuthResult{
						User:              &domain.User{ID: "user-1", Email: email, TwoFactorEnabled: true},
						RequiresTwoFactor: true,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]any) {
				if body["requiresTwoFactor"] != true {
					t.Error("expected requiresTwoFactor=true")
				}
				if _, present := body["accessToken"]; present {
					t.Error("response must not contain a token while 2FA is pending")
				}
			},
		},
		{
			name:           "invalid credentials",
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)

			r := newTestRouter(NewAuthHandlers(authSvc, mocks.NewMockTwoFactorService()), "user-1")
			w := performJSON(t, r, "POST", "/auth/login", LoginRequest{Email: "alice@example.com", Password: "secret1"})

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.validate != nil {
				tt.validate(t, decodeBody(t, w))
			}
		})
	}
}

func TestAuthHandlers_LoginWith2FA(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "success",
			body:           LoginWith2FARequest{Email: "alice@example.com", Password: "secret1", TOTPCode: "123456"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong code",
			body:           LoginWith2FARequest{Email: "alice@example.com", Password: "secret1", TOTPCode: "000000"},
			serviceErr:     domain.ErrTwoFactorCodeInvalid,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong password",
			body:           LoginWith2FARequest{Email: "alice@example.com", Password: "wrong1", TOTPCode: "123456"},
			serviceErr:     domain.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "2fa not enabled",
			body:           LoginWith2FARequest{Email: "alice@example.com", Password: "secret1", TOTPCode: "123456"},
			serviceErr:     domain.ErrTwoFactorNotEnabled,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "code with wrong length rejected before the service",
			body:           LoginWith2FARequest{Email: "alice@example.com", Password: "secret1", TOTPCode: "12345"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.LoginWithTwoFactorFunc = func(ctx context.Context, email, password, code string) (*domain.AuthResult, error) {
				if tt.serviceErr != nil {
					return nil, tt.serviceErr
				}
				return &domain.AuthResult{
					User:        &domain.User{ID: "user-1", Email: email, TwoFactorEnabled: true},
					AccessToken: "token_user-1",
				}, nil
			}

			r := newTestRouter(NewAuthHandlers(authSvc, mocks.NewMockTwoFactorService()), "user-1")
			w := performJSON(t, r, "POST", "/auth/login-2fa", tt.body)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				body := decodeBody(t, w)
				if body["accessToken"] != "token_user-1" {
					t.Errorf("expected access token, got %v", body["accessToken"])
				}
			}
		})
	}
}

func TestAuthHandlers_Generate2FASecret(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "success", expectedStatus: http.StatusOK},
		{name: "already enabled", serviceErr: domain.ErrTwoFactorAlreadyEnabled, expectedStatus: http.StatusBadRequest},
		{name: "user not found", serviceErr: domain.ErrUserNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			twoFactorSvc := mocks.NewMockTwoFactorService()
			if tt.serviceErr != nil {
				twoFactorSvc.GenerateSecretFunc = func(ctx context.Context, userID string) (*domain.TwoFactorSetup, error) {
					return nil, tt.serviceErr
				}
			}

			r := newTestRouter(NewAuthHandlers(mocks.NewMockAuthService(), twoFactorSvc), "user-1")
			w := performJSON(t, r, "GET", "/auth/2fa/generate", nil)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				body := decodeBody(t, w)
				if body["secret"] != "JBSWY3DPEHPK3PXP" {
					t.Errorf("expected secret in response, got %v", body["secret"])
				}
				qr, _ := body["qrCode"].(string)
				if qr == "" {
					t.Error("expected qrCode in response")
				}
			}
		})
	}
}

func TestAuthHandlers_Enable2FA(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		serviceErr     error
		expectedStatus int
	}{
		{name: "success returns backup codes", body: TwoFactorCodeRequest{TOTPCode: "123456"}, expectedStatus: http.StatusOK},
		{name: "setup not started", body: TwoFactorCodeRequest{TOTPCode: "123456"}, serviceErr: domain.ErrTwoFactorSetupNotStarted, expectedStatus: http.StatusBadRequest},
		{name: "wrong code", body: TwoFactorCodeRequest{TOTPCode: "000000"}, serviceErr: domain.ErrTwoFactorCodeInvalid, expectedStatus: http.StatusUnauthorized},
		{name: "already enabled", body: TwoFactorCodeRequest{TOTPCode: "123456"}, serviceErr: domain.ErrTwoFactorAlreadyEnabled, expectedStatus: http.StatusBadRequest},
		{name: "missing code", body: gin.H{}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			twoFactorSvc := mocks.NewMockTwoFactorService()
			if tt.serviceErr != nil {
				twoFactorSvc.EnableFunc = func(ctx context.Context, userID, code string) ([]string, error) {
					return nil, tt.serviceErr
				}
			}

			r := newTestRouter(NewAuthHandlers(mocks.NewMockAuthService(), twoFactorSvc), "user-1")
			w := performJSON(t, r, "POST", "/auth/2fa/enable", tt.body)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				body := decodeBody(t, w)
				codes, ok := body["backupCodes"].([]any)
				if !ok || len(codes) == 0 {
					t.Error("expected backup codes in the enable response")
				}
			}
		})
	}
}

func TestAuthHandlers_Disable2FA(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "success", expectedStatus: http.StatusOK},
		{name: "not enabled", serviceErr: domain.ErrTwoFactorNotEnabled, expectedStatus: http.StatusBadRequest},
		{name: "wrong code", serviceErr: domain.ErrTwoFactorCodeInvalid, expectedStatus: http.StatusUnauthorized},
		{name: "missing secret", serviceErr: domain.ErrTwoFactorMisconfigured, expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			twoFactorSvc := mocks.NewMockTwoFactorService()
			if tt.serviceErr != nil {
				twoFactorSvc.DisableFunc = func(ctx context.Context, userID, code string) error {
					return tt.serviceErr
				}
			}

			r := newTestRouter(NewAuthHandlers(mocks.NewMockAuthService(), twoFactorSvc), "user-1")
			w := performJSON(t, r, "POST", "/auth/2fa/disable", TwoFactorCodeRequest{TOTPCode: "123456"})

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthHandlers_Verify2FA(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "valid code", expectedStatus: http.StatusOK},
		{name: "wrong code", serviceErr: domain.ErrTwoFactorCodeInvalid, expectedStatus: http.StatusUnauthorized},
		{name: "not configured", serviceErr: domain.ErrTwoFactorNotEnabled, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			twoFactorSvc := mocks.NewMockTwoFactorService()
			if tt.serviceErr != nil {
				twoFactorSvc.VerifyFunc = func(ctx context.Context, userID, code string) error {
					return tt.serviceErr
				}
			}

			r := newTestRouter(NewAuthHandlers(mocks.NewMockAuthService(), twoFactorSvc), "user-1")
			w := performJSON(t, r, "POST", "/auth/2fa/verify", TwoFactorCodeRequest{TOTPCode: "123456"})

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				body := decodeBody(t, w)
				if body["valid"] != true {
					t.Error("expected valid=true in the response")
				}
			}
		})
	}
}

func TestAuthHandlers_Profile(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.ProfileFunc = func(ctx context.Context, userID string) (*domain.User, error) {
		if userID != "user-1" {
			return nil, domain.ErrUserNotFound
		}
		return &domain.User{
			ID:               "user-1",
			Email:            "alice@example.com",
			Name:             "Alice",
			TwoFactorEnabled: true,
		}, nil
	}

	r := newTestRouter(NewAuthHandlers(authSvc, mocks.NewMockTwoFactorService()), "user-1")
	w := performJSON(t, r, "GET", "/auth/profile", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["email"] != "alice@example.com" {
		t.Errorf("expected email in profile, got %v", body["email"])
	}
	if body["twoFactorEnabled"] != true {
		t.Error("expected twoFactorEnabled=true in profile")
	}
	if _, leaked := body["password"]; leaked {
		t.Error("profile must not contain the password")
	}
	if _, leaked := body["twoFactorSecret"]; leaked {
		t.Error("profile must not contain the TOTP secret")
	}
}

func TestAuthHandlers_ProfileNotFound(t *testing.T) {
	r := newTestRouter(NewAuthHandlers(mocks.NewMockAuthService(), mocks.NewMockTwoFactorService()), "ghost")
	w := performJSON(t, r, "GET", "/auth/profile", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

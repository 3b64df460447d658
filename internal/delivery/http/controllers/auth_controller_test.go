package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventdeck/internal/delivery/http/helpers"
	"eventdeck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	registerErr      error
	loginErr         error
	user             *domain.User
	token            string
	lastRegisterName string
	lastRegisterMail string
	lastLoginEmail   string
	lastLoginPass    string
}

func (f *fakeAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	f.lastRegisterName = name
	f.lastRegisterMail = email
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.user, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	f.lastLoginEmail = email
	f.lastLoginPass = password
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return f.user, f.token, nil
}

func TestAuthController_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"name":"Ada","email":"ada@example.com","password":"secret1"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "invalid json",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "missing name",
			body:           `{"email":"ada@example.com","password":"secret1"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "name is required",
		},
		{
			name:           "unknown field rejected",
			body:           `{"name":"Ada","email":"ada@example.com","password":"secret1","role":"admin"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "unknown field",
		},
		{
			name:           "email in use",
			body:           `{"name":"Ada","email":"ada@example.com","password":"secret1"}`,
			fakeErr:        domain.ErrEmailInUse,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "Email is already in use",
		},
		{
			name:           "invalid email",
			body:           `{"name":"Ada","email":"not-an-email","password":"secret1"}`,
			fakeErr:        domain.ErrInvalidEmail,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid email format",
		},
		{
			name:           "weak password",
			body:           `{"name":"Ada","email":"ada@example.com","password":"123"}`,
			fakeErr:        domain.ErrWeakPassword,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "at least 6 characters",
		},
		{
			name:           "service error",
			body:           `{"name":"Ada","email":"ada@example.com","password":"secret1"}`,
			fakeErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "could not create user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{
				registerErr: tt.fakeErr,
				user: &domain.User{
					ID:           "user-1",
					Name:         "Ada",
					Email:        "ada@example.com",
					PasswordHash: "hash-secret1",
				},
			}
			ctrl := NewAuthController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.Register(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be a valid JSON envelope")
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error, "success response must have error nil")
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var user domain.User
				require.NoError(t, json.Unmarshal(dataBytes, &user))
				assert.Equal(t, "user-1", user.ID)
				assert.Equal(t, "ada@example.com", user.Email)
				assert.NotContains(t, string(dataBytes), "hash-secret1", "password hash must never be serialized")
			} else {
				require.NotNil(t, envelope.Error, "error response must have error set")
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"email":"ada@example.com","password":"secret1"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:           "invalid credentials",
			body:           `{"email":"ada@example.com","password":"wrong"}`,
			fakeErr:        domain.ErrInvalidCredentials,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "Invalid email or password",
		},
		{
			name:           "missing email",
			body:           `{"password":"secret1"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "email is required",
		},
		{
			name:           "invalid json",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "service error",
			body:           `{"email":"ada@example.com","password":"secret1"}`,
			fakeErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "could not log in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{
				loginErr: tt.fakeErr,
				user:     &domain.User{ID: "user-1", Email: "ada@example.com"},
				token:    "signed-token",
			}
			ctrl := NewAuthController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be a valid JSON envelope")
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var resp LoginResponse
				require.NoError(t, json.Unmarshal(dataBytes, &resp))
				assert.Equal(t, "signed-token", resp.Token)
				assert.Equal(t, "Bearer", resp.TokenType)
				require.NotNil(t, resp.User)
				assert.Equal(t, "user-1", resp.User.ID)
			} else {
				require.NotNil(t, envelope.Error)
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}

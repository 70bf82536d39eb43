package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/godogapp/godog/internal/lib/jwt"
)

// MockTokenValidator реализует интерфейс TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.CustomClaims), args.Error(1)
}

func TestJWTMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*MockTokenValidator)
		expectedStatus int
		wantUserUID    string
	}{
		{
			name:       "валидный токен",
			authHeader: "Bearer good-token",
			setupMock: func(m *MockTokenValidator) {
				m.On("ValidateToken", mock.Anything, "good-token").
					Return(&jwt.CustomClaims{Username: "dana", Role: "OWNER", UserUID: "uid-1"}, nil)
			},
			expectedStatus: http.StatusOK,
			wantUserUID:    "uid-1",
		},
		{
			name:           "нет заголовка",
			authHeader:     "",
			setupMock:      func(_ *MockTokenValidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "неверный формат заголовка",
			authHeader:     "Token abc",
			setupMock:      func(_ *MockTokenValidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "просроченный токен",
			authHeader: "Bearer expired",
			setupMock: func(m *MockTokenValidator) {
				m.On("ValidateToken", mock.Anything, "expired").
					Return(nil, errors.New("token is expired"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := new(MockTokenValidator)
			tt.setupMock(validator)

			var gotUID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUID, _ = r.Context().Value(UserUID).(string)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			JWTMiddleware(validator, logger)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.wantUserUID != "" {
				assert.Equal(t, tt.wantUserUID, gotUID)
			}
			validator.AssertExpectations(t)
		})
	}
}

package subscribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/godogapp/godog/internal/http/middlewarectx"
	"github.com/godogapp/godog/internal/models"
)

// MockService реализует интерфейс subscribe.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Subscribe(ctx context.Context, userUID string, tier models.SubscriptionTier) (*models.UserProfile, error) {
	args := m.Called(ctx, userUID, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}
func (m *MockService) Quote(ctx context.Context, userUID string, tier models.SubscriptionTier) (float64, error) {
	args := m.Called(ctx, userUID, tier)
	return args.Get(0).(float64), args.Error(1)
}

func TestSubscribeHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное оформление подписки",
			requestBody: models.DummySubscribe{Tier: "MONTHLY"},
			userUID:     "uid-1",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "uid-1", models.TierMonthly).
					Return(&models.UserProfile{
						ID:                 "uid-1",
						SubscriptionStatus: models.StatusActive,
						SubscriptionTier:   models.TierMonthly,
					}, nil)
				m.On("Quote", mock.Anything, "uid-1", models.TierMonthly).
					Return(19.9, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"monthly_quote":19.9`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "неподдерживаемый тариф",
			requestBody:    models.DummySubscribe{Tier: "WEEKLY"},
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Tier has an unsupported value`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    models.DummySubscribe{Tier: "MONTHLY"},
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"user identification missing"`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: models.DummySubscribe{Tier: "ANNUAL"},
			userUID:     "uid-1",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "uid-1", models.TierAnnual).
					Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to subscribe"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.setupMock(service)
			handler := New(logger, service)

			var body bytes.Buffer
			switch v := tt.requestBody.(type) {
			case string:
				body.WriteString(v)
			default:
				_ = json.NewEncoder(&body).Encode(v)
			}

			req := httptest.NewRequest(http.MethodPost, "/profile/subscribe", &body)
			if tt.userUID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
				req = req.WithContext(ctx)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.True(t, strings.Contains(rec.Body.String(), tt.expectedBody),
				"body %q must contain %q", rec.Body.String(), tt.expectedBody)
			service.AssertExpectations(t)
		})
	}
}

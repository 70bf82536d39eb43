package create

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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/godogapp/godog/internal/http/middlewarectx"
	"github.com/godogapp/godog/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, ownerName string, req models.DummyBooking) (*models.Booking, error) {
	args := m.Called(ctx, ownerName, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func validBody() models.DummyBooking {
	return models.DummyBooking{
		WalkerID:    "walker-1",
		DogID:       "dog-1",
		DogName:     "Рекс",
		ServiceType: "walk",
		StartTime:   "2025-06-20T10:00:00Z",
		TotalAmount: 100,
	}
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		username       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное создание бронирования",
			requestBody: validBody(),
			username:    "dana",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "dana", mock.AnythingOfType("models.DummyBooking")).
					Return(&models.Booking{
						ID:             "b1",
						OwnerName:      "dana",
						StartTime:      time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC),
						TotalAmount:    100,
						PlatformFee:    20,
						WalkerEarnings: 80,
						Status:         models.BookingConfirmed,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"platform_fee":20`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			username:       "dana",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name: "нулевая сумма",
			requestBody: func() models.DummyBooking {
				b := validBody()
				b.TotalAmount = 0
				return b
			}(),
			username:       "dana",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field TotalAmount`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    validBody(),
			username:       "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"user identification missing"`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: validBody(),
			username:    "dana",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "dana", mock.AnythingOfType("models.DummyBooking")).
					Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to create booking"`,
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

			req := httptest.NewRequest(http.MethodPost, "/bookings", &body)
			if tt.username != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.User, tt.username)
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

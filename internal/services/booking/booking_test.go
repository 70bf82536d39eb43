package booking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/godogapp/godog/internal/commission"
	"github.com/godogapp/godog/internal/lib/ident"
	"github.com/godogapp/godog/internal/models"
	"github.com/godogapp/godog/internal/rabbitmq"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateBooking(ctx context.Context, b models.Booking) (string, error) {
	args := m.Called(ctx, b)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) ReadBooking(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *RepoMock) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) (int, error) {
	args := m.Called(ctx, id, status)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListBookingsByWalker(ctx context.Context, walkerID string, limit, offset int) ([]models.Booking, error) {
	args := m.Called(ctx, walkerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func validRequest() models.DummyBooking {
	return models.DummyBooking{
		WalkerID:    "walker-1",
		DogID:       "dog-1",
		DogName:     "Рекс",
		ServiceType: "walk",
		StartTime:   "2025-06-20T10:00:00Z",
		TotalAmount: 100,
	}
}

func TestCreate(t *testing.T) {
	repo := new(RepoMock)
	pub := new(PublisherMock)
	repo.On("CreateBooking", mock.Anything, mock.MatchedBy(func(b models.Booking) bool {
		return b.ID == "id-1" &&
			b.Status == models.BookingConfirmed &&
			b.TotalAmount == 100 &&
			b.PlatformFee == 20 &&
			b.WalkerEarnings == 80
	})).Return("id-1", nil).Once()
	pub.On("Publish", rabbitmq.RoutingBookingConfirmed, mock.MatchedBy(func(e Event) bool {
		return e.BookingID == "id-1" && e.WalkerEarnings == 80
	})).Return(nil).Once()

	svc := New(repo, pub, &ident.Sequence{}, 0.20, newNoopLogger())
	b, err := svc.Create(context.Background(), "owner", validRequest())
	require.NoError(t, err)
	assert.Equal(t, "owner", b.OwnerName)
	assert.Equal(t, b.TotalAmount, b.PlatformFee+b.WalkerEarnings)

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCreate_PublishFailureIsTolerated(t *testing.T) {
	repo := new(RepoMock)
	pub := new(PublisherMock)
	repo.On("CreateBooking", mock.Anything, mock.Anything).Return("id-1", nil).Once()
	pub.On("Publish", rabbitmq.RoutingBookingConfirmed, mock.Anything).
		Return(errors.New("broker down")).Once()

	svc := New(repo, pub, &ident.Sequence{}, 0.20, newNoopLogger())
	b, err := svc.Create(context.Background(), "owner", validRequest())
	require.NoError(t, err, "booking must be created even if the broker is down")
	assert.Equal(t, models.BookingConfirmed, b.Status)
}

func TestCreate_InvalidStartTime(t *testing.T) {
	req := validRequest()
	req.StartTime = "20-06-2025"

	svc := New(new(RepoMock), new(PublisherMock), &ident.Sequence{}, 0.20, newNoopLogger())
	_, err := svc.Create(context.Background(), "owner", req)
	require.Error(t, err)
}

func TestCreate_NegativeAmount(t *testing.T) {
	req := validRequest()
	req.TotalAmount = -5

	svc := New(new(RepoMock), new(PublisherMock), &ident.Sequence{}, 0.20, newNoopLogger())
	_, err := svc.Create(context.Background(), "owner", req)
	require.ErrorIs(t, err, commission.ErrNegativeAmount)
}

func TestUpdateStatus(t *testing.T) {
	stored := func(status models.BookingStatus) *models.Booking {
		return &models.Booking{ID: "b1", Status: status, StartTime: time.Now()}
	}

	tests := []struct {
		name       string
		current    models.BookingStatus
		next       models.BookingStatus
		wantUpdate bool
		wantErr    error
	}{
		{"pending to confirmed", models.BookingPending, models.BookingConfirmed, true, nil},
		{"confirmed to completed", models.BookingConfirmed, models.BookingCompleted, true, nil},
		{"pending straight to completed", models.BookingPending, models.BookingCompleted, true, nil},
		{"same status is a no-op", models.BookingConfirmed, models.BookingConfirmed, false, nil},
		{"completed back to pending", models.BookingCompleted, models.BookingPending, false, ErrStatusRegression},
		{"confirmed back to pending", models.BookingConfirmed, models.BookingPending, false, ErrStatusRegression},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("ReadBooking", mock.Anything, "b1").Return(stored(tt.current), nil).Once()
			if tt.wantUpdate {
				repo.On("UpdateBookingStatus", mock.Anything, "b1", tt.next).Return(1, nil).Once()
			}

			svc := New(repo, new(PublisherMock), &ident.Sequence{}, 0.20, newNoopLogger())
			err := svc.UpdateStatus(context.Background(), "b1", tt.next)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestListByWalker(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListBookingsByWalker", mock.Anything, "walker-1", 20, 0).
		Return([]models.Booking{{ID: "b1"}, {ID: "b2"}}, nil).Once()

	svc := New(repo, new(PublisherMock), &ident.Sequence{}, 0.20, newNoopLogger())
	got, err := svc.ListByWalker(context.Background(), "walker-1", 20, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

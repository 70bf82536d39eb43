package deal

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/godogapp/godog/internal/lib/ident"
	"github.com/godogapp/godog/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateDeal(ctx context.Context, businessUID string, deal models.Deal) (string, error) {
	args := m.Called(ctx, businessUID, deal)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) CountDealsByBusiness(ctx context.Context, businessUID string) (int, error) {
	args := m.Called(ctx, businessUID)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListDealsByBusiness(ctx context.Context, businessUID string) ([]models.Deal, error) {
	args := m.Called(ctx, businessUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Deal), args.Error(1)
}
func (m *RepoMock) RemoveDeal(ctx context.Context, businessUID, dealID string) (int, error) {
	args := m.Called(ctx, businessUID, dealID)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func validRequest() models.DummyDeal {
	return models.DummyDeal{
		Title:       "Скидка на груминг",
		Description: "20% на первый визит",
		Category:    "grooming",
		City:        "Хайфа",
	}
}

func TestCreate(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CountDealsByBusiness", mock.Anything, "biz-1").Return(2, nil).Once()
	repo.On("CreateDeal", mock.Anything, "biz-1", mock.MatchedBy(func(d models.Deal) bool {
		return d.ID == "id-1" && d.BusinessID == "biz-1" && d.BusinessName == "store"
	})).Return("id-1", nil).Once()

	svc := New(repo, &ident.Sequence{}, 5, newNoopLogger())
	id, err := svc.Create(context.Background(), "biz-1", "store", validRequest())
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)

	repo.AssertExpectations(t)
}

func TestCreate_LimitReached(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CountDealsByBusiness", mock.Anything, "biz-1").Return(5, nil).Once()

	svc := New(repo, &ident.Sequence{}, 5, newNoopLogger())
	_, err := svc.Create(context.Background(), "biz-1", "store", validRequest())
	require.ErrorIs(t, err, ErrDealLimit)

	// Вставка не должна была произойти.
	repo.AssertNotCalled(t, "CreateDeal", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_LimitCheckedBeforeInsert(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CountDealsByBusiness", mock.Anything, "biz-1").Return(6, nil).Once()

	svc := New(repo, &ident.Sequence{}, 5, newNoopLogger())
	_, err := svc.Create(context.Background(), "biz-1", "store", validRequest())
	require.ErrorIs(t, err, ErrDealLimit, "over-limit state must still reject new deals")
}

func TestList(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListDealsByBusiness", mock.Anything, "biz-1").
		Return([]models.Deal{{ID: "d1"}, {ID: "d2"}}, nil).Once()

	svc := New(repo, &ident.Sequence{}, 5, newNoopLogger())
	got, err := svc.List(context.Background(), "biz-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRemove(t *testing.T) {
	repo := new(RepoMock)
	repo.On("RemoveDeal", mock.Anything, "biz-1", "d1").Return(1, nil).Once()

	svc := New(repo, &ident.Sequence{}, 5, newNoopLogger())
	removed, err := svc.Remove(context.Background(), "biz-1", "d1")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

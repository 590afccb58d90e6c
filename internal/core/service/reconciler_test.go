package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRemoteCartStorage struct {
	mock.Mock
}

func (m *MockRemoteCartStorage) UpsertLines(
	ctx context.Context, userID string, ls []domain.CartLine,
) error {
	args := m.Called(ctx, userID, ls)
	return args.Error(0)
}

func (m *MockRemoteCartStorage) FetchLines(
	ctx context.Context, userID string,
) ([]domain.CartLine, error) {
	args := m.Called(ctx, userID)
	ls, _ := args.Get(0).([]domain.CartLine)
	return ls, args.Error(1)
}

func (m *MockRemoteCartStorage) MergeCart(
	ctx context.Context, userID string, ls []domain.CartLine,
) ([]domain.CartLine, error) {
	args := m.Called(ctx, userID, ls)
	merged, _ := args.Get(0).([]domain.CartLine)
	return merged, args.Error(1)
}

func (m *MockRemoteCartStorage) LineQuantity(
	ctx context.Context, userID string, productID int,
) (int, error) {
	args := m.Called(ctx, userID, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockRemoteCartStorage) SetQuantity(
	ctx context.Context, userID string, productID, qty int,
) error {
	args := m.Called(ctx, userID, productID, qty)
	return args.Error(0)
}

func (m *MockRemoteCartStorage) DeleteLine(
	ctx context.Context, userID string, productID int,
) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockRemoteCartStorage) DeleteAll(
	ctx context.Context, userID string,
) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestReconcile(t *testing.T) {
	const userID = "user-1"

	t.Run("RoundTrip", func(t *testing.T) {
		local := []domain.CartLine{
			{ProductID: 1, Quantity: 2},
			{ProductID: 3, Quantity: 1},
		}

		remote := new(MockRemoteCartStorage)
		remote.On("MergeCart", t.Context(), userID, local).
			Return(local, nil).Twice()

		cart := service.NewCart(&memCartStorage{})
		cart.ReplaceAll(local)
		r := service.NewReconciler(remote, cart)

		require.NoError(t, r.Reconcile(t.Context(), userID))
		assert.ElementsMatch(t, local, cart.Lines())

		// a second run with no intervening local changes is a no-op
		require.NoError(t, r.Reconcile(t.Context(), userID))
		assert.ElementsMatch(t, local, cart.Lines())
		remote.AssertExpectations(t)
	})

	t.Run("RemoteIsAuthoritative", func(t *testing.T) {
		local := []domain.CartLine{{ProductID: 1, Quantity: 2}}
		merged := []domain.CartLine{
			{ProductID: 1, Quantity: 2},
			{ProductID: 9, Quantity: 4},
		}

		remote := new(MockRemoteCartStorage)
		remote.On("MergeCart", t.Context(), userID, local).Return(merged, nil)

		cart := service.NewCart(&memCartStorage{})
		cart.ReplaceAll(local)
		r := service.NewReconciler(remote, cart)

		require.NoError(t, r.Reconcile(t.Context(), userID))
		assert.ElementsMatch(t, merged, cart.Lines())
	})

	t.Run("RemoteErrorLeavesLocalUntouched", func(t *testing.T) {
		local := []domain.CartLine{{ProductID: 1, Quantity: 2}}

		remote := new(MockRemoteCartStorage)
		remote.On("MergeCart", t.Context(), userID, local).
			Return(nil, errors.New("connection refused"))

		cart := service.NewCart(&memCartStorage{})
		cart.ReplaceAll(local)
		r := service.NewReconciler(remote, cart)

		require.Error(t, r.Reconcile(t.Context(), userID))
		assert.Equal(t, local, cart.Lines())
	})

	t.Run("EmptyUserID", func(t *testing.T) {
		r := service.NewReconciler(
			new(MockRemoteCartStorage), service.NewCart(&memCartStorage{}),
		)
		require.Error(t, r.Reconcile(t.Context(), ""))
	})
}

func TestBumpQuantity(t *testing.T) {
	const userID = "user-1"

	t.Run("AddsDeltaToCurrent", func(t *testing.T) {
		remote := new(MockRemoteCartStorage)
		remote.On("LineQuantity", t.Context(), userID, 5).Return(2, nil)
		remote.On("SetQuantity", t.Context(), userID, 5, 3).Return(nil)

		r := service.NewReconciler(remote, service.NewCart(&memCartStorage{}))

		require.NoError(t, r.BumpQuantity(t.Context(), userID, 5, 1))
		remote.AssertExpectations(t)
	})

	t.Run("MissingRowReadsAsZero", func(t *testing.T) {
		remote := new(MockRemoteCartStorage)
		remote.On("LineQuantity", t.Context(), userID, 5).
			Return(0, domain.ErrNotFound)
		remote.On("SetQuantity", t.Context(), userID, 5, 2).Return(nil)

		r := service.NewReconciler(remote, service.NewCart(&memCartStorage{}))

		require.NoError(t, r.BumpQuantity(t.Context(), userID, 5, 2))
		remote.AssertExpectations(t)
	})

	t.Run("OtherReadErrorPropagates", func(t *testing.T) {
		remote := new(MockRemoteCartStorage)
		remote.On("LineQuantity", t.Context(), userID, 5).
			Return(0, errors.New("timeout"))

		r := service.NewReconciler(remote, service.NewCart(&memCartStorage{}))

		require.Error(t, r.BumpQuantity(t.Context(), userID, 5, 2))
		remote.AssertNotCalled(t, "SetQuantity",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NegativeResultDelegatesDeletion", func(t *testing.T) {
		remote := new(MockRemoteCartStorage)
		remote.On("LineQuantity", t.Context(), userID, 5).Return(1, nil)
		remote.On("SetQuantity", t.Context(), userID, 5, -1).Return(nil)

		r := service.NewReconciler(remote, service.NewCart(&memCartStorage{}))

		require.NoError(t, r.BumpQuantity(t.Context(), userID, 5, -2))
		remote.AssertExpectations(t)
	})
}

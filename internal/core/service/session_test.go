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

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) SignIn(
	ctx context.Context, email, password string,
) (domain.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *MockIdentityProvider) SignUp(
	ctx context.Context, email, password string, extra map[string]string,
) (domain.Session, error) {
	args := m.Called(ctx, email, password, extra)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *MockIdentityProvider) SignOut(
	ctx context.Context, accessToken string,
) error {
	args := m.Called(ctx, accessToken)
	return args.Error(0)
}

type MockProfileStorage struct {
	mock.Mock
}

func (m *MockProfileStorage) Profile(
	ctx context.Context, userID string,
) (domain.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *MockProfileStorage) UpsertProfile(
	ctx context.Context, p domain.Profile,
) (domain.Profile, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Profile), args.Error(1)
}

type sessionFixture struct {
	session  *service.Session
	cart     *service.Cart
	identity *MockIdentityProvider
	remote   *MockRemoteCartStorage
	profiles *MockProfileStorage
}

func newSessionFixture(t *testing.T) sessionFixture {
	t.Helper()

	cart := service.NewCart(&memCartStorage{})
	identity := new(MockIdentityProvider)
	remote := new(MockRemoteCartStorage)
	profiles := new(MockProfileStorage)

	session := service.NewSession(
		identity,
		service.NewReconciler(remote, cart),
		profiles,
		nopNotifier{},
	)
	return sessionFixture{session, cart, identity, remote, profiles}
}

func TestSessionLogin(t *testing.T) {
	sess := domain.Session{
		UserID:      "user-1",
		Email:       "a@b.c",
		AccessToken: "token-1",
	}

	t.Run("ReconcilesCartAndLoadsProfile", func(t *testing.T) {
		f := newSessionFixture(t)
		f.cart.AddItem(1, 2)

		f.identity.On("SignIn", mock.Anything, "a@b.c", "secret").
			Return(sess, nil)
		f.remote.On(
			"MergeCart", mock.Anything, "user-1",
			[]domain.CartLine{{ProductID: 1, Quantity: 2}},
		).Return([]domain.CartLine{
			{ProductID: 1, Quantity: 2},
			{ProductID: 5, Quantity: 1},
		}, nil)
		f.profiles.On("Profile", mock.Anything, "user-1").
			Return(domain.Profile{UserID: "user-1", FullName: "Ada"}, nil)

		got, err := f.session.Login(t.Context(), "a@b.c", "secret")
		require.NoError(t, err)
		assert.Equal(t, sess, got)

		require.NotNil(t, f.session.Current())
		assert.Equal(t, "user-1", f.session.Current().UserID)
		assert.Equal(t, 3, f.cart.Count())

		require.NotNil(t, f.session.CurrentProfile())
		assert.Equal(t, "Ada", f.session.CurrentProfile().FullName)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		f := newSessionFixture(t)

		f.identity.On("SignIn", mock.Anything, "a@b.c", "wrong").
			Return(domain.Session{}, errors.New("invalid grant"))

		_, err := f.session.Login(t.Context(), "a@b.c", "wrong")
		require.Error(t, err)
		assert.Nil(t, f.session.Current())
		f.remote.AssertNotCalled(
			t, "MergeCart", mock.Anything, mock.Anything, mock.Anything,
		)
	})

	t.Run("ReconcileFailureKeepsSession", func(t *testing.T) {
		f := newSessionFixture(t)
		f.cart.AddItem(1, 1)

		f.identity.On("SignIn", mock.Anything, "a@b.c", "secret").
			Return(sess, nil)
		f.remote.On("MergeCart", mock.Anything, "user-1", mock.Anything).
			Return([]domain.CartLine(nil), errors.New("db down"))
		f.profiles.On("Profile", mock.Anything, "user-1").
			Return(domain.Profile{}, domain.ErrNotFound)

		_, err := f.session.Login(t.Context(), "a@b.c", "secret")
		require.NoError(t, err)

		assert.NotNil(t, f.session.Current())
		assert.Equal(t, 1, f.cart.Count(), "local cart stays untouched")
		assert.Nil(t, f.session.CurrentProfile())
	})
}

func TestSessionLogout(t *testing.T) {
	t.Run("AnonymousIsNoop", func(t *testing.T) {
		f := newSessionFixture(t)
		require.NoError(t, f.session.Logout(t.Context()))
		f.identity.AssertNotCalled(t, "SignOut", mock.Anything, mock.Anything)
	})

	t.Run("ClearsSessionState", func(t *testing.T) {
		f := newSessionFixture(t)

		sess := domain.Session{UserID: "user-1", AccessToken: "token-1"}
		f.identity.On("SignIn", mock.Anything, "a@b.c", "secret").
			Return(sess, nil)
		f.remote.On("MergeCart", mock.Anything, "user-1", mock.Anything).
			Return([]domain.CartLine{}, nil)
		f.profiles.On("Profile", mock.Anything, "user-1").
			Return(domain.Profile{UserID: "user-1"}, nil)

		_, err := f.session.Login(t.Context(), "a@b.c", "secret")
		require.NoError(t, err)

		f.identity.On("SignOut", mock.Anything, "token-1").Return(nil)
		require.NoError(t, f.session.Logout(t.Context()))

		assert.Nil(t, f.session.Current())
		assert.Nil(t, f.session.CurrentProfile())
	})

	t.Run("SignOutFailureKeepsSession", func(t *testing.T) {
		f := newSessionFixture(t)

		sess := domain.Session{UserID: "user-1", AccessToken: "token-1"}
		f.identity.On("SignIn", mock.Anything, "a@b.c", "secret").
			Return(sess, nil)
		f.remote.On("MergeCart", mock.Anything, "user-1", mock.Anything).
			Return([]domain.CartLine{}, nil)
		f.profiles.On("Profile", mock.Anything, "user-1").
			Return(domain.Profile{}, domain.ErrNotFound)

		_, err := f.session.Login(t.Context(), "a@b.c", "secret")
		require.NoError(t, err)

		f.identity.On("SignOut", mock.Anything, "token-1").
			Return(errors.New("gateway timeout"))
		require.Error(t, f.session.Logout(t.Context()))
		assert.NotNil(t, f.session.Current())
	})
}

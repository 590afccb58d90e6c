package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// A Session drives the login/signup/logout flow. Establishing a session
// triggers cart reconciliation and profile loading; a reconciliation or
// profile failure is surfaced but does not tear the session down
// (partial flows are not rolled back).
type Session struct {
	mu         sync.Mutex
	identity   port.IdentityProvider
	reconciler Reconciler
	profiles   port.ProfileStorage
	notifier   port.Notifier
	current    *domain.Session
	profile    *domain.Profile
}

func NewSession(
	identity port.IdentityProvider,
	reconciler Reconciler,
	profiles port.ProfileStorage,
	notifier port.Notifier,
) *Session {
	return &Session{
		identity:   identity,
		reconciler: reconciler,
		profiles:   profiles,
		notifier:   notifier,
	}
}

func (s *Session) Login(
	ctx context.Context, email, password string,
) (domain.Session, error) {
	const op = "Session.Login"

	sess, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	s.establish(ctx, op, sess)
	return sess, nil
}

func (s *Session) Signup(
	ctx context.Context, email, password string, extra map[string]string,
) (domain.Session, error) {
	const op = "Session.Signup"

	sess, err := s.identity.SignUp(ctx, email, password, extra)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	s.establish(ctx, op, sess)
	return sess, nil
}

func (s *Session) Logout(ctx context.Context) error {
	const op = "Session.Logout"

	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil {
		return nil
	}

	if err := s.identity.SignOut(ctx, current.AccessToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.current = nil
	s.profile = nil
	s.mu.Unlock()
	return nil
}

// Current returns the active session, or nil for the anonymous context.
func (s *Session) Current() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) CurrentProfile() *domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *Session) RefreshProfile(ctx context.Context) (*domain.Profile, error) {
	const op = "Session.RefreshProfile"

	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil {
		return nil, nil
	}

	p, err := s.profiles.Profile(ctx, current.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.profile = &p
	s.mu.Unlock()
	return &p, nil
}

func (s *Session) establish(ctx context.Context, op string, sess domain.Session) {
	log := slog.With("op", op, "userID", sess.UserID)

	s.mu.Lock()
	s.current = &sess
	s.profile = nil
	s.mu.Unlock()

	if err := s.reconciler.Reconcile(ctx, sess.UserID); err != nil {
		log.Error("failed to reconcile cart", "err", err)
		s.notifier.Error("your saved cart could not be loaded")
	}

	if _, err := s.RefreshProfile(ctx); err != nil {
		log.Warn("failed to load profile", "err", err)
	}
}

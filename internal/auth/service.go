// Package auth manages the user session against the hosted identity
// provider. Input validation runs before any network call; the session
// is persisted in the system keyring.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"habitchain/internal/credential"
	"habitchain/internal/model"
	"habitchain/internal/remote/identity"
	"habitchain/internal/validation"
)

const sessionKey = "session"

// IdentityClient is the subset of the identity REST client the service uses.
type IdentityClient interface {
	SignUp(ctx context.Context, email, password string) (*identity.Session, error)
	SignIn(ctx context.Context, email, password string) (*identity.Session, error)
	SendPasswordReset(ctx context.Context, email string) error
}

// Service owns sign-up, sign-in, sign-out, and the persisted session.
type Service struct {
	client IdentityClient
	creds  *credential.Store
	logger *zap.Logger
}

// NewService creates an auth service.
func NewService(client IdentityClient, creds *credential.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, creds: creds, logger: logger}
}

// SignUp validates the registration input, creates the account, and
// persists the new session.
func (s *Service) SignUp(ctx context.Context, email, password, confirm string) (model.User, error) {
	if err := validation.ValidateRegistration(email, password, confirm); err != nil {
		return model.User{}, err
	}

	sess, err := s.client.SignUp(ctx, email, password)
	if err != nil {
		return model.User{}, err
	}

	if err := s.persistSession(sess); err != nil {
		return model.User{}, err
	}

	s.logger.Info("account created", zap.String("email", sess.User.Email))
	return sess.User, nil
}

// SignIn validates the credentials, authenticates, and persists the session.
func (s *Service) SignIn(ctx context.Context, email, password string) (model.User, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return model.User{}, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return model.User{}, err
	}

	sess, err := s.client.SignIn(ctx, email, password)
	if err != nil {
		return model.User{}, err
	}

	if err := s.persistSession(sess); err != nil {
		return model.User{}, err
	}

	s.logger.Info("signed in", zap.String("email", sess.User.Email))
	return sess.User, nil
}

// SignOut discards the persisted session. Signing out while signed out
// is not an error.
func (s *Service) SignOut() error {
	return s.creds.Delete(sessionKey)
}

// CurrentUser returns the signed-in user, or nil when no session exists.
func (s *Service) CurrentUser() (*model.User, error) {
	raw, err := s.creds.Get(sessionKey)
	if err != nil {
		if errors.Is(err, credential.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var sess identity.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decoding stored session: %w", err)
	}
	return &sess.User, nil
}

// ResetPassword validates the email and asks the provider to send a
// password reset link.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}
	return s.client.SendPasswordReset(ctx, email)
}

func (s *Service) persistSession(sess *identity.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return s.creds.Set(sessionKey, string(raw))
}

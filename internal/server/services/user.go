// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, token validation and the
// account directory operations on top of a users.Repository.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/config"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/users"
)

const timingPlaceholderPassword = "userkeeper-placeholder"

// UserService provides account operations:
// - Register / Login / Authenticate: credentials and session tokens
// - List / GetBy* / Update / SetStatus / Delete: the account directory
type UserService struct {
	repo                  users.Repository
	logger                logging.Logger
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int

	placeholderOnce sync.Once
	placeholderHash string
}

// NewUserService constructs a UserService using the repository and server config.
func NewUserService(repo users.Repository, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		repo:                  repo,
		logger:                logger.With("module", "users"),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            cfg.BcryptCost,
	}
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// Register creates an active user. The email must not be registered yet;
// the store's unique index is the final arbiter under concurrent calls.
func (s *UserService) Register(ctx context.Context, name, email, mobile, password string) (*models.User, error) {
	if blank(name, email, mobile, password) {
		return nil, common.ErrMissingFields
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:      name,
		Email:     email,
		Mobile:    mobile,
		Password:  hash,
		Status:    true,
		CreatedAt: time.Now().UTC(),
	}

	u, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// placeholder returns a hash that unknown-email logins are checked against,
// so both login failure paths run one bcrypt comparison.
func (s *UserService) placeholder() string {
	s.placeholderOnce.Do(func() {
		h, err := auth.HashPassword(timingPlaceholderPassword, s.bcryptCost)
		if err == nil {
			s.placeholderHash = h
		}
	})
	return s.placeholderHash
}

// Login verifies credentials, issues a fresh session token, stores it on the
// user record (replacing any previous one) and returns the user with Token
// set. Unknown email and wrong password yield the same error. Account status
// is not consulted.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if blank(email, password) {
		return nil, common.ErrMissingFields
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckPassword(password, s.placeholder())
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(password, user.Password) {
		s.logger.Debug(ctx, "password mismatch", "user_id", user.ID)
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if err := s.repo.SetToken(ctx, user.ID, token); err != nil {
		return nil, err
	}

	user.Token = token
	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return user, nil
}

// Authenticate resolves a session token to its user. The token must verify
// and still be the one stored on the user record.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrInvalidToken
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(user.Token), []byte(token)) != 1 {
		return nil, common.ErrInvalidToken
	}

	return user, nil
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	if blank(id) {
		return nil, common.ErrMissingID
	}
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if blank(email) {
		return nil, common.ErrMissingEmail
	}
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) GetByMobile(ctx context.Context, mobile string) (*models.User, error) {
	if blank(mobile) {
		return nil, common.ErrMissingMobile
	}
	return s.repo.FindByMobile(ctx, mobile)
}

// Update overwrites name, email, mobile and password of an existing user.
// The password is always re-hashed. An email held by another user is
// rejected with common.ErrAlreadyExists.
func (s *UserService) Update(ctx context.Context, id, name, email, mobile, password string) error {
	if blank(id) {
		return common.ErrMissingID
	}
	if blank(name, email, mobile, password) {
		return common.ErrMissingFields
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	owner, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil && owner.ID != id:
		return common.ErrAlreadyExists
	case err != nil && !errors.Is(err, common.ErrorNotFound):
		return err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, &models.User{ID: id, Name: name, Email: email, Mobile: mobile, Password: hash}); err != nil {
		return err
	}

	s.logger.Info(ctx, "user updated", "user_id", id)
	return nil
}

// SetStatus activates (1) or deactivates (0) a user and returns the
// resulting state. Any other status value is rejected.
func (s *UserService) SetStatus(ctx context.Context, id string, status int) (bool, error) {
	if status != 0 && status != 1 {
		return false, common.ErrInvalidStatus
	}
	if blank(id) {
		return false, common.ErrMissingID
	}

	active := status == 1
	if err := s.repo.SetStatus(ctx, id, active); err != nil {
		return false, err
	}

	s.logger.Info(ctx, "user status changed", "user_id", id, "status", models.StatusLabel(active))
	return active, nil
}

// Delete permanently removes a user.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if blank(id) {
		return common.ErrMissingID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info(ctx, "user deleted", "user_id", id)
	return nil
}

// Ping reports whether the user store is reachable.
func (s *UserService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

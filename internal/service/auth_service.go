package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pokewiki/internal/auth"
	"github.com/spec-kit/pokewiki/internal/config"
	"github.com/spec-kit/pokewiki/internal/domain"
	"github.com/spec-kit/pokewiki/internal/events"
	"github.com/spec-kit/pokewiki/internal/repository"
	"github.com/spec-kit/pokewiki/internal/validation"
	apperrors "github.com/spec-kit/pokewiki/pkg/util"
)

// User-facing failure messages. The credential message is deliberately
// identical for unknown e-mail and wrong password so callers cannot
// probe which field was wrong.
const (
	MsgEmailMissing         = "E-mail was not provided."
	MsgEmailInvalid         = "E-mail is invalid or not formatted correctly."
	MsgPasswordMissing      = "Password was not provided."
	MsgPasswordInvalid      = "Password is invalid or not formatted correctly."
	MsgFullNameMissing      = "Full Name was not provided."
	MsgFullNameInvalid      = "Full Name is invalid or not formatted correctly."
	MsgIncorrectCredentials = "Incorrect E-mail or Password."
	MsgDuplicateEmail       = "There is already a user with this E-mail."
	MsgNewPasswordMissing   = "New Password was not provided."
	MsgNewPasswordSameAsOld = "New password is equal to the old one."
	MsgNewPasswordInvalid   = "New Password is invalid or not formatted correctly."
	MsgNoChanges            = "No changes provided."
)

// Success messages returned in the response envelope.
const (
	MsgAccountCreated  = "Account Created Successfully"
	MsgProfileUpdated  = "Info account updated successfully"
	MsgPasswordUpdated = "Password account updated successfully"
)

// AuthService coordinates the account flows: authentication,
// registration and profile/password updates.
type AuthService struct {
	users          repository.UserRepository
	hasher         *auth.PasswordHasher
	tokenMgr       *auth.TokenManager
	passwordPolicy validation.PasswordPolicy
	dispatcher     events.Dispatcher
}

// AuthDependencies encapsulates collaborator requirements for the service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:          deps.UserRepo,
		hasher:         auth.NewPasswordHasher(cfg.BcryptCost),
		tokenMgr:       auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		passwordPolicy: validation.PasswordPolicy{MinLength: cfg.PasswordMinLength},
		dispatcher:     deps.Dispatcher,
	}
}

// Authenticate verifies credentials and returns a signed bearer token.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	if err := s.checkEmail(email); err != nil {
		return "", err
	}
	if err := s.checkPassword(password); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperrors.NewCredentialError(MsgIncorrectCredentials)
	}
	if err != nil {
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", apperrors.NewCredentialError(MsgIncorrectCredentials)
	}

	token, _, err := s.tokenMgr.Issue(user.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Register creates a new account. The existence pre-check is a fast
// path only; the store's unique index is the real guarantee, and a
// duplicate-key race is reported with the same message.
func (s *AuthService) Register(ctx context.Context, fullName, email, password string) error {
	if fullName == "" {
		return apperrors.NewValidationError(MsgFullNameMissing)
	}
	if !validation.IsValidFullName(fullName) {
		return apperrors.NewValidationError(MsgFullNameInvalid)
	}
	if err := s.checkEmail(email); err != nil {
		return err
	}
	if err := s.checkPassword(password); err != nil {
		return err
	}

	count, err := s.users.CountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflict(MsgDuplicateEmail)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	user := &domain.User{
		FullName:     fullName,
		Email:        normalizeEmail(email),
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return apperrors.NewConflict(MsgDuplicateEmail)
		}
		return err
	}

	s.publish(ctx, events.NewAccountRegistered(user.ID, events.AccountRegisteredPayload{
		FullName: user.FullName,
		Email:    user.Email,
	}))
	return nil
}

// UpdateProfile applies a partial update of fullName and/or e-mail for
// the token's owner. Empty arguments mean "leave unchanged".
func (s *AuthService) UpdateProfile(ctx context.Context, userID, fullName, email string) error {
	if fullName == "" && email == "" {
		return apperrors.NewValidationError(MsgNoChanges)
	}
	if fullName != "" && !validation.IsValidFullName(fullName) {
		return apperrors.NewValidationError(MsgFullNameInvalid)
	}
	if email != "" && !validation.IsValidEmail(email) {
		return apperrors.NewValidationError(MsgEmailInvalid)
	}

	fields := domain.UserUpdate{}
	if fullName != "" {
		fields.FullName = &fullName
	}
	if email != "" {
		normalized := normalizeEmail(email)

		// A user keeping their current address is not a conflict;
		// only a different owner of the target address is.
		existing, err := s.users.GetByEmail(ctx, normalized)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		if existing != nil && existing.ID != userID {
			return apperrors.NewConflict(MsgDuplicateEmail)
		}
		fields.Email = &normalized
	}

	if _, err := s.users.Update(ctx, userID, fields); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return apperrors.NewConflict(MsgDuplicateEmail)
		}
		return err
	}

	s.publish(ctx, events.NewProfileUpdated(userID, events.ProfileUpdatedPayload{
		FullName: fields.FullName,
		Email:    fields.Email,
	}))
	return nil
}

// UpdatePassword replaces the stored hash after proving the current
// password. Validation order matches the public contract: presence,
// equality with the old password, then format.
func (s *AuthService) UpdatePassword(ctx context.Context, email, password, newPassword string) error {
	if err := s.checkEmail(email); err != nil {
		return err
	}
	if err := s.checkPassword(password); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewCredentialError(MsgIncorrectCredentials)
	}
	if err != nil {
		return err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return apperrors.NewCredentialError(MsgIncorrectCredentials)
	}

	if newPassword == "" {
		return apperrors.NewValidationError(MsgNewPasswordMissing)
	}
	if newPassword == password {
		return apperrors.NewValidationError(MsgNewPasswordSameAsOld)
	}
	if !validation.IsValidPassword(newPassword, s.passwordPolicy) {
		return apperrors.NewValidationError(MsgNewPasswordInvalid)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if _, err := s.users.Update(ctx, user.ID, domain.UserUpdate{PasswordHash: &hash}); err != nil {
		return err
	}

	s.publish(ctx, events.NewPasswordChanged(user.ID, events.PasswordChangedPayload{Email: user.Email}))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) checkEmail(email string) error {
	if email == "" {
		return apperrors.NewValidationError(MsgEmailMissing)
	}
	if !validation.IsValidEmail(email) {
		return apperrors.NewValidationError(MsgEmailInvalid)
	}
	return nil
}

func (s *AuthService) checkPassword(password string) error {
	if password == "" {
		return apperrors.NewValidationError(MsgPasswordMissing)
	}
	if !validation.IsValidPassword(password, s.passwordPolicy) {
		return apperrors.NewValidationError(MsgPasswordInvalid)
	}
	return nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, event)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

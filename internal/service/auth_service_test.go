package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/pokewiki/internal/config"
	"github.com/spec-kit/pokewiki/internal/domain"
	"github.com/spec-kit/pokewiki/internal/repository"
	apperrors "github.com/spec-kit/pokewiki/pkg/util"
)

func newTestService(repo repository.UserRepository) *AuthService {
	return NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
		PasswordMinLength:     4,
	}, AuthDependencies{UserRepo: repo})
}

func failMessage(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Message
}

// countingRepo records how often the store is touched.
type countingRepo struct {
	repository.UserRepository
	calls int
}

func (r *countingRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.calls++
	return r.UserRepository.GetByEmail(ctx, email)
}

func (r *countingRepo) CountByEmail(ctx context.Context, email string) (int, error) {
	r.calls++
	return r.UserRepository.CountByEmail(ctx, email)
}

func TestAuthenticate_ValidationShortCircuits(t *testing.T) {
	t.Parallel()

	repo := &countingRepo{UserRepository: repository.NewMemoryUserRepository()}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "", "Str0ng!Pass")
	assert.Equal(t, MsgEmailMissing, failMessage(t, err))

	for _, email := range []string{"ada", "ada@", "@example.com", "ada@example"} {
		_, err = svc.Authenticate(ctx, email, "Str0ng!Pass")
		assert.Equal(t, MsgEmailInvalid, failMessage(t, err))
	}

	_, err = svc.Authenticate(ctx, "ada@example.com", "")
	assert.Equal(t, MsgPasswordMissing, failMessage(t, err))

	_, err = svc.Authenticate(ctx, "ada@example.com", "no spaces allowed")
	assert.Equal(t, MsgPasswordInvalid, failMessage(t, err))

	assert.Zero(t, repo.calls, "malformed input must never reach the store")
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(repository.NewMemoryUserRepository())

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "Str0ng!Pass")
	assert.Equal(t, MsgIncorrectCredentials, failMessage(t, err))
}

func TestRegisterThenAuthenticate(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryUserRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ada Lovelace", "ada@example.com", "Str0ng!Pass"))

	token, err := svc.Authenticate(ctx, "ada@example.com", "Str0ng!Pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subjectID, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)

	user, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, subjectID)

	_, err = svc.Authenticate(ctx, "ada@example.com", "wrong")
	assert.Equal(t, MsgIncorrectCredentials, failMessage(t, err))
}

func TestAuthenticate_EmailCaseInsensitive(t *testing.T) {
	t.Parallel()

	svc := newTestService(repository.NewMemoryUserRepository())
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ada Lovelace", "ada@example.com", "Str0ng!Pass"))

	token, err := svc.Authenticate(ctx, "ADA@Example.COM", "Str0ng!Pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(repository.NewMemoryUserRepository())
	ctx := context.Background()

	err := svc.Register(ctx, "", "ada@example.com", "Str0ng!Pass")
	assert.Equal(t, MsgFullNameMissing, failMessage(t, err))

	err = svc.Register(ctx, "Ada<1>", "ada@example.com", "Str0ng!Pass")
	assert.Equal(t, MsgFullNameInvalid, failMessage(t, err))

	err = svc.Register(ctx, "Ada Lovelace", "not-an-email", "Str0ng!Pass")
	assert.Equal(t, MsgEmailInvalid, failMessage(t, err))

	err = svc.Register(ctx, "Ada Lovelace", "ada@example.com", "")
	assert.Equal(t, MsgPasswordMissing, failMessage(t, err))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryUserRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ada Lovelace", "ada@example.com", "Str0ng!Pass"))

	err := svc.Register(ctx, "Other Person", "ada@example.com", "0therPass")
	assert.Equal(t, MsgDuplicateEmail, failMessage(t, err))

	// Uniqueness is case-insensitive.
	err = svc.Register(ctx, "Other Person", "ADA@EXAMPLE.COM", "0therPass")
	assert.Equal(t, MsgDuplicateEmail, failMessage(t, err))

	count, err := repo.CountByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegister_StoreConstraintRace(t *testing.T) {
	t.Parallel()

	// Simulates the gap between the existence pre-check and the insert:
	// the store reports the unique violation and the caller still sees
	// the duplicate-email message.
	repo := &racingRepo{UserRepository: repository.NewMemoryUserRepository()}
	svc := newTestService(repo)

	err := svc.Register(context.Background(), "Ada Lovelace", "ada@example.com", "Str0ng!Pass")
	assert.Equal(t, MsgDuplicateEmail, failMessage(t, err))
}

type racingRepo struct {
	repository.UserRepository
}

func (r *racingRepo) CountByEmail(context.Context, string) (int, error) {
	return 0, nil
}

func (r *racingRepo) Create(context.Context, *domain.User) error {
	return repository.ErrDuplicateEmail
}

func TestUpdateProfile_NoChanges(t *testing.T) {
	t.Parallel()

	svc := newTestService(repository.NewMemoryUserRepository())

	err := svc.UpdateProfile(context.Background(), "some-id", "", "")
	assert.Equal(t, MsgNoChanges, failMessage(t, err))
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryUserRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ada Lovelace", "ada@example.com", "Str0ng!Pass"))
	user, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateProfile(ctx, user.ID, "Ada King", ""))

	updated, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada King", updated.FullName)
	assert.Equal(t, "ada@example.com", updated.Email, "absent email must stay unchanged")
}

func TestUpdateProfile_KeepingOwnEmailIsNotAConflict(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryUserRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ada Lovelace", "ada@example.com", "Str0ng!Pass"))
	user, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)

	assert.NoError(t, svc.UpdateProfile(ctx, user.ID, "Ada King", "ada@example.com"))
}

func TestUpdateProfile_EmailTakenByAnotherUser(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryUserRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ada Lovelace", "ada@example.com", "Str0ng!Pass"))
	require.NoError(t, svc.Register(ctx, "Grace Hopper", "grace@example.com", "C0bolRules"))

	grace, err := repo.GetByEmail(ctx, "grace@example.com")
	require.NoError(t, err)

	err = svc.UpdateProfile(ctx, grace.ID, "", "ada@example.com")
	assert.Equal(t, MsgDuplicateEmail, failMessage(t, err))
}

func TestUpdateProfile_InvalidFields(t *testing.T) {
	t.Parallel()

	svc := newTestService(repository.NewMemoryUserRepository())
	ctx := context.Background()

	err := svc.UpdateProfile(ctx, "some-id", "Bad<Name>", "")
	assert.Equal(t, MsgFullNameInvalid, failMessage(t, err))

	err = svc.UpdateProfile(ctx, "some-id", "", "not-an-email")
	assert.Equal(t, MsgEmailInvalid, failMessage(t, err))
}

func TestUpdatePassword_Flow(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryUserRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ada Lovelace", "ada@example.com", "Str0ng!Pass"))
	before, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)

	err = svc.UpdatePassword(ctx, "ada@example.com", "wrong-pass", "N3wPassword")
	assert.Equal(t, MsgIncorrectCredentials, failMessage(t, err))

	err = svc.UpdatePassword(ctx, "ada@example.com", "Str0ng!Pass", "")
	assert.Equal(t, MsgNewPasswordMissing, failMessage(t, err))

	err = svc.UpdatePassword(ctx, "ada@example.com", "Str0ng!Pass", "Str0ng!Pass")
	assert.Equal(t, MsgNewPasswordSameAsOld, failMessage(t, err))

	err = svc.UpdatePassword(ctx, "ada@example.com", "Str0ng!Pass", "has space")
	assert.Equal(t, MsgNewPasswordInvalid, failMessage(t, err))

	unchanged, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, unchanged.PasswordHash, "failed updates must not touch the stored hash")

	require.NoError(t, svc.UpdatePassword(ctx, "ada@example.com", "Str0ng!Pass", "N3wPassword"))

	_, err = svc.Authenticate(ctx, "ada@example.com", "Str0ng!Pass")
	assert.Equal(t, MsgIncorrectCredentials, failMessage(t, err))

	token, err := svc.Authenticate(ctx, "ada@example.com", "N3wPassword")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

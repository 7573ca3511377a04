package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"farmstand/internal/adapter/storage/memory"
	"farmstand/internal/domain/storage"
	"farmstand/pkg/errors"
)

type recordingMailer struct {
	verifyTokens map[string]string
	resetTokens  map[string]string
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{
		verifyTokens: map[string]string{},
		resetTokens:  map[string]string{},
	}
}

func (m *recordingMailer) SendVerificationEmail(toEmail, token string) error {
	m.verifyTokens[toEmail] = token
	return nil
}

func (m *recordingMailer) SendPasswordResetEmail(toEmail, token string) error {
	m.resetTokens[toEmail] = token
	return nil
}

func newAuthFixture(t *testing.T) (*AuthUseCase, *recordingMailer, storage.Storage) {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.Init(context.Background()))
	mailer := newRecordingMailer()
	uc := NewAuthUseCase(store, mailer, "test-secret", time.Hour)
	return uc, mailer, store
}

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	ctx := context.Background()
	uc, mailer, store := newAuthFixture(t)

	result, err := uc.Register(ctx, RegisterInput{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.NotEmpty(t, result.Token)

	// The stored credential is a hash, never the raw password.
	stored, err := store.GetUserByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter22")))

	// The verification token went out in the mail.
	assert.Equal(t, stored.VerificationToken, mailer.verifyTokens["ada@example.com"])

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ada", claims["username"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newAuthFixture(t)

	_, err := uc.Register(ctx, RegisterInput{Username: "ada", Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, RegisterInput{Username: "ada", Email: "b@example.com", Password: "pw"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestLoginByUsernameOrEmail(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newAuthFixture(t)

	_, err := uc.Register(ctx, RegisterInput{Username: "ada", Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	result, err := uc.Login(ctx, "ada", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "ada", result.User.Username)

	result, err = uc.Login(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "ada", result.User.Username)

	_, err = uc.Login(ctx, "ada", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	_, err = uc.Login(ctx, "nobody", "hunter22")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestVerifyEmailConsumesToken(t *testing.T) {
	ctx := context.Background()
	uc, mailer, _ := newAuthFixture(t)

	_, err := uc.Register(ctx, RegisterInput{Username: "ada", Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)
	token := mailer.verifyTokens["ada@example.com"]
	require.NotEmpty(t, token)

	user, err := uc.VerifyEmail(ctx, token)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	// Second use of the same token fails.
	_, err = uc.VerifyEmail(ctx, token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	uc, mailer, _ := newAuthFixture(t)

	_, err := uc.Register(ctx, RegisterInput{Username: "ada", Email: "ada@example.com", Password: "oldpw"})
	require.NoError(t, err)

	require.NoError(t, uc.RequestPasswordReset(ctx, "ada@example.com"))
	token := mailer.resetTokens["ada@example.com"]
	require.NotEmpty(t, token)

	require.NoError(t, uc.ResetPassword(ctx, token, "newpw"))

	_, err = uc.Login(ctx, "ada", "oldpw")
	require.Error(t, err)
	_, err = uc.Login(ctx, "ada", "newpw")
	require.NoError(t, err)

	// The token was cleared by the successful reset.
	err = uc.ResetPassword(ctx, token, "again")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	ctx := context.Background()
	uc, mailer, _ := newAuthFixture(t)

	require.NoError(t, uc.RequestPasswordReset(ctx, "ghost@example.com"))
	assert.Empty(t, mailer.resetTokens)
}

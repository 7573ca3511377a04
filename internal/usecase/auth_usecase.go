package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
	"farmstand/internal/infrastructure/mail"
	"farmstand/pkg/errors"
	"farmstand/pkg/logger"
)

const resetTokenTTL = time.Hour

type AuthUseCase struct {
	store     storage.Storage
	mailer    mail.Mailer
	jwtSecret []byte
	jwtExpiry time.Duration
}

func NewAuthUseCase(store storage.Storage, mailer mail.Mailer, jwtSecret string, jwtExpiry time.Duration) *AuthUseCase {
	return &AuthUseCase{
		store:     store,
		mailer:    mailer,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: jwtExpiry,
	}
}

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

type AuthResult struct {
	User  *entity.User
	Token string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	user := &entity.User{
		Username:          input.Username,
		Email:             input.Email,
		Password:          string(hash),
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		PhoneNumber:       input.PhoneNumber,
		VerificationToken: uuid.NewString(),
	}

	created, err := uc.store.CreateUser(ctx, user)
	if err != nil {
		if stderrors.Is(err, storage.ErrConflict) {
			return nil, errors.Conflict("Username or email already in use", err)
		}
		return nil, errors.Internal("Failed to create user", err)
	}

	// Registration succeeds even if the email cannot go out; the token can
	// be re-sent later.
	if err := uc.mailer.SendVerificationEmail(created.Email, created.VerificationToken); err != nil {
		logger.Error("failed to send verification email to %s: %v", created.Email, err)
	}

	token, err := uc.generateToken(created)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: created, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := uc.store.GetUserByUsername(ctx, username)
	if stderrors.Is(err, storage.ErrNotFound) {
		user, err = uc.store.GetUserByEmail(ctx, username)
	}
	if err != nil {
		return nil, errors.Unauthorized("Invalid credentials", nil)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.Unauthorized("Invalid credentials", nil)
	}

	token, err := uc.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) VerifyEmail(ctx context.Context, token string) (*entity.User, error) {
	user, err := uc.store.GetUserByVerificationToken(ctx, token)
	if err != nil {
		return nil, errors.BadRequest("Invalid verification token", err)
	}

	verified := true
	empty := ""
	updated, err := uc.store.UpdateUser(ctx, user.ID, entity.UserUpdate{
		IsVerified:        &verified,
		VerificationToken: &empty,
	})
	if err != nil {
		return nil, storeErr("User", err)
	}
	return updated, nil
}

// RequestPasswordReset issues a reset token for the account. It reports
// success for unknown emails so the endpoint cannot be used to probe which
// addresses have accounts.
func (uc *AuthUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := uc.store.GetUserByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return storeErr("User", err)
	}

	token := uuid.NewString()
	expiry := time.Now().Add(resetTokenTTL)
	_, err = uc.store.UpdateUser(ctx, user.ID, entity.UserUpdate{
		ResetToken:       &token,
		ResetTokenExpiry: &expiry,
	})
	if err != nil {
		return storeErr("User", err)
	}

	if err := uc.mailer.SendPasswordResetEmail(user.Email, token); err != nil {
		return errors.Internal("Failed to send reset email", err)
	}
	return nil
}

func (uc *AuthUseCase) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := uc.store.GetUserByResetToken(ctx, token)
	if err != nil {
		return errors.BadRequest("Invalid or expired reset token", err)
	}
	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return errors.BadRequest("Invalid or expired reset token", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Internal("Failed to hash password", err)
	}

	password := string(hash)
	empty := ""
	_, err = uc.store.UpdateUser(ctx, user.ID, entity.UserUpdate{
		Password:   &password,
		ResetToken: &empty,
	})
	if err != nil {
		return storeErr("User", err)
	}
	return nil
}

func (uc *AuthUseCase) GetProfile(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := uc.store.GetUser(ctx, userID)
	if err != nil {
		return nil, storeErr("User", err)
	}
	return user, nil
}

type ProfileUpdateInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Street      *string
	City        *string
	State       *string
	ZipCode     *string
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID int64, input ProfileUpdateInput) (*entity.User, error) {
	updated, err := uc.store.UpdateUser(ctx, userID, entity.UserUpdate{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Street:      input.Street,
		City:        input.City,
		State:       input.State,
		ZipCode:     input.ZipCode,
	})
	if err != nil {
		return nil, storeErr("User", err)
	}
	return updated, nil
}

func (uc *AuthUseCase) generateToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"vendor":   user.IsVendor,
		"iat":      now.Unix(),
		"exp":      now.Add(uc.jwtExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		return "", errors.Internal("Failed to sign token", err)
	}
	return signed, nil
}

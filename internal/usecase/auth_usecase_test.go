package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
	repo "github.com/SafatUddin/CAR-Hub/internal/repository"
	"github.com/SafatUddin/CAR-Hub/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type issuerStub struct {
	token     string
	expiresAt time.Time
	err       error
}

func (i issuerStub) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return i.token, i.expiresAt, i.err
}

func newAuthUsecase(users *UserRepoMock, issuer usecase.TokenIssuer, now time.Time) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(
		users,
		usecase.NewBcryptPasswordHasher(bcrypt.MinCost),
		usecase.NewBcryptPasswordVerifier(),
		issuer,
		fixedClock{now: now},
	)
}

func TestAuthUsecase_Register_InvalidEmail(t *testing.T) {
	uc := newAuthUsecase(new(UserRepoMock), issuerStub{}, time.Now())

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name: "Rahim", Email: "not-an-email", Password: "password123",
	})
	assertErrContains(t, err, "invalid email")
}

func TestAuthUsecase_Register_ShortPassword(t *testing.T) {
	uc := newAuthUsecase(new(UserRepoMock), issuerStub{}, time.Now())

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name: "Rahim", Email: "rahim@example.com", Password: "short",
	})
	assertErrContains(t, err, "at least 8 characters")
}

func TestAuthUsecase_Register_WhatsAppNeedsCountryCode(t *testing.T) {
	uc := newAuthUsecase(new(UserRepoMock), issuerStub{}, time.Now())

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name: "Rahim", Email: "rahim@example.com", Password: "password123",
		WhatsAppNumber: "01712345678",
	})
	assertErrContains(t, err, "country code")
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "rahim@example.com").Return(model.User{ID: 1}, true, nil)

	uc := newAuthUsecase(users, issuerStub{}, time.Now())

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name: "Rahim", Email: "rahim@example.com", Password: "password123",
	})
	assertErrContains(t, err, "email already used")
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_Success_NormalizesEmailAndStoresHash(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "rahim@example.com").Return(model.User{}, false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "rahim@example.com" &&
			u.Role == model.RoleUser &&
			u.PasswordHash != "" &&
			u.PasswordHash != "password123"
	})).Return(model.User{ID: 1, Name: "Rahim", Email: "rahim@example.com", Role: model.RoleUser}, nil)
	users.On("UpsertProfile", mock.Anything, mock.MatchedBy(func(p model.UserProfile) bool {
		return p.UserID == 1 && p.WhatsAppNumber == "+8801712345678"
	})).Return(nil)

	uc := newAuthUsecase(users, issuerStub{}, time.Now())

	out, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name: "Rahim", Email: "  Rahim@Example.COM ", Password: "password123",
		WhatsAppNumber: "+8801712345678",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "USER", out.Role)
	assert.Equal(t, "+8801712345678", out.WhatsAppNumber)

	users.AssertExpectations(t)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	assert.NoError(t, err)

	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "rahim@example.com").Return(model.User{
		ID: 1, Email: "rahim@example.com", PasswordHash: string(hash),
	}, true, nil)

	uc := newAuthUsecase(users, issuerStub{}, time.Now())

	_, err = uc.Login(context.Background(), "rahim@example.com", "wrong-password")
	assertErrContains(t, err, "invalid email or password")
}

func TestAuthUsecase_Login_UnknownEmailSameMessage(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(model.User{}, false, nil)

	uc := newAuthUsecase(users, issuerStub{}, time.Now())

	_, err := uc.Login(context.Background(), "ghost@example.com", "whatever123")
	assertErrContains(t, err, "invalid email or password")
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)

	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	expiry := now.Add(24 * time.Hour)

	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "rahim@example.com").Return(model.User{
		ID: 1, Name: "Rahim", Email: "rahim@example.com", PasswordHash: string(hash), Role: model.RoleUser,
	}, true, nil)
	users.On("FindProfileByUserID", mock.Anything, int64(1)).Return(model.UserProfile{
		UserID: 1, WhatsAppNumber: "+8801712345678",
	}, nil)

	uc := newAuthUsecase(users, issuerStub{token: "jwt-token", expiresAt: expiry}, now)

	out, err := uc.Login(context.Background(), "rahim@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "jwt-token", out.Token)
	assert.Equal(t, expiry, out.ExpiresAt)
	assert.Equal(t, "+8801712345678", out.User.WhatsAppNumber)
}

func TestAuthUsecase_UpdateProfile_EmailTaken(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(1)).Return(model.User{
		ID: 1, Name: "Rahim", Email: "rahim@example.com",
	}, nil)
	users.On("FindByEmail", mock.Anything, "taken@example.com").Return(model.User{ID: 2}, true, nil)

	uc := newAuthUsecase(users, issuerStub{}, time.Now())

	_, err := uc.UpdateProfile(context.Background(), 1, usecase.UpdateProfileInput{
		Name: "Rahim", Email: "taken@example.com",
	})
	assertErrContains(t, err, "email already used")
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthUsecase_DeleteAccount_NotFound(t *testing.T) {
	users := new(UserRepoMock)
	users.On("Delete", mock.Anything, int64(99)).Return(repo.ErrNotFound)

	uc := newAuthUsecase(users, issuerStub{}, time.Now())

	err := uc.DeleteAccount(context.Background(), 99)
	assertErrContains(t, err, "not found")
}

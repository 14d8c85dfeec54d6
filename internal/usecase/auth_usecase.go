package usecase

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
	repo "github.com/SafatUddin/CAR-Hub/internal/repository"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// WhatsApp numbers must carry a country code, e.g. +8801712345678.
var whatsappRe = regexp.MustCompile(`^\+[0-9]{6,19}$`)

type TokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error)
}

type Clock interface {
	Now() time.Time
}

type AuthUsecase struct {
	users    repo.UserRepository
	hasher   PasswordHasher
	verifier PasswordVerifier
	issuer   TokenIssuer
	clock    Clock
}

func NewAuthUsecase(
	users repo.UserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		hasher:   hasher,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	WhatsAppNumber string
}

type UserOutput struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	WhatsAppNumber string `json:"whatsapp_number"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserOutput, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	whatsapp := strings.TrimSpace(in.WhatsAppNumber)

	if name == "" {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if !emailRe.MatchString(email) {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 8 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}
	if whatsapp != "" && !whatsappRe.MatchString(whatsapp) {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "whatsapp number must include a country code")
	}

	_, found, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if found {
		return UserOutput{}, NewHTTPError(http.StatusConflict, "email already used")
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	now := u.clock.Now()
	created, err := u.users.Create(ctx, model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.users.UpsertProfile(ctx, model.UserProfile{
		UserID:         created.ID,
		WhatsAppNumber: whatsapp,
	}); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return UserOutput{
		ID:             created.ID,
		Name:           created.Name,
		Email:          created.Email,
		Role:           string(created.Role),
		WhatsAppNumber: whatsapp,
	}, nil
}

type LoginOutput struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      UserOutput `json:"user"`
}

func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (LoginOutput, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	user, found, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !found {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}
	if err := u.verifier.Verify(user.PasswordHash, password); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, u.clock.Now())
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      u.toUserOutput(ctx, user),
	}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserOutput, error) {
	if userID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.toUserOutput(ctx, user), nil
}

type UpdateProfileInput struct {
	Name           string
	Email          string
	WhatsAppNumber string
}

func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (UserOutput, error) {
	if userID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	whatsapp := strings.TrimSpace(in.WhatsAppNumber)

	if name == "" {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if !emailRe.MatchString(email) {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if whatsapp != "" && !whatsappRe.MatchString(whatsapp) {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "whatsapp number must include a country code")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// Another account may already hold the new email.
	if email != user.Email {
		_, taken, err := u.users.FindByEmail(ctx, email)
		if err != nil {
			return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if taken {
			return UserOutput{}, NewHTTPError(http.StatusConflict, "email already used")
		}
	}

	user.Name = name
	user.Email = email
	if err := u.users.Update(ctx, user); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.users.UpsertProfile(ctx, model.UserProfile{
		UserID:         userID,
		WhatsAppNumber: whatsapp,
	}); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return UserOutput{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           string(user.Role),
		WhatsAppNumber: whatsapp,
	}, nil
}

// DeleteAccount removes the user; listings, orders and notifications go with
// it via cascading deletes.
func (u *AuthUsecase) DeleteAccount(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	err := u.users.Delete(ctx, userID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AuthUsecase) toUserOutput(ctx context.Context, user model.User) UserOutput {
	out := UserOutput{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
	if profile, err := u.users.FindProfileByUserID(ctx, user.ID); err == nil {
		out.WhatsAppNumber = profile.WhatsAppNumber
	}
	return out
}

package usecase

import "golang.org/x/crypto/bcrypt"

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type PasswordVerifier interface {
	Verify(hash string, password string) error
}

type bcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptPasswordHasher{cost: cost}
}

func (h *bcryptPasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type bcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() PasswordVerifier {
	return &bcryptPasswordVerifier{}
}

func (v *bcryptPasswordVerifier) Verify(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hashes and checks organizer passwords
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(hashPassword string, password string) error
}

type bcryptHasher struct {
	cost int
}

// NewPasswordHasher returns a bcrypt hasher with the default cost
func NewPasswordHasher() PasswordHasher {
	return &bcryptHasher{
		cost: bcrypt.DefaultCost,
	}
}

// NewPasswordHasherWithCost is used by tests to keep hashing fast
func NewPasswordHasherWithCost(cost int) PasswordHasher {
	return &bcryptHasher{
		cost: cost,
	}
}

func (b *bcryptHasher) HashPassword(password string) (string, error) {
	result, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

func (b *bcryptHasher) ComparePassword(hashPassword string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashPassword), []byte(password))
}

//go:build unit

package builder

import (
	"github.com/patas-felizes/grooming-api/internal/domain/user"
)

type UserBuilder struct {
	Email        string
	PasswordHash string
	Name         string
	Role         string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Email:        "groomer@example.com",
		PasswordHash: "hashed_password",
		Name:         "Test Groomer",
		Role:         "groomer",
	}
}

func (b *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(b.Email)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(b.Role)
	if err != nil {
		return nil, err
	}

	return user.NewUser(email, b.PasswordHash, b.Name, role), nil
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

func (b *UserBuilder) WithRole(role string) *UserBuilder {
	b.Role = role
	return b
}

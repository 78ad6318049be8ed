//go:build unit

package user_test

import (
	"testing"

	"github.com/patas-felizes/grooming-api/internal/domain/user"
	"github.com/patas-felizes/grooming-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewUserBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			u, err := b.BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, u)
		})
	}
}

func TestUser(t *testing.T) {
	t.Run("new users are active with a fresh id", func(t *testing.T) {
		u, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, u.ID())
		assert.True(t, u.IsActive())
		assert.Nil(t, u.LastLogin())
		assert.Equal(t, user.RoleGroomer, u.Role())
	})

	t.Run("email validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "valid email",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "empty email rejected",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "malformed email rejected",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("not-an-email") },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("role validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "groomer role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("groomer") },
			},
			{
				name:   "manager role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("manager") },
			},
			{
				name:   "admin role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("admin") },
			},
			{
				name:   "unknown role rejected",
				mutate: func(b *builder.UserBuilder) { b.WithRole("receptionist") },
				errIs:  user.ErrInvalidRole,
			},
		})
	})
}

func TestPassword(t *testing.T) {
	t.Run("short password rejected", func(t *testing.T) {
		_, err := user.NewPassword("short")
		require.ErrorIs(t, err, user.ErrPasswordTooWeak)
	})

	t.Run("eight characters accepted", func(t *testing.T) {
		p, err := user.NewPassword("longenough")
		require.NoError(t, err)
		assert.Equal(t, "longenough", p.Value())
	})
}

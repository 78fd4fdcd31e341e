package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/api/internal/auth"
)

// fakeStore is an in-memory Store that enforces email uniqueness the
// way the real store does.
type fakeStore struct {
	users []*User
}

func (f *fakeStore) Create(ctx context.Context, name, email, passwordHash string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}
	now := time.Now()
	u := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) List(ctx context.Context) ([]*User, error) {
	return f.users, nil
}

func TestRegisterHashesPassword(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	svc := NewService(store)

	u, err := svc.Register(context.Background(), "Ada Lovelace", "ada@example.com", "engine1842")
	require.NoError(t, err)

	// The stored value must be a hash, never the plaintext
	assert.NotEqual(t, "engine1842", u.PasswordHash)
	assert.True(t, auth.CheckPassword("engine1842", u.PasswordHash))
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"missing name", "", "a@example.com", "password123", ErrNameRequired},
		{"missing email", "Ada", "", "password123", ErrEmailRequired},
		{"malformed email", "Ada", "not-an-email", "password123", ErrInvalidEmailFormat},
		{"missing password", "Ada", "a@example.com", "", ErrPasswordRequired},
		{"short password", "Ada", "a@example.com", "short", ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeStore{})
			_, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	svc := NewService(store)

	_, err := svc.Register(context.Background(), "First", "dup@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Second", "dup@example.com", "password456")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Len(t, store.users, 1)
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	svc := NewService(store)

	registered, err := svc.Register(context.Background(), "Ada", "ada@example.com", "password123")
	require.NoError(t, err)

	loggedIn, err := svc.Login(context.Background(), "ada@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	svc := NewService(store)

	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "password123")
	require.NoError(t, err)

	// Wrong password and unknown email must yield the exact same error
	_, wrongPassword := svc.Login(context.Background(), "ada@example.com", "not-the-password")
	_, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "password123")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestResolveUser(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	svc := NewService(store)

	registered, err := svc.Register(context.Background(), "Ada", "ada@example.com", "password123")
	require.NoError(t, err)

	identity, err := svc.ResolveUser(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, identity.ID)
	assert.Equal(t, "ada@example.com", identity.Email)

	_, err = svc.ResolveUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"griyapasar/internal/domain/entity"
	"griyapasar/pkg/errors"
)

type fakeAuthClient struct {
	password        string
	verified        bool
	updatedPassword string
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	return "uid-1", nil
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	return "uid-1", nil
}

func (f *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	if password != f.password {
		return "", errors.Unauthorized("INVALID_PASSWORD", nil)
	}
	return "token", nil
}

func (f *fakeAuthClient) SignInWithEmailPasswordWithRefresh(email, password string) (string, string, error) {
	token, err := f.SignInWithEmailPassword(email, password)
	return token, "refresh", err
}

func (f *fakeAuthClient) RefreshIdToken(refreshToken string) (string, string, error) {
	return "token", "refresh", nil
}

func (f *fakeAuthClient) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	f.updatedPassword = newPassword
	return nil
}

func (f *fakeAuthClient) IsEmailVerified(ctx context.Context, uid string) (bool, error) {
	return f.verified, nil
}

func TestUpdatePasswordRequiresCurrentPassword(t *testing.T) {
	auth := &fakeAuthClient{password: "rahasia-lama"}
	users := &fakeUserRepo{users: map[string]*entity.User{
		"budi": {ID: "budi", Email: "budi@example.com"},
	}}
	uc := NewUserUseCase(users, &fakePropertyRepo{}, auth)
	ctx := context.Background()

	err := uc.UpdatePassword(ctx, "budi", "tebakan-salah", "rahasia-baru")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
	assert.Empty(t, auth.updatedPassword, "a failed re-auth must not touch the password")

	err = uc.UpdatePassword(ctx, "budi", "rahasia-lama", "rahasia-baru")
	require.NoError(t, err)
	assert.Equal(t, "rahasia-baru", auth.updatedPassword)
}

func TestVerificationStatusComesFromAuthProvider(t *testing.T) {
	auth := &fakeAuthClient{verified: true}
	uc := NewUserUseCase(&fakeUserRepo{}, &fakePropertyRepo{}, auth)

	verified, err := uc.VerificationStatus(context.Background(), "budi")
	require.NoError(t, err)
	assert.True(t, verified)
}

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/khabar-digital/newsroom/internal/dto"
	apperrors "github.com/khabar-digital/newsroom/internal/errors"
	"github.com/khabar-digital/newsroom/internal/model"
)

type fakeUserStore struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*model.User), nextID: 1}
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetSanitizedByID(_ context.Context, id uint) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	sanitized := *user
	sanitized.Password = ""
	sanitized.RefreshToken = ""
	return &sanitized, nil
}

func (f *fakeUserStore) FindByHandleOrEmail(_ context.Context, identity string) (*model.User, error) {
	for _, user := range f.users {
		if user.UserName == identity || user.Email == identity {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) CountByUniqueFields(_ context.Context, userName, email, mobileNumber string) (int64, error) {
	var count int64
	for _, user := range f.users {
		if user.UserName == userName || user.Email == email || user.MobileNumber == mobileNumber {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id uint, hashedPassword string) error {
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (f *fakeUserStore) UpdateRefreshToken(_ context.Context, id uint, refreshToken string) error {
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.RefreshToken = refreshToken
	return nil
}

func (f *fakeUserStore) UpdateActive(_ context.Context, id uint, isActive bool) error {
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.IsActive = isActive
	return nil
}

func newTestUserService(store *fakeUserStore) *UserService {
	tokens := NewTokenService(testJWTConfig(), store)
	return NewUserService(store, tokens)
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		UserName:     "Alice",
		Email:        "Alice@Example.com",
		FullName:     "Alice Shrestha",
		Password:     "original-password",
		MobileNumber: "9812345678",
		Role:         2,
		Province:     "Bagmati",
		District:     "Kathmandu",
		Municipality: "Kathmandu",
		Tole:         "Thamel",
		WardNo:       26,
	}
}

func TestUserService_RegisterHashesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	stored := store.users[user.ID]
	assert.NotEqual(t, "original-password", stored.Password)
	assert.True(t, checkPassword(stored.Password, "original-password"))
}

func TestUserService_RegisterNormalizesIdentity(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, "alice", user.UserName)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.IsActive)
}

func TestUserService_RegisterRejectsDuplicateIdentity(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(req *dto.RegisterRequest)
	}{
		{"duplicate handle", func(req *dto.RegisterRequest) {
			req.Email = "other@example.com"
			req.MobileNumber = "9800000001"
		}},
		{"duplicate email", func(req *dto.RegisterRequest) {
			req.UserName = "bob"
			req.MobileNumber = "9800000002"
		}},
		{"duplicate mobile", func(req *dto.RegisterRequest) {
			req.UserName = "carol"
			req.Email = "carol@example.com"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := registerRequest()
			tt.mutate(req)
			_, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, apperrors.ErrAccountExists)
		})
	}
}

func TestUserService_LoginValidation(t *testing.T) {
	svc := newTestUserService(newFakeUserStore())

	_, err := svc.Login(context.Background(), "", "secret")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.Login(context.Background(), "alice", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.Login(context.Background(), "nobody", "secret")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestUserService_LoginInactiveAccount(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "alice", "original-password")
	require.NoError(t, err)

	assert.False(t, result.Activated)
	assert.Nil(t, result.User)
	assert.Nil(t, result.Tokens)
	assert.Empty(t, store.users[user.ID].RefreshToken)
}

func TestUserService_LoginActiveAccount(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NoError(t, store.UpdateActive(context.Background(), user.ID, true))

	result, err := svc.Login(context.Background(), "alice", "original-password")
	require.NoError(t, err)

	require.True(t, result.Activated)
	require.NotNil(t, result.Tokens)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.Equal(t, result.Tokens.RefreshToken, store.users[user.ID].RefreshToken)

	require.NotNil(t, result.User)
	assert.Equal(t, "alice", result.User.UserName)
}

func TestUserService_LoginByEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NoError(t, store.UpdateActive(context.Background(), user.ID, true))

	result, err := svc.Login(context.Background(), "alice@example.com", "original-password")
	require.NoError(t, err)
	assert.True(t, result.Activated)
}

func TestUserService_LogoutClearsRefreshToken(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NoError(t, store.UpdateActive(context.Background(), user.ID, true))

	_, err = svc.Login(context.Background(), "alice", "original-password")
	require.NoError(t, err)
	require.NotEmpty(t, store.users[user.ID].RefreshToken)

	require.NoError(t, svc.Logout(context.Background(), user.ID))
	assert.Empty(t, store.users[user.ID].RefreshToken)
}

func TestUserService_ChangePassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NoError(t, store.UpdateActive(context.Background(), user.ID, true))

	err = svc.ChangePassword(context.Background(), user.ID, &dto.ChangePasswordRequest{
		OldPassword: "wrong-password",
		NewPassword: "replacement-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrIncorrectPassword)

	err = svc.ChangePassword(context.Background(), user.ID, &dto.ChangePasswordRequest{
		OldPassword: "original-password",
		NewPassword: "replacement-password",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice", "original-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	result, err := svc.Login(context.Background(), "alice", "replacement-password")
	require.NoError(t, err)
	assert.True(t, result.Activated)
}

func TestUserService_ChangePasswordKeepsSession(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NoError(t, store.UpdateActive(context.Background(), user.ID, true))

	result, err := svc.Login(context.Background(), "alice", "original-password")
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, &dto.ChangePasswordRequest{
		OldPassword: "original-password",
		NewPassword: "replacement-password",
	})
	require.NoError(t, err)

	assert.Equal(t, result.Tokens.RefreshToken, store.users[user.ID].RefreshToken)
}

func TestUserService_GetByIDSanitized(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	fetched, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", fetched.UserName)

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestUserService_Activate(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	activated, err := svc.Activate(context.Background(), user.ID, true)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	_, err = svc.Activate(context.Background(), 999, true)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestHashPasswordNeverPlaintext(t *testing.T) {
	hash, err := hashPassword("hunter2-long-enough")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2-long-enough", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"))
	assert.True(t, checkPassword(hash, "hunter2-long-enough"))
	assert.False(t, checkPassword(hash, "hunter3-long-enough"))
}

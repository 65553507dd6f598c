package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/khabar-digital/newsroom/internal/model"
	ctxutil "github.com/khabar-digital/newsroom/pkg/context"
	"github.com/khabar-digital/newsroom/pkg/logger"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "GetByID")

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	if result.Error != nil {
		logger.DebugWithContext(ctx, "Failed to get account by ID").
			Int("account_id", int(id)).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &user, nil
}

// GetSanitizedByID loads the account with the password and refresh token
// columns omitted. This is the only lookup the authentication guard makes.
func (r *UserRepository) GetSanitizedByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "GetSanitizedByID")

	var user model.User
	result := r.db.WithContext(ctx).
		Omit("password", "refresh_token").
		Where("id = ?", id).
		First(&user)
	if result.Error != nil {
		logger.DebugWithContext(ctx, "Failed to get sanitized account").
			Int("account_id", int(id)).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &user, nil
}

// FindByHandleOrEmail resolves a login identity: the same value is matched
// against both the username and the email column in one query.
func (r *UserRepository) FindByHandleOrEmail(ctx context.Context, identity string) (*model.User, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "FindByHandleOrEmail")

	var user model.User
	result := r.db.WithContext(ctx).
		Where("user_name = ? OR email = ?", identity, identity).
		First(&user)
	if result.Error != nil {
		logger.DebugWithContext(ctx, "No account for identity").
			String("identity", identity).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &user, nil
}

// CountByUniqueFields is the combined uniqueness probe used by
// registration: one OR query across the three unique columns.
func (r *UserRepository) CountByUniqueFields(ctx context.Context, userName, email, mobileNumber string) (int64, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "CountByUniqueFields")

	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_name = ? OR email = ? OR mobile_number = ?", userName, email, mobileNumber).
		Count(&count)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to probe account uniqueness").
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	return count, nil
}

// Create persists a new account. The password must already be hashed by the
// caller.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "Create")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create account").
			String("email", user.Email).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Account created").
		String("email", user.Email).
		Int("account_id", int(user.ID)).
		Duration(time.Since(start)).
		Log()

	return nil
}

// UpdatePassword writes a new password hash. Field-scoped so concurrent
// session updates on the same row cannot be lost.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "UpdatePassword")

	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("password", hashedPassword)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update password").
			Int("account_id", int(id)).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdateRefreshToken overwrites the stored refresh token. An empty token
// clears the session (logout).
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id uint, refreshToken string) error {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "UpdateRefreshToken")

	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("refresh_token", refreshToken)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update refresh token").
			Int("account_id", int(id)).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.DebugWithContext(ctx, "Refresh token updated").
		Int("account_id", int(id)).
		Bool("cleared", refreshToken == "").
		Log()

	return nil
}

// UpdateActive flips the activation flag.
func (r *UserRepository) UpdateActive(ctx context.Context, id uint, isActive bool) error {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "UpdateActive")

	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("is_active", isActive)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update activation flag").
			Int("account_id", int(id)).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

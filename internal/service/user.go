package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/khabar-digital/newsroom/internal/dto"
	apperrors "github.com/khabar-digital/newsroom/internal/errors"
	"github.com/khabar-digital/newsroom/internal/model"
	ctxutil "github.com/khabar-digital/newsroom/pkg/context"
	"github.com/khabar-digital/newsroom/pkg/logger"
)

// UserStore is the account persistence surface the service needs.
// *repository.UserRepository satisfies it.
type UserStore interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetSanitizedByID(ctx context.Context, id uint) (*model.User, error)
	FindByHandleOrEmail(ctx context.Context, identity string) (*model.User, error)
	CountByUniqueFields(ctx context.Context, userName, email, mobileNumber string) (int64, error)
	Create(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
	UpdateRefreshToken(ctx context.Context, id uint, refreshToken string) error
	UpdateActive(ctx context.Context, id uint, isActive bool) error
}

type UserService struct {
	store  UserStore
	tokens *TokenService
}

func NewUserService(store UserStore, tokens *TokenService) *UserService {
	return &UserService{
		store:  store,
		tokens: tokens,
	}
}

// hashPassword hashes a plaintext password with bcrypt. Called only on
// paths that actually modify the secret, so an already-hashed value is
// never hashed twice.
func hashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// checkPassword verifies a plaintext password against a stored hash.
func checkPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// Register creates a new account. The handle is normalized to lowercase and
// the password is hashed before first persistence; a collision on any of
// the three unique identity fields is a conflict.
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "Register")

	userName := strings.ToLower(strings.TrimSpace(req.UserName))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	count, err := s.store.CountByUniqueFields(ctx, userName, email, req.MobileNumber)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if count > 0 {
		logger.InfoWithContext(ctx, "Registration rejected: identity collision").
			String("user_name", userName).
			String("email", email).
			Log()
		return nil, apperrors.ErrAccountExists
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		UserName:     userName,
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		MobileNumber: req.MobileNumber,
		Password:     hashedPassword,
		Role:         req.Role,
		Location: model.Location{
			Province:     strings.TrimSpace(req.Province),
			District:     strings.TrimSpace(req.District),
			Municipality: strings.TrimSpace(req.Municipality),
			Tole:         strings.TrimSpace(req.Tole),
			WardNo:       req.WardNo,
		},
	}

	if err := s.store.Create(ctx, user); err != nil {
		logger.ErrorWithContext(ctx, "Failed to create account").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Account registered").
		String("user_name", userName).
		Int("account_id", int(user.ID)).
		Log()

	return toUserResponse(user), nil
}

// Login runs the credential check state machine. For an inactive account it
// returns a result without tokens; the handler shapes that into a success
// response with an explanatory message. Tokens are issued only for active
// accounts.
func (s *UserService) Login(ctx context.Context, identity, password string) (*dto.LoginResult, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "Login")

	if identity == "" || password == "" {
		return nil, apperrors.ErrInvalidInput
	}

	user, err := s.store.FindByHandleOrEmail(ctx, identity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Login failed: account not found").
				String("identity", identity).
				Log()
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !checkPassword(user.Password, password) {
		logger.WarnWithContext(ctx, "Login failed: incorrect password").
			String("identity", identity).
			Int("account_id", int(user.ID)).
			Log()
		return nil, apperrors.ErrInvalidCredentials
	}

	sanitized := toUserResponse(user)

	if !user.IsActive {
		logger.InfoWithContext(ctx, "Login short-circuited: account not activated").
			Int("account_id", int(user.ID)).
			Log()
		return &dto.LoginResult{Activated: false}, nil
	}

	pair, err := s.tokens.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "Account logged in").
		Int("account_id", int(user.ID)).
		Log()

	return &dto.LoginResult{
		Activated: true,
		User:      sanitized,
		Tokens:    pair,
	}, nil
}

// Logout clears the account's stored refresh token. The caller is already
// authenticated; the access token itself stays valid until it expires.
func (s *UserService) Logout(ctx context.Context, accountID uint) error {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "Logout")

	if err := s.store.UpdateRefreshToken(ctx, accountID, ""); err != nil {
		logger.ErrorWithContext(ctx, "Failed to clear refresh token").
			Int("account_id", int(accountID)).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Account logged out").
		Int("account_id", int(accountID)).
		Log()

	return nil
}

// ChangePassword verifies the old password and rehashes the new one.
// Existing sessions are deliberately left untouched; the stored refresh
// token stays valid.
func (s *UserService) ChangePassword(ctx context.Context, accountID uint, req *dto.ChangePasswordRequest) error {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "ChangePassword")

	user, err := s.store.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !checkPassword(user.Password, req.OldPassword) {
		logger.WarnWithContext(ctx, "Password change rejected: old password mismatch").
			Int("account_id", int(accountID)).
			Log()
		return apperrors.ErrIncorrectPassword
	}

	hashedPassword, err := hashPassword(req.NewPassword)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash new password").
			Int("account_id", int(accountID)).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.store.UpdatePassword(ctx, accountID, hashedPassword); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Password changed").
		Int("account_id", int(accountID)).
		Log()

	return nil
}

// GetByID returns a sanitized account projection.
func (s *UserService) GetByID(ctx context.Context, accountID uint) (*dto.UserResponse, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "GetByID")

	user, err := s.store.GetSanitizedByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return toUserResponse(user), nil
}

// Activate flips the account's active flag and returns the updated
// sanitized projection.
func (s *UserService) Activate(ctx context.Context, accountID uint, isActive bool) (*dto.UserResponse, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "Activate")

	if err := s.store.UpdateActive(ctx, accountID, isActive); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Account activation updated").
		Int("account_id", int(accountID)).
		Bool("is_active", isActive).
		Log()

	return s.GetByID(ctx, accountID)
}

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:           user.ID,
		UserName:     user.UserName,
		Email:        user.Email,
		FullName:     user.FullName,
		MobileNumber: user.MobileNumber,
		Role:         user.Role,
		IsActive:     user.IsActive,
		Province:     user.Location.Province,
		District:     user.Location.District,
		Municipality: user.Location.Municipality,
		Tole:         user.Location.Tole,
		WardNo:       user.Location.WardNo,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}
